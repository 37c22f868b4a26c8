package user

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

type UserRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new user repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetByIDs resolves contact records keyed by user ID. IDs without a row
// are simply absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	ctx, span := tracing.StartSpan(ctx, "UserRepository.GetByIDs")
	defer span.End()

	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	sb := userStruct.SelectFrom(userTable)
	sb.Where(sb.In("id", args...))

	sql, queryArgs := sb.Build()

	var rows []UserRow
	err := r.db.SelectContext(ctx, &rows, sql, queryArgs...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"id_count": len(ids),
		}).Error("error getting users")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error getting users")
	}

	for i := range rows {
		user := ToUser(&rows[i])
		users[user.ID] = user
	}

	return users, nil
}
