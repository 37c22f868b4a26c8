package preference

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

type PreferenceRepository interface {
	GetActivePreference(ctx context.Context, userID, userType string) (*models.PreferenceRecord, error)
	ListActiveTenantPreferences(ctx context.Context, limit int) ([]models.PreferenceRecord, error)
	Upsert(ctx context.Context, record models.PreferenceRecord) (models.PreferenceRecord, error)
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new preference repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetActivePreference returns the stored preference for one user and role.
// A missing record is (nil, nil): callers treat absence as "match
// permissively", not as a failure.
func (r *Repository) GetActivePreference(ctx context.Context, userID, userType string) (*models.PreferenceRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "PreferenceRepository.GetActivePreference")
	defer span.End()

	sb := preferenceStruct.SelectFrom(preferenceTable)
	sb.Where(
		sb.Equal("user_id", userID),
		sb.Equal("user_type", userType),
		sb.Equal("is_active", true),
	)
	sb.Limit(1)

	sql, args := sb.Build()

	var row PreferenceRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}

		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id":   userID,
			"user_type": userType,
		}).Error("error getting preference")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error getting preference")
	}

	record := ToPreferenceRecord(&row)
	return &record, nil
}

// ListActiveTenantPreferences returns the bounded tenant pool used by
// landlord-side matching, most recently updated first.
func (r *Repository) ListActiveTenantPreferences(ctx context.Context, limit int) ([]models.PreferenceRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "PreferenceRepository.ListActiveTenantPreferences")
	defer span.End()

	sb := preferenceStruct.SelectFrom(preferenceTable)
	sb.Where(
		sb.Equal("user_type", string(models.UserTypeTenant)),
		sb.Equal("is_active", true),
	)
	sb.OrderBy("updated_at").Desc()
	sb.Limit(limit)

	sql, args := sb.Build()

	var rows []PreferenceRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("error listing tenant preferences")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error listing tenant preferences")
	}

	records := make([]models.PreferenceRecord, 0, len(rows))
	for i := range rows {
		records = append(records, ToPreferenceRecord(&rows[i]))
	}

	return records, nil
}

// Upsert writes a preference keyed by (user_id, user_type). Saving again
// replaces the previous record wholesale, partial merges are not a thing
// here.
func (r *Repository) Upsert(ctx context.Context, record models.PreferenceRecord) (models.PreferenceRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "PreferenceRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	row := FromPreferenceRecord(record)
	ib := preferenceStruct.InsertInto(preferenceTable, row)
	ub := ib.OnConflict("user_id", "user_type")
	ub.Set(
		ub.Assign("preferences", database.Excluded("preferences")),
		ub.Assign("budget_min", database.Excluded("budget_min")),
		ub.Assign("budget_max", database.Excluded("budget_max")),
		ub.Assign("max_distance_km", database.Excluded("max_distance_km")),
		ub.Assign("pet_friendly", database.Excluded("pet_friendly")),
		ub.Assign("furnished", database.Excluded("furnished")),
		ub.Assign("smoking_allowed", database.Excluded("smoking_allowed")),
		ub.Assign("lease_duration_months", database.Excluded("lease_duration_months")),
		ub.Assign("preferred_move_in_date", database.Excluded("preferred_move_in_date")),
		ub.Assign("is_active", database.Excluded("is_active")),
		ub.Assign("updated_at", now),
	)

	sql, args := ib.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return models.PreferenceRecord{}, err
	}
	defer tx.Rollback(ctx)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":   record.UserID,
		"user_type": record.UserType,
	}).Info("Upserting preference")

	_, err = tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id":   record.UserID,
			"user_type": record.UserType,
		}).Error("error upserting preference")
		return models.PreferenceRecord{}, httperror.NewHTTPError(http.StatusInternalServerError, "error upserting preference")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return models.PreferenceRecord{}, err
	}

	return record, nil
}
