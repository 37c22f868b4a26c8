package apartment

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

type ApartmentRepository interface {
	CandidatesForPreference(ctx context.Context, pref matching.Preference, limit int) ([]models.Apartment, error)
	ListingsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Apartment, error)
}

type Repository struct {
	db     database.DB
	logger ectologger.Logger
	cfg    matching.Config
}

// NewRepository creates a new apartment repository
func NewRepository(db database.DB, logger ectologger.Logger, cfg matching.Config) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		cfg:    cfg,
	}
}

// CandidatesForPreference fetches available listings pre-filtered by the
// preference. The price bounds are widened so near-misses still reach the
// scorer; set filters compare case-insensitively. Filters only narrow on
// fields the preference actually specifies.
func (r *Repository) CandidatesForPreference(ctx context.Context, pref matching.Preference, limit int) ([]models.Apartment, error) {
	ctx, span := tracing.StartSpan(ctx, "ApartmentRepository.CandidatesForPreference")
	defer span.End()

	sb := apartmentStruct.SelectFrom(apartmentTable)
	sb.Where(sb.Equal("status", string(models.ApartmentStatusAvailable)))

	if len(pref.PreferredCities) > 0 {
		sb.Where(sb.In("LOWER(city)", toArgs(pref.PreferredCities)...))
	}
	if len(pref.PreferredPostalCodes) > 0 {
		sb.Where(sb.In("postal_code", toArgs(pref.PreferredPostalCodes)...))
	}
	if len(pref.PropertyTypes) > 0 {
		sb.Where(sb.In("LOWER(property_type)", toArgs(pref.PropertyTypes)...))
	}
	if pref.BudgetMin != nil {
		sb.Where(sb.GreaterEqualThan("price", *pref.BudgetMin*r.cfg.QueryPriceFloorFactor))
	}
	if pref.BudgetMax != nil {
		sb.Where(sb.LessEqualThan("price", *pref.BudgetMax*r.cfg.QueryPriceCeilFactor))
	}
	if pref.MinRooms != nil {
		sb.Where(sb.GreaterEqualThan("rooms", *pref.MinRooms))
	}
	if pref.MaxRooms != nil {
		sb.Where(sb.LessEqualThan("rooms", *pref.MaxRooms))
	}
	// pets_not_allowed is a hard stop when the preference demands pets, so
	// pushing the filter down cannot drop a result the scorer would keep
	if pref.PetFriendly != nil && *pref.PetFriendly {
		sb.Where(sb.Equal("pet_friendly", true))
	}

	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	sql, args := sb.Build()

	var rows []ApartmentRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id": pref.UserID,
		}).Error("error querying candidate apartments")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error querying candidate apartments")
	}

	apartments := make([]models.Apartment, 0, len(rows))
	for i := range rows {
		apartments = append(apartments, ToApartment(&rows[i]))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":         pref.UserID,
		"candidate_count": len(apartments),
	}).Info("Fetched candidate apartments")

	return apartments, nil
}

// ListingsByOwner returns a landlord's listings regardless of status;
// tenants matched against a draft listing are still useful signal for the
// landlord preparing it.
func (r *Repository) ListingsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Apartment, error) {
	ctx, span := tracing.StartSpan(ctx, "ApartmentRepository.ListingsByOwner")
	defer span.End()

	sb := apartmentStruct.SelectFrom(apartmentTable)
	sb.Where(sb.Equal("owner_id", ownerID))
	sb.OrderBy("created_at").Desc()
	sb.Limit(limit)

	sql, args := sb.Build()

	var rows []ApartmentRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"owner_id": ownerID,
		}).Error("error querying landlord listings")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "error querying landlord listings")
	}

	apartments := make([]models.Apartment, 0, len(rows))
	for i := range rows {
		apartments = append(apartments, ToApartment(&rows[i]))
	}

	return apartments, nil
}

func toArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
