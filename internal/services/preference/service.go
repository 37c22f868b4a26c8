package preference

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/internal/repositories/preference"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/matching"
	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

type PreferenceService interface {
	Get(ctx context.Context, userID, userType string) (*matching.PreferenceResponse, error)
	Upsert(ctx context.Context, userID, userType string, req models.UpsertPreferencesRequest) (*matching.PreferenceResponse, error)
}

type Service struct {
	repo    preference.PreferenceRepository
	emitter *events.Emitter
	logger  ectologger.Logger
	now     func() time.Time
}

// NewService creates a new preference service. The emitter may be nil when
// Kafka is disabled.
func NewService(repo preference.PreferenceRepository, emitter *events.Emitter, logger ectologger.Logger) *Service {
	return &Service{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the normalized preference of one user. A user without a
// stored record gets the permissive default with preference_found false.
func (s *Service) Get(ctx context.Context, userID, userType string) (*matching.PreferenceResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "PreferenceService.Get")
	defer span.End()

	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	record, err := s.repo.GetActivePreference(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	return &matching.PreferenceResponse{
		Success: true,
		Data:    matching.NormalizePreference(userID, record),
		Meta: matching.PreferenceMeta{
			PreferenceFound: record != nil,
			GeneratedAt:     s.now().UTC(),
		},
	}, nil
}

// Upsert stores a preference record and returns the normalized view the
// matcher will see, so clients can verify how their input was interpreted.
func (s *Service) Upsert(ctx context.Context, userID, userType string, req models.UpsertPreferencesRequest) (*matching.PreferenceResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "PreferenceService.Upsert")
	defer span.End()

	if err := validateUserType(userType); err != nil {
		return nil, err
	}

	prefs := req.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	record := models.PreferenceRecord{
		UserID:              userID,
		UserType:            userType,
		Preferences:         prefs,
		BudgetMin:           req.BudgetMin,
		BudgetMax:           req.BudgetMax,
		MaxDistanceKm:       req.MaxDistanceKm,
		PetFriendly:         req.PetFriendly,
		Furnished:           req.Furnished,
		SmokingAllowed:      req.SmokingAllowed,
		LeaseDurationMonths: req.LeaseDurationMonths,
		PreferredMoveInDate: req.PreferredMoveInDate,
		IsActive:            isActive,
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		metrics.RecordPreferenceUpsert(userType, "error")
		return nil, err
	}
	metrics.RecordPreferenceUpsert(userType, "ok")

	normalized := matching.NormalizePreference(userID, &saved)

	// event emission is best effort, a broker outage must not fail the save
	if err := s.emitter.EmitPreferenceSaved(ctx, userType, normalized); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"user_id":   userID,
			"user_type": userType,
		}).Warn("Preference saved but event emission failed")
	}

	savedAt := saved.UpdatedAt

	return &matching.PreferenceResponse{
		Success: true,
		Data:    normalized,
		Meta: matching.PreferenceMeta{
			PreferenceFound: true,
			GeneratedAt:     s.now().UTC(),
			SavedAt:         &savedAt,
		},
	}, nil
}

func validateUserType(userType string) error {
	switch models.UserType(userType) {
	case models.UserTypeTenant, models.UserTypeLandlord:
		return nil
	default:
		return httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid user type %q, expected tenant or landlord", userType))
	}
}
