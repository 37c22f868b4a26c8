package preference

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

type stubRepository struct {
	record *models.PreferenceRecord
	getErr error

	saved     *models.PreferenceRecord
	upsertErr error
}

func (s *stubRepository) GetActivePreference(_ context.Context, _, _ string) (*models.PreferenceRecord, error) {
	return s.record, s.getErr
}

func (s *stubRepository) ListActiveTenantPreferences(_ context.Context, _ int) ([]models.PreferenceRecord, error) {
	return nil, nil
}

func (s *stubRepository) Upsert(_ context.Context, record models.PreferenceRecord) (models.PreferenceRecord, error) {
	if s.upsertErr != nil {
		return models.PreferenceRecord{}, s.upsertErr
	}
	record.ID = "pref-1"
	record.UpdatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.saved = &record
	return record, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestGet_InvalidUserType(t *testing.T) {
	service := NewService(&stubRepository{}, nil, testLogger())

	_, err := service.Get(context.Background(), "user-1", "admin")

	require.Error(t, err)
	require.True(t, httperror.IsHTTPError(err))
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestGet_MissingRecordFallsBack(t *testing.T) {
	service := NewService(&stubRepository{record: nil}, nil, testLogger())

	resp, err := service.Get(context.Background(), "tenant-1", "tenant")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.Meta.PreferenceFound)
	assert.True(t, resp.Data.Fallback)
	assert.Equal(t, "tenant-1", resp.Data.UserID)
}

func TestGet_NormalizesStoredRecord(t *testing.T) {
	record := &models.PreferenceRecord{
		UserID:    "tenant-1",
		UserType:  "tenant",
		BudgetMax: floatPtr(1500),
		Preferences: map[string]any{
			"cities": []any{"Berlin"},
		},
		IsActive: true,
	}
	service := NewService(&stubRepository{record: record}, nil, testLogger())

	resp, err := service.Get(context.Background(), "tenant-1", "tenant")
	require.NoError(t, err)

	assert.True(t, resp.Meta.PreferenceFound)
	assert.False(t, resp.Data.Fallback)
	assert.Equal(t, []string{"berlin"}, resp.Data.PreferredCities)
	require.NotNil(t, resp.Data.BudgetMax)
	assert.Equal(t, 1500.0, *resp.Data.BudgetMax)
}

func TestUpsert_BuildsRecord(t *testing.T) {
	repo := &stubRepository{}
	service := NewService(repo, nil, testLogger())

	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req := models.UpsertPreferencesRequest{
		Preferences:         map[string]any{"amenities": []any{"balcony"}},
		BudgetMin:           floatPtr(900),
		BudgetMax:           floatPtr(1500),
		PetFriendly:         boolPtr(true),
		PreferredMoveInDate: &moveIn,
	}

	resp, err := service.Upsert(context.Background(), "tenant-1", "tenant", req)
	require.NoError(t, err)

	require.NotNil(t, repo.saved)
	assert.Equal(t, "tenant-1", repo.saved.UserID)
	assert.Equal(t, "tenant", repo.saved.UserType)
	assert.True(t, repo.saved.IsActive) // defaults to active when unset
	require.NotNil(t, repo.saved.BudgetMax)
	assert.Equal(t, 1500.0, *repo.saved.BudgetMax)

	assert.True(t, resp.Meta.PreferenceFound)
	require.NotNil(t, resp.Meta.SavedAt)
	assert.Equal(t, repo.saved.UpdatedAt, *resp.Meta.SavedAt)
	assert.Equal(t, []string{"balcony"}, resp.Data.Amenities)
}

func TestUpsert_NilPreferencesBecomeEmptyBlob(t *testing.T) {
	repo := &stubRepository{}
	service := NewService(repo, nil, testLogger())

	_, err := service.Upsert(context.Background(), "tenant-1", "tenant", models.UpsertPreferencesRequest{})
	require.NoError(t, err)

	require.NotNil(t, repo.saved)
	assert.NotNil(t, repo.saved.Preferences)
	assert.Empty(t, repo.saved.Preferences)
}

func TestUpsert_ExplicitInactive(t *testing.T) {
	repo := &stubRepository{}
	service := NewService(repo, nil, testLogger())

	req := models.UpsertPreferencesRequest{IsActive: boolPtr(false)}
	_, err := service.Upsert(context.Background(), "tenant-1", "tenant", req)
	require.NoError(t, err)

	require.NotNil(t, repo.saved)
	assert.False(t, repo.saved.IsActive)
}

func TestUpsert_RepositoryError(t *testing.T) {
	repo := &stubRepository{upsertErr: errors.New("connection refused")}
	service := NewService(repo, nil, testLogger())

	_, err := service.Upsert(context.Background(), "tenant-1", "tenant", models.UpsertPreferencesRequest{})

	require.Error(t, err)
}

func TestUpsert_InvalidUserType(t *testing.T) {
	service := NewService(&stubRepository{}, nil, testLogger())

	_, err := service.Upsert(context.Background(), "user-1", "guest", models.UpsertPreferencesRequest{})

	require.Error(t, err)
	require.True(t, httperror.IsHTTPError(err))
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}
