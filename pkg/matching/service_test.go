package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

type stubCandidateSource struct {
	candidates []models.Apartment
	listings   []models.Apartment
	err        error
}

func (s *stubCandidateSource) CandidatesForPreference(_ context.Context, _ Preference, _ int) ([]models.Apartment, error) {
	return s.candidates, s.err
}

func (s *stubCandidateSource) ListingsByOwner(_ context.Context, _ string, _ int) ([]models.Apartment, error) {
	return s.listings, s.err
}

type stubPreferenceSource struct {
	record *models.PreferenceRecord
	pool   []models.PreferenceRecord
	err    error
}

func (s *stubPreferenceSource) GetActivePreference(_ context.Context, _, _ string) (*models.PreferenceRecord, error) {
	return s.record, s.err
}

func (s *stubPreferenceSource) ListActiveTenantPreferences(_ context.Context, _ int) ([]models.PreferenceRecord, error) {
	return s.pool, s.err
}

type stubContactSource struct {
	users map[string]models.User
}

func (s *stubContactSource) GetByIDs(_ context.Context, _ []string) (map[string]models.User, error) {
	if s.users == nil {
		return map[string]models.User{}, nil
	}
	return s.users, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestService(apartments *stubCandidateSource, prefs *stubPreferenceSource, users *stubContactSource) *Service {
	return NewService(testLogger(), DefaultConfig(), apartments, prefs, users).
		WithClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) })
}

func TestTenantMatches_RanksAndFilters(t *testing.T) {
	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	record := &models.PreferenceRecord{
		UserID:    "tenant-1",
		UserType:  string(models.UserTypeTenant),
		BudgetMin: floatPtr(900),
		BudgetMax: floatPtr(1500),
		Preferences: map[string]any{
			"cities":    []any{"Berlin"},
			"amenities": []any{"balcony"},
		},
		PreferredMoveInDate: &moveIn,
		IsActive:            true,
	}

	good := testApartment()
	tooExpensive := testApartment()
	tooExpensive.ID = "apt-2"
	tooExpensive.Price = floatPtr(5000)
	weaker := testApartment()
	weaker.ID = "apt-3"
	weaker.City = "Hamburg"
	weaker.Amenities = nil

	service := newTestService(
		&stubCandidateSource{candidates: []models.Apartment{weaker, tooExpensive, good}},
		&stubPreferenceSource{record: record},
		&stubContactSource{},
	)

	resp, err := service.TenantMatches(context.Background(), "tenant-1", Options{})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.Meta.PreferenceFound)
	assert.False(t, resp.Meta.FallbackUsed)
	assert.Equal(t, 3, resp.Meta.CandidateCount)

	require.Len(t, resp.Data, 2) // the hard stop is dropped
	assert.Equal(t, "apt-1", resp.Data[0].Apartment.ID)
	assert.Equal(t, "apt-3", resp.Data[1].Apartment.ID)
	assert.GreaterOrEqual(t, resp.Data[0].Score, resp.Data[1].Score)
}

func TestTenantMatches_NoPreferenceIsNeutral(t *testing.T) {
	service := newTestService(
		&stubCandidateSource{candidates: []models.Apartment{testApartment()}},
		&stubPreferenceSource{record: nil},
		&stubContactSource{},
	)

	resp, err := service.TenantMatches(context.Background(), "tenant-1", Options{})
	require.NoError(t, err)

	assert.False(t, resp.Meta.PreferenceFound)
	assert.True(t, resp.Meta.PreferenceFallback)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 50, resp.Data[0].Score)
}

func TestTenantMatches_StoreFailureServesFallback(t *testing.T) {
	service := newTestService(
		&stubCandidateSource{err: errors.New("connection refused")},
		&stubPreferenceSource{record: nil},
		&stubContactSource{},
	)

	resp, err := service.TenantMatches(context.Background(), "tenant-1", Options{})
	require.NoError(t, err)

	assert.True(t, resp.Meta.FallbackUsed)
	assert.NotEmpty(t, resp.Meta.Warnings)
	assert.NotEmpty(t, resp.Data)
	for _, match := range resp.Data {
		assert.Contains(t, match.Apartment.ID, "demo-")
	}
}

func TestTenantMatches_LimitTruncates(t *testing.T) {
	candidates := make([]models.Apartment, 0, 5)
	for i := 0; i < 5; i++ {
		apt := testApartment()
		apt.ID = string(rune('a' + i))
		candidates = append(candidates, apt)
	}

	service := newTestService(
		&stubCandidateSource{candidates: candidates},
		&stubPreferenceSource{record: nil},
		&stubContactSource{},
	)

	resp, err := service.TenantMatches(context.Background(), "tenant-1", Options{Limit: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 5, resp.Meta.CandidateCount)
}

func TestLandlordMatches_NoListings(t *testing.T) {
	service := newTestService(
		&stubCandidateSource{listings: nil},
		&stubPreferenceSource{},
		&stubContactSource{},
	)

	resp, err := service.LandlordMatches(context.Background(), "landlord-1", Options{})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Meta.Message)
}

func TestLandlordMatches_BestListingPerTenant(t *testing.T) {
	cheap := testApartment()
	cheap.ID = "apt-cheap"
	cheap.Price = floatPtr(1000)
	pricey := testApartment()
	pricey.ID = "apt-pricey"
	pricey.Price = floatPtr(1450)
	pricey.Amenities = []string{}

	pool := []models.PreferenceRecord{
		{
			UserID:    "tenant-1",
			UserType:  string(models.UserTypeTenant),
			BudgetMax: floatPtr(1500),
			Preferences: map[string]any{
				"cities":    []any{"Berlin"},
				"amenities": []any{"balcony"},
			},
			IsActive: true,
		},
	}

	service := newTestService(
		&stubCandidateSource{listings: []models.Apartment{pricey, cheap}},
		&stubPreferenceSource{pool: pool},
		&stubContactSource{users: map[string]models.User{
			"tenant-1": {ID: "tenant-1", Email: strPtr("tenant@example.com")},
		}},
	)

	resp, err := service.LandlordMatches(context.Background(), "landlord-1", Options{})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	match := resp.Data[0]
	assert.Equal(t, "tenant-1", match.TenantID)
	assert.Equal(t, "apt-cheap", match.BestApartmentID)
	require.NotNil(t, match.Tenant.Email)
	assert.Equal(t, "tenant@example.com", *match.Tenant.Email)
	assert.Equal(t, 2, resp.Meta.ApartmentsConsidered)
	assert.Equal(t, 1, resp.Meta.TenantPoolSize)
}

func TestLandlordMatches_AcceptanceFloor(t *testing.T) {
	listing := testApartment()
	listing.City = "Hamburg"
	listing.Amenities = nil
	listing.Furnished = nil

	pool := []models.PreferenceRecord{
		{
			UserID:   "tenant-1",
			UserType: string(models.UserTypeTenant),
			Preferences: map[string]any{
				"cities":    []any{"Berlin"},
				"amenities": []any{"balcony", "garden", "garage"},
			},
			IsActive: true,
		},
	}

	service := newTestService(
		&stubCandidateSource{listings: []models.Apartment{listing}},
		&stubPreferenceSource{pool: pool},
		&stubContactSource{},
	)

	resp, err := service.LandlordMatches(context.Background(), "landlord-1", Options{})
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Meta.TenantPoolSize)
}

func TestLandlordMatches_HardStopTenantExcluded(t *testing.T) {
	listing := testApartment()
	listing.PetFriendly = false

	pool := []models.PreferenceRecord{
		{
			UserID:      "tenant-1",
			UserType:    string(models.UserTypeTenant),
			PetFriendly: boolPtr(true),
			Preferences: map[string]any{"cities": []any{"Berlin"}},
			IsActive:    true,
		},
	}

	service := newTestService(
		&stubCandidateSource{listings: []models.Apartment{listing}},
		&stubPreferenceSource{pool: pool},
		&stubContactSource{},
	)

	resp, err := service.LandlordMatches(context.Background(), "landlord-1", Options{})
	require.NoError(t, err)

	assert.Empty(t, resp.Data)
}
