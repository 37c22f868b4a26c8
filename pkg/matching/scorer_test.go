package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func testApartment() models.Apartment {
	return models.Apartment{
		ID:          "apt-1",
		OwnerID:     "landlord-1",
		Title:       "2-room apartment near Alexanderplatz",
		City:        "Berlin",
		PostalCode:  strPtr("10117"),
		Price:       floatPtr(1200),
		Rooms:       floatPtr(2),
		Amenities:   []string{"Balcony", "elevator"},
		PetFriendly: true,
		Furnished:   boolPtr(true),
		Latitude:    floatPtr(52.5219),
		Longitude:   floatPtr(13.4132),
		Status:      string(models.ApartmentStatusAvailable),
	}
}

func testPreference() Preference {
	return Preference{
		UserID:               "tenant-1",
		BudgetMin:            floatPtr(900),
		BudgetMax:            floatPtr(1500),
		PreferredCities:      []string{"berlin"},
		PreferredPostalCodes: []string{},
		PropertyTypes:        []string{},
		Amenities:            []string{"balcony", "internet"},
	}
}

func TestScorer_StrongMatch(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score(testApartment(), testPreference())

	assert.False(t, result.HardStop)
	assert.Empty(t, result.Disqualifiers)
	assert.Greater(t, result.Score, 60)
	assert.Contains(t, result.MatchedAmenities, "balcony")
	assert.NotContains(t, result.MatchedAmenities, "internet")
}

func TestScorer_HardStops(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	t.Run("price above hard stop threshold", func(t *testing.T) {
		apartment := testApartment()
		apartment.Price = floatPtr(2000) // 1500 * 1.2 = 1800

		result := scorer.Score(apartment, testPreference())

		assert.True(t, result.HardStop)
		assert.Contains(t, result.Disqualifiers, DisqualifierPriceTooHigh)
	})

	t.Run("price inside tolerance band is not a hard stop", func(t *testing.T) {
		apartment := testApartment()
		apartment.Price = floatPtr(1700)

		result := scorer.Score(apartment, testPreference())

		assert.False(t, result.HardStop)
		assert.Empty(t, result.Disqualifiers)
	})

	t.Run("too few rooms", func(t *testing.T) {
		pref := testPreference()
		pref.MinRooms = floatPtr(3)

		result := scorer.Score(testApartment(), pref)

		assert.True(t, result.HardStop)
		assert.Contains(t, result.Disqualifiers, DisqualifierNotEnoughRooms)
	})

	t.Run("pets required but not allowed", func(t *testing.T) {
		apartment := testApartment()
		apartment.PetFriendly = false
		pref := testPreference()
		pref.PetFriendly = boolPtr(true)

		result := scorer.Score(apartment, pref)

		assert.True(t, result.HardStop)
		assert.Contains(t, result.Disqualifiers, DisqualifierPetsNotAllowed)
	})

	t.Run("unknown price is informational only", func(t *testing.T) {
		apartment := testApartment()
		apartment.Price = nil

		result := scorer.Score(apartment, testPreference())

		assert.False(t, result.HardStop)
		assert.Contains(t, result.Disqualifiers, DisqualifierPriceUnknown)
	})
}

func TestScorer_EmptyPreferenceScoresNeutral(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	pref := Preference{
		UserID:               "tenant-1",
		Fallback:             true,
		PreferredCities:      []string{},
		PreferredPostalCodes: []string{},
		PropertyTypes:        []string{},
		Amenities:            []string{},
	}

	result := scorer.Score(testApartment(), pref)

	assert.Equal(t, 50, result.Score)
	assert.Zero(t, result.ScoreMax)
	assert.False(t, result.HardStop)
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	apartment := testApartment()
	pref := testPreference()

	first := scorer.Score(apartment, pref)
	second := scorer.Score(apartment, pref)

	assert.Equal(t, first, second)
}

func TestScorer_AmenityOverlapIsMonotonic(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	pref := testPreference()
	pref.Amenities = []string{"balcony", "elevator", "internet"}

	apartment := testApartment()
	apartment.Amenities = []string{"balcony"}
	one := scorer.Score(apartment, pref)

	apartment.Amenities = []string{"balcony", "elevator"}
	two := scorer.Score(apartment, pref)

	assert.GreaterOrEqual(t, two.RawScore, one.RawScore)
	assert.Len(t, one.MatchedAmenities, 1)
	assert.Len(t, two.MatchedAmenities, 2)
}

func TestScorer_CityMismatchStillScores(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	apartment := testApartment()
	apartment.City = "Hamburg"

	result := scorer.Score(apartment, testPreference())

	assert.False(t, result.HardStop)
	assert.Contains(t, result.Insights, "Different city than preferred")
}

func TestScorer_DistanceFactor(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	t.Run("within radius earns the weight", func(t *testing.T) {
		pref := testPreference()
		pref.MaxDistanceKm = floatPtr(5)
		pref.Anchor = &Anchor{Lat: floatPtr(52.5200), Lon: floatPtr(13.4050)}

		result := scorer.Score(testApartment(), pref)

		assert.NotNil(t, result.DistanceKm)
		assert.Less(t, *result.DistanceKm, 5.0)
	})

	t.Run("zero radius disables the factor", func(t *testing.T) {
		pref := testPreference()
		pref.MaxDistanceKm = floatPtr(0)
		pref.Anchor = &Anchor{Lat: floatPtr(52.5200), Lon: floatPtr(13.4050)}

		with := scorer.Score(testApartment(), pref)
		pref.MaxDistanceKm = nil
		without := scorer.Score(testApartment(), pref)

		assert.Equal(t, without.ScoreMax, with.ScoreMax)
	})

	t.Run("missing coordinates yield no distance", func(t *testing.T) {
		apartment := testApartment()
		apartment.Latitude = nil
		pref := testPreference()
		pref.MaxDistanceKm = floatPtr(5)
		pref.Anchor = &Anchor{Lat: floatPtr(52.5200), Lon: floatPtr(13.4050)}

		result := scorer.Score(apartment, pref)

		assert.Nil(t, result.DistanceKm)
	})
}

func TestScorer_MoveInTiming(t *testing.T) {
	scorer := NewScorer(DefaultConfig())
	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("available before the desired date fits", func(t *testing.T) {
		apartment := testApartment()
		apartment.AvailableFrom = timePtr(moveIn.AddDate(0, 0, -10))
		pref := testPreference()
		pref.MoveInDate = &moveIn

		result := scorer.Score(apartment, pref)

		assert.Contains(t, result.Insights, "Move-in date fits")
	})

	t.Run("short delay earns partial credit", func(t *testing.T) {
		apartment := testApartment()
		apartment.AvailableFrom = timePtr(moveIn.AddDate(0, 0, 14))
		pref := testPreference()
		pref.MoveInDate = &moveIn

		result := scorer.Score(apartment, pref)

		assert.Contains(t, result.Insights, "Available 14 days after desired move-in")
	})

	t.Run("long delay earns nothing", func(t *testing.T) {
		apartment := testApartment()
		apartment.AvailableFrom = timePtr(moveIn.AddDate(0, 0, 60))
		pref := testPreference()
		pref.MoveInDate = &moveIn

		result := scorer.Score(apartment, pref)

		assert.Contains(t, result.Insights, "Availability differs significantly")
	})
}

func TestScorer_PercentBounds(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	t.Run("weak but qualifying match gets the floor", func(t *testing.T) {
		apartment := testApartment()
		apartment.City = "Hamburg"
		apartment.Amenities = []string{}
		apartment.Furnished = boolPtr(false)
		pref := testPreference()
		pref.BudgetMin = nil
		pref.BudgetMax = nil

		result := scorer.Score(apartment, pref)

		assert.GreaterOrEqual(t, result.Score, 10)
		assert.LessOrEqual(t, result.Score, 100)
	})

	t.Run("score never exceeds 100", func(t *testing.T) {
		result := scorer.Score(testApartment(), testPreference())
		assert.LessOrEqual(t, result.Score, 100)
		assert.GreaterOrEqual(t, result.Score, 0)
	})
}
