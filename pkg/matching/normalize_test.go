package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

func TestNormalizePreference_NilRecord(t *testing.T) {
	pref := NormalizePreference("tenant-1", nil)

	assert.Equal(t, "tenant-1", pref.UserID)
	assert.True(t, pref.Fallback)
	assert.Empty(t, pref.PreferredCities)
	assert.Empty(t, pref.Amenities)
	assert.Nil(t, pref.BudgetMax)
	assert.Nil(t, pref.PetFriendly)
}

func TestNormalizePreference_CityAliases(t *testing.T) {
	cases := []struct {
		name string
		blob map[string]any
	}{
		{"cities", map[string]any{"cities": []any{"Berlin", "Hamburg"}}},
		{"locations", map[string]any{"locations": []any{"Berlin", "Hamburg"}}},
		{"preferredCities", map[string]any{"preferredCities": []any{"Berlin", "Hamburg"}}},
		{"preferred_locations", map[string]any{"preferred_locations": []any{"Berlin", "Hamburg"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := &models.PreferenceRecord{UserID: "tenant-1", Preferences: tc.blob}
			pref := NormalizePreference("tenant-1", row)
			assert.Equal(t, []string{"berlin", "hamburg"}, pref.PreferredCities)
		})
	}
}

func TestNormalizePreference_CommaSeparatedString(t *testing.T) {
	row := &models.PreferenceRecord{
		UserID: "tenant-1",
		Preferences: map[string]any{
			"cities":    "Berlin, Hamburg , ,Berlin",
			"amenities": "Balcony,DISHWASHER",
		},
	}

	pref := NormalizePreference("tenant-1", row)

	assert.Equal(t, []string{"berlin", "hamburg"}, pref.PreferredCities)
	assert.Equal(t, []string{"balcony", "dishwasher"}, pref.Amenities)
}

func TestNormalizePreference_PostalCodesKeepCase(t *testing.T) {
	row := &models.PreferenceRecord{
		UserID:      "tenant-1",
		Preferences: map[string]any{"zipCodes": []any{"10117", " 20457 "}},
	}

	pref := NormalizePreference("tenant-1", row)

	assert.Equal(t, []string{"10117", "20457"}, pref.PreferredPostalCodes)
}

func TestNormalizePreference_Budget(t *testing.T) {
	t.Run("promoted column wins", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			BudgetMax:   floatPtr(1500),
			Preferences: map[string]any{"budget_max": 999.0},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.BudgetMax)
		assert.Equal(t, 1500.0, *pref.BudgetMax)
	})

	t.Run("blob alias fills a missing column", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			Preferences: map[string]any{"budgetMin": "800"},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.BudgetMin)
		assert.Equal(t, 800.0, *pref.BudgetMin)
	})

	t.Run("garbage stays unspecified", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			Preferences: map[string]any{"budget_max": "not a number"},
		}

		pref := NormalizePreference("tenant-1", row)

		assert.Nil(t, pref.BudgetMax)
	})
}

func TestNormalizePreference_Booleans(t *testing.T) {
	t.Run("blob boolean wins over promoted column", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			PetFriendly: boolPtr(false),
			Preferences: map[string]any{"petFriendly": true},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.PetFriendly)
		assert.True(t, *pref.PetFriendly)
	})

	t.Run("truthy strings are not booleans", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			Preferences: map[string]any{"furnished": "yes"},
		}

		pref := NormalizePreference("tenant-1", row)

		assert.Nil(t, pref.Furnished)
	})
}

func TestNormalizePreference_NestedRooms(t *testing.T) {
	row := &models.PreferenceRecord{
		UserID: "tenant-1",
		Preferences: map[string]any{
			"rooms": map[string]any{"min": 2.0, "max": 4.0},
		},
	}

	pref := NormalizePreference("tenant-1", row)

	require.NotNil(t, pref.MinRooms)
	require.NotNil(t, pref.MaxRooms)
	assert.Equal(t, 2.0, *pref.MinRooms)
	assert.Equal(t, 4.0, *pref.MaxRooms)
}

func TestNormalizePreference_TopLevelRoomsWinOverNested(t *testing.T) {
	row := &models.PreferenceRecord{
		UserID: "tenant-1",
		Preferences: map[string]any{
			"minRooms": 3.0,
			"rooms":    map[string]any{"min": 1.0},
		},
	}

	pref := NormalizePreference("tenant-1", row)

	require.NotNil(t, pref.MinRooms)
	assert.Equal(t, 3.0, *pref.MinRooms)
}

func TestNormalizePreference_Anchor(t *testing.T) {
	t.Run("preferred_location with misspelled latitude alias", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID: "tenant-1",
			Preferences: map[string]any{
				"preferred_location": map[string]any{
					"latitute": 52.52,
					"lng":      13.405,
					"city":     "Berlin",
				},
			},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.Anchor)
		require.NotNil(t, pref.Anchor.Lat)
		require.NotNil(t, pref.Anchor.Lon)
		assert.Equal(t, 52.52, *pref.Anchor.Lat)
		assert.Equal(t, 13.405, *pref.Anchor.Lon)
		require.NotNil(t, pref.Anchor.Label)
		assert.Equal(t, "Berlin", *pref.Anchor.Label)
	})

	t.Run("no location yields no anchor", func(t *testing.T) {
		row := &models.PreferenceRecord{UserID: "tenant-1", Preferences: map[string]any{}}
		pref := NormalizePreference("tenant-1", row)
		assert.Nil(t, pref.Anchor)
	})
}

func TestNormalizePreference_MoveInDate(t *testing.T) {
	t.Run("date-only string", func(t *testing.T) {
		row := &models.PreferenceRecord{
			UserID:      "tenant-1",
			Preferences: map[string]any{"move_in_date": "2026-09-01"},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.MoveInDate)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *pref.MoveInDate)
	})

	t.Run("promoted column wins", func(t *testing.T) {
		moveIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		row := &models.PreferenceRecord{
			UserID:              "tenant-1",
			PreferredMoveInDate: &moveIn,
			Preferences:         map[string]any{"move_in_date": "2026-09-01"},
		}

		pref := NormalizePreference("tenant-1", row)

		require.NotNil(t, pref.MoveInDate)
		assert.Equal(t, moveIn, *pref.MoveInDate)
	})
}
