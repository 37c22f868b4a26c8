package preference_test

import (
	"context"
	"os"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ramsey-B/clover/internal/repositories/preference"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	// Use environment variables or defaults for test DB
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "clover"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestPreferenceRepository_UpsertRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	repo := preference.NewRepository(db, getTestLogger())

	ctx := context.Background()
	userID := uuid.New().String()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DELETE FROM matching_preferences WHERE user_id = $1", userID)
	})

	record := models.PreferenceRecord{
		UserID:   userID,
		UserType: string(models.UserTypeTenant),
		Preferences: map[string]any{
			"cities":    []any{"Berlin"},
			"amenities": []any{"balcony"},
		},
		BudgetMin:   floatPtr(900),
		BudgetMax:   floatPtr(1500),
		PetFriendly: boolPtr(true),
		IsActive:    true,
	}

	saved, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := repo.GetActivePreference(ctx, userID, "tenant")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	require.NotNil(t, got.BudgetMax)
	assert.Equal(t, 1500.0, *got.BudgetMax)
	assert.Equal(t, []any{"Berlin"}, got.Preferences["cities"])

	// Saving again for the same (user_id, user_type) replaces the record
	record.BudgetMax = floatPtr(1800)
	record.Preferences = map[string]any{"cities": []any{"Hamburg"}}
	_, err = repo.Upsert(ctx, record)
	require.NoError(t, err)

	got, err = repo.GetActivePreference(ctx, userID, "tenant")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.BudgetMax)
	assert.Equal(t, 1800.0, *got.BudgetMax)
	assert.Equal(t, []any{"Hamburg"}, got.Preferences["cities"])
}

func TestPreferenceRepository_MissingRecordIsNil(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	repo := preference.NewRepository(db, getTestLogger())

	got, err := repo.GetActivePreference(context.Background(), uuid.New().String(), "tenant")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreferenceRepository_TenantPool(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	repo := preference.NewRepository(db, getTestLogger())

	ctx := context.Background()
	userID := uuid.New().String()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), "DELETE FROM matching_preferences WHERE user_id = $1", userID)
	})

	_, err := repo.Upsert(ctx, models.PreferenceRecord{
		UserID:      userID,
		UserType:    string(models.UserTypeTenant),
		Preferences: map[string]any{},
		IsActive:    true,
	})
	require.NoError(t, err)

	pool, err := repo.ListActiveTenantPreferences(ctx, 200)
	require.NoError(t, err)

	found := false
	for _, record := range pool {
		assert.Equal(t, string(models.UserTypeTenant), record.UserType)
		assert.True(t, record.IsActive)
		if record.UserID == userID {
			found = true
		}
	}
	assert.True(t, found, "upserted tenant should appear in the pool")
}
