package preference

import (
	"database/sql"
	"time"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
)

func FromPreferenceRecord(record models.PreferenceRecord) *PreferenceRow {
	prefs := record.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}

	return &PreferenceRow{
		ID:                  sql.NullString{String: record.ID, Valid: record.ID != ""},
		UserID:              sql.NullString{String: record.UserID, Valid: record.UserID != ""},
		UserType:            sql.NullString{String: record.UserType, Valid: record.UserType != ""},
		Preferences:         database.JSONB[map[string]any]{Data: prefs},
		BudgetMin:           floatToNull(record.BudgetMin),
		BudgetMax:           floatToNull(record.BudgetMax),
		MaxDistanceKm:       floatToNull(record.MaxDistanceKm),
		PetFriendly:         boolToNull(record.PetFriendly),
		Furnished:           boolToNull(record.Furnished),
		SmokingAllowed:      boolToNull(record.SmokingAllowed),
		LeaseDurationMonths: intToNull(record.LeaseDurationMonths),
		PreferredMoveInDate: timeToNull(record.PreferredMoveInDate),
		IsActive:            sql.NullBool{Bool: record.IsActive, Valid: true},
		CreatedAt:           sql.NullTime{Time: record.CreatedAt, Valid: !record.CreatedAt.IsZero()},
		UpdatedAt:           sql.NullTime{Time: record.UpdatedAt, Valid: !record.UpdatedAt.IsZero()},
	}
}

type PreferenceRow struct {
	ID                  sql.NullString                 `db:"id"`
	UserID              sql.NullString                 `db:"user_id"`
	UserType            sql.NullString                 `db:"user_type"`
	Preferences         database.JSONB[map[string]any] `db:"preferences"`
	BudgetMin           sql.NullFloat64                `db:"budget_min"`
	BudgetMax           sql.NullFloat64                `db:"budget_max"`
	MaxDistanceKm       sql.NullFloat64                `db:"max_distance_km"`
	PetFriendly         sql.NullBool                   `db:"pet_friendly"`
	Furnished           sql.NullBool                   `db:"furnished"`
	SmokingAllowed      sql.NullBool                   `db:"smoking_allowed"`
	LeaseDurationMonths sql.NullInt64                  `db:"lease_duration_months"`
	PreferredMoveInDate sql.NullTime                   `db:"preferred_move_in_date"`
	IsActive            sql.NullBool                   `db:"is_active"`
	CreatedAt           sql.NullTime                   `db:"created_at"`
	UpdatedAt           sql.NullTime                   `db:"updated_at"`
}

const (
	preferenceTable = "matching_preferences"
)

var preferenceStruct = database.NewStruct(new(PreferenceRow))

func ToPreferenceRecord(row *PreferenceRow) models.PreferenceRecord {
	return models.PreferenceRecord{
		ID:                  row.ID.String,
		UserID:              row.UserID.String,
		UserType:            row.UserType.String,
		Preferences:         row.Preferences.Data,
		BudgetMin:           nullToFloat(row.BudgetMin),
		BudgetMax:           nullToFloat(row.BudgetMax),
		MaxDistanceKm:       nullToFloat(row.MaxDistanceKm),
		PetFriendly:         nullToBool(row.PetFriendly),
		Furnished:           nullToBool(row.Furnished),
		SmokingAllowed:      nullToBool(row.SmokingAllowed),
		LeaseDurationMonths: nullToInt(row.LeaseDurationMonths),
		PreferredMoveInDate: nullToTime(row.PreferredMoveInDate),
		IsActive:            row.IsActive.Bool,
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
}

func floatToNull(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func boolToNull(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func intToNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func timeToNull(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullToFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullToBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullToInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullToTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
