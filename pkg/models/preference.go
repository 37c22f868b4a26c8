package models

import "time"

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
	UserTypeTenant   UserType = "tenant"
	UserTypeLandlord UserType = "landlord"
)

// PreferenceRecord is the stored shape of a user's matching preferences:
// a free-form JSON blob plus promoted scalar columns for the fields the
// candidate query filters on. One active record per (user_id, user_type).
type PreferenceRecord struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"user_id"`
	UserType            string         `json:"user_type"`
	Preferences         map[string]any `json:"preferences"`
	BudgetMin           *float64       `json:"budget_min,omitempty"`
	BudgetMax           *float64       `json:"budget_max,omitempty"`
	MaxDistanceKm       *float64       `json:"max_distance_km,omitempty"`
	PetFriendly         *bool          `json:"pet_friendly,omitempty"`
	Furnished           *bool          `json:"furnished,omitempty"`
	SmokingAllowed      *bool          `json:"smoking_allowed,omitempty"`
	LeaseDurationMonths *int           `json:"lease_duration_months,omitempty"`
	PreferredMoveInDate *time.Time     `json:"preferred_move_in_date,omitempty"`
	IsActive            bool           `json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// UpsertPreferencesRequest is the PUT payload for a user's preference
// record. The blob carries everything the scorer understands; the scalar
// fields are denormalized into promoted columns on write.
type UpsertPreferencesRequest struct {
	Preferences         map[string]any `json:"preferences"`
	BudgetMin           *float64       `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax           *float64       `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	MaxDistanceKm       *float64       `json:"max_distance_km,omitempty" validate:"omitempty,gte=0"`
	PetFriendly         *bool          `json:"pet_friendly,omitempty"`
	Furnished           *bool          `json:"furnished,omitempty"`
	SmokingAllowed      *bool          `json:"smoking_allowed,omitempty"`
	LeaseDurationMonths *int           `json:"lease_duration_months,omitempty" validate:"omitempty,gte=0"`
	PreferredMoveInDate *time.Time     `json:"preferred_move_in_date,omitempty"`
	IsActive            *bool          `json:"is_active,omitempty"`
}
