package matching

import "time"

// TenantMatchMeta describes how a tenant-side match response was produced.
type TenantMatchMeta struct {
	PreferenceFound    bool      `json:"preference_found"`
	FallbackUsed       bool      `json:"fallback_used"`
	PreferenceFallback bool      `json:"preference_fallback"`
	CandidateCount     int       `json:"candidate_count"`
	Warnings           []string  `json:"warnings"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// TenantMatchResponse is the tenant-seeking-apartments result envelope.
type TenantMatchResponse struct {
	Success bool            `json:"success"`
	Data    []MatchResult   `json:"data"`
	Meta    TenantMatchMeta `json:"meta"`
}

// TenantContact is the contact card attached to a landlord-side match.
// Missing user rows degrade to empty fields, never to an error.
type TenantContact struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Username  *string `json:"username"`
}

// TenantMatch is one tenant paired with their single best-fitting listing.
type TenantMatch struct {
	TenantID         string        `json:"tenant_id"`
	Tenant           TenantContact `json:"tenant"`
	Score            int           `json:"score"`
	BestApartmentID  string        `json:"best_apartment_id"`
	ApartmentTitle   string        `json:"apartment_title"`
	MatchedAmenities []string      `json:"matched_amenities"`
	DistanceKm       *float64      `json:"distance_km"`
	Insights         []string      `json:"insights"`
	RawScore         float64       `json:"raw_score"`
	ScoreMax         float64       `json:"score_max"`
}

// LandlordMatchMeta describes how a landlord-side match response was
// produced. Message is set when matching could not run at all.
type LandlordMatchMeta struct {
	ApartmentsConsidered int       `json:"apartments_considered"`
	TenantPoolSize       int       `json:"tenant_pool_size"`
	Message              string    `json:"message,omitempty"`
	Warnings             []string  `json:"warnings"`
	GeneratedAt          time.Time `json:"generated_at"`
}

// LandlordMatchResponse is the landlord-seeking-tenants result envelope.
type LandlordMatchResponse struct {
	Success bool              `json:"success"`
	Data    []TenantMatch     `json:"data"`
	Meta    LandlordMatchMeta `json:"meta"`
}

// PreferenceMeta accompanies preference reads and writes.
type PreferenceMeta struct {
	PreferenceFound bool       `json:"preference_found"`
	GeneratedAt     time.Time  `json:"generated_at"`
	SavedAt         *time.Time `json:"saved_at,omitempty"`
}

// PreferenceResponse wraps a normalized preference.
type PreferenceResponse struct {
	Success bool           `json:"success"`
	Data    Preference     `json:"data"`
	Meta    PreferenceMeta `json:"meta"`
}
