package matching

import (
	"time"

	"github.com/Ramsey-B/clover/pkg/geo"
)

// Anchor is the reference point for distance scoring.
type Anchor struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Label *string  `json:"label,omitempty"`
}

// Point converts the anchor into a geo point for distance math.
func (a *Anchor) Point() *geo.Point {
	if a == nil {
		return nil
	}
	return &geo.Point{Lat: a.Lat, Lon: a.Lon}
}

// Preference is the canonical, fully typed preference object the scorer
// consumes. It is produced once by NormalizePreference; downstream code
// never re-probes raw fields. Set-valued fields hold lower-cased, trimmed,
// sorted entries. Nil means unspecified, never "false" or "zero".
type Preference struct {
	UserID   string `json:"user_id"`
	Fallback bool   `json:"fallback"`

	BudgetMin *float64 `json:"budget_min"`
	BudgetMax *float64 `json:"budget_max"`

	PreferredCities      []string `json:"preferred_cities"`
	PreferredPostalCodes []string `json:"preferred_postal_codes"`
	PropertyTypes        []string `json:"property_types"`
	Amenities            []string `json:"amenities"`

	MinRooms *float64 `json:"min_rooms"`
	MaxRooms *float64 `json:"max_rooms"`

	PetFriendly *bool `json:"pet_friendly"`
	Furnished   *bool `json:"furnished"`

	MaxDistanceKm *float64   `json:"max_distance_km"`
	Anchor        *Anchor    `json:"anchor_location,omitempty"`
	MoveInDate    *time.Time `json:"move_in_date,omitempty"`
}

func contains(set []string, value string) bool {
	for _, item := range set {
		if item == value {
			return true
		}
	}
	return false
}
