package matching

import (
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
)

// FallbackApartments returns the demonstration dataset used when the
// backing store is unreachable on the tenant-seeking path. It keeps the
// ranking pipeline exercisable in degraded mode; callers are told via the
// fallback_used meta flag. Landlord-side matching never uses it, listings
// are not something to fabricate.
func FallbackApartments(now time.Time) []models.Apartment {
	berlinDesc := "Reference listing for local development without a database connection."
	fallbackDesc := "Fallback dataset for smart matching."

	return []models.Apartment{
		{
			ID:            "demo-berlin-01",
			Title:         "Demo • Bright 2-room apartment in Berlin Mitte",
			Description:   &berlinDesc,
			City:          "Berlin",
			PostalCode:    strPtr("10117"),
			Price:         floatPtr(1190),
			Size:          floatPtr(60),
			Rooms:         floatPtr(2),
			Bathrooms:     floatPtr(1),
			Amenities:     []string{"balcony", "dishwasher", "elevator"},
			PetFriendly:   true,
			Furnished:     boolPtr(true),
			Latitude:      floatPtr(52.5208),
			Longitude:     floatPtr(13.4095),
			AvailableFrom: timePtr(now),
			Status:        string(models.ApartmentStatusAvailable),
			Images:        []string{},
		},
		{
			ID:            "demo-hamburg-01",
			Title:         "Demo • Modern loft in Hamburg Hafencity",
			Description:   &fallbackDesc,
			City:          "Hamburg",
			PostalCode:    strPtr("20457"),
			Price:         floatPtr(1490),
			Size:          floatPtr(75),
			Rooms:         floatPtr(3),
			Bathrooms:     floatPtr(1),
			Amenities:     []string{"balcony", "garage", "internet"},
			PetFriendly:   false,
			Furnished:     boolPtr(false),
			Latitude:      floatPtr(53.5413),
			Longitude:     floatPtr(9.9841),
			AvailableFrom: timePtr(now.AddDate(0, 0, 14)),
			Status:        string(models.ApartmentStatusAvailable),
			Images:        []string{},
		},
		{
			ID:            "demo-munich-01",
			Title:         "Demo • Quiet apartment near the English Garden",
			Description:   &fallbackDesc,
			City:          "München",
			PostalCode:    strPtr("80802"),
			Price:         floatPtr(1790),
			Size:          floatPtr(70),
			Rooms:         floatPtr(3),
			Bathrooms:     floatPtr(1),
			Amenities:     []string{"garden", "parking", "internet"},
			PetFriendly:   true,
			Furnished:     boolPtr(false),
			Latitude:      floatPtr(48.1592),
			Longitude:     floatPtr(11.5926),
			AvailableFrom: timePtr(now.AddDate(0, 0, 30)),
			Status:        string(models.ApartmentStatusAvailable),
			Images:        []string{},
		},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }
