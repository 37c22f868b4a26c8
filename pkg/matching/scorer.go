package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ramsey-B/clover/pkg/geo"
	"github.com/Ramsey-B/clover/pkg/models"
)

// Disqualifier tags. The first three are hard deal-breakers that remove a
// candidate from results; price_unknown is informational only.
const (
	DisqualifierPriceTooHigh   = "price_too_high"
	DisqualifierPetsNotAllowed = "pets_not_allowed"
	DisqualifierNotEnoughRooms = "not_enough_rooms"
	DisqualifierPriceUnknown   = "price_unknown"
)

// MatchResult is the scored fit between one apartment and one preference.
// Computed per request, never persisted. HardStop results exist only as
// intermediate values; the orchestrator drops them before output.
type MatchResult struct {
	Apartment        models.Apartment `json:"apartment"`
	Score            int              `json:"score"`
	Insights         []string         `json:"insights"`
	MatchedAmenities []string         `json:"matched_amenities"`
	DistanceKm       *float64         `json:"distance_km"`
	RawScore         float64          `json:"raw_score"`
	ScoreMax         float64          `json:"score_max"`
	Disqualifiers    []string         `json:"disqualifiers"`
	HardStop         bool             `json:"-"`
}

// Scorer computes weighted fit scores. Pure and deterministic: no I/O, no
// mutation of its inputs, identical inputs yield identical results.
type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates one apartment against one normalized preference. Each factor
// only participates when the preference specifies it, so an empty
// preference scores at the neutral default instead of zero.
func (s *Scorer) Score(apartment models.Apartment, pref Preference) MatchResult {
	w := s.cfg.Weights

	insights := []string{}
	disqualifiers := []string{}
	matchedAmenities := []string{}
	score := 0.0
	scoreMax := 0.0

	// Budget
	if pref.BudgetMin != nil || pref.BudgetMax != nil {
		scoreMax += w.Budget
		if apartment.Price == nil {
			disqualifiers = append(disqualifiers, DisqualifierPriceUnknown)
		} else {
			price := *apartment.Price
			withinMin := pref.BudgetMin == nil || price >= *pref.BudgetMin
			withinMax := pref.BudgetMax == nil || price <= *pref.BudgetMax

			switch {
			case withinMin && withinMax:
				score += w.Budget
				insights = append(insights, "Budget matches the listing")
			case pref.BudgetMax != nil && price > *pref.BudgetMax*s.cfg.PriceHardStopFactor:
				disqualifiers = append(disqualifiers, DisqualifierPriceTooHigh)
			case pref.BudgetMin != nil && price < *pref.BudgetMin*s.cfg.PriceSoftFloorFactor:
				// far under budget can indicate a quality mismatch, treat softly
				score += w.Budget * s.cfg.SoftPartialCredit
				insights = append(insights, "Priced below budget (possible alternative)")
			}
		}
	}

	// City
	apartmentCity := strings.ToLower(strings.TrimSpace(apartment.City))
	if len(pref.PreferredCities) > 0 {
		scoreMax += w.Location
		if contains(pref.PreferredCities, apartmentCity) {
			score += w.Location
			insights = append(insights, "Preferred city matches")
		} else {
			insights = append(insights, "Different city than preferred")
		}
	}

	// Postal code, an independent half-weight bonus on top of city
	if len(pref.PreferredPostalCodes) > 0 {
		scoreMax += w.Location * 0.5
		if apartment.PostalCode != nil && contains(pref.PreferredPostalCodes, strings.TrimSpace(*apartment.PostalCode)) {
			score += w.Location * 0.5
			insights = append(insights, "Preferred postal code matches")
		}
	}

	// Property type
	if len(pref.PropertyTypes) > 0 {
		scoreMax += w.PropertyType
		apartmentType := ""
		if apartment.PropertyType != nil {
			apartmentType = strings.ToLower(strings.TrimSpace(*apartment.PropertyType))
		}
		if apartmentType != "" && contains(pref.PropertyTypes, apartmentType) {
			score += w.PropertyType
			insights = append(insights, "Desired property type")
		}
	}

	// Rooms
	if pref.MinRooms != nil || pref.MaxRooms != nil {
		scoreMax += w.Rooms
		if apartment.Rooms == nil {
			insights = append(insights, "Room count unknown")
		} else {
			rooms := *apartment.Rooms
			meetsMin := pref.MinRooms == nil || rooms >= *pref.MinRooms
			meetsMax := pref.MaxRooms == nil || rooms <= *pref.MaxRooms

			switch {
			case meetsMin && meetsMax:
				score += w.Rooms
				insights = append(insights, "Room count within desired range")
			case !meetsMin:
				disqualifiers = append(disqualifiers, DisqualifierNotEnoughRooms)
			default:
				score += w.Rooms * s.cfg.SoftPartialCredit
				insights = append(insights, "More rooms than requested (soft mismatch)")
			}
		}
	}

	// Amenities
	if len(pref.Amenities) > 0 {
		scoreMax += w.Amenities
		for _, amenity := range apartment.Amenities {
			normalized := strings.ToLower(strings.TrimSpace(amenity))
			if contains(pref.Amenities, normalized) {
				matchedAmenities = append(matchedAmenities, normalized)
			}
		}
		if len(matchedAmenities) > 0 {
			fraction := math.Min(float64(len(matchedAmenities))/float64(len(pref.Amenities)), 1)
			score += fraction * w.Amenities
			insights = append(insights, fmt.Sprintf("%d desired amenities found", len(matchedAmenities)))
		}
	}

	// Pets
	if pref.PetFriendly != nil {
		scoreMax += w.Pets
		if apartment.PetFriendly == *pref.PetFriendly {
			score += w.Pets
			if *pref.PetFriendly {
				insights = append(insights, "Pets allowed")
			} else {
				insights = append(insights, "Pet-free apartment")
			}
		} else if *pref.PetFriendly && !apartment.PetFriendly {
			disqualifiers = append(disqualifiers, DisqualifierPetsNotAllowed)
		}
	}

	// Furnished, only when the listing states a fact
	if pref.Furnished != nil {
		scoreMax += w.Furnished
		if apartment.Furnished != nil && *apartment.Furnished == *pref.Furnished {
			score += w.Furnished
			if *pref.Furnished {
				insights = append(insights, "Furnished as requested")
			} else {
				insights = append(insights, "Unfurnished as requested")
			}
		}
	}

	// Distance to anchor
	distanceKm := geo.Distance(pref.Anchor.Point(), &geo.Point{Lat: apartment.Latitude, Lon: apartment.Longitude})
	if pref.Anchor != nil && pref.MaxDistanceKm != nil && *pref.MaxDistanceKm > 0 {
		scoreMax += w.Distance
		if distanceKm != nil && *distanceKm <= *pref.MaxDistanceKm {
			score += w.Distance
			insights = append(insights, fmt.Sprintf("Within %g km (%.1f km)", *pref.MaxDistanceKm, *distanceKm))
		} else if distanceKm != nil {
			insights = append(insights, fmt.Sprintf("Distance %.1f km (outside radius)", *distanceKm))
		}
	}

	// Move-in timing
	if pref.MoveInDate != nil {
		scoreMax += w.Availability
		if apartment.AvailableFrom != nil {
			availableFrom := *apartment.AvailableFrom
			if !availableFrom.After(*pref.MoveInDate) {
				score += w.Availability
				insights = append(insights, "Move-in date fits")
			} else {
				diffDays := int(math.Round(availableFrom.Sub(*pref.MoveInDate).Hours() / 24))
				if diffDays <= s.cfg.MoveInGraceDays {
					score += w.Availability * s.cfg.MoveInLateCredit
					insights = append(insights, fmt.Sprintf("Available %d days after desired move-in", diffDays))
				} else {
					insights = append(insights, "Availability differs significantly")
				}
			}
		}
	}

	hardStop := contains(disqualifiers, DisqualifierPriceTooHigh) ||
		contains(disqualifiers, DisqualifierPetsNotAllowed) ||
		contains(disqualifiers, DisqualifierNotEnoughRooms)

	percent := s.cfg.NeutralScorePercent
	if scoreMax > 0 {
		percent = int(math.Round(score / scoreMax * 100))
		if percent < s.cfg.MinScorePercent {
			percent = s.cfg.MinScorePercent
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return MatchResult{
		Apartment:        apartment,
		Score:            percent,
		Insights:         insights,
		MatchedAmenities: matchedAmenities,
		DistanceKm:       roundKm(distanceKm),
		RawScore:         score,
		ScoreMax:         scoreMax,
		Disqualifiers:    disqualifiers,
		HardStop:         hardStop,
	}
}

func roundKm(km *float64) *float64 {
	if km == nil {
		return nil
	}
	rounded := math.Round(*km*10) / 10
	return &rounded
}
