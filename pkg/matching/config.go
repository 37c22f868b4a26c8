// Package matching implements the two-sided apartment matching engine.
package matching

// Weights are the per-factor point weights. They sum to 100 when every
// factor is applicable; scoreMax only accumulates the applicable ones.
type Weights struct {
	Budget       float64
	Location     float64
	PropertyType float64
	Rooms        float64
	Amenities    float64
	Pets         float64
	Furnished    float64
	Distance     float64
	Availability float64
}

// Config contains the tuning values of the matching engine. The price
// multipliers, partial credits and the acceptance floor are empirical
// product tuning; change them with product sign-off, not in passing.
type Config struct {
	Weights Weights

	// PriceHardStopFactor disqualifies a listing priced above
	// budgetMax * factor.
	PriceHardStopFactor float64
	// PriceSoftFloorFactor marks a listing priced below
	// budgetMin * factor as a possible under-priced alternative.
	PriceSoftFloorFactor float64
	// SoftPartialCredit is the weight fraction granted to soft
	// mismatches (too cheap, too many rooms).
	SoftPartialCredit float64

	// MoveInGraceDays is how many days past the desired move-in date an
	// apartment may become available and still earn partial credit.
	MoveInGraceDays int
	// MoveInLateCredit is the weight fraction granted inside the grace
	// window.
	MoveInLateCredit float64

	// MinScorePercent keeps a qualifying but weak match from rounding
	// to zero and disappearing from sorted output ambiguously.
	MinScorePercent int
	// NeutralScorePercent is returned when no factor is applicable.
	NeutralScorePercent int

	// AcceptanceFloorPercent drops landlord-side tenants whose best
	// listing scores below this.
	AcceptanceFloorPercent int

	// Candidate query widening, so near-misses reach the scorer.
	QueryPriceFloorFactor float64
	QueryPriceCeilFactor  float64

	// Result and fetch caps.
	DefaultLimit         int
	DefaultFetchLimit    int
	LandlordDefaultLimit int
	LandlordListingCap   int
	TenantPoolCap        int
}

// DefaultConfig returns the production tuning of the matching engine.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Budget:       22,
			Location:     18,
			PropertyType: 10,
			Rooms:        8,
			Amenities:    15,
			Pets:         6,
			Furnished:    4,
			Distance:     10,
			Availability: 7,
		},
		PriceHardStopFactor:    1.2,
		PriceSoftFloorFactor:   0.7,
		SoftPartialCredit:      0.4,
		MoveInGraceDays:        30,
		MoveInLateCredit:       0.6,
		MinScorePercent:        10,
		NeutralScorePercent:    50,
		AcceptanceFloorPercent: 25,
		QueryPriceFloorFactor:  0.7,
		QueryPriceCeilFactor:   1.25,
		DefaultLimit:           20,
		DefaultFetchLimit:      120,
		LandlordDefaultLimit:   25,
		LandlordListingCap:     50,
		TenantPoolCap:          200,
	}
}
