package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/clover/pkg/metrics"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

// CandidateSource fetches bounded candidate sets. The real store lives
// behind this boundary; the matching service only defines the contract.
type CandidateSource interface {
	CandidatesForPreference(ctx context.Context, pref Preference, limit int) ([]models.Apartment, error)
	ListingsByOwner(ctx context.Context, ownerID string, limit int) ([]models.Apartment, error)
}

// PreferenceSource reads stored preference records.
type PreferenceSource interface {
	GetActivePreference(ctx context.Context, userID, userType string) (*models.PreferenceRecord, error)
	ListActiveTenantPreferences(ctx context.Context, limit int) ([]models.PreferenceRecord, error)
}

// ContactSource resolves user contact records for display.
type ContactSource interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

// Cache is the subset of the redis client used for response caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Options are the per-request knobs of a match call. Zero values fall back
// to the configured defaults.
type Options struct {
	Limit      int
	FetchLimit int
}

// Service orchestrates the two match entry points. Both are read-only and
// idempotent; store failures degrade per the documented fallback policy
// instead of erroring.
type Service struct {
	logger      ectologger.Logger
	scorer      *Scorer
	cfg         Config
	apartments  CandidateSource
	preferences PreferenceSource
	users       ContactSource
	fallback    func(time.Time) []models.Apartment
	cache       Cache
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewService(logger ectologger.Logger, cfg Config, apartments CandidateSource, preferences PreferenceSource, users ContactSource) *Service {
	return &Service{
		logger:      logger,
		scorer:      NewScorer(cfg),
		cfg:         cfg,
		apartments:  apartments,
		preferences: preferences,
		users:       users,
		fallback:    FallbackApartments,
		now:         time.Now,
	}
}

// WithCache enables short-TTL caching of tenant match responses. Cache
// failures are non-fatal.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// WithFallbackDataset swaps the degraded-mode dataset.
func (s *Service) WithFallbackDataset(apartments []models.Apartment) *Service {
	s.fallback = func(time.Time) []models.Apartment { return apartments }
	return s
}

// WithClock pins the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TenantMatches ranks candidate apartments against one tenant's stored
// preference. A missing preference is not an error, matching degrades to
// permissive mode; an unreachable store serves the fallback dataset and
// says so in the meta.
func (s *Service) TenantMatches(ctx context.Context, userID string, opts Options) (*TenantMatchResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.TenantMatches")
	defer span.End()

	start := s.now()
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	fetchLimit := opts.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = s.cfg.DefaultFetchLimit
	}

	cacheKey := fmt.Sprintf("clover:matches:tenant:%s:%d:%d", userID, limit, fetchLimit)
	if cached := s.cachedTenantResponse(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	warnings := []string{}

	prefRow, err := s.preferences.GetActivePreference(ctx, userID, string(models.UserTypeTenant))
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"user_id": userID}).Warn("Failed to load tenant preference")
		warnings = append(warnings, err.Error())
		prefRow = nil
	}
	pref := NormalizePreference(userID, prefRow)

	fallbackUsed := false
	candidates, err := s.apartments.CandidatesForPreference(ctx, pref, fetchLimit)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"user_id": userID}).Warn("Candidate query failed, serving fallback dataset")
		warnings = append(warnings, err.Error())
		candidates = s.fallback(s.now())
		if len(candidates) > fetchLimit {
			candidates = candidates[:fetchLimit]
		}
		fallbackUsed = true
		metrics.RecordFallback()
	}

	results := make([]MatchResult, 0, len(candidates))
	for _, apartment := range candidates {
		result := s.scorer.Score(apartment, pref)
		if result.HardStop {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	response := &TenantMatchResponse{
		Success: true,
		Data:    results,
		Meta: TenantMatchMeta{
			PreferenceFound:    prefRow != nil,
			FallbackUsed:       fallbackUsed,
			PreferenceFallback: pref.Fallback,
			CandidateCount:     len(candidates),
			Warnings:           warnings,
			GeneratedAt:        s.now().UTC(),
		},
	}

	s.storeTenantResponse(ctx, cacheKey, response)
	metrics.RecordMatchRequest("tenant", "ok", s.now().Sub(start).Seconds(), len(candidates))

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":         userID,
		"candidate_count": len(candidates),
		"match_count":     len(results),
		"fallback_used":   fallbackUsed,
	}).Info("Computed tenant matches")

	return response, nil
}

// LandlordMatches ranks the tenant preference pool against a landlord's
// listings, keeping each tenant's single best-fitting listing. Without at
// least one listing matching is meaningless, so the response carries an
// explanatory message instead of fabricated data.
func (s *Service) LandlordMatches(ctx context.Context, landlordID string, opts Options) (*LandlordMatchResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Service.LandlordMatches")
	defer span.End()

	start := s.now()
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.LandlordDefaultLimit
	}
	fetchLimit := opts.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = s.cfg.TenantPoolCap
	}

	warnings := []string{}

	listings, err := s.apartments.ListingsByOwner(ctx, landlordID, s.cfg.LandlordListingCap)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"landlord_id": landlordID}).Warn("Failed to load landlord listings")
		warnings = append(warnings, err.Error())
		listings = nil
	}

	if len(listings) == 0 {
		return &LandlordMatchResponse{
			Success: true,
			Data:    []TenantMatch{},
			Meta: LandlordMatchMeta{
				Message:     "No active listings found. Smart matching needs at least one published apartment.",
				Warnings:    warnings,
				GeneratedAt: s.now().UTC(),
			},
		}, nil
	}

	pool, err := s.preferences.ListActiveTenantPreferences(ctx, fetchLimit)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to load tenant preference pool")
		warnings = append(warnings, err.Error())
		pool = nil
	}

	tenantIDs := make([]string, 0, len(pool))
	for _, row := range pool {
		tenantIDs = append(tenantIDs, row.UserID)
	}

	contacts, err := s.users.GetByIDs(ctx, tenantIDs)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Debug("Failed to resolve tenant contacts")
		contacts = map[string]models.User{}
	}

	matches := []TenantMatch{}
	for i := range pool {
		row := pool[i]
		pref := NormalizePreference(row.UserID, &row)

		var best *MatchResult
		for _, listing := range listings {
			result := s.scorer.Score(listing, pref)
			if result.HardStop {
				continue
			}
			if best == nil || result.Score > best.Score {
				r := result
				best = &r
			}
		}

		if best == nil || best.Score < s.cfg.AcceptanceFloorPercent {
			continue
		}

		contact := TenantContact{ID: row.UserID}
		if user, ok := contacts[row.UserID]; ok {
			contact.Email = user.Email
			contact.FirstName = user.FirstName
			contact.LastName = user.LastName
			contact.Phone = user.Phone
			contact.Username = user.Username
		}

		matches = append(matches, TenantMatch{
			TenantID:         row.UserID,
			Tenant:           contact,
			Score:            best.Score,
			BestApartmentID:  best.Apartment.ID,
			ApartmentTitle:   best.Apartment.Title,
			MatchedAmenities: best.MatchedAmenities,
			DistanceKm:       best.DistanceKm,
			Insights:         best.Insights,
			RawScore:         best.RawScore,
			ScoreMax:         best.ScoreMax,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	metrics.RecordMatchRequest("landlord", "ok", s.now().Sub(start).Seconds(), len(pool))

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"landlord_id":      landlordID,
		"listings":         len(listings),
		"tenant_pool_size": len(pool),
		"match_count":      len(matches),
	}).Info("Computed landlord matches")

	return &LandlordMatchResponse{
		Success: true,
		Data:    matches,
		Meta: LandlordMatchMeta{
			ApartmentsConsidered: len(listings),
			TenantPoolSize:       len(pool),
			Warnings:             warnings,
			GeneratedAt:          s.now().UTC(),
		},
	}, nil
}

func (s *Service) cachedTenantResponse(ctx context.Context, key string) *TenantMatchResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		metrics.RecordCacheLookup("miss")
		return nil
	}

	var response TenantMatchResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		s.logger.WithContext(ctx).WithError(err).Debug("Discarding unreadable cached match response")
		metrics.RecordCacheLookup("miss")
		return nil
	}

	metrics.RecordCacheLookup("hit")
	return &response
}

func (s *Service) storeTenantResponse(ctx context.Context, key string, response *TenantMatchResponse) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.WithContext(ctx).WithError(err).Debug("Failed to cache match response")
	}
}
