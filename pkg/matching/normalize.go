package matching

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
)

// NormalizePreference converts a stored preference record (or its absence)
// into a canonical Preference. The blob allows flexible extra fields keyed
// by several historical aliases; each canonical field probes a fixed
// priority list once, here, so nothing downstream re-parses raw input.
// Coercion failures yield "unspecified", never an error.
func NormalizePreference(userID string, row *models.PreferenceRecord) Preference {
	if row == nil {
		return Preference{
			UserID:               userID,
			Fallback:             true,
			PreferredCities:      []string{},
			PreferredPostalCodes: []string{},
			PropertyTypes:        []string{},
			Amenities:            []string{},
		}
	}

	prefs := row.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}

	cities := normalizeSet(firstList(prefs, "cities", "locations", "preferredCities", "preferred_locations"), true)
	postalCodes := normalizeSet(firstList(prefs, "postalCodes", "zipCodes", "postcodes"), false)
	propertyTypes := normalizeSet(firstList(prefs, "propertyTypes", "property_types", "types"), true)
	amenities := normalizeSet(toList(prefs["amenities"]), true)

	pref := Preference{
		UserID:               row.UserID,
		Fallback:             false,
		BudgetMin:            firstNumber(row.BudgetMin, prefs, "budget_min", "budgetMin"),
		BudgetMax:            firstNumber(row.BudgetMax, prefs, "budget_max", "budgetMax"),
		PreferredCities:      cities,
		PreferredPostalCodes: postalCodes,
		PropertyTypes:        propertyTypes,
		Amenities:            amenities,
		MinRooms:             firstNumber(nil, prefs, "minRooms", "min_rooms"),
		MaxRooms:             firstNumber(nil, prefs, "maxRooms", "max_rooms"),
		PetFriendly:          firstBool(row.PetFriendly, prefs, "petFriendly", "pet_friendly"),
		Furnished:            firstBool(row.Furnished, prefs, "furnished"),
		MaxDistanceKm:        firstNumber(row.MaxDistanceKm, prefs, "maxDistanceKm", "max_distance_km"),
		Anchor:               normalizeAnchor(prefs),
		MoveInDate:           firstDate(row.PreferredMoveInDate, prefs, "move_in_date", "moveInDate"),
	}

	// legacy payloads nest room bounds under "rooms"
	if pref.MinRooms == nil || pref.MaxRooms == nil {
		if rooms, ok := prefs["rooms"].(map[string]any); ok {
			if pref.MinRooms == nil {
				pref.MinRooms = toNumber(rooms["min"])
			}
			if pref.MaxRooms == nil {
				pref.MaxRooms = toNumber(rooms["max"])
			}
		}
	}

	return pref
}

func normalizeAnchor(prefs map[string]any) *Anchor {
	var raw map[string]any
	for _, key := range []string{"preferred_location", "location", "anchorLocation"} {
		if m, ok := prefs[key].(map[string]any); ok {
			raw = m
			break
		}
	}
	if raw == nil {
		return nil
	}

	anchor := &Anchor{
		Lat: toNumber(firstValue(raw, "lat", "latitude", "latitute")),
		Lon: toNumber(firstValue(raw, "lon", "lng", "longitude")),
	}
	if label := toStringOrEmpty(firstValue(raw, "label", "city")); label != "" {
		anchor.Label = &label
	}
	return anchor
}

// firstNumber prefers the promoted column, then probes blob aliases.
func firstNumber(promoted *float64, prefs map[string]any, keys ...string) *float64 {
	if promoted != nil {
		return promoted
	}
	return toNumber(firstValue(prefs, keys...))
}

// firstBool accepts only an actual boolean from the blob; anything else is
// unspecified, never guessed. Blob values win over the promoted column so
// a stale denormalization cannot shadow an explicit choice.
func firstBool(promoted *bool, prefs map[string]any, keys ...string) *bool {
	for _, key := range keys {
		if v, ok := prefs[key].(bool); ok {
			b := v
			return &b
		}
	}
	return promoted
}

func firstDate(promoted *time.Time, prefs map[string]any, keys ...string) *time.Time {
	if promoted != nil {
		return promoted
	}
	return toDate(firstValue(prefs, keys...))
}

// firstValue returns the first alias that is present and non-nil.
func firstValue(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstList returns the first alias that yields a non-empty list.
func firstList(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		if list := toList(m[key]); len(list) > 0 {
			return list
		}
	}
	return []string{}
}

// toList coerces a value into a list of strings. Comma-separated strings
// are split; scalars become a single-entry list.
func toList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s := toStringOrEmpty(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		parts := strings.Split(v, ",")
		items := make([]string, 0, len(parts))
		for _, part := range parts {
			if s := strings.TrimSpace(part); s != "" {
				items = append(items, s)
			}
		}
		return items
	default:
		if s := toStringOrEmpty(v); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

func normalizeSet(items []string, lower bool) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if lower {
			s = strings.ToLower(s)
		}
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// toNumber parses leniently; non-finite results become unspecified.
func toNumber(value any) *float64 {
	var parsed float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		parsed = f
	default:
		return nil
	}

	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

func toDate(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

func toStringOrEmpty(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
