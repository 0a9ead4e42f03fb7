package nlp

import (
	"fmt"
	"strconv"
	"strings"
)

// SearchQueryRefiner turns free-text feedback into structured search-query
// deltas. Both entry points are pure: they copy the input query and never
// touch shared state, so repeated feedback compounds on the caller's side
// ("cheaper" twice shrinks maxPrice by 20% twice).
type SearchQueryRefiner struct{}

func NewSearchQueryRefiner() *SearchQueryRefiner {
	return &SearchQueryRefiner{}
}

// RefineSearch applies multiplicative, stacking filter deltas triggered by
// keywords in the feedback text. Triggers that do not appear leave their
// filters untouched.
func (r *SearchQueryRefiner) RefineSearch(query SearchQuery, feedback string) SearchQuery {
	refined := copyQuery(query)
	lowered := strings.ToLower(feedback)

	if cheaperPattern.MatchString(lowered) {
		refined.Filters["maxPrice"] = filterFloat(refined.Filters, "maxPrice", 1000) * 0.8
	}

	if pricierPattern.MatchString(lowered) {
		refined.Filters["minPrice"] = filterFloat(refined.Filters, "minPrice", 0) * 1.5
		refined.Filters["class"] = "business"
	}

	if earlierPattern.MatchString(lowered) {
		refined.Filters["departureTime"] = shiftClock(filterString(refined.Filters, "departureTime", "12:00"), -4)
	}

	if laterPattern.MatchString(lowered) {
		refined.Filters["departureTime"] = shiftClock(filterString(refined.Filters, "departureTime", "12:00"), 4)
	}

	if shorterPattern.MatchString(lowered) {
		refined.Filters["maxStops"] = 0
		refined.Filters["maxDuration"] = filterFloat(refined.Filters, "maxDuration", 600) * 0.8
	}

	if match := nearPattern.FindStringSubmatch(lowered); match != nil {
		refined.Filters["nearLocation"] = strings.TrimSpace(match[1])
	}

	for _, group := range amenityGroupOrder {
		for _, keyword := range amenityGroups[group] {
			if strings.Contains(lowered, keyword) {
				refined.Filters["amenities"] = append(filterAmenities(refined.Filters), group)
				break
			}
		}
	}

	if betterRatedPattern.MatchString(lowered) {
		rating := filterFloat(refined.Filters, "minRating", 3) + 1
		if rating > 5 {
			rating = 5
		}
		refined.Filters["minRating"] = rating
	}

	if match := brandPattern.FindStringSubmatch(lowered); match != nil {
		refined.Filters["preferredBrand"] = match[1]
	}

	return refined
}

// ParseRelativeQuery builds a fresh query seeded from the filters already
// applied in the search context, then resolves relative phrasing against it.
// Unresolvable references leave the corresponding clause untouched.
func (r *SearchQueryRefiner) ParseRelativeQuery(query string, ctx SearchContext) SearchQuery {
	parsed := SearchQuery{
		Query:   query,
		Filters: copyFilters(ctx.AppliedFilters),
		Page:    1,
	}
	lowered := strings.ToLower(query)

	if somethingCheaper.MatchString(lowered) {
		parsed.Filters["maxPrice"] = filterFloat(ctx.AppliedFilters, "maxPrice", 1000) * 0.7
	}

	if somethingPricier.MatchString(lowered) {
		parsed.Filters["minPrice"] = filterFloat(ctx.AppliedFilters, "minPrice", 0) * 1.3
	}

	if match := timeRangePattern.FindStringSubmatch(lowered); match != nil {
		parsed.Filters["departureTimeRange"] = match[1]
	}

	if match := locationPrefPattern.FindStringSubmatch(lowered); match != nil {
		parsed.Filters["locationPreference"] = match[1]
	}

	switch {
	case sortCheapestPattern.MatchString(lowered):
		parsed.Sort = SortPriceAsc
	case sortBestRatedPattern.MatchString(lowered):
		parsed.Sort = SortRatingDesc
	case sortPopularPattern.MatchString(lowered):
		parsed.Sort = SortPopularityDesc
	}

	if match := excludePattern.FindStringSubmatch(lowered); match != nil {
		parsed.Filters["exclude"] = strings.TrimSpace(match[1])
	}

	if match := comparativePattern.FindStringSubmatch(lowered); match != nil {
		reference, modifier := match[1], match[2]
		if result, ok := resolveReference(reference, ctx.PreviousResults); ok {
			parsed.Filters = copyFilters(result.Filters)
			parsed.Query = strings.TrimSpace(result.Query + " " + modifier)
		}
	}

	return parsed
}

// resolveReference matches "first"/"second"/"last" ordinally, then falls
// back to a case-insensitive substring match on the result name.
func resolveReference(reference string, results []SearchResult) (SearchResult, bool) {
	if len(results) == 0 {
		return SearchResult{}, false
	}

	switch strings.TrimSpace(reference) {
	case "first", "first one":
		return results[0], true
	case "second", "second one":
		if len(results) > 1 {
			return results[1], true
		}
		return SearchResult{}, false
	case "last", "last one":
		return results[len(results)-1], true
	}

	needle := strings.ToLower(strings.TrimSpace(reference))
	for _, result := range results {
		if strings.Contains(strings.ToLower(result.Name), needle) {
			return result, true
		}
	}

	return SearchResult{}, false
}

// shiftClock moves an "HH:MM" departure time by the given number of hours,
// wrapping through midnight.
func shiftClock(clock string, hours int) string {
	parts := strings.SplitN(clock, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}

	minute := "00"
	if len(parts) == 2 && parts[1] != "" {
		minute = parts[1]
	}

	hour = ((hour+hours)%24 + 24) % 24
	return fmt.Sprintf("%02d:%s", hour, minute)
}

func copyQuery(query SearchQuery) SearchQuery {
	copied := query
	copied.Filters = copyFilters(query.Filters)
	return copied
}

func copyFilters(filters map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(filters))
	for key, value := range filters {
		if amenities, ok := value.([]string); ok {
			value = append([]string(nil), amenities...)
		}
		copied[key] = value
	}
	return copied
}

func filterFloat(filters map[string]interface{}, key string, fallback float64) float64 {
	switch value := filters[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return fallback
	}
}

func filterString(filters map[string]interface{}, key, fallback string) string {
	if value, ok := filters[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// Amenities accumulate without deduplication: asking for wifi twice lists it
// twice. Callers that care can collapse the list themselves.
func filterAmenities(filters map[string]interface{}) []string {
	switch value := filters["amenities"].(type) {
	case []string:
		return value
	case []interface{}:
		amenities := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				amenities = append(amenities, s)
			}
		}
		return amenities
	default:
		return nil
	}
}
