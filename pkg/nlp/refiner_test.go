package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineSearch_CheaperCompounds(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	query := SearchQuery{
		Query:   "hotels in Lisbon",
		Filters: map[string]interface{}{"maxPrice": 1000.0},
	}

	once := refiner.RefineSearch(query, "something cheaper")
	assert.Equal(t, 800.0, once.Filters["maxPrice"])

	twice := refiner.RefineSearch(once, "something cheaper")
	assert.Equal(t, 640.0, twice.Filters["maxPrice"])

	// The input query is never mutated.
	assert.Equal(t, 1000.0, query.Filters["maxPrice"])
}

func TestRefineSearch_CheaperDefaultBaseline(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	refined := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "less expensive please")
	assert.Equal(t, 800.0, refined.Filters["maxPrice"])
}

func TestRefineSearch_Luxury(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	query := SearchQuery{Filters: map[string]interface{}{"minPrice": 200.0}}
	refined := refiner.RefineSearch(query, "show me luxury options")

	assert.Equal(t, 300.0, refined.Filters["minPrice"])
	assert.Equal(t, "business", refined.Filters["class"])
}

func TestRefineSearch_TimeShiftsWrapMidnight(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	query := SearchQuery{Filters: map[string]interface{}{"departureTime": "02:00"}}
	earlier := refiner.RefineSearch(query, "can we leave earlier")
	assert.Equal(t, "22:00", earlier.Filters["departureTime"])

	query = SearchQuery{Filters: map[string]interface{}{"departureTime": "22:30"}}
	later := refiner.RefineSearch(query, "a bit later works too")
	assert.Equal(t, "02:30", later.Filters["departureTime"])
}

func TestRefineSearch_Direct(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	refined := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "direct flights only please")

	assert.Equal(t, 0, refined.Filters["maxStops"])
	assert.Equal(t, 480.0, refined.Filters["maxDuration"])
}

func TestRefineSearch_NearLocation(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	refined := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "closer to the old town")
	assert.Equal(t, "old town", refined.Filters["nearLocation"])
}

func TestRefineSearch_AmenitiesAccumulateWithoutDedup(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	once := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "needs wifi and parking")
	assert.Equal(t, []string{"wifi", "parking"}, once.Filters["amenities"])

	twice := refiner.RefineSearch(once, "definitely wifi")
	assert.Equal(t, []string{"wifi", "parking", "wifi"}, twice.Filters["amenities"])
}

func TestRefineSearch_BetterRatedCapped(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	refined := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "better rated hotels")
	assert.Equal(t, 4.0, refined.Filters["minRating"])

	refined = refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{"minRating": 4.5}}, "higher rating")
	assert.Equal(t, 5.0, refined.Filters["minRating"])
}

func TestRefineSearch_PreferredBrand(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	refined := refiner.RefineSearch(SearchQuery{Filters: map[string]interface{}{}}, "prefer marriott")
	assert.Equal(t, "marriott", refined.Filters["preferredBrand"])
}

func TestRefineSearch_NoTriggersLeavesQueryAlone(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	query := SearchQuery{
		Query:   "hotels in Lisbon",
		Filters: map[string]interface{}{"maxPrice": 500.0},
	}
	refined := refiner.RefineSearch(query, "sounds good, thanks")

	assert.Equal(t, query.Query, refined.Query)
	assert.Equal(t, query.Filters, refined.Filters)
}

func TestParseRelativeQuery_SeedsFromAppliedFilters(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	ctx := SearchContext{AppliedFilters: map[string]interface{}{"maxPrice": 1000.0, "maxStops": 0}}
	parsed := refiner.ParseRelativeQuery("something cheaper", ctx)

	assert.Equal(t, 700.0, parsed.Filters["maxPrice"])
	assert.Equal(t, 0, parsed.Filters["maxStops"])
	assert.Equal(t, 1, parsed.Page)
}

func TestParseRelativeQuery_TimeAndLocationWords(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	parsed := refiner.ParseRelativeQuery("a morning flight near downtown", SearchContext{})
	assert.Equal(t, "morning", parsed.Filters["departureTimeRange"])
	assert.Equal(t, "downtown", parsed.Filters["locationPreference"])
}

func TestParseRelativeQuery_Sorts(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	tests := []struct {
		query string
		want  SortOrder
	}{
		{query: "cheapest first", want: SortPriceAsc},
		{query: "show the best rated", want: SortRatingDesc},
		{query: "most popular ones", want: SortPopularityDesc},
	}

	for _, tt := range tests {
		parsed := refiner.ParseRelativeQuery(tt.query, SearchContext{})
		assert.Equal(t, tt.want, parsed.Sort, tt.query)
	}
}

func TestParseRelativeQuery_Exclusion(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	parsed := refiner.ParseRelativeQuery("anything but not hostels", SearchContext{})
	assert.Equal(t, "hostels", parsed.Filters["exclude"])

	parsed = refiner.ParseRelativeQuery("all of them except the red-eye", SearchContext{})
	assert.Equal(t, "the red-eye", parsed.Filters["exclude"])
}

func TestParseRelativeQuery_ComparativeOrdinal(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	ctx := SearchContext{
		PreviousResults: []SearchResult{
			{Name: "Hotel Aurora", Query: "hotels in Oslo", Filters: map[string]interface{}{"maxPrice": 300.0}},
			{Name: "Fjord Lodge", Query: "hotels in Oslo", Filters: map[string]interface{}{"maxPrice": 450.0}},
		},
	}

	parsed := refiner.ParseRelativeQuery("like the second but closer to the center", ctx)

	assert.Equal(t, 450.0, parsed.Filters["maxPrice"])
	assert.Equal(t, "hotels in Oslo closer to the center", parsed.Query)
}

func TestParseRelativeQuery_ComparativeByName(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	ctx := SearchContext{
		PreviousResults: []SearchResult{
			{Name: "Hotel Aurora", Query: "hotels in Oslo", Filters: map[string]interface{}{"minRating": 4.0}},
		},
	}

	parsed := refiner.ParseRelativeQuery("like the aurora but cheaper", ctx)

	require.NotNil(t, parsed.Filters["minRating"])
	assert.Equal(t, 4.0, parsed.Filters["minRating"])
	assert.Equal(t, "hotels in Oslo cheaper", parsed.Query)
}

func TestParseRelativeQuery_UnresolvableReferenceLeavesQuery(t *testing.T) {
	refiner := NewSearchQueryRefiner()

	ctx := SearchContext{AppliedFilters: map[string]interface{}{"maxPrice": 500.0}}
	parsed := refiner.ParseRelativeQuery("like the ritz but cheaper", ctx)

	assert.Equal(t, "like the ritz but cheaper", parsed.Query)
	assert.Equal(t, 500.0, parsed.Filters["maxPrice"])
}
