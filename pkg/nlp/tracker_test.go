package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userMessage(text string, intent *Intent, entities ...Entity) Message {
	return Message{
		Role: RoleUser,
		Text: text,
		Metadata: MessageMetadata{
			Intent:   intent,
			Entities: entities,
		},
	}
}

func TestComputeContext_EmptyHistory(t *testing.T) {
	tracker := NewContextTracker(nil)

	ctx := tracker.ComputeContext(nil)

	assert.Equal(t, StateGreeting, ctx.State)
	assert.Empty(t, ctx.Entities)
	assert.Empty(t, ctx.MissingFields)
	assert.Nil(t, ctx.LastIntent)
	assert.False(t, ctx.ClarificationNeeded)
}

func TestComputeContext_HotelMissingFields(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("I need a hotel", &Intent{Type: IntentSearchHotel, Confidence: 0.9}),
	}

	ctx := tracker.ComputeContext(history)

	assert.Equal(t, []string{"destination", "check-in dates", "travelers"}, ctx.MissingFields)
	assert.True(t, ctx.ClarificationNeeded)
	assert.Equal(t, StateSearching, ctx.State)
}

func TestComputeContext_FlightMissingDatesOnly(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("Flights to Rome for 2 people",
			&Intent{Type: IntentSearchFlight, Confidence: 0.9},
			Entity{Type: EntityDestination, Value: "Rome", Confidence: 0.9, Span: Span{Start: 11, End: 15}},
			Entity{Type: EntityTravelers, Value: 2, Confidence: 0.9, Span: Span{Start: 20, End: 21}},
		),
	}

	ctx := tracker.ComputeContext(history)

	assert.Equal(t, []string{"dates"}, ctx.MissingFields)
	assert.True(t, ctx.ClarificationNeeded)
}

func TestComputeContext_RecentMentionWins(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("Fly to Paris",
			&Intent{Type: IntentSearchFlight, Confidence: 0.9},
			Entity{Type: EntityDestination, Value: "Paris", Confidence: 0.9, Span: Span{Start: 7, End: 12}},
		),
		userMessage("actually, Paris it is",
			&Intent{Type: IntentSearchFlight, Confidence: 0.9},
			Entity{Type: EntityDestination, Value: "Paris", Confidence: 0.6, Span: Span{Start: 10, End: 15}},
		),
	}

	ctx := tracker.ComputeContext(history)

	destinations := findEntities(ctx.Entities, EntityDestination)
	require.Len(t, destinations, 1)
	assert.Equal(t, 0.6, destinations[0].Confidence)
}

func TestComputeContext_TravelersAnywhereSatisfies(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("We are a couple",
			nil,
			Entity{Type: EntityTravelers, Value: 2, Confidence: 0.75, Span: Span{Start: 9, End: 15}},
		),
		userMessage("Find hotels in Lisbon for June 5",
			&Intent{Type: IntentSearchHotel, Confidence: 0.9},
			Entity{Type: EntityDestination, Value: "Lisbon", Confidence: 0.85, Span: Span{Start: 15, End: 21}},
			Entity{Type: EntityDate, Value: "June 5", Confidence: 0.9, Span: Span{Start: 26, End: 32}},
		),
	}

	ctx := tracker.ComputeContext(history)

	assert.Empty(t, ctx.MissingFields)
	assert.False(t, ctx.ClarificationNeeded)
}

func TestComputeContext_AmbiguousDestinations(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("Rome or Barcelona, travelling alone on May 1",
			&Intent{Type: IntentSearchFlight, Confidence: 0.9},
			Entity{Type: EntityDestination, Value: "Rome", Confidence: 0.9, Span: Span{Start: 0, End: 4}},
			Entity{Type: EntityDestination, Value: "Barcelona", Confidence: 0.9, Span: Span{Start: 8, End: 17}},
			Entity{Type: EntityTravelers, Value: 1, Confidence: 0.75, Span: Span{Start: 30, End: 35}},
			Entity{Type: EntityDate, Value: "May 1", Confidence: 0.9, Span: Span{Start: 39, End: 44}},
		),
	}

	ctx := tracker.ComputeContext(history)

	assert.Empty(t, ctx.MissingFields)
	assert.True(t, ctx.ClarificationNeeded)
}

func TestComputeContext_LowConfidenceEntityIsAmbiguous(t *testing.T) {
	tracker := NewContextTracker(nil)

	history := []Message{
		userMessage("somewhere warm",
			nil,
			Entity{Type: EntityPreference, Value: "warm", Confidence: 0.4, Span: Span{Start: 10, End: 14}},
		),
	}

	ctx := tracker.ComputeContext(history)

	assert.True(t, ctx.ClarificationNeeded)
}
