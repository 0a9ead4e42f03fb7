package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	classifier := NewIntentClassifier()

	tests := []struct {
		name string
		text string
		want IntentType
	}{
		{name: "add to plan", text: "Add this flight to my itinerary", want: IntentAddToPlan},
		{name: "book", text: "I want to book the hotel", want: IntentBookItem},
		{name: "view plan", text: "Show me my itinerary", want: IntentViewPlan},
		{name: "modify plan", text: "Change the dates on my trip", want: IntentModifyPlan},
		{name: "check budget", text: "How much have I spent so far?", want: IntentCheckBudget},
		{name: "recommendations", text: "Any ideas for a warm destination?", want: IntentGetRecommendations},
		{name: "flight search", text: "Flights to Madrid in June", want: IntentSearchFlight},
		{name: "hotel search", text: "Find me a place to stay downtown", want: IntentSearchHotel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := classifier.Classify(tt.text)
			assert.Equal(t, tt.want, intent.Type)
			assert.Greater(t, intent.Confidence, 0.0)
		})
	}
}

func TestClassify_AddToPlanBonus(t *testing.T) {
	classifier := NewIntentClassifier()

	intent := classifier.Classify("Add this flight to my itinerary")
	assert.Equal(t, IntentAddToPlan, intent.Type)
	assert.GreaterOrEqual(t, intent.Confidence, 0.9)
	// Bonus is clamped rather than pushed past certainty.
	assert.LessOrEqual(t, intent.Confidence, 1.0)
}

func TestClassify_OffsetConfidence(t *testing.T) {
	classifier := NewIntentClassifier()

	front := classifier.Classify("book it now")
	assert.Equal(t, IntentBookItem, front.Type)
	assert.InDelta(t, 1.0, front.Confidence, 1e-9)

	back := classifier.Classify("that looks great, can you please go ahead and book")
	assert.Equal(t, IntentBookItem, back.Type)
	assert.InDelta(t, 0.7, back.Confidence, 1e-9)
}

func TestClassify_TieKeepsHigherPriority(t *testing.T) {
	classifier := NewIntentClassifier()

	// Both keywords sit in the back half of the text, so both score 0.6;
	// the earlier-scanned flight intent keeps the win.
	intent := classifier.Classify("maybe something nice like a flight or like a hotel")
	assert.Equal(t, IntentSearchFlight, intent.Type)
}

func TestClassify_GenericTravelFallback(t *testing.T) {
	classifier := NewIntentClassifier()

	intent := classifier.Classify("I just want to travel somewhere new")
	assert.Equal(t, IntentSearchFlight, intent.Type)
	assert.InDelta(t, 0.3, intent.Confidence, 1e-9)
}

func TestClassify_DefaultFallback(t *testing.T) {
	classifier := NewIntentClassifier()

	intent := classifier.Classify("mmm okay")
	assert.Equal(t, IntentSearchFlight, intent.Type)
	assert.InDelta(t, 0.6, intent.Confidence, 1e-9)
}
