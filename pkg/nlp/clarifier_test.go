package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClarify_DestinationFirst(t *testing.T) {
	generator := NewClarificationGenerator()

	req := generator.Clarify(ConversationContext{
		MissingFields: []string{"destination", "travelers"},
	})

	assert.Equal(t, ClarificationOpenEnded, req.Type)
	assert.Equal(t, "Where would you like to travel to?", req.Question)
	// Only one question per turn; travelers waits for the next round.
	assert.Empty(t, req.Options)
}

func TestClarify_Dates(t *testing.T) {
	generator := NewClarificationGenerator()

	for _, field := range []string{"dates", "check-in dates"} {
		req := generator.Clarify(ConversationContext{MissingFields: []string{field}})
		assert.Equal(t, ClarificationOpenEnded, req.Type)
		assert.Equal(t, "When would you like to travel?", req.Question)
	}
}

func TestClarify_Travelers(t *testing.T) {
	generator := NewClarificationGenerator()

	req := generator.Clarify(ConversationContext{MissingFields: []string{"travelers"}})

	assert.Equal(t, ClarificationSingleChoice, req.Type)
	assert.Equal(t, []string{"1", "2", "3-4", "5+"}, req.Options)
}

func TestClarify_MultipleDestinations(t *testing.T) {
	generator := NewClarificationGenerator()

	req := generator.Clarify(ConversationContext{
		Entities: []Entity{
			{Type: EntityDestination, Value: "Rome", Confidence: 0.9},
			{Type: EntityDestination, Value: "Barcelona", Confidence: 0.9},
		},
	})

	assert.Equal(t, ClarificationSingleChoice, req.Type)
	assert.Equal(t, []string{"Rome", "Barcelona"}, req.Options)
}

func TestClarify_GenericFallback(t *testing.T) {
	generator := NewClarificationGenerator()

	req := generator.Clarify(ConversationContext{})

	assert.Equal(t, ClarificationOpenEnded, req.Type)
	assert.NotEmpty(t, req.Question)
}
