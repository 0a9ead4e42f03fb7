package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive_EmptyHistory(t *testing.T) {
	machine := NewDialogueStateMachine()
	assert.Equal(t, StateGreeting, machine.Derive(nil))
}

func TestDerive_FromLastIntent(t *testing.T) {
	machine := NewDialogueStateMachine()

	tests := []struct {
		intent IntentType
		want   DialogueState
	}{
		{intent: IntentSearchFlight, want: StateSearching},
		{intent: IntentSearchHotel, want: StateSearching},
		{intent: IntentAddToPlan, want: StateAddingToPlan},
		{intent: IntentViewPlan, want: StateReviewingPlan},
		{intent: IntentBookItem, want: StateBooking},
	}

	for _, tt := range tests {
		history := []Message{
			userMessage("whatever", &Intent{Type: tt.intent, Confidence: 0.9}),
		}
		assert.Equal(t, tt.want, machine.Derive(history))
	}
}

func TestDerive_RecentSearchResultsPresentOptions(t *testing.T) {
	machine := NewDialogueStateMachine()

	withResults := Message{
		Role: RoleAgent,
		Text: "here are some options",
		Metadata: MessageMetadata{
			Attachments: []Attachment{{Type: AttachmentSearchResults}},
		},
	}
	plain := userMessage("hmm", nil)

	history := []Message{withResults, plain, plain}
	assert.Equal(t, StatePresentingOptions, machine.Derive(history))

	// The attachment window only covers the last three messages.
	history = []Message{withResults, plain, plain, plain}
	assert.Equal(t, StateGatheringRequirements, machine.Derive(history))
}

func TestDerive_GatheringByDefault(t *testing.T) {
	machine := NewDialogueStateMachine()

	history := []Message{
		userMessage("thinking about a trip", &Intent{Type: IntentGetRecommendations, Confidence: 0.9}),
	}
	assert.Equal(t, StateGatheringRequirements, machine.Derive(history))
}

func TestOverride_ConsumedByNextDerive(t *testing.T) {
	machine := NewDialogueStateMachine()

	history := []Message{
		userMessage("flights to Oslo", &Intent{Type: IntentSearchFlight, Confidence: 0.9}),
	}

	machine.Override(StateRefiningSearch)
	assert.Equal(t, StateRefiningSearch, machine.Derive(history))

	// Next history-driven recomputation replaces the override.
	assert.Equal(t, StateSearching, machine.Derive(history))
}

func TestOverride_ResetToGreeting(t *testing.T) {
	machine := NewDialogueStateMachine()

	machine.Override(StateGreeting)
	assert.Equal(t, StateGreeting, machine.Derive([]Message{userMessage("hi", nil)}))
}

func TestIsRefinementFeedback(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "something cheaper", want: true},
		{text: "closer to downtown", want: true},
		{text: "I need wifi", want: true},
		{text: "like the second one but with breakfast", want: true},
		{text: "cheapest first", want: true},
		{text: "hello there", want: false},
		{text: "flights to Madrid", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRefinementFeedback(tt.text), tt.text)
	}
}
