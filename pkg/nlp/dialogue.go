package nlp

import "strings"

// DialogueStateMachine maps a message history to a conversation state. The
// state is derived fresh from the full history each turn; the one exception
// is an explicit override for states unreachable from intent alone
// (REFINING_SEARCH, and GREETING on conversation reset). An override is
// consumed by the next derivation.
type DialogueStateMachine struct {
	override *DialogueState
}

func NewDialogueStateMachine() *DialogueStateMachine {
	return &DialogueStateMachine{}
}

// Override forces the next Derive call to return the given state. The
// session layer uses this for REFINING_SEARCH and for resetting to GREETING
// on conversation clear.
func (m *DialogueStateMachine) Override(state DialogueState) {
	m.override = &state
}

func (m *DialogueStateMachine) Derive(history []Message) DialogueState {
	if m.override != nil {
		state := *m.override
		m.override = nil
		return state
	}

	if len(history) == 0 {
		return StateGreeting
	}

	last := history[len(history)-1]
	if last.Metadata.Intent != nil {
		switch last.Metadata.Intent.Type {
		case IntentSearchFlight, IntentSearchHotel:
			return StateSearching
		case IntentAddToPlan:
			return StateAddingToPlan
		case IntentViewPlan:
			return StateReviewingPlan
		case IntentBookItem:
			return StateBooking
		}
	}

	for i := len(history) - 1; i >= 0 && i >= len(history)-3; i-- {
		for _, attachment := range history[i].Metadata.Attachments {
			if attachment.Type == AttachmentSearchResults {
				return StatePresentingOptions
			}
		}
	}

	return StateGatheringRequirements
}

// IsRefinementFeedback reports whether free text reads as feedback on an
// existing search ("something cheaper", "closer to downtown") rather than a
// fresh request. None of these phrases match an intent pattern, so the
// session layer uses this to force REFINING_SEARCH.
func IsRefinementFeedback(text string) bool {
	lowered := strings.ToLower(text)

	for _, signal := range refinementSignals {
		if signal.MatchString(lowered) {
			return true
		}
	}

	for _, keywords := range amenityGroups {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}

	return false
}
