package nlp

import "fmt"

// ClarificationGenerator turns a context with missing or ambiguous fields
// into a single follow-up question. Only the first applicable rule fires;
// questions are never stacked.
type ClarificationGenerator struct{}

func NewClarificationGenerator() *ClarificationGenerator {
	return &ClarificationGenerator{}
}

func (g *ClarificationGenerator) Clarify(ctx ConversationContext) ClarificationRequest {
	if containsField(ctx.MissingFields, "destination") {
		return ClarificationRequest{
			Question: "Where would you like to travel to?",
			Type:     ClarificationOpenEnded,
		}
	}

	if containsField(ctx.MissingFields, "dates") || containsField(ctx.MissingFields, "check-in dates") {
		return ClarificationRequest{
			Question: "When would you like to travel?",
			Type:     ClarificationOpenEnded,
		}
	}

	if containsField(ctx.MissingFields, "travelers") {
		return ClarificationRequest{
			Question: "How many people are traveling?",
			Type:     ClarificationSingleChoice,
			Options:  []string{"1", "2", "3-4", "5+"},
		}
	}

	destinations := destinationValues(ctx.Entities)
	if len(destinations) > 1 {
		return ClarificationRequest{
			Question: "You mentioned several destinations. Which one is your main destination?",
			Type:     ClarificationSingleChoice,
			Options:  destinations,
		}
	}

	return ClarificationRequest{
		Question: "Could you tell me a bit more about the trip you have in mind?",
		Type:     ClarificationOpenEnded,
	}
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

func destinationValues(entities []Entity) []string {
	var values []string
	for _, entity := range entities {
		if entity.Type != EntityDestination {
			continue
		}
		values = append(values, fmt.Sprintf("%v", entity.Value))
	}
	return values
}
