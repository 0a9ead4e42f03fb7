package nlp

import "strings"

// IntentClassifier assigns exactly one travel intent to a message. It never
// fails: unclassifiable text falls back to a low-confidence flight search so
// downstream logic always has an intent to act on.
type IntentClassifier struct{}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

func (c *IntentClassifier) Classify(text string) Intent {
	lowered := strings.ToLower(text)

	var best Intent
	for _, intentType := range intentPriority {
		for _, pattern := range intentPatterns[intentType] {
			loc := pattern.FindStringIndex(lowered)
			if loc == nil {
				continue
			}

			confidence := confidenceFromOffset(loc[0], len(lowered))
			if intentType == IntentAddToPlan || intentType == IntentBookItem {
				confidence += 0.1
				if confidence > 1.0 {
					confidence = 1.0
				}
			}

			// Strictly greater, so ties keep the higher-priority intent.
			if confidence > best.Confidence {
				best = Intent{
					Type:       intentType,
					Confidence: confidence,
					Parameters: map[string]interface{}{
						"match": lowered[loc[0]:loc[1]],
					},
				}
			}
		}
	}

	if best.Type != "" {
		return best
	}

	if genericTravelPattern.MatchString(lowered) {
		return Intent{Type: IntentSearchFlight, Confidence: 0.3, Parameters: map[string]interface{}{}}
	}

	return Intent{Type: IntentSearchFlight, Confidence: 0.6, Parameters: map[string]interface{}{}}
}

// Matches at the start of the message are the strongest signal; anything in
// the back half of the text is likely incidental.
func confidenceFromOffset(offset, length int) float64 {
	switch {
	case offset == 0:
		return 0.9
	case offset < length/2:
		return 0.75
	default:
		return 0.6
	}
}
