package nlp

import (
	"strconv"
	"strings"
)

// EntityExtractor pulls typed travel entities out of free text. It never
// returns an error: values that fail normalization are dropped from the
// result set.
type EntityExtractor struct{}

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

func (e *EntityExtractor) Extract(text string) []Entity {
	var entities []Entity

	for _, entityType := range entityTypeOrder {
		for _, pattern := range entityPatterns[entityType] {
			matches := pattern.re.FindAllStringSubmatchIndex(text, -1)
			for _, match := range matches {
				switch pattern.mode {
				case captureSingle:
					raw, span := captureOrWholeMatch(text, match, 1)
					if entity, ok := normalizeEntity(entityType, raw, span, pattern.confidence); ok {
						entities = append(entities, entity)
					}
				case capturePaired:
					first, firstSpan := captureOrWholeMatch(text, match, 1)
					if entity, ok := normalizeEntity(entityType, first, firstSpan, pattern.confidence); ok {
						entities = append(entities, entity)
					}

					second, secondSpan := pairedSecondCapture(text, match)
					if second == "" {
						continue
					}
					if entity, ok := normalizeEntity(entityType, second, secondSpan, pattern.confidence); ok {
						entities = append(entities, entity)
					}
				}
			}
		}
	}

	return dedupeEntities(entities)
}

// captureOrWholeMatch returns the captured group text and span, falling back
// to the whole match when the group did not participate.
func captureOrWholeMatch(text string, match []int, group int) (string, Span) {
	start, end := match[2*group], match[2*group+1]
	if start < 0 || end < 0 {
		start, end = match[0], match[1]
	}
	return text[start:end], Span{Start: start, End: end}
}

// pairedSecondCapture computes the second sibling's span by locating the
// captured substring inside the full match rather than trusting the group
// indices directly.
func pairedSecondCapture(text string, match []int) (string, Span) {
	if len(match) < 6 || match[4] < 0 || match[5] < 0 {
		return "", Span{}
	}

	raw := text[match[4]:match[5]]
	whole := text[match[0]:match[1]]

	offset := strings.Index(whole, raw)
	if offset < 0 {
		return "", Span{}
	}

	// Skip past the first capture when both legs read the same, e.g.
	// "from Paris to Paris".
	if match[0]+offset == match[2] {
		rest := strings.Index(whole[offset+len(raw):], raw)
		if rest >= 0 {
			offset += len(raw) + rest
		}
	}

	start := match[0] + offset
	return raw, Span{Start: start, End: start + len(raw)}
}

func normalizeEntity(entityType EntityType, raw string, span Span, confidence float64) (Entity, bool) {
	var value interface{}

	switch entityType {
	case EntityDestination:
		normalized := strings.Join(strings.Fields(raw), " ")
		normalized = strings.TrimRight(normalized, ",.")
		if normalized == "" {
			return Entity{}, false
		}
		value = normalized

	case EntityDate:
		normalized := strings.TrimSpace(raw)
		if normalized == "" {
			return Entity{}, false
		}
		value = normalized

	case EntityBudget:
		cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		amount, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return Entity{}, false
		}
		value = amount

	case EntityTravelers:
		count, ok := parseTravelerCount(raw)
		if !ok {
			return Entity{}, false
		}
		value = count

	case EntityPreference:
		normalized := strings.ToLower(strings.TrimSpace(raw))
		if normalized == "" {
			return Entity{}, false
		}
		value = normalized

	default:
		return Entity{}, false
	}

	return Entity{
		Type:       entityType,
		Value:      value,
		Confidence: confidence,
		Span:       span,
	}, true
}

func parseTravelerCount(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)

	digits := trimmed
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			digits = trimmed[:i]
			break
		}
	}
	if digits != "" {
		if count, err := strconv.Atoi(digits); err == nil {
			return count, true
		}
	}

	if count, ok := travelerKeywords[strings.ToLower(trimmed)]; ok {
		return count, true
	}

	return 0, false
}

// dedupeEntities removes duplicates in two passes. Pass one drops exact
// (type, value) repeats, keeping the first occurrence. Pass two resolves
// same-type entities with overlapping spans by keeping the longer span.
// The context tracker reuses this so accumulated history entities obey the
// same rules as a single extraction.
func dedupeEntities(entities []Entity) []Entity {
	type key struct {
		entityType EntityType
		value      interface{}
	}

	seen := make(map[key]bool, len(entities))
	unique := make([]Entity, 0, len(entities))
	for _, entity := range entities {
		k := key{entityType: entity.Type, value: entity.Value}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, entity)
	}

	resolved := make([]Entity, 0, len(unique))
	for _, candidate := range unique {
		replaced := false
		skip := false

		for i, kept := range resolved {
			if kept.Type != candidate.Type || !kept.Span.Overlaps(candidate.Span) {
				continue
			}
			if candidate.Span.Len() > kept.Span.Len() {
				resolved[i] = candidate
				replaced = true
			} else {
				skip = true
			}
			break
		}

		if !replaced && !skip {
			resolved = append(resolved, candidate)
		}
	}

	return resolved
}
