package nlp

// ContextTracker folds the full message history into a ConversationContext.
// The context is a pure function of history: it is recomputed on every turn
// and never patched in place, so it cannot drift from the message log.
type ContextTracker struct {
	machine *DialogueStateMachine
}

func NewContextTracker(machine *DialogueStateMachine) *ContextTracker {
	if machine == nil {
		machine = NewDialogueStateMachine()
	}
	return &ContextTracker{machine: machine}
}

func (t *ContextTracker) ComputeContext(history []Message) ConversationContext {
	ctx := ConversationContext{
		Entities:      []Entity{},
		MissingFields: []string{},
	}

	// Newest first, so a recent mention of the same (type, value) wins the
	// first-occurrence tie in the dedup pass.
	var accumulated []Entity
	for i := len(history) - 1; i >= 0; i-- {
		accumulated = append(accumulated, history[i].Metadata.Entities...)
	}
	ctx.Entities = dedupeEntities(accumulated)

	if len(history) > 0 {
		ctx.LastIntent = history[len(history)-1].Metadata.Intent
	}

	ctx.MissingFields = missingFieldsFor(ctx.LastIntent, ctx.Entities)
	ctx.ClarificationNeeded = len(ctx.MissingFields) > 0 || entitiesAmbiguous(ctx.Entities)
	ctx.State = t.machine.Derive(history)

	return ctx
}

// Fields are appended in check order because the clarifier only ever asks
// about the first missing one.
func missingFieldsFor(lastIntent *Intent, entities []Entity) []string {
	missing := []string{}
	if lastIntent == nil {
		return missing
	}

	switch lastIntent.Type {
	case IntentSearchFlight:
		if countEntitiesOfType(entities, EntityDestination) == 0 {
			missing = append(missing, "destination")
		}
		if countEntitiesOfType(entities, EntityDate) == 0 {
			missing = append(missing, "dates")
		}
	case IntentSearchHotel:
		if countEntitiesOfType(entities, EntityDestination) == 0 {
			missing = append(missing, "destination")
		}
		if countEntitiesOfType(entities, EntityDate) == 0 {
			missing = append(missing, "check-in dates")
		}
	}

	if countEntitiesOfType(entities, EntityTravelers) == 0 {
		missing = append(missing, "travelers")
	}

	return missing
}

// Ambiguity: more than one destination, more than a departure+return pair of
// dates, or any entity the extractor was not sure about.
func entitiesAmbiguous(entities []Entity) bool {
	if countEntitiesOfType(entities, EntityDestination) > 1 {
		return true
	}
	if countEntitiesOfType(entities, EntityDate) > 2 {
		return true
	}
	for _, entity := range entities {
		if entity.Confidence < 0.5 {
			return true
		}
	}
	return false
}

func countEntitiesOfType(entities []Entity, entityType EntityType) int {
	count := 0
	for _, entity := range entities {
		if entity.Type == entityType {
			count++
		}
	}
	return count
}
