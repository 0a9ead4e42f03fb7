package nlp

type EntityType string

const (
	EntityDestination EntityType = "destination"
	EntityDate        EntityType = "date"
	EntityBudget      EntityType = "budget"
	EntityTravelers   EntityType = "travelers"
	EntityPreference  EntityType = "preference"
)

// Span is the character range an entity was matched from, used to resolve
// overlapping matches of the same type.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Entity value is a string for destination/date/preference, float64 for
// budget and int for travelers.
type Entity struct {
	Type       EntityType  `json:"type"`
	Value      interface{} `json:"value"`
	Confidence float64     `json:"confidence"`
	Span       Span        `json:"span"`
}

type IntentType string

const (
	IntentSearchFlight       IntentType = "search_flight"
	IntentSearchHotel        IntentType = "search_hotel"
	IntentAddToPlan          IntentType = "add_to_plan"
	IntentViewPlan           IntentType = "view_plan"
	IntentModifyPlan         IntentType = "modify_plan"
	IntentBookItem           IntentType = "book_item"
	IntentGetRecommendations IntentType = "get_recommendations"
	IntentCheckBudget        IntentType = "check_budget"
)

type Intent struct {
	Type       IntentType             `json:"type"`
	Confidence float64                `json:"confidence"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

const AttachmentSearchResults = "search_results"

type Attachment struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type MessageMetadata struct {
	Intent      *Intent      `json:"intent,omitempty"`
	Entities    []Entity     `json:"entities,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Message is one turn of the conversation. History is append-only and owned
// by the session layer; the core only ever reads it.
type Message struct {
	Role     Role            `json:"role"`
	Text     string          `json:"text"`
	Metadata MessageMetadata `json:"metadata"`
}

type DialogueState string

const (
	StateGreeting              DialogueState = "GREETING"
	StateGatheringRequirements DialogueState = "GATHERING_REQUIREMENTS"
	StateSearching             DialogueState = "SEARCHING"
	StatePresentingOptions     DialogueState = "PRESENTING_OPTIONS"
	StateAddingToPlan          DialogueState = "ADDING_TO_PLAN"
	StateReviewingPlan         DialogueState = "REVIEWING_PLAN"
	StateBooking               DialogueState = "BOOKING"
	StateRefiningSearch        DialogueState = "REFINING_SEARCH"
)

// ConversationContext is recomputed from the full message history on every
// turn. It is a pure function of history and never patched incrementally.
type ConversationContext struct {
	State               DialogueState `json:"state"`
	Entities            []Entity      `json:"entities"`
	MissingFields       []string      `json:"missing_fields"`
	LastIntent          *Intent       `json:"last_intent,omitempty"`
	ClarificationNeeded bool          `json:"clarification_needed"`
}

type ClarificationType string

const (
	ClarificationOpenEnded    ClarificationType = "open_ended"
	ClarificationSingleChoice ClarificationType = "single_choice"
)

type ClarificationRequest struct {
	Question string            `json:"question"`
	Type     ClarificationType `json:"type"`
	Options  []string          `json:"options,omitempty"`
}

type SortOrder string

const (
	SortPriceAsc       SortOrder = "price_asc"
	SortRatingDesc     SortOrder = "rating_desc"
	SortPopularityDesc SortOrder = "popularity_desc"
)

type SearchQuery struct {
	Query   string                 `json:"query"`
	Filters map[string]interface{} `json:"filters"`
	Sort    SortOrder              `json:"sort,omitempty"`
	Page    int                    `json:"page"`
}

type SearchResult struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name"`
	Kind    string                 `json:"kind"`
	Price   float64                `json:"price"`
	Rating  float64                `json:"rating"`
	Query   string                 `json:"query"`
	Filters map[string]interface{} `json:"filters,omitempty"`
}

// SearchContext carries what the user has already seen, so relative feedback
// like "the second one but cheaper" can be resolved.
type SearchContext struct {
	PreviousResults []SearchResult         `json:"previous_results"`
	AppliedFilters  map[string]interface{} `json:"applied_filters"`
	UserFeedback    []string               `json:"user_feedback"`
}
