package chat

import "TravelGolang/pkg/nlp"

type CreateConversationRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID            string              `json:"id"`
	Role          string              `json:"role"`
	Text          string              `json:"text"`
	AttachmentURL string              `json:"attachment_url,omitempty"`
	Metadata      nlp.MessageMetadata `json:"metadata"`
	CreatedAt     string              `json:"created_at"`
}

type ConversationResponse struct {
	ID        string                   `json:"id"`
	Title     string                   `json:"title"`
	State     string                   `json:"state"`
	Messages  []MessageResponse        `json:"messages,omitempty"`
	Context   *nlp.ConversationContext `json:"context,omitempty"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt string                   `json:"updated_at"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

// TurnResponse is everything one user message produced: the stored messages,
// the recomputed conversation context, and whichever of clarification or
// search results the turn ended in.
type TurnResponse struct {
	UserMessage   MessageResponse           `json:"user_message"`
	AgentMessage  MessageResponse           `json:"agent_message"`
	State         string                    `json:"state"`
	Context       nlp.ConversationContext   `json:"context"`
	Clarification *nlp.ClarificationRequest `json:"clarification,omitempty"`
	Results       []nlp.SearchResult        `json:"results,omitempty"`
}
