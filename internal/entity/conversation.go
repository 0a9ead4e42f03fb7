package entity

import (
	"time"

	"TravelGolang/pkg/nlp"
)

type Conversation struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	State     string    `db:"state"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ChatMessage struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	Role           string    `db:"role"`
	Text           string    `db:"text"`
	Metadata       string    `db:"metadata"`
	AttachmentURL  string    `db:"attachment_url"`
	CreatedAt      time.Time `db:"created_at"`
}

// SearchSnapshot records one executed search so that later relative
// queries ("like the second but cheaper") can resolve against it.
type SearchSnapshot struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	Kind           string    `db:"kind"`
	Query          string    `db:"query"`
	Filters        string    `db:"filters"`
	Results        string    `db:"results"`
	CreatedAt      time.Time `db:"created_at"`
}

func (m ChatMessage) ToNLPMessage(meta nlp.MessageMetadata) nlp.Message {
	return nlp.Message{
		Role:     nlp.Role(m.Role),
		Text:     m.Text,
		Metadata: meta,
	}
}
