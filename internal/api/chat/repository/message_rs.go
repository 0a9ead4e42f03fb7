package chatRepository

import (
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type ChatMessageDB struct {
	ID             sql.NullString `db:"id"`
	ConversationID sql.NullString `db:"conversation_id"`
	Role           sql.NullString `db:"role"`
	Text           sql.NullString `db:"text"`
	Metadata       sql.NullString `db:"metadata"`
	AttachmentURL  sql.NullString `db:"attachment_url"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r *messageRepository) CreateMessage(c context.Context, message entity.ChatMessage) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":              message.ID,
		"conversation_id": message.ConversationID,
		"role":            message.Role,
		"text":            message.Text,
		"metadata":        message.Metadata,
		"attachment_url":  message.AttachmentURL,
		"created_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateMessage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateMessage named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating chat message")
		return err
	}

	return nil
}

func (r *messageRepository) GetMessagesByConversationID(c context.Context, conversationID string) ([]entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(c)
	var messages []ChatMessageDB

	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
	}

	query, args, err := sqlx.Named(queryGetMessagesByConversationID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessagesByConversationID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &messages, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMessagesByConversationID execution err")
		return nil, err
	}

	result := make([]entity.ChatMessage, 0, len(messages))
	for _, message := range messages {
		result = append(result, r.makeChatMessage(message))
	}

	return result, nil
}

func (r *messageRepository) DeleteMessagesByConversationID(c context.Context, conversationID string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
	}

	query, args, err := sqlx.Named(queryDeleteMessagesByConversationID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteMessagesByConversationID named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteMessagesByConversationID execution err")
		return err
	}

	return nil
}

func (r *messageRepository) makeChatMessage(message ChatMessageDB) entity.ChatMessage {
	return entity.ChatMessage{
		ID:             message.ID.String,
		ConversationID: message.ConversationID.String,
		Role:           message.Role.String,
		Text:           message.Text.String,
		Metadata:       message.Metadata.String,
		AttachmentURL:  message.AttachmentURL.String,
		CreatedAt:      message.CreatedAt,
	}
}
