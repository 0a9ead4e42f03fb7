package chatRepository

import (
	"TravelGolang/internal/api/chat"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type ConversationDB struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Title     sql.NullString `db:"title"`
	State     sql.NullString `db:"state"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *conversationRepository) CreateConversation(c context.Context, conversation entity.Conversation) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         conversation.ID,
		"user_id":    conversation.UserID,
		"title":      conversation.Title,
		"state":      conversation.State,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateConversation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateConversation named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation")
		return err
	}

	return nil
}

func (r *conversationRepository) GetConversationByID(c context.Context, id string) (entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(c)
	var conversation ConversationDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetConversationByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationByID named query preparation err")
		return entity.Conversation{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&conversation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetConversationByID no rows found")
			return entity.Conversation{}, chat.ErrConversationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationByID execution err")
		return entity.Conversation{}, err
	}

	return r.makeConversation(conversation), nil
}

func (r *conversationRepository) GetConversationsByUserID(c context.Context, userID string) ([]entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(c)
	var conversations []ConversationDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetConversationsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationsByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &conversations, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConversationsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Conversation, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, r.makeConversation(conversation))
	}

	return result, nil
}

func (r *conversationRepository) UpdateConversationState(c context.Context, id string, state string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"state":      state,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateConversationState, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateConversationState named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateConversationState execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateConversationState rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateConversationState no rows affected")
		return chat.ErrConversationNotFound
	}

	return nil
}

func (r *conversationRepository) makeConversation(conversation ConversationDB) entity.Conversation {
	return entity.Conversation{
		ID:        conversation.ID.String,
		UserID:    conversation.UserID.String,
		Title:     conversation.Title.String,
		State:     conversation.State.String,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
}
