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

type SearchSnapshotDB struct {
	ID             sql.NullString `db:"id"`
	ConversationID sql.NullString `db:"conversation_id"`
	Kind           sql.NullString `db:"kind"`
	Query          sql.NullString `db:"query"`
	Filters        sql.NullString `db:"filters"`
	Results        sql.NullString `db:"results"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (r *searchRepository) CreateSnapshot(c context.Context, snapshot entity.SearchSnapshot) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":              snapshot.ID,
		"conversation_id": snapshot.ConversationID,
		"kind":            snapshot.Kind,
		"query":           snapshot.Query,
		"filters":         snapshot.Filters,
		"results":         snapshot.Results,
		"created_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateSearchSnapshot, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateSnapshot named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating search snapshot")
		return err
	}

	return nil
}

func (r *searchRepository) GetLatestSnapshot(c context.Context, conversationID string) (entity.SearchSnapshot, error) {
	requestID := contextPkg.GetRequestID(c)
	var snapshot SearchSnapshotDB

	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
	}

	query, args, err := sqlx.Named(queryGetLatestSearchSnapshot, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLatestSnapshot named query preparation err")
		return entity.SearchSnapshot{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&snapshot); err != nil {
		// No snapshot yet is a normal state early in a conversation, let the
		// caller decide what to do with sql.ErrNoRows.
		return entity.SearchSnapshot{}, err
	}

	return r.makeSearchSnapshot(snapshot), nil
}

func (r *searchRepository) DeleteSnapshotsByConversationID(c context.Context, conversationID string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"conversation_id": conversationID,
	}

	query, args, err := sqlx.Named(queryDeleteSearchSnapshotsByConversationID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteSnapshotsByConversationID named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteSnapshotsByConversationID execution err")
		return err
	}

	return nil
}

func (r *searchRepository) makeSearchSnapshot(snapshot SearchSnapshotDB) entity.SearchSnapshot {
	return entity.SearchSnapshot{
		ID:             snapshot.ID.String,
		ConversationID: snapshot.ConversationID.String,
		Kind:           snapshot.Kind.String,
		Query:          snapshot.Query.String,
		Filters:        snapshot.Filters.String,
		Results:        snapshot.Results.String,
		CreatedAt:      snapshot.CreatedAt,
	}
}
