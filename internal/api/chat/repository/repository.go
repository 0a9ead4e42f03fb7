package chatRepository

import (
	"TravelGolang/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Conversation: &conversationRepository{q: sqlExecutor, log: r.log},
		Message:      &messageRepository{q: sqlExecutor, log: r.log},
		Search:       &searchRepository{q: sqlExecutor, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Client struct {
	Conversation interface {
		CreateConversation(c context.Context, conversation entity.Conversation) error
		GetConversationByID(c context.Context, id string) (entity.Conversation, error)
		GetConversationsByUserID(c context.Context, userID string) ([]entity.Conversation, error)
		UpdateConversationState(c context.Context, id string, state string) error
	}

	Message interface {
		CreateMessage(c context.Context, message entity.ChatMessage) error
		GetMessagesByConversationID(c context.Context, conversationID string) ([]entity.ChatMessage, error)
		DeleteMessagesByConversationID(c context.Context, conversationID string) error
	}

	Search interface {
		CreateSnapshot(c context.Context, snapshot entity.SearchSnapshot) error
		GetLatestSnapshot(c context.Context, conversationID string) (entity.SearchSnapshot, error)
		DeleteSnapshotsByConversationID(c context.Context, conversationID string) error
	}

	Commit   func() error
	Rollback func() error
}

type conversationRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type messageRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type searchRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
