package planRepository

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
		Plan:     &planRepository{q: sqlExecutor, log: r.log},
		Item:     &itemRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Plan interface {
		CreatePlan(c context.Context, plan entity.TripPlan) error
		GetPlanByID(c context.Context, id string) (entity.TripPlan, error)
		GetPlansByUserID(c context.Context, userID string) ([]entity.TripPlan, error)
		UpdatePlanTotalCost(c context.Context, id string, totalCost float64) error
	}

	Item interface {
		CreateItem(c context.Context, item entity.TripPlanItem) error
		GetItemByID(c context.Context, id string) (entity.TripPlanItem, error)
		GetItemsByPlanID(c context.Context, planID string) ([]entity.TripPlanItem, error)
		DeleteItem(c context.Context, id string) error
		MarkItemBooked(c context.Context, id string) error
	}

	Commit   func() error
	Rollback func() error
}

type planRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type itemRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
