package planRepository

import (
	"TravelGolang/internal/api/plan"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

type TripPlanItemDB struct {
	ID        sql.NullString  `db:"id"`
	PlanID    sql.NullString  `db:"plan_id"`
	Kind      sql.NullString  `db:"kind"`
	Name      sql.NullString  `db:"name"`
	Price     sql.NullFloat64 `db:"price"`
	Currency  sql.NullString  `db:"currency"`
	Details   sql.NullString  `db:"details"`
	Booked    sql.NullBool    `db:"booked"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r *itemRepository) CreateItem(c context.Context, item entity.TripPlanItem) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         item.ID,
		"plan_id":    item.PlanID,
		"kind":       item.Kind,
		"name":       item.Name,
		"price":      item.Price,
		"currency":   item.Currency,
		"details":    item.Details,
		"booked":     item.Booked,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreatePlanItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateItem named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating plan item")
		return err
	}

	return nil
}

func (r *itemRepository) GetItemByID(c context.Context, id string) (entity.TripPlanItem, error) {
	requestID := contextPkg.GetRequestID(c)
	var item TripPlanItemDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetPlanItemByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetItemByID named query preparation err")
		return entity.TripPlanItem{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetItemByID no rows found")
			return entity.TripPlanItem{}, plan.ErrItemNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetItemByID execution err")
		return entity.TripPlanItem{}, err
	}

	return r.makeTripPlanItem(item), nil
}

func (r *itemRepository) GetItemsByPlanID(c context.Context, planID string) ([]entity.TripPlanItem, error) {
	requestID := contextPkg.GetRequestID(c)
	var items []TripPlanItemDB

	argsKV := map[string]interface{}{
		"plan_id": planID,
	}

	query, args, err := sqlx.Named(queryGetPlanItemsByPlanID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetItemsByPlanID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &items, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetItemsByPlanID execution err")
		return nil, err
	}

	result := make([]entity.TripPlanItem, 0, len(items))
	for _, item := range items {
		result = append(result, r.makeTripPlanItem(item))
	}

	return result, nil
}

func (r *itemRepository) DeleteItem(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryDeletePlanItem, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteItem named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteItem execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteItem rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeleteItem no rows affected")
		return plan.ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) MarkItemBooked(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryMarkPlanItemBooked, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkItemBooked named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkItemBooked execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkItemBooked rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("MarkItemBooked no rows affected")
		return plan.ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) makeTripPlanItem(item TripPlanItemDB) entity.TripPlanItem {
	return entity.TripPlanItem{
		ID:        item.ID.String,
		PlanID:    item.PlanID.String,
		Kind:      item.Kind.String,
		Name:      item.Name.String,
		Price:     item.Price.Float64,
		Currency:  item.Currency.String,
		Details:   item.Details.String,
		Booked:    item.Booked.Bool,
		CreatedAt: item.CreatedAt,
	}
}
