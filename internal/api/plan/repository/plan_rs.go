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

type TripPlanDB struct {
	ID             sql.NullString  `db:"id"`
	UserID         sql.NullString  `db:"user_id"`
	ConversationID sql.NullString  `db:"conversation_id"`
	Name           sql.NullString  `db:"name"`
	Budget         sql.NullFloat64 `db:"budget"`
	TotalCost      sql.NullFloat64 `db:"total_cost"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r *planRepository) CreatePlan(c context.Context, tripPlan entity.TripPlan) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":              tripPlan.ID,
		"user_id":         tripPlan.UserID,
		"conversation_id": tripPlan.ConversationID,
		"name":            tripPlan.Name,
		"budget":          tripPlan.Budget,
		"total_cost":      tripPlan.TotalCost,
		"created_at":      time.Now(),
		"updated_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryCreatePlan, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreatePlan named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating trip plan")
		return err
	}

	return nil
}

func (r *planRepository) GetPlanByID(c context.Context, id string) (entity.TripPlan, error) {
	requestID := contextPkg.GetRequestID(c)
	var tripPlan TripPlanDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetPlanByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlanByID named query preparation err")
		return entity.TripPlan{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&tripPlan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetPlanByID no rows found")
			return entity.TripPlan{}, plan.ErrPlanNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlanByID execution err")
		return entity.TripPlan{}, err
	}

	return r.makeTripPlan(tripPlan), nil
}

func (r *planRepository) GetPlansByUserID(c context.Context, userID string) ([]entity.TripPlan, error) {
	requestID := contextPkg.GetRequestID(c)
	var tripPlans []TripPlanDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetPlansByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlansByUserID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &tripPlans, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPlansByUserID execution err")
		return nil, err
	}

	result := make([]entity.TripPlan, 0, len(tripPlans))
	for _, tripPlan := range tripPlans {
		result = append(result, r.makeTripPlan(tripPlan))
	}

	return result, nil
}

func (r *planRepository) UpdatePlanTotalCost(c context.Context, id string, totalCost float64) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"total_cost": totalCost,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdatePlanTotalCost, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePlanTotalCost named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePlanTotalCost execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePlanTotalCost rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdatePlanTotalCost no rows affected")
		return plan.ErrPlanNotFound
	}

	return nil
}

func (r *planRepository) makeTripPlan(tripPlan TripPlanDB) entity.TripPlan {
	return entity.TripPlan{
		ID:             tripPlan.ID.String,
		UserID:         tripPlan.UserID.String,
		ConversationID: tripPlan.ConversationID.String,
		Name:           tripPlan.Name.String,
		Budget:         tripPlan.Budget.Float64,
		TotalCost:      tripPlan.TotalCost.Float64,
		CreatedAt:      tripPlan.CreatedAt,
		UpdatedAt:      tripPlan.UpdatedAt,
	}
}
