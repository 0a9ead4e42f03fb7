package entity

import "time"

type TripPlan struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	ConversationID string    `db:"conversation_id"`
	Name           string    `db:"name"`
	Budget         float64   `db:"budget"`
	TotalCost      float64   `db:"total_cost"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type TripPlanItem struct {
	ID        string    `db:"id"`
	PlanID    string    `db:"plan_id"`
	Kind      string    `db:"kind"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	Currency  string    `db:"currency"`
	Details   string    `db:"details"`
	Booked    bool      `db:"booked"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	PlanItemFlight   = "flight"
	PlanItemHotel    = "hotel"
	PlanItemActivity = "activity"
)

func IsValidPlanItemKind(kind string) bool {
	switch kind {
	case PlanItemFlight, PlanItemHotel, PlanItemActivity:
		return true
	}
	return false
}
