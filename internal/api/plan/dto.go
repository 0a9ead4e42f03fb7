package plan

type CreatePlanRequest struct {
	ConversationID string  `json:"conversation_id"`
	Name           string  `json:"name" validate:"required,max=120"`
	Budget         float64 `json:"budget" validate:"gte=0"`
}

type AddItemRequest struct {
	Kind     string  `json:"kind" validate:"required,oneof=flight hotel activity"`
	Name     string  `json:"name" validate:"required,max=200"`
	Price    float64 `json:"price" validate:"gte=0"`
	Currency string  `json:"currency" validate:"required,len=3"`
	Details  string  `json:"details"`
}

type ItemResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Details   string  `json:"details,omitempty"`
	Booked    bool    `json:"booked"`
	CreatedAt string  `json:"created_at"`
}

type PlanResponse struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id,omitempty"`
	Name           string         `json:"name"`
	Budget         float64        `json:"budget"`
	TotalCost      float64        `json:"total_cost"`
	Items          []ItemResponse `json:"items,omitempty"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type BudgetCheckResponse struct {
	PlanID    string  `json:"plan_id"`
	Budget    float64 `json:"budget"`
	TotalCost float64 `json:"total_cost"`
	Remaining float64 `json:"remaining"`
	OverLimit bool    `json:"over_limit"`
}
