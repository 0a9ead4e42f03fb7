package plan

import "TravelGolang/pkg/response"

var (
	ErrPlanNotFound    = response.NewError(404, "trip plan not found")
	ErrPlanNotOwned    = response.NewError(403, "trip plan does not belong to user")
	ErrItemNotFound    = response.NewError(404, "plan item not found")
	ErrInvalidItemKind = response.NewError(400, "invalid plan item kind")
	ErrCreatePlan      = response.NewError(500, "failed to create trip plan")
	ErrAddItem         = response.NewError(500, "failed to add item to trip plan")
)
