package planService

import (
	"TravelGolang/internal/api/plan"
	planRepository "TravelGolang/internal/api/plan/repository"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *planService) CreatePlan(ctx context.Context, userID string, req plan.CreatePlanRequest) (entity.TripPlan, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.TripPlan{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.TripPlan{}, err
	}

	tripPlan := entity.TripPlan{
		ID:             ULID,
		UserID:         userID,
		ConversationID: req.ConversationID,
		Name:           req.Name,
		Budget:         req.Budget,
		TotalCost:      0,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := repo.Plan.CreatePlan(ctx, tripPlan); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create trip plan")
		return entity.TripPlan{}, plan.ErrCreatePlan
	}

	return tripPlan, nil
}

func (s *planService) GetPlan(ctx context.Context, userID string, planID string) (plan.PlanResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return plan.PlanResponse{}, err
	}

	tripPlan, err := s.ownedPlan(ctx, repo, userID, planID)
	if err != nil {
		return plan.PlanResponse{}, err
	}

	items, err := repo.Item.GetItemsByPlanID(ctx, planID)
	if err != nil {
		return plan.PlanResponse{}, err
	}

	response := makePlanResponse(tripPlan)
	for _, item := range items {
		response.Items = append(response.Items, plan.ItemResponse{
			ID:        item.ID,
			Kind:      item.Kind,
			Name:      item.Name,
			Price:     item.Price,
			Currency:  item.Currency,
			Details:   item.Details,
			Booked:    item.Booked,
			CreatedAt: item.CreatedAt.Format(time.RFC3339),
		})
	}

	return response, nil
}

func (s *planService) ListPlans(ctx context.Context, userID string) ([]plan.PlanResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	tripPlans, err := repo.Plan.GetPlansByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]plan.PlanResponse, 0, len(tripPlans))
	for _, tripPlan := range tripPlans {
		result = append(result, makePlanResponse(tripPlan))
	}

	return result, nil
}

func (s *planService) AddItem(ctx context.Context, userID string, planID string, req plan.AddItemRequest) (entity.TripPlanItem, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !entity.IsValidPlanItemKind(req.Kind) {
		return entity.TripPlanItem{}, plan.ErrInvalidItemKind
	}

	// Item insert and plan total update must land together.
	repo, err := s.planRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.TripPlanItem{}, err
	}
	defer repo.Rollback()

	tripPlan, err := s.ownedPlan(ctx, repo, userID, planID)
	if err != nil {
		return entity.TripPlanItem{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.TripPlanItem{}, err
	}

	item := entity.TripPlanItem{
		ID:        ULID,
		PlanID:    planID,
		Kind:      req.Kind,
		Name:      req.Name,
		Price:     req.Price,
		Currency:  req.Currency,
		Details:   req.Details,
		Booked:    false,
		CreatedAt: time.Now(),
	}

	if err := repo.Item.CreateItem(ctx, item); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create plan item")
		return entity.TripPlanItem{}, plan.ErrAddItem
	}

	if err := repo.Plan.UpdatePlanTotalCost(ctx, planID, tripPlan.TotalCost+item.Price); err != nil {
		return entity.TripPlanItem{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit plan item addition")
		return entity.TripPlanItem{}, err
	}

	return item, nil
}

func (s *planService) RemoveItem(ctx context.Context, userID string, planID string, itemID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	tripPlan, err := s.ownedPlan(ctx, repo, userID, planID)
	if err != nil {
		return err
	}

	item, err := repo.Item.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.PlanID != planID {
		return plan.ErrItemNotFound
	}

	if err := repo.Item.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	if err := repo.Plan.UpdatePlanTotalCost(ctx, planID, tripPlan.TotalCost-item.Price); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit plan item removal")
		return err
	}

	return nil
}

func (s *planService) BookItem(ctx context.Context, userID string, planID string, itemID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if _, err := s.ownedPlan(ctx, repo, userID, planID); err != nil {
		return err
	}

	item, err := repo.Item.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.PlanID != planID {
		return plan.ErrItemNotFound
	}

	return repo.Item.MarkItemBooked(ctx, itemID)
}

func (s *planService) CheckBudget(ctx context.Context, userID string, planID string) (plan.BudgetCheckResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.planRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return plan.BudgetCheckResponse{}, err
	}

	tripPlan, err := s.ownedPlan(ctx, repo, userID, planID)
	if err != nil {
		return plan.BudgetCheckResponse{}, err
	}

	return plan.BudgetCheckResponse{
		PlanID:    tripPlan.ID,
		Budget:    tripPlan.Budget,
		TotalCost: tripPlan.TotalCost,
		Remaining: tripPlan.Budget - tripPlan.TotalCost,
		OverLimit: tripPlan.Budget > 0 && tripPlan.TotalCost > tripPlan.Budget,
	}, nil
}

func (s *planService) ownedPlan(ctx context.Context, repo planRepository.Client, userID string, planID string) (entity.TripPlan, error) {
	tripPlan, err := repo.Plan.GetPlanByID(ctx, planID)
	if err != nil {
		return entity.TripPlan{}, err
	}

	if tripPlan.UserID != userID {
		return entity.TripPlan{}, plan.ErrPlanNotOwned
	}

	return tripPlan, nil
}

func makePlanResponse(tripPlan entity.TripPlan) plan.PlanResponse {
	return plan.PlanResponse{
		ID:             tripPlan.ID,
		ConversationID: tripPlan.ConversationID,
		Name:           tripPlan.Name,
		Budget:         tripPlan.Budget,
		TotalCost:      tripPlan.TotalCost,
		CreatedAt:      tripPlan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      tripPlan.UpdatedAt.Format(time.RFC3339),
	}
}
