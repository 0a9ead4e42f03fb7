package planService

import (
	"TravelGolang/internal/api/plan"
	planRepository "TravelGolang/internal/api/plan/repository"
	"TravelGolang/internal/entity"
	"TravelGolang/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPlanService interface {
	CreatePlan(ctx context.Context, userID string, req plan.CreatePlanRequest) (entity.TripPlan, error)
	GetPlan(ctx context.Context, userID string, planID string) (plan.PlanResponse, error)
	ListPlans(ctx context.Context, userID string) ([]plan.PlanResponse, error)
	AddItem(ctx context.Context, userID string, planID string, req plan.AddItemRequest) (entity.TripPlanItem, error)
	RemoveItem(ctx context.Context, userID string, planID string, itemID string) error
	BookItem(ctx context.Context, userID string, planID string, itemID string) error
	CheckBudget(ctx context.Context, userID string, planID string) (plan.BudgetCheckResponse, error)
}

type planService struct {
	log            *logrus.Logger
	planRepository planRepository.Repository
	utils          utils.IUtils
}

func NewPlanService(log *logrus.Logger, pr planRepository.Repository, utils utils.IUtils) IPlanService {
	return &planService{
		log:            log,
		planRepository: pr,
		utils:          utils,
	}
}
