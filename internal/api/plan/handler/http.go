package planHandler

import (
	planService "TravelGolang/internal/api/plan/service"
	"TravelGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type PlanHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	planService planService.IPlanService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	planService planService.IPlanService,
) *PlanHandler {
	return &PlanHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		planService: planService,
	}
}

func (h *PlanHandler) Start(srv fiber.Router) {
	plans := srv.Group("/plans")

	plans.Post("/", h.middleware.NewTokenMiddleware, h.CreatePlan)
	plans.Get("/", h.middleware.NewTokenMiddleware, h.ListPlans)
	plans.Get("/:id", h.middleware.NewTokenMiddleware, h.GetPlan)
	plans.Get("/:id/budget", h.middleware.NewTokenMiddleware, h.CheckBudget)
	plans.Post("/:id/items", h.middleware.NewTokenMiddleware, h.AddItem)
	plans.Post("/:id/items/:itemId/book", h.middleware.NewTokenMiddleware, h.BookItem)
	plans.Delete("/:id/items/:itemId", h.middleware.NewTokenMiddleware, h.RemoveItem)
}
