package planService

import (
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"TravelGolang/internal/api/plan"
	planRepository "TravelGolang/internal/api/plan/repository"
	"TravelGolang/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type stubPlanStore struct {
	plan        entity.TripPlan
	planErr     error
	created     []entity.TripPlan
	updatedCost *float64
}

func (s *stubPlanStore) CreatePlan(c context.Context, tripPlan entity.TripPlan) error {
	s.created = append(s.created, tripPlan)
	return nil
}

func (s *stubPlanStore) GetPlanByID(c context.Context, id string) (entity.TripPlan, error) {
	if s.planErr != nil {
		return entity.TripPlan{}, s.planErr
	}
	return s.plan, nil
}

func (s *stubPlanStore) GetPlansByUserID(c context.Context, userID string) ([]entity.TripPlan, error) {
	return []entity.TripPlan{s.plan}, nil
}

func (s *stubPlanStore) UpdatePlanTotalCost(c context.Context, id string, totalCost float64) error {
	s.updatedCost = &totalCost
	return nil
}

type stubItemStore struct {
	item      entity.TripPlanItem
	itemErr   error
	created   []entity.TripPlanItem
	deletedID string
	bookedID  string
}

func (s *stubItemStore) CreateItem(c context.Context, item entity.TripPlanItem) error {
	s.created = append(s.created, item)
	return nil
}

func (s *stubItemStore) GetItemByID(c context.Context, id string) (entity.TripPlanItem, error) {
	if s.itemErr != nil {
		return entity.TripPlanItem{}, s.itemErr
	}
	return s.item, nil
}

func (s *stubItemStore) GetItemsByPlanID(c context.Context, planID string) ([]entity.TripPlanItem, error) {
	return []entity.TripPlanItem{s.item}, nil
}

func (s *stubItemStore) DeleteItem(c context.Context, id string) error {
	s.deletedID = id
	return nil
}

func (s *stubItemStore) MarkItemBooked(c context.Context, id string) error {
	s.bookedID = id
	return nil
}

type stubPlanIDSource struct {
	n int
}

func (s *stubPlanIDSource) NewULIDFromTimestamp(t time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("01TESTPLAN%04d", s.n), nil
}

func (s *stubPlanIDSource) ValidateAttachmentFile(file *multipart.FileHeader) error {
	return nil
}

type stubPlanRepository struct {
	client planRepository.Client
}

func (r *stubPlanRepository) NewClient(tx bool) (planRepository.Client, error) {
	return r.client, nil
}

type planServiceFixture struct {
	service   IPlanService
	plans     *stubPlanStore
	items     *stubItemStore
	committed bool
}

func newPlanServiceFixture() *planServiceFixture {
	fixture := &planServiceFixture{
		plans: &stubPlanStore{
			plan: entity.TripPlan{
				ID:        "plan-1",
				UserID:    "user-1",
				Name:      "Portugal in June",
				Budget:    1500,
				TotalCost: 500,
			},
		},
		items: &stubItemStore{
			item: entity.TripPlanItem{
				ID:     "item-1",
				PlanID: "plan-1",
				Kind:   entity.PlanItemHotel,
				Name:   "Hotel Aurora",
				Price:  180,
			},
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := planRepository.Client{
		Plan: fixture.plans,
		Item: fixture.items,
		Commit: func() error {
			fixture.committed = true
			return nil
		},
		Rollback: func() error { return nil },
	}

	fixture.service = NewPlanService(logger, &stubPlanRepository{client: client}, &stubPlanIDSource{})

	return fixture
}

func TestAddItemUpdatesTotalCost(t *testing.T) {
	fixture := newPlanServiceFixture()

	item, err := fixture.service.AddItem(context.Background(), "user-1", "plan-1", plan.AddItemRequest{
		Kind:     entity.PlanItemFlight,
		Name:     "LIS round trip",
		Price:    320,
		Currency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PlanItemFlight, item.Kind)
	assert.False(t, item.Booked)
	assert.NotEmpty(t, item.ID)

	require.Len(t, fixture.items.created, 1)
	require.NotNil(t, fixture.plans.updatedCost)
	assert.InDelta(t, 820.0, *fixture.plans.updatedCost, 0.001)
	assert.True(t, fixture.committed)
}

func TestAddItemRejectsUnknownKind(t *testing.T) {
	fixture := newPlanServiceFixture()

	_, err := fixture.service.AddItem(context.Background(), "user-1", "plan-1", plan.AddItemRequest{
		Kind:     "cruise",
		Name:     "Atlantic cruise",
		Price:    900,
		Currency: "EUR",
	})

	require.ErrorIs(t, err, plan.ErrInvalidItemKind)
	assert.Empty(t, fixture.items.created)
}

func TestAddItemRejectsForeignPlan(t *testing.T) {
	fixture := newPlanServiceFixture()
	fixture.plans.plan.UserID = "someone-else"

	_, err := fixture.service.AddItem(context.Background(), "user-1", "plan-1", plan.AddItemRequest{
		Kind:     entity.PlanItemHotel,
		Name:     "Hotel Aurora",
		Price:    180,
		Currency: "EUR",
	})

	require.ErrorIs(t, err, plan.ErrPlanNotOwned)
	assert.Empty(t, fixture.items.created)
	assert.False(t, fixture.committed)
}

func TestRemoveItemSubtractsPrice(t *testing.T) {
	fixture := newPlanServiceFixture()

	err := fixture.service.RemoveItem(context.Background(), "user-1", "plan-1", "item-1")

	require.NoError(t, err)
	assert.Equal(t, "item-1", fixture.items.deletedID)
	require.NotNil(t, fixture.plans.updatedCost)
	assert.InDelta(t, 320.0, *fixture.plans.updatedCost, 0.001)
	assert.True(t, fixture.committed)
}

func TestRemoveItemFromOtherPlan(t *testing.T) {
	fixture := newPlanServiceFixture()
	fixture.items.item.PlanID = "plan-2"

	err := fixture.service.RemoveItem(context.Background(), "user-1", "plan-1", "item-1")

	require.ErrorIs(t, err, plan.ErrItemNotFound)
	assert.Empty(t, fixture.items.deletedID)
}

func TestBookItemMarksItemBooked(t *testing.T) {
	fixture := newPlanServiceFixture()

	err := fixture.service.BookItem(context.Background(), "user-1", "plan-1", "item-1")

	require.NoError(t, err)
	assert.Equal(t, "item-1", fixture.items.bookedID)
}

func TestCheckBudgetReportsOverLimit(t *testing.T) {
	fixture := newPlanServiceFixture()
	fixture.plans.plan.Budget = 1000
	fixture.plans.plan.TotalCost = 1200

	response, err := fixture.service.CheckBudget(context.Background(), "user-1", "plan-1")

	require.NoError(t, err)
	assert.InDelta(t, -200.0, response.Remaining, 0.001)
	assert.True(t, response.OverLimit)
}

func TestCheckBudgetWithoutBudgetNeverOverLimit(t *testing.T) {
	fixture := newPlanServiceFixture()
	fixture.plans.plan.Budget = 0
	fixture.plans.plan.TotalCost = 1200

	response, err := fixture.service.CheckBudget(context.Background(), "user-1", "plan-1")

	require.NoError(t, err)
	assert.False(t, response.OverLimit)
}
