package mocks

import (
	"context"

	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/queue"
	"event-slot-wizard/internal/wizard"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// SlotPlanRepositoryMock 同時滿足 service.ExistingDatesSource
type SlotPlanRepositoryMock struct {
	mock.Mock
}

func (m *SlotPlanRepositoryMock) FindByPlanID(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SlotPlan), args.Error(1)
}

func (m *SlotPlanRepositoryMock) ListDatesByEventRef(ctx context.Context, eventRefID string) ([]wizard.Date, error) {
	args := m.Called(ctx, eventRefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wizard.Date), args.Error(1)
}

func (m *SlotPlanRepositoryMock) Create(ctx context.Context, tx pgx.Tx, plan *model.SlotPlan) (*model.SlotPlan, error) {
	args := m.Called(ctx, tx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SlotPlan), args.Error(1)
}

type PlanQueueMock struct {
	mock.Mock
}

func (m *PlanQueueMock) PublishPlan(ctx context.Context, plan *model.PlanSubmitted) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanQueueMock) SubscribePlans(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

type EventsAPIMock struct {
	mock.Mock
}

func (m *EventsAPIMock) SubmitSlots(ctx context.Context, payload wizard.Payload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type CategoryInventoryMock struct {
	mock.Mock
}

func (m *CategoryInventoryMock) WarmUp(ctx context.Context, planID uuid.UUID, slot *model.PlanSlot, category *model.SlotCategory) error {
	args := m.Called(ctx, planID, slot, category)
	return args.Error(0)
}

func (m *CategoryInventoryMock) GetInfo(ctx context.Context, key string) (cache.CategoryStock, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(cache.CategoryStock), args.Error(1)
}

func (m *CategoryInventoryMock) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CategoryInventory), args.Error(1)
}
