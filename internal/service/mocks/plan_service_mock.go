package mocks

import (
	"context"

	"event-slot-wizard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PlanServiceMock struct {
	mock.Mock
}

func NewPlanServiceMock() *PlanServiceMock {
	return &PlanServiceMock{}
}

func (m *PlanServiceMock) Submit(ctx context.Context, wizardID uuid.UUID) (*model.SubmitResult, error) {
	args := m.Called(ctx, wizardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmitResult), args.Error(1)
}

func (m *PlanServiceMock) GetPlan(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SlotPlan), args.Error(1)
}

func (m *PlanServiceMock) GetInventory(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CategoryInventory), args.Error(1)
}
