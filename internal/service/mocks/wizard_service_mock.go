package mocks

import (
	"context"

	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type WizardServiceMock struct {
	mock.Mock
}

func NewWizardServiceMock() *WizardServiceMock {
	return &WizardServiceMock{}
}

func (m *WizardServiceMock) view(args mock.Arguments) (*model.WizardView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WizardView), args.Error(1)
}

func (m *WizardServiceMock) Start(ctx context.Context, params model.StartWizardParams) (*model.WizardView, error) {
	return m.view(m.Called(ctx, params))
}

func (m *WizardServiceMock) Get(ctx context.Context, id uuid.UUID) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id))
}

func (m *WizardServiceMock) Discard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WizardServiceMock) SetDateRange(ctx context.Context, id uuid.UUID, r wizard.DateRange) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, r))
}

func (m *WizardServiceMock) ToggleDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d))
}

func (m *WizardServiceMock) SetActiveDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d))
}

func (m *WizardServiceMock) AddTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d))
}

func (m *WizardServiceMock) UpdateTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int, params model.UpdateSlotParams) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d, index, params))
}

func (m *WizardServiceMock) RemoveTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d, index))
}

func (m *WizardServiceMock) AddCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (string, *model.WizardView, error) {
	args := m.Called(ctx, id, d, index)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.WizardView), args.Error(2)
}

func (m *WizardServiceMock) UpdateCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string, params model.UpdateCategoryParams) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d, index, categoryID, params))
}

func (m *WizardServiceMock) RemoveCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string) (*model.WizardView, error) {
	return m.view(m.Called(ctx, id, d, index, categoryID))
}

func (m *WizardServiceMock) ApplyToAll(ctx context.Context, id uuid.UUID, b wizard.Broadcast) (*model.ApplyAllResult, error) {
	args := m.Called(ctx, id, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplyAllResult), args.Error(1)
}

func (m *WizardServiceMock) Preview(ctx context.Context, id uuid.UUID) (*wizard.Payload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Payload), args.Error(1)
}
