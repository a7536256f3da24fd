package service

import (
	"context"
	"fmt"

	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"

	"github.com/google/uuid"
)

// ExistingDatesSource 查詢活動已寫入的日期
type ExistingDatesSource interface {
	ListDatesByEventRef(ctx context.Context, eventRefID string) ([]wizard.Date, error)
}

type WizardService interface {
	// 開始：建立 session；EventRefID 已有資料時載入既有日期(編輯模式)
	Start(ctx context.Context, params model.StartWizardParams) (*model.WizardView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.WizardView, error)
	// 放棄：丟棄整份狀態
	Discard(ctx context.Context, id uuid.UUID) error

	SetDateRange(ctx context.Context, id uuid.UUID, r wizard.DateRange) (*model.WizardView, error)
	ToggleDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error)
	SetActiveDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error)

	AddTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error)
	UpdateTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int, params model.UpdateSlotParams) (*model.WizardView, error)
	RemoveTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (*model.WizardView, error)

	AddCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (string, *model.WizardView, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string, params model.UpdateCategoryParams) (*model.WizardView, error)
	RemoveCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string) (*model.WizardView, error)

	// 套用至全部：覆寫其他已選日期
	ApplyToAll(ctx context.Context, id uuid.UUID, b wizard.Broadcast) (*model.ApplyAllResult, error)
	// 預覽送出內容
	Preview(ctx context.Context, id uuid.UUID) (*wizard.Payload, error)
}

type WizardServiceImpl struct {
	sessions cache.WizardSessionStore
	existing ExistingDatesSource
	cfg      wizard.Config
}

func NewWizardService(sessions cache.WizardSessionStore, existing ExistingDatesSource, cfg wizard.Config) WizardService {
	return &WizardServiceImpl{
		sessions: sessions,
		existing: existing,
		cfg:      cfg,
	}
}

func (s *WizardServiceImpl) newWizard(state *wizard.State) *wizard.Wizard {
	cfg := s.cfg
	return wizard.New(state, &cfg)
}

// mutate 讀取 session、套用修改後寫回；同一 session 的並行修改以最後寫入為準
func (s *WizardServiceImpl) mutate(ctx context.Context, id uuid.UUID, fn func(w *wizard.Wizard) error) (*model.WizardView, error) {
	state, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	w := s.newWizard(state)
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, id, w.State()); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}
	return model.NewWizardView(id, w.State()), nil
}

func validRange(r wizard.DateRange) bool {
	return r.StartDate == nil || r.EndDate == nil || !r.EndDate.Before(*r.StartDate)
}

func (s *WizardServiceImpl) Start(ctx context.Context, params model.StartWizardParams) (*model.WizardView, error) {
	if params.EventRefID == "" || !validRange(params.Range) {
		return nil, apperrors.ErrInvalidInput
	}

	w := s.newWizard(wizard.NewState(params.EventRefID))
	if s.existing != nil {
		dates, err := s.existing.ListDatesByEventRef(ctx, params.EventRefID)
		if err != nil {
			return nil, fmt.Errorf("list existing dates: %w", err)
		}
		w.State().SetExistingDates(dates)
	}
	w.SetDateRange(params.Range)

	id := uuid.New()
	if err := s.sessions.Save(ctx, id, w.State()); err != nil {
		return nil, fmt.Errorf("save wizard: %w", err)
	}
	return model.NewWizardView(id, w.State()), nil
}

func (s *WizardServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.WizardView, error) {
	state, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewWizardView(id, state), nil
}

func (s *WizardServiceImpl) Discard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sessions.Load(ctx, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *WizardServiceImpl) SetDateRange(ctx context.Context, id uuid.UUID, r wizard.DateRange) (*model.WizardView, error) {
	if !validRange(r) {
		return nil, apperrors.ErrInvalidInput
	}
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		w.SetDateRange(r)
		return nil
	})
}

// ToggleDate 加入日期時才做日曆檢查；已存在日期無論加入或移除都不可切換
func (s *WizardServiceImpl) ToggleDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		if w.State().IsExisting(d) {
			return wizard.ErrDateAlreadyExists
		}
		if !w.State().IsSelected(d) {
			if err := w.CheckSelectable(d); err != nil {
				return err
			}
		}
		w.ToggleDateSelection(d)
		return nil
	})
}

func (s *WizardServiceImpl) SetActiveDate(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		return w.SetActiveDate(d)
	})
}

func (s *WizardServiceImpl) AddTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		_, err := w.AddTimeSlot(d)
		return err
	})
}

func (s *WizardServiceImpl) UpdateTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int, params model.UpdateSlotParams) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		return w.UpdateTimeSlot(d, index, params.Field, params.Value)
	})
}

func (s *WizardServiceImpl) RemoveTimeSlot(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		return w.RemoveTimeSlot(d, index)
	})
}

func (s *WizardServiceImpl) AddCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int) (string, *model.WizardView, error) {
	var categoryID string
	view, err := s.mutate(ctx, id, func(w *wizard.Wizard) error {
		var err error
		categoryID, err = w.AddTicketCategoryToSlot(d, index)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return categoryID, view, nil
}

func (s *WizardServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string, params model.UpdateCategoryParams) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		return w.UpdateTicketCategoryInSlot(d, index, categoryID, params.Field, params.Value)
	})
}

func (s *WizardServiceImpl) RemoveCategory(ctx context.Context, id uuid.UUID, d wizard.Date, index int, categoryID string) (*model.WizardView, error) {
	return s.mutate(ctx, id, func(w *wizard.Wizard) error {
		return w.RemoveTicketCategoryFromSlot(d, index, categoryID)
	})
}

func (s *WizardServiceImpl) ApplyToAll(ctx context.Context, id uuid.UUID, b wizard.Broadcast) (*model.ApplyAllResult, error) {
	var n int
	view, err := s.mutate(ctx, id, func(w *wizard.Wizard) error {
		var err error
		n, err = w.ApplyToAll(b)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &model.ApplyAllResult{Overwritten: n, View: view}, nil
}

func (s *WizardServiceImpl) Preview(ctx context.Context, id uuid.UUID) (*wizard.Payload, error) {
	state, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	p := wizard.TransformToAPIPayload(state)
	return &p, nil
}
