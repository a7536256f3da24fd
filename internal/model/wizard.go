package model

import (
	"event-slot-wizard/internal/wizard"

	"github.com/google/uuid"
)

// WizardView 回傳給前端的精靈狀態，含展開日期與各時段營收
type WizardView struct {
	ID      uuid.UUID                 `json:"id"`
	State   *wizard.State             `json:"state"`
	Days    []wizard.Date             `json:"days"`
	Revenue map[wizard.Date][]float64 `json:"revenue"`
}

func NewWizardView(id uuid.UUID, state *wizard.State) *WizardView {
	return &WizardView{
		ID:      id,
		State:   state,
		Days:    state.Range.Days(),
		Revenue: wizard.Revenue(state),
	}
}

// StartWizardParams 開始精靈；EventRefID 對應到已有資料時為編輯模式
type StartWizardParams struct {
	EventRefID string
	Range      wizard.DateRange
}

// UpdateSlotParams 更新時段單一欄位
type UpdateSlotParams struct {
	Field wizard.SlotField
	Value string
}

// UpdateCategoryParams 更新票種單一欄位
type UpdateCategoryParams struct {
	Field wizard.CategoryField
	Value string
}

// ApplyAllResult 套用至全部的結果
type ApplyAllResult struct {
	Overwritten int         `json:"overwritten"`
	View        *WizardView `json:"wizard"`
}

// SubmitResult 送出結果；送往外部 API 時 PlanID 為 nil
type SubmitResult struct {
	PlanID    *uuid.UUID     `json:"plan_id,omitempty"`
	Forwarded bool           `json:"forwarded"`
	Payload   wizard.Payload `json:"payload"`
}

// CategoryInventory 票種庫存快照
type CategoryInventory struct {
	Key          string  `json:"key"`
	Date         string  `json:"date"`
	SlotPosition int     `json:"slot_position"`
	CategoryID   string  `json:"category_id"`
	Stock        int     `json:"stock"`
	Price        float64 `json:"price"`
	Booked       int     `json:"booked"`
	Held         int     `json:"held"`
}
