package model

import (
	"time"

	"event-slot-wizard/internal/wizard"

	"github.com/google/uuid"
)

// SlotPlan 已送出的活動時段規劃
type SlotPlan struct {
	ID         int           `json:"id" db:"id"`
	PlanID     uuid.UUID     `json:"plan_id" db:"plan_id"`
	EventRefID string        `json:"event_ref_id" db:"event_ref_id"`
	EventDates []wizard.Date `json:"event_dates" db:"-"`
	Slots      []*PlanSlot   `json:"slots" db:"-"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// PlanSlot 某日期的一個時段，Position 為該日內的順序
type PlanSlot struct {
	ID         int             `json:"id" db:"id"`
	EventDate  wizard.Date     `json:"event_date" db:"event_date"`
	Position   int             `json:"position" db:"position"`
	StartTime  string          `json:"start_time" db:"start_time"`
	EndTime    string          `json:"end_time" db:"end_time"`
	Duration   string          `json:"duration" db:"duration"`
	Capacity   *int            `json:"capacity,omitempty" db:"capacity"`
	Categories []*SlotCategory `json:"categories" db:"-"`
}

type SlotCategory struct {
	ID           int     `json:"id" db:"id"`
	CategoryID   string  `json:"category_id" db:"category_id"`
	Position     int     `json:"position" db:"position"`
	Label        string  `json:"label" db:"label"`
	Price        float64 `json:"price" db:"price"`
	TotalTickets int     `json:"total_tickets" db:"total_tickets"`
	Booked       int     `json:"booked" db:"booked"`
	Held         int     `json:"held" db:"held"`
}

// NewSlotPlanFromPayload 將送出內容展開成可寫入資料庫的結構
func NewSlotPlanFromPayload(planID uuid.UUID, p wizard.Payload) *SlotPlan {
	plan := &SlotPlan{
		PlanID:     planID,
		EventRefID: p.EventRefID,
		EventDates: append([]wizard.Date{}, p.EventDates...),
		Slots:      make([]*PlanSlot, 0),
	}
	for _, d := range p.EventDates {
		for i, s := range p.SlotData[d] {
			slot := &PlanSlot{
				EventDate:  d,
				Position:   i,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				Duration:   s.Duration,
				Capacity:   s.Capacity,
				Categories: make([]*SlotCategory, 0, len(s.SeatCategories)),
			}
			for j, c := range s.SeatCategories {
				slot.Categories = append(slot.Categories, &SlotCategory{
					CategoryID:   c.ID,
					Position:     j,
					Label:        c.Label,
					Price:        c.Price,
					TotalTickets: c.TotalTickets,
					Booked:       c.Booked,
					Held:         c.Held,
				})
			}
			plan.Slots = append(plan.Slots, slot)
		}
	}
	return plan
}

// PlanSubmitted 送出後發到隊列的訊息，worker 依此預熱票種庫存
type PlanSubmitted struct {
	PlanID     uuid.UUID   `json:"plan_id"`
	EventRefID string      `json:"event_ref_id"`
	Slots      []*PlanSlot `json:"slots"`
}
