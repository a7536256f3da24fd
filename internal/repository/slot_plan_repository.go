package repository

import (
	"context"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotPlanRepository interface {
	FindByPlanID(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error)
	// 已寫入的日期，編輯模式下標記為不可選
	ListDatesByEventRef(ctx context.Context, eventRefID string) ([]wizard.Date, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, plan *model.SlotPlan) (*model.SlotPlan, error)
}

type SlotPlanRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSlotPlanRepository(pool *pgxpool.Pool) SlotPlanRepository {
	return &SlotPlanRepositoryImpl{
		pool: pool,
	}
}

func (r *SlotPlanRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, plan *model.SlotPlan) (*model.SlotPlan, error) {
	query := `
		INSERT INTO slot_plans (plan_id, event_ref_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, query, plan.PlanID, plan.EventRefID).Scan(&plan.ID, &plan.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create slot plan: %w", err)
	}

	for _, d := range plan.EventDates {
		_, err := tx.Exec(ctx, `INSERT INTO plan_dates (plan_id, event_date) VALUES ($1, $2)`, plan.ID, d.Midnight(time.UTC))
		if err != nil {
			return nil, fmt.Errorf("failed to create plan date %s: %w", d, err)
		}
	}

	for _, slot := range plan.Slots {
		if err := r.createSlot(ctx, tx, plan.ID, slot); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (r *SlotPlanRepositoryImpl) createSlot(ctx context.Context, tx pgx.Tx, planID int, slot *model.PlanSlot) error {
	query := `
		INSERT INTO plan_slots (plan_id, event_date, position, start_time, end_time, duration, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := tx.QueryRow(ctx, query,
		planID, slot.EventDate.Midnight(time.UTC), slot.Position,
		slot.StartTime, slot.EndTime, slot.Duration, slot.Capacity,
	).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("failed to create plan slot %s#%d: %w", slot.EventDate, slot.Position, err)
	}

	// 同一時段的票種以 batch 一次送出
	batch := &pgx.Batch{}
	for _, c := range slot.Categories {
		batch.Queue(`
			INSERT INTO slot_categories (slot_id, category_id, position, label, price, total_tickets, booked, held)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, slot.ID, c.CategoryID, c.Position, c.Label, c.Price, c.TotalTickets, c.Booked, c.Held).QueryRow(func(row pgx.Row) error {
			return row.Scan(&c.ID)
		})
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to create slot categories: %w", err)
	}
	return nil
}

func (r *SlotPlanRepositoryImpl) FindByPlanID(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error) {
	query := `
		SELECT id, plan_id, event_ref_id, created_at
		FROM slot_plans
		WHERE plan_id = $1
	`

	var plan model.SlotPlan
	err := r.pool.QueryRow(ctx, query, planID).Scan(
		&plan.ID,
		&plan.PlanID,
		&plan.EventRefID,
		&plan.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, err
	}

	dates, err := r.listDates(ctx, `SELECT event_date FROM plan_dates WHERE plan_id = $1 ORDER BY event_date`, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.EventDates = dates

	slots, err := r.listSlots(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Slots = slots

	return &plan, nil
}

func (r *SlotPlanRepositoryImpl) listSlots(ctx context.Context, planID int) ([]*model.PlanSlot, error) {
	query := `
		SELECT s.id, s.event_date, s.position, s.start_time, s.end_time, s.duration, s.capacity,
		       c.id, c.category_id, c.position, c.label, c.price, c.total_tickets, c.booked, c.held
		FROM plan_slots s
		LEFT JOIN slot_categories c ON c.slot_id = s.id
		WHERE s.plan_id = $1
		ORDER BY s.event_date, s.position, c.position
	`
	rows, err := r.pool.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*model.PlanSlot, 0)
	var current *model.PlanSlot
	for rows.Next() {
		var (
			slot      model.PlanSlot
			eventDate time.Time
			catID     *int
			catRef    *string
			catPos    *int
			label     *string
			price     *float64
			total     *int
			booked    *int
			held      *int
		)
		err := rows.Scan(
			&slot.ID, &eventDate, &slot.Position, &slot.StartTime, &slot.EndTime, &slot.Duration, &slot.Capacity,
			&catID, &catRef, &catPos, &label, &price, &total, &booked, &held,
		)
		if err != nil {
			return nil, err
		}

		if current == nil || current.ID != slot.ID {
			slot.EventDate = wizard.DateOf(eventDate, time.UTC)
			slot.Categories = make([]*model.SlotCategory, 0)
			current = &slot
			slots = append(slots, current)
		}
		if catID != nil {
			current.Categories = append(current.Categories, &model.SlotCategory{
				ID:           *catID,
				CategoryID:   *catRef,
				Position:     *catPos,
				Label:        *label,
				Price:        *price,
				TotalTickets: *total,
				Booked:       *booked,
				Held:         *held,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotPlanRepositoryImpl) ListDatesByEventRef(ctx context.Context, eventRefID string) ([]wizard.Date, error) {
	query := `
		SELECT DISTINCT d.event_date
		FROM plan_dates d
		JOIN slot_plans p ON p.id = d.plan_id
		WHERE p.event_ref_id = $1
		ORDER BY d.event_date
	`
	return r.listDates(ctx, query, eventRefID)
}

func (r *SlotPlanRepositoryImpl) listDates(ctx context.Context, query string, arg interface{}) ([]wizard.Date, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]wizard.Date, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, wizard.DateOf(d, time.UTC))
	}
	return dates, rows.Err()
}
