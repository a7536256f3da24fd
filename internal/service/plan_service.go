package service

import (
	"context"
	"fmt"

	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/client"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/queue"
	"event-slot-wizard/internal/repository"
	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"
	"event-slot-wizard/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxBeginner *pgxpool.Pool 即滿足
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PlanService interface {
	// 送出精靈：寫入本地資料庫或轉送外部 API；失敗不重試，session 保留供再次送出
	Submit(ctx context.Context, wizardID uuid.UUID) (*model.SubmitResult, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error)
	// 送出後預熱的票種庫存
	GetInventory(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error)
}

type PlanServiceImpl struct {
	db        TxBeginner
	sessions  cache.WizardSessionStore
	repo      repository.SlotPlanRepository
	inventory cache.CategoryInventoryManager
	planQueue queue.PlanQueue
	remote    client.EventsAPI
}

// NewPlanService remote 為 nil 時寫入本地資料庫
func NewPlanService(
	db TxBeginner,
	sessions cache.WizardSessionStore,
	repo repository.SlotPlanRepository,
	inventory cache.CategoryInventoryManager,
	planQueue queue.PlanQueue,
	remote client.EventsAPI,
) PlanService {
	return &PlanServiceImpl{
		db:        db,
		sessions:  sessions,
		repo:      repo,
		inventory: inventory,
		planQueue: planQueue,
		remote:    remote,
	}
}

func (s *PlanServiceImpl) Submit(ctx context.Context, wizardID uuid.UUID) (*model.SubmitResult, error) {
	log := logger.WithComponent("service").With(zap.String("wizard_id", wizardID.String()))

	state, err := s.sessions.Load(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	payload := wizard.TransformToAPIPayload(state)
	if len(payload.EventDates) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	result := &model.SubmitResult{Payload: payload}
	if s.remote != nil {
		if err := s.remote.SubmitSlots(ctx, payload); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSubmissionFailed, err)
		}
		result.Forwarded = true
	} else {
		planID, err := s.persist(ctx, payload)
		if err != nil {
			return nil, err
		}
		result.PlanID = &planID
	}

	// 送出已成功，session 清除失敗只記錄，過期後會自動消失
	if err := s.sessions.Delete(ctx, wizardID); err != nil {
		log.Warn("delete wizard session failed", zap.Error(err))
	}
	return result, nil
}

// persist 在同一個交易內寫入規劃並發布隊列；發布失敗則回滾，不留下沒有庫存的規劃
func (s *PlanServiceImpl) persist(ctx context.Context, payload wizard.Payload) (uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx)

	plan := model.NewSlotPlanFromPayload(uuid.New(), payload)
	created, err := s.repo.Create(ctx, tx, plan)
	if err != nil {
		return uuid.Nil, err
	}

	msg := &model.PlanSubmitted{
		PlanID:     created.PlanID,
		EventRefID: created.EventRefID,
		Slots:      created.Slots,
	}
	if err := s.planQueue.PublishPlan(ctx, msg); err != nil {
		logger.WithComponent("service").Error("publish plan failed", zap.String("plan_id", created.PlanID.String()), zap.Error(err))
		return uuid.Nil, apperrors.ErrInternalServerError
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return created.PlanID, nil
}

func (s *PlanServiceImpl) GetPlan(ctx context.Context, planID uuid.UUID) (*model.SlotPlan, error) {
	return s.repo.FindByPlanID(ctx, planID)
}

func (s *PlanServiceImpl) GetInventory(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error) {
	if _, err := s.repo.FindByPlanID(ctx, planID); err != nil {
		return nil, err
	}
	return s.inventory.ListByPlan(ctx, planID)
}
