package worker

import (
	"context"
	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/queue"
	"event-slot-wizard/pkg/logger"
	"fmt"

	"go.uber.org/zap"
)

type InventoryWorker interface {
	// 訂閱規劃隊列，回傳的 channel 在 worker 結束時關閉
	Start(ctx context.Context) (<-chan struct{}, error)
}

type InventoryWorkerImpl struct {
	inventory cache.CategoryInventoryManager
	queue     queue.PlanQueue
}

func NewInventoryWorker(inventory cache.CategoryInventoryManager, queue queue.PlanQueue) InventoryWorker {
	return &InventoryWorkerImpl{
		inventory: inventory,
		queue:     queue,
	}
}

func (w *InventoryWorkerImpl) Start(ctx context.Context) (<-chan struct{}, error) {
	msgs, err := w.queue.SubscribePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe plans: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		log := logger.WithComponent("worker")
		for msg := range msgs {
			if err := w.warmUp(ctx, msg.Data); err != nil {
				// Redis 暫時失敗時重試，WarmUp 為覆寫，重複執行無副作用
				log.Warn("warm up inventory failed", zap.String("plan_id", msg.Data.PlanID.String()), zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return done, nil
}

func (w *InventoryWorkerImpl) warmUp(ctx context.Context, plan *model.PlanSubmitted) error {
	for _, slot := range plan.Slots {
		for _, c := range slot.Categories {
			if err := w.inventory.WarmUp(ctx, plan.PlanID, slot, c); err != nil {
				return err
			}
		}
	}
	return nil
}
