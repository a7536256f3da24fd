package queue

import (
	"context"
	"time"

	"event-slot-wizard/internal/model"
	"event-slot-wizard/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.PlanSubmitted
	Ack  func()
	Nack func(requeue bool)
}

type PlanQueue interface {
	// 發布已送出的規劃
	PublishPlan(ctx context.Context, plan *model.PlanSubmitted) error
	// 訂閱已送出的規劃
	SubscribePlans(ctx context.Context) (<-chan Delivery, error)
}

// MemoryPlanQueueConfig 重試設定；nil 或零值時使用預設
type MemoryPlanQueueConfig struct {
	RetryDelay    time.Duration // nack(requeue) 後延遲多久重回隊列
	MaxRetryCount int           // 超過此次數丟棄
}

func defaultMemoryQueueConfig() MemoryPlanQueueConfig {
	return MemoryPlanQueueConfig{
		RetryDelay:    time.Second,
		MaxRetryCount: 5,
	}
}

type memoryMessage struct {
	plan    *model.PlanSubmitted
	retries int
}

type MemoryPlanQueueImpl struct {
	// 以 Go channel 模擬 MQ，單一行程內使用
	ch  chan *memoryMessage
	cfg MemoryPlanQueueConfig
}

func NewMemoryPlanQueue(bufferSize int, config *MemoryPlanQueueConfig) PlanQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	cfg := defaultMemoryQueueConfig()
	if config != nil {
		if config.RetryDelay > 0 {
			cfg.RetryDelay = config.RetryDelay
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
	}
	return &MemoryPlanQueueImpl{
		ch:  make(chan *memoryMessage, bufferSize),
		cfg: cfg,
	}
}

func (q *MemoryPlanQueueImpl) PublishPlan(ctx context.Context, plan *model.PlanSubmitted) error {
	select {
	case q.ch <- &memoryMessage{plan: plan}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryPlanQueueImpl) SubscribePlans(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-q.ch:
				if !ok {
					return
				}

				d := Delivery{
					Data: msg.plan,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.requeue(ctx, msg)
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// requeue 延遲後重回隊列；超過重試次數或隊列已滿時丟棄，避免卡住消費者
func (q *MemoryPlanQueueImpl) requeue(ctx context.Context, msg *memoryMessage) {
	log := logger.WithComponent("queue").With(zap.String("plan_id", msg.plan.PlanID.String()))

	msg.retries++
	if msg.retries > q.cfg.MaxRetryCount {
		log.Error("max retries exceeded, discarding plan", zap.Int("retries", msg.retries-1))
		return
	}
	time.AfterFunc(q.cfg.RetryDelay, func() {
		if ctx.Err() != nil {
			return
		}
		select {
		case q.ch <- msg:
		default:
			log.Warn("queue full, dropping requeued plan")
		}
	})
}
