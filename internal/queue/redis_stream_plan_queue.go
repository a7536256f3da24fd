package queue

import (
	"context"
	"encoding/json"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/pkg/logger"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "plans:stream"
	ConsumerGroupName  = "inventory-workers"
	ConsumerNamePrefix = "worker"
	payloadField       = "plan"
)

// RedisStreamPlanQueueConfig 可注入的逾時與重試設定；nil 或零值時使用預設。
type RedisStreamPlanQueueConfig struct {
	ClaimMinIdleTime   time.Duration // PEL 中超過此時間才被 XAUTOCLAIM 領取
	MaxRetryCount      int           // 超過此次數視為毒藥消息並丟棄
	ReadGroupBlockTime time.Duration // XReadGroup 阻塞時間
	StreamKey          string        // 測試時可換成獨立 stream
}

func defaultRedisStreamConfig() RedisStreamPlanQueueConfig {
	return RedisStreamPlanQueueConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
		StreamKey:          StreamKey,
	}
}

type RedisStreamPlanQueueImpl struct {
	client       *redis.Client
	groupName    string
	consumerName string
	cfg          RedisStreamPlanQueueConfig
}

// NewRedisStreamPlanQueue 建立 Redis Stream 版 PlanQueue。config 可為 nil。
func NewRedisStreamPlanQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamPlanQueueConfig) (PlanQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
		if config.StreamKey != "" {
			cfg.StreamKey = config.StreamKey
		}
	}
	q := &RedisStreamPlanQueueImpl{
		client:       client,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          cfg,
	}
	if err := q.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamPlanQueueImpl) ensureConsumerGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.cfg.StreamKey, q.groupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisStreamPlanQueueImpl) PublishPlan(ctx context.Context, plan *model.PlanSubmitted) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.cfg.StreamKey,
		ID:     "*",
		Values: map[string]interface{}{payloadField: string(planJSON)},
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamPlanQueueImpl) SubscribePlans(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)
		done := make(chan struct{})
		go func() {
			defer close(done)
			q.runAutoClaim(ctx, out)
		}()
		q.runReadLoop(ctx, out)
		<-done
	}()
	return out, nil
}

// runReadLoop 只讀 ">"（新訊息）；Pending 由 XAUTOCLAIM 超時後領回重試
func (q *RedisStreamPlanQueueImpl) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			q.readAndDeliver(ctx, out)
		}
	}
}

func (q *RedisStreamPlanQueueImpl) readAndDeliver(ctx context.Context, out chan<- Delivery) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: q.consumerName,
		Streams:  []string{q.cfg.StreamKey, ">"},
		Count:    10,
		Block:    q.cfg.ReadGroupBlockTime,
	}).Result()

	if err == redis.Nil {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.WithComponent("mq").Error("XReadGroup failed", zap.Error(err))
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
		return
	}

	for _, stream := range streams {
		if stream.Stream != q.cfg.StreamKey {
			continue
		}
		for _, msg := range stream.Messages {
			if !q.deliver(ctx, out, msg) {
				return
			}
		}
	}
}

// deliver 投遞一則訊息；ctx 結束時回傳 false
func (q *RedisStreamPlanQueueImpl) deliver(ctx context.Context, out chan<- Delivery, msg redis.XMessage) bool {
	d := q.newDelivery(ctx, msg)
	if d == nil {
		return true
	}
	select {
	case out <- *d:
		return true
	case <-ctx.Done():
		return false
	}
}

// shouldRetry 毒藥消息判斷：重試次數達上限即 ack 丟棄
func (q *RedisStreamPlanQueueImpl) shouldRetry(ctx context.Context, messageID string) bool {
	n, err := q.getMessageRetryCount(ctx, messageID)
	if err != nil {
		logger.WithComponent("mq").Warn("getMessageRetryCount failed", zap.String("message_id", messageID), zap.Error(err))
		return true
	}
	if n >= q.cfg.MaxRetryCount {
		logger.WithComponent("mq").Warn("discard poison message", zap.String("message_id", messageID), zap.Int("retries", n), zap.Int("max_retries", q.cfg.MaxRetryCount))
		_ = q.client.XAck(ctx, q.cfg.StreamKey, q.groupName, messageID).Err()
		return false
	}
	return true
}

func (q *RedisStreamPlanQueueImpl) getMessageRetryCount(ctx context.Context, messageID string) (int, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.cfg.StreamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return int(pending[0].RetryCount), nil
}

// runAutoClaim 定時用 XAUTOCLAIM 領取超時未 ack 的消息
func (q *RedisStreamPlanQueueImpl) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   q.cfg.StreamKey,
				Group:    q.groupName,
				Consumer: q.consumerName,
				MinIdle:  q.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && err != redis.Nil {
				if ctx.Err() != nil {
					return
				}
				logger.WithComponent("mq").Error("XAutoClaim failed", zap.Error(err))
				continue
			}
			startID = "0-0"
			if nextID != "" {
				startID = nextID
			}

			for _, msg := range claimed {
				if !q.shouldRetry(ctx, msg.ID) {
					continue
				}
				if !q.deliver(ctx, out, msg) {
					return
				}
			}
		}
	}
}

// newDelivery 從 Redis 消息組裝 Delivery（含 Ack/Nack）；格式錯誤的訊息直接 ack 丟棄
func (q *RedisStreamPlanQueueImpl) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	log := logger.WithComponent("mq").With(zap.String("message_id", msg.ID))
	planJSON, ok := msg.Values[payloadField].(string)
	if !ok {
		log.Warn("invalid message: missing plan field")
		_ = q.client.XAck(ctx, q.cfg.StreamKey, q.groupName, msg.ID).Err()
		return nil
	}
	var plan model.PlanSubmitted
	if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
		log.Warn("unmarshal plan failed", zap.Error(err))
		_ = q.client.XAck(ctx, q.cfg.StreamKey, q.groupName, msg.ID).Err()
		return nil
	}
	msgID := msg.ID
	return &Delivery{
		Data: &plan,
		Ack: func() {
			if err := q.client.XAck(ctx, q.cfg.StreamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck failed", zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// 留在 PEL，等 ClaimMinIdleTime 後由 XAUTOCLAIM 領取，形成延遲重試
				log.Info("message nack(requeue), will retry", zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
				return
			}
			if err := q.client.XAck(ctx, q.cfg.StreamKey, q.groupName, msgID).Err(); err != nil {
				log.Error("XAck discard failed", zap.Error(err))
			}
		},
	}
}
