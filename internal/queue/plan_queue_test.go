package queue_test

import (
	"context"
	"testing"
	"time"

	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPlanQueue_PublishAndSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryPlanQueue(4, nil)
	plan := &model.PlanSubmitted{PlanID: uuid.New(), EventRefID: "evt-1"}
	require.NoError(t, q.PublishPlan(ctx, plan))

	msgs, err := q.SubscribePlans(ctx)
	require.NoError(t, err)

	select {
	case d := <-msgs:
		assert.Equal(t, plan.PlanID, d.Data.PlanID)
		d.Ack()
	case <-ctx.Done():
		t.Fatal("timeout 未收到訊息")
	}
}

func TestMemoryPlanQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	retryDelay := 50 * time.Millisecond
	q := queue.NewMemoryPlanQueue(4, &queue.MemoryPlanQueueConfig{RetryDelay: retryDelay})
	plan := &model.PlanSubmitted{PlanID: uuid.New(), EventRefID: "evt-1"}
	require.NoError(t, q.PublishPlan(ctx, plan))

	msgs, err := q.SubscribePlans(ctx)
	require.NoError(t, err)

	first := <-msgs
	nackedAt := time.Now()
	first.Nack(true)

	select {
	case d := <-msgs:
		assert.Equal(t, plan.PlanID, d.Data.PlanID)
		assert.GreaterOrEqual(t, time.Since(nackedAt), retryDelay)
	case <-ctx.Done():
		t.Fatal("nack(requeue) 後未再次投遞")
	}
}

func TestMemoryPlanQueue_DiscardAfterMaxRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryPlanQueue(4, &queue.MemoryPlanQueueConfig{
		RetryDelay:    10 * time.Millisecond,
		MaxRetryCount: 2,
	})
	plan := &model.PlanSubmitted{PlanID: uuid.New(), EventRefID: "evt-1"}
	require.NoError(t, q.PublishPlan(ctx, plan))

	msgs, err := q.SubscribePlans(ctx)
	require.NoError(t, err)

	// 首次投遞 + 2 次重試
	for i := 0; i < 3; i++ {
		select {
		case d := <-msgs:
			assert.Equal(t, plan.PlanID, d.Data.PlanID)
			d.Nack(true)
		case <-ctx.Done():
			t.Fatalf("第 %d 次投遞未收到", i+1)
		}
	}

	select {
	case d := <-msgs:
		t.Fatalf("超過重試次數仍被投遞: %s", d.Data.PlanID)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestMemoryPlanQueue_NackWithoutRequeueDrops(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryPlanQueue(4, &queue.MemoryPlanQueueConfig{RetryDelay: 10 * time.Millisecond})
	require.NoError(t, q.PublishPlan(ctx, &model.PlanSubmitted{PlanID: uuid.New()}))

	msgs, err := q.SubscribePlans(ctx)
	require.NoError(t, err)
	(<-msgs).Nack(false)

	select {
	case <-msgs:
		t.Fatal("nack(false) 不應重新投遞")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryPlanQueue_PublishRespectsContext(t *testing.T) {
	q := queue.NewMemoryPlanQueue(1, nil)
	require.NoError(t, q.PublishPlan(context.Background(), &model.PlanSubmitted{PlanID: uuid.New()}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := q.PublishPlan(ctx, &model.PlanSubmitted{PlanID: uuid.New()})
	assert.ErrorIs(t, err, context.Canceled)
}
