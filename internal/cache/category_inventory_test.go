package cache_test

import (
	"context"
	"testing"

	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanupPlanKeys(t *testing.T, planID uuid.UUID) {
	t.Helper()
	rdb := getTestRdb(t)
	ctx := context.Background()
	indexKey := "plan:" + planID.String() + ":categories"
	keys, _ := rdb.SMembers(ctx, indexKey).Result()
	_ = rdb.Del(ctx, append(keys, indexKey)...).Err()
}

func TestCategoryInventory_WarmUpAndGetInfo(t *testing.T) {
	rdb := getTestRdb(t)
	ctx := context.Background()
	m := cache.NewRedisCategoryInventoryManager(rdb)
	planID := uuid.New()
	t.Cleanup(func() { cleanupPlanKeys(t, planID) })

	slot := &model.PlanSlot{EventDate: wizard.MustParseDate("2025-03-04"), Position: 1}
	category := &model.SlotCategory{CategoryID: "cat-1", Price: 25, TotalTickets: 10, Booked: 3, Held: 2}
	require.NoError(t, m.WarmUp(ctx, planID, slot, category))

	info, err := m.GetInfo(ctx, cache.CategoryKey(planID, slot, "cat-1"))
	require.NoError(t, err)
	assert.Equal(t, cache.CategoryStock{Stock: 5, Price: 25, Booked: 3, Held: 2}, info)

	// 重複預熱為覆寫
	category.Booked = 0
	category.Held = 0
	require.NoError(t, m.WarmUp(ctx, planID, slot, category))
	info, err = m.GetInfo(ctx, cache.CategoryKey(planID, slot, "cat-1"))
	require.NoError(t, err)
	assert.Equal(t, 10, info.Stock)

	_, err = m.GetInfo(ctx, cache.CategoryKey(planID, slot, "missing"))
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestCategoryInventory_ListByPlan(t *testing.T) {
	rdb := getTestRdb(t)
	ctx := context.Background()
	m := cache.NewRedisCategoryInventoryManager(rdb)
	planID := uuid.New()
	t.Cleanup(func() { cleanupPlanKeys(t, planID) })

	d := wizard.MustParseDate("2025-03-04")
	first := &model.PlanSlot{EventDate: d, Position: 0}
	second := &model.PlanSlot{EventDate: d, Position: 1}
	require.NoError(t, m.WarmUp(ctx, planID, second, &model.SlotCategory{CategoryID: "cat-2", Price: 10, TotalTickets: 4}))
	require.NoError(t, m.WarmUp(ctx, planID, first, &model.SlotCategory{CategoryID: "cat-1", Price: 20, TotalTickets: 6}))

	items, err := m.ListByPlan(ctx, planID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-03-04", items[0].Date)
	assert.Equal(t, 0, items[0].SlotPosition)
	assert.Equal(t, "cat-1", items[0].CategoryID)
	assert.Equal(t, 6, items[0].Stock)
	assert.Equal(t, 1, items[1].SlotPosition)
	assert.Equal(t, "cat-2", items[1].CategoryID)

	empty, err := m.ListByPlan(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
