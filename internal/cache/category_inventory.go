package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"event-slot-wizard/internal/model"
	apperrors "event-slot-wizard/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CategoryStock 單一票種的庫存資訊
type CategoryStock struct {
	Stock  int
	Price  float64
	Booked int
	Held   int
}

type CategoryInventoryManager interface {
	// 預熱：送出後載入票種庫存到 Redis
	WarmUp(ctx context.Context, planID uuid.UUID, slot *model.PlanSlot, category *model.SlotCategory) error
	// 獲取：單一票種的庫存
	GetInfo(ctx context.Context, key string) (CategoryStock, error)
	// 列出：某規劃下所有票種的庫存
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error)
}

type RedisCategoryInventoryManagerImpl struct {
	client *redis.Client
}

func NewRedisCategoryInventoryManager(client *redis.Client) CategoryInventoryManager {
	return &RedisCategoryInventoryManagerImpl{
		client: client,
	}
}

// CategoryKey 庫存 key：plan:{planID}:{date}:{slot}:category:{id}
func CategoryKey(planID uuid.UUID, slot *model.PlanSlot, categoryID string) string {
	return fmt.Sprintf("plan:%s:%s:%d:category:%s", planID, slot.EventDate, slot.Position, categoryID)
}

// 規劃下所有庫存 key 的索引
func (m *RedisCategoryInventoryManagerImpl) getIndexKey(planID uuid.UUID) string {
	return fmt.Sprintf("plan:%s:categories", planID)
}

func (m *RedisCategoryInventoryManagerImpl) WarmUp(ctx context.Context, planID uuid.UUID, slot *model.PlanSlot, category *model.SlotCategory) error {
	key := CategoryKey(planID, slot, category.CategoryID)
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"stock":  category.TotalTickets - category.Booked - category.Held,
			"price":  category.Price,
			"booked": category.Booked,
			"held":   category.Held,
		})
		pipe.SAdd(ctx, m.getIndexKey(planID), key)
		return nil
	})
	return err
}

func (m *RedisCategoryInventoryManagerImpl) GetInfo(ctx context.Context, key string) (CategoryStock, error) {
	result, err := m.client.HGetAll(ctx, key).Result()
	if err != nil {
		return CategoryStock{}, err
	}

	// 檢查 key 是否存在
	if len(result) == 0 {
		return CategoryStock{}, apperrors.ErrPlanNotFound
	}

	stock, err := strconv.Atoi(result["stock"])
	if err != nil {
		return CategoryStock{}, fmt.Errorf("invalid stock: %v", err)
	}

	price, err := strconv.ParseFloat(result["price"], 64)
	if err != nil {
		return CategoryStock{}, fmt.Errorf("invalid price: %v", err)
	}

	booked, err := strconv.Atoi(result["booked"])
	if err != nil {
		return CategoryStock{}, fmt.Errorf("invalid booked: %v", err)
	}

	held, err := strconv.Atoi(result["held"])
	if err != nil {
		return CategoryStock{}, fmt.Errorf("invalid held: %v", err)
	}

	return CategoryStock{
		Stock:  stock,
		Price:  price,
		Booked: booked,
		Held:   held,
	}, nil
}

func (m *RedisCategoryInventoryManagerImpl) ListByPlan(ctx context.Context, planID uuid.UUID) ([]*model.CategoryInventory, error) {
	keys, err := m.client.SMembers(ctx, m.getIndexKey(planID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	items := make([]*model.CategoryInventory, 0, len(keys))
	for _, key := range keys {
		info, err := m.GetInfo(ctx, key)
		if err != nil {
			return nil, err
		}
		item := &model.CategoryInventory{
			Key:    key,
			Stock:  info.Stock,
			Price:  info.Price,
			Booked: info.Booked,
			Held:   info.Held,
		}
		parseCategoryKey(key, item)
		items = append(items, item)
	}
	return items, nil
}

// parseCategoryKey 從 key 還原日期、時段與票種 id
func parseCategoryKey(key string, item *model.CategoryInventory) {
	parts := strings.SplitN(key, ":", 6)
	if len(parts) != 6 {
		return
	}
	item.Date = parts[2]
	item.SlotPosition, _ = strconv.Atoi(parts[3])
	item.CategoryID = parts[5]
}
