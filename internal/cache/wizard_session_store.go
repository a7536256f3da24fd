package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type WizardSessionStore interface {
	// 儲存：寫入並刷新 TTL
	Save(ctx context.Context, id uuid.UUID, state *wizard.State) error
	// 讀取：不存在或已過期時回傳 ErrWizardNotFound
	Load(ctx context.Context, id uuid.UUID) (*wizard.State, error)
	// 刪除：放棄或送出成功後清除
	Delete(ctx context.Context, id uuid.UUID) error
}

type RedisWizardSessionStoreImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWizardSessionStore(client *redis.Client, ttl time.Duration) WizardSessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisWizardSessionStoreImpl{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisWizardSessionStoreImpl) getKey(id uuid.UUID) string {
	return fmt.Sprintf("wizard:%s", id)
}

func (s *RedisWizardSessionStoreImpl) Save(ctx context.Context, id uuid.UUID, state *wizard.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal wizard state: %w", err)
	}
	return s.client.Set(ctx, s.getKey(id), raw, s.ttl).Err()
}

func (s *RedisWizardSessionStoreImpl) Load(ctx context.Context, id uuid.UUID) (*wizard.State, error) {
	raw, err := s.client.Get(ctx, s.getKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrWizardNotFound
	}
	if err != nil {
		return nil, err
	}

	var state wizard.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal wizard state: %w", err)
	}
	return &state, nil
}

func (s *RedisWizardSessionStoreImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.getKey(id)).Err()
}
