package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memorySessionStore 以 JSON 複本保存，行為與 Redis 版一致(讀出的是新物件)
type memorySessionStore struct {
	mu   sync.Mutex
	data map[uuid.UUID][]byte
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{data: make(map[uuid.UUID][]byte)}
}

func (s *memorySessionStore) Save(ctx context.Context, id uuid.UUID, state *wizard.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = b
	return nil
}

func (s *memorySessionStore) Load(ctx context.Context, id uuid.UUID) (*wizard.State, error) {
	s.mu.Lock()
	b, ok := s.data[id]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrWizardNotFound
	}
	var state wizard.State
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func (s *memorySessionStore) has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	return ok
}

// 今天固定為 2025-03-02
func testWizardConfig() wizard.Config {
	return wizard.Config{
		IDs:      wizard.NewCounterGenerator("cat-"),
		Now:      func() time.Time { return time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func datePtr(s string) *wizard.Date {
	d := wizard.MustParseDate(s)
	return &d
}

func testRange() wizard.DateRange {
	return wizard.DateRange{StartDate: datePtr("2025-03-01"), EndDate: datePtr("2025-03-10")}
}

// fakeTx 只實作交易的 Commit/Rollback
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	return d.tx, nil
}
