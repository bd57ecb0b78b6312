package session

import (
	"context"
	"sync"
	"time"

	"github.com/oubata/HealThea/internal/domain"
)

// MemoryRepository is an in-process StateRepository and
// IdempotencyRepository. Used in tests and when running without Postgres;
// state then lasts only as long as the process.
type MemoryRepository struct {
	mu      sync.RWMutex
	states  map[string]*State
	records map[string]*CompletionRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		states:  make(map[string]*State),
		records: make(map[string]*CompletionRecord),
	}
}

func (m *MemoryRepository) Load(_ context.Context, key string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[key]
	if !ok {
		return &State{Key: key}, nil
	}
	cp := *st
	cp.Items = append([]domain.CartItem(nil), st.Items...)
	return &cp, nil
}

func (m *MemoryRepository) SaveCart(_ context.Context, key, cartID string, items []domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.ensure(key)
	st.CartID = cartID
	st.Items = append([]domain.CartItem(nil), items...)
	st.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryRepository) SaveToken(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.ensure(key)
	st.AuthToken = token
	st.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryRepository) ensure(key string) *State {
	st, ok := m.states[key]
	if !ok {
		st = &State{Key: key}
		m.states[key] = st
	}
	return st
}

func (m *MemoryRepository) GetByKey(_ context.Context, key string) (*CompletionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryRepository) Create(_ context.Context, record *CompletionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.records[record.Key] = &cp
	return nil
}
