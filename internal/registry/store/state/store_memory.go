package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"samiti/internal/registry/models"
	"samiti/pkg/platform/sentinel"
)

// InMemoryStore keeps state committees in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.StateCommittee
	byCode map[string]int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:   make(map[int64]*models.StateCommittee),
		byCode: make(map[string]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, state *models.StateCommittee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[state.StateCode]; taken {
		return fmt.Errorf("state code %s: %w", state.StateCode, sentinel.ErrAlreadyUsed)
	}
	s.nextID++
	state.ID = s.nextID
	stored := *state
	s.byID[stored.ID] = &stored
	s.byCode[stored.StateCode] = stored.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.StateCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *state
	return &out, nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, code string) (*models.StateCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.StateCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.StateCommittee, 0, len(s.byID))
	for _, state := range s.byID {
		cp := *state
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
