package district

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"samiti/internal/registry/models"
	"samiti/pkg/platform/sentinel"
)

// InMemoryStore keeps district committees in process memory. Parent existence
// is the service's job here; the SQL store also enforces it with a foreign key.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.DistrictCommittee
	byCode map[string]int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:   make(map[int64]*models.DistrictCommittee),
		byCode: make(map[string]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, district *models.DistrictCommittee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[district.DistrictCode]; taken {
		return fmt.Errorf("district code %s: %w", district.DistrictCode, sentinel.ErrAlreadyUsed)
	}
	s.nextID++
	district.ID = s.nextID
	stored := *district
	s.byID[stored.ID] = &stored
	s.byCode[stored.DistrictCode] = stored.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.DistrictCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	district, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *district
	return &out, nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, code string) (*models.DistrictCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

// List returns districts ordered by id. A zero stateID returns every district.
func (s *InMemoryStore) List(_ context.Context, stateID int64) ([]*models.DistrictCommittee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DistrictCommittee, 0)
	for _, district := range s.byID {
		if stateID != 0 && district.StateID != stateID {
			continue
		}
		cp := *district
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
