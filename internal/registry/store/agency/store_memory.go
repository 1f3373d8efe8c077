package agency

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"samiti/internal/registry/models"
	"samiti/pkg/platform/sentinel"
)

// InMemoryStore keeps agency members in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.AgencyMember
	byCode map[string]int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:   make(map[int64]*models.AgencyMember),
		byCode: make(map[string]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, agency *models.AgencyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[agency.AgencyCode]; taken {
		return fmt.Errorf("agency code %s: %w", agency.AgencyCode, sentinel.ErrAlreadyUsed)
	}
	s.nextID++
	agency.ID = s.nextID
	stored := *agency
	s.byID[stored.ID] = &stored
	s.byCode[stored.AgencyCode] = stored.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.AgencyMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agency, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *agency
	return &out, nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, code string) (*models.AgencyMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

// List returns agencies newest first. A zero districtID returns every agency.
func (s *InMemoryStore) List(_ context.Context, districtID int64) ([]*models.AgencyMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.AgencyMember, 0)
	for _, agency := range s.byID {
		if districtID != 0 && agency.DistrictID != districtID {
			continue
		}
		cp := *agency
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
