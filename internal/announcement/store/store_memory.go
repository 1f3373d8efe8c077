package store

import (
	"context"
	"sort"
	"sync"

	"samiti/internal/announcement/models"
	"samiti/pkg/platform/sentinel"
)

// InMemoryStore keeps announcements in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.Announcement
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byID: make(map[int64]*models.Announcement)}
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	stored := *a
	s.byID[stored.ID] = &stored
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *a
	return &out, nil
}

// List returns announcements newest first.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Announcement, 0, len(s.byID))
	for _, a := range s.byID {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
