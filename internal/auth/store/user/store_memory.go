package user

import (
	"context"
	"fmt"
	"sync"

	"samiti/internal/auth/models"
	"samiti/pkg/platform/sentinel"
)

// InMemoryUserStore keeps user accounts in process memory, indexed by login id
// and mobile number.
type InMemoryUserStore struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]*models.UserAccount
	byLogin  map[string]int64
	byMobile map[string]int64
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:     make(map[int64]*models.UserAccount),
		byLogin:  make(map[string]int64),
		byMobile: make(map[string]int64),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byLogin[user.LoginID]; taken {
		return fmt.Errorf("login id: %w", sentinel.ErrAlreadyUsed)
	}
	if _, taken := s.byMobile[user.MobileNumber]; taken {
		return fmt.Errorf("mobile number: %w", sentinel.ErrAlreadyUsed)
	}
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.byID[stored.ID] = &stored
	s.byLogin[stored.LoginID] = stored.ID
	s.byMobile[stored.MobileNumber] = stored.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id int64) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id, id != 0)
}

func (s *InMemoryUserStore) FindByLoginID(_ context.Context, loginID string) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byLogin[loginID]
	return s.lookup(id, ok)
}

func (s *InMemoryUserStore) FindByMobileNumber(_ context.Context, mobile string) (*models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byMobile[mobile]
	return s.lookup(id, ok)
}

func (s *InMemoryUserStore) lookup(id int64, ok bool) (*models.UserAccount, error) {
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	user, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *user
	return &out, nil
}
