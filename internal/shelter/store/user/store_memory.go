package user

import (
	"context"
	"sync"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	"github.com/PeteLJ/PetHeaven/pkg/platform/sentinel"
)

// InMemory keeps accounts as an ordered slice guarded by a mutex.
type InMemory struct {
	mu    sync.RWMutex
	users []models.UserAccount
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) LoadAll(_ context.Context) ([]models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.UserAccount{}, s.users...), nil
}

func (s *InMemory) Append(_ context.Context, u models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			return sentinel.ErrConflict
		}
		if s.users[i].Email == u.Email {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.UserID) (models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (models.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			return s.users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}

func (s *InMemory) SetSupporter(_ context.Context, id domain.UserID, supporter bool) (models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Supporter = supporter
			return s.users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}
