package request

import (
	"context"
	"sync"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	"github.com/PeteLJ/PetHeaven/pkg/platform/sentinel"
)

// InMemory keeps the collection as an ordered slice, favoring clarity over
// performance. Insertion order is creation order, which is all the listing
// views rely on.
type InMemory struct {
	mu       sync.RWMutex
	requests []models.Request
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) LoadAll(_ context.Context) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Request{}, s.requests...), nil
}

func (s *InMemory) Append(_ context.Context, r models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == r.ID {
			return sentinel.ErrConflict
		}
	}
	s.requests = append(s.requests, r)
	return nil
}

func (s *InMemory) UpdateByID(_ context.Context, id domain.RequestID, patch models.RequestPatch) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			patch.ApplyTo(&s.requests[i])
			return s.requests[i], nil
		}
	}
	return models.Request{}, sentinel.ErrNotFound
}

func (s *InMemory) DeleteByID(_ context.Context, id domain.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return nil
		}
	}
	return nil
}
