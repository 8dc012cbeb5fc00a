package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	"github.com/PeteLJ/PetHeaven/pkg/platform/sentinel"
)

// collectionKey is the single document holding every request record.
const collectionKey = "petRequests"

// Redis persists the collection as one JSON array under collectionKey,
// matching the layout the user collections shared before this service
// existed. Every mutation is GET, modify, SET.
//
// The mutex serializes writers within this process. Writers in other
// processes sharing the key can still interleave and overwrite each other
// (lost update); adopting a WATCH/MULTI transaction or a version counter
// would fix that but change the medium's observable contract, so it is
// deliberately left as documented behavior.
type Redis struct {
	mu     sync.Mutex
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) load(ctx context.Context) ([]models.Request, error) {
	raw, err := s.client.Get(ctx, collectionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	var requests []models.Request
	if err := json.Unmarshal([]byte(raw), &requests); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", collectionKey, err)
	}
	return requests, nil
}

func (s *Redis) persist(ctx context.Context, requests []models.Request) error {
	raw, err := json.Marshal(requests)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", collectionKey, err)
	}
	if err := s.client.Set(ctx, collectionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Redis) LoadAll(ctx context.Context) ([]models.Request, error) {
	requests, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]models.Request{}, requests...), nil
}

func (s *Redis) Append(ctx context.Context, r models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].ID == r.ID {
			return sentinel.ErrConflict
		}
	}
	return s.persist(ctx, append(requests, r))
}

func (s *Redis) UpdateByID(ctx context.Context, id domain.RequestID, patch models.RequestPatch) (models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests, err := s.load(ctx)
	if err != nil {
		return models.Request{}, err
	}
	for i := range requests {
		if requests[i].ID == id {
			patch.ApplyTo(&requests[i])
			if err := s.persist(ctx, requests); err != nil {
				return models.Request{}, err
			}
			return requests[i], nil
		}
	}
	return models.Request{}, sentinel.ErrNotFound
}

func (s *Redis) DeleteByID(ctx context.Context, id domain.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].ID == id {
			return s.persist(ctx, append(requests[:i], requests[i+1:]...))
		}
	}
	return nil
}
