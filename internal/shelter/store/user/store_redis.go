package user

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

const collectionKey = "users"

// Redis persists all accounts as one JSON array under collectionKey, with
// the same whole-document read-modify-write contract as the request store.
type Redis struct {
	mu     sync.Mutex
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) load(ctx context.Context) ([]models.UserAccount, error) {
	raw, err := s.client.Get(ctx, collectionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	var users []models.UserAccount
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode %s collection: %w", collectionKey, err)
	}
	return users, nil
}

func (s *Redis) persist(ctx context.Context, users []models.UserAccount) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", collectionKey, err)
	}
	if err := s.client.Set(ctx, collectionKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Redis) LoadAll(ctx context.Context) ([]models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]models.UserAccount{}, users...), nil
}

func (s *Redis) Append(ctx context.Context, u models.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			return sentinel.ErrConflict
		}
		if users[i].Email == u.Email {
			return sentinel.ErrAlreadyUsed
		}
	}
	return s.persist(ctx, append(users, u))
}

func (s *Redis) FindByID(ctx context.Context, id domain.UserID) (models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return models.UserAccount{}, err
	}
	for i := range users {
		if users[i].ID == id {
			return users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}

func (s *Redis) FindByEmail(ctx context.Context, email string) (models.UserAccount, error) {
	users, err := s.load(ctx)
	if err != nil {
		return models.UserAccount{}, err
	}
	for i := range users {
		if users[i].Email == email {
			return users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}

func (s *Redis) SetSupporter(ctx context.Context, id domain.UserID, supporter bool) (models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load(ctx)
	if err != nil {
		return models.UserAccount{}, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Supporter = supporter
			if err := s.persist(ctx, users); err != nil {
				return models.UserAccount{}, err
			}
			return users[i], nil
		}
	}
	return models.UserAccount{}, sentinel.ErrNotFound
}
