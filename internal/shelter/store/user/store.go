// Package user persists the users collection, a single shared document like
// the request collection.
package user

import (
	"context"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

// Store is the persistence port for user accounts.
//
// Append returns sentinel.ErrConflict for a duplicate ID and
// sentinel.ErrAlreadyUsed for a duplicate email (case-sensitive exact match).
// Lookups return sentinel.ErrNotFound when absent. Accounts are never
// deleted; SetSupporter is the only mutation.
type Store interface {
	LoadAll(ctx context.Context) ([]models.UserAccount, error)
	Append(ctx context.Context, u models.UserAccount) error
	FindByID(ctx context.Context, id domain.UserID) (models.UserAccount, error)
	FindByEmail(ctx context.Context, email string) (models.UserAccount, error)
	SetSupporter(ctx context.Context, id domain.UserID, supporter bool) (models.UserAccount, error)
}
