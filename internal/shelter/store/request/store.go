// Package request persists the petRequests collection.
//
// The medium is a single shared document holding the whole collection: every
// write is a read-modify-write of all records. Implementations serialize
// writers in-process; two separate processes sharing the same medium can
// still lose updates to each other, which is a documented property of the
// store, not something the port hides.
package request

import (
	"context"

	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

// Store is the persistence port for request records.
//
// LoadAll never fails on an empty medium. Append returns
// sentinel.ErrConflict when the ID is already present. UpdateByID returns
// sentinel.ErrNotFound when no record has the ID, otherwise merges the patch
// and persists the full collection. DeleteByID is a no-op when absent.
type Store interface {
	LoadAll(ctx context.Context) ([]models.Request, error)
	Append(ctx context.Context, r models.Request) error
	UpdateByID(ctx context.Context, id domain.RequestID, patch models.RequestPatch) (models.Request, error)
	DeleteByID(ctx context.Context, id domain.RequestID) error
}
