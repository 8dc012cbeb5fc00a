package models

import (
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

// UserAccount is a registered visitor. Accounts are created at registration,
// mutated only to flip Supporter, and never deleted.
//
// Password holds a bcrypt hash, not the raw secret. The persisted field name
// is kept for compatibility with existing user collections.
type UserAccount struct {
	ID        domain.UserID `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Password  string        `json:"password"`
	Supporter bool          `json:"supporter"`
}
