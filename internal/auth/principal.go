package auth

import (
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
)

// Principal is the currently authenticated actor. It is a closed tagged
// union: anonymous, one registered user, or the single staff identity. The
// type makes "user and staff logged in at once" unrepresentable rather than
// merely forbidden.
type Principal interface {
	isPrincipal()
}

// Anonymous is an unauthenticated visitor.
type Anonymous struct{}

// UserPrincipal is an authenticated registered user.
type UserPrincipal struct {
	Account models.UserAccount
}

// StaffPrincipal is the single configured staff identity. It is not a
// persisted entity and has no ID.
type StaffPrincipal struct {
	Username string
}

func (Anonymous) isPrincipal()      {}
func (UserPrincipal) isPrincipal()  {}
func (StaffPrincipal) isPrincipal() {}

// IsStaff reports whether p is the staff identity.
func IsStaff(p Principal) bool {
	_, ok := p.(StaffPrincipal)
	return ok
}

// UserOf extracts the account behind p, if p is a registered user.
func UserOf(p Principal) (models.UserAccount, bool) {
	up, ok := p.(UserPrincipal)
	if !ok {
		return models.UserAccount{}, false
	}
	return up.Account, true
}
