package handler

import (
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

// AccountResponse is a user account as returned to clients. The stored
// password hash never leaves the server.
type AccountResponse struct {
	ID        domain.UserID `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Supporter bool          `json:"supporter"`
}

// FromAccount converts a stored account to its HTTP response.
func FromAccount(a models.UserAccount) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Supporter: a.Supporter,
	}
}

// LoginResponse is the HTTP response for POST /auth/login.
type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}

// StaffLoginResponse is the HTTP response for POST /auth/staff/login.
type StaffLoginResponse struct {
	Token string `json:"token"`
}
