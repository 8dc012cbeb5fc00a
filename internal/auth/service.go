// Package auth owns session state and account lifecycle: registration,
// login for both roles, logout, and the supporter flag.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/PeteLJ/PetHeaven/internal/platform/metrics"
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	userstore "github.com/PeteLJ/PetHeaven/internal/shelter/store/user"
	"github.com/PeteLJ/PetHeaven/internal/validation"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
	"github.com/PeteLJ/PetHeaven/pkg/platform/sentinel"
)

// StaffCredentials is the single staff identity. Exactly one exists; there is
// no staff registration. The pair comes from configuration, not from the user
// collection.
type StaffCredentials struct {
	Username string
	Password string
}

// Manager holds at most one authenticated principal and mediates every
// account mutation. It is an injected instance, not process-global state, so
// tests can run isolated sessions.
type Manager struct {
	mu        sync.Mutex
	principal Principal

	users   userstore.Store
	staff   StaffCredentials
	ids     *domain.Generator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewManager(users userstore.Store, staff StaffCredentials, logger *slog.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		principal: Anonymous{},
		users:     users,
		staff:     staff,
		ids:       domain.NewGenerator(),
		logger:    logger,
		metrics:   m,
	}
}

// Current returns the live principal.
func (m *Manager) Current() Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.principal
}

// Register creates a new account. The email must not be taken (case-sensitive
// exact match). Registration does not log the new account in.
func (m *Manager) Register(ctx context.Context, name, email, password string, supporter bool) (models.UserAccount, error) {
	var errs validation.Errors
	if name == "" {
		errs = append(errs, validation.FieldError{Field: "name", Reason: "Full name is required"})
	}
	if email == "" {
		errs = append(errs, validation.FieldError{Field: "email", Reason: "Email is required"})
	} else if !validation.Email(email) {
		errs = append(errs, validation.FieldError{Field: "email", Reason: "Please enter a valid email"})
	}
	if password == "" {
		errs = append(errs, validation.FieldError{Field: "password", Reason: "Password is required"})
	}
	if err := errs.OrNil(); err != nil {
		return models.UserAccount{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserAccount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	account := models.UserAccount{
		ID:        m.ids.NextUserID(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Supporter: supporter,
	}
	if err := m.users.Append(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return models.UserAccount{}, dErrors.New(dErrors.CodeConflict, "Email already registered")
		}
		return models.UserAccount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	if m.metrics != nil {
		m.metrics.IncRegistrations()
	}
	m.logger.InfoContext(ctx, "user registered", "user_id", account.ID, "supporter", supporter)
	return account, nil
}

// Login authenticates a registered user and makes them the live principal,
// clearing any staff session.
func (m *Manager) Login(ctx context.Context, email, password string) (models.UserAccount, error) {
	account, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.UserAccount{}, dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")
		}
		return models.UserAccount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return models.UserAccount{}, dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")
	}

	m.mu.Lock()
	m.principal = UserPrincipal{Account: account}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "user logged in", "user_id", account.ID)
	return account, nil
}

// LoginStaff authenticates against the single configured credential pair and
// makes staff the live principal, clearing any user session.
func (m *Manager) LoginStaff(ctx context.Context, username, password string) error {
	if username != m.staff.Username || password != m.staff.Password {
		return dErrors.New(dErrors.CodeUnauthorized, "Invalid staff username or password")
	}

	m.mu.Lock()
	m.principal = StaffPrincipal{Username: username}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "staff logged in", "username", username)
	return nil
}

// Logout clears only the matching slot: asStaff clears a staff session, the
// default clears a user session. Logging out a slot that is not occupied is
// a no-op.
func (m *Manager) Logout(asStaff bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.principal.(type) {
	case StaffPrincipal:
		if asStaff {
			m.principal = Anonymous{}
		}
	case UserPrincipal:
		if !asStaff {
			m.principal = Anonymous{}
		}
	}
}

// UpdateSupporterStatus flips the supporter flag, persists it, and reflects
// the change into the live principal when it is the same user. Self-service:
// no staff involvement.
func (m *Manager) UpdateSupporterStatus(ctx context.Context, id domain.UserID, supporter bool) (models.UserAccount, error) {
	account, err := m.users.SetSupporter(ctx, id, supporter)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.UserAccount{}, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return models.UserAccount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update supporter status")
	}

	m.mu.Lock()
	if up, ok := m.principal.(UserPrincipal); ok && up.Account.ID == id {
		up.Account.Supporter = supporter
		m.principal = up
	}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "supporter status updated", "user_id", id, "supporter", supporter)
	return account, nil
}

// GetAccount loads an account by ID for transports that carry only the ID.
func (m *Manager) GetAccount(ctx context.Context, id domain.UserID) (models.UserAccount, error) {
	account, err := m.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.UserAccount{}, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return models.UserAccount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return account, nil
}
