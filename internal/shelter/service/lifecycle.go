// Package service implements the request lifecycle: role-gated submission,
// staff decisions, owner resolution, and the visibility projections.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	"github.com/PeteLJ/PetHeaven/internal/platform/metrics"
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	requeststore "github.com/PeteLJ/PetHeaven/internal/shelter/store/request"
	"github.com/PeteLJ/PetHeaven/internal/validation"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
	"github.com/PeteLJ/PetHeaven/pkg/platform/sentinel"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// Submission carries the validated-on-entry form fields for either variant.
type Submission struct {
	Kind    models.Kind `json:"type"`
	PetName string      `json:"petName"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	NRIC    string `json:"nric"`

	// Adoption only.
	Experience string `json:"experience,omitempty"`

	// Surrender only.
	PetType      string `json:"petType,omitempty"`
	PetBreed     string `json:"petBreed,omitempty"`
	PetAge       string `json:"petAge,omitempty"`
	Reason       string `json:"reason,omitempty"`
	HealthIssues string `json:"healthIssues,omitempty"`
}

// CardDetails is the simulated payment instrument.
type CardDetails struct {
	Number       string `json:"cardNumber"`
	Expiry       string `json:"expiry"`
	SecurityCode string `json:"securityCode"`
}

// Queues is the staff projection: the full collection partitioned by kind,
// insertion order within each partition.
type Queues struct {
	Adoptions  []models.Request `json:"adoptions"`
	Surrenders []models.Request `json:"surrenders"`
}

// Service orchestrates the request state machine over the store.
type Service struct {
	requests     requeststore.Store
	ids          *domain.Generator
	logger       *slog.Logger
	metrics      *metrics.Metrics
	paymentDelay time.Duration

	// inflight guards each request against a second payment submission
	// racing the simulated processing delay of the first.
	mu       sync.Mutex
	inflight map[domain.RequestID]struct{}
}

func New(requests requeststore.Store, logger *slog.Logger, m *metrics.Metrics, paymentDelay time.Duration) *Service {
	return &Service{
		requests:     requests,
		ids:          domain.NewGenerator(),
		logger:       logger,
		metrics:      m,
		paymentDelay: paymentDelay,
		inflight:     make(map[domain.RequestID]struct{}),
	}
}

var errNotLoggedIn = dErrors.New(dErrors.CodeUnauthorized, "You must be logged in")

// validate applies the per-field rules for the given variant. Surrender and
// adoption forms differ: adoptions require a home address, surrenders require
// a reason and treat the address as optional.
func validate(sub Submission) error {
	var errs validation.Errors
	fail := func(field, reason string) {
		errs = append(errs, validation.FieldError{Field: field, Reason: reason})
	}

	switch sub.Kind {
	case models.KindAdoption:
		if sub.Name == "" {
			fail("fullName", "Full name is required")
		}
		if sub.Address == "" {
			fail("address", "Home address is required")
		}
	case models.KindSurrender:
		if sub.Name == "" {
			fail("ownerName", "Your name is required")
		}
		if sub.Reason == "" {
			fail("reason", "Please explain your reason for surrender")
		}
		if sub.PetType != "" && sub.PetType != "cat" && sub.PetType != "dog" {
			fail("petType", "Pet type must be cat or dog")
		}
	default:
		fail("type", "Request type must be adoption or surrender")
	}

	if sub.Email == "" {
		fail("email", "Email is required")
	} else if !validation.Email(sub.Email) {
		fail("email", "Please enter a valid email")
	}
	if sub.Phone == "" {
		fail("phone", "Phone number is required")
	}
	if sub.NRIC == "" {
		fail("nric", "NRIC is required")
	} else if !validation.NRIC(sub.NRIC) {
		fail("nric", "Invalid NRIC format (e.g., S1234567A)")
	}
	if sub.PetName == "" {
		fail("petName", "Pet name is required")
	}

	return errs.OrNil()
}

// Submit creates a Pending record for an authenticated user. Nothing is
// appended unless every field passes validation.
func (s *Service) Submit(ctx context.Context, p auth.Principal, sub Submission) (models.Request, error) {
	account, ok := auth.UserOf(p)
	if !ok {
		return models.Request{}, errNotLoggedIn
	}
	if err := validate(sub); err != nil {
		return models.Request{}, err
	}

	r := models.Request{
		ID:          s.ids.NextRequestID(),
		Kind:        sub.Kind,
		PetName:     sub.PetName,
		Status:      models.StatusPending,
		SubmittedAt: requestcontext.Now(ctx),
	}
	switch sub.Kind {
	case models.KindAdoption:
		r.RequesterName = sub.Name
		r.RequesterEmail = sub.Email
		r.RequesterPhone = sub.Phone
		r.RequesterAddress = sub.Address
		r.RequesterNRIC = sub.NRIC
		r.RequesterExperience = sub.Experience
		r.PaymentStatus = models.PaymentNotStarted
	case models.KindSurrender:
		r.OwnerName = sub.Name
		r.OwnerEmail = sub.Email
		r.OwnerPhone = sub.Phone
		r.OwnerAddress = sub.Address
		r.OwnerNRIC = sub.NRIC
		r.PetType = sub.PetType
		if r.PetType == "" {
			r.PetType = "cat"
		}
		r.PetBreed = sub.PetBreed
		r.PetAge = sub.PetAge
		r.Reason = sub.Reason
		r.HealthIssues = sub.HealthIssues
	}

	if err := s.requests.Append(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Request{}, dErrors.New(dErrors.CodeConflict, "request ID already exists")
		}
		return models.Request{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist request")
	}

	if s.metrics != nil {
		s.metrics.IncSubmitted(string(sub.Kind))
	}
	s.logger.InfoContext(ctx, "request submitted",
		"request_id", r.ID,
		"kind", r.Kind,
		"pet", r.PetName,
		"user_id", account.ID,
	)
	return r, nil
}

func (s *Service) find(ctx context.Context, id domain.RequestID) (models.Request, error) {
	all, err := s.requests.LoadAll(ctx)
	if err != nil {
		return models.Request{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requests")
	}
	for i := range all {
		if all[i].ID == id {
			return all[i], nil
		}
	}
	return models.Request{}, dErrors.New(dErrors.CodeNotFound, "request not found")
}

// findOwned resolves a record the principal owns. Ownership is the legacy
// name-or-email string match, checked against the live principal.
func (s *Service) findOwned(ctx context.Context, p auth.Principal, id domain.RequestID) (models.Request, error) {
	account, ok := auth.UserOf(p)
	if !ok {
		return models.Request{}, errNotLoggedIn
	}
	r, err := s.find(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	if !r.OwnedBy(account.Name, account.Email) {
		return models.Request{}, dErrors.New(dErrors.CodeForbidden, "request belongs to another user")
	}
	return r, nil
}

// ListForUser projects the requests visible to a user principal: every
// record whose requester/owner name OR email matches. A name collision with
// no email match is still visible; that is the documented legacy behavior.
func (s *Service) ListForUser(ctx context.Context, p auth.Principal) ([]models.Request, error) {
	account, ok := auth.UserOf(p)
	if !ok {
		return nil, errNotLoggedIn
	}
	all, err := s.requests.LoadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requests")
	}
	visible := make([]models.Request, 0)
	for i := range all {
		if all[i].OwnedBy(account.Name, account.Email) {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// StaffQueues projects the full collection for the staff dashboard,
// partitioned by kind.
func (s *Service) StaffQueues(ctx context.Context, p auth.Principal) (Queues, error) {
	if !auth.IsStaff(p) {
		return Queues{}, dErrors.New(dErrors.CodeForbidden, "staff role required")
	}
	all, err := s.requests.LoadAll(ctx)
	if err != nil {
		return Queues{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requests")
	}
	q := Queues{Adoptions: []models.Request{}, Surrenders: []models.Request{}}
	for i := range all {
		switch all[i].Kind {
		case models.KindAdoption:
			q.Adoptions = append(q.Adoptions, all[i])
		case models.KindSurrender:
			q.Surrenders = append(q.Surrenders, all[i])
		}
	}
	return q, nil
}

// GetForStaff returns one full record for the staff detail view.
func (s *Service) GetForStaff(ctx context.Context, p auth.Principal, id domain.RequestID) (models.Request, error) {
	if !auth.IsStaff(p) {
		return models.Request{}, dErrors.New(dErrors.CodeForbidden, "staff role required")
	}
	return s.find(ctx, id)
}

// asTransitionErr surfaces a model invariant violation as the conflict the
// caller attempted, keeping the field-level 400s distinct from bad
// sequencing.
func asTransitionErr(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "invalid transition")
	}
	return err
}

// Decide applies a staff verdict to a pending request. Any non-staff actor
// fails before the record is touched.
func (s *Service) Decide(ctx context.Context, p auth.Principal, id domain.RequestID, decision models.Decision) (models.Request, error) {
	if !auth.IsStaff(p) {
		return models.Request{}, dErrors.New(dErrors.CodeForbidden, "only staff may decide requests")
	}
	r, err := s.find(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	if err := r.CanDecide(); err != nil {
		return models.Request{}, asTransitionErr(err)
	}
	r.ApplyDecision(decision)

	updated, err := s.requests.UpdateByID(ctx, id, models.RequestPatch{Status: &r.Status})
	if err != nil {
		return models.Request{}, s.translateUpdateErr(err)
	}

	if s.metrics != nil {
		s.metrics.IncDecision(string(decision))
	}
	s.logger.InfoContext(ctx, "request decided",
		"request_id", id,
		"decision", decision,
	)
	return updated, nil
}

// ResolvePayment completes an approved adoption with a simulated card
// payment. The card fields must individually pass validation before any
// state changes; the simulated processing delay is guarded per request ID so
// a double submission cannot double-apply the side effect.
func (s *Service) ResolvePayment(ctx context.Context, p auth.Principal, id domain.RequestID, card CardDetails) (models.Request, error) {
	r, err := s.findOwned(ctx, p, id)
	if err != nil {
		return models.Request{}, err
	}

	var errs validation.Errors
	if !validation.CardNumber(card.Number) {
		errs = append(errs, validation.FieldError{Field: "cardNumber", Reason: "Invalid card number (16 digits)"})
	}
	if !validation.ExpiryAt(card.Expiry, requestcontext.Now(ctx)) {
		errs = append(errs, validation.FieldError{Field: "expiry", Reason: "Invalid expiry date (MM/YY, not past)"})
	}
	if !validation.SecurityCode(card.SecurityCode) {
		errs = append(errs, validation.FieldError{Field: "securityCode", Reason: "Invalid security code (3 digits)"})
	}
	if err := errs.OrNil(); err != nil {
		return models.Request{}, err
	}

	if err := r.CanResolvePayment(); err != nil {
		return models.Request{}, asTransitionErr(err)
	}

	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return models.Request{}, dErrors.New(dErrors.CodeConflict, "payment already in progress")
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	if s.paymentDelay > 0 {
		select {
		case <-ctx.Done():
			return models.Request{}, dErrors.Wrap(ctx.Err(), dErrors.CodeInternal, "payment interrupted")
		case <-time.After(s.paymentDelay):
		}
	}

	r.ApplyPaymentResolution()
	completed := models.PaymentCompleted
	updated, err := s.requests.UpdateByID(ctx, id, models.RequestPatch{
		Status:        &r.Status,
		PaymentStatus: &completed,
	})
	if err != nil {
		return models.Request{}, s.translateUpdateErr(err)
	}

	if s.metrics != nil {
		s.metrics.IncResolved(string(models.KindAdoption))
	}
	s.logger.InfoContext(ctx, "adoption payment completed", "request_id", id, "pet", updated.PetName)
	return updated, nil
}

// ConfirmCollection marks an approved surrender ready for pickup. Confirming
// twice is rejected, never silently re-applied.
func (s *Service) ConfirmCollection(ctx context.Context, p auth.Principal, id domain.RequestID) (models.Request, error) {
	r, err := s.findOwned(ctx, p, id)
	if err != nil {
		return models.Request{}, err
	}
	if err := r.CanConfirmCollection(); err != nil {
		return models.Request{}, asTransitionErr(err)
	}
	r.ApplyCollectionConfirmation()

	confirmed := true
	updated, err := s.requests.UpdateByID(ctx, id, models.RequestPatch{
		Status:              &r.Status,
		CollectionConfirmed: &confirmed,
	})
	if err != nil {
		return models.Request{}, s.translateUpdateErr(err)
	}

	if s.metrics != nil {
		s.metrics.IncResolved(string(models.KindSurrender))
	}
	s.logger.InfoContext(ctx, "surrender collection confirmed", "request_id", id, "pet", updated.PetName)
	return updated, nil
}

// Cancel physically deletes the owner's still-pending request.
func (s *Service) Cancel(ctx context.Context, p auth.Principal, id domain.RequestID) error {
	r, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := r.CanCancel(); err != nil {
		return asTransitionErr(err)
	}
	return s.delete(ctx, id, "request cancelled")
}

// Remove physically deletes the owner's terminal-state record. Staff never
// delete; only the owning principal clears records from their own view.
func (s *Service) Remove(ctx context.Context, p auth.Principal, id domain.RequestID) error {
	r, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := r.CanRemove(); err != nil {
		return asTransitionErr(err)
	}
	return s.delete(ctx, id, "request record removed")
}

// Delete routes an owner deletion to cancel or remove based on the record's
// current state.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id domain.RequestID) error {
	r, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if r.Status == models.StatusPending {
		return s.Cancel(ctx, p, id)
	}
	return s.Remove(ctx, p, id)
}

func (s *Service) delete(ctx context.Context, id domain.RequestID, msg string) error {
	if err := s.requests.DeleteByID(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete request")
	}
	s.logger.InfoContext(ctx, msg, "request_id", id)
	return nil
}

func (s *Service) translateUpdateErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "request not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist request")
}
