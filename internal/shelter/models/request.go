package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
)

// Kind discriminates the two request variants sharing one envelope.
type Kind string

const (
	KindAdoption  Kind = "adoption"
	KindSurrender Kind = "surrender"
)

// Status enumerates the reachable request states.
//
// Transitions: Pending -> Approved | Rejected; Approved(adoption) -> Adopted;
// Approved(surrender) -> Surrendered. Rejected, Adopted and Surrendered are
// terminal for staff decisions; the owning user may still delete them.
//
// Earlier persisted data carried the adoption terminal state as the free-form
// string "<petName> Adopted". The state machine works on this enum; the
// display text is derived (DisplayStatus) and legacy values are folded back
// into the enum on decode (statusFromStored).
type Status string

const (
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusAdopted     Status = "Adopted"
	StatusSurrendered Status = "Surrendered"
)

// PaymentStatus tracks the simulated adoption payment.
type PaymentStatus string

const (
	PaymentNotStarted PaymentStatus = "Not Started"
	PaymentCompleted  PaymentStatus = "Completed"
)

// statusFromStored folds a persisted status value into the enum. Legacy
// records match the adoption terminal state by substring containment because
// the stored value embedded the pet name.
func statusFromStored(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusAdopted, StatusSurrendered:
		return Status(raw)
	}
	if strings.Contains(raw, string(StatusAdopted)) {
		return StatusAdopted
	}
	return Status(raw)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = statusFromStored(raw)
	return nil
}

// Request is the aggregate for one adoption or surrender request.
//
// Invariants:
//   - ID is unique across the whole collection regardless of Kind
//   - Status only takes values reachable from the state machine above
//   - SubmittedAt is set once at creation and never rewritten
//   - CollectionConfirmed transitions false->true exactly once, only for
//     surrenders, only while Approved
//
// The flat field layout mirrors the persisted record: the envelope plus one
// of the two payloads, requester* for adoptions and owner*/pet* for
// surrenders.
type Request struct {
	ID          domain.RequestID `json:"id"`
	Kind        Kind             `json:"type"`
	PetName     string           `json:"petName"`
	Status      Status           `json:"status"`
	SubmittedAt time.Time        `json:"submittedAt"`

	// Adoption payload.
	RequesterName       string        `json:"requesterName,omitempty"`
	RequesterEmail      string        `json:"requesterEmail,omitempty"`
	RequesterPhone      string        `json:"requesterPhone,omitempty"`
	RequesterAddress    string        `json:"requesterAddress,omitempty"`
	RequesterNRIC       string        `json:"requesterNRIC,omitempty"`
	RequesterExperience string        `json:"requesterExperience,omitempty"`
	PaymentStatus       PaymentStatus `json:"paymentStatus,omitempty"`

	// Surrender payload.
	OwnerName           string `json:"ownerName,omitempty"`
	OwnerEmail          string `json:"ownerEmail,omitempty"`
	OwnerPhone          string `json:"ownerPhone,omitempty"`
	OwnerAddress        string `json:"ownerAddress,omitempty"`
	OwnerNRIC           string `json:"ownerNRIC,omitempty"`
	PetType             string `json:"petType,omitempty"`
	PetBreed            string `json:"petBreed,omitempty"`
	PetAge              string `json:"petAge,omitempty"`
	Reason              string `json:"reason,omitempty"`
	HealthIssues        string `json:"healthIssues,omitempty"`
	CollectionConfirmed bool   `json:"collectionConfirmed"`
}

// ContactName returns the submitting person's name for either variant.
func (r *Request) ContactName() string {
	if r.Kind == KindSurrender {
		return r.OwnerName
	}
	return r.RequesterName
}

// ContactEmail returns the submitting person's email for either variant.
func (r *Request) ContactEmail() string {
	if r.Kind == KindSurrender {
		return r.OwnerEmail
	}
	return r.RequesterEmail
}

// OwnedBy matches a principal against the stored requester/owner identity.
// The match is name OR email equality on strings, not a stored foreign key;
// both payload field sets are checked, mirroring how the persisted records
// were always filtered. A display-name collision without an email match still
// counts as ownership, which is a documented spoofing risk of this scheme.
func (r *Request) OwnedBy(name, email string) bool {
	return (name != "" && (r.RequesterName == name || r.OwnerName == name)) ||
		(email != "" && (r.RequesterEmail == email || r.OwnerEmail == email))
}

// IsTerminal reports whether no further staff decision applies.
func (r *Request) IsTerminal() bool {
	switch r.Status {
	case StatusRejected, StatusAdopted, StatusSurrendered:
		return true
	}
	return false
}

// DisplayStatus derives the user-facing status text. The adoption terminal
// state keeps its historical pet-name interpolation as a view, not as the
// matched value.
func (r *Request) DisplayStatus() string {
	if r.Status == StatusAdopted && r.Kind == KindAdoption {
		return r.PetName + " " + string(StatusAdopted)
	}
	return string(r.Status)
}

// Decision is a staff verdict on a pending request.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected:
		return Decision(s), nil
	}
	return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown decision %q", s)
}

// CanDecide checks that a staff decision may be applied.
func (r *Request) CanDecide() error {
	if r.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "request is %s, only pending requests can be decided", r.Status)
	}
	return nil
}

// ApplyDecision transitions Pending to Approved or Rejected.
// Call CanDecide first to validate the transition.
func (r *Request) ApplyDecision(d Decision) {
	if d == DecisionApproved {
		r.Status = StatusApproved
	} else {
		r.Status = StatusRejected
	}
}

// CanResolvePayment checks that the simulated adoption payment may run.
func (r *Request) CanResolvePayment() error {
	if r.Kind != KindAdoption {
		return dErrors.New(dErrors.CodeInvariantViolation, "payment applies to adoption requests only")
	}
	if r.Status != StatusApproved {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "request is %s, payment requires an approved request", r.Status)
	}
	return nil
}

// ApplyPaymentResolution moves an approved adoption to its terminal state.
func (r *Request) ApplyPaymentResolution() {
	r.Status = StatusAdopted
	r.PaymentStatus = PaymentCompleted
}

// CanConfirmCollection checks that a surrender pickup may be confirmed.
// A second confirmation is rejected, never silently re-applied.
func (r *Request) CanConfirmCollection() error {
	if r.Kind != KindSurrender {
		return dErrors.New(dErrors.CodeInvariantViolation, "collection confirmation applies to surrender requests only")
	}
	if r.CollectionConfirmed {
		return dErrors.New(dErrors.CodeInvariantViolation, "collection already confirmed")
	}
	if r.Status != StatusApproved {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "request is %s, confirmation requires an approved request", r.Status)
	}
	return nil
}

// ApplyCollectionConfirmation moves an approved surrender to its terminal state.
func (r *Request) ApplyCollectionConfirmation() {
	r.CollectionConfirmed = true
	r.Status = StatusSurrendered
}

// CanCancel checks owner-initiated cancellation of a still-pending request.
func (r *Request) CanCancel() error {
	if r.Status != StatusPending {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "request is %s, only pending requests can be cancelled", r.Status)
	}
	return nil
}

// CanRemove checks owner-initiated deletion of a terminal record.
func (r *Request) CanRemove() error {
	if !r.IsTerminal() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "request is %s, only concluded requests can be removed", r.Status)
	}
	return nil
}

// RequestPatch is a partial update merged into a stored record. Nil fields
// are left untouched; SubmittedAt and the payload fields are deliberately not
// patchable.
type RequestPatch struct {
	Status              *Status
	PaymentStatus       *PaymentStatus
	CollectionConfirmed *bool
}

// ApplyTo merges the patch into r.
func (p RequestPatch) ApplyTo(r *Request) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		r.PaymentStatus = *p.PaymentStatus
	}
	if p.CollectionConfirmed != nil {
		r.CollectionConfirmed = *p.CollectionConfirmed
	}
}
