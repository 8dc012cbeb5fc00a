package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeteLJ/PetHeaven/pkg/domain"
	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
)

func adoption(status Status) *Request {
	return &Request{
		ID:             domain.RequestID(1700000000000),
		Kind:           KindAdoption,
		PetName:        "Luna",
		Status:         status,
		SubmittedAt:    time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		RequesterName:  "Tan",
		RequesterEmail: "tan@x.com",
		PaymentStatus:  PaymentNotStarted,
	}
}

func surrender(status Status) *Request {
	return &Request{
		ID:          domain.RequestID(1700000000001),
		Kind:        KindSurrender,
		PetName:     "Bobby",
		Status:      status,
		SubmittedAt: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
		OwnerName:   "Lim",
		OwnerEmail:  "lim@x.com",
	}
}

func TestDecisionTransitions(t *testing.T) {
	t.Run("pending request accepts a decision", func(t *testing.T) {
		r := adoption(StatusPending)
		require.NoError(t, r.CanDecide())
		r.ApplyDecision(DecisionApproved)
		assert.Equal(t, StatusApproved, r.Status)
	})

	t.Run("decision off pending is an invariant violation", func(t *testing.T) {
		for _, status := range []Status{StatusApproved, StatusRejected, StatusAdopted, StatusSurrendered} {
			err := adoption(status).CanDecide()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		}
	})
}

func TestPaymentResolution(t *testing.T) {
	t.Run("approved adoption resolves to adopted", func(t *testing.T) {
		r := adoption(StatusApproved)
		require.NoError(t, r.CanResolvePayment())
		r.ApplyPaymentResolution()
		assert.Equal(t, StatusAdopted, r.Status)
		assert.Equal(t, PaymentCompleted, r.PaymentStatus)
		assert.Equal(t, "Luna Adopted", r.DisplayStatus())
	})

	t.Run("payment requires exactly approved", func(t *testing.T) {
		assert.Error(t, adoption(StatusPending).CanResolvePayment())
		assert.Error(t, adoption(StatusAdopted).CanResolvePayment())
	})

	t.Run("payment never applies to surrenders", func(t *testing.T) {
		assert.Error(t, surrender(StatusApproved).CanResolvePayment())
	})
}

func TestCollectionConfirmation(t *testing.T) {
	t.Run("approved surrender confirms once", func(t *testing.T) {
		r := surrender(StatusApproved)
		require.NoError(t, r.CanConfirmCollection())
		r.ApplyCollectionConfirmation()
		assert.True(t, r.CollectionConfirmed)
		assert.Equal(t, StatusSurrendered, r.Status)
	})

	t.Run("second confirmation is rejected, not re-applied", func(t *testing.T) {
		r := surrender(StatusApproved)
		r.ApplyCollectionConfirmation()
		first := *r

		err := r.CanConfirmCollection()
		require.Error(t, err)
		assert.Equal(t, first, *r)
	})

	t.Run("adoptions cannot confirm collection", func(t *testing.T) {
		assert.Error(t, adoption(StatusApproved).CanConfirmCollection())
	})
}

func TestOwnerDeletionGuards(t *testing.T) {
	assert.NoError(t, adoption(StatusPending).CanCancel())
	assert.Error(t, adoption(StatusApproved).CanCancel())

	assert.NoError(t, adoption(StatusRejected).CanRemove())
	assert.NoError(t, adoption(StatusAdopted).CanRemove())
	assert.NoError(t, surrender(StatusSurrendered).CanRemove())
	assert.Error(t, adoption(StatusApproved).CanRemove(), "approved is not terminal")
	assert.Error(t, adoption(StatusPending).CanRemove())
}

func TestOwnedBy(t *testing.T) {
	r := adoption(StatusPending)

	assert.True(t, r.OwnedBy("Tan", "other@x.com"), "name match alone suffices")
	assert.True(t, r.OwnedBy("Somebody Else", "tan@x.com"), "email match alone suffices")
	assert.False(t, r.OwnedBy("Somebody Else", "other@x.com"))
	assert.False(t, r.OwnedBy("", ""), "empty principal fields never match")

	s := surrender(StatusPending)
	assert.True(t, s.OwnedBy("", "lim@x.com"))
	assert.True(t, s.OwnedBy("Lim", ""))
}

func TestLegacyStatusDecode(t *testing.T) {
	t.Run("interpolated adoption status folds into the enum", func(t *testing.T) {
		var r Request
		raw := `{"id":1,"type":"adoption","petName":"Luna","status":"Luna Adopted","submittedAt":"2024-06-01T10:00:00Z"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		assert.Equal(t, StatusAdopted, r.Status)
	})

	t.Run("plain statuses pass through", func(t *testing.T) {
		var r Request
		raw := `{"id":2,"type":"surrender","status":"Pending","submittedAt":"2024-06-01T10:00:00Z"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		assert.Equal(t, StatusPending, r.Status)
	})
}

func TestPatchMerge(t *testing.T) {
	r := adoption(StatusPending)
	before := *r

	approved := StatusApproved
	RequestPatch{Status: &approved}.ApplyTo(r)

	assert.Equal(t, StatusApproved, r.Status)

	// Everything outside the patch is untouched.
	r.Status = before.Status
	assert.Equal(t, before, *r)
}
