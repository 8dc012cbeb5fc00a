// Package donation accepts one-off card donations. Donations are open to
// anyone, logged in or not, and nothing is persisted; the card fields get
// the same simulated treatment as adoption payments.
package donation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PeteLJ/PetHeaven/internal/platform/metrics"
	"github.com/PeteLJ/PetHeaven/internal/validation"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// Donation is the submitted form.
type Donation struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Receipt is the acknowledgement returned on success.
type Receipt struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Service validates and acknowledges donations.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{logger: logger, metrics: m}
}

func validate(ctx context.Context, d Donation) error {
	var errs validation.Errors
	fail := func(field, reason string) {
		errs = append(errs, validation.FieldError{Field: field, Reason: reason})
	}

	if strings.TrimSpace(d.Name) == "" {
		fail("name", "Name is required")
	}
	if strings.TrimSpace(d.Amount) == "" {
		fail("amount", "Donation amount is required")
	} else if !validation.DonationAmount(d.Amount) {
		fail("amount", "Amount must be at least $1 and a valid number")
	}
	if strings.TrimSpace(d.CardNumber) == "" {
		fail("cardNumber", "Credit card number is required")
	} else if !validation.CardNumber(d.CardNumber) {
		fail("cardNumber", "Invalid card number (16 digits)")
	}
	if strings.TrimSpace(d.Expiry) == "" {
		fail("expiry", "Expiry date is required")
	} else if !validation.ExpiryAt(d.Expiry, requestcontext.Now(ctx)) {
		fail("expiry", "Invalid expiry date (MM/YY, not past)")
	}
	if strings.TrimSpace(d.CVV) == "" {
		fail("cvv", "CVV is required")
	} else if !validation.SecurityCode(d.CVV) {
		fail("cvv", "Invalid CVV (3 digits)")
	}

	return errs.OrNil()
}

// Donate validates the form and returns the receipt. The amount echoes back
// parsed, so "25.5" acknowledges as 25.5.
func (s *Service) Donate(ctx context.Context, d Donation) (Receipt, error) {
	if err := validate(ctx, d); err != nil {
		return Receipt{}, err
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if s.metrics != nil {
		s.metrics.IncDonations()
	}
	s.logger.InfoContext(ctx, "donation received",
		"name", d.Name,
		"amount", amount,
	)
	return Receipt{Name: d.Name, Amount: amount}, nil
}
