package handler

import (
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
)

// DecisionRequest is the HTTP request body for POST
// /staff/requests/{id}/decision.
type DecisionRequest struct {
	Decision string `json:"decision"`

	parsed models.Decision
}

// Validate parses the verdict. Only the two spelled statuses are accepted.
func (r *DecisionRequest) Validate() error {
	d, err := models.ParseDecision(r.Decision)
	if err != nil {
		return err
	}
	r.parsed = d
	return nil
}

// ParsedDecision returns the validated verdict.
func (r *DecisionRequest) ParsedDecision() models.Decision {
	return r.parsed
}
