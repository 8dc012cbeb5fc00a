package handler

import (
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/internal/shelter/service"
)

// RequestResponse is the record as returned to clients: the stored fields
// plus the pet-specific display status derived for list views.
type RequestResponse struct {
	models.Request
	DisplayStatus string `json:"displayStatus"`
}

// FromRequest converts a domain record to its HTTP response.
func FromRequest(r models.Request) RequestResponse {
	return RequestResponse{Request: r, DisplayStatus: r.DisplayStatus()}
}

// FromRequests converts a slice, preserving order. Always non-nil so an
// empty list encodes as [].
func FromRequests(rs []models.Request) []RequestResponse {
	out := make([]RequestResponse, len(rs))
	for i := range rs {
		out[i] = FromRequest(rs[i])
	}
	return out
}

// QueuesResponse is the staff dashboard payload.
type QueuesResponse struct {
	Adoptions  []RequestResponse `json:"adoptions"`
	Surrenders []RequestResponse `json:"surrenders"`
}

// FromQueues converts the staff projection.
func FromQueues(q service.Queues) QueuesResponse {
	return QueuesResponse{
		Adoptions:  FromRequests(q.Adoptions),
		Surrenders: FromRequests(q.Surrenders),
	}
}
