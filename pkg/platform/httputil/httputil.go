// Package httputil provides the JSON request/response plumbing shared by all
// handlers: decoding with optional validation, success envelopes, and the
// error body contract.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "github.com/PeteLJ/PetHeaven/pkg/domain-errors"
)

// maxBodyBytes caps request bodies; none of the forms come close.
const maxBodyBytes = 1 << 20

// Validatable is implemented by request DTOs that carry their own field
// rules. DecodeAndPrepare calls Validate after decoding.
type Validatable interface {
	Validate() error
}

// Fielded is implemented by errors that carry per-field reasons. WriteError
// renders them as a 400 with a fields map instead of a single description.
type Fielded interface {
	error
	FieldMap() map[string]string
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error       string            `json:"error"`
	Description string            `json:"error_description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// WriteError maps a domain error to its HTTP status and body. Internal
// errors never leak their message to the client.
func WriteError(w http.ResponseWriter, err error) {
	var fielded Fielded
	if errors.As(err, &fielded) {
		WriteJSON(w, http.StatusBadRequest, errorBody{
			Error:  "validation_failed",
			Fields: fielded.FieldMap(),
		})
		return
	}

	code := dErrors.CodeOf(err)
	body := errorBody{Error: codeName(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.Description = de.Message
		} else {
			body.Description = err.Error()
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

func codeName(code dErrors.Code) string {
	if code == dErrors.CodeInternal {
		return "internal_error"
	}
	return string(code)
}

// DecodeAndPrepare decodes the JSON body into T and, when *T is Validatable,
// runs its field rules. On failure it writes the error response and returns
// false; the handler just returns.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&v); err != nil {
		logger.WarnContext(ctx, "malformed request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON body"))
		return nil, false
	}

	if val, ok := any(&v).(Validatable); ok {
		if err := val.Validate(); err != nil {
			logger.WarnContext(ctx, "request validation failed",
				"request_id", requestID,
				"error", err,
			)
			WriteError(w, err)
			return nil, false
		}
	}
	return &v, true
}
