package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	"github.com/PeteLJ/PetHeaven/internal/platform/middleware"
	"github.com/PeteLJ/PetHeaven/internal/shelter/models"
	"github.com/PeteLJ/PetHeaven/internal/shelter/service"
	requeststore "github.com/PeteLJ/PetHeaven/internal/shelter/store/request"
	"github.com/PeteLJ/PetHeaven/pkg/domain"
)

// The handler suite runs against the real service over the in-memory store;
// the service is cheap enough to construct that stubbing it buys nothing.
type HandlerSuite struct {
	suite.Suite
	router *chi.Mux
	svc    *service.Service

	alice auth.Principal
	staff auth.Principal
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = service.New(requeststore.NewInMemory(), logger, nil, 0)

	h := New(s.svc, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterStaff(s.router)

	s.alice = auth.UserPrincipal{Account: models.UserAccount{ID: 1, Name: "Alice", Email: "alice@x.com"}}
	s.staff = auth.StaffPrincipal{Username: "staff"}
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(p auth.Principal, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithPrincipal(req.Context(), p))

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) submitAdoption(pet string) domain.RequestID {
	w := s.do(s.alice, http.MethodPost, "/requests", service.Submission{
		Kind:    models.KindAdoption,
		PetName: pet,
		Name:    "Alice",
		Email:   "alice@x.com",
		Phone:   "91234567",
		Address: "1 Shelter Lane",
		NRIC:    "S1234567A",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id, err := domain.ParseRequestID(fmt.Sprintf("%.0f", s.decode(w)["id"].(float64)))
	s.Require().NoError(err)
	return id
}

func (s *HandlerSuite) approve(id domain.RequestID) {
	w := s.do(s.staff, http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id),
		DecisionRequest{Decision: "Approved"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("creates and echoes the record", func() {
		id := s.submitAdoption("Milo")
		w := s.do(s.staff, http.MethodGet, fmt.Sprintf("/staff/requests/%d", id), nil)
		s.Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.Equal("Pending", body["status"])
		s.Equal("Not Started", body["paymentStatus"])
	})

	s.Run("field failures return the per-field map", func() {
		w := s.do(s.alice, http.MethodPost, "/requests", service.Submission{Kind: models.KindAdoption})
		s.Equal(http.StatusBadRequest, w.Code)
		body := s.decode(w)
		s.Equal("validation_failed", body["error"])
		fields := body["fields"].(map[string]any)
		s.Contains(fields, "fullName")
		s.Contains(fields, "petName")
	})

	s.Run("malformed JSON is a bad request", func() {
		req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString("{"))
		req = req.WithContext(middleware.WithPrincipal(req.Context(), s.alice))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.submitAdoption("Milo")
	w := s.do(s.alice, http.MethodGet, "/requests", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list, 1)
	s.Equal("Pending", list[0]["displayStatus"])
}

func (s *HandlerSuite) TestDecision() {
	s.Run("staff approval round trip", func() {
		id := s.submitAdoption("Milo")
		w := s.do(s.staff, http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id),
			DecisionRequest{Decision: "Approved"})
		s.Equal(http.StatusOK, w.Code)
		s.Equal("Approved", s.decode(w)["status"])
	})

	s.Run("an unknown verdict is rejected before the service runs", func() {
		id := s.submitAdoption("Luna")
		w := s.do(s.staff, http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id),
			DecisionRequest{Decision: "Maybe"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("a user principal gets 403 from the service", func() {
		id := s.submitAdoption("Rex")
		w := s.do(s.alice, http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id),
			DecisionRequest{Decision: "Approved"})
		s.Equal(http.StatusForbidden, w.Code)
	})
}

func (s *HandlerSuite) TestPayment() {
	s.Run("approved adoption completes and shows the pet display status", func() {
		id := s.submitAdoption("Milo")
		s.approve(id)
		w := s.do(s.alice, http.MethodPost, fmt.Sprintf("/requests/%d/payment", id),
			service.CardDetails{Number: "4111111111111111", Expiry: "12/30", SecurityCode: "123"})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		body := s.decode(w)
		s.Equal("Adopted", body["status"])
		s.Equal("Completed", body["paymentStatus"])
		s.Equal("Milo Adopted", body["displayStatus"])
	})

	s.Run("invalid card fields come back as a field map", func() {
		id := s.submitAdoption("Luna")
		s.approve(id)
		w := s.do(s.alice, http.MethodPost, fmt.Sprintf("/requests/%d/payment", id),
			service.CardDetails{Number: "1234", Expiry: "01/20", SecurityCode: "9"})
		s.Equal(http.StatusBadRequest, w.Code)
		fields := s.decode(w)["fields"].(map[string]any)
		s.Contains(fields, "cardNumber")
		s.Contains(fields, "expiry")
		s.Contains(fields, "securityCode")
	})

	s.Run("a non-numeric path ID is a bad request", func() {
		w := s.do(s.alice, http.MethodPost, "/requests/abc/payment",
			service.CardDetails{Number: "4111111111111111", Expiry: "12/30", SecurityCode: "123"})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestDelete() {
	s.Run("pending request cancels with no content", func() {
		id := s.submitAdoption("Milo")
		w := s.do(s.alice, http.MethodDelete, fmt.Sprintf("/requests/%d", id), nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown ID is 404", func() {
		w := s.do(s.alice, http.MethodDelete, "/requests/999", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *HandlerSuite) TestQueues() {
	s.submitAdoption("Milo")
	w := s.do(s.staff, http.MethodGet, "/staff/requests", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Len(body["adoptions"], 1)
	s.Empty(body["surrenders"])
}
