package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	authhandler "github.com/PeteLJ/PetHeaven/internal/auth/handler"
	cataloghandler "github.com/PeteLJ/PetHeaven/internal/catalog/handler"
	"github.com/PeteLJ/PetHeaven/internal/donation"
	donationhandler "github.com/PeteLJ/PetHeaven/internal/donation/handler"
	httpapi "github.com/PeteLJ/PetHeaven/internal/http"
	shelterhandler "github.com/PeteLJ/PetHeaven/internal/shelter/handler"
	"github.com/PeteLJ/PetHeaven/internal/shelter/service"
	requeststore "github.com/PeteLJ/PetHeaven/internal/shelter/store/request"
	userstore "github.com/PeteLJ/PetHeaven/internal/shelter/store/user"
)

// The suite drives the fully assembled router over in-memory stores: the
// same wiring main performs, minus the listener.
type EndToEndSuite struct {
	suite.Suite
	router http.Handler
}

func (s *EndToEndSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := userstore.NewInMemory()
	requests := requeststore.NewInMemory()

	manager := auth.NewManager(users, auth.StaffCredentials{Username: "staff", Password: "staff123"}, logger, nil)
	tokens := auth.NewTokenIssuer("integration-test-key", time.Hour)
	lifecycle := service.New(requests, logger, nil, 0)

	s.router = httpapi.NewRouter(httpapi.Deps{
		Auth:      authhandler.New(manager, tokens, logger),
		Catalog:   cataloghandler.New(logger),
		Donation:  donationhandler.New(donation.New(logger, nil), logger),
		Shelter:   shelterhandler.New(lifecycle, logger),
		Validator: tokens,
		Logger:    logger,
		Metrics:   nil,
		Health:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	})
}

func TestEndToEndSuite(t *testing.T) {
	suite.Run(t, new(EndToEndSuite))
}

func (s *EndToEndSuite) call(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *EndToEndSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *EndToEndSuite) userToken(name, email string) string {
	w := s.call(http.MethodPost, "/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret1",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.call(http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": "secret1",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return s.decode(w)["token"].(string)
}

func (s *EndToEndSuite) staffToken() string {
	w := s.call(http.MethodPost, "/auth/staff/login", "", map[string]any{
		"username": "staff", "password": "staff123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return s.decode(w)["token"].(string)
}

func (s *EndToEndSuite) TestAdoptionJourney() {
	userTok := s.userToken("Alice", "alice@x.com")
	staffTok := s.staffToken()

	// Browse first; no token needed.
	w := s.call(http.MethodGet, "/pets?type=cat", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))

	// Submit the adoption request.
	w = s.call(http.MethodPost, "/requests", userTok, map[string]any{
		"type": "adoption", "petName": "Luna",
		"name": "Alice", "email": "alice@x.com", "phone": "91234567",
		"address": "1 Shelter Lane", "nric": "S1234567A",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := int64(s.decode(w)["id"].(float64))

	// Staff see it in the adoption queue and approve.
	w = s.call(http.MethodGet, "/staff/requests", staffTok, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["adoptions"], 1)

	w = s.call(http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id), staffTok,
		map[string]any{"decision": "Approved"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Owner pays; the record reaches its terminal state.
	w = s.call(http.MethodPost, fmt.Sprintf("/requests/%d/payment", id), userTok, map[string]any{
		"cardNumber": "4111 1111 1111 1111", "expiry": "12/30", "securityCode": "123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("Adopted", body["status"])
	s.Equal("Luna Adopted", body["displayStatus"])

	// Finally the owner clears the record from their dashboard.
	w = s.call(http.MethodDelete, fmt.Sprintf("/requests/%d", id), userTok, nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *EndToEndSuite) TestSurrenderJourney() {
	userTok := s.userToken("Bob", "bob@x.com")
	staffTok := s.staffToken()

	w := s.call(http.MethodPost, "/requests", userTok, map[string]any{
		"type": "surrender", "petName": "Rex",
		"name": "Bob", "email": "bob@x.com", "phone": "81234567",
		"nric": "T7654321B", "petType": "dog", "reason": "Moving overseas",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := int64(s.decode(w)["id"].(float64))

	w = s.call(http.MethodPost, fmt.Sprintf("/staff/requests/%d/decision", id), staffTok,
		map[string]any{"decision": "Approved"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.call(http.MethodPost, fmt.Sprintf("/requests/%d/collection", id), userTok, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Surrendered", s.decode(w)["status"])
}

func (s *EndToEndSuite) TestRoleBoundaries() {
	userTok := s.userToken("Alice", "alice@x.com")
	staffTok := s.staffToken()

	s.Run("user tokens cannot reach the staff surface", func() {
		w := s.call(http.MethodGet, "/staff/requests", userTok, nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("staff tokens cannot submit requests", func() {
		w := s.call(http.MethodPost, "/requests", staffTok, map[string]any{
			"type": "adoption", "petName": "Luna",
			"name": "Staff", "email": "staff@x.com", "phone": "91234567",
			"address": "1 Shelter Lane", "nric": "S1234567A",
		})
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("no token is unauthorized", func() {
		w := s.call(http.MethodGet, "/requests", "", nil)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("donations stay open to everyone", func() {
		w := s.call(http.MethodPost, "/donations", "", map[string]any{
			"name": "Anon", "amount": "10",
			"cardNumber": "4111111111111111", "expiry": "12/30", "cvv": "123",
		})
		s.Equal(http.StatusCreated, w.Code, w.Body.String())
	})
}
