package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	accountstore "gatehouse/internal/account/store"
	"gatehouse/internal/registration/service"
	registrationstore "gatehouse/internal/registration/store"
	residentmodels "gatehouse/internal/resident/models"
	residentstore "gatehouse/internal/resident/store"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

// HandlerSuite drives the registration routes over HTTP against the
// in-memory stores. A stub middleware stands in for JWT validation.
type HandlerSuite struct {
	suite.Suite
	residents *residentstore.InMemory
	router    http.Handler
	now       time.Time
}

type principal struct {
	accountID id.AccountID
	email     string
	role      string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s.residents = residentstore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(registrationstore.NewInMemory(), s.residents, accountstore.NewInMemory(),
		service.WithLogger(logger),
	)
	h := New(svc, logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithTime(req.Context(), s.now)
			if p, ok := req.Context().Value(principalKey{}).(principal); ok {
				ctx = requestcontext.WithPrincipal(ctx, p.accountID, p.email, p.role)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterAccount(r)
	h.RegisterAdmin(r)
	s.router = r
}

type principalKey struct{}

func (s *HandlerSuite) do(method, path string, body any, p *principal) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if p != nil {
		req = req.WithContext(context.WithValue(req.Context(), principalKey{}, *p))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) newPrincipal(email, role string) *principal {
	return &principal{accountID: id.AccountID(uuid.New()), email: email, role: role}
}

func (s *HandlerSuite) seedResident(email, first, last string, addr residentmodels.Address) *residentmodels.Resident {
	r, err := residentmodels.NewResident(id.ResidentID(uuid.New()), first, last, email, "", addr, "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.residents.Create(context.Background(), r))
	return r
}

func decode[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) TestSubmitAutoLinksSeededResident() {
	addr := residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}
	seeded := s.seedResident("a@x.com", "Jane", "Doe", addr)
	caller := s.newPrincipal("a@x.com", "USER")

	rec := s.do(http.MethodPost, "/registrations", map[string]any{
		"email": "a@x.com", "first_name": "Jane", "last_name": "Doe",
		"block": "3", "lot": "12", "phase": "1",
	}, caller)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[SubmitResponse](s, rec)
	s.Equal("approved", resp.Status)
	s.Equal("linked", resp.Action)
	s.Equal("high", resp.Confidence)
	s.Empty(resp.RequestID)

	linked, err := s.residents.FindByID(context.Background(), seeded.ID)
	s.Require().NoError(err)
	s.Require().NotNil(linked.LinkedAccountID)
	s.Equal(caller.accountID, *linked.LinkedAccountID)

	mine := s.do(http.MethodGet, "/registrations/me", nil, caller)
	s.Equal(http.StatusNotFound, mine.Code)
}

func (s *HandlerSuite) TestSubmitWithoutMatchQueuesForReview() {
	caller := s.newPrincipal("new@x.com", "USER")

	rec := s.do(http.MethodPost, "/registrations", map[string]any{
		"email": "new@x.com", "first_name": "Ann", "last_name": "Cruz",
		"phase": "2", "block": "7", "lot": "4",
		"document_urls": []string{" https://docs/a.pdf ", "https://docs/a.pdf"},
	}, caller)

	s.Require().Equal(http.StatusAccepted, rec.Code, rec.Body.String())
	resp := decode[SubmitResponse](s, rec)
	s.Equal("pending", resp.Status)
	s.Equal("pending_review", resp.Action)
	s.Equal("none", resp.Confidence)
	s.NotEmpty(resp.RequestID)

	mine := s.do(http.MethodGet, "/registrations/me", nil, caller)
	s.Require().Equal(http.StatusOK, mine.Code)
	reg := decode[RegistrationResponse](s, mine)
	s.Equal(resp.RequestID, reg.ID)
	s.Equal([]string{"https://docs/a.pdf"}, reg.DocumentURLs)
}

func (s *HandlerSuite) TestSubmitValidation() {
	caller := s.newPrincipal("x@x.com", "USER")

	s.Run("missing last name", func() {
		rec := s.do(http.MethodPost, "/registrations", map[string]any{
			"email": "x@x.com", "first_name": "X",
		}, caller)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("validation_error", decode[httputil.ErrorResponse](s, rec).Error)
	})

	s.Run("malformed email", func() {
		rec := s.do(http.MethodPost, "/registrations", map[string]any{
			"email": "x@", "first_name": "X", "last_name": "Y",
		}, caller)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("email must be a valid email", decode[httputil.ErrorResponse](s, rec).Description)
	})

	s.Run("too many document links", func() {
		links := make([]string, 11)
		for i := range links {
			links[i] = fmt.Sprintf("https://docs/%d.pdf", i)
		}
		rec := s.do(http.MethodPost, "/registrations", map[string]any{
			"email": "x@x.com", "first_name": "X", "last_name": "Y", "document_urls": links,
		}, caller)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("too many document_urls: max 10 allowed", decode[httputil.ErrorResponse](s, rec).Description)
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewBufferString("{"))
		req = req.WithContext(context.WithValue(req.Context(), principalKey{}, *caller))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("no principal", func() {
		rec := s.do(http.MethodPost, "/registrations", map[string]any{
			"email": "x@x.com", "first_name": "X", "last_name": "Y",
		}, nil)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *HandlerSuite) TestReviewFlow() {
	staff := s.newPrincipal("staff@x.com", "STAFF")
	caller := s.newPrincipal("b@x.com", "USER")
	submitted := decode[SubmitResponse](s, s.do(http.MethodPost, "/registrations", map[string]any{
		"email": "b@x.com", "first_name": "Ben", "last_name": "Tan",
		"phase": "1", "block": "9", "lot": "2",
	}, caller))
	s.Require().NotEmpty(submitted.RequestID)

	list := s.do(http.MethodGet, "/admin/registrations", nil, staff)
	s.Require().Equal(http.StatusOK, list.Code)
	s.Equal(1, decode[RegistrationListResponse](s, list).Total)

	approve := s.do(http.MethodPost, "/admin/registrations/"+submitted.RequestID+"/approve", nil, staff)
	s.Require().Equal(http.StatusOK, approve.Code, approve.Body.String())
	decision := decode[DecisionResponse](s, approve)
	s.True(decision.ResidentCreated)
	s.Equal("approved", decision.Registration.Status)
	s.Equal(staff.accountID.String(), decision.Registration.ReviewedBy)

	again := s.do(http.MethodPost, "/admin/registrations/"+submitted.RequestID+"/reject",
		map[string]string{"reason": "late"}, staff)
	s.Equal(http.StatusConflict, again.Code)
	s.Equal("already_processed", decode[httputil.ErrorResponse](s, again).Error)

	approved := s.do(http.MethodGet, "/admin/registrations?status=approved", nil, staff)
	s.Equal(1, decode[RegistrationListResponse](s, approved).Total)
}

func (s *HandlerSuite) TestApproveDuplicateAddressReturnsDetails() {
	addr := residentmodels.Address{Phase: "1", Block: "5", Lot: "8"}
	occupant := s.seedResident("owner@x.com", "Olga", "Reyes", addr)
	_ = decode[SubmitResponse](s, s.do(http.MethodPost, "/registrations", map[string]any{
		"email": "owner@x.com", "first_name": "Olga", "last_name": "Reyes",
		"phase": "1", "block": "5", "lot": "8",
	}, s.newPrincipal("owner@x.com", "USER")))

	claimant := s.newPrincipal("other@x.com", "USER")
	submitted := decode[SubmitResponse](s, s.do(http.MethodPost, "/registrations", map[string]any{
		"email": "other@x.com", "first_name": "Ian", "last_name": "Lim",
		"phase": "1", "block": "5", "lot": "8",
	}, claimant))
	s.Require().NotEmpty(submitted.RequestID)

	staff := s.newPrincipal("staff@x.com", "ADMIN")
	rec := s.do(http.MethodPost, "/admin/registrations/"+submitted.RequestID+"/approve", nil, staff)
	s.Require().Equal(http.StatusConflict, rec.Code)
	body := decode[httputil.ErrorResponse](s, rec)
	s.Equal("duplicate_address", body.Error)
	occ, ok := body.Details["occupant"].(map[string]any)
	s.Require().True(ok, "occupant payload expected: %v", body.Details)
	s.Equal(occupant.ID.String(), occ["resident_id"])
}

func (s *HandlerSuite) TestBadParams() {
	staff := s.newPrincipal("staff@x.com", "STAFF")

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/admin/registrations/not-a-uuid", nil, staff).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/admin/registrations?status=maybe", nil, staff).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/admin/registrations/"+uuid.NewString(), nil, staff).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/admin/registrations/"+uuid.NewString()+"/approve",
		map[string]string{"resident_id": "nope"}, staff).Code)
}
