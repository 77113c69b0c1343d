package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	residentmodels "gatehouse/internal/resident/models"
	residentstore "gatehouse/internal/resident/store"
	"gatehouse/internal/vehicle/service"
	vehiclestore "gatehouse/internal/vehicle/store"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/httputil"
	"gatehouse/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	resident *residentmodels.Resident
	owner    id.AccountID
	staff    id.AccountID
	now      time.Time
}

type callerKey struct{}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.now = time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	s.owner = id.AccountID(uuid.New())
	s.staff = id.AccountID(uuid.New())

	residents := residentstore.NewInMemory()
	r, err := residentmodels.NewResident(id.ResidentID(uuid.New()), "Vic", "Lopez", "v@x.com", "",
		residentmodels.Address{Phase: "2", Block: "4", Lot: "6"}, "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(residents.Create(context.Background(), r))
	s.Require().NoError(residents.LinkAccount(context.Background(), r.ID, s.owner, s.now))
	s.resident = r

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(vehiclestore.NewInMemoryVehicles(), vehiclestore.NewInMemoryStickers(),
		vehiclestore.NewInMemoryRequests(), residents, service.WithLogger(logger))
	h := New(svc, logger)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithTime(req.Context(), s.now)
			if caller, ok := req.Context().Value(callerKey{}).(id.AccountID); ok {
				ctx = requestcontext.WithPrincipal(ctx, caller, "", "RESIDENT")
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.RegisterAccount(router)
	h.RegisterAdmin(router)
	s.router = router
}

func (s *HandlerSuite) do(method, path string, body any, caller id.AccountID) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(context.WithValue(req.Context(), callerKey{}, caller))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *HandlerSuite, rec *httptest.ResponseRecorder) T {
	var out T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerSuite) TestRequestApproveAndGarage() {
	rec := s.do(http.MethodPost, "/vehicles/requests", map[string]any{
		"plate_number": "abc 123", "make": "Honda", "model": "City", "color": "Gray", "type": "Sedan",
		"amount_paid": "150.00",
	}, s.owner)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[VehicleRequestResponse](s, rec)
	s.Equal("ABC123", created.PlateNumber)
	s.Equal("150.00", created.AmountPaid)
	s.Equal("sedan", created.Type)

	pending := decode[VehicleRequestListResponse](s, s.do(http.MethodGet, "/admin/vehicles/requests", nil, s.staff))
	s.Equal(1, pending.Total)

	approve := s.do(http.MethodPost, "/admin/vehicles/requests/"+created.ID+"/approve", nil, s.staff)
	s.Require().Equal(http.StatusOK, approve.Code, approve.Body.String())
	approval := decode[ApprovalResponse](s, approve)
	s.True(approval.VehicleCreated)
	s.Equal("ACTIVE", approval.Sticker.Status)
	s.Regexp(`^NVH-25-`, approval.Sticker.Code)
	s.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), approval.Sticker.ExpiresAt.UTC())

	again := s.do(http.MethodPost, "/admin/vehicles/requests/"+created.ID+"/reject", map[string]string{"reason": "dup"}, s.staff)
	s.Equal(http.StatusConflict, again.Code)
	s.Equal("already_processed", decode[httputil.ErrorResponse](s, again).Error)

	garage := decode[GarageResponse](s, s.do(http.MethodGet, "/vehicles/me", nil, s.owner))
	s.Len(garage.Vehicles, 1)
	s.Len(garage.Stickers, 1)
}

func (s *HandlerSuite) TestIssueRevokeAndExpire() {
	expires := s.now.Add(-time.Hour).Add(24 * time.Hour)
	rec := s.do(http.MethodPost, "/admin/stickers", map[string]any{
		"resident_id": s.resident.ID.String(), "amount_paid": 100, "expires_at": expires,
	}, s.staff)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	sticker := decode[StickerResponse](s, rec)
	s.Equal("100.00", sticker.AmountPaid)

	revoke := s.do(http.MethodPost, "/admin/stickers/"+sticker.ID+"/revoke", map[string]string{"reason": "lost"}, s.staff)
	s.Require().Equal(http.StatusOK, revoke.Code)
	s.Equal("REVOKED", decode[StickerResponse](s, revoke).Status)

	again := s.do(http.MethodPost, "/admin/stickers/"+sticker.ID+"/revoke", nil, s.staff)
	s.Equal(http.StatusConflict, again.Code)

	expired := decode[ExpireResponse](s, s.do(http.MethodPost, "/admin/stickers/expire", nil, s.staff))
	s.Zero(expired.Expired)
}

func (s *HandlerSuite) TestValidation() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/vehicles/requests", map[string]any{"plate_number": "  "}, s.owner).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/vehicles/requests", map[string]any{"plate_number": "A1", "amount_paid": "-5"}, s.owner).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/vehicles/requests", map[string]any{"plate_number": "A1"}, id.AccountID(uuid.New())).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/admin/vehicles/requests/bogus/approve", nil, s.staff).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/admin/vehicles/requests?status=done", nil, s.staff).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/admin/stickers", map[string]any{"resident_id": "nope"}, s.staff).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/admin/stickers/"+uuid.NewString()+"/revoke", nil, s.staff).Code)
}
