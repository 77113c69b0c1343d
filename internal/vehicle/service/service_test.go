package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks VehicleStore,StickerStore,RequestStore,ResidentFinder,Notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	residentmodels "gatehouse/internal/resident/models"
	residentstore "gatehouse/internal/resident/store"
	"gatehouse/internal/vehicle/codegen"
	"gatehouse/internal/vehicle/models"
	"gatehouse/internal/vehicle/service/mocks"
	vehiclestore "gatehouse/internal/vehicle/store"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/audit"
	"gatehouse/pkg/platform/sentinel"
	"gatehouse/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	notifier  *mocks.MockNotifier
	vehicles  *vehiclestore.InMemoryVehicles
	stickers  *vehiclestore.InMemoryStickers
	requests  *vehiclestore.InMemoryRequests
	residents *residentstore.InMemory
	audit     *audit.InMemoryStore
	service   *Service
	ctx       context.Context
	reviewer  id.AccountID
	account   id.AccountID
	resident  *residentmodels.Resident
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.vehicles = vehiclestore.NewInMemoryVehicles()
	s.stickers = vehiclestore.NewInMemoryStickers()
	s.requests = vehiclestore.NewInMemoryRequests()
	s.residents = residentstore.NewInMemory()
	s.audit = audit.NewInMemoryStore()
	s.service = New(s.vehicles, s.stickers, s.requests, s.residents,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifier(s.notifier),
		WithAuditEmitter(s.audit),
	)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s.reviewer = id.AccountID(uuid.New())
	s.account = id.AccountID(uuid.New())
	s.resident = s.seedLinkedResident("r@x.com", s.account)
}

func (s *ServiceSuite) seedLinkedResident(email string, account id.AccountID) *residentmodels.Resident {
	now := requestcontext.Now(s.ctx)
	r, err := residentmodels.NewResident(id.ResidentID(uuid.New()), "Rita", "Santos", email, "",
		residentmodels.Address{Phase: "1", Block: "2", Lot: "3"}, "", now)
	s.Require().NoError(err)
	s.Require().NoError(s.residents.Create(s.ctx, r))
	s.Require().NoError(s.residents.LinkAccount(s.ctx, r.ID, account, now))
	return r
}

func (s *ServiceSuite) submit(plate string) *models.Request {
	req, err := s.service.SubmitRequest(s.ctx, SubmitRequestCommand{
		AccountID:   s.account,
		PlateNumber: plate,
		Details:     models.Details{Make: "Toyota", Model: "Vios", Color: "White", Type: "sedan"},
		AmountPaid:  decimal.NewFromInt(150),
	})
	s.Require().NoError(err)
	return req
}

func (s *ServiceSuite) TestSubmitRequest() {
	s.Run("normalizes plate and stores pending request", func() {
		req := s.submit(" abc 1234 ")
		s.Equal("ABC1234", req.PlateNumber)
		s.Equal(models.RequestPending, req.Status)
		s.Equal(s.resident.ID, req.ResidentID)

		n, err := s.service.CountPending(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("second pending request for same plate conflicts", func() {
		_, err := s.service.SubmitRequest(s.ctx, SubmitRequestCommand{AccountID: s.account, PlateNumber: "ABC 1234"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.NotEmpty(dErrors.DetailsOf(err)["request_id"])
	})

	s.Run("unlinked account is forbidden", func() {
		_, err := s.service.SubmitRequest(s.ctx, SubmitRequestCommand{AccountID: id.AccountID(uuid.New()), PlateNumber: "ZZZ999"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("negative amount rejected", func() {
		_, err := s.service.SubmitRequest(s.ctx, SubmitRequestCommand{AccountID: s.account, PlateNumber: "NEG1", AmountPaid: decimal.NewFromInt(-1)})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ServiceSuite) TestApproveRequestIssuesSticker() {
	req := s.submit("NBC 1234")
	s.notifier.EXPECT().VehicleApproved(gomock.Any(), "r@x.com", "NBC1234", gomock.Any(),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	approval, err := s.service.ApproveRequest(s.ctx, ApproveRequestCommand{RequestID: req.ID, ReviewerID: s.reviewer})
	s.Require().NoError(err)

	s.True(approval.VehicleCreated)
	s.Equal(models.RequestApproved, approval.Request.Status)
	s.Equal(approval.Sticker.ID, *approval.Request.StickerID)
	s.Equal(models.StickerActive, approval.Sticker.Status)
	s.Regexp(`^NVH-25-[A-Z2-9]{6}$`, approval.Sticker.Code)
	s.True(approval.Sticker.AmountPaid.Equal(decimal.NewFromInt(150)))
	s.Require().NotNil(approval.Sticker.VehicleID)
	s.Equal(approval.Vehicle.ID, *approval.Sticker.VehicleID)

	stored, err := s.vehicles.FindByPlate(s.ctx, "nbc1234")
	s.Require().NoError(err)
	s.Equal("Toyota", stored.Make)

	events, err := s.audit.ListRecent(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal(string(audit.ActionVehicleApproved), events[0].Action)

	s.Run("approving again is already processed", func() {
		_, err := s.service.ApproveRequest(s.ctx, ApproveRequestCommand{RequestID: req.ID, ReviewerID: s.reviewer})
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyProcessed))
	})
}

func (s *ServiceSuite) TestApproveRequestUpsertsExistingVehicle() {
	first := s.submit("XYZ 1")
	s.notifier.EXPECT().VehicleApproved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	a1, err := s.service.ApproveRequest(s.ctx, ApproveRequestCommand{RequestID: first.ID, ReviewerID: s.reviewer})
	s.Require().NoError(err)

	second, err := s.service.SubmitRequest(s.ctx, SubmitRequestCommand{
		AccountID:   s.account,
		PlateNumber: "xyz1",
		Details:     models.Details{Make: "Toyota", Model: "Vios", Color: "Red"},
	})
	s.Require().NoError(err)
	explicit := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	a2, err := s.service.ApproveRequest(s.ctx, ApproveRequestCommand{RequestID: second.ID, ReviewerID: s.reviewer, ExpiresAt: &explicit})
	s.Require().NoError(err)

	s.False(a2.VehicleCreated)
	s.Equal(a1.Vehicle.ID, a2.Vehicle.ID)
	s.Equal("Red", a2.Vehicle.Color)
	s.Equal(explicit, a2.Sticker.ExpiresAt)
	s.NotEqual(a1.Sticker.Code, a2.Sticker.Code)
}

func (s *ServiceSuite) TestRejectRequest() {
	req := s.submit("REJ 1")
	s.notifier.EXPECT().VehicleRejected(gomock.Any(), "r@x.com", "REJ1", "blurred OR/CR")

	rejected, err := s.service.RejectRequest(s.ctx, RejectRequestCommand{RequestID: req.ID, ReviewerID: s.reviewer, Reason: "blurred OR/CR"})
	s.Require().NoError(err)
	s.Equal(models.RequestRejected, rejected.Status)
	s.Equal("blurred OR/CR", rejected.RejectionReason)

	_, err = s.service.RejectRequest(s.ctx, RejectRequestCommand{RequestID: req.ID, ReviewerID: s.reviewer})
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyProcessed))

	_, err = s.service.RejectRequest(s.ctx, RejectRequestCommand{RequestID: id.VehicleRequestID(uuid.New()), ReviewerID: s.reviewer})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestIssueAndRevokeSticker() {
	sticker, err := s.service.IssueSticker(s.ctx, IssueStickerCommand{
		ResidentID: s.resident.ID,
		AmountPaid: decimal.RequireFromString("200.50"),
		IssuedBy:   s.reviewer,
	})
	s.Require().NoError(err)
	s.Nil(sticker.VehicleID)
	s.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), sticker.ExpiresAt)

	revoked, err := s.service.RevokeSticker(s.ctx, RevokeStickerCommand{StickerID: sticker.ID, RevokedBy: s.reviewer, Reason: "sold car"})
	s.Require().NoError(err)
	s.Equal(models.StickerRevoked, revoked.Status)
	s.Equal("sold car", revoked.RevokeReason)

	_, err = s.service.RevokeSticker(s.ctx, RevokeStickerCommand{StickerID: sticker.ID, RevokedBy: s.reviewer})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Equal("REVOKED", dErrors.DetailsOf(err)["status"])

	s.Run("unknown resident", func() {
		_, err := s.service.IssueSticker(s.ctx, IssueStickerCommand{ResidentID: id.ResidentID(uuid.New())})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("vehicle of another resident", func() {
		other := s.seedLinkedResident("o@x.com", id.AccountID(uuid.New()))
		v, err := models.NewVehicle(id.VehicleID(uuid.New()), other.ID, "OTH1", models.Details{}, requestcontext.Now(s.ctx))
		s.Require().NoError(err)
		s.Require().NoError(s.vehicles.Create(s.ctx, v))

		_, err = s.service.IssueSticker(s.ctx, IssueStickerCommand{ResidentID: s.resident.ID, VehicleID: &v.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestExpireStickers() {
	past := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	issuedCtx := requestcontext.WithTime(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	old, err := s.service.IssueSticker(issuedCtx, IssueStickerCommand{ResidentID: s.resident.ID, ExpiresAt: &past})
	s.Require().NoError(err)
	fresh, err := s.service.IssueSticker(s.ctx, IssueStickerCommand{ResidentID: s.resident.ID})
	s.Require().NoError(err)

	n, err := s.service.ExpireStickers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	got, err := s.stickers.FindByID(s.ctx, old.ID)
	s.Require().NoError(err)
	s.Equal(models.StickerExpired, got.Status)
	got, err = s.stickers.FindByID(s.ctx, fresh.ID)
	s.Require().NoError(err)
	s.Equal(models.StickerActive, got.Status)

	n, err = s.service.ExpireStickers(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *ServiceSuite) TestGarageForAccount() {
	req := s.submit("GAR 1")
	s.notifier.EXPECT().VehicleApproved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
	_, err := s.service.ApproveRequest(s.ctx, ApproveRequestCommand{RequestID: req.ID, ReviewerID: s.reviewer})
	s.Require().NoError(err)

	garage, err := s.service.GarageForAccount(s.ctx, s.account)
	s.Require().NoError(err)
	s.Len(garage.Vehicles, 1)
	s.Len(garage.Stickers, 1)

	active, err := s.service.CountActiveStickers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, active)
}

// collidingReader yields suffixes AAAAAA, AAAAAB, ... so every code is predictable.
func collidingReader() io.Reader {
	var buf []byte
	for i := 0; i < 10; i++ {
		buf = append(buf, 0, 0, 0, 0, 0, byte(i))
	}
	return bytes.NewReader(buf)
}

func TestApproveCompensatesWhenStickerCreationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	stickers := mocks.NewMockStickerStore(ctrl)
	residents := mocks.NewMockResidentFinder(ctrl)
	vehicles := vehiclestore.NewInMemoryVehicles()
	requests := vehiclestore.NewInMemoryRequests()
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))

	req, err := models.NewRequest(id.VehicleRequestID(uuid.New()), id.ResidentID(uuid.New()), "CMP 1", models.Details{}, decimal.Zero, time.Now())
	require.NoError(t, err)
	require.NoError(t, requests.Create(ctx, req))

	// Every candidate collides, the fifth is accepted, and the unique
	// constraint rejects it on insert.
	stickers.EXPECT().CodeExists(gomock.Any(), gomock.Any()).Return(true, nil).Times(codegen.DefaultMaxAttempts)
	stickers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(fmt.Errorf("create sticker: %w", sentinel.ErrConflict))

	svc := New(vehicles, stickers, requests, residents,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithCodeOptions(codegen.WithRandom(collidingReader())),
	)
	_, err = svc.ApproveRequest(ctx, ApproveRequestCommand{RequestID: req.ID, ReviewerID: id.AccountID(uuid.New())})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)

	_, err = vehicles.FindByPlate(ctx, "CMP1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "vehicle created by the failed approval must be deleted")

	stored, err := requests.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPending())
}

func TestApproveCompensatesWhenDecisionLosesRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	requests := mocks.NewMockRequestStore(ctrl)
	vehicles := vehiclestore.NewInMemoryVehicles()
	stickers := vehiclestore.NewInMemoryStickers()
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC))

	req, err := models.NewRequest(id.VehicleRequestID(uuid.New()), id.ResidentID(uuid.New()), "RACE1", models.Details{}, decimal.Zero, time.Now())
	require.NoError(t, err)
	requests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
	requests.EXPECT().SaveDecision(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

	svc := New(vehicles, stickers, requests, mocks.NewMockResidentFinder(ctrl),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	_, err = svc.ApproveRequest(ctx, ApproveRequestCommand{RequestID: req.ID, ReviewerID: id.AccountID(uuid.New())})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyProcessed), "got %v", err)

	_, err = vehicles.FindByPlate(ctx, "RACE1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	n, err := stickers.CountByStatus(ctx, models.StickerActive)
	require.NoError(t, err)
	assert.Zero(t, n, "sticker issued by the losing approval must be deleted")
}
