package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	accountmodels "gatehouse/internal/account/models"
	"gatehouse/internal/registration/models"
	"gatehouse/internal/registration/service/mocks"
	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
	"gatehouse/pkg/platform/sentinel"
)

type mockDeps struct {
	requests  *mocks.MockRequestStore
	residents *mocks.MockResidentStore
	accounts  *mocks.MockAccountStore
	notifier  *mocks.MockNotifier
}

func newMockService(t *testing.T) (*Service, mockDeps) {
	ctrl := gomock.NewController(t)
	deps := mockDeps{
		requests:  mocks.NewMockRequestStore(ctrl),
		residents: mocks.NewMockResidentStore(ctrl),
		accounts:  mocks.NewMockAccountStore(ctrl),
		notifier:  mocks.NewMockNotifier(ctrl),
	}
	return New(deps.requests, deps.residents, deps.accounts, WithNotifier(deps.notifier)), deps
}

func TestSubmitFailsOpenWhenLinkFails(t *testing.T) {
	svc, deps := newMockService(t)
	ctx := context.Background()

	accountID := id.AccountID(uuid.New())
	resident, err := residentmodels.NewResident(id.ResidentID(uuid.New()), "Jane", "Doe", "a@x.com", "",
		residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}, "", time.Now())
	require.NoError(t, err)

	deps.accounts.EXPECT().Ensure(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *accountmodels.Account) (*accountmodels.Account, error) { return a, nil })
	deps.residents.EXPECT().FindByLinkedAccount(gomock.Any(), accountID).Return(nil, sentinel.ErrNotFound)
	deps.requests.EXPECT().FindLatestForAccount(gomock.Any(), accountID).Return(nil, sentinel.ErrNotFound)
	deps.residents.EXPECT().FindByEmail(gomock.Any(), "a@x.com").Return([]*residentmodels.Resident{resident}, nil)
	deps.residents.EXPECT().FindLinkedAtUnit(gomock.Any(), resident.Address).Return(nil, sentinel.ErrNotFound)
	deps.residents.EXPECT().LinkAccount(gomock.Any(), resident.ID, accountID, gomock.Any()).Return(sentinel.ErrAlreadyUsed)

	var created *models.Request
	deps.requests.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.Request) error { created = req; return nil })

	res, err := svc.Submit(ctx, SubmitCommand{
		AccountID: accountID,
		Claim: models.Claim{
			Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
			Address: residentmodels.Address{Phase: "1", Block: "3", Lot: "12"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, res.Status)
	assert.Equal(t, models.ConfidenceHigh, res.Confidence)
	require.NotNil(t, created)
	assert.Equal(t, resident.ID, *created.MatchedResidentID)
}

func TestApproveNotificationIsBestEffort(t *testing.T) {
	svc, deps := newMockService(t)
	ctx := context.Background()

	accountID := id.AccountID(uuid.New())
	req, err := models.NewPendingRequest(id.RegistrationID(uuid.New()), accountID, models.Claim{
		Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
	}, models.Match{Confidence: models.ConfidenceNone}, time.Now())
	require.NoError(t, err)

	deps.requests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
	deps.residents.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deps.accounts.EXPECT().FindByID(gomock.Any(), accountID).
		Return(&accountmodels.Account{ID: accountID, Email: "a@x.com", Role: accountmodels.RoleUser}, nil)
	deps.accounts.EXPECT().UpdateRole(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *accountmodels.Account) error {
			assert.Equal(t, accountmodels.RoleResident, a.Role)
			return nil
		})
	deps.requests.EXPECT().SaveDecision(gomock.Any(), gomock.Any()).Return(nil)
	deps.notifier.EXPECT().RegistrationApproved(gomock.Any(), "a@x.com", "Jane")

	decision, err := svc.Approve(ctx, ApproveCommand{RequestID: req.ID, ReviewerID: id.AccountID(uuid.New())})
	require.NoError(t, err)
	assert.True(t, decision.Created)
}

func TestApproveLostRaceOnSave(t *testing.T) {
	svc, deps := newMockService(t)
	ctx := context.Background()

	accountID := id.AccountID(uuid.New())
	req, err := models.NewPendingRequest(id.RegistrationID(uuid.New()), accountID, models.Claim{
		Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
	}, models.Match{Confidence: models.ConfidenceNone}, time.Now())
	require.NoError(t, err)

	deps.requests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
	deps.residents.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deps.accounts.EXPECT().FindByID(gomock.Any(), accountID).
		Return(&accountmodels.Account{ID: accountID, Role: accountmodels.RoleResident}, nil)
	deps.requests.EXPECT().SaveDecision(gomock.Any(), gomock.Any()).Return(sentinel.ErrAlreadyUsed)

	_, err = svc.Approve(ctx, ApproveCommand{RequestID: req.ID, ReviewerID: id.AccountID(uuid.New())})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyProcessed))
}

func TestApproveStoreFailureIsInternal(t *testing.T) {
	svc, deps := newMockService(t)
	requestID := id.RegistrationID(uuid.New())
	deps.requests.EXPECT().FindByID(gomock.Any(), requestID).Return(nil, errors.New("connection reset"))

	_, err := svc.Approve(context.Background(), ApproveCommand{RequestID: requestID})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
