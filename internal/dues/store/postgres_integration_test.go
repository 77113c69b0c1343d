//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"gatehouse/internal/dues/ledger"
	"gatehouse/internal/dues/models"
	"gatehouse/internal/dues/store"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/platform/sentinel"
	txcontext "gatehouse/pkg/platform/tx"
	"gatehouse/pkg/testutil"
	"gatehouse/pkg/testutil/containers"
)

type PostgresDuesStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	configs  *store.PostgresConfigs
	payments *store.PostgresPayments
	ledger   *store.PostgresLedger
	ctx      context.Context
	resident id.ResidentID
	now      time.Time
}

func TestPostgresDuesStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresDuesStoreSuite))
}

func (s *PostgresDuesStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.configs = store.NewPostgresConfigs(s.postgres.DB)
	s.payments = store.NewPostgresPayments(s.postgres.DB)
	s.ledger = store.NewPostgresLedger(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresDuesStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateModuleTables(s.ctx))
	s.resident = s.postgres.CreateTestResident(s.ctx, s.T(), "d@x.com", "Diaz", "1", "1", "1")
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresDuesStoreSuite) verifiedPayment(amount string) *models.Payment {
	p, err := models.NewPayment(id.PaymentID(uuid.New()), s.resident, models.FeeAnnualDues, 2025,
		decimal.RequireFromString(amount), "cash", "OR-1", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.payments.Create(s.ctx, p))
	s.Require().NoError(p.Verify(s.postgres.CreateTestAccount(s.ctx, s.T(), "STAFF"), s.now))
	s.Require().NoError(s.payments.SaveDecision(s.ctx, p))
	return p
}

func (s *PostgresDuesStoreSuite) TestPaymentRoundTrip() {
	p := s.verifiedPayment("1234.50")
	got, err := s.payments.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(p.Amount.Equal(got.Amount))
	s.Equal(models.PaymentVerified, got.Status)
	s.Require().NotNil(got.VerifiedBy)
	s.ErrorIs(s.payments.SaveDecision(s.ctx, got), sentinel.ErrAlreadyUsed)
}

func (s *PostgresDuesStoreSuite) TestLedgerAppliesEachPaymentOnce() {
	cfg, err := models.NewConfig(2025, decimal.NewFromInt(3600), true, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.configs.Upsert(s.ctx, cfg))
	updater := ledger.New(s.configs, s.ledger)

	first := s.verifiedPayment("1000")
	second := s.verifiedPayment("2600")
	for _, p := range []*models.Payment{first, first, second} {
		err := txcontext.RunInTx(s.ctx, s.postgres.DB, func(ctx context.Context) error {
			_, _, err := updater.Apply(ctx, p, s.now)
			return err
		})
		s.Require().NoError(err)
	}

	row, err := s.ledger.FindRow(s.ctx, s.resident, 2025)
	s.Require().NoError(err)
	s.Equal(models.LedgerPaid, row.Status)
	s.True(decimal.NewFromInt(3600).Equal(row.AmountPaid))

	sum, n, err := s.ledger.SumEntries(s.ctx, s.resident, 2025)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.True(decimal.NewFromInt(3600).Equal(sum))
}

func (s *PostgresDuesStoreSuite) TestConcurrentVerificationsSerialize() {
	updater := ledger.New(s.configs, s.ledger)
	payments := make([]*models.Payment, 5)
	for i := range payments {
		payments[i] = s.verifiedPayment("100")
	}

	result := testutil.RunConcurrent(len(payments), func(i int) error {
		return txcontext.RunInTx(s.ctx, s.postgres.DB, func(ctx context.Context) error {
			_, _, err := updater.Apply(ctx, payments[i], s.now)
			return err
		})
	})
	s.Equal(int32(len(payments)), result.Successes)

	row, err := s.ledger.FindRow(s.ctx, s.resident, 2025)
	s.Require().NoError(err)
	sum, _, err := s.ledger.SumEntries(s.ctx, s.resident, 2025)
	s.Require().NoError(err)
	s.True(sum.Equal(row.AmountPaid), "row total matches applied entries")
	s.True(decimal.NewFromInt(500).Equal(row.AmountPaid))
}
