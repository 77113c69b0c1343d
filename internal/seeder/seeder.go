// Package seeder loads demo residents, a staff account and the current dues
// configuration so the portal can be exercised against in-memory stores.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountmodels "gatehouse/internal/account/models"
	duesmodels "gatehouse/internal/dues/models"
	residentmodels "gatehouse/internal/resident/models"
	id "gatehouse/pkg/domain"
)

// DemoStaffAccountID is stable so tokens minted by cmd/tokengen line up with
// the seeded staff account across restarts.
const DemoStaffAccountID = "00000000-0000-4000-8000-000000000001"

// DemoAnnualDues is the seeded yearly dues amount.
var DemoAnnualDues = decimal.NewFromInt(3600)

type ResidentStore interface {
	Create(ctx context.Context, r *residentmodels.Resident) error
	Count(ctx context.Context) (int, error)
}

type AccountStore interface {
	Ensure(ctx context.Context, account *accountmodels.Account) (*accountmodels.Account, error)
}

type ConfigStore interface {
	Upsert(ctx context.Context, cfg *duesmodels.Config) error
}

type Seeder struct {
	residents ResidentStore
	accounts  AccountStore
	configs   ConfigStore
	logger    *slog.Logger
}

func New(residents ResidentStore, accounts AccountStore, configs ConfigStore, logger *slog.Logger) *Seeder {
	return &Seeder{residents: residents, accounts: accounts, configs: configs, logger: logger}
}

type demoResident struct {
	first, last, email, phone string
	addr                      residentmodels.Address
}

var demoResidents = []demoResident{
	{"Jane", "Doe", "a@x.com", "09170000001", residentmodels.Address{Phase: "1", Block: "3", Lot: "12", Street: "Acacia St"}},
	{"Ramon", "Santos", "ramon.santos@example.com", "09170000002", residentmodels.Address{Phase: "1", Block: "3", Lot: "14", Street: "Acacia St"}},
	{"Liza", "Reyes", "", "09170000003", residentmodels.Address{Phase: "1", Block: "4", Lot: "2", Street: "Narra St"}},
	{"Paolo", "Cruz", "paolo.cruz@example.com", "", residentmodels.Address{Phase: "2", Block: "1", Lot: "7"}},
	{"Mina", "Garcia", "mina.garcia@example.com", "09170000005", residentmodels.Address{Phase: "2", Block: "5", Lot: "20", Street: "Molave St"}},
}

// SeedAll is a no-op when residents already exist.
func (s *Seeder) SeedAll(ctx context.Context, now time.Time) error {
	n, err := s.residents.Count(ctx)
	if err != nil {
		return fmt.Errorf("count residents: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "demo data already present, skipping seed", "residents", n)
		return nil
	}

	s.logger.InfoContext(ctx, "seeding demo data")
	for _, d := range demoResidents {
		r, err := residentmodels.NewResident(id.ResidentID(uuid.New()), d.first, d.last, d.email, d.phone, d.addr, "", now)
		if err != nil {
			return fmt.Errorf("build resident %s %s: %w", d.first, d.last, err)
		}
		if err := s.residents.Create(ctx, r); err != nil {
			return fmt.Errorf("seed resident %s %s: %w", d.first, d.last, err)
		}
	}

	staff, err := accountmodels.NewAccount(id.AccountID(uuid.MustParse(DemoStaffAccountID)),
		"office@gatehouse.local", accountmodels.RoleAdmin, now)
	if err != nil {
		return fmt.Errorf("build staff account: %w", err)
	}
	if _, err := s.accounts.Ensure(ctx, staff); err != nil {
		return fmt.Errorf("seed staff account: %w", err)
	}

	cfg, err := duesmodels.NewConfig(now.Year(), DemoAnnualDues, true, now)
	if err != nil {
		return fmt.Errorf("build dues config: %w", err)
	}
	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("seed dues config: %w", err)
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"residents", len(demoResidents),
		"dues_year", cfg.Year,
		"annual_amount", cfg.AnnualAmount.StringFixed(2),
	)
	return nil
}
