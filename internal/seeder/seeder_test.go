package seeder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodels "gatehouse/internal/account/models"
	accountstore "gatehouse/internal/account/store"
	duesstore "gatehouse/internal/dues/store"
	residentstore "gatehouse/internal/resident/store"
	id "gatehouse/pkg/domain"
)

func TestSeedAll(t *testing.T) {
	ctx := context.Background()
	residents := residentstore.NewInMemory()
	accounts := accountstore.NewInMemory()
	configs := duesstore.NewInMemoryConfigs()
	s := New(residents, accounts, configs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.SeedAll(ctx, now))

	n, err := residents.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoResidents), n)

	matches, err := residents.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].IsLinked(), "demo residents start unlinked")

	staff, err := accounts.FindByID(ctx, id.AccountID(uuid.MustParse(DemoStaffAccountID)))
	require.NoError(t, err)
	assert.Equal(t, accountmodels.RoleAdmin, staff.Role)

	cfg, err := configs.FindByYear(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, cfg.Active)
	assert.True(t, cfg.AnnualAmount.Equal(DemoAnnualDues))

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, s.SeedAll(ctx, now.Add(time.Hour)))
		n, err := residents.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(demoResidents), n)
	})
}
