package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	residentmodels "gatehouse/internal/resident/models"
	residentstore "gatehouse/internal/resident/store"
	id "gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

type erroringFinder struct{}

func (erroringFinder) FindLinkedAtUnit(context.Context, residentmodels.Address) (*residentmodels.Resident, error) {
	return nil, errors.New("connection refused")
}

func TestGuardCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	unit := residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}

	store := residentstore.NewInMemory()
	occupant, err := residentmodels.NewResident(id.ResidentID(uuid.New()), "John", "Roe", "j@x.com", "", unit, "", now)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, occupant))
	acct := id.AccountID(uuid.New())
	require.NoError(t, store.LinkAccount(ctx, occupant.ID, acct, now))

	g := New(store)

	t.Run("free unit passes", func(t *testing.T) {
		assert.NoError(t, g.Check(ctx, residentmodels.Address{Phase: "1", Block: "3", Lot: "13"}, nil))
	})

	t.Run("blank address is skipped", func(t *testing.T) {
		assert.NoError(t, g.Check(ctx, residentmodels.Address{Street: "Acacia"}, nil))
	})

	t.Run("occupant equal to selection passes", func(t *testing.T) {
		selected := occupant.ID
		assert.NoError(t, g.Check(ctx, unit, &selected))
	})

	t.Run("different occupant conflicts with details", func(t *testing.T) {
		other := id.ResidentID(uuid.New())
		err := g.Check(ctx, residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}, &other)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateAddress))

		details := dErrors.DetailsOf(err)
		got, ok := details["occupant"].(residentmodels.Occupant)
		require.True(t, ok)
		assert.Equal(t, occupant.ID.String(), got.ResidentID)
		assert.Equal(t, "John Roe", got.Name)
		assert.Equal(t, acct.String(), got.LinkedAccountID)
	})

	t.Run("new resident on occupied unit conflicts", func(t *testing.T) {
		err := g.Check(ctx, residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDuplicateAddress))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		err := New(erroringFinder{}).Check(ctx, unit, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
