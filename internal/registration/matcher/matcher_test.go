package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/registration/models"
	residentmodels "gatehouse/internal/resident/models"
	residentstore "gatehouse/internal/resident/store"
	id "gatehouse/pkg/domain"
)

var unit = residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}

func resident(t *testing.T, email, last string, addr residentmodels.Address, linked bool) *residentmodels.Resident {
	t.Helper()
	r, err := residentmodels.NewResident(id.ResidentID(uuid.New()), "Jane", last, email, "", addr, "", time.Now())
	require.NoError(t, err)
	if linked {
		acct := id.AccountID(uuid.New())
		r.LinkedAccountID = &acct
	}
	return r
}

func TestClassify(t *testing.T) {
	claim := models.Claim{Email: "a@x.com", FirstName: "Jane", LastName: "Doe", Address: unit}

	t.Run("no candidates", func(t *testing.T) {
		m := Classify(claim, nil, nil)
		assert.Equal(t, models.ConfidenceNone, m.Confidence)
		assert.Nil(t, m.Resident)
	})

	t.Run("unlinked email match is high", func(t *testing.T) {
		r := resident(t, "a@x.com", "Other", residentmodels.Address{}, false)
		m := Classify(claim, []*residentmodels.Resident{r}, nil)
		assert.Equal(t, models.ConfidenceHigh, m.Confidence)
		assert.Equal(t, r.ID, m.Resident.ID)
	})

	t.Run("linked email match is low", func(t *testing.T) {
		r := resident(t, "a@x.com", "Doe", unit, true)
		m := Classify(claim, []*residentmodels.Resident{r}, nil)
		assert.Equal(t, models.ConfidenceLow, m.Confidence)
		assert.Equal(t, r.ID, m.Resident.ID)
	})

	t.Run("email comparison is case sensitive", func(t *testing.T) {
		r := resident(t, "A@x.com", "Doe", residentmodels.Address{}, false)
		m := Classify(claim, []*residentmodels.Resident{r}, nil)
		assert.Equal(t, models.ConfidenceNone, m.Confidence)
	})

	t.Run("unit and last name ignore case", func(t *testing.T) {
		r := resident(t, "other@x.com", "DOE", residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}, false)
		m := Classify(models.Claim{LastName: "doe", Address: residentmodels.Address{Phase: "1", Block: "3", Lot: "12"}}, nil, []*residentmodels.Resident{r})
		assert.Equal(t, models.ConfidenceHigh, m.Confidence)
	})

	t.Run("different first name is still high", func(t *testing.T) {
		r := resident(t, "other@x.com", "Doe", unit, false)
		r.FirstName = "John"
		m := Classify(claim, nil, []*residentmodels.Resident{r})
		assert.Equal(t, models.ConfidenceHigh, m.Confidence)
	})

	t.Run("unit match with different last name is none", func(t *testing.T) {
		r := resident(t, "other@x.com", "Smith", unit, false)
		m := Classify(claim, nil, []*residentmodels.Resident{r})
		assert.Equal(t, models.ConfidenceNone, m.Confidence)
	})

	t.Run("linked unit match is low", func(t *testing.T) {
		r := resident(t, "other@x.com", "Doe", unit, true)
		m := Classify(claim, nil, []*residentmodels.Resident{r})
		assert.Equal(t, models.ConfidenceLow, m.Confidence)
	})
}

type failingFinder struct{}

func (failingFinder) FindByEmail(context.Context, string) ([]*residentmodels.Resident, error) {
	return nil, errors.New("db down")
}

func (failingFinder) FindByUnit(context.Context, residentmodels.Address) ([]*residentmodels.Resident, error) {
	return nil, errors.New("db down")
}

func TestMatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("reads from the resident store", func(t *testing.T) {
		store := residentstore.NewInMemory()
		seeded := resident(t, "other@x.com", "Doe", unit, false)
		require.NoError(t, store.Create(ctx, seeded))

		m, err := New(store).Match(ctx, models.Claim{Email: "a@x.com", LastName: "Doe", Address: unit})
		require.NoError(t, err)
		assert.Equal(t, models.ConfidenceHigh, m.Confidence)
		assert.Equal(t, seeded.ID, m.Resident.ID)

		again, err := store.FindByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.False(t, again.IsLinked())
	})

	t.Run("store errors are returned", func(t *testing.T) {
		_, err := New(failingFinder{}).Match(ctx, models.Claim{Email: "a@x.com"})
		require.Error(t, err)
	})
}
