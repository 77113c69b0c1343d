package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "gatehouse/pkg/domain"
)

func TestAddress(t *testing.T) {
	t.Run("same unit ignores case and padding", func(t *testing.T) {
		a := Address{Phase: "1a", Block: "3", Lot: "12"}
		b := Address{Phase: " 1A", Block: "3 ", Lot: "12", Street: "Other St"}
		assert.True(t, a.SameUnit(b))
		assert.False(t, a.SameUnit(Address{Phase: "1A", Block: "3", Lot: "13"}))
	})

	t.Run("empty only when all unit parts blank", func(t *testing.T) {
		assert.True(t, Address{Street: "Acacia"}.IsEmpty())
		assert.False(t, Address{Lot: "4"}.IsEmpty())
	})

	t.Run("property address synthesis", func(t *testing.T) {
		assert.Equal(t, "Phase 1, Block 3, Lot 12", Address{Phase: "1", Block: "3", Lot: "12"}.PropertyAddress())
		assert.Equal(t, "Block 3, Acacia St", Address{Block: "3", Street: "Acacia St"}.PropertyAddress())
	})
}

func TestNewResident(t *testing.T) {
	now := time.Now()

	r, err := NewResident(id.ResidentID(uuid.New()), "Jane", "Doe", "a@x.com", "", Address{Phase: "1", Block: "3", Lot: "12"}, "", now)
	require.NoError(t, err)
	assert.Equal(t, "Phase 1, Block 3, Lot 12", r.PropertyAddress)
	assert.False(t, r.IsLinked())
	assert.Equal(t, "Jane Doe", r.FullName())

	_, err = NewResident(id.ResidentID(uuid.New()), "", "Doe", "", "", Address{}, "", now)
	assert.Error(t, err)
}

func TestAsOccupant(t *testing.T) {
	acct := id.AccountID(uuid.New())
	r := &Resident{ID: id.ResidentID(uuid.New()), FirstName: "Ann", LastName: "Lee", LinkedAccountID: &acct}

	o := r.AsOccupant()
	assert.Equal(t, r.ID.String(), o.ResidentID)
	assert.Equal(t, "Ann Lee", o.Name)
	assert.Equal(t, acct.String(), o.LinkedAccountID)
}
