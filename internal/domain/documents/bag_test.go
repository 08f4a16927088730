package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bagDoc(id string, docType Type, createdAt time.Time) *Document {
	return &Document{ID: id, Type: docType, CreatedAt: createdAt}
}

func TestNewBagLatestWins(t *testing.T) {
	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	bag := NewBag([]*Document{
		bagDoc("first-upload", TypeMyKadFront, older),
		bagDoc("re-upload", TypeMyKadFront, newer),
		bagDoc("police", TypePoliceReport, older),
		nil,
	})

	require.Len(t, bag, 2)
	assert.Equal(t, "re-upload", bag[TypeMyKadFront].ID)
	assert.Equal(t, "police", bag[TypePoliceReport].ID)
}

func TestNewBagKeepsNewerRegardlessOfOrder(t *testing.T) {
	older := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Minute)

	bag := NewBag([]*Document{
		bagDoc("newer", TypeDamagePhoto, newer),
		bagDoc("older", TypeDamagePhoto, older),
	})
	assert.Equal(t, "newer", bag[TypeDamagePhoto].ID)
}

func TestBagHas(t *testing.T) {
	now := time.Now()
	bag := NewBag([]*Document{
		bagDoc("a", TypeMyKadFront, now),
		bagDoc("b", TypePoliceReport, now),
	})

	assert.True(t, bag.Has(TypeMyKadFront))
	assert.True(t, bag.Has(TypeMyKadFront, TypePoliceReport))
	assert.False(t, bag.Has(TypeMyKadFront, TypeDamagePhoto))
	assert.True(t, bag.Has(), "no requirements is trivially satisfied")
}

func TestBagTypesCanonicalOrder(t *testing.T) {
	now := time.Now()
	bag := NewBag([]*Document{
		bagDoc("photo", TypeDamagePhoto, now),
		bagDoc("mykad", TypeMyKadFront, now),
		bagDoc("reg", TypeVehicleRegCard, now),
	})

	assert.Equal(t, []Type{TypeMyKadFront, TypeVehicleRegCard, TypeDamagePhoto}, bag.Types())
}
