package trinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
)

func noopEval(*claims.Claim, documents.Bag) (Outcome, error) {
	return pass(1, "ok"), nil
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register(Definition{ID: "X-001", Evaluate: noopEval}))

	err := c.Register(Definition{ID: "X-001", Evaluate: noopEval})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCheck)

	require.Error(t, c.Register(Definition{ID: "", Evaluate: noopEval}))
	require.Error(t, c.Register(Definition{ID: "X-002"}))

	assert.Equal(t, 1, c.Len())
}

func TestCatalogOrderAndLookup(t *testing.T) {
	c := NewCatalog()
	for _, id := range []string{"A-001", "B-001", "C-001"} {
		require.NoError(t, c.Register(Definition{ID: id, Evaluate: noopEval}))
	}

	defs := c.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "A-001", defs[0].ID)
	assert.Equal(t, "C-001", defs[2].ID)

	def, ok := c.Get("B-001")
	require.True(t, ok)
	assert.Equal(t, "B-001", def.ID)

	_, ok = c.Get("Z-999")
	assert.False(t, ok)
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, 22, c.Len())

	counts := map[Category]int{}
	for _, def := range c.Definitions() {
		counts[def.Category]++
		assert.NotEmpty(t, def.Name, def.ID)
		assert.NotEmpty(t, def.RequiredDocTypes, def.ID)
		assert.NotNil(t, def.Evaluate, def.ID)
	}
	assert.Equal(t, 6, counts[CategoryIdentity])
	assert.Equal(t, 8, counts[CategoryLogic])
	assert.Equal(t, 8, counts[CategoryVehicle])
}
