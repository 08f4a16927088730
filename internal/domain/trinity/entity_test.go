package trinity

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResultsMarshalPreservesOrder(t *testing.T) {
	results := CheckResults{
		outcome("VEH-002", false, 1.0, SeverityCritical),
		outcome("ID-001", true, 0.95, SeverityCritical, "Identity mismatch"),
		skipped("LOG-003", SeverityMedium),
	}

	b, err := json.Marshal(results)
	require.NoError(t, err)

	// object keys stay in evaluation order, not alphabetical
	var keys []string
	dec := json.NewDecoder(bytes.NewReader(b))
	_, err = dec.Token()
	require.NoError(t, err)
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var o Outcome
		require.NoError(t, dec.Decode(&o))
	}
	assert.Equal(t, []string{"VEH-002", "ID-001", "LOG-003"}, keys)
}

func TestCheckResultsRoundTrip(t *testing.T) {
	in := CheckResults{
		outcome("ID-001", true, 0.95, SeverityCritical, "Identity mismatch", "Stolen ID suspected"),
		skipped("VEH-001", SeverityHigh),
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out CheckResults
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 2)
	assert.Equal(t, in[0].CheckID, out[0].CheckID)
	assert.Equal(t, in[0].RedFlags, out[0].RedFlags)
	assert.True(t, out[0].Failed())
	assert.Equal(t, StatusSkipped, out[1].Status)
	assert.Nil(t, out[1].IsPass)
}

func TestCheckResultsUnmarshalRejectsNonObject(t *testing.T) {
	var out CheckResults
	assert.Error(t, json.Unmarshal([]byte(`["ID-001"]`), &out))
}

func TestCheckResultsGet(t *testing.T) {
	results := CheckResults{outcome("LOG-001", true, 0.9, SeverityHigh)}

	o, ok := results.Get("LOG-001")
	assert.True(t, ok)
	assert.Equal(t, "LOG-001", o.CheckID)

	_, ok = results.Get("LOG-099")
	assert.False(t, ok)
}

func TestWeightsFor(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 40.0, w.For(SeverityCritical))
	assert.Equal(t, 20.0, w.For(SeverityHigh))
	assert.Equal(t, 10.0, w.For(SeverityMedium))
	assert.Equal(t, 5.0, w.For(SeverityLow))
	assert.Equal(t, 0.0, w.For(Severity("UNKNOWN")))
}
