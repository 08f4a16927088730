package documents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKnownUnknown(t *testing.T) {
	k := Known("WXY1234")
	v, ok := k.Get()
	assert.True(t, ok)
	assert.Equal(t, "WXY1234", v)
	assert.True(t, k.IsKnown())

	u := Unknown[string]()
	v, ok = u.Get()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.False(t, u.IsKnown())
}

func TestFieldOr(t *testing.T) {
	assert.Equal(t, 42.0, Known(42.0).Or(7))
	assert.Equal(t, 7.0, Unknown[float64]().Or(7))
}

func TestFieldJSONNullRoundTrip(t *testing.T) {
	type payload struct {
		Plate Field[string] `json:"plate"`
		Age   Field[int]    `json:"age"`
	}

	b, err := json.Marshal(payload{Plate: Known("BKV 8821")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"plate":"BKV 8821","age":null}`, string(b))

	var back payload
	require.NoError(t, json.Unmarshal(b, &back))
	plate, ok := back.Plate.Get()
	assert.True(t, ok)
	assert.Equal(t, "BKV 8821", plate)
	assert.False(t, back.Age.IsKnown())
}

func TestFieldUnmarshalTypeMismatch(t *testing.T) {
	var f Field[int]
	assert.Error(t, json.Unmarshal([]byte(`"not a number"`), &f))
}
