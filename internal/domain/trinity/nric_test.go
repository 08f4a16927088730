package trinity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNRICDateOfBirth(t *testing.T) {
	dob, ok := nricDateOfBirth("900101-01-1234")
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), dob)

	// years at or below the pivot read as 2000s
	dob, ok = nricDateOfBirth("080515-14-5678")
	require.True(t, ok)
	assert.Equal(t, time.Date(2008, 5, 15, 0, 0, 0, 0, time.UTC), dob)

	dob, ok = nricDateOfBirth("301231-10-9999")
	require.True(t, ok)
	assert.Equal(t, 2030, dob.Year())

	dob, ok = nricDateOfBirth("311231-10-9999")
	require.True(t, ok)
	assert.Equal(t, 1931, dob.Year())
}

func TestNRICDateOfBirthInvalid(t *testing.T) {
	// month 13
	_, ok := nricDateOfBirth("901301-01-1234")
	assert.False(t, ok)

	// 31 February does not exist
	_, ok = nricDateOfBirth("900231-01-1234")
	assert.False(t, ok)

	// too short
	_, ok = nricDateOfBirth("9001")
	assert.False(t, ok)
}

func TestAgeAt(t *testing.T) {
	dob := time.Date(1990, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 34, ageAt(dob, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	// the day before the birthday
	assert.Equal(t, 33, ageAt(dob, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, ageAt(dob, time.Date(1990, 12, 1, 0, 0, 0, 0, time.UTC)))
}
