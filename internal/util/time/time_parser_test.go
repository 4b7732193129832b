package time_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDueDate_WithNil_ReturnsNil(t *testing.T) {
	assert.Nil(t, ParseDueDate(nil))
}

func Test_ParseDueDate_WithEmptyString_ReturnsNil(t *testing.T) {
	assert.Nil(t, ParseDueDate(""))
}

func Test_ParseDueDate_WithRFC3339_ParsesToUTC(t *testing.T) {
	result := ParseDueDate("2026-03-01T10:30:00+02:00")

	require.NotNil(t, result)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), *result)
}

func Test_ParseDueDate_WithDateOnly_ParsesMidnightUTC(t *testing.T) {
	result := ParseDueDate("2026-03-01")

	require.NotNil(t, result)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *result)
}

func Test_ParseDueDate_WithUnixSeconds_Parses(t *testing.T) {
	result := ParseDueDate(int64(1767225600)) // 2026-01-01T00:00:00Z

	require.NotNil(t, result)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *result)
}

func Test_ParseDueDate_WithUnixMilliseconds_Parses(t *testing.T) {
	result := ParseDueDate(float64(1767225600000))

	require.NotNil(t, result)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *result)
}

func Test_ParseDueDate_WithGarbageString_ReturnsNil(t *testing.T) {
	assert.Nil(t, ParseDueDate("next tuesday-ish"))
}

func Test_ParseDueDate_WithUnsupportedType_ReturnsNil(t *testing.T) {
	assert.Nil(t, ParseDueDate(map[string]string{"date": "2026-01-01"}))
}
