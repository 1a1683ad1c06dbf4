package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_StartOfDay(t *testing.T) {
	got, err := ParseDate("2024-01-15", StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_EndOfDay(t *testing.T) {
	got, err := ParseDate("2024-01-15", EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC), got)
}

func TestParseDate_AnchorsShareCalendarDay(t *testing.T) {
	start, err := ParseDate("2002-06-30", StartOfDay)
	require.NoError(t, err)
	end, err := ParseDate("2002-06-30", EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, DateOf(start), DateOf(end))
}

func TestParseDate_TimestampInput(t *testing.T) {
	got, err := ParseDate("2024-01-15T14:30:00", StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), got)

	// Anchor is ignored when the input already carries a time.
	gotEnd, err := ParseDate("2024-01-15T14:30:00", EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, got, gotEnd)
}

func TestParseDate_TrimsWhitespace(t *testing.T) {
	got, err := ParseDate("  1994-01-01 ", StartOfDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("15/01/2024", StartOfDay)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported date format")
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), DateOf(ts))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-15", FormatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}
