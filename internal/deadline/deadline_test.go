package deadline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-manager/internal/model"
)

var now = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func TestParse_Success(t *testing.T) {
	got, err := Parse("11-06-2025 18:45", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 11, 18, 45, 0, 0, time.UTC), got)
}

func TestParse_InvalidFormat(t *testing.T) {
	for _, input := range []string{"", "2025-06-11 18:45", "11-06-2025", "32-01-2026 10:00", "tomorrow"} {
		_, err := Parse(input, now)
		require.Error(t, err, input)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, input, verr.Input)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	}
}

func TestParse_NotInFuture(t *testing.T) {
	_, err := Parse("10-06-2025 09:30", now)
	assert.ErrorIs(t, err, ErrNotInFuture, "deadline equal to now is not in the future")

	_, err = Parse("01-01-2020 00:00", now)
	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestCheckAgainstCreated(t *testing.T) {
	created := now
	assert.NoError(t, CheckAgainstCreated(created, created))
	assert.NoError(t, CheckAgainstCreated(created.Add(time.Hour), created))

	err := CheckAgainstCreated(created.Add(-24*time.Hour), created)
	assert.ErrorIs(t, err, ErrBeforeCreation)
	assert.ErrorIs(t, err, model.ErrDeadlineBeforeCreation)
}

func TestCheckFuture(t *testing.T) {
	assert.NoError(t, CheckFuture(now.Add(time.Minute), now))
	assert.ErrorIs(t, CheckFuture(now, now), ErrNotInFuture)
}

func TestFormatForDisplay(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 5, 0, 0, time.UTC)

	assert.Equal(t, "December 31, 2025 23:05", FormatForDisplay(ts, false, model.StatusCompleted))
	assert.Equal(t, "December 31, 2025 23:05", FormatForDisplay(ts, true, model.StatusActive))
	assert.Equal(t, "December 31, 2025 23:05", FormatForDisplay(ts, true, model.StatusPostponed))
	assert.Equal(t, NoDeadlineMarker, FormatForDisplay(ts, true, model.StatusCompleted))
	assert.Equal(t, NoDeadlineMarker, FormatForDisplay(ts, true, model.StatusTermless))
}

func TestFormatInput_RoundTrip(t *testing.T) {
	ts := time.Date(2025, 7, 4, 8, 0, 0, 0, time.UTC)
	got, err := Parse(FormatInput(ts), now)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}
