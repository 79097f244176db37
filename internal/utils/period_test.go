package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/utils"
)

func TestPeriodRange(t *testing.T) {
	start, end, err := utils.PeriodRange(3, 2025)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodRangeDecemberRollsOver(t *testing.T) {
	start, end, err := utils.PeriodRange(12, 2024)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodRangeInvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, _, err := utils.PeriodRange(month, 2025)
		require.Error(t, err, "month %d", month)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestPreviousPeriod(t *testing.T) {
	month, year := utils.PreviousPeriod(3, 2025)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2025, year)

	month, year = utils.PreviousPeriod(1, 2025)
	assert.Equal(t, 12, month)
	assert.Equal(t, 2024, year)
}
