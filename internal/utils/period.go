package utils

import (
	"fmt"
	"time"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
)

// PeriodRange returns the half-open UTC timestamp range [start, end) for a
// calendar month, rolling the year over at December.
func PeriodRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end, nil
}

// PreviousPeriod returns the (month, year) immediately before the given one.
func PreviousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
