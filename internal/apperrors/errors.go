package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnauthenticated indicates the caller presented no valid credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates an authenticated caller acting outside its scope.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrConflict indicates a duplicate natural key or an already existing resource.
var ErrConflict = errors.New("resource already exists")

// ErrInvalidState indicates an illegal state machine transition.
var ErrInvalidState = errors.New("invalid state transition")

// ErrPostingFailed indicates the atomic ledger posting step failed and was
// rolled back. Safe to retry.
var ErrPostingFailed = errors.New("ledger posting failed")

// ErrReconciliationMismatch indicates a closed ledger does not match the
// independently recomputed totals.
var ErrReconciliationMismatch = errors.New("reconciliation mismatch")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and context alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// ReconciliationMismatchError reports the computed discrepancies when a
// ledger fails reconciliation. BalanceDiscrepancy is the difference between
// the stored closing balance and opening + income - expense; TrialBalanceGap
// is sum(debits) - sum(credits) for the period.
type ReconciliationMismatchError struct {
	LedgerID           string
	BalanceDiscrepancy decimal.Decimal
	TrialBalanceGap    decimal.Decimal
}

func (e *ReconciliationMismatchError) Error() string {
	return fmt.Sprintf("reconciliation mismatch for ledger %s: balance discrepancy %s, trial balance gap %s",
		e.LedgerID, e.BalanceDiscrepancy.String(), e.TrialBalanceGap.String())
}

func (e *ReconciliationMismatchError) Unwrap() error {
	return ErrReconciliationMismatch
}
