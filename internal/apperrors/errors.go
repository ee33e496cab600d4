package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates that no actor identity was resolved for a write operation.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrRateUnavailable indicates that no exchange rate is available and no fallback
// is configured. Financial writes must fail rather than persist amounts converted
// at a guessed rate.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrEmptyCart indicates an attempt to commit a sale without line items.
var ErrEmptyCart = fmt.Errorf("%w: sale must have at least one line item", ErrValidation)

// AppError wraps a lower-level failure with an HTTP-ish status code so handlers
// can map persistence problems without string matching.
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

// InsufficientStockError names the product whose stock could not cover a sale
// line item, with the requested and available quantities at decision time.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// DivisionByZeroError reports a conversion attempted with a zero rate.
// Callers are expected to validate rates before converting.
type DivisionByZeroError struct {
	Amount decimal.Decimal
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cannot convert amount %s with a zero exchange rate", e.Amount)
}
