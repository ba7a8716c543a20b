// Package shop defines the error kinds shared by the flower shop packages.
//
// Every error renders as "[CODE] message" so that operators can grep logs
// and API responses by code.
package shop

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error codes.
const (
	CodeInvalidOrder       = "E001"
	CodeOutOfStock         = "I001"
	CodeExpired            = "I002"
	CodeInvalidFlower      = "I003"
	CodeNotFound           = "I007"
	CodeEmptyName          = "F002"
	CodeInvalidName        = "F003"
	CodeNonPositivePrice   = "F004"
	CodeNegativeQuantity   = "F006"
	CodeRollbackIncomplete = "L003"
)

// ErrFlowerNotFound is matched by every NotFoundError via errors.Is.
var ErrFlowerNotFound = errors.New("flower not found")

// InvalidFlowerDataError reports a malformed flower attribute.
type InvalidFlowerDataError struct {
	Code   string
	Field  string
	Reason string
}

func (e *InvalidFlowerDataError) Error() string {
	return format(e.Code, e.Reason)
}

// InvalidOrderError reports malformed order input or a failed order.
// Err, when set, is the failure that caused it.
type InvalidOrderError struct {
	Reason string
	Err    error
}

func (e *InvalidOrderError) Error() string {
	return format(CodeInvalidOrder, "Invalid order: "+e.Reason)
}

func (e *InvalidOrderError) Unwrap() error { return e.Err }

// OutOfStockError reports a request larger than the available stock.
type OutOfStockError struct {
	Flower    string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return format(CodeOutOfStock, fmt.Sprintf("Insufficient stock for %s. Requested: %d, Available: %d.",
		e.Flower, e.Requested, e.Available))
}

// ExpiredFlowerError reports stock that is present but past its freshness window.
type ExpiredFlowerError struct {
	Flower    string
	ExpiresAt time.Time
}

func (e *ExpiredFlowerError) Error() string {
	return format(CodeExpired, fmt.Sprintf("Flower '%s' has expired. Freshness date: %s",
		e.Flower, e.ExpiresAt.Format(time.DateOnly)))
}

// NotFoundError reports a flower name absent from the inventory.
type NotFoundError struct {
	Flower string
}

func (e *NotFoundError) Error() string {
	return format(CodeNotFound, "Flower not found: "+e.Flower)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrFlowerNotFound }

// RollbackFailure is one restoration that could not be applied.
type RollbackFailure struct {
	Flower   string
	Quantity int
	Err      error
}

// RollbackError reports compensation that left the inventory inconsistent.
type RollbackError struct {
	Failed []RollbackFailure
}

func (e *RollbackError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		parts = append(parts, fmt.Sprintf("%d %s (%v)", f.Quantity, f.Flower, f.Err))
	}
	return format(CodeRollbackIncomplete, "Inventory rollback incomplete: "+strings.Join(parts, "; "))
}

func (e *RollbackError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// Code returns the code of the first shop error in err's chain, or "".
func Code(err error) string {
	var (
		flowerErr   *InvalidFlowerDataError
		orderErr    *InvalidOrderError
		stockErr    *OutOfStockError
		expiredErr  *ExpiredFlowerError
		notFoundErr *NotFoundError
		rollbackErr *RollbackError
	)
	switch {
	case errors.As(err, &flowerErr):
		return flowerErr.Code
	case errors.As(err, &orderErr):
		return CodeInvalidOrder
	case errors.As(err, &stockErr):
		return CodeOutOfStock
	case errors.As(err, &expiredErr):
		return CodeExpired
	case errors.As(err, &notFoundErr):
		return CodeNotFound
	case errors.As(err, &rollbackErr):
		return CodeRollbackIncomplete
	}
	return ""
}

func format(code, msg string) string {
	if code == "" {
		return msg
	}
	return "[" + code + "] " + msg
}
