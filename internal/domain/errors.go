package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// CapacityError is returned when seat demand exceeds what the vehicle
// still has free, or when a reschedule would strand confirmed seats.
type CapacityError struct {
	RouteID   int64
	Requested int
	Available int
	// Conflicting carries the active-booking count on reschedule rejections.
	Conflicting int
}

func (e CapacityError) Error() string {
	if e.Conflicting > 0 {
		return fmt.Sprintf("kapasitas baru lebih kecil dari %d booking aktif", e.Conflicting)
	}
	return fmt.Sprintf("sisa kursi tidak cukup: diminta %d, tersedia %d", e.Requested, e.Available)
}

// InsufficientBalanceError reports a withdrawal exceeding available funds.
type InsufficientBalanceError struct {
	CompanyID int64
	Requested int64
	Available int64
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo tidak cukup: diminta %d, tersedia %d", e.Requested, e.Available)
}

// InvalidStateError reports a transition attempted against a resource
// no longer in the expected state (e.g. resolving a non-pending
// withdrawal, approving a terminal booking).
type InvalidStateError struct {
	Resource string
	Current  string
	Expected string
}

func (e InvalidStateError) Error() string {
	if e.Current != "" && e.Expected != "" {
		return fmt.Sprintf("%s is %s, expected %s", e.Resource, e.Current, e.Expected)
	}
	return fmt.Sprintf("%s not in a valid state", e.Resource)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsInsufficientBalance(err error) bool {
	var target InsufficientBalanceError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target InvalidStateError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
