package models

import (
	"errors"
	"fmt"
)

// Error taxonomy. InvalidInput covers malformed or unknown caller data
// and is never retried; EphemerisUnavailable means no position source
// could produce a value; Computation wraps unexpected internal failures
// so they stay distinct from validation errors at the API boundary.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")
	ErrComputation          = errors.New("computation error")
)

// InvalidInputError carries the offending field.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(field, message string) error {
	return &InvalidInputError{Field: field, Message: message}
}

// UnknownBodyError is returned for unrecognized body identifiers.
type UnknownBodyError struct {
	Name string
}

func (e *UnknownBodyError) Error() string { return fmt.Sprintf("unknown body: %s", e.Name) }
func (e *UnknownBodyError) Unwrap() error { return ErrInvalidInput }

// UnknownHouseSystemError is returned for unsupported house system codes.
type UnknownHouseSystemError struct {
	Name string
}

func (e *UnknownHouseSystemError) Error() string { return fmt.Sprintf("unknown house system: %s", e.Name) }
func (e *UnknownHouseSystemError) Unwrap() error { return ErrInvalidInput }

// ComputationError wraps an unexpected failure inside an aggregation step.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *ComputationError) Unwrap() error { return e.Err }

func (e *ComputationError) Is(target error) bool { return target == ErrComputation }

// WrapComputation tags an internal error with the failing operation.
func WrapComputation(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ComputationError{Op: op, Err: err}
}
