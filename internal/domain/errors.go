// Package domain holds the shared error vocabulary of the estimator.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing collection, database or query.
	ErrNotFound = errors.New("not found")
	// ErrInvalidParameter signals an out-of-range analytical parameter
	// (non-positive server count, document count, or selectivity).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMalformedSchema signals a schema definition that cannot be modeled,
	// such as an object field without a nested schema.
	ErrMalformedSchema = errors.New("malformed schema")
	// ErrUnknownQuery signals a catalog query number outside Q1-Q7.
	ErrUnknownQuery = errors.New("unknown query")
)

// InvalidParameterError wraps ErrInvalidParameter with the offending name and value.
type InvalidParameterError struct {
	Name  string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%g", ErrInvalidParameter.Error(), e.Name, e.Value)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// NewInvalidParameter creates an invalid parameter error.
func NewInvalidParameter(name string, value float64) error {
	return &InvalidParameterError{Name: name, Value: value}
}
