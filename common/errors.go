package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput marks a field value that cannot be read as a number.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInsufficientData marks a field with too few values for a sample variance.
	ErrInsufficientData = errors.New("insufficient data")
	ErrConfiguration    = errors.New("configuration error")
)

type StatsError struct {
	Kind  error
	Op    string
	Key   string
	Field string
	Err   error
}

func (e *StatsError) Error() string {
	parts := []string{e.Kind.Error()}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("key %q", e.Key))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %q", e.Field))
	}
	msg := strings.Join(parts, ": ")
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StatsError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func MalformedInput(op, key, field string, err error) error {
	return &StatsError{Kind: ErrMalformedInput, Op: op, Key: key, Field: field, Err: err}
}

func InsufficientData(key, field string, count int) error {
	return &StatsError{Kind: ErrInsufficientData, Op: "finalize", Key: key, Field: field,
		Err: fmt.Errorf("%d value(s), need at least 2", count)}
}

func ConfigurationError(format string, args ...any) error {
	return &StatsError{Kind: ErrConfiguration, Err: fmt.Errorf(format, args...)}
}
