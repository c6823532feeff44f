package errors

import (
	"errors"
	"fmt"
)

// Base error types
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNumericDegenerate = errors.New("numeric degenerate")
)

// ErrorKind represents the category of error
type ErrorKind string

const (
	KindInvalidArgument   ErrorKind = "invalid_argument"
	KindNumericDegenerate ErrorKind = "numeric_degenerate"
)

// ComputeError is returned by the generator and the metrics calculator.
type ComputeError struct {
	Kind ErrorKind
	Op   string // e.g. "generate_vibration", "maintenance_metrics"
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *ComputeError) Is(target error) bool {
	switch e.Kind {
	case KindInvalidArgument:
		return target == ErrInvalidArgument
	case KindNumericDegenerate:
		return target == ErrNumericDegenerate
	}
	return false
}

func InvalidArgument(op, format string, args ...any) error {
	return &ComputeError{
		Kind: KindInvalidArgument,
		Op:   op,
		Err:  fmt.Errorf(format, args...),
	}
}

func NumericDegenerate(op, format string, args ...any) error {
	return &ComputeError{
		Kind: KindNumericDegenerate,
		Op:   op,
		Err:  fmt.Errorf(format, args...),
	}
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNumericDegenerate(err error) bool {
	return errors.Is(err, ErrNumericDegenerate)
}
