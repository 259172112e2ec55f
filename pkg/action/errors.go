package action

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/multierr"
)

var (
	ErrNilFactory      = errors.New("action: nil factory")
	ErrNilAction       = errors.New("action: factory returned nil action")
	ErrUnitNotFound    = errors.New("action: unit not found")
	ErrIndexOutOfRange = errors.New("action: index out of range")
)

// BuildError reports a unit that could not be constructed. Index is the
// entry position; the fault-containment unit reports -1.
type BuildError struct {
	Index int
	Name  string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("build unit #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("build unit #%d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking unit.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("unit panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	switch v := reflect.ValueOf(i); v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// GetErrors flattens joined errors, including multierr ones.
func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		return e.Unwrap()
	}

	return multierr.Errors(err)
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
