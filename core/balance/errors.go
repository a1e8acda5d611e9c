package balance

import (
	"errors"
	"fmt"
)

var (
	// ErrDataLoad reports a missing, unreadable or malformed input table.
	ErrDataLoad = errors.New("data load failed")
	// ErrParse reports a timestamp that does not match the expected layout.
	ErrParse = errors.New("timestamp parse failed")
	// ErrDivisionByZero is returned when the renewable sum used as the
	// scaling denominator is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnknownColumn is returned when a transformation names a column the
	// table does not have.
	ErrUnknownColumn = errors.New("unknown column")
)

// LoadError wraps the cause of a failed load together with its source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrDataLoad.
func (e *LoadError) Is(target error) bool { return target == ErrDataLoad }

// ParseError identifies the first cell that failed timestamp parsing.
type ParseError struct {
	Column string
	Row    int
	Value  string
	Layout string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %s row %d: value %q does not match layout %q", e.Column, e.Row, e.Value, e.Layout)
}

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
