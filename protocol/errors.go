package protocol

import (
	"errors"
	"fmt"
)

// BusError reports a register transfer that failed or completed fewer
// messages than expected.
type BusError struct {
	// Op is "read" or "write"
	Op string

	// Reg is the register addressed by the transfer
	Reg Register

	// Want and Got are the expected and completed message counts
	Want int
	Got  int

	// Err is the underlying transfer error, if any
	Err error
}

func (e *BusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bus %s at register %s failed: %v", e.Op, e.Reg, e.Err)
	}
	return fmt.Sprintf("bus %s at register %s: %d of %d messages transferred",
		e.Op, e.Reg, e.Got, e.Want)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// IsBusError returns true if err is or wraps a BusError.
func IsBusError(err error) bool {
	var be *BusError
	return errors.As(err, &be)
}

// ParseKind classifies a ParseError.
type ParseKind int

const (
	// InvalidInteger means an attribute write was not a valid integer
	InvalidInteger ParseKind = iota + 1

	// InvalidHex means a MAC string did not decode to exactly six bytes
	InvalidHex
)

func (k ParseKind) String() string {
	switch k {
	case InvalidInteger:
		return "invalid integer"
	case InvalidHex:
		return "invalid hex MAC address"
	default:
		return fmt.Sprintf("parse kind %d", int(k))
	}
}

// ParseError reports textual input rejected before any bus access.
type ParseError struct {
	Kind  ParseKind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a ParseError of the given
// kind.
func IsParseError(err error, kind ParseKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
