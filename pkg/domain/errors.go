package domain

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned when a scenario is declared without commands.
var ErrNoSources = errors.New("scenario has no command sources")

// ErrNilStateFactory is returned when a scenario has no way to build a fresh state.
var ErrNilStateFactory = errors.New("scenario has no state factory")

// ErrInvalidStepBounds is returned when the random-mode length range is empty.
var ErrInvalidStepBounds = errors.New("invalid step bounds")

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// ViolationKind classifies a fatal failure raised while applying a command.
type ViolationKind string

const (
	// KindInvariant marks a domain invariant that does not hold (a bug in the system under test).
	KindInvariant ViolationKind = "invariant"
	// KindContract marks a transition that check() should have prevented (a bug in the model).
	KindContract ViolationKind = "contract"
)

// ViolationError is the panic value raised by Assertf and Abortf.
type ViolationError struct {
	Kind    ViolationKind
	Message string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s violation: %s", e.Kind, e.Message)
}

// Assertf panics with an invariant violation when cond is false.
func Assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&ViolationError{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)})
}

// Abortf unconditionally panics with a contract violation.
func Abortf(format string, args ...any) {
	panic(&ViolationError{Kind: KindContract, Message: fmt.Sprintf(format, args...)})
}

// AsViolation extracts a ViolationError from a recovered panic value.
func AsViolation(r any) (*ViolationError, bool) {
	switch v := r.(type) {
	case *ViolationError:
		return v, true
	case error:
		var ve *ViolationError
		if errors.As(v, &ve) {
			return ve, true
		}
	}
	return nil, false
}
