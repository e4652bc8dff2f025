package ir

import (
	"errors"
	"fmt"
)

// Error represents a structural error in the IR graph.
//
// NotInParent, NameCollision, AlreadyOwned and InvalidOperand are
// programmer errors: they are raised with panic(*Error) because
// continuing would operate on a corrupted graph. MalformedControlFlow is
// returned to the caller since a well-typed graph can still be assembled
// incorrectly.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Function names the affected function, when known.
	Function string

	// Block labels the offending block (MalformedControlFlow), when known.
	Block string

	// Name is the offending symbol (NameCollision).
	Name string
}

// ErrorCode categorizes IR errors.
type ErrorCode string

const (
	// ErrCodeNotInParent indicates a stale or absent parent back-reference.
	ErrCodeNotInParent ErrorCode = "NOT_IN_PARENT"

	// ErrCodeNameCollision indicates a duplicate name within one scope.
	ErrCodeNameCollision ErrorCode = "NAME_COLLISION"

	// ErrCodeAlreadyOwned indicates inserting a node that already has a parent.
	ErrCodeAlreadyOwned ErrorCode = "ALREADY_OWNED"

	// ErrCodeInvalidOperand indicates an operand that cannot be used.
	ErrCodeInvalidOperand ErrorCode = "INVALID_OPERAND"

	// ErrCodeMalformedControlFlow indicates a missing entry/exit or a
	// control-flow edge that cannot be resolved.
	ErrCodeMalformedControlFlow ErrorCode = "MALFORMED_CONTROL_FLOW"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Block != "":
		return fmt.Sprintf("%s: %s (function=%s, block=%s)", e.Code, e.Message, e.Function, e.Block)
	case e.Function != "":
		return fmt.Sprintf("%s: %s (function=%s)", e.Code, e.Message, e.Function)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// At records b as the block the error is about.
func (e *Error) At(b *BasicBlock) *Error {
	e.Block = b.Name()
	return e
}

// MalformedControlFlow returns a MalformedControlFlow error for fn.
func MalformedControlFlow(fn *Function, format string, args ...any) *Error {
	e := &Error{
		Code:    ErrCodeMalformedControlFlow,
		Message: fmt.Sprintf(format, args...),
	}
	if fn != nil {
		e.Function = fn.Name()
	}
	return e
}

// IsMalformedControlFlow returns true if err is a malformed control flow
// error. Uses errors.As to handle wrapped errors.
func IsMalformedControlFlow(err error) bool { return hasCode(err, ErrCodeMalformedControlFlow) }

// IsNotInParent returns true if err is a not-in-parent error.
func IsNotInParent(err error) bool { return hasCode(err, ErrCodeNotInParent) }

// IsNameCollision returns true if err is a name collision error.
func IsNameCollision(err error) bool { return hasCode(err, ErrCodeNameCollision) }

// IsAlreadyOwned returns true if err is an already-owned error.
func IsAlreadyOwned(err error) bool { return hasCode(err, ErrCodeAlreadyOwned) }

func hasCode(err error, code ErrorCode) bool {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}

func notInParent(kind, name string) *Error {
	return &Error{
		Code:    ErrCodeNotInParent,
		Message: fmt.Sprintf("%s %q does not exist in its parent", kind, name),
	}
}

func alreadyOwned(kind, name string) *Error {
	return &Error{
		Code:    ErrCodeAlreadyOwned,
		Message: fmt.Sprintf("%s %q is already owned by another parent", kind, name),
	}
}
