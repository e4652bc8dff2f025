package adt

import (
	"errors"
	"fmt"
)

// Error reports a misuse of an ordered list.
//
// Index errors and corruption are programmer errors and are raised with
// panic(*Error). ElementNotFound is returned as a value since it can come
// from a legitimately malformed graph.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the offending index (IndexOutOfRange only).
	Index int

	// Count is the list length when the error was raised.
	Count int
}

// ErrorCode categorizes list errors.
type ErrorCode string

const (
	// ErrCodeIndexOutOfRange indicates an index outside [0, count).
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeElementNotFound indicates an anchor element absent from the list.
	ErrCodeElementNotFound ErrorCode = "ELEMENT_NOT_FOUND"

	// ErrCodeForeignNode indicates a node handle that belongs to another list.
	ErrCodeForeignNode ErrorCode = "FOREIGN_NODE"

	// ErrCodeCorrupted indicates the count and head/tail links disagree.
	ErrCodeCorrupted ErrorCode = "LIST_CORRUPTED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == ErrCodeIndexOutOfRange {
		return fmt.Sprintf("%s: %s (index=%d, count=%d)", e.Code, e.Message, e.Index, e.Count)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsIndexOutOfRange returns true if err is an index-out-of-range error.
func IsIndexOutOfRange(err error) bool {
	return hasCode(err, ErrCodeIndexOutOfRange)
}

// IsElementNotFound returns true if err is an element-not-found error.
func IsElementNotFound(err error) bool {
	return hasCode(err, ErrCodeElementNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

func indexOutOfRange(index, count int) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("accepted range is [0, %d)", count),
		Index:   index,
		Count:   count,
	}
}
