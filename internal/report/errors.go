package report

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	LexError Kind = iota
	ParseError
)

var kindNames = [...]string{
	LexError:   "LexError",
	ParseError: "ParseError",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// SourceError is a diagnostic anchored to the byte span
// [Offset, Offset+Length) of a source buffer.
type SourceError struct {
	Kind    Kind
	Message string
	Details string
	Offset  uint32
	Length  uint32
}

func NewLexError(offset, length uint32, message string) SourceError {
	return SourceError{
		Kind:    LexError,
		Message: message,
		Offset:  offset,
		Length:  length,
	}
}

func NewLexErrorf(offset, length uint32, format string, a ...any) SourceError {
	return NewLexError(offset, length, fmt.Sprintf(format, a...))
}

func NewParseError(offset, length uint32, message string) SourceError {
	return SourceError{
		Kind:    ParseError,
		Message: message,
		Offset:  offset,
		Length:  length,
	}
}

func (e SourceError) WithDetails(details string) SourceError {
	e.Details = details
	return e
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s(%s) at offset %d", e.Kind, e.Message, e.Offset)
}

// ErrAllocation marks a failure to reserve backing storage.
var ErrAllocation = errors.New("allocation failure")

type AllocationError struct {
	Op   string
	Size uint64
}

func NewAllocationError(op string, size uint64) *AllocationError {
	return &AllocationError{Op: op, Size: size}
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: cannot reserve %d bytes: %s", e.Op, e.Size, ErrAllocation)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocation
}
