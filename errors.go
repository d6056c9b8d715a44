package vector

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the outcome of a vector operation. Zero is success.
// Codes below FirstUserCode belong to the container; hooks pick their own
// codes at or above it.
type ErrorCode int

const (
	CodeSuccess ErrorCode = iota
	CodeAllocationFailure
	CodeOutOfRange
	CodeInvalidArgument

	// FirstUserCode is the lowest code available to copy hooks.
	FirstUserCode ErrorCode = 16
	// CodeUnclassified is reported by CodeOf for errors that carry no code.
	CodeUnclassified ErrorCode = -1
)

func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeAllocationFailure:
		return "allocation failure"
	case CodeOutOfRange:
		return "out of range"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeUnclassified:
		return "unclassified"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinel errors, matched with errors.Is.
var (
	ErrAllocation = &Error{Code: CodeAllocationFailure}
	ErrOutOfRange = &Error{Code: CodeOutOfRange}
	ErrInvalid    = &Error{Code: CodeInvalidArgument}
)

// Error is a coded failure. The container returns it for its own failures;
// hooks may return one built with UserError.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := "vector: " + e.Code.String()
	if e.Op != "" {
		msg = "vector: " + e.Op + ": " + e.Code.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so errors.Is(err, ErrAllocation)
// holds for every allocation failure regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// UserError returns a coded error for use by copy hooks. Codes below
// FirstUserCode are reserved; for those an invalid-argument error naming the
// rejected code is returned instead.
func UserError(code ErrorCode) error {
	if code < FirstUserCode {
		return &Error{Code: CodeInvalidArgument, Op: "user_error", Err: fmt.Errorf("code %d is reserved", int(code))}
	}
	return &Error{Code: code}
}

// CodeOf extracts the code carried by err. Nil maps to CodeSuccess and
// errors without a code to CodeUnclassified.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnclassified
}

func newError(code ErrorCode, op string, err error) error {
	return &Error{Code: code, Op: op, Err: err}
}
