package wire

import "fmt"

// DecodeError is the single error type produced while decoding untrusted
// wire data. It carries a plain message describing the first failure; one
// malformed field fails the whole enclosing decode.
type DecodeError struct {
	msg string
}

// NewDecodeError creates a decode error with the given message.
func NewDecodeError(msg string) *DecodeError {
	return &DecodeError{msg: msg}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return "failed to decode protobuf message: " + e.msg
}

// Common decode failures. Kept as constructors rather than sentinel values so
// every site reports through the single DecodeError type.
func errUnexpectedEOF() *DecodeError   { return NewDecodeError("buffer underflow") }
func errInvalidVarint() *DecodeError   { return NewDecodeError("invalid varint") }
func errRecursionLimit() *DecodeError  { return NewDecodeError("recursion limit reached") }
func errDelimitedLength() *DecodeError { return NewDecodeError("delimited length exceeded") }

// EncodeError reports that a bounded encode entry point was handed a buffer
// with insufficient capacity. Size-computing entry points allocate their own
// buffer and never produce it.
type EncodeError struct {
	Required  int
	Available int
}

// NewEncodeError creates a capacity-shortfall encode error.
func NewEncodeError(required, available int) *EncodeError {
	return &EncodeError{Required: required, Available: available}
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode protobuf message: insufficient buffer capacity (required: %d, available: %d)", e.Required, e.Available)
}
