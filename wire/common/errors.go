package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Kind Definition
// --------------------------------------------------------------------------

// ErrorKind classifies every failure this client can surface. The transport
// and protocol layers never retry or recover - each failure is wrapped into an
// Error carrying its kind and a displayable message.
type ErrorKind uint8

const (
	ErrKUnknown ErrorKind = iota

	// transport errors

	ErrKConnection     // socket could not be established
	ErrKTLSHandshake   // host was reached but the TLS handshake failed or timed out
	ErrKTLSUnavailable // TLS was requested but is disabled in this client
	ErrKWrite          // request could not be written or the write half not shut down
	ErrKRead           // reading the response failed
	ErrKTimeout        // a one-shot read exceeded its deadline

	// protocol errors

	ErrKEncoding     // request could not be serialized
	ErrKValueParsing // response envelope or payload could not be decoded
	ErrKNoResponse   // the server closed the connection without sending data

	// usage errors

	ErrKStoreNotSet      // operation needs a store but the engine has none configured
	ErrKBothKeys         // both key and custom key were provided
	ErrKNoValidInput     // neither key nor custom key (or no bulk input) was provided
	ErrKPointersConflict // both pointer values and pointer metadata were requested
	ErrKInvalidURI       // connection URI could not be parsed
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKConnection:
		return "connection error"
	case ErrKTLSHandshake:
		return "tls handshake error"
	case ErrKTLSUnavailable:
		return "tls unavailable"
	case ErrKWrite:
		return "write error"
	case ErrKRead:
		return "read error"
	case ErrKTimeout:
		return "timeout"
	case ErrKEncoding:
		return "encoding error"
	case ErrKValueParsing:
		return "value parsing error"
	case ErrKNoResponse:
		return "no response"
	case ErrKStoreNotSet:
		return "store not set"
	case ErrKBothKeys:
		return "both key and custom key"
	case ErrKNoValidInput:
		return "no valid input"
	case ErrKPointersConflict:
		return "pointers conflict"
	case ErrKInvalidURI:
		return "invalid uri"
	default:
		return "unknown error"
	}
}

// --------------------------------------------------------------------------
// Error Type
// --------------------------------------------------------------------------

// Error is the error type returned by every layer of this client.
// The message is safe to display or log directly.
type Error struct {
	Kind ErrorKind
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewError creates a new Error with the given kind and formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the ErrorKind from an error. Errors that are not of type
// *Error report ErrKUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKUnknown
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
