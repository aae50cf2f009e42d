package uploader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure an upload attempt can produce.
// Use KindOf to recover the kind from a returned error.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// Validation failures, detected before any serial I/O.
	KindEmptyPayload
	KindNotMultipleOfThree
	KindTooLarge
	// The serial open/write/read itself failed.
	KindTransport
	// No response arrived within the configured window.
	KindTimeout
	// The caller closed the transport while a read was pending.
	KindCancelled
	// The device replied, but not with the expected acknowledgement.
	KindUnexpectedResponse
)

var (
	// ErrTimeout is returned when the device does not acknowledge a frame
	// within the read timeout. The link may still be physically fine.
	ErrTimeout = errors.New("no response from device - check the connection and that the firmware supports pattern upload")

	// ErrCancelled is returned when a pending read is unblocked by the
	// caller closing the transport.
	ErrCancelled = errors.New("upload cancelled")
)

// ValidationError reports why a byte sequence was rejected as pattern data.
type ValidationError struct {
	Kind      ErrorKind
	Size      int
	Remainder int
	Max       int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyPayload:
		return "pattern file is empty"
	case KindNotMultipleOfThree:
		return fmt.Sprintf("pattern size (%v bytes) is not a multiple of 3: each LED needs an R,G,B triplet (%v trailing bytes)", e.Size, e.Remainder)
	case KindTooLarge:
		return fmt.Sprintf("pattern too large (%v bytes, maximum %v)", e.Size, e.Max)
	default:
		return "invalid pattern data"
	}
}

// TransportError reports a failed serial operation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("serial %v failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports an acknowledgement line that did not carry the
// success marker. Text holds the raw response for diagnostics.
type ResponseError struct {
	Text string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("device replied %q, expected %q", e.Text, successMarker)
}

// KindOf maps an error returned by this package onto its ErrorKind.
// A nil error maps to KindNone. Errors that did not originate here are
// reported as KindTransport.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var ve *ValidationError
	var re *ResponseError
	switch {
	case errors.As(err, &ve):
		return ve.Kind
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrCancelled):
		return KindCancelled
	case errors.As(err, &re):
		return KindUnexpectedResponse
	default:
		return KindTransport
	}
}
