package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the API boundary can pick a transport
// response without inspecting error strings.
type Kind string

const (
	// KindConfiguration marks missing or invalid startup configuration.
	// Fatal: the process exits before serving.
	KindConfiguration Kind = "configuration"

	// KindStoreConnection marks a failure to reach or operate the graph store.
	KindStoreConnection Kind = "store-connection"

	// KindUpstreamModel marks an embedding or generation provider failure.
	KindUpstreamModel Kind = "upstream-model"

	// KindStageQuery marks a single retrieval stage query failure. These are
	// contained inside the engine and never reach the API boundary.
	KindStageQuery Kind = "stage-query"

	// KindValidation marks a malformed or incomplete client request.
	KindValidation Kind = "validation"
)

// Error carries a kind alongside a message and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the kind from err or any error it wraps. Errors that carry
// no kind report the empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
