package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote call failure. Components decide local-state
// impact from the kind alone; the facade never swallows errors.
type Kind int

const (
	// KindUnknown covers failures that fit no other class.
	KindUnknown Kind = iota
	// KindAuthentication is a 401-class failure; the session token is no
	// longer valid and must be cleared.
	KindAuthentication
	// KindAuthorization is a 403-class failure; the session is retained.
	KindAuthorization
	// KindServer is a 5xx failure; state is retained, retry is manual.
	KindServer
	// KindNetwork is no-response or timeout; state is retained, retry is
	// manual.
	KindNetwork
	// KindBusiness is a well-formed rejection from the server, e.g. stock
	// exhausted. The server's message is surfaced verbatim.
	KindBusiness
)

// String returns the kind's name for logging.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Error is a classified remote call failure carrying the server-supplied
// message where one exists.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // server-supplied message, may be empty
	Err     error  // underlying cause
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote %s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("remote %s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error.
func New(kind Kind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}

// KindOf extracts the classification from err, or KindUnknown when err is
// not a remote error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// IsAuthentication reports whether err is a 401-class failure.
func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }

// IsNetwork reports whether err is a connectivity failure or timeout.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// Message returns the server-supplied message from err, or the empty string.
// Used to surface business rejections verbatim.
func Message(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
