package energy

import "errors"

// Failure kinds. Every error returned by Service matches exactly one of these via errors.Is.
var (
	ErrMissingParameter    = errors.New("missing parameter")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrUnknownCity         = errors.New("unknown city")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamContract    = errors.New("upstream contract violation")
)

// Error pairs a failure kind with a message that is safe to show clients.
// Err holds the underlying cause and is never rendered to clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// IsUpstream reports whether err came from a collaborator rather than from input validation.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrUpstreamContract)
}

// ClientMessage returns the message to show a client for err.
// Errors not produced by this package get a generic message.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}
