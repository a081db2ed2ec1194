package weather

import "fmt"

// ErrorKind classifies a failed tool call.
type ErrorKind string

const (
	// KindValidation means the caller supplied bad input. Never retried,
	// surfaced verbatim.
	KindValidation ErrorKind = "validation_error"
	// KindNetwork means the outbound request never produced a response
	// (connection refused, DNS failure, timeout).
	KindNetwork ErrorKind = "network_error"
	// KindUpstream means the provider answered with a non-2xx status.
	KindUpstream ErrorKind = "upstream_error"
	// KindParse means the provider body was not valid JSON.
	KindParse ErrorKind = "parse_error"
	// KindFormat means the decoded payload was missing an expected field,
	// which indicates an upstream contract change rather than caller misuse.
	KindFormat ErrorKind = "format_error"
)

// Error is the single error type crossing the adapter boundary.
type Error struct {
	Kind    ErrorKind
	Field   string // offending input field, validation errors only
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError reports bad caller input on the named field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewNetworkError reports a transport-level failure.
func NewNetworkError(message string) *Error {
	return &Error{Kind: KindNetwork, Message: message}
}

// NewUpstreamError reports a non-2xx provider response.
func NewUpstreamError(statusCode int, status string) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf("upstream returned %d %s", statusCode, status)}
}

// NewParseError reports an undecodable provider body.
func NewParseError(message string) *Error {
	return &Error{Kind: KindParse, Message: message}
}

// NewFormatError reports an unexpected payload shape.
func NewFormatError(message string) *Error {
	return &Error{Kind: KindFormat, Message: message}
}

// KindOf extracts the kind from an error, defaulting to KindNetwork for
// plain transport errors that were not wrapped.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindNetwork
}
