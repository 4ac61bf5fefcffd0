package profilescan

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Scrape failure kinds. Every error returned by ProfileScraper.ScrapeProfile
// carries one of these codes.
const (
	EINVALIDURL   = "invalid_url"
	EUNSUPPORTED  = "unsupported_platform"
	ESESSION      = "session_acquisition_failed"
	ENAVIGATION   = "navigation_failed"
	EEXTRACTION   = "extraction_error"
	ESANITIZE     = "sanitization_error"
	EAUTHREQUIRED = "auth_required"
)

// Error represents an application-specific error. The optional Err field
// holds the underlying cause and is exposed through Unwrap.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profilescan error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("profilescan error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code and message that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsScrapeFailure reports whether err carries one of the scrape failure kinds.
func IsScrapeFailure(err error) bool {
	switch ErrorCode(err) {
	case EINVALIDURL, EUNSUPPORTED, ESESSION, ENAVIGATION, EEXTRACTION, ESANITIZE, EAUTHREQUIRED:
		return true
	}
	return false
}
