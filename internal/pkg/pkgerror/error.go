package pkgerror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
)

var (
	// ErrNotFound indicates that the requested resource could not be found.
	ErrNotFound = errors.New("resource not found")
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Server-side errors (e.g., upstream or network issues).
	TypeBusiness               // Business logic errors (e.g., domain rule violations).
	TypeValidation             // Validation errors (e.g., input validation failures).
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal      Code = iota // Internal or unspecified error.
	CodeInvalidFormat             // Error code for invalid format.
	CodeInvalidInput              // Error code for invalid input.
	CodeNotFound                  // Error code for resource not found.
	CodeConflict                  // Error code for conflict situations.
	CodeUnauthorized              // Error code for unauthorized access.
	CodeForbidden                 // Error code for forbidden actions.
	CodeTimeout                   // Error code for operation timeout.
	CodeUpstream                  // Error code for a rejection by the upstream API.
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	case CodeUpstream:
		return "ERROR_CODE_UPSTREAM"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying a message, a
// high-level type, a stable code and the error codes sent to clients in the
// response envelope.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	detail  []pkgerrtext.Code
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	if e.errType == TypeValidation {
		return "Validation violation"
	}

	if e.errType == TypeBusiness {
		return "Logical business not meet with requirement"
	}

	if e.errType == TypeServer {
		return "Internal error"
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Message: %s, Detail: %v, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.msg,
		e.detail,
		e.err,
	)
}

// Msg returns the error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Detail returns the envelope error codes. Errors built without explicit
// codes fall back to a generic code derived from Code.
func (e *Error) Detail() []pkgerrtext.Code {
	if len(e.detail) > 0 {
		return e.detail
	}

	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput:
		return []pkgerrtext.Code{pkgerrtext.CodeRequestInvalidBody}
	case CodeNotFound:
		return []pkgerrtext.Code{pkgerrtext.CodeNotFound}
	case CodeUnauthorized:
		return []pkgerrtext.Code{pkgerrtext.CodeAuthNotAuthenticated}
	case CodeUpstream, CodeTimeout:
		return []pkgerrtext.Code{pkgerrtext.CodeRequestDidNotSucceed}
	default:
		return []pkgerrtext.Code{pkgerrtext.CodeInternal}
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeConflict:
		return http.StatusConflict
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func new(err error, msg string, et Type, code Code, detail ...pkgerrtext.Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code, detail: detail}
}

// NewServer creates a server-type error with the provided error.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the specified message, code
// and optional envelope error codes.
func NewBusiness(msg string, code Code, detail ...pkgerrtext.Code) error {
	return new(nil, msg, TypeBusiness, code, detail...)
}

// NewInvalidInput creates a validation error for invalid input with an
// underlying error and optional envelope error codes.
func NewInvalidInput(err error, detail ...pkgerrtext.Code) error {
	return new(err, "validation error", TypeValidation, CodeInvalidInput, detail...)
}

// NewInvalidFormat creates a validation error for an invalid request body format.
func NewInvalidFormat() error {
	return new(nil, "invalid request body", TypeValidation, CodeInvalidFormat, pkgerrtext.CodeRequestInvalidBody)
}

// NewUpstream creates an error for a request the upstream API rejected,
// keeping the codes it reported.
func NewUpstream(detail ...pkgerrtext.Code) error {
	return new(nil, "upstream rejected request", TypeServer, CodeUpstream, detail...)
}
