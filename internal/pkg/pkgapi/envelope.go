package pkgapi

import (
	"errors"
	"strings"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
)

var (
	// ErrEnvelopeAmbiguous is returned by Validate when an envelope carries
	// both data and error, or marks a failure without an error payload.
	ErrEnvelopeAmbiguous = errors.New("envelope must carry exactly one of data or error")
)

// ErrorPayload is the normalised error body. Server rejections and locally
// synthesised failures share this shape.
type ErrorPayload struct {
	Detail []pkgerrtext.Code `json:"detail"`
}

// NewErrorPayload builds a payload from codes.
func NewErrorPayload(codes ...pkgerrtext.Code) ErrorPayload {
	return ErrorPayload{Detail: codes}
}

// DidNotSucceed is the payload used when a request failed without a
// structured error body.
func DidNotSucceed() ErrorPayload {
	return NewErrorPayload(pkgerrtext.CodeRequestDidNotSucceed)
}

// Error implements the error interface.
func (p ErrorPayload) Error() string {
	if len(p.Detail) == 0 {
		return "api error"
	}
	return "api error: " + strings.Join(pkgerrtext.Strings(p.Detail), ", ")
}

// Has reports whether code is part of the payload.
func (p ErrorPayload) Has(code pkgerrtext.Code) bool {
	for _, c := range p.Detail {
		if c == code {
			return true
		}
	}
	return false
}

// Envelope is the wire shape of every API response.
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *ErrorPayload  `json:"error,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Validate checks the data/error exclusivity of a decoded envelope. Data
// cannot be inspected generically, so a successful envelope is only checked
// for a stray error.
func (e Envelope[T]) Validate() error {
	if e.Success && e.Error != nil {
		return ErrEnvelopeAmbiguous
	}
	if !e.Success && (e.Error == nil || len(e.Error.Detail) == 0) {
		return ErrEnvelopeAmbiguous
	}
	return nil
}

// Result converts the envelope into a Result. Ambiguous envelopes become
// REQUEST.DID_NOT_SUCCEED.
func (e Envelope[T]) Result() Result[T] {
	if err := e.Validate(); err != nil {
		return Err[T](DidNotSucceed())
	}
	if !e.Success {
		return Err[T](*e.Error)
	}
	return Ok(e.Data)
}

// Success wraps data in a successful envelope.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Failure wraps a payload in a failed envelope.
func Failure(payload ErrorPayload) Envelope[any] {
	return Envelope[any]{Success: false, Error: &payload}
}
