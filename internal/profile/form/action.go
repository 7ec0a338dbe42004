package form

import (
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

// Action is one of SetFieldData, BeginSubmit, SubmitSucceeded or
// SubmitFailed. The set is closed.
type Action interface {
	action()
}

// SetFieldData merges values and replaces the error lists of the named keys.
type SetFieldData struct {
	Values map[entity.Field]string
	Errors map[entity.ErrorKey][]pkgerrtext.Code
}

// BeginSubmit marks a submission as in flight.
type BeginSubmit struct{}

// SubmitSucceeded ends a submission the server accepted.
type SubmitSucceeded struct{}

// SubmitFailed ends a submission with the normalised error payload.
type SubmitFailed struct {
	Payload pkgapi.ErrorPayload
}

func (SetFieldData) action()    {}
func (BeginSubmit) action()     {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
