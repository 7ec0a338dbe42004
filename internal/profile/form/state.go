package form

import (
	"maps"
	"slices"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

// State is the aggregate form state. Treat it as immutable: Reduce returns a
// fresh copy and never touches its input.
type State struct {
	Values        map[entity.Field]string
	Errors        map[entity.ErrorKey][]pkgerrtext.Code
	GeneralErrors []pkgerrtext.Code
	IsSubmitting  bool
}

// NewState returns the state of a freshly mounted form.
func NewState() State {
	return State{
		Values: map[entity.Field]string{},
		Errors: map[entity.ErrorKey][]pkgerrtext.Code{},
	}
}

// Value returns the current value of f.
func (s State) Value(f entity.Field) string {
	return s.Values[f]
}

// FieldErrors returns a copy of the errors recorded under k.
func (s State) FieldErrors(k entity.ErrorKey) []pkgerrtext.Code {
	return slices.Clone(s.Errors[k])
}

// AllErrors returns the union of all field errors, in error key order.
func (s State) AllErrors() []pkgerrtext.Code {
	var all []pkgerrtext.Code
	for _, k := range entity.ErrorKeys() {
		all = append(all, s.Errors[k]...)
	}
	return all
}

// HasErrors reports whether any field error is recorded. General errors
// come from the server and do not block a new attempt.
func (s State) HasErrors() bool {
	for _, codes := range s.Errors {
		if len(codes) > 0 {
			return true
		}
	}
	return false
}

// ChangedPassword builds the update request body from the current values.
func (s State) ChangedPassword() entity.ChangedPassword {
	return entity.ChangedPassword{
		CurPassword:    s.Values[entity.FieldCurPassword],
		NewPassword:    s.Values[entity.FieldNewPassword],
		RepeatPassword: s.Values[entity.FieldRepeatPassword],
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	next := State{
		Values:        maps.Clone(s.Values),
		Errors:        make(map[entity.ErrorKey][]pkgerrtext.Code, len(s.Errors)),
		GeneralErrors: slices.Clone(s.GeneralErrors),
		IsSubmitting:  s.IsSubmitting,
	}
	if next.Values == nil {
		next.Values = map[entity.Field]string{}
	}
	for k, codes := range s.Errors {
		next.Errors[k] = slices.Clone(codes)
	}
	return next
}
