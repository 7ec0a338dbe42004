package form

import (
	"slices"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

// Reduce applies a to s and returns the next state.
//
// Unknown fields and error keys in SetFieldData are dropped. A successful
// submission forgets the entered secrets along with the errors derived from
// them; a failed one keeps them so the user can correct the input.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch act := a.(type) {
	case SetFieldData:
		for f, v := range act.Values {
			if f.Valid() {
				next.Values[f] = v
			}
		}
		for k, codes := range act.Errors {
			if k.Valid() {
				next.Errors[k] = dedupe(codes)
			}
		}
	case BeginSubmit:
		next.IsSubmitting = true
	case SubmitSucceeded:
		next.IsSubmitting = false
		next.GeneralErrors = nil
		next.Values = map[entity.Field]string{}
		next.Errors = map[entity.ErrorKey][]pkgerrtext.Code{}
	case SubmitFailed:
		next.IsSubmitting = false
		detail := act.Payload.Detail
		if len(detail) == 0 {
			detail = []pkgerrtext.Code{pkgerrtext.CodeRequestDidNotSucceed}
		}
		byKey, general := Route(detail)
		for k, codes := range byKey {
			next.Errors[k] = codes
		}
		next.GeneralErrors = general
	}

	return next
}

// Replay folds actions over s.
func Replay(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func dedupe(codes []pkgerrtext.Code) []pkgerrtext.Code {
	out := make([]pkgerrtext.Code, 0, len(codes))
	for _, c := range codes {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
