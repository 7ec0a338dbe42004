package usecase

import (
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/form"
)

// Session is one mounted security form.
type Session struct {
	ID    string
	Token string
	State form.State
}

// SubmitOutcome tells the caller what Submit did.
type SubmitOutcome string

const (
	// SubmitIgnored means a submission was already in flight.
	SubmitIgnored SubmitOutcome = "ignored"
	// SubmitRejected means the form has field errors; nothing was sent.
	SubmitRejected SubmitOutcome = "rejected"
	// SubmitPending means the update request was scheduled.
	SubmitPending SubmitOutcome = "pending"
)

type SubmitResult struct {
	Outcome SubmitOutcome
	Form    FormView
}

// ErrorView is an error code with its display text.
type ErrorView struct {
	Code    pkgerrtext.Code
	Message string
}

// FormView is the read model of a session.
type FormView struct {
	FormID        string
	Values        map[entity.Field]string
	Errors        map[entity.ErrorKey][]ErrorView
	GeneralErrors []ErrorView
	IsSubmitting  bool
	Valid         bool
}
