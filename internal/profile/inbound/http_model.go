package inbound

import (
	"net/http"

	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/usecase"
)

type ChangeRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Form struct {
	FormID        string                  `json:"form_id"`
	Values        map[string]string       `json:"values"`
	Errors        map[string][]FieldError `json:"errors"`
	GeneralErrors []FieldError            `json:"general_errors"`
	IsSubmitting  bool                    `json:"is_submitting"`
	Valid         bool                    `json:"valid"`
}

type MountResponse struct {
	Form
}

func (MountResponse) StatusCode() int {
	return http.StatusCreated
}

type SubmitResponse struct {
	Outcome string `json:"outcome"`
	Form    Form   `json:"form"`
}

func (r SubmitResponse) StatusCode() int {
	if r.Outcome == string(usecase.SubmitPending) {
		return http.StatusAccepted
	}
	return http.StatusOK
}

type Toast struct {
	ID      string `json:"id"`
	Body    string `json:"body"`
	DelayMS int64  `json:"delay_ms"`
}

type ToastsResponse struct {
	Toasts []Toast `json:"toasts"`
}

func toHTTPForm(v usecase.FormView) Form {
	f := Form{
		FormID:        v.FormID,
		Values:        make(map[string]string, len(v.Values)),
		Errors:        make(map[string][]FieldError, len(v.Errors)),
		GeneralErrors: toFieldErrors(v.GeneralErrors),
		IsSubmitting:  v.IsSubmitting,
		Valid:         v.Valid,
	}
	for field, value := range v.Values {
		f.Values[string(field)] = value
	}
	for _, key := range entity.ErrorKeys() {
		f.Errors[string(key)] = toFieldErrors(v.Errors[key])
	}
	return f
}

func toFieldErrors(views []usecase.ErrorView) []FieldError {
	out := make([]FieldError, 0, len(views))
	for _, v := range views {
		out = append(out, FieldError{Code: string(v.Code), Message: v.Message})
	}
	return out
}
