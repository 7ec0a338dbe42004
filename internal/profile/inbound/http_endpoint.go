package inbound

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/biped-mathnews/slugline-web/internal/auth"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Mount(ctx context.Context, r *http.Request) (any, error) {
	view, err := h.uc.Mount(ctx, auth.TokenFromRequest(r))
	if err != nil {
		return nil, err
	}

	return MountResponse{Form: toHTTPForm(view)}, nil
}

func (h *HTTPEndpoint) State(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.RequireParam(ctx, "form_id")
	if err != nil {
		return nil, err
	}

	view, err := h.uc.State(ctx, auth.TokenFromRequest(r), id)
	if err != nil {
		return nil, err
	}

	return toHTTPForm(view), nil
}

func (h *HTTPEndpoint) Change(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.RequireParam(ctx, "form_id")
	if err != nil {
		return nil, err
	}

	var req ChangeRequest
	if err := pkgrouter.ReadJSON(r, &req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("name is required"), pkgerrtext.CodeFormInvalidField)
	}

	view, err := h.uc.Change(ctx, auth.TokenFromRequest(r), id, entity.Field(name), req.Value)
	if err != nil {
		return nil, err
	}

	return toHTTPForm(view), nil
}

func (h *HTTPEndpoint) Submit(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.RequireParam(ctx, "form_id")
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Submit(ctx, auth.TokenFromRequest(r), id)
	if err != nil {
		return nil, err
	}

	return SubmitResponse{
		Outcome: string(result.Outcome),
		Form:    toHTTPForm(result.Form),
	}, nil
}

func (h *HTTPEndpoint) Toasts(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.RequireParam(ctx, "form_id")
	if err != nil {
		return nil, err
	}

	toasts, err := h.uc.Toasts(ctx, auth.TokenFromRequest(r), id)
	if err != nil {
		return nil, err
	}

	out := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, Toast{ID: t.ID, Body: t.Body, DelayMS: t.Delay.Milliseconds()})
	}

	return ToastsResponse{Toasts: out}, nil
}

func (h *HTTPEndpoint) Unmount(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.RequireParam(ctx, "form_id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.Unmount(ctx, auth.TokenFromRequest(r), id); err != nil {
		return nil, err
	}

	return nil, nil
}
