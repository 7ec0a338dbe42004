package inbound

import (
	"context"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/usecase"
)

type uc interface {
	Mount(ctx context.Context, token string) (usecase.FormView, error)
	State(ctx context.Context, token, id string) (usecase.FormView, error)
	Change(ctx context.Context, token, id string, field entity.Field, value string) (usecase.FormView, error)
	Submit(ctx context.Context, token, id string) (usecase.SubmitResult, error)
	Toasts(ctx context.Context, token, id string) ([]entity.Toast, error)
	Unmount(ctx context.Context, token, id string) error
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/profile/security", end.Mount, pkgrouter.NoStore)
	r.GET("/profile/security/:form_id", end.State, pkgrouter.NoStore)
	r.PATCH("/profile/security/:form_id", end.Change, pkgrouter.NoStore)
	r.DELETE("/profile/security/:form_id", end.Unmount, pkgrouter.NoStore)
	r.POST("/profile/security/:form_id/submit", end.Submit, pkgrouter.NoStore)
	r.GET("/profile/security/:form_id/toasts", end.Toasts, pkgrouter.NoStore)
}
