package inbound

import (
	"context"

	"github.com/biped-mathnews/slugline-web/internal/issues/entity"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
)

type uc interface {
	List(ctx context.Context) ([]entity.Volume, error)
	Get(ctx context.Context, id int) (entity.Issue, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/issues", end.List)
	r.GET("/issues/:issue_id", end.Get)
}
