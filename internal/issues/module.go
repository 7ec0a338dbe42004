package issues

import (
	"github.com/biped-mathnews/slugline-web/internal/issues/inbound"
	"github.com/biped-mathnews/slugline-web/internal/issues/usecase"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
)

type Dependency struct {
	Router   *pkgrouter.Router
	Upstream pkgapi.Doer
}

func New(dep Dependency) error {
	uc := usecase.New(usecase.Dependency{Upstream: dep.Upstream})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
