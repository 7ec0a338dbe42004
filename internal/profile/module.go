package profile

import (
	"context"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/auth"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgconfig"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgroutine"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkguid"
	"github.com/biped-mathnews/slugline-web/internal/profile/event"
	"github.com/biped-mathnews/slugline-web/internal/profile/inbound"
	"github.com/biped-mathnews/slugline-web/internal/profile/store"
	"github.com/biped-mathnews/slugline-web/internal/profile/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	Auth      *auth.Provider
	Texts     *pkgerrtext.Table
	FormID    pkguid.StringID
	ToastID   pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	storage := store.NewInMemoryStore(nil)
	bus := event.NewBus(256)
	consumer := event.NewToastConsumer(bus, storage, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("notifications.workers")),
		MaxRetries:  3,
		BaseBackoff: 50 * time.Millisecond,
	})
	consumer.Start()

	if dep.ToastID == nil {
		dep.ToastID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Store:      storage,
		Notifier:   bus,
		Runner:     dep.Goroutine,
		Sessions:   sessions{provider: dep.Auth},
		FormID:     dep.FormID,
		ToastID:    dep.ToastID,
		Texts:      dep.Texts,
		ToastDelay: dep.Config.GetDuration("notifications.delay"),
		RootCtx:    dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return consumer.Stop, nil
}

type sessions struct {
	provider *auth.Provider
}

func (s sessions) ForToken(token string) usecase.Poster {
	return s.provider.ForToken(token)
}
