package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/biped-mathnews/slugline-web/internal/issues"
	"github.com/biped-mathnews/slugline-web/internal/profile"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.profile.enabled") {
		closer, err := profile.New(profile.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			Auth:      a.auth,
			Texts:     a.texts,
			FormID:    a.formID,
			ToastID:   a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module profile", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			a.addCloser("Profile", closer)
		}
	}

	if a.config.GetBool("modules.issues.enabled") {
		if err := issues.New(issues.Dependency{
			Router:   a.router,
			Upstream: a.upstream,
		}); err != nil {
			slog.Error("failed to init module issues", "error", err)
			os.Exit(1)
		}
	}
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn[name] = fn
}
