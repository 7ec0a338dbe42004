package app

import (
	"context"
	"net/http"

	"github.com/biped-mathnews/slugline-web/internal/auth"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgconfig"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgroutine"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	formID    pkguid.StringID
	goroutine *pkgroutine.Manager
	texts     *pkgerrtext.Table

	// resources
	upstream *pkgapi.Client
	auth     *auth.Provider

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initResources()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
