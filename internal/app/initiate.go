package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/auth"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgconfig"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgroutine"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkguid"
	"github.com/rs/cors"
)

func defaults() map[string]any {
	return map[string]any{
		"tz":                      "UTC",
		"log.level":               "info",
		"server.address.http":     ":8080",
		"server.cors.origins":     "*",
		"upstream.base_url":       pkgapi.DefaultRoot,
		"upstream.timeout":        "10s",
		"goroutine.max":           100,
		"modules.profile.enabled": true,
		"modules.issues.enabled":  true,
		"notifications.delay":     "3s",
		"notifications.workers":   2,
		"errtext.path":            "",
	}
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, defaults())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if level := cfg.GetString("log.level"); !pkglog.SetLevel(level) {
		slog.Warn("unknown log level, keeping default", "level", level)
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.formID = sf.Strings()

	a.texts = pkgerrtext.Default()
	if path := a.config.GetString("errtext.path"); path != "" {
		texts, err := pkgerrtext.LoadFile(path)
		if err != nil {
			slog.Error("failed to load error texts", "path", path, "error", err)
			os.Exit(1)
		}
		a.texts = texts
	}
}

func (a *App) initResources() {
	a.upstream = pkgapi.NewClient(
		a.config.GetString("upstream.base_url"),
		pkgapi.WithTimeout(a.config.GetDuration("upstream.timeout")),
	)
	a.auth = auth.NewProvider(a.upstream)

	slog.Info("upstream api configured", "base_url", a.upstream.URL(""))
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	origins := a.config.GetArray("server.cors.origins")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn[httpServerCloser] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
