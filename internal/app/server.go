package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
)

const httpServerCloser = "HTTP Server"

func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		sig := <-sigint
		slog.Info("termination signal received", "signal", sig.String())

		close(terminateChan)
	}()

	return terminateChan
}

// Stop drains the service in order: stop accepting requests, let in-flight
// submissions finish within ctx, cancel what is left, then release
// resources. Toast consumers run after the submissions that feed them.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", httpServerCloser, "error", err)
	}

	slog.InfoContext(ctx, "waiting for in-flight submissions")
	a.waitGoroutines(ctx)

	if a.cancel != nil {
		a.cancel()
	}

	names := make([]string, 0, len(a.closerFn))
	for name := range a.closerFn {
		if name != httpServerCloser {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if err := a.closerFn[name](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

func (a *App) waitGoroutines(ctx context.Context) {
	done := make(chan error, 1)
	go func() { done <- a.goroutine.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
			return
		}
		slog.InfoContext(ctx, "all goroutines have finished successfully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "gave up waiting for goroutines", "error", ctx.Err())
	}
}
