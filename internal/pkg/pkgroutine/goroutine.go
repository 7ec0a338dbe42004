package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// ErrPanic wraps a value recovered from a panicking task.
var ErrPanic = errors.New("goroutine panicked")

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   *sync.WaitGroup
	sema chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		wg:   &sync.WaitGroup{},
		sema: make(chan struct{}, maxGoroutine), // Semaphore to limit goroutines
	}
}

// Go schedules a function to run in a goroutine.
//
// It blocks while the manager is at its concurrency limit. If pCtx is done
// before f starts, f is dropped with a warning and onDrop, when not nil, runs
// instead with a context that keeps the values of pCtx but is not canceled.
// Callers that put state into a pending mode use onDrop to settle it.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error, onDrop func(ctx context.Context)) {
	select {
	case g.sema <- struct{}{}: // Acquire a semaphore slot
	case <-pCtx.Done():
		slog.WarnContext(pCtx, "goroutine canceled before start", "because", pCtx.Err())
		g.drop(pCtx, onDrop)
		return
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			<-g.sema // Release semaphore slot

			if rvr := recover(); rvr != nil {
				slog.ErrorContext(pCtx, "panic occurred in goroutine", "because", rvr, "stack", string(debug.Stack()))
				g.collect(fmt.Errorf("%w: %v", ErrPanic, rvr))
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
			g.drop(pCtx, onDrop)
		default:
			if err := f(pCtx); err != nil {
				g.collect(err)
			}
		}
	}()
}

func (g *Manager) drop(pCtx context.Context, onDrop func(ctx context.Context)) {
	if onDrop != nil {
		onDrop(context.WithoutCancel(pCtx))
	}
}

// Wait blocks until all scheduled goroutines finish and returns the errors
// collected since the previous Wait.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	err := errors.Join(g.errs...)
	g.errs = nil

	return err
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}
