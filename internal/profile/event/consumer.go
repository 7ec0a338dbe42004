package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

// Handler receives toasts taken off the bus.
type Handler interface {
	Handle(ctx context.Context, toast entity.Toast) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// ToastConsumer drains the bus with a pool of workers and hands every toast
// to the handler, retrying with exponential backoff.
type ToastConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	wg          sync.WaitGroup
}

func NewToastConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *ToastConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 50 * time.Millisecond
	}

	return &ToastConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *ToastConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for queued toasts to be delivered.
func (c *ToastConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *ToastConsumer) worker() {
	defer c.wg.Done()

	for toast := range c.bus.Subscribe() {
		c.deliver(toast)
	}
}

func (c *ToastConsumer) deliver(toast entity.Toast) {
	if c.handler == nil {
		return
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), toast)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to deliver toast after retries", "toast_id", toast.ID, "form_id", toast.Channel, "error", err)
			return
		}

		sleepBackoff(backoff)
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}
