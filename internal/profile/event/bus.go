package event

import (
	"context"
	"errors"
	"sync"

	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
)

var ErrBusClosed = errors.New("toast bus is closed")

// Bus is a buffered in-process queue of toasts.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.Toast
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.Toast, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, toast entity.Toast) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- toast:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.Toast {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
