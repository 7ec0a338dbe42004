package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/usecase"
)

type Clock interface {
	Now() time.Time
}

type InMemoryStore struct {
	mu       sync.RWMutex
	clock    Clock
	sessions map[string]*sessionRecord
	inbox    map[string][]inboxEntry
}

type sessionRecord struct {
	mu      sync.Mutex
	sess    usecase.Session
	deleted bool
}

type inboxEntry struct {
	toast     entity.Toast
	expiresAt time.Time
}

func NewInMemoryStore(clock Clock) *InMemoryStore {
	if clock == nil {
		clock = realClock{}
	}

	return &InMemoryStore{
		clock:    clock,
		sessions: make(map[string]*sessionRecord),
		inbox:    make(map[string][]inboxEntry),
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (s *InMemoryStore) CreateSession(ctx context.Context, sess usecase.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return pkgerror.NewBusiness("form session already exists", pkgerror.CodeConflict)
	}

	s.sessions[sess.ID] = &sessionRecord{sess: sess}

	return nil
}

// UpdateSession runs fn on a copy of the session under the session lock and
// stores the copy when fn succeeds.
func (s *InMemoryStore) UpdateSession(ctx context.Context, id string, fn func(sess *usecase.Session) error) error {
	rec, err := s.get(id)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.deleted {
		return pkgerror.ErrNotFound
	}

	next := rec.sess
	if err := fn(&next); err != nil {
		return err
	}
	rec.sess = next

	return nil
}

func (s *InMemoryStore) GetSession(ctx context.Context, id string) (usecase.Session, error) {
	rec, err := s.get(id)
	if err != nil {
		return usecase.Session{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.deleted {
		return usecase.Session{}, pkgerror.ErrNotFound
	}

	return rec.sess, nil
}

// DeleteSession removes the session and its toasts.
func (s *InMemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	rec, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		delete(s.inbox, id)
	}
	s.mu.Unlock()

	if !ok {
		return pkgerror.ErrNotFound
	}

	rec.mu.Lock()
	rec.deleted = true
	rec.mu.Unlock()

	return nil
}

// Handle delivers a toast to its session inbox. Toasts for unknown sessions
// are dropped, and a toast ID already in the inbox is delivered once.
func (s *InMemoryStore) Handle(ctx context.Context, toast entity.Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[toast.Channel]; !ok {
		slog.DebugContext(ctx, "drop toast for unknown form", "form_id", toast.Channel, "toast_id", toast.ID)
		return nil
	}

	entries := s.inbox[toast.Channel]
	if toast.ID != "" && slices.ContainsFunc(entries, func(e inboxEntry) bool { return e.toast.ID == toast.ID }) {
		return nil
	}

	delay := toast.Delay
	if delay <= 0 {
		delay = entity.DefaultToastDelay
	}

	s.inbox[toast.Channel] = append(entries, inboxEntry{
		toast:     toast,
		expiresAt: s.clock.Now().Add(delay),
	})

	return nil
}

// ListToasts returns the unexpired toasts of a channel, oldest first.
func (s *InMemoryStore) ListToasts(ctx context.Context, channel string) ([]entity.Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	entries := slices.DeleteFunc(s.inbox[channel], func(e inboxEntry) bool {
		return !now.Before(e.expiresAt)
	})
	if len(entries) == 0 {
		delete(s.inbox, channel)
		return []entity.Toast{}, nil
	}
	s.inbox[channel] = entries

	toasts := make([]entity.Toast, 0, len(entries))
	for _, e := range entries {
		toasts = append(toasts, e.toast)
	}

	return toasts, nil
}

func (s *InMemoryStore) get(id string) (*sessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
