package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/form"
	"github.com/biped-mathnews/slugline-web/internal/profile/usecase"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newSession(id string) usecase.Session {
	return usecase.Session{ID: id, Token: "tok", State: form.NewState()}
}

func TestInMemoryStore_CreateSession_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)

	if err := store.CreateSession(ctx, newSession("form-1")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}

	err := store.CreateSession(ctx, newSession("form-1"))
	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("CreateSession() expected pkgerror.Error, got %T", err)
	}
	if perr.Code() != pkgerror.CodeConflict {
		t.Fatalf("CreateSession() error code = %v, want %v", perr.Code(), pkgerror.CodeConflict)
	}
}

func TestInMemoryStore_UpdateSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)
	if err := store.CreateSession(ctx, newSession("form-2")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}

	err := store.UpdateSession(ctx, "form-2", func(sess *usecase.Session) error {
		sess.State = form.Reduce(sess.State, form.BeginSubmit{})
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession() err = %v", err)
	}

	got, err := store.GetSession(ctx, "form-2")
	if err != nil {
		t.Fatalf("GetSession() err = %v", err)
	}
	if !got.State.IsSubmitting {
		t.Fatal("GetSession() expected submitting state")
	}
}

func TestInMemoryStore_UpdateSession_ErrorDiscardsChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)
	if err := store.CreateSession(ctx, newSession("form-3")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}

	boom := errors.New("boom")
	err := store.UpdateSession(ctx, "form-3", func(sess *usecase.Session) error {
		sess.Token = "other"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("UpdateSession() err = %v, want %v", err, boom)
	}

	got, _ := store.GetSession(ctx, "form-3")
	if got.Token != "tok" {
		t.Fatalf("UpdateSession() leaked change, token = %q", got.Token)
	}
}

func TestInMemoryStore_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)

	if _, err := store.GetSession(ctx, "missing"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("GetSession() err = %v, want ErrNotFound", err)
	}
	if err := store.UpdateSession(ctx, "missing", func(*usecase.Session) error { return nil }); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("UpdateSession() err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSession(ctx, "missing"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("DeleteSession() err = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStore_DeleteSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)
	if err := store.CreateSession(ctx, newSession("form-4")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}
	if err := store.Handle(ctx, entity.Toast{ID: "t1", Channel: "form-4", Body: "hi"}); err != nil {
		t.Fatalf("Handle() err = %v", err)
	}

	if err := store.DeleteSession(ctx, "form-4"); err != nil {
		t.Fatalf("DeleteSession() err = %v", err)
	}

	if err := store.UpdateSession(ctx, "form-4", func(*usecase.Session) error { return nil }); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("UpdateSession() after delete err = %v, want ErrNotFound", err)
	}

	toasts, err := store.ListToasts(ctx, "form-4")
	if err != nil {
		t.Fatalf("ListToasts() err = %v", err)
	}
	if len(toasts) != 0 {
		t.Fatalf("ListToasts() = %v, want none", toasts)
	}
}

func TestInMemoryStore_ToastsExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := &manualClock{now: time.Unix(1_700_000_000, 0)}
	store := NewInMemoryStore(clock)
	if err := store.CreateSession(ctx, newSession("form-5")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}

	_ = store.Handle(ctx, entity.Toast{ID: "a", Channel: "form-5", Body: "first", Delay: time.Second})
	_ = store.Handle(ctx, entity.Toast{ID: "b", Channel: "form-5", Body: "second"})
	_ = store.Handle(ctx, entity.Toast{ID: "b", Channel: "form-5", Body: "second"})

	toasts, _ := store.ListToasts(ctx, "form-5")
	if len(toasts) != 2 || toasts[0].ID != "a" || toasts[1].ID != "b" {
		t.Fatalf("ListToasts() = %+v, want [a b]", toasts)
	}

	clock.Advance(time.Second)
	toasts, _ = store.ListToasts(ctx, "form-5")
	if len(toasts) != 1 || toasts[0].ID != "b" {
		t.Fatalf("ListToasts() after 1s = %+v, want [b]", toasts)
	}

	clock.Advance(entity.DefaultToastDelay)
	toasts, _ = store.ListToasts(ctx, "form-5")
	if len(toasts) != 0 {
		t.Fatalf("ListToasts() after default delay = %+v, want none", toasts)
	}
}

func TestInMemoryStore_HandleDropsUnknownChannel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)

	if err := store.Handle(ctx, entity.Toast{ID: "x", Channel: "ghost", Body: "boo"}); err != nil {
		t.Fatalf("Handle() err = %v", err)
	}
	toasts, _ := store.ListToasts(ctx, "ghost")
	if len(toasts) != 0 {
		t.Fatalf("ListToasts() = %v, want none", toasts)
	}
}

func TestInMemoryStore_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore(nil)
	if err := store.CreateSession(ctx, newSession("form-6")); err != nil {
		t.Fatalf("CreateSession() err = %v", err)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		began int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.UpdateSession(ctx, "form-6", func(sess *usecase.Session) error {
				if sess.State.IsSubmitting {
					return nil
				}
				sess.State = form.Reduce(sess.State, form.BeginSubmit{})
				mu.Lock()
				began++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if began != 1 {
		t.Fatalf("expected exactly one submission to begin, got %d", began)
	}
}
