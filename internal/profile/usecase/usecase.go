package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkguid"
	"github.com/biped-mathnews/slugline-web/internal/profile/entity"
	"github.com/biped-mathnews/slugline-web/internal/profile/form"
)

type Store interface {
	CreateSession(ctx context.Context, sess Session) error
	UpdateSession(ctx context.Context, id string, fn func(sess *Session) error) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListToasts(ctx context.Context, channel string) ([]entity.Toast, error)
}

type Notifier interface {
	Publish(ctx context.Context, toast entity.Toast) error
}

// Runner runs submissions in the background. onDrop runs instead of f when
// f is never started, for instance during shutdown.
type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error, onDrop func(ctx context.Context))
}

// Poster sends requests to the upstream API on behalf of one user.
type Poster interface {
	Post(ctx context.Context, path string, body any, authenticated bool) pkgapi.Result[json.RawMessage]
}

type Sessions interface {
	ForToken(token string) Poster
}

type Dependency struct {
	Store      Store
	Notifier   Notifier
	Runner     Runner
	Sessions   Sessions
	FormID     pkguid.StringID
	ToastID    pkguid.StringID
	Texts      *pkgerrtext.Table
	ToastDelay time.Duration
	RootCtx    context.Context
}

type Usecase struct {
	store      Store
	notifier   Notifier
	runner     Runner
	sessions   Sessions
	formID     pkguid.StringID
	toastID    pkguid.StringID
	texts      *pkgerrtext.Table
	toastDelay time.Duration
	rootCtx    context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	texts := dep.Texts
	if texts == nil {
		texts = pkgerrtext.Default()
	}

	delay := dep.ToastDelay
	if delay <= 0 {
		delay = entity.DefaultToastDelay
	}

	toastID := dep.ToastID
	if toastID == nil {
		toastID = pkguid.NewUUID()
	}

	return &Usecase{
		store:      dep.Store,
		notifier:   dep.Notifier,
		runner:     dep.Runner,
		sessions:   dep.Sessions,
		formID:     dep.FormID,
		toastID:    toastID,
		texts:      texts,
		toastDelay: delay,
		rootCtx:    root,
	}
}

// Mount opens a new form session for the owner of token.
func (u *Usecase) Mount(ctx context.Context, token string) (FormView, error) {
	if u.store == nil || u.formID == nil {
		return FormView{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	sess := Session{
		ID:    u.formID.Generate(),
		Token: token,
		State: form.NewState(),
	}
	if err := u.store.CreateSession(ctx, sess); err != nil {
		return FormView{}, normalizeErr(err)
	}

	slog.DebugContext(ctx, "security form mounted", "form_id", sess.ID)

	return u.view(sess.ID, sess.State), nil
}

// State returns the current view of a session.
func (u *Usecase) State(ctx context.Context, token, id string) (FormView, error) {
	sess, err := u.owned(ctx, token, id)
	if err != nil {
		return FormView{}, err
	}

	return u.view(sess.ID, sess.State), nil
}

// Change records an edit of one field and re-validates it. Edits made while
// a submission is in flight are ignored; the request already carries the
// values it was sent with.
func (u *Usecase) Change(ctx context.Context, token, id string, field entity.Field, value string) (FormView, error) {
	if !field.Valid() {
		return FormView{}, pkgerror.NewInvalidInput(
			fmt.Errorf("%w: %q", form.ErrUnknownField, field),
			pkgerrtext.CodeFormInvalidField,
		)
	}

	var state form.State
	err := u.store.UpdateSession(ctx, id, func(sess *Session) error {
		if sess.Token != token {
			return pkgerror.ErrNotFound
		}

		if sess.State.IsSubmitting {
			state = sess.State
			return nil
		}

		act, err := form.Change(sess.State, field, value)
		if err != nil {
			return err
		}

		sess.State = form.Reduce(sess.State, act)
		state = sess.State
		return nil
	})
	if err != nil {
		return FormView{}, mapStoreErr(err)
	}

	return u.view(id, state), nil
}

// Submit sends the form to the upstream API.
//
// While a submission is in flight further calls are no-ops. A form with
// field errors is not sent; the user gets a toast instead. Otherwise exactly
// one update request is scheduled and the outcome is reduced into the
// session when it arrives.
func (u *Usecase) Submit(ctx context.Context, token, id string) (SubmitResult, error) {
	if u.runner == nil || u.sessions == nil {
		return SubmitResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	var (
		outcome SubmitOutcome
		state   form.State
	)
	err := u.store.UpdateSession(ctx, id, func(sess *Session) error {
		if sess.Token != token {
			return pkgerror.ErrNotFound
		}

		switch {
		case sess.State.IsSubmitting:
			outcome = SubmitIgnored
		case sess.State.HasErrors():
			outcome = SubmitRejected
		default:
			sess.State = form.Reduce(sess.State, form.BeginSubmit{})
			outcome = SubmitPending
		}

		state = sess.State
		return nil
	})
	if err != nil {
		return SubmitResult{}, mapStoreErr(err)
	}

	switch outcome {
	case SubmitRejected:
		u.notify(ctx, id, u.texts.Text(pkgerrtext.CodeFormNotYetValid))
	case SubmitPending:
		poster := u.sessions.ForToken(token)
		body := state.ChangedPassword()
		u.runner.Go(pkglog.DetachContext(u.rootCtx, ctx), func(ctx context.Context) error {
			return u.complete(ctx, id, poster, body)
		}, func(ctx context.Context) {
			u.abandon(ctx, id)
		})
	case SubmitIgnored:
		slog.DebugContext(ctx, "submission already in flight", "form_id", id)
	}

	return SubmitResult{Outcome: outcome, Form: u.view(id, state)}, nil
}

// Toasts lists the live notifications of a session.
func (u *Usecase) Toasts(ctx context.Context, token, id string) ([]entity.Toast, error) {
	if _, err := u.owned(ctx, token, id); err != nil {
		return nil, err
	}

	toasts, err := u.store.ListToasts(ctx, id)
	if err != nil {
		return nil, normalizeErr(err)
	}

	return toasts, nil
}

// Unmount discards a session. A submission still in flight completes
// upstream but its response is dropped.
func (u *Usecase) Unmount(ctx context.Context, token, id string) error {
	if _, err := u.owned(ctx, token, id); err != nil {
		return err
	}

	if err := u.store.DeleteSession(ctx, id); err != nil {
		return mapStoreErr(err)
	}

	slog.DebugContext(ctx, "security form unmounted", "form_id", id)
	return nil
}

func (u *Usecase) complete(ctx context.Context, id string, poster Poster, body entity.ChangedPassword) error {
	res := poster.Post(ctx, entity.UpdatePath, body, true)

	var act form.Action = form.SubmitSucceeded{}
	if payload, failed := res.Failure(); failed {
		act = form.SubmitFailed{Payload: payload}
	}

	err := u.store.UpdateSession(ctx, id, func(sess *Session) error {
		sess.State = form.Reduce(sess.State, act)
		return nil
	})
	if errors.Is(err, pkgerror.ErrNotFound) {
		slog.InfoContext(ctx, "form unmounted before the update finished, response discarded", "form_id", id)
		return nil
	}
	if err != nil {
		return err
	}

	if res.IsOk() {
		u.notify(ctx, id, entity.ToastPasswordSaved)
		slog.InfoContext(ctx, "password changed", "form_id", id)
		return nil
	}

	payload, _ := res.Failure()
	slog.InfoContext(ctx, "password change rejected", "form_id", id, "detail", pkgerrtext.Strings(payload.Detail))
	return nil
}

// abandon settles a submission whose request was never sent, so the form
// leaves the submitting state and can be sent again.
func (u *Usecase) abandon(ctx context.Context, id string) {
	err := u.store.UpdateSession(ctx, id, func(sess *Session) error {
		if !sess.State.IsSubmitting {
			return nil
		}
		sess.State = form.Reduce(sess.State, form.SubmitFailed{Payload: pkgapi.DidNotSucceed()})
		return nil
	})
	if err != nil && !errors.Is(err, pkgerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to settle abandoned submission", "form_id", id, "error", err)
		return
	}
	slog.WarnContext(ctx, "submission abandoned before it was sent", "form_id", id)
}

func (u *Usecase) notify(ctx context.Context, channel, body string) {
	if u.notifier == nil {
		return
	}

	toast := entity.Toast{
		ID:      u.toastID.Generate(),
		Channel: channel,
		Body:    body,
		Delay:   u.toastDelay,
	}
	if err := u.notifier.Publish(ctx, toast); err != nil {
		slog.WarnContext(ctx, "failed to publish toast", "form_id", channel, "toast_id", toast.ID, "error", err)
	}
}

func (u *Usecase) owned(ctx context.Context, token, id string) (Session, error) {
	sess, err := u.store.GetSession(ctx, id)
	if err != nil {
		return Session{}, mapStoreErr(err)
	}
	if sess.Token != token {
		return Session{}, mapStoreErr(pkgerror.ErrNotFound)
	}
	return sess, nil
}

func (u *Usecase) view(id string, s form.State) FormView {
	v := FormView{
		FormID:        id,
		Values:        make(map[entity.Field]string, len(entity.Fields())),
		Errors:        make(map[entity.ErrorKey][]ErrorView, len(entity.ErrorKeys())),
		GeneralErrors: u.describe(s.GeneralErrors),
		IsSubmitting:  s.IsSubmitting,
		Valid:         !s.HasErrors(),
	}
	for _, f := range entity.Fields() {
		v.Values[f] = s.Value(f)
	}
	for _, k := range entity.ErrorKeys() {
		v.Errors[k] = u.describe(s.FieldErrors(k))
	}
	return v
}

func (u *Usecase) describe(codes []pkgerrtext.Code) []ErrorView {
	out := make([]ErrorView, 0, len(codes))
	for _, c := range codes {
		out = append(out, ErrorView{Code: c, Message: u.texts.Text(c)})
	}
	return out
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("form not found", pkgerror.CodeNotFound, pkgerrtext.CodeFormNotFound)
	}
	if errors.Is(err, form.ErrUnknownField) {
		return pkgerror.NewInvalidInput(err, pkgerrtext.CodeFormInvalidField)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
