package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
)

type recordingDoer struct {
	calls []pkgapi.Request
}

func (d *recordingDoer) Do(_ context.Context, req pkgapi.Request) pkgapi.Result[json.RawMessage] {
	d.calls = append(d.calls, req)
	return pkgapi.Ok(json.RawMessage(`{}`))
}

func TestSessionPostAuthenticated(t *testing.T) {
	doer := &recordingDoer{}
	session := NewProvider(doer).ForToken(" tok ")

	res := session.Post(context.Background(), "user/update", map[string]string{"a": "b"}, true)
	if !res.IsOk() {
		t.Fatalf("expected ok")
	}
	if len(doer.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(doer.calls))
	}
	call := doer.calls[0]
	if call.Method != http.MethodPost || call.Path != "user/update" {
		t.Fatalf("unexpected call: %+v", call)
	}
	if got := call.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("unexpected auth header: %q", got)
	}
}

func TestSessionWithoutTokenFailsLocally(t *testing.T) {
	doer := &recordingDoer{}
	session := NewProvider(doer).ForToken("")

	payload, failed := session.Post(context.Background(), "user/update", nil, true).Failure()
	if !failed || !payload.Has(pkgerrtext.CodeAuthNotAuthenticated) {
		t.Fatalf("expected AUTH.NOT_AUTHENTICATED, got %+v", payload)
	}
	if len(doer.calls) != 0 {
		t.Fatalf("expected no upstream call")
	}
}

func TestSessionAnonymousPost(t *testing.T) {
	doer := &recordingDoer{}
	session := NewProvider(doer).ForToken("tok")

	if res := session.Post(context.Background(), "issues/", nil, false); !res.IsOk() {
		t.Fatalf("expected ok")
	}
	if doer.calls[0].Header != nil {
		t.Fatalf("expected no auth header on anonymous call")
	}
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TokenFromRequest(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "cookie-tok"})
	if got := TokenFromRequest(req); got != "cookie-tok" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	req.Header.Set("Authorization", "bearer header-tok")
	if got := TokenFromRequest(req); got != "header-tok" {
		t.Fatalf("expected header token, got %q", got)
	}

	req.Header.Set("Authorization", "Basic abc")
	if got := TokenFromRequest(req); got != "cookie-tok" {
		t.Fatalf("expected cookie fallback for non-bearer scheme, got %q", got)
	}
}
