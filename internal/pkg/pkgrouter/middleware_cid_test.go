package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
)

type staticGenerator struct {
	value string
	calls int
}

func (g *staticGenerator) Generate() string {
	g.calls++
	return g.value
}

func runCID(t *testing.T, gen Generator, header http.Header) (string, string) {
	t.Helper()

	var ctxCID string
	wrapped := middlewareCorrelationID(gen)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxCID = pkglog.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile/security/1", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	return rec.Header().Get(pkglog.HeaderCorrelationID), ctxCID
}

func TestMiddlewareCorrelationID(t *testing.T) {
	cases := []struct {
		name      string
		header    http.Header
		want      string
		wantCalls int
	}{
		{
			name:   "correlation header wins",
			header: http.Header{pkglog.HeaderCorrelationID: {"header-cid"}, HeaderRequestID: {"proxy-id"}},
			want:   "header-cid",
		},
		{
			name:   "falls back to request id",
			header: http.Header{HeaderRequestID: {"proxy-id"}},
			want:   "proxy-id",
		},
		{
			name:      "generates when missing",
			want:      "generated",
			wantCalls: 1,
		},
		{
			name:      "replaces unusable header",
			header:    http.Header{pkglog.HeaderCorrelationID: {"bad\x00id"}},
			want:      "generated",
			wantCalls: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &staticGenerator{value: "generated"}
			respCID, ctxCID := runCID(t, gen, tc.header)

			if respCID != tc.want || ctxCID != tc.want {
				t.Fatalf("cid = (resp %q, ctx %q), want %q", respCID, ctxCID, tc.want)
			}
			if gen.calls != tc.wantCalls {
				t.Fatalf("generator calls = %d, want %d", gen.calls, tc.wantCalls)
			}
		})
	}
}

func TestMiddlewareCorrelationIDWithoutGenerator(t *testing.T) {
	respCID, _ := runCID(t, nil, nil)
	if respCID != "" {
		t.Fatalf("expected no response header, got %q", respCID)
	}
}
