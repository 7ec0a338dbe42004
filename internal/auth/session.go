package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
)

// TokenCookie is the cookie read when no Authorization header is present.
const TokenCookie = "token"

// Provider creates sessions that share one upstream client.
type Provider struct {
	client pkgapi.Doer
}

// NewProvider returns a Provider backed by client.
func NewProvider(client pkgapi.Doer) *Provider {
	return &Provider{client: client}
}

// ForToken returns a session for token. An empty token yields an anonymous
// session.
func (p *Provider) ForToken(token string) *Session {
	return &Session{client: p.client, token: strings.TrimSpace(token)}
}

// Session performs upstream calls for one user.
type Session struct {
	client pkgapi.Doer
	token  string
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s.token != ""
}

// Post performs a POST request with a JSON body. Authenticated calls without
// a token fail locally with AUTH.NOT_AUTHENTICATED.
func (s *Session) Post(ctx context.Context, path string, body any, authenticated bool) pkgapi.Result[json.RawMessage] {
	req := pkgapi.Request{Method: http.MethodPost, Path: path, Body: body}

	if authenticated {
		if !s.Authenticated() {
			return pkgapi.Err[json.RawMessage](pkgapi.NewErrorPayload(pkgerrtext.CodeAuthNotAuthenticated))
		}
		req.Header = http.Header{"Authorization": []string{"Bearer " + s.token}}
	}

	return s.client.Do(ctx, req)
}

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the token cookie.
func TokenFromRequest(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}

	return ""
}
