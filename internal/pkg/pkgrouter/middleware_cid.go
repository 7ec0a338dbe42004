package pkgrouter

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkglog"
)

// Generator creates correlation IDs for requests that arrive without one.
type Generator interface {
	Generate() string
}

// HeaderRequestID is read when a proxy sent no correlation header.
const HeaderRequestID = "X-Request-ID"

const maxCIDLen = 128

// normalizeCID trims v and rejects values that are not printable ASCII, so a
// client cannot smuggle control characters into logs or upstream headers.
func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, func(r rune) bool { return r > unicode.MaxASCII || !unicode.IsPrint(r) }) >= 0 {
		return ""
	}
	if len(v) > maxCIDLen {
		v = v[:maxCIDLen]
	}
	return v
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := normalizeCID(r.Header.Get(pkglog.HeaderCorrelationID))
			if cid == "" {
				cid = normalizeCID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(pkglog.HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
