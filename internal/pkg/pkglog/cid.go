package pkglog

import "context"

type chainIDContextKey struct{}

// HeaderCorrelationID carries the correlation ID on inbound requests, on
// responses and on calls to the upstream API.
const HeaderCorrelationID = "X-Correlation-ID"

const invalidCorrelationID = "[invalid_chain_id]"

// GetCorrelationID returns the correlation ID stored in the context.
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and propagated to upstream API calls.
func GetCorrelationID(ctx context.Context) string {
	clm, ok := ctx.Value(chainIDContextKey{}).(string)
	if !ok {
		return invalidCorrelationID
	}
	return clm
}

// LookupCorrelationID returns the correlation ID and whether a usable one was
// set.
func LookupCorrelationID(ctx context.Context) (string, bool) {
	cid := GetCorrelationID(ctx)
	if cid == "" || cid == invalidCorrelationID {
		return "", false
	}
	return cid, true
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}

// DetachContext returns a context that keeps the correlation ID of ctx but
// is not canceled with it. Work that outlives a request (an in-flight upstream
// call) logs under the same ID.
func DetachContext(parent, ctx context.Context) context.Context {
	if cid, ok := LookupCorrelationID(ctx); ok {
		return SetCorrelationID(parent, cid)
	}
	return parent
}
