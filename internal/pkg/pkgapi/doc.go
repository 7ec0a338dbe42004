// Package pkgapi implements the response envelope contract shared with the
// upstream comics API and a small HTTP client built around it.
//
// Every upstream endpoint answers with an Envelope. The client unwraps it into
// a Result, which is either the decoded data or an ErrorPayload. Failures that
// carry no structured body (network errors, proxies answering with HTML,
// malformed JSON) are normalised to REQUEST.DID_NOT_SUCCEED, so callers only
// ever see one error shape and never inspect HTTP status codes.
package pkgapi
