// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy:
//   - UUIDv7 strings for toast and correlation IDs.
//   - Snowflake IDs (numeric, or base 36 strings) for form sessions.
package pkguid
