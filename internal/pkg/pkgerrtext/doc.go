// Package pkgerrtext owns the mapping from error codes to display text.
//
// Every error that crosses a boundary in this service is an opaque Code such
// as "USER.PASSWORD.TOO_SHORT.8". Codes are never shown to a user directly;
// they are always resolved through a Table. The default table is embedded and
// loaded once at startup, optionally merged with an override file, and is
// read-only afterwards.
package pkgerrtext
