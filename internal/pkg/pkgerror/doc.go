// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, code
//     and envelope error codes, mapped to HTTP status codes and response
//     bodies at the edge (router).
package pkgerror
