// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like envelope encoding ({"success":...,"data":...} or
// {"success":false,"error":{"detail":[...]}}), error mapping, strict JSON
// body reading, logging with secret masking, recovery and correlation ID
// propagation.
package pkgrouter
