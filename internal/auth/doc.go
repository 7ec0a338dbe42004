// Package auth is the session collaborator used by feature modules to reach
// the upstream API on behalf of a user.
//
// A Provider hands out a Session per bearer token. Sessions attach the token
// to authenticated calls and refuse to make them without one.
package auth
