// Package form holds the password form state machine: the State value, the
// closed set of actions that change it, the pure Reduce function and the
// per-field validators that turn an edit into an action.
//
// Nothing in this package performs I/O or keeps hidden state. Replaying the
// same actions from the same State always yields the same result.
package form
