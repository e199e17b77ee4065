// Package wizard coordinates a multi-step form session.
//
// A Controller owns the partial FormData and one Result slot per step. It has
// two mutating entry points: UpdateField merges a value into a fresh FormData
// without validating, and ValidateStep runs the step's schema against the
// current data and commits the Result. IsSubmitReady is computed on demand
// from the committed results; a step that was never validated keeps the whole
// wizard from being ready.
//
// Observers subscribe through the Notifier for data changes, step events and
// readiness changes. Notifications are delivered synchronously before the
// triggering call returns.
//
// ValidateStep may block on an asynchronous schema collaborator. Every call
// takes a new generation for its step and only the latest generation is
// allowed to commit, so a slow validation can never overwrite the result of a
// newer one. Superseded calls return their result together with ErrSuperseded.
package wizard
