// Package identity manages enrolled people and the two-leg lifecycle
// that creates and removes them.
//
// Enrollment is split across two uncorrelated legs: an admin triggers
// capture on the lock controller (StartEnrollment), and the controller
// later reports the result through a callback (CompleteEnrollment).
// Nothing ties the legs together - no pending state, no correlation
// token. The store only ever sees completed enrollments.
//
// Deletion notifies the controller best-effort, then removes the row
// unconditionally: the store is the source of truth for who may enter,
// so a dead relay must never keep a revoked identity active.
package identity
