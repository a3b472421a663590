// Package auth provides authentication for doorsentry's two caller classes.
//
// Admin sessions: dashboard operators log in with a username and an
// Argon2id-hashed password and receive a signed JWT. Admin routes validate
// the token signature only - no database hit per request.
//
// Callback gate: device-originated event reports carry a long-lived shared
// secret in the X-Callback-Secret header, verified with a constant-time
// comparison. An unconfigured gate fails closed.
package auth
