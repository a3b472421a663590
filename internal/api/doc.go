// Package api implements the HTTP REST API and WebSocket server for doorsentry.
//
// This package provides:
//   - REST endpoints for identity enrollment, deletion, and listing
//   - Secured callback endpoints for the field device (enrollment results,
//     access event reports)
//   - Access log queries (event list, per-actor frequency)
//   - WebSocket hub broadcasting recorded events to the admin dashboard
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//
// # Security
//
// Two caller classes, two mechanisms. Admin routes require a Bearer JWT
// from POST /auth/login. Device callback routes are open by different
// rules: the event callback requires the X-Callback-Secret shared secret,
// the enrollment callback is open by deployment decision (the device
// cannot hold per-session credentials). WebSocket connections use
// single-use tickets to keep JWTs out of URLs.
package api
