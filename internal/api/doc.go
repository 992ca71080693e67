// Package api implements the HTTP client for the trainer backend.
//
// The backend owns all scheduling: due queues, review verdicts, and stats
// come back authoritative and are adopted verbatim. Requests carry the
// Telegram initData in the Authorization header ("tma <initData>") via an
// injected token provider. Non-2xx responses map the backend's
// {"detail": ...} body into the typed error package.
package api
