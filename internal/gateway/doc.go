// Package gateway is the HTTP presentation adapter.
//
// It exposes the session operations plus the administrative surface (teams,
// purses, catalog edits) and maps the typed failure kinds to HTTP statuses.
// The caller's platform identity arrives in the X-Actor-ID header; privileged
// endpoints check it against the allow-list.
package gateway
