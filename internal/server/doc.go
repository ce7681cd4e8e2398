// Package server exposes rendering and term administration over HTTP.
//
// Ownership boundary:
// - health, readiness, and metrics endpoints
// - render endpoints used by integration adapters
// - term administration (JSON API and HTML form)
//
// The server does not own persistence; it is handed a store.
package server
