// Package api implements the REST client for the eventdesk backend.
//
// The api package is the single place that talks HTTP: it exposes fetch,
// list, create, update and delete operations over the backend's /events
// resource and normalizes backend failures into *Error values carrying
// the HTTP status and the backend's message string, if any. Reads are
// cancellable through a context; writes are not cancellable once issued.
package api
