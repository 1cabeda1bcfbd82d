// Package event provides the domain model for eventdesk.
//
// The event package defines the Event record as served by the backend,
// the flat field set used for create/edit submissions, and date parsing
// and display formatting shared by the CLI and the view layer.
package event
