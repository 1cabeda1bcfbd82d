// Package cli implements the command-line interface for eventdesk.
//
// The cli package provides the Cobra-based CLI with commands to list,
// show, create, edit, delete, import and export events. It wires the
// config, API client, cache store and navigation pipeline together and
// drives the detail and edit views from the terminal.
package cli
