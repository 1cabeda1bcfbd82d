// Package view implements the event detail and edit views.
//
// Each view reads its record through the shared cache store, renders one
// of loading, error or loaded, and funnels mutations outward: the detail
// view drives a confirm-then-delete state machine against the data-access
// facade, while the edit view hands its form to the navigation pipeline
// and lets the route action perform the update. Both hide their controls
// entirely while a request is in flight, so a second submission of the
// same mutation is impossible from one view instance.
package view
