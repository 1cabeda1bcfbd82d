package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"eventdesk/internal/api"
	"eventdesk/internal/event"
	"eventdesk/internal/nav"
)

// EditView renders an editable form pre-populated from the same cache
// entry the detail view reads. It never calls the backend itself: the
// form is handed to the navigation pipeline, whose route action performs
// the update. That trades optimistic-UI control for a single owner of
// the request lifecycle.
type EditView struct {
	id    string
	store Reader
	nav   Navigator

	mu      sync.Mutex
	loadErr error
	fields  event.Fields
}

// NewEditView creates an edit view for one event id.
func NewEditView(id string, store Reader, navigator Navigator) *EditView {
	return &EditView{
		id:    id,
		store: store,
		nav:   navigator,
		fields: event.Fields{},
	}
}

// Load pre-populates the form from the cached record. The route loader
// has already fetched it before the view mounts, so this is normally a
// cache hit; a separate loading state is deliberately not rendered.
func (v *EditView) Load(ctx context.Context) {
	evt, err := v.store.GetEvent(ctx, v.id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadErr = err
	if err == nil {
		v.fields = event.FieldsFromEvent(evt)
	}
}

// SetField records a single edited form field.
func (v *EditView) SetField(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields[name] = value
}

// Fields returns a copy of the current form state.
func (v *EditView) Fields() event.Fields {
	v.mu.Lock()
	defer v.mu.Unlock()
	copied := make(event.Fields, len(v.fields))
	for k, val := range v.fields {
		copied[k] = val
	}
	return copied
}

// Submit serializes the form and hands it to the navigation pipeline
// tagged as an update. The route action owns the backend call, the cache
// invalidation and the redirect to the parent route.
func (v *EditView) Submit(ctx context.Context) error {
	return v.nav.Submit(ctx, v.Fields(), nav.MethodPut)
}

// Close leaves the form without persisting anything.
func (v *EditView) Close(ctx context.Context) error {
	return v.nav.Go(ctx, RouteEventDetail, nav.Params{"id": v.id})
}

// Render writes the form. While the navigator reports a submission in
// flight the Save/Close controls are replaced by a sending message, so
// they cannot be activated twice.
func (v *EditView) Render(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loadErr != nil {
		fmt.Fprintln(w, "An error occurred!")
		fmt.Fprintln(w, api.Message(v.loadErr, FallbackFetchMessage))
		return
	}

	fmt.Fprintln(w, "Edit event")
	for _, key := range []string{"title", "image", "date", "time", "location", "description"} {
		fmt.Fprintf(w, "  %-12s %s\n", key+":", v.fields[key])
	}

	if v.nav.Status() == nav.StatusSubmitting {
		fmt.Fprintln(w, "\nSending...")
		return
	}
	fmt.Fprintln(w, "\n[Save] [Close]")
}
