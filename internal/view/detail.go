package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"eventdesk/internal/api"
	"eventdesk/internal/cache"
	"eventdesk/internal/event"
	"eventdesk/internal/logger"
	"eventdesk/internal/nav"
)

// Fallback messages shown when the backend supplies no message of its own.
const (
	FallbackFetchMessage  = "Failed to fetch event data."
	FallbackDeleteMessage = "Failed to delete event, please try again later."
	FallbackSaveMessage   = "Failed to save event, please try again later."
)

// DeleteState is the detail view's delete-confirmation state.
type DeleteState int

const (
	// DeleteIdle shows the normal Edit/Delete controls.
	DeleteIdle DeleteState = iota
	// DeleteConfirming shows the confirmation dialog.
	DeleteConfirming
	// DeletePending hides all controls while the delete is in flight.
	DeletePending
	// DeleteConfirmingError keeps the dialog open with an inline error.
	DeleteConfirmingError
)

func (s DeleteState) String() string {
	switch s {
	case DeleteIdle:
		return "idle"
	case DeleteConfirming:
		return "confirming"
	case DeletePending:
		return "pending"
	case DeleteConfirmingError:
		return "confirming-error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reader reads event records through the cache.
type Reader interface {
	GetEvent(ctx context.Context, id string) (*event.Event, error)
}

// Invalidator marks cached kinds stale after a mutation.
type Invalidator interface {
	Invalidate(kind string) int
}

// Deleter is the delete side of the data-access facade.
type Deleter interface {
	DeleteEvent(id string) error
}

// Navigator is the slice of the navigation pipeline the views use.
type Navigator interface {
	Go(ctx context.Context, pattern string, params nav.Params) error
	Submit(ctx context.Context, fields event.Fields, method nav.Method) error
	Status() nav.Status
}

// DetailView renders one event and owns the delete-confirmation flow.
type DetailView struct {
	id    string
	store Reader
	inval Invalidator
	del   Deleter
	nav   Navigator

	mu        sync.Mutex
	evt       *event.Event
	loadErr   error
	loaded    bool
	state     DeleteState
	deleteErr error
	gone      bool
}

// NewDetailView creates a detail view for one event id.
func NewDetailView(id string, store Reader, inval Invalidator, del Deleter, navigator Navigator) *DetailView {
	return &DetailView{
		id:    id,
		store: store,
		inval: inval,
		del:   del,
		nav:   navigator,
	}
}

// Load reads the event through the cache. A failed read is terminal for
// this render; there is no retry control.
func (v *DetailView) Load(ctx context.Context) {
	evt, err := v.store.GetEvent(ctx, v.id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.evt = evt
	v.loadErr = err
	v.loaded = true
}

// State returns the current delete-confirmation state.
func (v *DetailView) State() DeleteState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Event returns the loaded record, nil before Load or after a failed read.
func (v *DetailView) Event() *event.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.evt
}

// StartDelete opens the confirmation dialog. It only toggles view state;
// no request is issued and the record is neither re-fetched nor locked.
func (v *DetailView) StartDelete() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != DeleteIdle {
		return fmt.Errorf("cannot start delete from state %s", v.state)
	}
	v.state = DeleteConfirming
	return nil
}

// CancelDelete closes the confirmation dialog and clears any inline error.
func (v *DetailView) CancelDelete() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != DeleteConfirming && v.state != DeleteConfirmingError {
		return fmt.Errorf("cannot cancel delete from state %s", v.state)
	}
	v.state = DeleteIdle
	v.deleteErr = nil
	return nil
}

// ConfirmDelete issues the delete. On success the events cache is
// invalidated, then the view navigates to the listing; invalidation is
// issued strictly after the delete resolves and navigation strictly after
// invalidation. On failure the dialog stays open with an inline error so
// the user can retry or cancel. While the request is in flight the state
// reads as DeletePending and the dialog controls are absent from the
// render, which is what rules out a concurrent second delete.
func (v *DetailView) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	if v.state != DeleteConfirming && v.state != DeleteConfirmingError {
		state := v.state
		v.mu.Unlock()
		return fmt.Errorf("cannot confirm delete from state %s", state)
	}
	v.state = DeletePending
	v.deleteErr = nil
	v.mu.Unlock()

	err := v.del.DeleteEvent(v.id)
	if err != nil {
		v.mu.Lock()
		v.state = DeleteConfirmingError
		v.deleteErr = err
		v.mu.Unlock()
		logger.Warn("delete failed", logger.Fields{"id": v.id})
		return err
	}

	// Mark the collection stale first so the listing refetches lazily,
	// then leave. Navigation must not outrun the invalidation.
	v.inval.Invalidate(cache.KindEvents)
	if err := v.nav.Go(ctx, RouteEvents, nil); err != nil {
		return err
	}

	v.mu.Lock()
	v.state = DeleteIdle
	v.gone = true
	v.mu.Unlock()

	logger.Info("event deleted", logger.Fields{"id": v.id})
	return nil
}

// Render writes the view: exactly one of loading, error or loaded, with
// the delete dialog layered on top of loaded according to the state.
func (v *DetailView) Render(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.gone {
		fmt.Fprintln(w, "Event deleted.")
		return
	}

	if !v.loaded {
		fmt.Fprintln(w, "Loading event...")
		return
	}

	if v.loadErr != nil {
		fmt.Fprintln(w, "An error occurred!")
		fmt.Fprintln(w, api.Message(v.loadErr, FallbackFetchMessage))
		return
	}

	evt := v.evt
	fmt.Fprintf(w, "%s\n", evt.Title)
	fmt.Fprintf(w, "%s @ %s\n", event.FormatDate(evt.Date), evt.Time)
	fmt.Fprintf(w, "%s\n", evt.Location)
	if evt.Description != "" {
		fmt.Fprintf(w, "\n%s\n", evt.Description)
	}
	if evt.Image != "" {
		fmt.Fprintf(w, "image: %s\n", evt.Image)
	}

	switch v.state {
	case DeleteIdle:
		fmt.Fprintln(w, "\n[Edit] [Delete]")
	case DeleteConfirming, DeleteConfirmingError:
		fmt.Fprintln(w, "\nAre you sure?")
		fmt.Fprintln(w, "Do you really want to delete this event? This action cannot be undone.")
		if v.state == DeleteConfirmingError {
			fmt.Fprintln(w, "An error occurred!")
			fmt.Fprintln(w, api.Message(v.deleteErr, FallbackDeleteMessage))
		}
		fmt.Fprintln(w, "[Cancel] [Delete]")
	case DeletePending:
		fmt.Fprintln(w, "\nDeleting, please wait...")
	}
}
