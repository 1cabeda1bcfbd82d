package view

import (
	"context"
	"fmt"

	"eventdesk/internal/cache"
	"eventdesk/internal/event"
	"eventdesk/internal/nav"
)

// Route patterns for the event experience.
const (
	RouteEvents      = "/events"
	RouteEventNew    = "/events/new"
	RouteEventDetail = "/events/:id"
	RouteEventEdit   = "/events/:id/edit"
)

// Store is the cached read side the loaders use.
type Store interface {
	Reader
	Invalidator
	ListEvents(ctx context.Context) ([]*event.Event, error)
}

// Mutator is the write side of the data-access facade.
type Mutator interface {
	CreateEvent(fields event.Fields) (*event.Event, error)
	UpdateEvent(id string, fields event.Fields) (*event.Event, error)
}

// RegisterRoutes wires the event routes into the navigator: loaders
// fetch through the cache before a view renders, actions perform the
// mutation, invalidate the events kind and redirect.
func RegisterRoutes(n *nav.Navigator, store Store, facade Mutator) {
	n.Register(&nav.Route{
		Path: RouteEvents,
		Loader: func(ctx context.Context, _ nav.Params) (any, error) {
			return store.ListEvents(ctx)
		},
	})

	n.Register(&nav.Route{
		Path: RouteEventDetail,
		Loader: func(ctx context.Context, params nav.Params) (any, error) {
			return store.GetEvent(ctx, params["id"])
		},
	})

	n.Register(&nav.Route{
		Path: RouteEventEdit,
		Loader: func(ctx context.Context, params nav.Params) (any, error) {
			return store.GetEvent(ctx, params["id"])
		},
		Action: EditAction(store, facade),
	})

	n.Register(&nav.Route{
		Path:   RouteEventNew,
		Action: CreateAction(store, facade),
	})
}

// EditAction handles an edit submission: update the backend, invalidate
// the events cache, redirect to the parent route — strictly in that
// order. A failed update returns before anything is invalidated, so the
// form stays put with its error.
func EditAction(inval Invalidator, facade Mutator) nav.ActionFunc {
	return func(ctx context.Context, params nav.Params, sub nav.Submission) (nav.Redirect, error) {
		if sub.Method != nav.MethodPut {
			return "", fmt.Errorf("edit does not handle method %s", sub.Method)
		}
		if err := sub.Fields.Validate(); err != nil {
			return "", err
		}
		if _, err := facade.UpdateEvent(params["id"], sub.Fields); err != nil {
			return "", err
		}
		inval.Invalidate(cache.KindEvents)
		return nav.RedirectParent, nil
	}
}

// CreateAction handles a new-event submission the same way, redirecting
// to the listing.
func CreateAction(inval Invalidator, facade Mutator) nav.ActionFunc {
	return func(ctx context.Context, params nav.Params, sub nav.Submission) (nav.Redirect, error) {
		if sub.Method != nav.MethodPost {
			return "", fmt.Errorf("create does not handle method %s", sub.Method)
		}
		if err := sub.Fields.Validate(); err != nil {
			return "", err
		}
		if _, err := facade.CreateEvent(sub.Fields); err != nil {
			return "", err
		}
		inval.Invalidate(cache.KindEvents)
		return nav.Redirect(RouteEvents), nil
	}
}
