package nav

import (
	"context"
	"fmt"
	"path"
	"sync"

	"eventdesk/internal/event"
	"eventdesk/internal/logger"
)

// Status is the navigator's lifecycle signal.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusSubmitting Status = "submitting"
)

// Method tags a submission with the mutation it requests.
type Method string

const (
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Params carries route parameters, e.g. the event id.
type Params map[string]string

// Submission is a serialized form: a flat field set plus a method tag.
type Submission struct {
	Fields event.Fields
	Method Method
}

// Redirect names where an action sends the user afterwards. The special
// value RedirectParent resolves against the current route's parent.
type Redirect string

// RedirectParent redirects one path segment up from the current route.
const RedirectParent Redirect = ".."

// LoaderFunc fetches a route's data before its view renders.
type LoaderFunc func(ctx context.Context, params Params) (any, error)

// ActionFunc handles a submission for a route. A non-empty Redirect is
// followed after the action succeeds.
type ActionFunc func(ctx context.Context, params Params, sub Submission) (Redirect, error)

// Route is one navigable destination.
type Route struct {
	Path   string // pattern, e.g. "/events/:id/edit"
	Loader LoaderFunc
	Action ActionFunc
}

// Navigator runs loaders and actions for registered routes and tracks
// the current location. Route matching by URL is out of scope; callers
// navigate by pattern plus explicit params.
type Navigator struct {
	mu     sync.Mutex
	routes map[string]*Route

	status     Status
	location   string
	params     Params
	loaderData any
	loaderErr  error
}

// New creates a navigator with no routes and an idle status.
func New() *Navigator {
	return &Navigator{
		routes: make(map[string]*Route),
		status: StatusIdle,
	}
}

// Register adds a route. Registering the same pattern twice replaces it.
func (n *Navigator) Register(r *Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes[r.Path] = r
}

// Go navigates to the route registered under pattern. When the route has
// a loader it runs to completion before Go returns, so a view rendered
// after Go always finds its data present or errored, never pending.
// A loader failure is recorded, not returned: the error belongs to the
// destination view's render.
func (n *Navigator) Go(ctx context.Context, pattern string, params Params) error {
	n.mu.Lock()
	route, ok := n.routes[pattern]
	if !ok {
		n.mu.Unlock()
		return fmt.Errorf("no route registered for %q", pattern)
	}
	n.status = StatusLoading
	n.mu.Unlock()

	var data any
	var err error
	if route.Loader != nil {
		data, err = route.Loader(ctx, params)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = pattern
	n.params = params
	n.loaderData = data
	n.loaderErr = err
	n.status = StatusIdle

	logger.Debug("navigated", logger.Fields{
		"location": pattern,
		"loaded":   err == nil,
	})
	return nil
}

// Submit serializes a form into the current route's action. The status
// reads as submitting for the whole action run; afterwards any redirect
// the action returned is followed, which re-runs that route's loader.
// An action failure leaves the location unchanged and is returned to the
// submitting view to render inline.
func (n *Navigator) Submit(ctx context.Context, fields event.Fields, method Method) error {
	n.mu.Lock()
	route, ok := n.routes[n.location]
	if !ok || route.Action == nil {
		n.mu.Unlock()
		return fmt.Errorf("no action for route %q", n.location)
	}
	pattern := n.location
	params := n.params
	n.status = StatusSubmitting
	n.mu.Unlock()

	redirect, err := route.Action(ctx, params, Submission{Fields: fields, Method: method})

	n.mu.Lock()
	n.status = StatusIdle
	n.mu.Unlock()

	if err != nil {
		logger.Warn("submission failed", logger.Fields{
			"location": pattern,
			"method":   string(method),
		})
		return err
	}

	if redirect != "" {
		return n.Go(ctx, resolve(pattern, redirect), params)
	}
	return nil
}

// Status returns the current lifecycle status.
func (n *Navigator) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

// Location returns the current route pattern.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Param returns one of the current route's parameters.
func (n *Navigator) Param(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.params[name]
}

// LoaderData returns the current route's loaded data and loader error.
func (n *Navigator) LoaderData() (any, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loaderData, n.loaderErr
}

// resolve turns an action's redirect into a route pattern; ".." walks up
// one segment from the pattern the action ran under.
func resolve(pattern string, redirect Redirect) string {
	if redirect == RedirectParent {
		parent := path.Dir(pattern)
		if parent == "." || parent == "" {
			return "/"
		}
		return parent
	}
	return string(redirect)
}
