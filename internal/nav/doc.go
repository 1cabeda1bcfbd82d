// Package nav provides the route-driven loading and submission pipeline.
//
// A Route pairs a loader, which fetches data before a view renders, with
// an action, which handles a submitted form and performs the matching
// backend mutation. The Navigator owns the current location, runs loaders
// on navigation, exposes an idle/loading/submitting status signal, and
// applies the redirect an action returns. Views submit forms through the
// Navigator rather than calling the backend themselves, so the pipeline
// owns the whole request lifecycle.
package nav
