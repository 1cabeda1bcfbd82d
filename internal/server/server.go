// Package server implements the companion in-memory events backend.
//
// It serves the REST contract the client consumes: the /events
// collection with fetch, create, update and delete, JSON envelopes
// ("event", "events") on success and {"message"} on failure. Records
// live in memory; an optional JSON seed file populates them at startup.
// It exists for local development and demos, not as a persistence layer.
package server

import (
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventdesk/internal/event"
	"eventdesk/internal/logger"
)

// Repo is the in-memory event store. Safe for concurrent use.
type Repo struct {
	mu     sync.Mutex
	events map[string]*event.Event
}

// NewRepo creates an empty repository.
func NewRepo() *Repo {
	return &Repo{events: make(map[string]*event.Event)}
}

// List returns all events sorted by date, then title.
func (r *Repo) List() []*event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*event.Event, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Get returns the event with the given id, or nil.
func (r *Repo) Get(id string) *event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[id]
}

// Put stores an event under its ID.
func (r *Repo) Put(evt *event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[evt.ID] = evt
}

// Delete removes an event, reporting whether it existed.
func (r *Repo) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return false
	}
	delete(r.events, id)
	return true
}

// Size returns the number of stored events.
func (r *Repo) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Server is the HTTP layer over a Repo.
type Server struct {
	echo *echo.Echo
	repo *Repo
}

// New creates a server over the given repository.
func New(repo *Repo) *Server {
	s := &Server{
		echo: echo.New(),
		repo: repo,
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until the process ends.
func (s *Server) Start(addr string) error {
	logger.Info("backend listening", logger.Fields{
		"addr":   addr,
		"events": s.repo.Size(),
	})
	return s.echo.Start(addr)
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/events", s.listEvents)
	s.echo.POST("/events", s.createEvent)
	s.echo.GET("/events/:id", s.getEvent)
	s.echo.PUT("/events/:id", s.updateEvent)
	s.echo.DELETE("/events/:id", s.deleteEvent)
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "ok"})
}

func (s *Server) listEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]*event.Event{
		"events": s.repo.List(),
	})
}

func (s *Server) getEvent(c echo.Context) error {
	evt := s.repo.Get(c.Param("id"))
	if evt == nil {
		return c.JSON(http.StatusNotFound, messageResponse{
			Message: "Could not find event with id " + c.Param("id"),
		})
	}
	return c.JSON(http.StatusOK, map[string]*event.Event{"event": evt})
}

func (s *Server) createEvent(c echo.Context) error {
	var fields event.Fields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body."})
	}
	if err := fields.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: err.Error()})
	}

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}

	evt := &event.Event{ID: id.String()}
	fields.Apply(evt)
	s.repo.Put(evt)

	logger.Info("event created", logger.Fields{"id": evt.ID, "title": evt.Title})
	return c.JSON(http.StatusCreated, map[string]*event.Event{"event": evt})
}

func (s *Server) updateEvent(c echo.Context) error {
	existing := s.repo.Get(c.Param("id"))
	if existing == nil {
		return c.JSON(http.StatusNotFound, messageResponse{
			Message: "Could not find event with id " + c.Param("id"),
		})
	}

	var fields event.Fields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body."})
	}
	if err := fields.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: err.Error()})
	}

	updated := *existing
	fields.Apply(&updated)
	s.repo.Put(&updated)

	return c.JSON(http.StatusOK, map[string]*event.Event{"event": &updated})
}

func (s *Server) deleteEvent(c echo.Context) error {
	if !s.repo.Delete(c.Param("id")) {
		return c.JSON(http.StatusNotFound, messageResponse{
			Message: "Could not find event with id " + c.Param("id"),
		})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted."})
}
