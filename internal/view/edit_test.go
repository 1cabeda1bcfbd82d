package view

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"eventdesk/internal/api"
	"eventdesk/internal/event"
	"eventdesk/internal/nav"
)

// mutRecorder records facade mutations and invalidations in order.
type mutRecorder struct {
	mu        sync.Mutex
	ops       []string
	updateErr error
	createErr error
}

func (m *mutRecorder) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *mutRecorder) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

func (m *mutRecorder) UpdateEvent(id string, fields event.Fields) (*event.Event, error) {
	m.record("update " + id)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	evt := &event.Event{ID: id}
	fields.Apply(evt)
	return evt, nil
}

func (m *mutRecorder) CreateEvent(fields event.Fields) (*event.Event, error) {
	m.record("create")
	if m.createErr != nil {
		return nil, m.createErr
	}
	evt := &event.Event{ID: "new"}
	fields.Apply(evt)
	return evt, nil
}

func (m *mutRecorder) Invalidate(kind string) int {
	m.record("invalidate " + kind)
	return 1
}

func validFields(overrides event.Fields) event.Fields {
	base := event.Fields{
		"title":    "Launch Party",
		"date":     "2024-05-01",
		"time":     "19:00",
		"location": "Main Hall",
	}
	return base.Merge(overrides)
}

func TestEditViewLoad(t *testing.T) {
	rec := &recorder{evt: &event.Event{
		ID:       "7",
		Title:    "Launch Party",
		Date:     "2024-05-01",
		Time:     "19:00",
		Location: "Main Hall",
	}}
	v := NewEditView("7", rec, rec)
	v.Load(context.Background())

	fields := v.Fields()
	if fields["title"] != "Launch Party" {
		t.Errorf("fields[title] = %q, want Launch Party", fields["title"])
	}
	if fields["date"] != "2024-05-01" {
		t.Errorf("fields[date] = %q, want 2024-05-01", fields["date"])
	}
}

func TestEditViewLoadError(t *testing.T) {
	rec := &recorder{fetchErr: &api.Error{StatusCode: 500, Message: "backend exploded"}}
	v := NewEditView("7", rec, rec)
	v.Load(context.Background())

	var buf strings.Builder
	v.Render(&buf)
	if !strings.Contains(buf.String(), "backend exploded") {
		t.Errorf("render = %q, want backend message", buf.String())
	}
	if strings.Contains(buf.String(), "[Save]") {
		t.Errorf("render = %q, errored form must not show controls", buf.String())
	}
}

func TestEditViewSubmitGoesThroughNavigator(t *testing.T) {
	rec := &recorder{evt: &event.Event{ID: "7", Title: "Old"}}
	v := NewEditView("7", rec, rec)
	v.Load(context.Background())
	v.SetField("title", "New")

	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	ops := rec.Ops()
	found := false
	for _, op := range ops {
		if op == "submit PUT" {
			found = true
		}
		if strings.HasPrefix(op, "update") {
			t.Errorf("view called the facade directly: %v", ops)
		}
	}
	if !found {
		t.Errorf("ops = %v, want a PUT submission through the navigator", ops)
	}
}

func TestEditViewClose(t *testing.T) {
	rec := &recorder{evt: &event.Event{ID: "7"}}
	v := NewEditView("7", rec, rec)
	v.Load(context.Background())
	v.SetField("title", "Unsaved change")

	if err := v.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ops := rec.Ops()
	last := ops[len(ops)-1]
	if last != "navigate /events/:id" {
		t.Errorf("last op = %q, want navigation to the detail route", last)
	}
	for _, op := range ops {
		if strings.HasPrefix(op, "submit") {
			t.Error("Close must not submit the form")
		}
	}
}

// submittingNav always reports an in-flight submission.
type submittingNav struct{ recorder }

func (s *submittingNav) Status() nav.Status { return nav.StatusSubmitting }

func TestEditViewRenderWhileSubmitting(t *testing.T) {
	rec := &submittingNav{recorder{evt: &event.Event{ID: "7", Title: "Launch Party"}}}
	v := NewEditView("7", rec, rec)
	v.Load(context.Background())

	var buf strings.Builder
	v.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "Sending...") {
		t.Errorf("render = %q, want sending message", out)
	}
	if strings.Contains(out, "[Save]") || strings.Contains(out, "[Close]") {
		t.Errorf("render = %q, controls must be absent while submitting", out)
	}
}

func TestEditAction(t *testing.T) {
	t.Run("update then invalidate then redirect", func(t *testing.T) {
		rec := &mutRecorder{}
		action := EditAction(rec, rec)

		redirect, err := action(context.Background(), nav.Params{"id": "7"},
			nav.Submission{Fields: validFields(event.Fields{"title": "New"}), Method: nav.MethodPut})
		if err != nil {
			t.Fatalf("action error = %v", err)
		}
		if redirect != nav.RedirectParent {
			t.Errorf("redirect = %q, want parent", redirect)
		}

		want := []string{"update 7", "invalidate events"}
		got := rec.Ops()
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("ops = %v, want %v", got, want)
		}
	})

	t.Run("failed update never invalidates", func(t *testing.T) {
		rec := &mutRecorder{updateErr: errors.New("conflict")}
		action := EditAction(rec, rec)

		_, err := action(context.Background(), nav.Params{"id": "7"},
			nav.Submission{Fields: validFields(nil), Method: nav.MethodPut})
		if err == nil {
			t.Fatal("action error = nil, want error")
		}
		for _, op := range rec.Ops() {
			if strings.HasPrefix(op, "invalidate") {
				t.Errorf("failed update invalidated the cache: %v", rec.Ops())
			}
		}
	})

	t.Run("invalid fields never reach the backend", func(t *testing.T) {
		rec := &mutRecorder{}
		action := EditAction(rec, rec)

		_, err := action(context.Background(), nav.Params{"id": "7"},
			nav.Submission{Fields: event.Fields{"title": ""}, Method: nav.MethodPut})
		if err == nil {
			t.Fatal("action error = nil, want validation error")
		}
		if len(rec.Ops()) != 0 {
			t.Errorf("ops = %v, want none", rec.Ops())
		}
	})

	t.Run("wrong method rejected", func(t *testing.T) {
		rec := &mutRecorder{}
		action := EditAction(rec, rec)
		if _, err := action(context.Background(), nav.Params{"id": "7"},
			nav.Submission{Fields: validFields(nil), Method: nav.MethodPost}); err == nil {
			t.Fatal("POST to edit action = nil, want error")
		}
	})
}

func TestCreateAction(t *testing.T) {
	rec := &mutRecorder{}
	action := CreateAction(rec, rec)

	redirect, err := action(context.Background(), nil,
		nav.Submission{Fields: validFields(nil), Method: nav.MethodPost})
	if err != nil {
		t.Fatalf("action error = %v", err)
	}
	if redirect != nav.Redirect(RouteEvents) {
		t.Errorf("redirect = %q, want %q", redirect, RouteEvents)
	}

	want := []string{"create", "invalidate events"}
	got := rec.Ops()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

// storeStub adapts mutRecorder-compatible reads for RegisterRoutes.
type storeStub struct {
	*mutRecorder
	evt *event.Event
}

func (s *storeStub) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	s.record("fetch " + id)
	return s.evt, nil
}

func (s *storeStub) ListEvents(ctx context.Context) ([]*event.Event, error) {
	s.record("list")
	return []*event.Event{s.evt}, nil
}

func TestEditSubmitEndToEnd(t *testing.T) {
	store := &storeStub{
		mutRecorder: &mutRecorder{},
		evt: &event.Event{
			ID:       "7",
			Title:    "Old",
			Date:     "2024-05-01",
			Time:     "19:00",
			Location: "Main Hall",
		},
	}

	navigator := nav.New()
	RegisterRoutes(navigator, store, store.mutRecorder)

	if err := navigator.Go(context.Background(), RouteEventEdit, nav.Params{"id": "7"}); err != nil {
		t.Fatalf("Go() error = %v", err)
	}

	v := NewEditView("7", store, navigator)
	v.Load(context.Background())
	v.SetField("title", "New")

	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if navigator.Location() != RouteEventDetail {
		t.Errorf("location = %q, want %q", navigator.Location(), RouteEventDetail)
	}

	// update must precede invalidate; the redirect loader runs after both
	var updateIdx, invalidateIdx, refetchIdx int = -1, -1, -1
	for i, op := range store.Ops() {
		switch {
		case op == "update 7":
			updateIdx = i
		case op == "invalidate events":
			invalidateIdx = i
		case op == "fetch 7" && i > 0:
			refetchIdx = i
		}
	}
	if updateIdx == -1 || invalidateIdx == -1 {
		t.Fatalf("ops = %v, want update and invalidate", store.Ops())
	}
	if updateIdx > invalidateIdx {
		t.Errorf("invalidate ran before update: %v", store.Ops())
	}
	if refetchIdx != -1 && refetchIdx < invalidateIdx {
		t.Errorf("redirect loader ran before invalidate: %v", store.Ops())
	}
}
