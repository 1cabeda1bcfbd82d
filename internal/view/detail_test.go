package view

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventdesk/internal/api"
	"eventdesk/internal/event"
	"eventdesk/internal/nav"
)

// recorder plays every collaborator role and records the order of side
// effects, so sequencing guarantees can be asserted directly.
type recorder struct {
	mu  sync.Mutex
	ops []string

	evt       *event.Event
	fetchErr  error
	deleteErr error
	gate      chan struct{} // when non-nil, DeleteEvent blocks until closed

	deleteCalls int32
}

func (r *recorder) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *recorder) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	r.record("fetch " + id)
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.evt, nil
}

func (r *recorder) DeleteEvent(id string) error {
	atomic.AddInt32(&r.deleteCalls, 1)
	if r.gate != nil {
		<-r.gate
	}
	r.record("delete " + id)
	return r.deleteErr
}

func (r *recorder) Invalidate(kind string) int {
	r.record("invalidate " + kind)
	return 1
}

func (r *recorder) Go(ctx context.Context, pattern string, params nav.Params) error {
	r.record("navigate " + pattern)
	return nil
}

func (r *recorder) Submit(ctx context.Context, fields event.Fields, method nav.Method) error {
	r.record("submit " + string(method))
	return nil
}

func (r *recorder) Status() nav.Status { return nav.StatusIdle }

func newDetailFixture(rec *recorder) *DetailView {
	return NewDetailView("42", rec, rec, rec, rec)
}

func TestDetailRenderStates(t *testing.T) {
	t.Run("loading before Load", func(t *testing.T) {
		v := newDetailFixture(&recorder{})
		var buf strings.Builder
		v.Render(&buf)
		if !strings.Contains(buf.String(), "Loading event...") {
			t.Errorf("render = %q, want loading message", buf.String())
		}
	})

	t.Run("read failure renders fallback message", func(t *testing.T) {
		rec := &recorder{fetchErr: &api.Error{StatusCode: 500}}
		v := newDetailFixture(rec)
		v.Load(context.Background())

		var buf strings.Builder
		v.Render(&buf)
		out := buf.String()
		if !strings.Contains(out, "An error occurred!") {
			t.Errorf("render = %q, want error block", out)
		}
		if !strings.Contains(out, FallbackFetchMessage) {
			t.Errorf("render = %q, want fallback %q", out, FallbackFetchMessage)
		}
	})

	t.Run("read failure renders backend message verbatim", func(t *testing.T) {
		rec := &recorder{fetchErr: &api.Error{StatusCode: 404, Message: "no such event"}}
		v := newDetailFixture(rec)
		v.Load(context.Background())

		var buf strings.Builder
		v.Render(&buf)
		if !strings.Contains(buf.String(), "no such event") {
			t.Errorf("render = %q, want backend message", buf.String())
		}
		if strings.Contains(buf.String(), FallbackFetchMessage) {
			t.Errorf("render = %q, fallback shown despite backend message", buf.String())
		}
	})

	t.Run("loaded event renders formatted date", func(t *testing.T) {
		rec := &recorder{evt: &event.Event{
			ID:       "42",
			Title:    "Launch Party",
			Date:     "2024-05-01",
			Time:     "19:00",
			Location: "Main Hall",
		}}
		v := newDetailFixture(rec)
		v.Load(context.Background())

		var buf strings.Builder
		v.Render(&buf)
		out := buf.String()
		if !strings.Contains(out, "Launch Party") {
			t.Errorf("render = %q, want title", out)
		}
		if !strings.Contains(out, "May 1, 2024") {
			t.Errorf("render = %q, want date rendered as May 1, 2024", out)
		}
		if !strings.Contains(out, "[Edit] [Delete]") {
			t.Errorf("render = %q, want idle controls", out)
		}
	})
}

func TestDeleteFlow(t *testing.T) {
	loaded := func(rec *recorder) *DetailView {
		if rec.evt == nil {
			rec.evt = &event.Event{ID: "42", Title: "Launch Party", Date: "2024-05-01"}
		}
		v := newDetailFixture(rec)
		v.Load(context.Background())
		return v
	}

	t.Run("StartDelete only toggles state", func(t *testing.T) {
		rec := &recorder{}
		v := loaded(rec)

		if err := v.StartDelete(); err != nil {
			t.Fatalf("StartDelete() error = %v", err)
		}
		if v.State() != DeleteConfirming {
			t.Errorf("state = %s, want confirming", v.State())
		}
		if got := atomic.LoadInt32(&rec.deleteCalls); got != 0 {
			t.Errorf("delete calls = %d, want 0", got)
		}

		var buf strings.Builder
		v.Render(&buf)
		if !strings.Contains(buf.String(), "Are you sure?") {
			t.Errorf("render = %q, want confirmation dialog", buf.String())
		}
		if !strings.Contains(buf.String(), "[Cancel] [Delete]") {
			t.Errorf("render = %q, want dialog controls", buf.String())
		}
	})

	t.Run("StartDelete guarded outside idle", func(t *testing.T) {
		v := loaded(&recorder{})
		v.StartDelete()
		if err := v.StartDelete(); err == nil {
			t.Error("second StartDelete() = nil, want guard error")
		}
	})

	t.Run("CancelDelete returns to idle", func(t *testing.T) {
		v := loaded(&recorder{})
		v.StartDelete()
		if err := v.CancelDelete(); err != nil {
			t.Fatalf("CancelDelete() error = %v", err)
		}
		if v.State() != DeleteIdle {
			t.Errorf("state = %s, want idle", v.State())
		}
	})

	t.Run("ConfirmDelete guarded outside confirming", func(t *testing.T) {
		v := loaded(&recorder{})
		if err := v.ConfirmDelete(context.Background()); err == nil {
			t.Error("ConfirmDelete() from idle = nil, want guard error")
		}
	})

	t.Run("controls are absent while delete is pending", func(t *testing.T) {
		rec := &recorder{gate: make(chan struct{})}
		v := loaded(rec)
		v.StartDelete()

		done := make(chan struct{})
		go func() {
			v.ConfirmDelete(context.Background())
			close(done)
		}()

		for atomic.LoadInt32(&rec.deleteCalls) == 0 {
			time.Sleep(time.Millisecond)
		}

		if v.State() != DeletePending {
			t.Errorf("state mid-flight = %s, want pending", v.State())
		}
		var buf strings.Builder
		v.Render(&buf)
		out := buf.String()
		if !strings.Contains(out, "Deleting, please wait...") {
			t.Errorf("render = %q, want progress message", out)
		}
		if strings.Contains(out, "[Cancel]") || strings.Contains(out, "[Delete]") {
			t.Errorf("render = %q, controls must be absent while pending", out)
		}

		close(rec.gate)
		<-done
	})

	t.Run("success deletes then invalidates then navigates", func(t *testing.T) {
		rec := &recorder{}
		v := loaded(rec)
		v.StartDelete()

		if err := v.ConfirmDelete(context.Background()); err != nil {
			t.Fatalf("ConfirmDelete() error = %v", err)
		}

		if got := atomic.LoadInt32(&rec.deleteCalls); got != 1 {
			t.Errorf("delete calls = %d, want 1", got)
		}

		want := []string{"fetch 42", "delete 42", "invalidate events", "navigate /events"}
		got := rec.Ops()
		if len(got) != len(want) {
			t.Fatalf("ops = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ops[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
			}
		}
	})

	t.Run("failure stays confirming with inline error", func(t *testing.T) {
		rec := &recorder{deleteErr: &api.Error{StatusCode: 409, Message: "conflict"}}
		v := loaded(rec)
		v.StartDelete()

		if err := v.ConfirmDelete(context.Background()); err == nil {
			t.Fatal("ConfirmDelete() error = nil, want error")
		}
		if v.State() != DeleteConfirmingError {
			t.Errorf("state = %s, want confirming-error", v.State())
		}

		var buf strings.Builder
		v.Render(&buf)
		out := buf.String()
		if !strings.Contains(out, "conflict") {
			t.Errorf("render = %q, want inline backend message", out)
		}
		if !strings.Contains(out, "[Cancel] [Delete]") {
			t.Errorf("render = %q, want controls retained for retry", out)
		}

		for _, op := range rec.Ops() {
			if strings.HasPrefix(op, "invalidate") || strings.HasPrefix(op, "navigate") {
				t.Errorf("failed delete caused %q", op)
			}
		}
	})

	t.Run("failure without backend message uses fallback", func(t *testing.T) {
		rec := &recorder{deleteErr: &api.Error{StatusCode: 500}}
		v := loaded(rec)
		v.StartDelete()
		v.ConfirmDelete(context.Background())

		var buf strings.Builder
		v.Render(&buf)
		if !strings.Contains(buf.String(), FallbackDeleteMessage) {
			t.Errorf("render = %q, want fallback %q", buf.String(), FallbackDeleteMessage)
		}
	})

	t.Run("retry after failure issues a second delete", func(t *testing.T) {
		rec := &recorder{deleteErr: &api.Error{StatusCode: 409, Message: "conflict"}}
		v := loaded(rec)
		v.StartDelete()
		v.ConfirmDelete(context.Background())

		rec.deleteErr = nil
		if err := v.ConfirmDelete(context.Background()); err != nil {
			t.Fatalf("retry ConfirmDelete() error = %v", err)
		}
		if got := atomic.LoadInt32(&rec.deleteCalls); got != 2 {
			t.Errorf("delete calls = %d, want 2", got)
		}
		var buf strings.Builder
		v.Render(&buf)
		if !strings.Contains(buf.String(), "Event deleted.") {
			t.Errorf("render = %q, want deleted message", buf.String())
		}
	})
}
