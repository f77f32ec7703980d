package portal

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"arcade/internal/catalog"
)

func newTestStore() *Store {
	return NewStore(catalog.Load([]byte(scenarioCatalog), nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewStore(t *testing.T) {
	s := newTestStore()
	if s == nil {
		t.Fatal("NewStore returned nil")
	}
	if s.Catalog().Len() != 2 {
		t.Errorf("catalog len %d, want 2", s.Catalog().Len())
	}
}

func TestStore_VisitorCreatesWithFreshID(t *testing.T) {
	s := newTestStore()
	v, created := s.Visitor("")
	if !created {
		t.Fatal("empty id should create a visitor")
	}
	if _, err := uuid.Parse(v.ID); err != nil {
		t.Errorf("visitor id %q is not a uuid: %v", v.ID, err)
	}
	if v.Controller == nil || v.Bridge == nil {
		t.Fatal("visitor missing controller or bridge")
	}

	again, created := s.Visitor(v.ID)
	if created || again != v {
		t.Error("known id should return the same visitor")
	}

	forged, created := s.Visitor("not-a-uuid")
	if !created || forged.ID == "not-a-uuid" {
		t.Error("malformed id should be replaced")
	}
}

func TestStore_VisitorsAreIsolated(t *testing.T) {
	s := newTestStore()
	a, _ := s.Visitor("")
	b, _ := s.Visitor("")
	a.Controller.SelectKey("1")
	if b.Controller.View() != ViewLibrary {
		t.Error("selection leaked between visitors")
	}
}

func TestStore_Publish(t *testing.T) {
	s := newTestStore()
	v, _ := s.Visitor("")
	hub, ok := s.Broadcaster(v.ID)
	if !ok {
		t.Fatal("Broadcaster missing for existing visitor")
	}
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish(v.ID, EventMain)
	if got := <-ch; got != EventMain {
		t.Errorf("got event %q, want %q", got, EventMain)
	}

	if _, ok := s.Broadcaster("unknown"); ok {
		t.Error("Broadcaster should report false for unknown visitor")
	}
}

func TestStore_Forget(t *testing.T) {
	s := newTestStore()
	v, _ := s.Visitor("")
	s.Forget(v.ID)
	if _, ok := s.Lookup(v.ID); ok {
		t.Error("visitor should be gone")
	}
	if s.Len() != 0 {
		t.Errorf("Len %d, want 0", s.Len())
	}
	s.Forget(v.ID)
}
