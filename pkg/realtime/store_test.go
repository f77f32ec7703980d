package realtime

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore() (*RoomStore[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewRoomStore[string]()
	s.now = clock.now
	return s, clock
}

func TestNewRoomStore(t *testing.T) {
	s := NewRoomStore[string]()
	if s == nil {
		t.Fatal("NewRoomStore returned nil")
	}
}

func TestRoomStore_Create_Get(t *testing.T) {
	s := NewRoomStore[string]()
	s.Create("room1", "state1")
	room, ok := s.Get("room1")
	if !ok {
		t.Fatal("Get returned false for existing room")
	}
	if room.ID != "room1" {
		t.Errorf("room ID %q, want room1", room.ID)
	}
	if room.State != "state1" {
		t.Errorf("room State %q, want state1", room.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestRoomStore_GetOrCreate(t *testing.T) {
	s := NewRoomStore[string]()
	builds := 0
	build := func() string { builds++; return "fresh" }

	r1, created := s.GetOrCreate("a", build)
	if !created || r1.State != "fresh" {
		t.Fatalf("first GetOrCreate created=%v state=%q", created, r1.State)
	}
	r2, created := s.GetOrCreate("a", build)
	if created || r2 != r1 {
		t.Error("second GetOrCreate should return the existing room")
	}
	if builds != 1 {
		t.Errorf("build ran %d times, want 1", builds)
	}
}

func TestRoomStore_Publish(t *testing.T) {
	s := NewRoomStore[string]()
	room := s.Create("r1", "x")
	ch := room.Hub().Subscribe()
	defer room.Hub().Unsubscribe(ch)

	if n := s.Publish("r1", "event1"); n != 1 {
		t.Errorf("Publish reached %d, want 1", n)
	}
	got := <-ch
	if got != "event1" {
		t.Errorf("got %q, want event1", got)
	}
	if n := s.Publish("missing", "event1"); n != 0 {
		t.Errorf("Publish to missing room reached %d", n)
	}
}

func TestRoomStore_Delete(t *testing.T) {
	s := NewRoomStore[string]()
	room := s.Create("r1", "x")
	ch := room.Hub().Subscribe()

	state, ok := s.Delete("r1")
	if !ok || state != "x" {
		t.Fatalf("Delete = %q, %v", state, ok)
	}
	if _, open := <-ch; open {
		t.Error("subscriber channel should be closed on delete")
	}
	if _, ok := s.Delete("r1"); ok {
		t.Error("second Delete should report false")
	}
}

func TestRoomStore_SweepEvictsIdleRooms(t *testing.T) {
	s, clock := newTestStore()
	s.Create("idle", "old")
	s.Create("watched", "busy")
	ch := s.rooms["watched"].Hub().Subscribe()
	defer s.rooms["watched"].Hub().Unsubscribe(ch)

	clock.t = clock.t.Add(time.Minute)
	s.Create("recent", "new")

	clock.t = clock.t.Add(30 * time.Second)
	evicted := s.Sweep(time.Minute)
	if len(evicted) != 1 || evicted[0] != "old" {
		t.Fatalf("evicted %v, want [old]", evicted)
	}
	if s.Len() != 2 {
		t.Errorf("Len %d, want 2", s.Len())
	}
}

func TestRoomStore_GetRefreshesLastSeen(t *testing.T) {
	s, clock := newTestStore()
	s.Create("r", "x")
	clock.t = clock.t.Add(50 * time.Second)
	s.Get("r")
	clock.t = clock.t.Add(50 * time.Second)
	if evicted := s.Sweep(time.Minute); len(evicted) != 0 {
		t.Errorf("recently read room evicted: %v", evicted)
	}
}

func TestRoomStore_RunReaperStopsOnCancel(t *testing.T) {
	s := NewRoomStore[string]()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunReaper(ctx, time.Millisecond, time.Hour, nil)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunReaper did not stop after cancel")
	}
}
