package realtime

import (
	"context"
	"sync"
	"time"
)

// Room holds the state owned by one key plus its broadcaster.
type Room[T any] struct {
	ID    string
	State T

	hub      *Broadcaster
	lastSeen time.Time
}

// Hub returns the room's broadcaster.
func (r *Room[T]) Hub() *Broadcaster {
	return r.hub
}

// RoomStore keeps rooms in memory. Nothing survives the process.
type RoomStore[T any] struct {
	mu    sync.Mutex
	rooms map[string]*Room[T]
	now   func() time.Time
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a room with the given id and state, replacing any previous one.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster(), lastSeen: s.now()}
	if old, ok := s.rooms[id]; ok {
		old.hub.Close()
	}
	s.rooms[id] = r
	return r
}

// Get returns the room by id and marks it as seen.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if ok {
		r.lastSeen = s.now()
	}
	return r, ok
}

// GetOrCreate returns the room for id, building its state when missing.
// created reports whether build ran.
func (s *RoomStore[T]) GetOrCreate(id string, build func() T) (room *Room[T], created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		r.lastSeen = s.now()
		return r, false
	}
	r := &Room[T]{ID: id, State: build(), hub: NewBroadcaster(), lastSeen: s.now()}
	s.rooms[id] = r
	return r, true
}

// Delete removes a room and closes its subscribers.
func (s *RoomStore[T]) Delete(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.rooms, id)
	r.hub.Close()
	return r.State, true
}

// Len is the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// Publish notifies subscribers of the room and returns the number reached.
func (s *RoomStore[T]) Publish(id string, event string) int {
	s.mu.Lock()
	r, ok := s.rooms[id]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	return r.hub.Publish(event)
}

// Sweep removes rooms idle for longer than ttl that have no subscribers and
// returns their states.
func (s *RoomStore[T]) Sweep(ttl time.Duration) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	var evicted []T
	for id, r := range s.rooms {
		if r.lastSeen.After(cutoff) || r.hub.Len() > 0 {
			continue
		}
		delete(s.rooms, id)
		r.hub.Close()
		evicted = append(evicted, r.State)
	}
	return evicted
}

// RunReaper sweeps every interval until ctx is done, handing evicted states to onEvict.
func (s *RoomStore[T]) RunReaper(ctx context.Context, interval, ttl time.Duration, onEvict func(T)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, state := range s.Sweep(ttl) {
				if onEvict != nil {
					onEvict(state)
				}
			}
		}
	}
}
