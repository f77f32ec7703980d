package portal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"arcade/internal/catalog"
	"arcade/internal/fullscreen"
	"arcade/pkg/realtime"
)

// SSE event names published to a visitor's pages.
const (
	EventMain   = "main"
	EventHeader = "header"
)

// Visitor is the state kept for one browser session.
type Visitor struct {
	ID         string
	Controller *Controller
	Bridge     *fullscreen.Bridge
	CreatedAt  time.Time
}

// Store holds visitors and delegates to realtime.RoomStore for lookup,
// broadcast and idle eviction. All visitors share one catalog.
type Store struct {
	r       *realtime.RoomStore[*Visitor]
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewStore creates an in-memory visitor store over c.
func NewStore(c *catalog.Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		r:       realtime.NewRoomStore[*Visitor](),
		catalog: c,
		logger:  logger,
	}
}

// Catalog is the catalog every visitor browses.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Visitor returns the visitor for id, creating a fresh one (with a new id)
// when id is empty or unknown. created reports which happened.
func (s *Store) Visitor(id string) (v *Visitor, created bool) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	room, created := s.r.GetOrCreate(id, func() *Visitor {
		return s.newVisitor(id)
	})
	if created {
		s.logger.Debug("visitor session created", "visitor", id)
	}
	return room.State, created
}

// Lookup returns an existing visitor.
func (s *Store) Lookup(id string) (*Visitor, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

func (s *Store) newVisitor(id string) *Visitor {
	bridge := fullscreen.NewBridge()
	logger := s.logger.With("visitor", id)
	return &Visitor{
		ID:         id,
		Controller: NewController(s.catalog, fullscreen.NewSession(bridge, logger)),
		Bridge:     bridge,
		CreatedAt:  time.Now().UTC(),
	}
}

// Broadcaster returns the SSE broadcaster for a visitor.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.Hub(), true
}

// Publish notifies the visitor's open pages of a typed event.
func (s *Store) Publish(id string, event string) {
	s.r.Publish(id, event)
}

// Len is the number of live visitors.
func (s *Store) Len() int {
	return s.r.Len()
}

// Forget drops a visitor immediately.
func (s *Store) Forget(id string) {
	if v, ok := s.r.Delete(id); ok {
		v.Controller.Release()
	}
}

// RunReaper evicts visitors idle longer than ttl until ctx is done.
func (s *Store) RunReaper(ctx context.Context, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	s.r.RunReaper(ctx, interval, ttl, func(v *Visitor) {
		v.Controller.Release()
		s.logger.Debug("visitor session expired", "visitor", v.ID)
	})
}
