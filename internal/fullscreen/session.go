// Package fullscreen mirrors the host environment's fullscreen state and
// issues enter/exit requests against it.
package fullscreen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrUnsupported is returned by hosts that cannot enter or leave fullscreen.
	ErrUnsupported = errors.New("fullscreen unsupported")
	// ErrPending is returned while a previous command is still waiting to be delivered.
	ErrPending = errors.New("fullscreen command already pending")
)

// Host is the environment that actually owns fullscreen. Request and Exit
// start an asynchronous change and return before it settles; the outcome
// arrives through the Subscribe callback, as do changes the host makes on
// its own (the user pressing escape, browser chrome forcing an exit).
type Host interface {
	Active() bool
	Request() error
	Exit() error
	Subscribe(fn func(active bool)) (cancel func())
}

// Session tracks the last known fullscreen state of a Host.
type Session struct {
	mu      sync.Mutex
	host    Host
	logger  *slog.Logger
	active  bool
	reports uint64
	cancel  func()
}

// NewSession subscribes to host and seeds the flag from host.Active.
func NewSession(host Host, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{host: host, logger: logger}
	s.active = host.Active()
	s.cancel = host.Subscribe(s.observe)
	return s
}

func (s *Session) observe(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != active {
		s.logger.Debug("fullscreen changed by host", "active", active)
	}
	s.active = active
	s.reports++
}

// Toggle asks the host to enter fullscreen when it is not fullscreen and to
// leave it otherwise. A failed request is logged and leaves the flag as it
// was. A host report that lands while the request is in flight takes
// precedence over the optimistic update.
func (s *Session) Toggle() {
	s.mu.Lock()
	seen := s.reports
	s.mu.Unlock()

	want := !s.host.Active()
	var err error
	if want {
		err = s.host.Request()
	} else {
		err = s.host.Exit()
	}
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrUnsupported) {
			level = slog.LevelDebug
		}
		s.logger.Log(context.Background(), level, "fullscreen request failed", "enter", want, "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reports == seen {
		s.active = want
	}
}

// Active is the tracked flag. It is a best-effort mirror, not the truth.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close stops listening to the host.
func (s *Session) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
