package fullscreen

import "sync"

// Command is an instruction for the page that owns the real Fullscreen API.
type Command string

const (
	CommandNone  Command = ""
	CommandEnter Command = "enter"
	CommandExit  Command = "exit"
)

// Bridge is a Host backed by the browser pages of one visitor. Requests are
// queued as a Command that the page picks up in the response to its toggle
// call, so the browser sees the Fullscreen API call inside the user's
// gesture. Pages report every fullscreenchange or fullscreenerror through
// Report.
//
// Several tabs may share a bridge. The tab that reported entering
// fullscreen owns it until it reports leaving; exits reported by other tabs
// are ignored meanwhile, unless that tab ran the last command.
type Bridge struct {
	Notifier

	mu        sync.Mutex
	active    bool
	supported bool
	pending   Command
	owner     string
	commander string
}

var _ Host = (*Bridge)(nil)

// NewBridge returns a bridge that assumes a page with fullscreen support
// until a page says otherwise.
func NewBridge() *Bridge {
	return &Bridge{supported: true}
}

// Active is the state last accepted from a page.
func (b *Bridge) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Request queues an enter command.
func (b *Bridge) Request() error {
	return b.queue(CommandEnter)
}

// Exit queues an exit command.
func (b *Bridge) Exit() error {
	return b.queue(CommandExit)
}

func (b *Bridge) queue(cmd Command) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.supported {
		return ErrUnsupported
	}
	if b.pending != CommandNone {
		return ErrPending
	}
	b.pending = cmd
	return nil
}

// TakeCommand hands the queued command to page and clears it.
func (b *Bridge) TakeCommand(page string) Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	cmd := b.pending
	b.pending = CommandNone
	if cmd != CommandNone {
		b.commander = page
	}
	return cmd
}

// Report records the fullscreen state of page and notifies subscribers. It
// returns false when the report came from a background tab and was dropped.
func (b *Bridge) Report(page string, active, supported bool) bool {
	b.mu.Lock()
	if !active && b.active && b.owner != "" && page != b.owner && page != b.commander {
		b.mu.Unlock()
		return false
	}
	b.active = active
	b.supported = supported
	if active {
		b.owner = page
	} else {
		b.owner = ""
	}
	b.mu.Unlock()

	b.Notify(active)
	return true
}
