package fullscreen

import "sync"

// Notifier is the subscriber registry behind Host.Subscribe. Hosts embed it
// and call Notify after recording a new state. The zero value is ready to use.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]func(bool)
	next int
}

// Subscribe registers fn for every notified state.
func (n *Notifier) Subscribe(fn func(active bool)) (cancel func()) {
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[int]func(bool))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Notify calls every subscriber with active. Callbacks run outside the
// lock so they may subscribe or cancel.
func (n *Notifier) Notify(active bool) {
	n.mu.Lock()
	fns := make([]func(bool), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(active)
	}
}

// Len is the number of live subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
