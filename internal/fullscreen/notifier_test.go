package fullscreen

import "testing"

func TestNotifier_ZeroValue(t *testing.T) {
	var n Notifier
	var got []bool
	cancel := n.Subscribe(func(active bool) { got = append(got, active) })
	if n.Len() != 1 {
		t.Fatalf("Len %d, want 1", n.Len())
	}

	n.Notify(true)
	cancel()
	n.Notify(false)

	if len(got) != 1 || !got[0] {
		t.Errorf("notifications %v, want [true]", got)
	}
	if n.Len() != 0 {
		t.Errorf("Len after cancel %d, want 0", n.Len())
	}
}

func TestNotifier_CallbackMayCancel(t *testing.T) {
	var n Notifier
	calls := 0
	var cancel func()
	cancel = n.Subscribe(func(bool) {
		calls++
		cancel()
	})

	n.Notify(true)
	n.Notify(true)
	if calls != 1 {
		t.Errorf("calls %d, want 1", calls)
	}
}
