package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
}

func TestBroadcaster_Subscribe(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe returned nil channel")
	}
	b.Unsubscribe(ch)
}

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	if n := b.Publish("main"); n != 1 {
		t.Errorf("Publish reached %d subscribers, want 1", n)
	}
	got := <-ch
	if got != "main" {
		t.Errorf("got event %q, want %q", got, "main")
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("header")
	if got := <-ch1; got != "header" {
		t.Errorf("ch1 got %q, want header", got)
	}
	if got := <-ch2; got != "header" {
		t.Errorf("ch2 got %q, want header", got)
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	_, open := <-ch
	if open {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestBroadcaster_UnsubscribeRemovesFromDelivery(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	b.Unsubscribe(ch1) // ch1 is closed; only ch2 should receive subsequent events
	b.Publish("fullscreen")
	if got := <-ch2; got != "fullscreen" {
		t.Errorf("ch2 got %q, want fullscreen", got)
	}
	b.Unsubscribe(ch2)
}

func TestBroadcaster_PublishSkipsLaggingSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)
	for i := 0; i < cap(ch); i++ {
		b.Publish("main")
	}
	if n := b.Publish("main"); n != 0 {
		t.Errorf("full subscriber should be skipped, reached %d", n)
	}
}

func TestBroadcaster_CloseClosesAll(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	b.Close()
	if b.Len() != 0 {
		t.Errorf("Len %d after Close, want 0", b.Len())
	}
	if _, open := <-ch1; open {
		t.Error("ch1 should be closed")
	}
	if _, open := <-ch2; open {
		t.Error("ch2 should be closed")
	}
	b.Unsubscribe(ch1)
}
