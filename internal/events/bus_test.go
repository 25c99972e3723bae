package events

import (
	"fmt"
	"testing"

	"quantra/internal/domain"
)

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	id1, ch1 := b.Subscribe(4)
	id2, ch2 := b.Subscribe(4)
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	b.Publish(domain.Event{Type: domain.EventPositionOpened, GroupID: "g1"})

	for i, ch := range []<-chan domain.Event{ch1, ch2} {
		ev := <-ch
		if ev.GroupID != "g1" {
			t.Errorf("subscriber %d got GroupID %q, want %q", i, ev.GroupID, "g1")
		}
	}
}

func TestBusSlowSubscriberDrops(t *testing.T) {
	b := NewBus()
	id, ch := b.Subscribe(1)
	defer b.Unsubscribe(id)

	b.Publish(domain.Event{Type: domain.EventOrderFilled})
	b.Publish(domain.Event{Type: domain.EventOrderFilled})

	if got := b.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}
	// The first event is still deliverable.
	if ev := <-ch; ev.Type != domain.EventOrderFilled {
		t.Errorf("got %q, want %q", ev.Type, domain.EventOrderFilled)
	}
}

func TestBusRecentWrapsRing(t *testing.T) {
	b := NewBus()
	n := defaultKeep + 10
	for i := 0; i < n; i++ {
		b.Publish(domain.Event{GroupID: fmt.Sprintf("g%d", i)})
	}

	recent := b.Recent()
	if len(recent) != defaultKeep {
		t.Fatalf("len(Recent()) = %d, want %d", len(recent), defaultKeep)
	}
	if want := fmt.Sprintf("g%d", n-defaultKeep); recent[0].GroupID != want {
		t.Errorf("oldest retained = %q, want %q", recent[0].GroupID, want)
	}
	if want := fmt.Sprintf("g%d", n-1); recent[len(recent)-1].GroupID != want {
		t.Errorf("newest retained = %q, want %q", recent[len(recent)-1].GroupID, want)
	}
	if got := b.Published(); got != uint64(n) {
		t.Errorf("Published() = %d, want %d", got, n)
	}
}
