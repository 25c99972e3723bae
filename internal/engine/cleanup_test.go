package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
)

func testCleanupConfig() config.CleanupConfig {
	return config.CleanupConfig{
		Interval:       config.Duration(5 * time.Second),
		CancelAttempts: 3,
		CancelBackoff:  config.Duration(5 * time.Millisecond),
	}
}

type fakeArchiver struct {
	mu     sync.Mutex
	groups []*domain.OrderGroup
}

func (a *fakeArchiver) ArchiveGroup(_ context.Context, g *domain.OrderGroup) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.groups = append(a.groups, g)
	return nil
}

func newCleaner(h *harness, journal GroupArchiver) *Cleaner {
	return NewCleaner(h.sim, h.tracker, h.bus, journal, testCleanupConfig(), 30*time.Second, "WDO", testLogger())
}

func TestCleanupCancelsOrphanLeg(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)

	// Stop fill whose sibling cancel failed: CLOSED group, take leg live.
	h.sim.FailCancel(v.TakeID, errors.New("gateway timeout"))
	fill, _ := h.sim.FillOrder(v.StopID, 5490)
	h.disp.handleEvent(ctx, fill)
	h.sim.FailCancel(v.TakeID, nil)

	c := newCleaner(h, nil)
	c.cycle(ctx)

	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state after cleanup = %q, want %q", st, StateFlat)
	}
	if got := h.tracker.OrphanCandidates(); len(got) != 0 {
		t.Errorf("OrphanCandidates after cleanup = %+v, want empty", got)
	}
	evs := h.bus.Recent()
	found := false
	for _, ev := range evs {
		if ev.Type == domain.EventOrphanOrderRemoved && ev.OrderID == v.TakeID && ev.Outcome == "cancelled" {
			found = true
		}
	}
	if !found {
		t.Error("no orphan_order_removed/cancelled event for the take leg")
	}
}

func TestCleanupGivesUpAfterBoundedRetries(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)

	h.sim.FailCancel(v.TakeID, errors.New("gateway timeout"))
	fill, _ := h.sim.FillOrder(v.StopID, 5490)
	h.disp.handleEvent(ctx, fill)
	before := h.sim.CancelCalls(v.TakeID) // dispatcher's own failed attempt

	c := newCleaner(h, nil)
	c.cycle(ctx)

	if got := h.sim.CancelCalls(v.TakeID) - before; got != 3 {
		t.Errorf("cleanup cancel attempts = %d, want 3", got)
	}
	// Removed from tracking regardless of outcome.
	if got := h.tracker.OrphanCandidates(); len(got) != 0 {
		t.Errorf("OrphanCandidates after giving up = %+v, want empty", got)
	}
	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state = %q, want %q", st, StateFlat)
	}
	found := false
	for _, ev := range h.bus.Recent() {
		if ev.Type == domain.EventOrphanOrderRemoved && ev.OrderID == v.TakeID && ev.Outcome == "failed" {
			found = true
		}
	}
	if !found {
		t.Error("no orphan_order_removed/failed event after retries exhausted")
	}
}

func TestCleanupCancelsStrayOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	strayID := h.sim.PlaceStrayOrder("WDO", domain.SideShort, 1, 5520, time.Minute)

	c := newCleaner(h, nil)
	c.cycle(ctx)

	if st, _ := h.sim.GetOrderStatus(ctx, strayID); st != domain.OrderStatusCancelled {
		t.Errorf("stray status = %q, want %q", st, domain.OrderStatusCancelled)
	}
	found := false
	for _, ev := range h.bus.Recent() {
		if ev.Type == domain.EventOrphanOrderRemoved && ev.OrderID == strayID {
			found = true
		}
	}
	if !found {
		t.Error("no orphan_order_removed event for the stray")
	}
}

func TestCleanupStrayRetryBudgetNotRepeated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	strayID := h.sim.PlaceStrayOrder("WDO", domain.SideShort, 1, 5520, time.Minute)
	h.sim.FailCancel(strayID, errors.New("gateway timeout"))

	c := newCleaner(h, nil)
	c.cycle(ctx)
	if got := h.sim.CancelCalls(strayID); got != 3 {
		t.Fatalf("cancel attempts = %d, want 3", got)
	}
	// A later cycle does not burn retries on an order already given up.
	c.cycle(ctx)
	if got := h.sim.CancelCalls(strayID); got != 3 {
		t.Errorf("cancel attempts after second cycle = %d, want still 3", got)
	}
}

func TestCleanupPrunesGiveUpMarksForGoneOrders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	strayID := h.sim.PlaceStrayOrder("WDO", domain.SideShort, 1, 5520, time.Minute)
	h.sim.FailCancel(strayID, errors.New("gateway timeout"))

	c := newCleaner(h, nil)
	c.cycle(ctx)
	if !c.gaveUp[strayID] {
		t.Fatal("stray not marked given up after exhausted retries")
	}

	// The order leaves the venue's books; the mark must go with it.
	h.sim.FailCancel(strayID, nil)
	if err := h.sim.CancelOrder(ctx, strayID); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	c.cycle(ctx)
	if len(c.gaveUp) != 0 {
		t.Errorf("gaveUp holds %d entries after the order left the venue", len(c.gaveUp))
	}
}

func TestCleanupSkipsFreshStray(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	strayID := h.sim.PlaceStrayOrder("WDO", domain.SideShort, 1, 5520, 0)

	c := newCleaner(h, nil)
	c.cycle(ctx)

	if st, _ := h.sim.GetOrderStatus(ctx, strayID); st != domain.OrderStatusWorking {
		t.Errorf("fresh order status = %q, want still %q", st, domain.OrderStatusWorking)
	}
}

func TestCleanupResolvesStuckOpening(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v, err := h.engine.TryOpen(ctx, domain.TradeIntent{
		Side: domain.SideLong, Qty: 1, StopPrice: 5490, TakePrice: 5520, RefPrice: 5500,
	})
	if err != nil {
		t.Fatalf("TryOpen: %v", err)
	}

	// Zero wait bound: the OPENING state is already overdue.
	c := NewCleaner(h.sim, h.tracker, h.bus, nil, testCleanupConfig(), time.Nanosecond, "WDO", testLogger())
	time.Sleep(time.Millisecond)
	c.cycle(ctx)

	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state = %q, want %q", st, StateFlat)
	}
	if n := h.sim.CancelCalls(v.EntryID); n == 0 {
		t.Error("stuck entry order was not cancelled")
	}
	if err := h.tracker.TryOpen(newTestGroup("next")); err != nil {
		t.Errorf("TryOpen after stuck-opening reset: %v", err)
	}
}

func TestCleanupResolvesStuckClosing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)

	// Leg fill whose sibling cancel never confirms.
	h.sim.FailCancel(v.TakeID, errors.New("gateway timeout"))
	fill, _ := h.sim.FillOrder(v.StopID, 5490)
	h.disp.handleEvent(ctx, fill)
	if st, _ := h.tracker.State(); st != StateClosing {
		t.Fatalf("precondition: state = %q, want %q", st, StateClosing)
	}

	c := NewCleaner(h.sim, h.tracker, h.bus, nil, testCleanupConfig(), time.Nanosecond, "WDO", testLogger())
	time.Sleep(time.Millisecond)
	c.resolveStuckState(ctx)

	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state = %q, want %q", st, StateFlat)
	}
}

func TestCleanupArchivesFinishedGroups(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)

	fill, _ := h.sim.FillOrder(v.TakeID, 5520)
	h.disp.handleEvent(ctx, fill)

	journal := &fakeArchiver{}
	c := newCleaner(h, journal)
	c.cycle(ctx)

	if len(journal.groups) != 1 {
		t.Fatalf("archived groups = %d, want 1", len(journal.groups))
	}
	g := journal.groups[0]
	if g.ID != v.ID || g.Reason != domain.CloseTakeHit {
		t.Errorf("archived group = %s/%s, want %s/%s", g.ID, g.Reason, v.ID, domain.CloseTakeHit)
	}
}

func TestFinalPassFlattensActivePosition(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.openFilled(t, ctx)

	journal := &fakeArchiver{}
	c := newCleaner(h, journal)
	c.FinalPass(ctx)

	if h.sim.CloseCalls() != 1 {
		t.Errorf("CloseCalls() = %d, want 1", h.sim.CloseCalls())
	}
	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state after final pass = %q, want %q", st, StateFlat)
	}
	pos, _ := h.sim.GetPosition(ctx, "WDO")
	if pos != nil {
		t.Errorf("venue position after final pass = %+v, want nil", pos)
	}
	if len(journal.groups) != 1 {
		t.Errorf("archived groups = %d, want 1", len(journal.groups))
	}
}
