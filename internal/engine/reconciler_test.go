package engine

import (
	"context"
	"testing"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
)

func testReconcileConfig() config.ReconcileConfig {
	return config.ReconcileConfig{
		Interval:       config.Duration(10 * time.Second),
		GraceCycles:    2,
		OpeningTimeout: config.Duration(30 * time.Second),
	}
}

func newReconciler(h *harness) *Reconciler {
	return NewReconciler(h.sim, h.tracker, h.bus, testReconcileConfig(), "WDO", testLogger())
}

func countEvents(evs []domain.Event, typ domain.EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestReconcileAgreeOpen(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.openFilled(t, ctx)
	r := newReconciler(h)

	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateOpen {
		t.Errorf("state = %q, want %q", st, StateOpen)
	}
	if n := countEvents(h.bus.Recent(), domain.EventReconciliationConflict); n != 0 {
		t.Errorf("conflict events = %d, want 0", n)
	}
}

func TestReconcileAgreeFlat(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := newReconciler(h)

	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if h.tracker.IsOpen() {
		t.Error("agree-flat cycle opened a position")
	}
}

func TestGhostPositionToleratedThroughGrace(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)
	r := newReconciler(h)

	// Venue starts reporting flat while both legs stay confirmed working.
	h.sim.SetPosition(nil)

	for i := 1; i <= 2; i++ {
		if err := r.cycle(ctx); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if st, _ := h.tracker.State(); st != StateOpen {
			t.Fatalf("cycle %d flattened inside the grace period, state = %q", i, st)
		}
	}
	if n := countEvents(h.bus.Recent(), domain.EventReconciliationConflict); n != 0 {
		t.Fatalf("conflict raised during grace period")
	}

	// Third consecutive cycle: grace exhausted, venue truth is forced.
	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle 3: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state after grace expiry = %q, want %q", st, StateFlat)
	}
	recent := h.bus.Recent()
	if n := countEvents(recent, domain.EventReconciliationConflict); n != 1 {
		t.Errorf("conflict events = %d, want 1", n)
	}
	if n := countEvents(recent, domain.EventPositionClosed); n != 1 {
		t.Errorf("position_closed events = %d, want 1", n)
	}
	if h.sim.CancelCalls(v.StopID) != 1 || h.sim.CancelCalls(v.TakeID) != 1 {
		t.Errorf("leg cancels = (%d, %d), want (1, 1)",
			h.sim.CancelCalls(v.StopID), h.sim.CancelCalls(v.TakeID))
	}
}

func TestGhostRecoveryResetsGrace(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	g := h.openFilled(t, ctx)
	r := newReconciler(h)

	h.sim.SetPosition(nil)
	for i := 0; i < 2; i++ {
		if err := r.cycle(ctx); err != nil {
			t.Fatalf("cycle: %v", err)
		}
	}
	// Venue catches up and reports the position again.
	h.sim.SetPosition(&domain.PositionSnapshot{Symbol: "WDO", Side: g.Side, Qty: g.Qty, AvgEntryPrice: 5500})
	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	// A later single flat report starts the grace count from zero.
	h.sim.SetPosition(nil)
	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateOpen {
		t.Errorf("state = %q, want %q after streak reset", st, StateOpen)
	}
}

func TestGhostStreakDoesNotCarryAcrossGroups(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := newReconciler(h)

	// First group spends part of its grace as a ghost, then closes
	// normally through a stop fill.
	v1 := h.openFilled(t, ctx)
	h.sim.SetPosition(nil)
	for i := 0; i < 2; i++ {
		if err := r.cycle(ctx); err != nil {
			t.Fatalf("cycle: %v", err)
		}
	}
	fill, err := h.sim.FillOrder(v1.StopID, 5490)
	if err != nil {
		t.Fatalf("FillOrder(stop): %v", err)
	}
	h.disp.handleEvent(ctx, fill)

	// A second group ghosting on its first cycle gets the full grace.
	v2 := h.openFilled(t, ctx)
	h.sim.SetPosition(nil)
	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateOpen {
		t.Errorf("state = %q, want %q; leftover streak shortened the new group's grace", st, StateOpen)
	}
	if v, ok := h.tracker.ActiveGroup(); !ok || v.ID != v2.ID {
		t.Errorf("active group = %+v ok=%v, want %q", v, ok, v2.ID)
	}
}

func TestGhostWithDeadLegsForcedImmediately(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	v := h.openFilled(t, ctx)
	r := newReconciler(h)

	// Venue flat and the legs are gone too: nothing supports the local
	// group, no grace applies.
	h.sim.SetPosition(nil)
	h.sim.CancelOrder(ctx, v.StopID)
	h.sim.CancelOrder(ctx, v.TakeID)

	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateFlat {
		t.Errorf("state = %q, want %q", st, StateFlat)
	}
	if n := countEvents(h.bus.Recent(), domain.EventReconciliationConflict); n != 1 {
		t.Errorf("conflict events = %d, want 1", n)
	}
}

func TestMissedFillAdoptedImmediately(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	r := newReconciler(h)

	// The venue holds a LONG position the engine never saw, with its
	// protective pair still working.
	h.sim.SetPosition(&domain.PositionSnapshot{Symbol: "WDO", Side: domain.SideLong, Qty: 1, AvgEntryPrice: 5500})
	stopID := h.sim.PlaceStrayStop("WDO", domain.SideShort, 1, 5490, time.Minute)
	takeID := h.sim.PlaceStrayOrder("WDO", domain.SideShort, 1, 5520, time.Minute)

	if err := r.cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if st, _ := h.tracker.State(); st != StateOpen {
		t.Fatalf("state = %q, want %q", st, StateOpen)
	}
	v, ok := h.tracker.ActiveGroup()
	if !ok {
		t.Fatal("no active group after adoption")
	}
	if v.Side != domain.SideLong || v.Qty != 1 || v.EntryPrice != 5500 {
		t.Errorf("adopted group = %+v, want LONG x1 @5500", v)
	}
	if v.StopID != stopID || v.TakeID != takeID {
		t.Errorf("adopted legs = (%q, %q), want (%q, %q)", v.StopID, v.TakeID, stopID, takeID)
	}
	if n := countEvents(h.bus.Recent(), domain.EventPositionOpened); n != 1 {
		t.Errorf("position_opened events = %d, want 1", n)
	}

	// The dispatcher can now route fills for the adopted legs.
	if _, role, ok := h.tracker.FindByOrderID(stopID); !ok || role != domain.RoleStop {
		t.Errorf("adopted stop not resolvable, role=%q ok=%v", role, ok)
	}
}
