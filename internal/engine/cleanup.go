package engine

import (
	"context"
	"log/slog"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
	"quantra/internal/events"
	"quantra/internal/venue"
)

// strayMinAge keeps cleanup from racing a bracket whose submission has not
// finished registering its order ids yet.
const strayMinAge = 10 * time.Second

// GroupArchiver persists finished groups. Implemented by the sqlite
// journal; nil disables archiving.
type GroupArchiver interface {
	ArchiveGroup(ctx context.Context, g *domain.OrderGroup) error
}

// Cleaner is the orphan cleanup loop. It cancels live orders whose group
// is already CLOSED, cancels stray venue orders no group ever owned,
// resolves stuck OPENING/CLOSING states after a bounded wait, and archives
// finished groups.
type Cleaner struct {
	gw      venue.Gateway
	tracker *Tracker
	bus     *events.Bus
	journal GroupArchiver
	cfg     config.CleanupConfig
	symbol  string
	// stuckAfter bounds how long OPENING or CLOSING may persist before
	// the state is forcibly resolved.
	stuckAfter time.Duration
	log        *slog.Logger

	gaveUp map[string]bool // stray order ids past their retry budget
}

func NewCleaner(gw venue.Gateway, tracker *Tracker, bus *events.Bus, journal GroupArchiver, cfg config.CleanupConfig, stuckAfter time.Duration, symbol string, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		gw:         gw,
		tracker:    tracker,
		bus:        bus,
		journal:    journal,
		cfg:        cfg,
		symbol:     symbol,
		stuckAfter: stuckAfter,
		log:        logger.With("component", "cleanup"),
		gaveUp:     make(map[string]bool),
	}
}

// Run executes cycles on the configured interval until ctx is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.Interval.Std())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cycle(ctx)
		}
	}
}

// cycle runs one cleanup pass.
func (c *Cleaner) cycle(ctx context.Context) {
	c.resolveStuckState(ctx)
	c.cancelOrphans(ctx)
	c.cancelStrays(ctx)
	c.archiveFinished(ctx)
}

// FinalPass flattens any remaining position on shutdown: the active group
// is closed, its legs cancelled, the venue position closed at market, and
// everything archived. Bounded by ctx.
func (c *Cleaner) FinalPass(ctx context.Context) {
	if v, ok := c.tracker.ActiveGroup(); ok && v.Status == domain.GroupActive {
		c.log.Info("shutdown: flattening active position", "group", v.ID)
		c.tracker.MarkClosed(v.ID, domain.CloseShutdown)
		if err := c.gw.ClosePosition(ctx, v.Symbol); err != nil {
			c.log.Error("shutdown: close position failed", "symbol", v.Symbol, "error", err)
		}
		c.bus.Publish(domain.Event{
			Type: domain.EventPositionClosed, At: time.Now(),
			GroupID: v.ID, Symbol: v.Symbol, Side: v.Side, Qty: v.Qty,
			Reason: domain.CloseShutdown,
		})
	}
	c.cancelOrphans(ctx)
	c.archiveFinished(ctx)
}

// resolveStuckState breaks OPENING or CLOSING states that outlived the
// bounded wait. A stuck OPENING means the entry never reported a terminal
// event; its orders are cancelled and the group closed. A stuck CLOSING
// means a sibling cancel confirmation never arrived; the state is dropped
// to FLAT and the live leg left to the orphan scan below.
func (c *Cleaner) resolveStuckState(ctx context.Context) {
	state, since := c.tracker.State()
	if state != StateOpening && state != StateClosing {
		return
	}
	if c.stuckAfter <= 0 || time.Since(since) < c.stuckAfter {
		return
	}

	v, ok := c.tracker.ActiveGroup()
	if !ok {
		c.tracker.ForceFlat(domain.CloseReconciliation)
		return
	}
	c.log.Warn("state stuck past bounded wait, forcing resolution",
		"state", state, "group", v.ID, "since", since)

	if state == StateOpening {
		for _, id := range []string{v.EntryID, v.StopID, v.TakeID} {
			if id == "" {
				continue
			}
			if err := c.gw.CancelOrder(ctx, id); err != nil {
				c.log.Warn("cancel of stuck opening order failed", "order_id", id, "error", err)
			}
		}
		c.tracker.MarkEntryFailed(v.ID, domain.OrderStatusCancelled)
		c.bus.Publish(domain.Event{
			Type: domain.EventPositionClosed, At: time.Now(),
			GroupID: v.ID, Symbol: v.Symbol, Side: v.Side,
			Reason: domain.CloseEntryRejected, Detail: "opening timed out",
		})
		return
	}
	c.tracker.ForceFlat(domain.CloseReconciliation)
}

// cancelOrphans cancels live orders whose owning group is already CLOSED.
// Each order gets the bounded retry budget; afterwards it is untracked
// regardless of outcome so cleanup never wedges on one order.
func (c *Cleaner) cancelOrphans(ctx context.Context) {
	for _, ref := range c.tracker.OrphanCandidates() {
		if err := c.cancelWithRetry(ctx, ref.OrderID); err != nil {
			failure := &OrphanCancelFailure{OrderID: ref.OrderID, Attempts: c.cfg.CancelAttempts, Err: err}
			c.log.Error("orphan cancel exhausted retries",
				"order_id", ref.OrderID, "group", ref.GroupID, "error", failure)
			c.tracker.Untrack(ref.OrderID)
			c.bus.Publish(domain.Event{
				Type: domain.EventOrphanOrderRemoved, At: time.Now(),
				GroupID: ref.GroupID, OrderID: ref.OrderID, Role: ref.Role,
				Outcome: "failed", Detail: failure.Error(),
			})
			continue
		}
		c.tracker.ConfirmCancelled(ref.OrderID)
		c.log.Info("orphan order cancelled", "order_id", ref.OrderID, "group", ref.GroupID)
		c.bus.Publish(domain.Event{
			Type: domain.EventOrphanOrderRemoved, At: time.Now(),
			GroupID: ref.GroupID, OrderID: ref.OrderID, Role: ref.Role,
			Outcome: "cancelled",
		})
	}
}

// cancelStrays cancels venue orders that no group ever owned, typically
// left behind by a crashed session.
func (c *Cleaner) cancelStrays(ctx context.Context) {
	open, err := c.gw.GetOpenOrders(ctx, c.symbol)
	if err != nil {
		c.log.Warn("open order query failed", "error", err)
		return
	}
	// Drop give-up marks for orders the venue no longer reports, so the
	// map stays bounded by the live order set.
	liveIDs := make(map[string]bool, len(open))
	for _, o := range open {
		liveIDs[o.ID] = true
	}
	for id := range c.gaveUp {
		if !liveIDs[id] {
			delete(c.gaveUp, id)
		}
	}

	tracked := c.tracker.TrackedOrderIDs()
	for _, o := range open {
		if _, ok := tracked[o.ID]; ok || c.gaveUp[o.ID] {
			continue
		}
		if time.Since(o.CreatedAt) < strayMinAge {
			continue
		}
		c.log.Warn("stray order found", "order_id", o.ID, "symbol", o.Symbol, "created_at", o.CreatedAt)
		outcome := "cancelled"
		var detail string
		if err := c.cancelWithRetry(ctx, o.ID); err != nil {
			failure := &OrphanCancelFailure{OrderID: o.ID, Attempts: c.cfg.CancelAttempts, Err: err}
			c.log.Error("stray cancel exhausted retries", "order_id", o.ID, "error", failure)
			c.gaveUp[o.ID] = true
			outcome, detail = "failed", failure.Error()
		}
		c.bus.Publish(domain.Event{
			Type: domain.EventOrphanOrderRemoved, At: time.Now(),
			OrderID: o.ID, Symbol: o.Symbol,
			Outcome: outcome, Detail: detail,
		})
	}
}

// cancelWithRetry issues up to CancelAttempts cancels with exponential
// backoff between attempts.
func (c *Cleaner) cancelWithRetry(ctx context.Context, orderID string) error {
	attempts := c.cfg.CancelAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := c.cfg.CancelBackoff.Std()

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if lastErr = c.gw.CancelOrder(ctx, orderID); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// archiveFinished reaps fully terminal CLOSED groups and hands them to the
// journal.
func (c *Cleaner) archiveFinished(ctx context.Context) {
	for _, g := range c.tracker.ReapClosed() {
		if c.journal == nil {
			continue
		}
		if err := c.journal.ArchiveGroup(ctx, g); err != nil {
			c.log.Error("archiving group failed", "group", g.ID, "error", err)
		}
	}
}
