package engine

import (
	"context"
	"log/slog"
	"time"

	"quantra/internal/domain"
	"quantra/internal/events"
	"quantra/internal/venue"
)

const (
	// Events arriving before the submitting call finished registering its
	// order ids get a few short re-lookups instead of being dropped.
	lookupRetries = 4
	lookupDelay   = 50 * time.Millisecond

	// dedupCap bounds the (order id, venue seq) memory. Oldest keys are
	// evicted first.
	dedupCap = 8192
)

// Dispatcher consumes the venue's order event stream and drives the
// Tracker. It is the only writer of fill-driven transitions, so events for
// the same order are applied strictly in delivery order.
type Dispatcher struct {
	tracker *Tracker
	gw      venue.Gateway
	bus     *events.Bus
	log     *slog.Logger

	seen     map[string]struct{}
	seenFIFO []string
}

func NewDispatcher(tracker *Tracker, gw venue.Gateway, bus *events.Bus, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		tracker: tracker,
		gw:      gw,
		bus:     bus,
		log:     logger.With("component", "dispatcher"),
		seen:    make(map[string]struct{}),
	}
}

// Run consumes events until the context is cancelled or the channel
// closes.
func (d *Dispatcher) Run(ctx context.Context, in <-chan venue.OrderEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			d.handleEvent(ctx, ev)
		}
	}
}

// handleEvent applies one venue notification. Duplicate (order id, seq)
// pairs are dropped before any side effect, so the sibling cancel fires at
// most once per fill even under at-least-once delivery.
func (d *Dispatcher) handleEvent(ctx context.Context, ev venue.OrderEvent) {
	key := ev.OrderID + "|" + ev.Seq
	if _, dup := d.seen[key]; dup {
		d.log.Debug("duplicate event dropped", "order_id", ev.OrderID, "seq", ev.Seq)
		return
	}
	d.remember(key)

	view, role, ok := d.lookup(ctx, ev.OrderID)
	if !ok {
		d.log.Warn("event for untracked order", "order_id", ev.OrderID, "type", ev.Type)
		return
	}

	switch ev.Type {
	case venue.EventNew:
		d.log.Debug("order accepted", "order_id", ev.OrderID, "role", role, "group", view.ID)

	case venue.EventPartialFill:
		d.tracker.MarkPartialFill(view.ID, role, ev.FilledQty, ev.Price)
		d.log.Info("partial fill", "order_id", ev.OrderID, "role", role,
			"group", view.ID, "filled_qty", ev.FilledQty, "price", ev.Price)

	case venue.EventFill:
		if role == domain.RoleEntry {
			d.onEntryFill(view, ev)
		} else {
			d.onLegFill(ctx, view, role, ev)
		}

	case venue.EventCancelled:
		if role == domain.RoleEntry && view.Status == domain.GroupPending {
			d.onEntryFailed(view, domain.OrderStatusCancelled)
			return
		}
		if gid, flat := d.tracker.ConfirmCancelled(ev.OrderID); flat {
			d.log.Info("position flat, sibling cancel confirmed", "group", gid, "order_id", ev.OrderID)
		}

	case venue.EventRejected:
		if role == domain.RoleEntry && view.Status == domain.GroupPending {
			d.onEntryFailed(view, domain.OrderStatusRejected)
			return
		}
		// A rejected leg cannot fill; treat like a confirmed cancel.
		d.tracker.ConfirmCancelled(ev.OrderID)
		d.log.Warn("protective leg rejected", "order_id", ev.OrderID, "group", view.ID)
	}
}

func (d *Dispatcher) onEntryFill(view domain.OrderGroupView, ev venue.OrderEvent) {
	if !d.tracker.MarkEntryFilled(view.ID, ev.FilledQty, ev.Price) {
		return
	}
	now := time.Now()
	d.bus.Publish(domain.Event{
		Type: domain.EventOrderFilled, At: now,
		GroupID: view.ID, OrderID: ev.OrderID, Role: domain.RoleEntry,
		Symbol: view.Symbol, Side: view.Side, Qty: ev.FilledQty, Price: ev.Price,
	})
	d.bus.Publish(domain.Event{
		Type: domain.EventPositionOpened, At: now,
		GroupID: view.ID, Symbol: view.Symbol, Side: view.Side,
		Qty: ev.FilledQty, Price: ev.Price,
	})
	d.log.Info("entry filled, position open",
		"group", view.ID, "symbol", view.Symbol, "side", view.Side,
		"qty", ev.FilledQty, "price", ev.Price)
}

// onLegFill commits the close transition first and only then issues the
// sibling cancel. A crash between the two leaves a CLOSED group with one
// live order, which the cleanup loop cancels later.
func (d *Dispatcher) onLegFill(ctx context.Context, view domain.OrderGroupView, role domain.OrderRole, ev venue.OrderEvent) {
	siblingID, changed := d.tracker.MarkLegFilled(view.ID, role, ev.FilledQty, ev.Price)
	if !changed {
		return
	}

	reason := domain.CloseStopHit
	if role == domain.RoleTake {
		reason = domain.CloseTakeHit
	}
	now := time.Now()
	d.bus.Publish(domain.Event{
		Type: domain.EventOrderFilled, At: now,
		GroupID: view.ID, OrderID: ev.OrderID, Role: role,
		Symbol: view.Symbol, Side: view.Side, Qty: ev.FilledQty, Price: ev.Price,
	})
	d.bus.Publish(domain.Event{
		Type: domain.EventPositionClosed, At: now,
		GroupID: view.ID, Symbol: view.Symbol, Side: view.Side,
		Qty: ev.FilledQty, Price: ev.Price, Reason: reason,
	})
	d.log.Info("protective leg filled",
		"group", view.ID, "role", role, "price", ev.Price, "reason", reason)

	if siblingID == "" {
		return
	}
	if err := d.gw.CancelOrder(ctx, siblingID); err != nil {
		// Cleanup will retry; the group is already CLOSED.
		d.log.Warn("sibling cancel failed", "order_id", siblingID, "group", view.ID, "error", err)
		return
	}
	if _, flat := d.tracker.ConfirmCancelled(siblingID); flat {
		d.log.Info("position flat", "group", view.ID)
	}
}

func (d *Dispatcher) onEntryFailed(view domain.OrderGroupView, status domain.OrderStatus) {
	if !d.tracker.MarkEntryFailed(view.ID, status) {
		return
	}
	d.bus.Publish(domain.Event{
		Type: domain.EventPositionClosed, At: time.Now(),
		GroupID: view.ID, Symbol: view.Symbol, Side: view.Side,
		Reason: domain.CloseEntryRejected,
	})
	d.log.Warn("entry order failed, group closed",
		"group", view.ID, "status", status)
}

// lookup resolves an order id against the registry, retrying briefly for
// events that outran the submission's registration.
func (d *Dispatcher) lookup(ctx context.Context, orderID string) (domain.OrderGroupView, domain.OrderRole, bool) {
	for attempt := 0; ; attempt++ {
		if view, role, ok := d.tracker.FindByOrderID(orderID); ok {
			return view, role, true
		}
		if attempt >= lookupRetries {
			return domain.OrderGroupView{}, "", false
		}
		select {
		case <-ctx.Done():
			return domain.OrderGroupView{}, "", false
		case <-time.After(lookupDelay):
		}
	}
}

func (d *Dispatcher) remember(key string) {
	if len(d.seenFIFO) >= dedupCap {
		evict := d.seenFIFO[0]
		d.seenFIFO = d.seenFIFO[1:]
		delete(d.seen, evict)
	}
	d.seen[key] = struct{}{}
	d.seenFIFO = append(d.seenFIFO, key)
}
