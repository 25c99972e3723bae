package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
	"quantra/internal/events"
	"quantra/internal/venue"
)

// Reconciler periodically compares the tracker's view of the position
// against what the venue reports and resolves divergence. The trust
// policy is asymmetric: a venue position the engine does not know about
// is adopted on the spot, while a venue "flat" report against a local
// active group with confirmed working protective orders is tolerated for
// a grace period before venue truth is forced.
type Reconciler struct {
	gw      venue.Gateway
	tracker *Tracker
	bus     *events.Bus
	cfg     config.ReconcileConfig
	symbol  string
	log     *slog.Logger

	ghostGroup  string
	ghostStreak int
}

func NewReconciler(gw venue.Gateway, tracker *Tracker, bus *events.Bus, cfg config.ReconcileConfig, symbol string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		gw:      gw,
		tracker: tracker,
		bus:     bus,
		cfg:     cfg,
		symbol:  symbol,
		log:     logger.With("component", "reconciler"),
	}
}

// Run executes cycles on the configured interval until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval.Std())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.cycle(ctx); err != nil {
				r.log.Warn("reconciliation cycle failed", "error", err)
			}
		}
	}
}

// cycle runs one reconciliation pass.
func (r *Reconciler) cycle(ctx context.Context) error {
	local, hasLocal := r.tracker.ActiveGroup()
	if hasLocal && local.Status != domain.GroupActive {
		// PENDING and CLOSED-but-draining groups belong to the dispatcher
		// and cleanup loop respectively.
		hasLocal = false
	}

	symbol := r.symbol
	if hasLocal {
		symbol = local.Symbol
	}
	pos, err := r.gw.GetPosition(ctx, symbol)
	if err != nil {
		return fmt.Errorf("query position %s: %w", symbol, err)
	}

	switch {
	case !hasLocal && pos == nil:
		r.ghostStreak = 0
	case hasLocal && pos != nil:
		r.ghostStreak = 0
		r.checkAgreement(local, pos)
	case hasLocal && pos == nil:
		return r.ghostPosition(ctx, local)
	default:
		return r.missedFill(ctx, pos)
	}
	return nil
}

// checkAgreement verifies side and quantity of a position both sides agree
// exists. A mismatch is surfaced as a conflict event but not acted on.
func (r *Reconciler) checkAgreement(local domain.OrderGroupView, pos *domain.PositionSnapshot) {
	if pos.Side == local.Side && pos.Qty == local.Qty {
		return
	}
	detail := fmt.Sprintf("venue reports %s x%d, local group %s x%d",
		pos.Side, pos.Qty, local.Side, local.Qty)
	r.log.Warn("position mismatch", "group", local.ID, "detail", detail)
	r.bus.Publish(domain.Event{
		Type: domain.EventReconciliationConflict, At: time.Now(),
		GroupID: local.ID, Symbol: local.Symbol, Side: local.Side, Qty: local.Qty,
		Detail: detail,
	})
}

// ghostPosition handles local-open, venue-flat. While the group's own
// stop/take orders are confirmed working at the venue, those orders are
// the stronger evidence (a position query can lag a just-filled entry) and
// the disagreement is tolerated for GraceCycles consecutive cycles. Once
// the grace is spent, or the protective orders are gone too, venue truth
// wins: the legs are cancelled and the group force-closed.
func (r *Reconciler) ghostPosition(ctx context.Context, local domain.OrderGroupView) error {
	legsWorking, err := r.legsWorking(ctx, local)
	if err != nil {
		return err
	}

	// The streak counts consecutive cycles against one group. A leftover
	// streak from an earlier group must not eat into this group's grace.
	if local.ID != r.ghostGroup {
		r.ghostGroup = local.ID
		r.ghostStreak = 0
	}

	if legsWorking {
		r.ghostStreak++
		if r.ghostStreak <= r.cfg.GraceCycles {
			r.log.Warn("ghost position, within grace",
				"group", local.ID, "cycle", r.ghostStreak, "grace_cycles", r.cfg.GraceCycles)
			return nil
		}
	}
	r.ghostStreak = 0

	detail := fmt.Sprintf("venue flat, local group %s active; adopting venue truth", local.ID)
	r.log.Error("reconciliation conflict, forcing venue truth", "group", local.ID, "detail", detail)
	r.bus.Publish(domain.Event{
		Type: domain.EventReconciliationConflict, At: time.Now(),
		GroupID: local.ID, Symbol: local.Symbol, Side: local.Side, Qty: local.Qty,
		Detail: detail,
	})

	for _, id := range []string{local.StopID, local.TakeID} {
		if id == "" {
			continue
		}
		if err := r.gw.CancelOrder(ctx, id); err != nil {
			r.log.Warn("cancel during forced close failed", "order_id", id, "error", err)
			continue
		}
		r.tracker.ConfirmCancelled(id)
	}
	r.tracker.ForceFlat(domain.CloseReconciliation)
	r.bus.Publish(domain.Event{
		Type: domain.EventPositionClosed, At: time.Now(),
		GroupID: local.ID, Symbol: local.Symbol, Side: local.Side, Qty: local.Qty,
		Reason: domain.CloseReconciliation,
	})
	return nil
}

func (r *Reconciler) legsWorking(ctx context.Context, local domain.OrderGroupView) (bool, error) {
	for _, id := range []string{local.StopID, local.TakeID} {
		if id == "" {
			return false, nil
		}
		st, err := r.gw.GetOrderStatus(ctx, id)
		if err != nil {
			return false, fmt.Errorf("query order %s: %w", id, err)
		}
		if st != domain.OrderStatusWorking && st != domain.OrderStatusPartiallyFilled {
			return false, nil
		}
	}
	return true, nil
}

// missedFill handles local-flat, venue-open: the venue holds a position the
// engine never saw fill. Venue truth is adopted immediately; a group is
// synthesized from the position and whatever protective orders are still
// open for the symbol.
func (r *Reconciler) missedFill(ctx context.Context, pos *domain.PositionSnapshot) error {
	open, err := r.gw.GetOpenOrders(ctx, pos.Symbol)
	if err != nil {
		return fmt.Errorf("query open orders %s: %w", pos.Symbol, err)
	}

	g := &domain.OrderGroup{
		ID:     fmt.Sprintf("adopted-%s", time.Now().UTC().Format("20060102-150405.000")),
		Symbol: pos.Symbol,
		Side:   pos.Side,
		Qty:    pos.Qty,
		Entry: domain.Order{
			Role:      domain.RoleEntry,
			Status:    domain.OrderStatusFilled,
			Qty:       pos.Qty,
			FilledQty: pos.Qty,
			AvgPrice:  pos.AvgEntryPrice,
		},
	}
	// Closing orders sit on the opposite side. A stop trigger marks the
	// stop leg, a plain limit the take leg.
	closeSide := pos.Side.Invert()
	for _, o := range open {
		if o.Side != closeSide || !o.Protective() {
			continue
		}
		ord := domain.Order{ID: o.ID, Qty: o.Qty, Status: o.Status, UpdatedAt: o.CreatedAt}
		if o.StopPrice != 0 && g.Stop.ID == "" {
			ord.Role = domain.RoleStop
			ord.Price = o.StopPrice
			g.Stop = ord
		} else if g.Take.ID == "" {
			ord.Role = domain.RoleTake
			ord.Price = o.LimitPrice
			g.Take = ord
		}
	}

	if err := r.tracker.Adopt(g); err != nil {
		return fmt.Errorf("adopt venue position: %w", err)
	}
	r.log.Warn("adopted venue position",
		"group", g.ID, "symbol", pos.Symbol, "side", pos.Side, "qty", pos.Qty,
		"stop_id", g.Stop.ID, "take_id", g.Take.ID)
	r.bus.Publish(domain.Event{
		Type: domain.EventPositionOpened, At: time.Now(),
		GroupID: g.ID, Symbol: pos.Symbol, Side: pos.Side, Qty: pos.Qty,
		Price: pos.AvgEntryPrice, Detail: "adopted from venue",
	})
	return nil
}
