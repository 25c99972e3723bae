package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
	"quantra/internal/events"
	"quantra/internal/venue"
)

// Engine is the entry point strategies call to open and close bracket
// positions. It owns the trade-rate guards and the degraded-mode switch;
// lifecycle state lives in the Tracker.
type Engine struct {
	gw      venue.Gateway
	tracker *Tracker
	bus     *events.Bus
	cfg     config.TradingConfig
	log     *slog.Logger

	mu          sync.Mutex
	tradeDay    string
	tradesToday int
	lastTrade   time.Time
	failStreak  int
	degraded    bool
}

func NewEngine(gw venue.Gateway, tracker *Tracker, bus *events.Bus, cfg config.TradingConfig, logger *slog.Logger) *Engine {
	return &Engine{
		gw:      gw,
		tracker: tracker,
		bus:     bus,
		cfg:     cfg,
		log:     logger.With("component", "engine"),
	}
}

// Tracker exposes the underlying lifecycle tracker for the loops and the
// query API.
func (e *Engine) Tracker() *Tracker { return e.tracker }

// TryOpen validates the intent, claims the FLAT state, and submits a
// bracket to the venue. On any failure the claim is rolled back and the
// position stays FLAT. The returned view already carries the venue order
// ids.
func (e *Engine) TryOpen(ctx context.Context, intent domain.TradeIntent) (domain.OrderGroupView, error) {
	if err := e.admit(); err != nil {
		return domain.OrderGroupView{}, err
	}

	stop, take, adjusted := normalizeTargets(intent.Side, intent.RefPrice, intent.StopPrice, intent.TakePrice, e.cfg.TickSize)
	if adjusted {
		e.log.Warn("corrected bracket targets",
			"side", intent.Side, "ref", intent.RefPrice,
			"stop", intent.StopPrice, "take", intent.TakePrice,
			"stop_corrected", stop, "take_corrected", take)
	}

	qty := intent.Qty
	if qty <= 0 {
		qty = e.cfg.Quantity
	}
	symbol := intent.Symbol
	if symbol == "" {
		symbol = e.cfg.Symbol
	}

	g := &domain.OrderGroup{
		ID:        fmt.Sprintf("pos-%s", time.Now().UTC().Format("20060102-150405.000")),
		Symbol:    symbol,
		Side:      intent.Side,
		Qty:       qty,
		Stop:      domain.Order{Price: stop, Qty: qty},
		Take:      domain.Order{Price: take, Qty: qty},
		CreatedAt: time.Now(),
	}
	if err := e.tracker.TryOpen(g); err != nil {
		return domain.OrderGroupView{}, err
	}

	subCtx, cancel := context.WithTimeout(ctx, e.cfg.SubmitTimeout.Std())
	defer cancel()
	ids, err := e.gw.SubmitBracket(subCtx, venue.BracketSpec{
		Symbol:    symbol,
		Side:      intent.Side,
		Qty:       qty,
		StopPrice: stop,
		TakePrice: take,
	})
	if err != nil {
		e.tracker.Rollback(g.ID)
		e.recordVenueFailure(err)
		return domain.OrderGroupView{}, &SubmissionError{Symbol: symbol, Err: err}
	}
	e.recordVenueSuccess()

	e.tracker.BindOrders(g.ID, ids.EntryID, ids.StopID, ids.TakeID)
	e.noteTradeOpened()

	v, _ := e.tracker.ActiveGroup()
	e.log.Info("bracket submitted",
		"group", g.ID, "symbol", symbol, "side", intent.Side, "qty", qty,
		"stop", stop, "take", take,
		"entry_id", ids.EntryID, "stop_id", ids.StopID, "take_id", ids.TakeID)
	return v, nil
}

// CloseActive manually flattens the current position: the group is closed
// first, then both protective legs are cancelled and the venue position is
// closed at market. A leg whose cancel fails here is left to the cleanup
// loop.
func (e *Engine) CloseActive(ctx context.Context) error {
	v, ok := e.tracker.ActiveGroup()
	if !ok || v.Status != domain.GroupActive {
		return fmt.Errorf("no active position to close")
	}
	e.tracker.MarkClosed(v.ID, domain.CloseManual)

	for _, id := range []string{v.StopID, v.TakeID} {
		if id == "" {
			continue
		}
		if err := e.gw.CancelOrder(ctx, id); err != nil {
			e.log.Warn("cancel during manual close failed", "order_id", id, "error", err)
			continue
		}
		e.tracker.ConfirmCancelled(id)
	}
	if err := e.gw.ClosePosition(ctx, v.Symbol); err != nil {
		e.recordVenueFailure(err)
		return fmt.Errorf("close position %s: %w", v.Symbol, err)
	}
	e.recordVenueSuccess()

	e.bus.Publish(domain.Event{
		Type: domain.EventPositionClosed, At: time.Now(),
		GroupID: v.ID, Symbol: v.Symbol, Side: v.Side, Qty: v.Qty,
		Reason: domain.CloseManual,
	})
	e.log.Info("position closed manually", "group", v.ID, "symbol", v.Symbol)
	return nil
}

// IsOpen reports whether a position is anywhere in its lifecycle.
func (e *Engine) IsOpen() bool { return e.tracker.IsOpen() }

// Degraded reports whether new trades are currently refused.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// TradesToday returns the number of brackets opened during the current day.
func (e *Engine) TradesToday() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rollDayLocked()
	return e.tradesToday
}

// ---------------------------------------------------------------------------
// Guards and health
// ---------------------------------------------------------------------------

// admit runs the pre-trade guard chain.
func (e *Engine) admit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.degraded {
		return ErrDegraded
	}
	e.rollDayLocked()
	if e.cfg.MaxDailyTrades > 0 && e.tradesToday >= e.cfg.MaxDailyTrades {
		return ErrDailyLimit
	}
	if spacing := e.cfg.MinTradeSpacing.Std(); spacing > 0 && !e.lastTrade.IsZero() {
		if since := time.Since(e.lastTrade); since < spacing {
			return fmt.Errorf("%w: %s since last trade, need %s", ErrTradeSpacing, since.Round(time.Millisecond), spacing)
		}
	}
	return nil
}

func (e *Engine) noteTradeOpened() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rollDayLocked()
	e.tradesToday++
	e.lastTrade = time.Now()
}

func (e *Engine) rollDayLocked() {
	day := time.Now().Format("2006-01-02")
	if day != e.tradeDay {
		e.tradeDay = day
		e.tradesToday = 0
	}
}

// recordVenueFailure counts consecutive venue failures and flips the
// engine into degraded mode once the configured streak is reached. The
// loops keep running so existing risk can still be flattened.
func (e *Engine) recordVenueFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failStreak++
	if !e.degraded && e.cfg.DegradeAfterFailures > 0 && e.failStreak >= e.cfg.DegradeAfterFailures {
		e.degraded = true
		e.log.Error("entering degraded mode, new trades refused",
			"consecutive_failures", e.failStreak, "error", err)
	}
}

func (e *Engine) recordVenueSuccess() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failStreak = 0
	if e.degraded {
		e.degraded = false
		e.log.Info("leaving degraded mode")
	}
}
