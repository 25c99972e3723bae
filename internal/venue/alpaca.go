package venue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"

	"quantra/internal/domain"
	"quantra/internal/util"
)

// Compile-time interface check.
var _ Gateway = (*AlpacaGateway)(nil)

// AlpacaGateway implements the Gateway interface against the Alpaca trading
// API. Brackets map directly onto Alpaca's bracket order class, and order
// notifications come from the trade-updates stream.
type AlpacaGateway struct {
	client  *alpaca.Client
	limiter *util.RateLimiter
	log     *slog.Logger
}

// NewAlpacaGateway creates an AlpacaGateway configured with the given
// credentials and API endpoint.
func NewAlpacaGateway(apiKey, apiSecret, baseURL string) *AlpacaGateway {
	return &AlpacaGateway{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		// Alpaca allows 200 REST requests per minute; stay under it.
		limiter: util.NewRateLimiter(180),
		log:     slog.Default().With("gateway", "alpaca"),
	}
}

// Name returns "alpaca".
func (g *AlpacaGateway) Name() string { return "alpaca" }

// restCall waits for a rate-limit token, then runs fn in a goroutine and
// waits for either its result or ctx cancellation. The SDK's REST calls do
// not take a context, so this is how the engine's submit/cancel timeouts are
// enforced. A timed-out call's goroutine finishes in the background; its
// result is discarded.
func restCall[T any](ctx context.Context, g *AlpacaGateway, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	if err := g.limiter.Wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

// SubmitBracket submits a market entry with attached take-profit and
// stop-loss legs using Alpaca's bracket order class.
func (g *AlpacaGateway) SubmitBracket(ctx context.Context, spec BracketSpec) (BracketIDs, error) {
	qty := decimal.NewFromInt(int64(spec.Qty))
	takeLimit := decimal.NewFromFloat(spec.TakePrice)
	stopTrigger := decimal.NewFromFloat(spec.StopPrice)

	side := alpaca.Buy
	if spec.Side == domain.SideShort {
		side = alpaca.Sell
	}

	req := alpaca.PlaceOrderRequest{
		Symbol:      spec.Symbol,
		Qty:         &qty,
		Side:        side,
		Type:        alpaca.Market,
		TimeInForce: alpaca.GTC,
		OrderClass:  alpaca.Bracket,
		TakeProfit:  &alpaca.TakeProfit{LimitPrice: &takeLimit},
		StopLoss:    &alpaca.StopLoss{StopPrice: &stopTrigger},
	}

	order, err := restCall(ctx, g, func() (*alpaca.Order, error) {
		return g.client.PlaceOrder(req)
	})
	if err != nil {
		return BracketIDs{}, fmt.Errorf("placing bracket for %s: %w", spec.Symbol, err)
	}

	ids := BracketIDs{EntryID: order.ID}
	for _, leg := range order.Legs {
		switch leg.Type {
		case alpaca.Stop, alpaca.StopLimit:
			ids.StopID = leg.ID
		case alpaca.Limit:
			ids.TakeID = leg.ID
		}
	}
	if ids.StopID == "" || ids.TakeID == "" {
		return BracketIDs{}, fmt.Errorf("bracket for %s returned %d legs, want stop and take", spec.Symbol, len(order.Legs))
	}
	return ids, nil
}

// CancelOrder requests cancellation of an open order.
func (g *AlpacaGateway) CancelOrder(ctx context.Context, orderID string) error {
	_, err := restCall(ctx, g, func() (struct{}, error) {
		return struct{}{}, g.client.CancelOrder(orderID)
	})
	if err != nil {
		return fmt.Errorf("cancelling order %s: %w", orderID, err)
	}
	return nil
}

// GetOrderStatus returns the venue's view of a single order.
func (g *AlpacaGateway) GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	order, err := restCall(ctx, g, func() (*alpaca.Order, error) {
		return g.client.GetOrder(orderID)
	})
	if err != nil {
		return "", fmt.Errorf("fetching order %s: %w", orderID, err)
	}
	return mapOrderStatus(order.Status), nil
}

// GetOpenOrders returns all working orders for the symbol.
func (g *AlpacaGateway) GetOpenOrders(ctx context.Context, symbol string) ([]OpenOrder, error) {
	orders, err := restCall(ctx, g, func() ([]alpaca.Order, error) {
		return g.client.GetOrders(alpaca.GetOrdersRequest{
			Status:  "open",
			Symbols: []string{symbol},
			Limit:   500,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing open orders for %s: %w", symbol, err)
	}

	open := make([]OpenOrder, 0, len(orders))
	for _, o := range orders {
		oo := OpenOrder{
			ID:        o.ID,
			Symbol:    o.Symbol,
			Side:      domain.SideLong,
			Status:    mapOrderStatus(o.Status),
			CreatedAt: o.CreatedAt,
		}
		if o.Side == alpaca.Sell {
			oo.Side = domain.SideShort
		}
		if o.Qty != nil {
			oo.Qty = int(o.Qty.IntPart())
		}
		if o.LimitPrice != nil {
			oo.LimitPrice = o.LimitPrice.InexactFloat64()
		}
		if o.StopPrice != nil {
			oo.StopPrice = o.StopPrice.InexactFloat64()
		}
		open = append(open, oo)
	}
	return open, nil
}

// GetPosition returns the venue-reported position for the symbol, or
// (nil, nil) when the venue reports flat.
func (g *AlpacaGateway) GetPosition(ctx context.Context, symbol string) (*domain.PositionSnapshot, error) {
	pos, err := restCall(ctx, g, func() (*alpaca.Position, error) {
		return g.client.GetPosition(symbol)
	})
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil // flat
		}
		return nil, fmt.Errorf("fetching position for %s: %w", symbol, err)
	}

	side := domain.SideLong
	if pos.Side == "short" {
		side = domain.SideShort
	}
	qty := pos.Qty.Abs().IntPart()

	return &domain.PositionSnapshot{
		Symbol:        pos.Symbol,
		Side:          side,
		Qty:           int(qty),
		AvgEntryPrice: pos.AvgEntryPrice.InexactFloat64(),
	}, nil
}

// ClosePosition flattens the venue position for the symbol with a market
// order.
func (g *AlpacaGateway) ClosePosition(ctx context.Context, symbol string) error {
	_, err := restCall(ctx, g, func() (*alpaca.Order, error) {
		return g.client.ClosePosition(symbol, alpaca.ClosePositionRequest{})
	})
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil // already flat
		}
		return fmt.Errorf("closing position for %s: %w", symbol, err)
	}
	return nil
}

// StreamOrderEvents subscribes to Alpaca's trade-updates stream and forwards
// notifications into out until ctx is cancelled.
func (g *AlpacaGateway) StreamOrderEvents(ctx context.Context, out chan<- OrderEvent) error {
	err := g.client.StreamTradeUpdates(ctx, func(tu alpaca.TradeUpdate) {
		ev, ok := mapTradeUpdate(tu)
		if !ok {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
		}
	}, alpaca.StreamTradeUpdatesRequest{})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("trade-updates stream: %w", err)
	}
	return nil
}

// mapTradeUpdate converts an Alpaca trade update into an OrderEvent. The
// second return value is false for lifecycle notifications the dispatcher
// does not consume (replaced, pending_*, ...).
func mapTradeUpdate(tu alpaca.TradeUpdate) (OrderEvent, bool) {
	var typ EventType
	switch tu.Event {
	case "fill":
		typ = EventFill
	case "partial_fill":
		typ = EventPartialFill
	case "canceled", "expired", "done_for_day":
		typ = EventCancelled
	case "rejected", "suspended":
		typ = EventRejected
	case "new", "accepted":
		typ = EventNew
	default:
		return OrderEvent{}, false
	}

	ev := OrderEvent{
		Type:    typ,
		OrderID: tu.Order.ID,
		Seq:     tu.ExecutionID,
		At:      tu.At,
	}
	// Not every event type carries an execution id; fall back to a key that
	// is still stable across redeliveries of the same notification.
	if ev.Seq == "" {
		ev.Seq = fmt.Sprintf("%s-%d", tu.Event, tu.At.UnixNano())
	}
	if tu.Price != nil {
		ev.Price = tu.Price.InexactFloat64()
	}
	if tu.Qty != nil {
		ev.FilledQty = int(tu.Qty.IntPart())
	} else {
		ev.FilledQty = int(tu.Order.FilledQty.IntPart())
	}
	return ev, true
}

// mapOrderStatus maps Alpaca order status strings onto the engine's
// OrderStatus enum. Bracket legs start out "held" until the entry fills.
func mapOrderStatus(s string) domain.OrderStatus {
	switch s {
	case "filled":
		return domain.OrderStatusFilled
	case "partially_filled":
		return domain.OrderStatusPartiallyFilled
	case "canceled", "expired", "done_for_day", "replaced":
		return domain.OrderStatusCancelled
	case "rejected", "stopped", "suspended":
		return domain.OrderStatusRejected
	case "held":
		return domain.OrderStatusSubmitted
	case "new", "accepted", "pending_new", "pending_cancel", "pending_replace", "calculated", "accepted_for_bidding":
		return domain.OrderStatusWorking
	default:
		return domain.OrderStatusWorking
	}
}
