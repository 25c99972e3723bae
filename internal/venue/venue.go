// Package venue defines the Gateway interface through which the engine talks
// to a brokerage, and provides implementations for Alpaca and for an
// in-memory simulator used in paper mode and tests.
package venue

import (
	"context"
	"time"

	"quantra/internal/domain"
)

// BracketSpec describes a bracket order to submit: a market entry plus a
// stop-loss and take-profit pair.
type BracketSpec struct {
	Symbol    string
	Side      domain.Side
	Qty       int
	StopPrice float64
	TakePrice float64
}

// BracketIDs are the venue-assigned ids of the three legs of a submitted
// bracket.
type BracketIDs struct {
	EntryID string
	StopID  string
	TakeID  string
}

// EventType classifies an asynchronous order notification pushed by the
// venue.
type EventType string

const (
	EventNew         EventType = "new"
	EventFill        EventType = "fill"
	EventPartialFill EventType = "partial_fill"
	EventCancelled   EventType = "canceled"
	EventRejected    EventType = "rejected"
)

// OrderEvent is a single asynchronous order notification. Delivery is
// at-least-once: consumers must deduplicate on (OrderID, Seq).
type OrderEvent struct {
	Type      EventType
	OrderID   string
	Seq       string // venue-assigned execution/event id, unique per notification
	FilledQty int
	Price     float64
	At        time.Time
}

// OpenOrder is a venue-reported working order, as returned by GetOpenOrders.
type OpenOrder struct {
	ID         string
	Symbol     string
	Side       domain.Side
	Qty        int
	LimitPrice float64 // 0 when none
	StopPrice  float64 // 0 when none
	Status     domain.OrderStatus
	CreatedAt  time.Time
}

// Protective reports whether the order looks like a stop or take leg (it has
// a stop trigger or a resting limit price).
func (o OpenOrder) Protective() bool {
	return o.StopPrice != 0 || o.LimitPrice != 0
}

// Gateway abstracts the brokerage venue. Every call must honor the passed
// context; implementations bound their own network timeouts.
type Gateway interface {
	// Name returns the gateway identifier (e.g. "alpaca", "sim").
	Name() string

	// SubmitBracket submits a market entry with protective stop/take legs
	// and returns the venue-assigned ids of all three.
	SubmitBracket(ctx context.Context, spec BracketSpec) (BracketIDs, error)

	// CancelOrder requests cancellation of an open order by its id.
	CancelOrder(ctx context.Context, orderID string) error

	// GetOrderStatus returns the venue's view of a single order.
	GetOrderStatus(ctx context.Context, orderID string) (domain.OrderStatus, error)

	// GetOpenOrders returns all working orders for the symbol.
	GetOpenOrders(ctx context.Context, symbol string) ([]OpenOrder, error)

	// GetPosition returns the venue-reported position for the symbol, or
	// (nil, nil) when flat.
	GetPosition(ctx context.Context, symbol string) (*domain.PositionSnapshot, error)

	// ClosePosition flattens the venue position for the symbol with a
	// market order.
	ClosePosition(ctx context.Context, symbol string) error

	// StreamOrderEvents pushes asynchronous order notifications into out
	// until ctx is cancelled. It blocks for the lifetime of the stream.
	StreamOrderEvents(ctx context.Context, out chan<- OrderEvent) error
}
