// Package domain defines the core entities of the quantra order engine:
// orders, bracket order groups, position snapshots, and the domain events
// emitted as those entities move through their lifecycles.
package domain

import "time"

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

// Side is the direction of a position.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Invert returns the opposite side.
func (s Side) Invert() Side {
	if s == SideLong {
		return SideShort
	}
	return SideLong
}

// OrderRole identifies an order's function within a bracket group.
type OrderRole string

const (
	RoleEntry OrderRole = "ENTRY"
	RoleStop  OrderRole = "STOP"
	RoleTake  OrderRole = "TAKE"
)

// Sibling returns the other protective role. It is only meaningful for
// RoleStop and RoleTake.
func (r OrderRole) Sibling() OrderRole {
	if r == RoleStop {
		return RoleTake
	}
	return RoleStop
}

// OrderStatus is the venue-reported lifecycle state of a single order.
type OrderStatus string

const (
	OrderStatusSubmitted       OrderStatus = "SUBMITTED"
	OrderStatusWorking         OrderStatus = "WORKING"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// Terminal reports whether the status is final. A terminal order never
// transitions again.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFilled, OrderStatusCancelled, OrderStatusRejected:
		return true
	}
	return false
}

// GroupStatus is the lifecycle state of a bracket order group.
type GroupStatus string

const (
	GroupPending GroupStatus = "PENDING" // entry submitted, not yet filled
	GroupActive  GroupStatus = "ACTIVE"  // entry filled, protective legs working
	GroupClosed  GroupStatus = "CLOSED"  // a protective leg filled, or entry failed
)

// CloseReason explains why a group reached CLOSED.
type CloseReason string

const (
	CloseStopHit        CloseReason = "stop_hit"
	CloseTakeHit        CloseReason = "take_hit"
	CloseEntryRejected  CloseReason = "entry_rejected"
	CloseManual         CloseReason = "manual"
	CloseReconciliation CloseReason = "reconciliation"
	CloseShutdown       CloseReason = "shutdown"
)

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Order is a single order belonging to a bracket group. Orders are mutated
// only by the fill dispatcher in response to venue events.
type Order struct {
	ID        string
	Role      OrderRole
	Price     float64
	Qty       int
	Status    OrderStatus
	FilledQty int
	AvgPrice  float64
	UpdatedAt time.Time
}

// OrderGroup is a bracket: one entry order plus a stop-loss and take-profit
// pair. At most one group is ACTIVE at any time.
type OrderGroup struct {
	ID        string
	Symbol    string
	Side      Side
	Qty       int
	Entry     Order
	Stop      Order
	Take      Order
	Status    GroupStatus
	Reason    CloseReason // set when Status == CLOSED
	CreatedAt time.Time
	ClosedAt  time.Time

	// Adopted marks a group synthesized from venue state by reconciliation
	// rather than opened through the engine.
	Adopted bool
}

// OrderByRole returns a pointer to the child order with the given role.
func (g *OrderGroup) OrderByRole(role OrderRole) *Order {
	switch role {
	case RoleEntry:
		return &g.Entry
	case RoleStop:
		return &g.Stop
	case RoleTake:
		return &g.Take
	}
	return nil
}

// OrderIDs returns the ids of all child orders that have one.
func (g *OrderGroup) OrderIDs() []string {
	ids := make([]string, 0, 3)
	for _, o := range []Order{g.Entry, g.Stop, g.Take} {
		if o.ID != "" {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// View returns an immutable copy for external consumers.
func (g *OrderGroup) View() OrderGroupView {
	return OrderGroupView{
		ID:         g.ID,
		Symbol:     g.Symbol,
		Side:       g.Side,
		Qty:        g.Qty,
		EntryID:    g.Entry.ID,
		StopID:     g.Stop.ID,
		TakeID:     g.Take.ID,
		EntryPrice: g.Entry.AvgPrice,
		StopPrice:  g.Stop.Price,
		TakePrice:  g.Take.Price,
		Status:     g.Status,
		Reason:     g.Reason,
		CreatedAt:  g.CreatedAt,
		ClosedAt:   g.ClosedAt,
	}
}

// OrderGroupView is a read-only snapshot of a group, safe to hand out
// across goroutines.
type OrderGroupView struct {
	ID         string
	Symbol     string
	Side       Side
	Qty        int
	EntryID    string
	StopID     string
	TakeID     string
	EntryPrice float64
	StopPrice  float64
	TakePrice  float64
	Status     GroupStatus
	Reason     CloseReason
	CreatedAt  time.Time
	ClosedAt   time.Time
}

// PositionSnapshot is the venue's report of a held position.
type PositionSnapshot struct {
	Symbol        string
	Side          Side
	Qty           int
	AvgEntryPrice float64
}

// TradeIntent is what a strategy hands to the engine: a request to open a
// bracket. The engine owns everything after this point.
type TradeIntent struct {
	Symbol    string
	Side      Side
	Qty       int
	StopPrice float64
	TakePrice float64
	// RefPrice is the market price observed when the signal fired. The
	// engine validates stop/take placement against it.
	RefPrice   float64
	Confidence float64
}

// Bar is a single OHLCV bar from the market-data feed.
type Bar struct {
	Symbol    string
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}
