package domain

import "time"

// EventType tags a domain event emitted by the engine and its loops.
type EventType string

const (
	EventPositionOpened         EventType = "position_opened"
	EventPositionClosed         EventType = "position_closed"
	EventOrderFilled            EventType = "order_filled"
	EventOrphanOrderRemoved     EventType = "orphan_order_removed"
	EventReconciliationConflict EventType = "reconciliation_conflict"
)

// Event is a single domain event. Fields beyond Type and At are populated
// depending on the event type.
type Event struct {
	Type    EventType
	At      time.Time
	GroupID string
	OrderID string
	Role    OrderRole
	Symbol  string
	Side    Side
	Qty     int
	Price   float64
	Reason  CloseReason // position_closed
	Outcome string      // orphan_order_removed: "cancelled" | "failed"
	Detail  string      // free-form diagnostic text
}
