// Package httpapi provides an HTTP REST API over the trader's journal and
// live state, serving the same data as the gRPC surface in JSON form.
package httpapi

import (
	"time"

	"quantra/internal/domain"
	"quantra/internal/store"
)

// StatusJSON is the JSON representation of the trader's current state.
type StatusJSON struct {
	State           string     `json:"state"`
	IsOpen          bool       `json:"isOpen"`
	Active          *GroupJSON `json:"active,omitempty"`
	TradesToday     int        `json:"tradesToday"`
	Degraded        bool       `json:"degraded"`
	EventsPublished uint64     `json:"eventsPublished"`
	EventsDropped   uint64     `json:"eventsDropped"`
	Venue           string     `json:"venue"`
}

// GroupJSON is the JSON representation of a bracket order group.
type GroupJSON struct {
	ID         string     `json:"id"`
	Symbol     string     `json:"symbol"`
	Side       string     `json:"side"`
	Qty        int        `json:"qty"`
	EntryID    string     `json:"entryId"`
	StopID     string     `json:"stopId"`
	TakeID     string     `json:"takeId"`
	EntryPrice float64    `json:"entryPrice,omitempty"`
	StopPrice  float64    `json:"stopPrice"`
	TakePrice  float64    `json:"takePrice"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
}

// TradeJSON is the JSON representation of an archived closed trade.
type TradeJSON struct {
	GroupID    string    `json:"groupId"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Qty        int       `json:"qty"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	PnlPoints  float64   `json:"pnlPoints"`
	Reason     string    `json:"reason"`
	Adopted    bool      `json:"adopted,omitempty"`
	OpenedAt   time.Time `json:"openedAt"`
	ClosedAt   time.Time `json:"closedAt"`
}

// EventJSON is the JSON representation of a lifecycle event.
type EventJSON struct {
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	GroupID string    `json:"groupId,omitempty"`
	OrderID string    `json:"orderId,omitempty"`
	Role    string    `json:"role,omitempty"`
	Symbol  string    `json:"symbol,omitempty"`
	Side    string    `json:"side,omitempty"`
	Qty     int       `json:"qty,omitempty"`
	Price   float64   `json:"price,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

func groupJSON(v domain.OrderGroupView) *GroupJSON {
	g := &GroupJSON{
		ID:         v.ID,
		Symbol:     v.Symbol,
		Side:       string(v.Side),
		Qty:        v.Qty,
		EntryID:    v.EntryID,
		StopID:     v.StopID,
		TakeID:     v.TakeID,
		EntryPrice: v.EntryPrice,
		StopPrice:  v.StopPrice,
		TakePrice:  v.TakePrice,
		Status:     string(v.Status),
		Reason:     string(v.Reason),
		CreatedAt:  v.CreatedAt,
	}
	if !v.ClosedAt.IsZero() {
		t := v.ClosedAt
		g.ClosedAt = &t
	}
	return g
}

func tradeJSON(t store.ClosedTrade) TradeJSON {
	return TradeJSON{
		GroupID:    t.GroupID,
		Symbol:     t.Symbol,
		Side:       string(t.Side),
		Qty:        t.Qty,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		PnlPoints:  t.PnLPoints,
		Reason:     string(t.Reason),
		Adopted:    t.Adopted,
		OpenedAt:   t.OpenedAt,
		ClosedAt:   t.ClosedAt,
	}
}

func eventJSON(ev domain.Event) EventJSON {
	return EventJSON{
		Type:    string(ev.Type),
		At:      ev.At,
		GroupID: ev.GroupID,
		OrderID: ev.OrderID,
		Role:    string(ev.Role),
		Symbol:  ev.Symbol,
		Side:    string(ev.Side),
		Qty:     ev.Qty,
		Price:   ev.Price,
		Reason:  string(ev.Reason),
		Outcome: ev.Outcome,
		Detail:  ev.Detail,
	}
}
