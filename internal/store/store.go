// Package store persists finished order groups and lifecycle events. The
// SQLite journal is the operational record; closed trades are additionally
// archived to Parquet for offline analysis.
package store

import (
	"context"
	"time"

	"quantra/internal/domain"
)

// GroupJournal records finished order groups and the event stream.
type GroupJournal interface {
	ArchiveGroup(ctx context.Context, g *domain.OrderGroup) error
	SaveEvent(ctx context.Context, ev domain.Event) error
	ListGroups(ctx context.Context, limit int) ([]domain.OrderGroupView, error)
	GetGroup(ctx context.Context, id string) (domain.OrderGroupView, error)
	Close() error
}

// Archiver fans a finished group out to the SQLite journal and, when the
// group produced a closed trade, to the Parquet archive. Parquet failures
// are reported but do not mask the journal write; the journal keeps the
// authoritative record.
type Archiver struct {
	Journal GroupJournal
	Trades  *TradeArchive
}

// ArchiveGroup writes the group to both backends.
func (a *Archiver) ArchiveGroup(ctx context.Context, g *domain.OrderGroup) error {
	if err := a.Journal.ArchiveGroup(ctx, g); err != nil {
		return err
	}
	if a.Trades == nil {
		return nil
	}
	return a.Trades.WriteTrades([]ClosedTrade{ClosedTradeFromGroup(g)})
}

// ClosedTrade is a flattened view of a finished group, the unit of the
// Parquet archive.
type ClosedTrade struct {
	GroupID    string
	Symbol     string
	Side       domain.Side
	Qty        int
	EntryPrice float64
	ExitPrice  float64
	PnLPoints  float64
	Reason     domain.CloseReason
	Adopted    bool
	OpenedAt   time.Time
	ClosedAt   time.Time
}

// ClosedTradeFromGroup flattens a finished group. The exit price is taken
// from whichever protective leg filled; a group that never activated or
// was flattened at market has no exit fill and reports zero.
func ClosedTradeFromGroup(g *domain.OrderGroup) ClosedTrade {
	t := ClosedTrade{
		GroupID:    g.ID,
		Symbol:     g.Symbol,
		Side:       g.Side,
		Qty:        g.Qty,
		EntryPrice: g.Entry.AvgPrice,
		Reason:     g.Reason,
		Adopted:    g.Adopted,
		OpenedAt:   g.CreatedAt,
		ClosedAt:   g.ClosedAt,
	}
	for _, leg := range []domain.Order{g.Stop, g.Take} {
		if leg.Status == domain.OrderStatusFilled {
			t.ExitPrice = leg.AvgPrice
			break
		}
	}
	if t.EntryPrice != 0 && t.ExitPrice != 0 {
		points := t.ExitPrice - t.EntryPrice
		if g.Side == domain.SideShort {
			points = -points
		}
		t.PnLPoints = points * float64(g.Qty)
	}
	return t
}
