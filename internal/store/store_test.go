package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"quantra/internal/domain"
)

func finishedGroup(id string, reason domain.CloseReason) *domain.OrderGroup {
	opened := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	g := &domain.OrderGroup{
		ID:     id,
		Symbol: "WDO",
		Side:   domain.SideLong,
		Qty:    1,
		Entry: domain.Order{
			ID: id + "-e", Role: domain.RoleEntry,
			Status: domain.OrderStatusFilled, Qty: 1, FilledQty: 1, AvgPrice: 5500,
		},
		Stop: domain.Order{
			ID: id + "-s", Role: domain.RoleStop,
			Status: domain.OrderStatusCancelled, Qty: 1, Price: 5490,
		},
		Take: domain.Order{
			ID: id + "-t", Role: domain.RoleTake,
			Status: domain.OrderStatusFilled, Qty: 1, FilledQty: 1, AvgPrice: 5520, Price: 5520,
		},
		Status:    domain.GroupClosed,
		Reason:    reason,
		CreatedAt: opened,
		ClosedAt:  opened.Add(25 * time.Minute),
	}
	return g
}

func TestClosedTradeFromGroup(t *testing.T) {
	g := finishedGroup("pos-1", domain.CloseTakeHit)
	trade := ClosedTradeFromGroup(g)

	if trade.EntryPrice != 5500 || trade.ExitPrice != 5520 {
		t.Errorf("prices = (%v, %v), want (5500, 5520)", trade.EntryPrice, trade.ExitPrice)
	}
	if trade.PnLPoints != 20 {
		t.Errorf("PnLPoints = %v, want 20", trade.PnLPoints)
	}

	// SHORT flips the sign.
	g.Side = domain.SideShort
	if got := ClosedTradeFromGroup(g).PnLPoints; got != -20 {
		t.Errorf("short PnLPoints = %v, want -20", got)
	}

	// No filled leg: no exit, no pnl.
	g.Take.Status = domain.OrderStatusCancelled
	trade = ClosedTradeFromGroup(g)
	if trade.ExitPrice != 0 || trade.PnLPoints != 0 {
		t.Errorf("trade without exit fill = %+v, want zero exit and pnl", trade)
	}
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal: %v", err)
	}
	defer j.Close()

	g := finishedGroup("pos-1", domain.CloseTakeHit)
	if err := j.ArchiveGroup(ctx, g); err != nil {
		t.Fatalf("ArchiveGroup: %v", err)
	}

	got, err := j.GetGroup(ctx, "pos-1")
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if got.Symbol != "WDO" || got.Side != domain.SideLong || got.Qty != 1 {
		t.Errorf("group = %+v, want WDO LONG x1", got)
	}
	if got.Status != domain.GroupClosed || got.Reason != domain.CloseTakeHit {
		t.Errorf("status/reason = %s/%s, want CLOSED/take_hit", got.Status, got.Reason)
	}
	if got.EntryID != "pos-1-e" || got.StopID != "pos-1-s" || got.TakeID != "pos-1-t" {
		t.Errorf("order ids not round-tripped: %+v", got)
	}
	if !got.ClosedAt.Equal(g.ClosedAt) {
		t.Errorf("ClosedAt = %v, want %v", got.ClosedAt, g.ClosedAt)
	}
}

func TestSQLiteJournalArchiveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal: %v", err)
	}
	defer j.Close()

	g := finishedGroup("pos-1", domain.CloseTakeHit)
	for i := 0; i < 2; i++ {
		if err := j.ArchiveGroup(ctx, g); err != nil {
			t.Fatalf("ArchiveGroup #%d: %v", i+1, err)
		}
	}
	groups, err := j.ListGroups(ctx, 10)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Errorf("ListGroups returned %d rows, want 1", len(groups))
	}
}

func TestSQLiteJournalSaveEvent(t *testing.T) {
	ctx := context.Background()
	j, err := NewSQLiteJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteJournal: %v", err)
	}
	defer j.Close()

	ev := domain.Event{
		Type: domain.EventPositionClosed, At: time.Now(),
		GroupID: "pos-1", Symbol: "WDO", Side: domain.SideLong, Qty: 1,
		Price: 5520, Reason: domain.CloseTakeHit,
	}
	if err := j.SaveEvent(ctx, ev); err != nil {
		t.Fatalf("SaveEvent: %v", err)
	}
}

func TestTradeArchivePath(t *testing.T) {
	a := NewTradeArchive("/data")
	got := a.tradePath("wdo", 2026)
	want := filepath.Join("/data", "trades", "WDO", "2026.parquet")
	if got != want {
		t.Errorf("tradePath mismatch:\n  got  %s\n  want %s", got, want)
	}
}

func TestTradeArchiveWriteReadMerge(t *testing.T) {
	a := NewTradeArchive(t.TempDir())

	first := ClosedTradeFromGroup(finishedGroup("pos-1", domain.CloseTakeHit))
	if err := a.WriteTrades([]ClosedTrade{first}); err != nil {
		t.Fatalf("WriteTrades: %v", err)
	}

	// Second write merges: one new trade plus a rewrite of the first.
	second := ClosedTradeFromGroup(finishedGroup("pos-2", domain.CloseStopHit))
	second.ClosedAt = first.ClosedAt.Add(time.Hour)
	rewrite := first
	rewrite.ExitPrice = 5521
	if err := a.WriteTrades([]ClosedTrade{second, rewrite}); err != nil {
		t.Fatalf("WriteTrades (merge): %v", err)
	}

	start := first.ClosedAt.Add(-time.Hour)
	end := first.ClosedAt.Add(2 * time.Hour)
	trades, err := a.ReadTrades("WDO", start, end)
	if err != nil {
		t.Fatalf("ReadTrades: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("ReadTrades returned %d trades, want 2", len(trades))
	}
	// Sorted by close time; rewrite replaced the original row.
	if trades[0].GroupID != "pos-1" || trades[0].ExitPrice != 5521 {
		t.Errorf("trades[0] = %+v, want pos-1 with exit 5521", trades[0])
	}
	if trades[1].GroupID != "pos-2" || trades[1].Reason != domain.CloseStopHit {
		t.Errorf("trades[1] = %+v, want pos-2 stop_hit", trades[1])
	}
}
