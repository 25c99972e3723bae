package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"quantra/internal/domain"
)

// TradeArchive stores closed trades in Parquet files on disk, one file per
// symbol and year.
type TradeArchive struct {
	DataDir string
}

// NewTradeArchive creates a TradeArchive rooted at the given directory.
func NewTradeArchive(dataDir string) *TradeArchive {
	return &TradeArchive{DataDir: dataDir}
}

// closedTradeRecord is the Parquet schema for closed trades.
type closedTradeRecord struct {
	GroupID    string  `parquet:"group_id"`
	Symbol     string  `parquet:"symbol"`
	Side       string  `parquet:"side"`
	Qty        int64   `parquet:"qty"`
	EntryPrice float64 `parquet:"entry_price"`
	ExitPrice  float64 `parquet:"exit_price"`
	PnLPoints  float64 `parquet:"pnl_points"`
	Reason     string  `parquet:"reason"`
	Adopted    bool    `parquet:"adopted"`
	OpenedAt   int64   `parquet:"opened_at,timestamp(millisecond)"` // Unix ms
	ClosedAt   int64   `parquet:"closed_at,timestamp(millisecond)"` // Unix ms
}

// WriteTrades appends closed trades, merged into the per-symbol-and-year
// files. Re-writing a trade with the same group id replaces it.
func (a *TradeArchive) WriteTrades(trades []ClosedTrade) error {
	if len(trades) == 0 {
		return nil
	}

	type key struct {
		symbol string
		year   int
	}
	groups := make(map[key][]closedTradeRecord)
	for _, t := range trades {
		k := key{symbol: t.Symbol, year: t.ClosedAt.Year()}
		groups[k] = append(groups[k], closedTradeRecord{
			GroupID:    t.GroupID,
			Symbol:     t.Symbol,
			Side:       string(t.Side),
			Qty:        int64(t.Qty),
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			PnLPoints:  t.PnLPoints,
			Reason:     string(t.Reason),
			Adopted:    t.Adopted,
			OpenedAt:   t.OpenedAt.UnixMilli(),
			ClosedAt:   t.ClosedAt.UnixMilli(),
		})
	}

	for k, records := range groups {
		path := a.tradePath(k.symbol, k.year)

		// Read existing records to merge.
		existing, _ := readParquetFile[closedTradeRecord](path)
		merged := mergeTradeRecords(existing, records)

		if err := writeParquetFile(path, merged); err != nil {
			return fmt.Errorf("writing trades for %s/%d: %w", k.symbol, k.year, err)
		}
	}
	return nil
}

// ReadTrades reads closed trades for the symbol within [start, end].
func (a *TradeArchive) ReadTrades(symbol string, start, end time.Time) ([]ClosedTrade, error) {
	var trades []ClosedTrade
	for year := start.Year(); year <= end.Year(); year++ {
		records, err := readParquetFile[closedTradeRecord](a.tradePath(symbol, year))
		if err != nil {
			// No file for this year.
			continue
		}
		for _, r := range records {
			ts := time.UnixMilli(r.ClosedAt)
			if ts.Before(start) || ts.After(end) {
				continue
			}
			trades = append(trades, ClosedTrade{
				GroupID:    r.GroupID,
				Symbol:     r.Symbol,
				Side:       domain.Side(r.Side),
				Qty:        int(r.Qty),
				EntryPrice: r.EntryPrice,
				ExitPrice:  r.ExitPrice,
				PnLPoints:  r.PnLPoints,
				Reason:     domain.CloseReason(r.Reason),
				Adopted:    r.Adopted,
				OpenedAt:   time.UnixMilli(r.OpenedAt),
				ClosedAt:   ts,
			})
		}
	}
	return trades, nil
}

// tradePath returns the filesystem path for a trade Parquet file.
// Layout: <dataDir>/trades/<SYMBOL>/<YYYY>.parquet
func (a *TradeArchive) tradePath(symbol string, year int) string {
	return filepath.Join(a.DataDir, "trades", strings.ToUpper(symbol), fmt.Sprintf("%d.parquet", year))
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// mergeTradeRecords deduplicates records by group id, preferring incoming
// over existing. Results are sorted by close time.
func mergeTradeRecords(existing, incoming []closedTradeRecord) []closedTradeRecord {
	seen := make(map[string]closedTradeRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.GroupID] = r
	}
	for _, r := range incoming {
		seen[r.GroupID] = r
	}

	merged := make([]closedTradeRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ClosedAt < merged[j].ClosedAt
	})
	return merged
}
