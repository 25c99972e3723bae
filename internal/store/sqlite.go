package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quantra/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ GroupJournal = (*SQLiteJournal)(nil)

// SQLiteJournal implements GroupJournal backed by a SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS order_groups (
	id          TEXT PRIMARY KEY,
	symbol      TEXT NOT NULL,
	side        TEXT NOT NULL,
	qty         INTEGER NOT NULL,
	entry_id    TEXT,
	stop_id     TEXT,
	take_id     TEXT,
	entry_price REAL,
	stop_price  REAL,
	take_price  REAL,
	exit_price  REAL,
	status      TEXT NOT NULL,
	reason      TEXT,
	adopted     INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	closed_at   INTEGER
);
CREATE TABLE IF NOT EXISTS events (
	seq      INTEGER PRIMARY KEY AUTOINCREMENT,
	type     TEXT NOT NULL,
	at       INTEGER NOT NULL,
	group_id TEXT,
	order_id TEXT,
	role     TEXT,
	symbol   TEXT,
	side     TEXT,
	qty      INTEGER,
	price    REAL,
	reason   TEXT,
	outcome  TEXT,
	detail   TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_group ON events(group_id);
`

// NewSQLiteJournal opens (or creates) the journal database at dbPath and
// applies the schema.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}

// ArchiveGroup upserts a finished group. Re-archiving the same group id
// replaces the row, so retries are harmless.
func (s *SQLiteJournal) ArchiveGroup(ctx context.Context, g *domain.OrderGroup) error {
	trade := ClosedTradeFromGroup(g)
	var closedAt any
	if !g.ClosedAt.IsZero() {
		closedAt = g.ClosedAt.UnixMilli()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO order_groups
		(id, symbol, side, qty, entry_id, stop_id, take_id,
		 entry_price, stop_price, take_price, exit_price,
		 status, reason, adopted, created_at, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Symbol, string(g.Side), g.Qty,
		g.Entry.ID, g.Stop.ID, g.Take.ID,
		g.Entry.AvgPrice, g.Stop.Price, g.Take.Price, trade.ExitPrice,
		string(g.Status), string(g.Reason), boolToInt(g.Adopted),
		g.CreatedAt.UnixMilli(), closedAt,
	)
	if err != nil {
		return fmt.Errorf("archiving group %s: %w", g.ID, err)
	}
	return nil
}

// SaveEvent appends one lifecycle event to the journal.
func (s *SQLiteJournal) SaveEvent(ctx context.Context, ev domain.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(type, at, group_id, order_id, role, symbol, side, qty, price, reason, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(ev.Type), ev.At.UnixMilli(), ev.GroupID, ev.OrderID, string(ev.Role),
		ev.Symbol, string(ev.Side), ev.Qty, ev.Price,
		string(ev.Reason), ev.Outcome, ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("saving event %s: %w", ev.Type, err)
	}
	return nil
}

// ListGroups returns the most recently closed groups, newest first.
func (s *SQLiteJournal) ListGroups(ctx context.Context, limit int) ([]domain.OrderGroupView, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, symbol, side, qty, entry_id, stop_id, take_id,
		       entry_price, stop_price, take_price,
		       status, reason, created_at, closed_at
		FROM order_groups
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var out []domain.OrderGroupView
	for rows.Next() {
		v, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetGroup returns a single archived group by id.
func (s *SQLiteJournal) GetGroup(ctx context.Context, id string) (domain.OrderGroupView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, symbol, side, qty, entry_id, stop_id, take_id,
		       entry_price, stop_price, take_price,
		       status, reason, created_at, closed_at
		FROM order_groups WHERE id = ?`, id)
	if err != nil {
		return domain.OrderGroupView{}, fmt.Errorf("loading group %s: %w", id, err)
	}
	defer rows.Close()
	if !rows.Next() {
		return domain.OrderGroupView{}, fmt.Errorf("group %s not found", id)
	}
	return scanGroup(rows)
}

func scanGroup(rows *sql.Rows) (domain.OrderGroupView, error) {
	var (
		v                      domain.OrderGroupView
		side, status           string
		reason                 sql.NullString
		createdAt              int64
		closedAt               sql.NullInt64
		entryID, stopID, takeID sql.NullString
	)
	err := rows.Scan(&v.ID, &v.Symbol, &side, &v.Qty, &entryID, &stopID, &takeID,
		&v.EntryPrice, &v.StopPrice, &v.TakePrice,
		&status, &reason, &createdAt, &closedAt)
	if err != nil {
		return domain.OrderGroupView{}, fmt.Errorf("scanning group row: %w", err)
	}
	v.Side = domain.Side(side)
	v.Status = domain.GroupStatus(status)
	v.Reason = domain.CloseReason(reason.String)
	v.EntryID, v.StopID, v.TakeID = entryID.String, stopID.String, takeID.String
	v.CreatedAt = time.UnixMilli(createdAt)
	if closedAt.Valid {
		v.ClosedAt = time.UnixMilli(closedAt.Int64)
	}
	return v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
