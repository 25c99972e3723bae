package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"quantra/internal/config"
	"quantra/internal/domain"
	"quantra/internal/engine"
	"quantra/internal/events"
	"quantra/internal/store"
	"quantra/internal/venue"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine, store.GroupJournal, *events.Bus) {
	t.Helper()
	sim := venue.NewSimGateway()
	tracker := engine.NewTracker()
	bus := events.NewBus()
	eng := engine.NewEngine(sim, tracker, bus, config.TradingConfig{
		Symbol:               "WDO",
		Quantity:             1,
		TickSize:             0.5,
		SubmitTimeout:        config.Duration(2 * time.Second),
		DegradeAfterFailures: 3,
	}, testLogger())

	journal, err := store.NewSQLiteJournal(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	srv := NewServer(eng, bus, journal, nil, sim.Name(), testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, eng, journal, bus
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestStatusEndpoint(t *testing.T) {
	ts, _, _, _ := newTestServer(t)

	var status StatusJSON
	if code := getJSON(t, ts.URL+"/api/status", &status); code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if status.State != "FLAT" {
		t.Errorf("state = %q, want FLAT", status.State)
	}
	if status.Venue != "sim" {
		t.Errorf("venue = %q, want sim", status.Venue)
	}
	if status.Active != nil {
		t.Error("active group set on fresh engine")
	}
}

func TestGroupsEndpoint(t *testing.T) {
	ts, _, journal, _ := newTestServer(t)

	g := &domain.OrderGroup{
		ID:        "g1",
		Symbol:    "WDO",
		Side:      domain.SideLong,
		Qty:       1,
		Entry:     domain.Order{ID: "g1-e", Role: domain.RoleEntry, Status: domain.OrderStatusFilled, AvgPrice: 5500},
		Stop:      domain.Order{ID: "g1-s", Role: domain.RoleStop, Price: 5490, Status: domain.OrderStatusFilled, AvgPrice: 5490},
		Take:      domain.Order{ID: "g1-t", Role: domain.RoleTake, Price: 5520, Status: domain.OrderStatusCancelled},
		Status:    domain.GroupClosed,
		Reason:    domain.CloseStopHit,
		CreatedAt: time.Now().Add(-time.Minute),
		ClosedAt:  time.Now(),
	}
	if err := journal.ArchiveGroup(context.Background(), g); err != nil {
		t.Fatalf("ArchiveGroup: %v", err)
	}

	var groups []GroupJSON
	if code := getJSON(t, ts.URL+"/api/groups", &groups); code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].ID != "g1" || groups[0].Reason != "stop_hit" {
		t.Errorf("group = %+v", groups[0])
	}

	var single GroupJSON
	if code := getJSON(t, ts.URL+"/api/groups/g1", &single); code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if single.StopPrice != 5490 {
		t.Errorf("stopPrice = %v, want 5490", single.StopPrice)
	}

	var errBody map[string]string
	if code := getJSON(t, ts.URL+"/api/groups/missing", &errBody); code != http.StatusNotFound {
		t.Errorf("status code for missing group = %d, want 404", code)
	}
}

func TestGroupsEndpointRejectsBadLimit(t *testing.T) {
	ts, _, _, _ := newTestServer(t)

	var errBody map[string]string
	if code := getJSON(t, ts.URL+"/api/groups?limit=zero", &errBody); code != http.StatusBadRequest {
		t.Errorf("status code = %d, want 400", code)
	}
}

func TestRecentEventsEndpoint(t *testing.T) {
	ts, _, _, bus := newTestServer(t)

	bus.Publish(domain.Event{
		Type:   domain.EventPositionOpened,
		At:     time.Now(),
		Symbol: "WDO",
		Side:   domain.SideLong,
		Qty:    1,
		Price:  5500,
	})

	var got []EventJSON
	if code := getJSON(t, ts.URL+"/api/events/recent", &got); code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Type != string(domain.EventPositionOpened) {
		t.Errorf("type = %q", got[0].Type)
	}
}
