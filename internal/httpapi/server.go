package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quantra/internal/engine"
	"quantra/internal/events"
	"quantra/internal/store"
)

const defaultGroupLimit = 100

// Server serves the trader REST API.
type Server struct {
	eng     *engine.Engine
	bus     *events.Bus
	journal store.GroupJournal
	trades  *store.TradeArchive
	venue   string
	log     *slog.Logger
}

// NewServer creates the REST server. trades may be nil when no Parquet
// archive is configured; the trades endpoint then returns empty results.
func NewServer(eng *engine.Engine, bus *events.Bus, journal store.GroupJournal, trades *store.TradeArchive, venue string, log *slog.Logger) *Server {
	return &Server{eng: eng, bus: bus, journal: journal, trades: trades, venue: venue, log: log}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/groups", s.handleGroups)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGroup)
	mux.HandleFunc("GET /api/trades/{symbol}", s.handleTrades)
	mux.HandleFunc("GET /api/events/recent", s.handleRecentEvents)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	state, _ := s.eng.Tracker().State()
	status := StatusJSON{
		State:           string(state),
		IsOpen:          s.eng.IsOpen(),
		TradesToday:     s.eng.TradesToday(),
		Degraded:        s.eng.Degraded(),
		EventsPublished: s.bus.Published(),
		EventsDropped:   s.bus.Dropped(),
		Venue:           s.venue,
	}
	if view, ok := s.eng.Tracker().ActiveGroup(); ok {
		status.Active = groupJSON(view)
	}
	writeJSON(w, status)
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	limit := defaultGroupLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	views, err := s.journal.ListGroups(r.Context(), limit)
	if err != nil {
		s.log.Error("listing groups", "error", err)
		writeError(w, http.StatusInternalServerError, "listing groups failed")
		return
	}
	groups := make([]*GroupJSON, 0, len(views))
	for _, v := range views {
		groups = append(groups, groupJSON(v))
	}
	writeJSON(w, groups)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, err := s.journal.GetGroup(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		s.log.Error("loading group", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "loading group failed")
		return
	}
	writeJSON(w, groupJSON(view))
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	end := time.Now()
	start := end.AddDate(-1, 0, 0)
	var err error
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = time.Parse("2006-01-02", v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = time.Parse("2006-01-02", v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
	}

	trades := []TradeJSON{}
	if s.trades != nil {
		records, err := s.trades.ReadTrades(symbol, start, end)
		if err != nil {
			s.log.Error("reading trades", "symbol", symbol, "error", err)
			writeError(w, http.StatusInternalServerError, "reading trades failed")
			return
		}
		for _, t := range records {
			trades = append(trades, tradeJSON(t))
		}
	}
	writeJSON(w, trades)
}

func (s *Server) handleRecentEvents(w http.ResponseWriter, r *http.Request) {
	recent := s.bus.Recent()
	out := make([]EventJSON, 0, len(recent))
	for _, ev := range recent {
		out = append(out, eventJSON(ev))
	}
	writeJSON(w, out)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
