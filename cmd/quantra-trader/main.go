// quantra-trader runs the live bracket-order trading engine: it streams
// bars into a strategy, submits bracket groups through the venue gateway,
// and keeps local position state reconciled with the venue.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"quantra/internal/api"
	"quantra/internal/config"
	"quantra/internal/domain"
	"quantra/internal/engine"
	"quantra/internal/events"
	"quantra/internal/feed"
	"quantra/internal/httpapi"
	"quantra/internal/store"
	"quantra/internal/strategy"
	"quantra/internal/strategy/builtins"
	"quantra/internal/util"
	"quantra/internal/venue"
)

func main() {
	cfgPath := flag.String("config", "config/quantra.yaml", "path to config file")
	replayStart := flag.String("replay-start", "", "replay historical bars from this date (YYYY-MM-DD) instead of streaming live")
	replayEnd := flag.String("replay-end", "", "end date for replay (YYYY-MM-DD)")
	flag.Parse()

	if p := os.Getenv("QUANTRA_CONFIG"); p != "" && !flagSet("config") {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Venue gateway. Paper mode trades against the in-process simulator;
	// otherwise orders go to Alpaca (point base_url at the paper endpoint
	// for a dry run against the real API).
	var gw venue.Gateway
	if cfg.Trading.PaperMode {
		gw = venue.NewSimGateway()
	} else {
		gw = venue.NewAlpacaGateway(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)
	}
	logger.Info("venue gateway ready", "venue", gw.Name(), "symbol", cfg.Trading.Symbol)

	// Persistence.
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		logger.Error("creating data dir", "error", err)
		os.Exit(1)
	}
	journal, err := store.NewSQLiteJournal(cfg.Storage.SQLitePath)
	if err != nil {
		logger.Error("opening journal", "error", err)
		os.Exit(1)
	}
	defer journal.Close()
	archiver := &store.Archiver{
		Journal: journal,
		Trades:  store.NewTradeArchive(cfg.Storage.DataDir),
	}

	// Engine core.
	tracker := engine.NewTracker()
	bus := events.NewBus()
	eng := engine.NewEngine(gw, tracker, bus, cfg.Trading, logger)
	disp := engine.NewDispatcher(tracker, gw, bus, logger)
	rec := engine.NewReconciler(gw, tracker, bus, cfg.Reconcile, cfg.Trading.Symbol, logger)
	cleaner := engine.NewCleaner(gw, tracker, bus, archiver,
		cfg.Cleanup, cfg.Reconcile.OpeningTimeout.Std(), cfg.Trading.Symbol, logger)

	// Persist every published event to the journal.
	evSubID, evCh := bus.Subscribe(512)
	go func() {
		// Background context: shutdown events (final flatten) must still
		// reach the journal after the run context is cancelled.
		for ev := range evCh {
			if err := journal.SaveEvent(context.Background(), ev); err != nil {
				logger.Warn("saving event", "type", ev.Type, "error", err)
			}
		}
	}()

	// Order event stream feeds the dispatcher.
	orderEvents := make(chan venue.OrderEvent, 256)
	go func() {
		if err := gw.StreamOrderEvents(ctx, orderEvents); err != nil && ctx.Err() == nil {
			logger.Error("order event stream failed", "error", err)
			cancel()
		}
	}()
	go disp.Run(ctx, orderEvents)
	go rec.Run(ctx)
	go cleaner.Run(ctx)

	// gRPC API.
	gs := grpc.NewServer()
	api.NewServer(eng, bus, gw.Name(), logger).RegisterGRPC(gs)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("listening", "addr", addr, "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("grpc server listening", "addr", addr)
		if err := gs.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
		}
	}()

	// Optional REST API.
	var httpSrv *http.Server
	if cfg.Server.HTTPPort != 0 {
		rest := httpapi.NewServer(eng, bus, journal, archiver.Trades, gw.Name(), logger)
		httpSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
			Handler: rest.Handler(),
		}
		go func() {
			logger.Info("http server listening", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("http serve", "error", err)
			}
		}()
	}

	// Strategy.
	registry := strategy.NewRegistry()
	registry.Register(builtins.NewBreakout(
		cfg.Strategy.Lookback, cfg.Strategy.StopTicks, cfg.Strategy.TakeTicks, cfg.Trading.TickSize))
	strat, ok := registry.Get(cfg.Strategy.Name)
	if !ok {
		logger.Error("unknown strategy", "name", cfg.Strategy.Name, "available", registry.List())
		os.Exit(1)
	}
	if err := strat.Init(ctx); err != nil {
		logger.Error("strategy init", "name", strat.Name(), "error", err)
		os.Exit(1)
	}

	// Bar feed.
	barFeed, err := buildFeed(cfg, *replayStart, *replayEnd)
	if err != nil {
		logger.Error("building feed", "error", err)
		os.Exit(1)
	}
	rawBars := make(chan domain.Bar, 64)
	go func() {
		defer close(rawBars)
		if err := barFeed.Run(ctx, rawBars); err != nil && ctx.Err() == nil {
			logger.Error("bar feed failed", "feed", barFeed.Name(), "error", err)
			cancel()
		}
	}()

	// In paper mode each bar also advances the simulated venue, so entries
	// fill and protective legs trigger off the live tape.
	bars := (<-chan domain.Bar)(rawBars)
	if sim, ok := gw.(*venue.SimGateway); ok {
		ticked := make(chan domain.Bar, 64)
		go func() {
			defer close(ticked)
			for bar := range rawBars {
				sim.Tick(bar.Close)
				ticked <- bar
			}
		}()
		bars = ticked
	}

	logger.Info("trader running",
		"strategy", strat.Name(), "feed", barFeed.Name(), "paper", cfg.Trading.PaperMode)

	runLoop(ctx, logger, eng, strat, bars)

	// Shutdown: flatten whatever is still open, then drain.
	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	cleaner.FinalPass(shutdownCtx)
	if httpSrv != nil {
		httpSrv.Shutdown(shutdownCtx)
	}
	gs.GracefulStop()
	bus.Unsubscribe(evSubID)
	logger.Info("trader stopped")
}

// runLoop feeds bars to the strategy and opens positions on its intents.
// It returns when the bar channel closes or ctx is cancelled.
func runLoop(ctx context.Context, logger *slog.Logger, eng *engine.Engine, strat strategy.Strategy, bars <-chan domain.Bar) {
	for {
		select {
		case <-ctx.Done():
			return
		case bar, ok := <-bars:
			if !ok {
				return
			}
			intent, err := strat.OnBar(ctx, bar)
			if err != nil {
				logger.Warn("strategy error", "error", err)
				continue
			}
			if intent == nil {
				continue
			}
			view, err := eng.TryOpen(ctx, *intent)
			switch {
			case err == nil:
				logger.Info("position opening",
					"group", view.ID, "side", view.Side, "qty", view.Qty,
					"stop", view.StopPrice, "take", view.TakePrice)
			case errors.Is(err, engine.ErrDegraded),
				errors.Is(err, engine.ErrDailyLimit),
				errors.Is(err, engine.ErrTradeSpacing):
				logger.Info("signal skipped", "reason", err)
			default:
				var open *engine.AlreadyOpenError
				if errors.As(err, &open) {
					continue // normal while a position is working
				}
				logger.Error("opening position", "error", err)
			}
		}
	}
}

// buildFeed picks the live stream unless a replay window was requested.
func buildFeed(cfg *config.Config, start, end string) (feed.Feed, error) {
	if start == "" {
		return feed.NewAlpacaFeed(
			cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.Feed, cfg.Trading.Symbol), nil
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("parsing replay-start: %w", err)
	}
	to := time.Now()
	if end != "" {
		if to, err = time.Parse("2006-01-02", end); err != nil {
			return nil, fmt.Errorf("parsing replay-end: %w", err)
		}
	}
	return feed.NewReplayFeed(
		cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL,
		cfg.Trading.Symbol, from, to, 0), nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
