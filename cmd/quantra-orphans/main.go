// quantra-orphans is a one-shot recovery tool. It lists the working orders
// for the configured symbol at the venue and, unless run with -dry-run,
// cancels them all. Use it after a crash when the trader is not running
// and leftover bracket legs must be cleared by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quantra/internal/config"
	"quantra/internal/util"
	"quantra/internal/venue"
)

func main() {
	cfgPath := flag.String("config", "config/quantra.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "list working orders without cancelling")
	flatten := flag.Bool("flatten", false, "also close any open position at market")
	flag.Parse()

	if p := os.Getenv("QUANTRA_CONFIG"); p != "" {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	gw := venue.NewAlpacaGateway(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)
	symbol := cfg.Trading.Symbol

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	open, err := gw.GetOpenOrders(ctx, symbol)
	if err != nil {
		logger.Error("listing open orders", "symbol", symbol, "error", err)
		os.Exit(1)
	}
	if len(open) == 0 {
		fmt.Printf("no working orders for %s\n", symbol)
	}
	for _, o := range open {
		fmt.Printf("%s  %s %d %s  limit=%.2f stop=%.2f  age=%s\n",
			o.ID, o.Side, o.Qty, o.Symbol, o.LimitPrice, o.StopPrice,
			time.Since(o.CreatedAt).Round(time.Second))
	}

	if *dryRun {
		return
	}

	failed := 0
	for _, o := range open {
		orderID := o.ID
		err := util.Retry(ctx, cfg.Cleanup.CancelAttempts, cfg.Cleanup.CancelBackoff.Std(), func() error {
			return gw.CancelOrder(ctx, orderID)
		})
		if err != nil {
			logger.Error("cancel failed", "order", orderID, "error", err)
			failed++
			continue
		}
		fmt.Printf("cancelled %s\n", orderID)
	}

	if *flatten {
		pos, err := gw.GetPosition(ctx, symbol)
		if err != nil {
			logger.Error("fetching position", "symbol", symbol, "error", err)
			os.Exit(1)
		}
		if pos == nil {
			fmt.Printf("no open position for %s\n", symbol)
		} else {
			if err := gw.ClosePosition(ctx, symbol); err != nil {
				logger.Error("closing position", "symbol", symbol, "error", err)
				os.Exit(1)
			}
			fmt.Printf("closed %s %d %s\n", pos.Side, pos.Qty, symbol)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
