// quantra-events tails the lifecycle event stream of a running
// quantra-trader over gRPC and prints each event to the console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quantra/pkg/quantra"
)

func main() {
	addr := flag.String("addr", "localhost:50061", "trader gRPC address")
	replay := flag.Bool("replay", true, "replay retained event history before tailing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	client, err := quantra.NewClient(*addr)
	if err != nil {
		logger.Error("connecting", "addr", *addr, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	status, err := client.GetStatus(ctx)
	if err != nil {
		logger.Error("getting status", "error", err)
		os.Exit(1)
	}
	fmt.Printf("connected to %s (venue=%s state=%s trades_today=%d degraded=%v)\n",
		*addr, status.Venue, status.State, status.TradesToday, status.Degraded)

	err = client.StreamEvents(ctx, *replay, func(ev quantra.Event) {
		fmt.Println(formatEvent(ev))
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("stream ended", "error", err)
		os.Exit(1)
	}
}

func formatEvent(ev quantra.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %-22s", ev.At.Format("15:04:05.000"), ev.Type)
	if ev.GroupID != "" {
		fmt.Fprintf(&b, " group=%s", ev.GroupID)
	}
	if ev.OrderID != "" {
		fmt.Fprintf(&b, " order=%s", ev.OrderID)
	}
	if ev.Role != "" {
		fmt.Fprintf(&b, " role=%s", ev.Role)
	}
	if ev.Side != "" {
		fmt.Fprintf(&b, " %s %d %s", ev.Side, ev.Qty, ev.Symbol)
	}
	if ev.Price != 0 {
		fmt.Fprintf(&b, " @ %.2f", ev.Price)
	}
	if ev.Reason != "" {
		fmt.Fprintf(&b, " reason=%s", ev.Reason)
	}
	if ev.Outcome != "" {
		fmt.Fprintf(&b, " outcome=%s", ev.Outcome)
	}
	if ev.Detail != "" {
		fmt.Fprintf(&b, " (%s)", ev.Detail)
	}
	return b.String()
}
