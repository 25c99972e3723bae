package feed

import (
	"context"
	"fmt"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata/stream"

	"quantra/internal/domain"
)

// Compile-time interface check.
var _ Feed = (*AlpacaFeed)(nil)

// AlpacaFeed streams live minute bars for one symbol over the Alpaca
// websocket.
type AlpacaFeed struct {
	apiKey    string
	apiSecret string
	feed      string // "iex" or "sip"
	symbol    string
}

// NewAlpacaFeed creates a live bar feed. feedName selects the upstream data
// feed; paper accounts get "iex".
func NewAlpacaFeed(apiKey, apiSecret, feedName, symbol string) *AlpacaFeed {
	if feedName == "" {
		feedName = "iex"
	}
	return &AlpacaFeed{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		feed:      feedName,
		symbol:    symbol,
	}
}

// Name returns "alpaca".
func (f *AlpacaFeed) Name() string { return "alpaca" }

// Run connects, subscribes to bars for the symbol, and forwards them into
// out until ctx is cancelled or the connection terminates.
func (f *AlpacaFeed) Run(ctx context.Context, out chan<- domain.Bar) error {
	client := stream.NewStocksClient(f.feed,
		stream.WithCredentials(f.apiKey, f.apiSecret),
	)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connecting bar stream: %w", err)
	}

	handler := func(b stream.Bar) {
		bar := domain.Bar{
			Symbol:    b.Symbol,
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		}
		select {
		case out <- bar:
		case <-ctx.Done():
		}
	}
	if err := client.SubscribeToBars(handler, f.symbol); err != nil {
		return fmt.Errorf("subscribing to bars for %s: %w", f.symbol, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-client.Terminated():
		if err != nil {
			return fmt.Errorf("bar stream terminated: %w", err)
		}
		return nil
	}
}
