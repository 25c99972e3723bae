package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"quantra/internal/domain"
)

// Compile-time interface check.
var _ Feed = (*ReplayFeed)(nil)

// ReplayFeed fetches historical minute bars once and plays them into the
// strategy loop with a fixed pacing delay. Used with the sim venue for
// paper runs.
type ReplayFeed struct {
	client *marketdata.Client
	symbol string
	start  time.Time
	end    time.Time
	pace   time.Duration
}

// NewReplayFeed creates a replay of [start, end) minute bars for symbol,
// emitting one bar per pace interval (zero means as fast as possible).
func NewReplayFeed(apiKey, apiSecret, dataURL, symbol string, start, end time.Time, pace time.Duration) *ReplayFeed {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &ReplayFeed{
		client: marketdata.NewClient(opts),
		symbol: symbol,
		start:  start,
		end:    end,
		pace:   pace,
	}
}

// Name returns "replay".
func (f *ReplayFeed) Name() string { return "replay" }

// Run fetches the bars and pushes them into out in order.
func (f *ReplayFeed) Run(ctx context.Context, out chan<- domain.Bar) error {
	alpacaBars, err := f.client.GetBars(f.symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneMin,
		Start:     f.start,
		End:       f.end,
	})
	if err != nil {
		return fmt.Errorf("GetBars %s: %w", f.symbol, err)
	}

	for _, ab := range alpacaBars {
		bar := domain.Bar{
			Symbol:    f.symbol,
			Timestamp: ab.Timestamp,
			Open:      ab.Open,
			High:      ab.High,
			Low:       ab.Low,
			Close:     ab.Close,
			Volume:    int64(ab.Volume),
		}
		select {
		case out <- bar:
		case <-ctx.Done():
			return ctx.Err()
		}
		if f.pace > 0 {
			select {
			case <-time.After(f.pace):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
