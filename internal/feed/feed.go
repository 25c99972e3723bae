// Package feed delivers OHLCV bars to the strategy loop, either live from
// the Alpaca websocket or replayed from the historical data API.
package feed

import (
	"context"

	"quantra/internal/domain"
)

// Feed pushes bars into out until ctx is cancelled or the source is
// exhausted. Run blocks for the lifetime of the feed.
type Feed interface {
	Name() string
	Run(ctx context.Context, out chan<- domain.Bar) error
}
