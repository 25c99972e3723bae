// Package builtins provides the strategy implementations that ship with
// quantra.
package builtins

import (
	"context"

	"quantra/internal/domain"
	"quantra/internal/strategy"
)

// Compile-time interface check.
var _ strategy.Strategy = (*Breakout)(nil)

// Breakout signals a LONG when the close breaks above the highest high of
// the lookback window and a SHORT when it breaks below the lowest low.
// Stop and take targets are placed a fixed number of ticks from the close.
type Breakout struct {
	lookback  int
	stopTicks int
	takeTicks int
	tick      float64

	window []domain.Bar
}

// NewBreakout creates a Breakout strategy. lookback is the number of prior
// bars forming the channel; stopTicks and takeTicks size the bracket in
// ticks of tickSize.
func NewBreakout(lookback, stopTicks, takeTicks int, tickSize float64) *Breakout {
	return &Breakout{
		lookback:  lookback,
		stopTicks: stopTicks,
		takeTicks: takeTicks,
		tick:      tickSize,
	}
}

// Name returns "breakout".
func (s *Breakout) Name() string {
	return "breakout"
}

// Init resets the bar window.
func (s *Breakout) Init(_ context.Context) error {
	s.window = make([]domain.Bar, 0, s.lookback)
	return nil
}

// OnBar compares the bar's close against the channel formed by the
// previous lookback bars, then rolls the bar into the window.
func (s *Breakout) OnBar(_ context.Context, bar domain.Bar) (*domain.TradeIntent, error) {
	defer s.push(bar)

	if len(s.window) < s.lookback {
		return nil, nil
	}

	hi, lo := s.channel()
	switch {
	case bar.Close > hi:
		return s.intent(bar, domain.SideLong), nil
	case bar.Close < lo:
		return s.intent(bar, domain.SideShort), nil
	}
	return nil, nil
}

func (s *Breakout) intent(bar domain.Bar, side domain.Side) *domain.TradeIntent {
	stopOff := float64(s.stopTicks) * s.tick
	takeOff := float64(s.takeTicks) * s.tick
	intent := &domain.TradeIntent{
		Symbol:   bar.Symbol,
		Side:     side,
		RefPrice: bar.Close,
	}
	if side == domain.SideLong {
		intent.StopPrice = bar.Close - stopOff
		intent.TakePrice = bar.Close + takeOff
	} else {
		intent.StopPrice = bar.Close + stopOff
		intent.TakePrice = bar.Close - takeOff
	}
	return intent
}

func (s *Breakout) channel() (hi, lo float64) {
	hi, lo = s.window[0].High, s.window[0].Low
	for _, b := range s.window[1:] {
		if b.High > hi {
			hi = b.High
		}
		if b.Low < lo {
			lo = b.Low
		}
	}
	return hi, lo
}

func (s *Breakout) push(bar domain.Bar) {
	s.window = append(s.window, bar)
	if len(s.window) > s.lookback {
		s.window = s.window[1:]
	}
}
