package engine

import (
	"math"

	"quantra/internal/domain"
)

// roundTick snaps a price to the instrument's tick grid.
func roundTick(price, tick float64) float64 {
	if tick <= 0 {
		return price
	}
	return math.Round(price/tick) * tick
}

// normalizeTargets snaps stop and take prices to the tick grid and fixes
// side-relative placement. For a LONG the stop must sit below the reference
// price and the take above it; for a SHORT the reverse. Swapped targets are
// exchanged, and a target sitting on the wrong side of (or exactly at) the
// reference is pushed one tick past it. Returns the corrected pair and
// whether anything beyond rounding was changed.
func normalizeTargets(side domain.Side, ref, stop, take, tick float64) (stopOut, takeOut float64, adjusted bool) {
	stop = roundTick(stop, tick)
	take = roundTick(take, tick)
	ref = roundTick(ref, tick)
	if tick <= 0 {
		tick = 0.01
	}

	long := side == domain.SideLong
	// Swapped pair: the stop is where the take should be and vice versa.
	if (long && stop > take) || (!long && stop < take) {
		stop, take = take, stop
		adjusted = true
	}
	if long {
		if stop >= ref {
			stop = ref - tick
			adjusted = true
		}
		if take <= ref {
			take = ref + tick
			adjusted = true
		}
	} else {
		if stop <= ref {
			stop = ref + tick
			adjusted = true
		}
		if take >= ref {
			take = ref - tick
			adjusted = true
		}
	}
	return stop, take, adjusted
}
