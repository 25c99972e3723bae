// Package engine implements the order lifecycle core: a position state
// machine and bracket group registry behind one lock, a venue event
// dispatcher, and the reconciliation and orphan cleanup loops.
package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the open-trade guard chain.
var (
	// ErrDegraded is returned while the engine refuses new trades after
	// repeated venue failures. Reconciliation and cleanup keep running.
	ErrDegraded = errors.New("engine degraded, not accepting new trades")

	// ErrDailyLimit is returned once the configured trade count for the
	// day is exhausted.
	ErrDailyLimit = errors.New("daily trade limit reached")

	// ErrTradeSpacing is returned when a new open arrives too soon after
	// the previous one.
	ErrTradeSpacing = errors.New("minimum spacing between trades not elapsed")
)

// AlreadyOpenError rejects an open attempt while a position is anywhere in
// its lifecycle. The attempt has no side effects.
type AlreadyOpenError struct {
	State   PositionState
	GroupID string
}

func (e *AlreadyOpenError) Error() string {
	if e.GroupID != "" {
		return fmt.Sprintf("position already open: state=%s group=%s", e.State, e.GroupID)
	}
	return fmt.Sprintf("position already open: state=%s", e.State)
}

// SubmissionError wraps a venue failure during bracket submission. The
// attempted open has been rolled back before this is returned.
type SubmissionError struct {
	Symbol string
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("bracket submission failed for %s: %v", e.Symbol, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// OrphanCancelFailure records an order that survived every cancel attempt.
// It is logged and surfaced as an event, never fatal.
type OrphanCancelFailure struct {
	OrderID  string
	Attempts int
	Err      error
}

func (e *OrphanCancelFailure) Error() string {
	return fmt.Sprintf("orphan order %s still live after %d cancel attempts: %v", e.OrderID, e.Attempts, e.Err)
}

func (e *OrphanCancelFailure) Unwrap() error { return e.Err }
