package engine

import (
	"sync"
	"time"

	"quantra/internal/domain"
)

// PositionState is the engine's view of where the position is in its
// lifecycle. There is exactly one state for the whole engine; it is the
// only open/closed signal, no secondary flag exists.
type PositionState string

const (
	StateFlat    PositionState = "FLAT"
	StateOpening PositionState = "OPENING"
	StateOpen    PositionState = "OPEN"
	StateClosing PositionState = "CLOSING"
)

// orphanRef identifies a still-live order whose owning group is already
// CLOSED, or that lost its group entirely.
type orphanRef struct {
	OrderID string
	GroupID string
	Role    domain.OrderRole
}

// Tracker owns the position state machine and the order group registry.
// The two are updated together under one mutex so no caller can observe a
// registered group while the state still reads FLAT, or the reverse.
//
// All methods are safe for concurrent use. Mark* methods are idempotent:
// a repeated call with the same arguments is a no-op after the first.
type Tracker struct {
	mu         sync.Mutex
	state      PositionState
	stateSince time.Time
	cur        string // group id owning the current non-FLAT state

	groups  map[string]*domain.OrderGroup
	byOrder map[string]string // order id -> group id
}

func NewTracker() *Tracker {
	return &Tracker{
		state:      StateFlat,
		stateSince: time.Now(),
		groups:     make(map[string]*domain.OrderGroup),
		byOrder:    make(map[string]string),
	}
}

// ---------------------------------------------------------------------------
// Open path
// ---------------------------------------------------------------------------

// TryOpen atomically claims the FLAT state and registers the group as
// PENDING. On failure nothing changes and the returned error reports what
// holds the position.
func (t *Tracker) TryOpen(g *domain.OrderGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateFlat {
		return &AlreadyOpenError{State: t.state, GroupID: t.cur}
	}
	for id, og := range t.groups {
		if og.Status == domain.GroupActive {
			return &AlreadyOpenError{State: t.state, GroupID: id}
		}
	}

	g.Status = domain.GroupPending
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	t.groups[g.ID] = g
	t.setStateLocked(StateOpening, g.ID)
	return nil
}

// BindOrders records the venue-assigned order ids for a just-submitted
// group, making them visible to dispatcher lookups before the submit call
// returns to the strategy.
func (t *Tracker) BindOrders(groupID, entryID, stopID, takeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok {
		return
	}
	now := time.Now()
	g.Entry.ID, g.Entry.Role, g.Entry.Status, g.Entry.UpdatedAt = entryID, domain.RoleEntry, domain.OrderStatusWorking, now
	g.Stop.ID, g.Stop.Role, g.Stop.Status, g.Stop.UpdatedAt = stopID, domain.RoleStop, domain.OrderStatusSubmitted, now
	g.Take.ID, g.Take.Role, g.Take.Status, g.Take.UpdatedAt = takeID, domain.RoleTake, domain.OrderStatusSubmitted, now
	for _, id := range []string{entryID, stopID, takeID} {
		if id != "" {
			t.byOrder[id] = groupID
		}
	}
}

// Rollback undoes a TryOpen whose submission failed. Valid only while the
// group is still PENDING with the state in OPENING.
func (t *Tracker) Rollback(groupID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok || g.Status != domain.GroupPending {
		return
	}
	for _, id := range g.OrderIDs() {
		delete(t.byOrder, id)
	}
	delete(t.groups, groupID)
	if t.cur == groupID {
		t.setStateLocked(StateFlat, "")
	}
}

// Adopt registers a group synthesized from venue state as the ACTIVE group
// and moves the position straight to OPEN. Used when reconciliation finds a
// position the engine did not know about.
func (t *Tracker) Adopt(g *domain.OrderGroup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateFlat {
		return &AlreadyOpenError{State: t.state, GroupID: t.cur}
	}
	g.Adopted = true
	g.Status = domain.GroupActive
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	t.groups[g.ID] = g
	for _, id := range g.OrderIDs() {
		t.byOrder[id] = g.ID
	}
	t.setStateLocked(StateOpen, g.ID)
	return nil
}

// ---------------------------------------------------------------------------
// Dispatcher transitions
// ---------------------------------------------------------------------------

// MarkEntryFilled activates a PENDING group. Returns false if the group is
// unknown or already past PENDING.
func (t *Tracker) MarkEntryFilled(groupID string, qty int, price float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok || g.Status != domain.GroupPending {
		return false
	}
	now := time.Now()
	g.Entry.Status = domain.OrderStatusFilled
	g.Entry.FilledQty = qty
	g.Entry.AvgPrice = price
	g.Entry.UpdatedAt = now
	g.Stop.Status = domain.OrderStatusWorking
	g.Stop.UpdatedAt = now
	g.Take.Status = domain.OrderStatusWorking
	g.Take.UpdatedAt = now
	g.Status = domain.GroupActive
	t.setStateLocked(StateOpen, groupID)
	return true
}

// MarkPartialFill records progress on a partially filled order. The order
// stays live and no group or position transition happens; the full fill
// arrives as its own event.
func (t *Tracker) MarkPartialFill(groupID string, role domain.OrderRole, qty int, price float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok {
		return false
	}
	o := g.OrderByRole(role)
	if o == nil || o.Status.Terminal() {
		return false
	}
	o.Status = domain.OrderStatusPartiallyFilled
	o.FilledQty = qty
	o.AvgPrice = price
	o.UpdatedAt = time.Now()
	return true
}

// MarkEntryFailed closes a PENDING group whose entry was cancelled or
// rejected before filling. The position returns to FLAT.
func (t *Tracker) MarkEntryFailed(groupID string, status domain.OrderStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok || g.Status != domain.GroupPending {
		return false
	}
	now := time.Now()
	g.Entry.Status = status
	g.Entry.UpdatedAt = now
	g.Status = domain.GroupClosed
	g.Reason = domain.CloseEntryRejected
	g.ClosedAt = now
	if t.cur == groupID {
		t.setStateLocked(StateFlat, "")
	}
	return true
}

// MarkLegFilled records a protective-leg fill on the ACTIVE group, closes
// the group, and moves the position to CLOSING. It returns the sibling
// order id that still needs a venue cancel; empty if the sibling is
// already terminal. Idempotent: a second call for the same leg returns
// changed=false and no sibling.
func (t *Tracker) MarkLegFilled(groupID string, role domain.OrderRole, qty int, price float64) (siblingID string, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok || g.Status != domain.GroupActive {
		return "", false
	}
	leg := g.OrderByRole(role)
	if leg == nil || leg.Status.Terminal() {
		return "", false
	}
	now := time.Now()
	leg.Status = domain.OrderStatusFilled
	leg.FilledQty = qty
	leg.AvgPrice = price
	leg.UpdatedAt = now

	g.Status = domain.GroupClosed
	g.ClosedAt = now
	if role == domain.RoleStop {
		g.Reason = domain.CloseStopHit
	} else {
		g.Reason = domain.CloseTakeHit
	}
	t.setStateLocked(StateClosing, groupID)

	sib := g.OrderByRole(role.Sibling())
	if sib != nil && sib.ID != "" && !sib.Status.Terminal() {
		return sib.ID, true
	}
	return "", true
}

// MarkClosed closes the group with the given reason without a leg fill
// (manual close, reconciliation, shutdown). The position moves to CLOSING
// until the legs are confirmed terminal, or straight to FLAT if they
// already are.
func (t *Tracker) MarkClosed(groupID string, reason domain.CloseReason) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	g, ok := t.groups[groupID]
	if !ok || g.Status == domain.GroupClosed {
		return false
	}
	g.Status = domain.GroupClosed
	g.Reason = reason
	g.ClosedAt = time.Now()
	if t.cur == groupID {
		if allTerminal(g) {
			t.setStateLocked(StateFlat, "")
		} else {
			t.setStateLocked(StateClosing, groupID)
		}
	}
	return true
}

// ConfirmCancelled marks an order CANCELLED. When that leaves the current
// group fully terminal the position returns to FLAT; flat reports whether
// that happened on this call.
func (t *Tracker) ConfirmCancelled(orderID string) (groupID string, flat bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gid, ok := t.byOrder[orderID]
	if !ok {
		return "", false
	}
	g := t.groups[gid]
	for _, role := range []domain.OrderRole{domain.RoleEntry, domain.RoleStop, domain.RoleTake} {
		o := g.OrderByRole(role)
		if o.ID != orderID {
			continue
		}
		if o.Status.Terminal() {
			return gid, false
		}
		o.Status = domain.OrderStatusCancelled
		o.UpdatedAt = time.Now()
	}
	if t.cur == gid && g.Status == domain.GroupClosed && allTerminal(g) {
		t.setStateLocked(StateFlat, "")
		return gid, true
	}
	return gid, false
}

// ForceFlat closes the current group (if any) with the given reason and
// drops the state to FLAT unconditionally. Reconciliation uses it after
// the grace period expires, cleanup after a stale CLOSING wait.
func (t *Tracker) ForceFlat(reason domain.CloseReason) (groupID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gid := t.cur
	if gid != "" {
		g := t.groups[gid]
		if g.Status != domain.GroupClosed {
			g.Status = domain.GroupClosed
			g.Reason = reason
			g.ClosedAt = time.Now()
		}
	}
	t.setStateLocked(StateFlat, "")
	return gid
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// IsOpen reports whether the position is anywhere in its lifecycle. A
// CLOSING position still blocks new trades.
func (t *Tracker) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != StateFlat
}

// State returns the current position state and when it was entered.
func (t *Tracker) State() (PositionState, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.stateSince
}

// ActiveGroup returns a view of the group owning the current non-FLAT
// state.
func (t *Tracker) ActiveGroup() (domain.OrderGroupView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur == "" {
		return domain.OrderGroupView{}, false
	}
	return t.groups[t.cur].View(), true
}

// FindByOrderID resolves an order id to its owning group and the order's
// role within it.
func (t *Tracker) FindByOrderID(orderID string) (view domain.OrderGroupView, role domain.OrderRole, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gid, found := t.byOrder[orderID]
	if !found {
		return domain.OrderGroupView{}, "", false
	}
	g := t.groups[gid]
	for _, r := range []domain.OrderRole{domain.RoleEntry, domain.RoleStop, domain.RoleTake} {
		if g.OrderByRole(r).ID == orderID {
			return g.View(), r, true
		}
	}
	return domain.OrderGroupView{}, "", false
}

// TrackedOrderIDs returns every order id the registry knows, mapped to its
// owning group id.
func (t *Tracker) TrackedOrderIDs() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]string, len(t.byOrder))
	for id, gid := range t.byOrder {
		out[id] = gid
	}
	return out
}

// OrphanCandidates lists orders belonging to CLOSED groups that are not
// yet terminal. The cleanup loop cancels these at the venue.
func (t *Tracker) OrphanCandidates() []orphanRef {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []orphanRef
	for gid, g := range t.groups {
		if g.Status != domain.GroupClosed {
			continue
		}
		for _, role := range []domain.OrderRole{domain.RoleEntry, domain.RoleStop, domain.RoleTake} {
			o := g.OrderByRole(role)
			if o.ID != "" && !o.Status.Terminal() {
				out = append(out, orphanRef{OrderID: o.ID, GroupID: gid, Role: role})
			}
		}
	}
	return out
}

// Untrack removes an order from the registry index after cleanup gave up
// on it, and marks it CANCELLED locally so the group can be reaped.
func (t *Tracker) Untrack(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	gid, ok := t.byOrder[orderID]
	delete(t.byOrder, orderID)
	if !ok {
		return
	}
	g := t.groups[gid]
	for _, role := range []domain.OrderRole{domain.RoleEntry, domain.RoleStop, domain.RoleTake} {
		o := g.OrderByRole(role)
		if o.ID == orderID && !o.Status.Terminal() {
			o.Status = domain.OrderStatusCancelled
			o.UpdatedAt = time.Now()
		}
	}
	if t.cur == gid && g.Status == domain.GroupClosed && allTerminal(g) {
		t.setStateLocked(StateFlat, "")
	}
}

// ReapClosed removes CLOSED groups whose children are all terminal and
// returns them for archiving. The group owning a non-FLAT state is never
// reaped.
func (t *Tracker) ReapClosed() []*domain.OrderGroup {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []*domain.OrderGroup
	for gid, g := range t.groups {
		if gid == t.cur && t.state != StateFlat {
			continue
		}
		if g.Status != domain.GroupClosed || !allTerminal(g) {
			continue
		}
		for _, id := range g.OrderIDs() {
			delete(t.byOrder, id)
		}
		delete(t.groups, gid)
		out = append(out, g)
	}
	return out
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (t *Tracker) setStateLocked(s PositionState, groupID string) {
	t.state = s
	t.stateSince = time.Now()
	t.cur = groupID
}

func allTerminal(g *domain.OrderGroup) bool {
	for _, o := range []domain.Order{g.Entry, g.Stop, g.Take} {
		if o.ID != "" && !o.Status.Terminal() {
			return false
		}
	}
	return true
}
