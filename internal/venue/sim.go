package venue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quantra/internal/domain"
)

// Compile-time interface check.
var _ Gateway = (*SimGateway)(nil)

// SimGateway implements the Gateway interface in memory. It is used for
// paper runs without venue credentials and throughout the engine tests,
// which drive fills and cancellations by hand.
type SimGateway struct {
	mu          sync.Mutex
	nextOrderID int
	nextSeq     int
	orders      map[string]*simOrder
	events      chan OrderEvent

	position    *domain.PositionSnapshot
	posOverride bool // position set explicitly, not derived from fills

	// AutoFillEntry makes SubmitBracket fill the entry immediately at the
	// midpoint of stop and take. Used for offline demo runs.
	AutoFillEntry bool

	// Injectable failures and call counters for tests.
	submitErr   error
	cancelErr   map[string]error
	cancelCalls map[string]int
	closeCalls  int
}

type simOrder struct {
	OpenOrder
	role    domain.OrderRole
	entryID string // id of the owning bracket's entry order
}

// NewSimGateway creates an empty simulated venue.
func NewSimGateway() *SimGateway {
	return &SimGateway{
		orders:      make(map[string]*simOrder),
		events:      make(chan OrderEvent, 256),
		cancelErr:   make(map[string]error),
		cancelCalls: make(map[string]int),
	}
}

// Name returns "sim".
func (g *SimGateway) Name() string { return "sim" }

// SubmitBracket records the three legs and emits a "new" event for the
// entry. Legs start SUBMITTED, mirroring held bracket children at a real
// venue.
func (g *SimGateway) SubmitBracket(_ context.Context, spec BracketSpec) (BracketIDs, error) {
	g.mu.Lock()
	if g.submitErr != nil {
		err := g.submitErr
		g.mu.Unlock()
		return BracketIDs{}, err
	}

	now := time.Now()
	entry := g.newOrderLocked(spec.Symbol, spec.Side, spec.Qty, 0, 0, domain.RoleEntry, now)
	entry.Status = domain.OrderStatusWorking
	stop := g.newOrderLocked(spec.Symbol, spec.Side.Invert(), spec.Qty, 0, spec.StopPrice, domain.RoleStop, now)
	take := g.newOrderLocked(spec.Symbol, spec.Side.Invert(), spec.Qty, spec.TakePrice, 0, domain.RoleTake, now)
	stop.entryID = entry.ID
	take.entryID = entry.ID
	entry.entryID = entry.ID

	ev := g.eventLocked(EventNew, entry.ID, 0, 0)
	autoFill := g.AutoFillEntry
	ids := BracketIDs{EntryID: entry.ID, StopID: stop.ID, TakeID: take.ID}
	g.mu.Unlock()

	g.events <- ev
	if autoFill {
		mid := (spec.StopPrice + spec.TakePrice) / 2
		g.FillOrder(entry.ID, mid)
	}
	return ids, nil
}

// CancelOrder marks the order cancelled and emits a "canceled" event.
func (g *SimGateway) CancelOrder(_ context.Context, orderID string) error {
	g.mu.Lock()
	g.cancelCalls[orderID]++
	if err := g.cancelErr[orderID]; err != nil {
		g.mu.Unlock()
		return err
	}
	o, ok := g.orders[orderID]
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("sim: unknown order %s", orderID)
	}
	if o.Status.Terminal() {
		g.mu.Unlock()
		return nil // cancel of a terminal order is a no-op
	}
	o.Status = domain.OrderStatusCancelled
	ev := g.eventLocked(EventCancelled, orderID, 0, 0)
	g.mu.Unlock()

	g.events <- ev
	return nil
}

// GetOrderStatus returns the simulated order's status.
func (g *SimGateway) GetOrderStatus(_ context.Context, orderID string) (domain.OrderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[orderID]
	if !ok {
		return "", fmt.Errorf("sim: unknown order %s", orderID)
	}
	return o.Status, nil
}

// GetOpenOrders returns all non-terminal orders for the symbol.
func (g *SimGateway) GetOpenOrders(_ context.Context, symbol string) ([]OpenOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var open []OpenOrder
	for _, o := range g.orders {
		if o.Symbol == symbol && (o.Status == domain.OrderStatusWorking || o.Status == domain.OrderStatusPartiallyFilled) {
			open = append(open, o.OpenOrder)
		}
	}
	return open, nil
}

// GetPosition returns the simulated position, or (nil, nil) when flat.
func (g *SimGateway) GetPosition(_ context.Context, symbol string) (*domain.PositionSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.position == nil || g.position.Symbol != symbol {
		return nil, nil
	}
	p := *g.position
	return &p, nil
}

// ClosePosition flattens the simulated position.
func (g *SimGateway) ClosePosition(_ context.Context, symbol string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closeCalls++
	if g.position != nil && g.position.Symbol == symbol {
		g.position = nil
	}
	return nil
}

// StreamOrderEvents copies simulated events into out until ctx is cancelled.
func (g *SimGateway) StreamOrderEvents(ctx context.Context, out chan<- OrderEvent) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-g.events:
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Test controls
// ---------------------------------------------------------------------------

// FillOrder fills the given order at price and emits the corresponding
// event. Filling an entry activates its protective legs and creates a
// position; filling a protective leg clears it. The emitted event is
// returned so tests can re-inject it to simulate duplicate delivery.
func (g *SimGateway) FillOrder(orderID string, price float64) (OrderEvent, error) {
	g.mu.Lock()
	o, ok := g.orders[orderID]
	if !ok {
		g.mu.Unlock()
		return OrderEvent{}, fmt.Errorf("sim: unknown order %s", orderID)
	}
	o.Status = domain.OrderStatusFilled

	switch o.role {
	case domain.RoleEntry:
		// Activate the protective legs.
		for _, other := range g.orders {
			if other.entryID == o.entryID && other.ID != o.ID {
				other.Status = domain.OrderStatusWorking
			}
		}
		if !g.posOverride {
			side := o.Side
			g.position = &domain.PositionSnapshot{
				Symbol: o.Symbol, Side: side, Qty: o.Qty, AvgEntryPrice: price,
			}
		}
	case domain.RoleStop, domain.RoleTake:
		if !g.posOverride {
			g.position = nil
		}
	}

	ev := g.eventLocked(EventFill, orderID, o.Qty, price)
	g.mu.Unlock()

	g.events <- ev
	return ev, nil
}

// Tick marks a trade price. Working entries fill at it, and protective
// legs fill when it reaches their trigger or limit. Paper runs call this
// per bar so brackets play out against the live tape.
func (g *SimGateway) Tick(price float64) {
	g.mu.Lock()
	var fills []string
	for _, o := range g.orders {
		if o.Status != domain.OrderStatusWorking {
			continue
		}
		switch o.role {
		case domain.RoleEntry:
			fills = append(fills, o.ID)
		case domain.RoleStop:
			if (o.Side == domain.SideShort && price <= o.StopPrice) ||
				(o.Side == domain.SideLong && price >= o.StopPrice) {
				fills = append(fills, o.ID)
			}
		case domain.RoleTake:
			if (o.Side == domain.SideShort && price >= o.LimitPrice) ||
				(o.Side == domain.SideLong && price <= o.LimitPrice) {
				fills = append(fills, o.ID)
			}
		}
	}
	g.mu.Unlock()

	for _, id := range fills {
		g.FillOrder(id, price)
	}
}

// RejectOrder rejects the given order and emits a "rejected" event.
func (g *SimGateway) RejectOrder(orderID string) (OrderEvent, error) {
	g.mu.Lock()
	o, ok := g.orders[orderID]
	if !ok {
		g.mu.Unlock()
		return OrderEvent{}, fmt.Errorf("sim: unknown order %s", orderID)
	}
	o.Status = domain.OrderStatusRejected
	ev := g.eventLocked(EventRejected, orderID, 0, 0)
	g.mu.Unlock()

	g.events <- ev
	return ev, nil
}

// Inject pushes an event into the stream verbatim. Used to simulate
// duplicate or out-of-order delivery.
func (g *SimGateway) Inject(ev OrderEvent) {
	g.events <- ev
}

// PlaceStrayOrder records a working order unknown to any bracket, as left
// behind by a crashed session. Returns its id.
func (g *SimGateway) PlaceStrayOrder(symbol string, side domain.Side, qty int, limitPrice float64, age time.Duration) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	o := g.newOrderLocked(symbol, side, qty, limitPrice, 0, domain.RoleTake, time.Now().Add(-age))
	o.Status = domain.OrderStatusWorking
	o.entryID = "" // stray: no owning bracket
	return o.ID
}

// PlaceStrayStop is PlaceStrayOrder for a stop-triggered order.
func (g *SimGateway) PlaceStrayStop(symbol string, side domain.Side, qty int, stopPrice float64, age time.Duration) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	o := g.newOrderLocked(symbol, side, qty, 0, stopPrice, domain.RoleStop, time.Now().Add(-age))
	o.Status = domain.OrderStatusWorking
	o.entryID = ""
	return o.ID
}

// SetPosition overrides the venue-reported position (nil forces flat).
// Once set, fills no longer update the reported position.
func (g *SimGateway) SetPosition(p *domain.PositionSnapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
	g.posOverride = true
}

// FailSubmit makes subsequent SubmitBracket calls return err (nil clears).
func (g *SimGateway) FailSubmit(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitErr = err
}

// FailCancel makes cancels of the given order return err (nil clears).
func (g *SimGateway) FailCancel(orderID string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.cancelErr, orderID)
		return
	}
	g.cancelErr[orderID] = err
}

// CancelCalls reports how many times CancelOrder was invoked for the order.
func (g *SimGateway) CancelCalls(orderID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancelCalls[orderID]
}

// CloseCalls reports how many times ClosePosition was invoked.
func (g *SimGateway) CloseCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closeCalls
}

func (g *SimGateway) newOrderLocked(symbol string, side domain.Side, qty int, limitPrice, stopPrice float64, role domain.OrderRole, createdAt time.Time) *simOrder {
	g.nextOrderID++
	o := &simOrder{
		OpenOrder: OpenOrder{
			ID:         fmt.Sprintf("sim-%d", g.nextOrderID),
			Symbol:     symbol,
			Side:       side,
			Qty:        qty,
			LimitPrice: limitPrice,
			StopPrice:  stopPrice,
			Status:     domain.OrderStatusSubmitted,
			CreatedAt:  createdAt,
		},
		role: role,
	}
	g.orders[o.ID] = o
	return o
}

func (g *SimGateway) eventLocked(typ EventType, orderID string, qty int, price float64) OrderEvent {
	g.nextSeq++
	return OrderEvent{
		Type:      typ,
		OrderID:   orderID,
		Seq:       fmt.Sprintf("seq-%d", g.nextSeq),
		FilledQty: qty,
		Price:     price,
		At:        time.Now(),
	}
}
