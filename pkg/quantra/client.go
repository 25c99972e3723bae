// Package quantra provides a Go SDK for the quantra-trader gRPC API.
package quantra

import (
	"context"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "quantra/internal/api/pb"
)

// Event is a position lifecycle event received from the trader.
type Event struct {
	Type    string
	At      time.Time
	GroupID string
	OrderID string
	Role    string
	Symbol  string
	Side    string
	Qty     int
	Price   float64
	Reason  string
	Outcome string
	Detail  string
}

// Status is a point-in-time snapshot of the trader's state.
type Status struct {
	State           string
	IsOpen          bool
	Active          *GroupView
	TradesToday     int
	Degraded        bool
	EventsPublished uint64
	EventsDropped   uint64
	Venue           string
}

// GroupView describes a bracket order group.
type GroupView struct {
	ID         string
	Symbol     string
	Side       string
	Qty        int
	EntryID    string
	StopID     string
	TakeID     string
	EntryPrice float64
	StopPrice  float64
	TakePrice  float64
	Status     string
	Reason     string
	CreatedAt  time.Time
	ClosedAt   time.Time
}

// Client connects to a quantra-trader gRPC server.
type Client struct {
	addr string
	conn *grpc.ClientConn
	api  pb.QuantraClient
}

// NewClient creates a client targeting the given gRPC address.
// Call Close when done.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return &Client{addr: addr, conn: conn, api: pb.NewQuantraClient(conn)}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetStatus retrieves the trader's current position state.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	reply, err := c.api.GetStatus(ctx, &pb.GetStatusRequest{})
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	st := &Status{
		State:           reply.GetState(),
		IsOpen:          reply.GetIsOpen(),
		TradesToday:     int(reply.GetTradesToday()),
		Degraded:        reply.GetDegraded(),
		EventsPublished: reply.GetEventsPublished(),
		EventsDropped:   reply.GetEventsDropped(),
		Venue:           reply.GetVenue(),
	}
	if g := reply.GetActive(); g != nil {
		st.Active = groupFromProto(g)
	}
	return st, nil
}

// StreamEvents streams lifecycle events into the given handler. When replay
// is true the server first resends its retained history. Blocks until ctx is
// cancelled or the stream ends.
func (c *Client) StreamEvents(ctx context.Context, replay bool, handle func(Event)) error {
	stream, err := c.api.StreamEvents(ctx, &pb.StreamEventsRequest{Replay: replay})
	if err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receiving event: %w", err)
		}
		handle(eventFromProto(ev))
	}
}

func eventFromProto(ev *pb.Event) Event {
	return Event{
		Type:    ev.GetType(),
		At:      time.UnixMilli(ev.GetAtMs()),
		GroupID: ev.GetGroupId(),
		OrderID: ev.GetOrderId(),
		Role:    ev.GetRole(),
		Symbol:  ev.GetSymbol(),
		Side:    ev.GetSide(),
		Qty:     int(ev.GetQty()),
		Price:   ev.GetPrice(),
		Reason:  ev.GetReason(),
		Outcome: ev.GetOutcome(),
		Detail:  ev.GetDetail(),
	}
}

func groupFromProto(g *pb.GroupView) *GroupView {
	view := &GroupView{
		ID:         g.GetId(),
		Symbol:     g.GetSymbol(),
		Side:       g.GetSide(),
		Qty:        int(g.GetQty()),
		EntryID:    g.GetEntryId(),
		StopID:     g.GetStopId(),
		TakeID:     g.GetTakeId(),
		EntryPrice: g.GetEntryPrice(),
		StopPrice:  g.GetStopPrice(),
		TakePrice:  g.GetTakePrice(),
		Status:     g.GetStatus(),
		Reason:     g.GetReason(),
		CreatedAt:  time.UnixMilli(g.GetCreatedAtMs()),
	}
	if g.GetClosedAtMs() != 0 {
		view.ClosedAt = time.UnixMilli(g.GetClosedAtMs())
	}
	return view
}
