package api

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"

	pb "quantra/internal/api/pb"
	"quantra/internal/domain"
	"quantra/internal/engine"
	"quantra/internal/events"
)

// Server exposes the trading engine over gRPC: a live event stream and
// a point-in-time status snapshot.
type Server struct {
	pb.UnimplementedQuantraServer
	eng   *engine.Engine
	bus   *events.Bus
	venue string
	log   *slog.Logger
}

// NewServer creates a gRPC server around the given engine and event bus.
// venue is the display name of the connected gateway.
func NewServer(eng *engine.Engine, bus *events.Bus, venue string, log *slog.Logger) *Server {
	return &Server{eng: eng, bus: bus, venue: venue, log: log}
}

// RegisterGRPC registers the server on the given gRPC server instance.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	pb.RegisterQuantraServer(gs, s)
}

// StreamEvents optionally replays the bus's retained history, then streams
// new lifecycle events as they are published. The stream ends when the
// client disconnects.
func (s *Server) StreamEvents(req *pb.StreamEventsRequest, stream grpc.ServerStreamingServer[pb.Event]) error {
	// Subscribe before replaying so no event published during the replay
	// is lost. Duplicates across the boundary are possible and the client
	// is expected to tolerate them.
	subID, ch := s.bus.Subscribe(256)
	defer s.bus.Unsubscribe(subID)

	if req.GetReplay() {
		for _, ev := range s.bus.Recent() {
			if err := stream.Send(eventToProto(ev)); err != nil {
				return err
			}
		}
	}

	s.log.Info("grpc client subscribed", "subID", subID, "replay", req.GetReplay())

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("grpc client disconnected", "subID", subID)
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(eventToProto(ev)); err != nil {
				return err
			}
		}
	}
}

// GetStatus reports the engine's current position state, the active order
// group if any, and bus counters.
func (s *Server) GetStatus(ctx context.Context, _ *pb.GetStatusRequest) (*pb.StatusReply, error) {
	state, _ := s.eng.Tracker().State()
	reply := &pb.StatusReply{
		State:           string(state),
		IsOpen:          s.eng.IsOpen(),
		TradesToday:     int32(s.eng.TradesToday()),
		Degraded:        s.eng.Degraded(),
		EventsPublished: s.bus.Published(),
		EventsDropped:   s.bus.Dropped(),
		Venue:           s.venue,
	}
	if view, ok := s.eng.Tracker().ActiveGroup(); ok {
		reply.Active = viewToProto(view)
	}
	return reply, nil
}

func eventToProto(ev domain.Event) *pb.Event {
	return &pb.Event{
		Type:    string(ev.Type),
		AtMs:    ev.At.UnixMilli(),
		GroupId: ev.GroupID,
		OrderId: ev.OrderID,
		Role:    string(ev.Role),
		Symbol:  ev.Symbol,
		Side:    string(ev.Side),
		Qty:     int32(ev.Qty),
		Price:   ev.Price,
		Reason:  string(ev.Reason),
		Outcome: ev.Outcome,
		Detail:  ev.Detail,
	}
}

func viewToProto(v domain.OrderGroupView) *pb.GroupView {
	g := &pb.GroupView{
		Id:          v.ID,
		Symbol:      v.Symbol,
		Side:        string(v.Side),
		Qty:         int32(v.Qty),
		EntryId:     v.EntryID,
		StopId:      v.StopID,
		TakeId:      v.TakeID,
		EntryPrice:  v.EntryPrice,
		StopPrice:   v.StopPrice,
		TakePrice:   v.TakePrice,
		Status:      string(v.Status),
		Reason:      string(v.Reason),
		CreatedAtMs: v.CreatedAt.UnixMilli(),
	}
	if !v.ClosedAt.IsZero() {
		g.ClosedAtMs = v.ClosedAt.UnixMilli()
	}
	return g
}
