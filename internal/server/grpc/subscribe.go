package grpc

import (
	pb "github.com/dmitrijs2005/loopin/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Subscribe streams change events for one collection key until the client
// goes away. Notification streams are limited to the caller's own inbox.
func (s *GRPCServer) Subscribe(req *pb.SubscribeRequest, stream grpc.ServerStreamingServer[pb.ChangeEvent]) error {
	ctx := stream.Context()
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	key := req.Key
	switch req.Collection {
	case pb.CollectionComments:
		if key == "" {
			return status.Error(codes.InvalidArgument, "post id is required")
		}
	case pb.CollectionNotifications:
		if key == "" {
			key = userID
		}
		if key != userID {
			return status.Error(codes.PermissionDenied, "notifications are only visible to their recipient")
		}
	default:
		return status.Errorf(codes.InvalidArgument, "unknown collection %q", req.Collection)
	}

	sub := s.feed.Subscribe(req.Collection, key)
	s.logger.Debug(ctx, "subscriber attached", "subscription", sub.ID, "collection", req.Collection, "key", key,
		"subscribers", s.feed.Subscribers(req.Collection, key))
	defer func() {
		sub.Unsubscribe()
		s.logger.Debug(ctx, "subscriber detached", "subscription", sub.ID,
			"subscribers", s.feed.Subscribers(req.Collection, key))
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-sub.C():
			if !ok {
				return status.Error(codes.Unavailable, "subscription closed")
			}
			if err := stream.Send(toPBEvent(e)); err != nil {
				return err
			}
		}
	}
}
