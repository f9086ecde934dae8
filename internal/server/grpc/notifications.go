package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/loopin/internal/proto"
)

func (s *GRPCServer) ListNotifications(ctx context.Context, req *pb.ListNotificationsRequest) (*pb.ListNotificationsResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	items, unread, err := s.notifications.List(ctx, userID, int(req.Limit))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListNotificationsResponse{Notifications: mapSlice(items, toPBNotification), Unread: unread}, nil
}

func (s *GRPCServer) MarkNotificationRead(ctx context.Context, req *pb.MarkNotificationReadRequest) (*pb.MarkNotificationReadResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkRead(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.MarkNotificationReadResponse{}, nil
}
