package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/loopin/internal/proto"
)

func (s *GRPCServer) CreateAttachmentUpload(ctx context.Context, req *pb.CreateAttachmentUploadRequest) (*pb.CreateAttachmentUploadResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	att, url, err := s.attachments.CreateUpload(ctx, userID, req.PostID, req.FileName, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CreateAttachmentUploadResponse{AttachmentID: att.ID, UploadURL: url.URL, ExpiresAt: url.ExpiresAt}, nil
}

func (s *GRPCServer) MarkAttachmentUploaded(ctx context.Context, req *pb.MarkAttachmentUploadedRequest) (*pb.MarkAttachmentUploadedResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachments.MarkUploaded(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.MarkAttachmentUploadedResponse{}, nil
}

func (s *GRPCServer) GetAttachmentURL(ctx context.Context, req *pb.GetAttachmentURLRequest) (*pb.GetAttachmentURLResponse, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	att, url, err := s.attachments.GetURL(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetAttachmentURLResponse{
		URL:         url.URL,
		FileName:    att.FileName,
		ContentType: att.ContentType,
		ExpiresAt:   url.ExpiresAt,
	}, nil
}
