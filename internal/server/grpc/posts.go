package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/loopin/internal/proto"
)

func (s *GRPCServer) ListPosts(ctx context.Context, req *pb.ListPostsRequest) (*pb.ListPostsResponse, error) {
	list, err := s.posts.List(ctx, int(req.Limit))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListPostsResponse{Posts: mapSlice(list, toPBPost)}, nil
}

func (s *GRPCServer) GetPost(ctx context.Context, req *pb.GetPostRequest) (*pb.GetPostResponse, error) {
	d, err := s.posts.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.GetPostResponse{
		Post:        toPBPost(d.Post),
		Comments:    mapSlice(d.Comments, toPBComment),
		Attachments: mapSlice(d.Attachments, toPBAttachment),
	}, nil
}

func (s *GRPCServer) CreatePost(ctx context.Context, req *pb.CreatePostRequest) (*pb.CreatePostResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.Create(ctx, userID, req.Title, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CreatePostResponse{Post: toPBPost(p)}, nil
}

func (s *GRPCServer) UpdatePostTitle(ctx context.Context, req *pb.UpdatePostTitleRequest) (*pb.UpdatePostTitleResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.posts.UpdateTitle(ctx, userID, req.ID, req.Title)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UpdatePostTitleResponse{Post: toPBPost(p)}, nil
}

func (s *GRPCServer) DeletePost(ctx context.Context, req *pb.DeletePostRequest) (*pb.DeletePostResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.posts.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.DeletePostResponse{}, nil
}

func (s *GRPCServer) AddComment(ctx context.Context, req *pb.AddCommentRequest) (*pb.AddCommentResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.posts.AddComment(ctx, userID, req.PostID, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.AddCommentResponse{Comment: toPBComment(c)}, nil
}

func (s *GRPCServer) ToggleLike(ctx context.Context, req *pb.ToggleLikeRequest) (*pb.LikeStatusResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.posts.ToggleLike(ctx, userID, req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toPBLikeStatus(st), nil
}

func (s *GRPCServer) GetLikeStatus(ctx context.Context, req *pb.GetLikeStatusRequest) (*pb.LikeStatusResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.posts.LikeStatus(ctx, userID, req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toPBLikeStatus(st), nil
}
