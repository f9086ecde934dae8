package grpc

import (
	"context"

	"github.com/dmitrijs2005/loopin/internal/common"
	pb "github.com/dmitrijs2005/loopin/internal/proto"
	"github.com/dmitrijs2005/loopin/internal/server/auth"
	"github.com/dmitrijs2005/loopin/internal/server/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	pb.Loopin_Ping_FullMethodName:          true,
	pb.Loopin_Register_FullMethodName:      true,
	pb.Loopin_Login_FullMethodName:         true,
	pb.Loopin_RefreshToken_FullMethodName:  true,
	pb.Loopin_CheckUsername_FullMethodName: true,
	pb.Loopin_ListPosts_FullMethodName:     true,
	pb.Loopin_GetPost_FullMethodName:       true,
}

// authenticate turns the access_token metadata into a session. Public
// methods still get a session when a valid token is present.
func (s *GRPCServer) authenticate(ctx context.Context, method string) (context.Context, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}

	public := publicMethods[method]
	if accessToken == "" {
		if public {
			return ctx, nil
		}
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if public {
			return ctx, nil
		}
		return nil, s.toStatus(ctx, err)
	}

	sess := session.Session{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return session.WithSession(ctx, sess), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx, err := s.authenticate(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

type sessionStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *sessionStream) Context() context.Context { return w.ctx }

func (s *GRPCServer) streamAccessTokenInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authenticate(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &sessionStream{ServerStream: ss, ctx: ctx})
}
