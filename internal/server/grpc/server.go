// Package grpc exposes the Loopin services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/loopin/internal/logging"
	pb "github.com/dmitrijs2005/loopin/internal/proto"
	"github.com/dmitrijs2005/loopin/internal/server/feed"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/dmitrijs2005/loopin/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, email, password, username string) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.Profile, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	CheckUsername(ctx context.Context, name string) (string, bool, error)
	Me(ctx context.Context, userID string) (*models.Profile, error)
}

type PostService interface {
	List(ctx context.Context, limit int) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*services.PostDetails, error)
	Create(ctx context.Context, userID, title, content string) (*models.Post, error)
	UpdateTitle(ctx context.Context, userID, id, title string) (*models.Post, error)
	Delete(ctx context.Context, userID, id string) error
	AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error)
	ToggleLike(ctx context.Context, userID, postID string) (*models.LikeStatus, error)
	LikeStatus(ctx context.Context, userID, postID string) (*models.LikeStatus, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type AttachmentService interface {
	CreateUpload(ctx context.Context, userID, postID, fileName, contentType string) (*models.Attachment, *services.PresignedURL, error)
	MarkUploaded(ctx context.Context, userID, id string) error
	GetURL(ctx context.Context, id string) (*models.Attachment, *services.PresignedURL, error)
}

// Feed hands out live subscriptions; *feed.Broker implements it.
type Feed interface {
	Subscribe(collection, key string) *feed.Subscription
	Subscribers(collection, key string) int
}

type GRPCServer struct {
	pb.UnimplementedLoopinServer
	address       string
	users         UserService
	posts         PostService
	notifications NotificationService
	attachments   AttachmentService
	feed          Feed
	logger        logging.Logger
	jwtSecret     []byte
}

// Services groups the dependencies of the gRPC layer.
type Services struct {
	Users         UserService
	Posts         PostService
	Notifications NotificationService
	Attachments   AttachmentService
	Feed          Feed
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		users:         svc.Users,
		posts:         svc.Posts,
		notifications: svc.Notifications,
		attachments:   svc.Attachments,
		feed:          svc.Feed,
		jwtSecret:     []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)
	pb.RegisterLoopinServer(srv, s)
	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
