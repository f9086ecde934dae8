package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/loopin/internal/client/models"
	"github.com/dmitrijs2005/loopin/internal/common"
	pb "github.com/dmitrijs2005/loopin/internal/proto"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.LoopinClient

	mu              sync.RWMutex
	session         *models.Session
	onSessionChange func(*models.Session)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	err := invoker(withAccessToken(ctx, s.accessToken()), method, req, reply, cc, opts...)
	if err == nil || method == pb.Loopin_RefreshToken_FullMethodName || !isTokenExpired(err) {
		return err
	}

	if rerr := s.refresh(ctx); rerr != nil {
		return rerr
	}
	return invoker(withAccessToken(ctx, s.accessToken()), method, req, reply, cc, opts...)
}

func (s *GRPCClient) streamInterceptor(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return streamer(withAccessToken(ctx, s.accessToken()), desc, cc, method, opts...)
}

// refresh rotates the token pair. It is the only place besides Login and
// Resume where the session changes.
func (s *GRPCClient) refresh(ctx context.Context) error {
	s.mu.RLock()
	current := s.session
	s.mu.RUnlock()
	if current == nil || current.RefreshToken == "" {
		return ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return s.mapError(err)
	}

	s.setSession(current.WithTokens(resp.AccessToken, resp.RefreshToken))
	return nil
}

func (s *GRPCClient) setSession(next *models.Session) {
	s.mu.Lock()
	s.session = next
	cb := s.onSessionChange
	s.mu.Unlock()

	if cb != nil {
		cb(next)
	}
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithStreamInterceptor(c.streamInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewLoopinClient(conn)
	return c, nil
}

// OnSessionChange registers fn to be called with every new session,
// including nil on logout.
func (s *GRPCClient) OnSessionChange(fn func(*models.Session)) {
	s.mu.Lock()
	s.onSessionChange = fn
	s.mu.Unlock()
}

// Session returns the current session or nil.
func (s *GRPCClient) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password, username string) (string, error) {
	resp, err := s.client.Register(ctx, &pb.RegisterRequest{Email: email, Password: password, Username: username})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Username, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	next := &models.Session{
		UserID:       resp.UserID,
		Email:        resp.Email,
		Username:     resp.Username,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	s.setSession(next)
	return next, nil
}

// Resume turns a stored session (refresh token only) into a live one.
func (s *GRPCClient) Resume(ctx context.Context, stored *models.Session) (*models.Session, error) {
	s.mu.Lock()
	s.session = stored
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		s.mu.Lock()
		s.session = nil
		s.mu.Unlock()
		return nil, err
	}
	return s.Session(), nil
}

func (s *GRPCClient) Logout() {
	s.setSession(nil)
}

func (s *GRPCClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	resp, err := s.client.CheckUsername(ctx, &pb.CheckUsernameRequest{Username: username})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Found, nil
}

func (s *GRPCClient) Me(ctx context.Context) (*models.Author, error) {
	resp, err := s.client.Me(ctx, &pb.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Author{UserID: resp.UserID, Username: resp.Username, Email: resp.Email}, nil
}

func (s *GRPCClient) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	resp, err := s.client.ListPosts(ctx, &pb.ListPostsRequest{Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return mapSlice(resp.Posts, fromPBPost), nil
}

func (s *GRPCClient) GetPost(ctx context.Context, id string) (*models.PostDetails, error) {
	resp, err := s.client.GetPost(ctx, &pb.GetPostRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.PostDetails{
		Post:        fromPBPost(resp.Post),
		Comments:    mapSlice(resp.Comments, fromPBComment),
		Attachments: mapSlice(resp.Attachments, fromPBAttachment),
	}, nil
}

func (s *GRPCClient) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	resp, err := s.client.CreatePost(ctx, &pb.CreatePostRequest{Title: title, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	p := fromPBPost(resp.Post)
	return &p, nil
}

func (s *GRPCClient) UpdatePostTitle(ctx context.Context, id, title string) (*models.Post, error) {
	resp, err := s.client.UpdatePostTitle(ctx, &pb.UpdatePostTitleRequest{ID: id, Title: title})
	if err != nil {
		return nil, s.mapError(err)
	}
	p := fromPBPost(resp.Post)
	return &p, nil
}

func (s *GRPCClient) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.DeletePost(ctx, &pb.DeletePostRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	resp, err := s.client.AddComment(ctx, &pb.AddCommentRequest{PostID: postID, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	c := fromPBComment(resp.Comment)
	return &c, nil
}

func (s *GRPCClient) ToggleLike(ctx context.Context, postID string) (*models.LikeStatus, error) {
	resp, err := s.client.ToggleLike(ctx, &pb.ToggleLikeRequest{PostID: postID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.LikeStatus{PostID: resp.PostID, Liked: resp.Liked, Count: resp.Count}, nil
}

func (s *GRPCClient) LikeStatus(ctx context.Context, postID string) (*models.LikeStatus, error) {
	resp, err := s.client.GetLikeStatus(ctx, &pb.GetLikeStatusRequest{PostID: postID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.LikeStatus{PostID: resp.PostID, Liked: resp.Liked, Count: resp.Count}, nil
}

func (s *GRPCClient) ListNotifications(ctx context.Context, limit int) (*models.Inbox, error) {
	resp, err := s.client.ListNotifications(ctx, &pb.ListNotificationsRequest{Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Inbox{Notifications: mapSlice(resp.Notifications, fromPBNotification), Unread: resp.Unread}, nil
}

func (s *GRPCClient) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := s.client.MarkNotificationRead(ctx, &pb.MarkNotificationReadRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) CreateUpload(ctx context.Context, postID, fileName, contentType string) (*models.Upload, error) {
	resp, err := s.client.CreateAttachmentUpload(ctx, &pb.CreateAttachmentUploadRequest{PostID: postID, FileName: fileName, ContentType: contentType})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Upload{AttachmentID: resp.AttachmentID, URL: resp.UploadURL, ExpiresAt: resp.ExpiresAt}, nil
}

func (s *GRPCClient) MarkUploaded(ctx context.Context, attachmentID string) error {
	_, err := s.client.MarkAttachmentUploaded(ctx, &pb.MarkAttachmentUploadedRequest{ID: attachmentID})
	return s.mapError(err)
}

func (s *GRPCClient) AttachmentURL(ctx context.Context, attachmentID string) (string, error) {
	resp, err := s.client.GetAttachmentURL(ctx, &pb.GetAttachmentURLRequest{ID: attachmentID})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

// Watch streams changes of one collection key to fn until ctx is done. An
// expired access token is refreshed once and the stream reopened.
func (s *GRPCClient) Watch(ctx context.Context, collection, key string, fn func(models.Change)) error {
	refreshed := false
	for {
		err := s.watchOnce(ctx, collection, key, fn)
		switch {
		case ctx.Err() != nil:
			return nil
		case err == nil:
			return nil
		case isTokenExpired(err) && !refreshed:
			refreshed = true
			if rerr := s.refresh(ctx); rerr != nil {
				return rerr
			}
		default:
			return s.mapError(err)
		}
	}
}

func (s *GRPCClient) watchOnce(ctx context.Context, collection, key string, fn func(models.Change)) error {
	stream, err := s.client.Subscribe(ctx, &pb.SubscribeRequest{Collection: collection, Key: key})
	if err != nil {
		return err
	}
	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fn(models.Change{Collection: ev.Collection, Key: ev.Key, RowID: ev.RowID, At: ev.At})
	}
}
