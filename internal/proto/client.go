package proto

import (
	"context"

	"google.golang.org/grpc"
)

// LoopinClient is the client API for the loopin.v1.Loopin service.
type LoopinClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	CheckUsername(ctx context.Context, in *CheckUsernameRequest, opts ...grpc.CallOption) (*CheckUsernameResponse, error)
	ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error)
	CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*CreatePostResponse, error)
	UpdatePostTitle(ctx context.Context, in *UpdatePostTitleRequest, opts ...grpc.CallOption) (*UpdatePostTitleResponse, error)
	DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error)
	AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*AddCommentResponse, error)
	ToggleLike(ctx context.Context, in *ToggleLikeRequest, opts ...grpc.CallOption) (*LikeStatusResponse, error)
	GetLikeStatus(ctx context.Context, in *GetLikeStatusRequest, opts ...grpc.CallOption) (*LikeStatusResponse, error)
	ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error)
	MarkNotificationRead(ctx context.Context, in *MarkNotificationReadRequest, opts ...grpc.CallOption) (*MarkNotificationReadResponse, error)
	CreateAttachmentUpload(ctx context.Context, in *CreateAttachmentUploadRequest, opts ...grpc.CallOption) (*CreateAttachmentUploadResponse, error)
	MarkAttachmentUploaded(ctx context.Context, in *MarkAttachmentUploadedRequest, opts ...grpc.CallOption) (*MarkAttachmentUploadedResponse, error)
	GetAttachmentURL(ctx context.Context, in *GetAttachmentURLRequest, opts ...grpc.CallOption) (*GetAttachmentURLResponse, error)
	Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error)
}

type loopinClient struct {
	cc grpc.ClientConnInterface
}

func NewLoopinClient(cc grpc.ClientConnInterface) LoopinClient {
	return &loopinClient{cc}
}

// invoke performs a unary call with the JSON codec selected.
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(CodecName)}, opts...)
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, cOpts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *loopinClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, Loopin_Ping_FullMethodName, in, opts)
}

func (c *loopinClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Loopin_Register_FullMethodName, in, opts)
}

func (c *loopinClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Loopin_Login_FullMethodName, in, opts)
}

func (c *loopinClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, Loopin_RefreshToken_FullMethodName, in, opts)
}

func (c *loopinClient) CheckUsername(ctx context.Context, in *CheckUsernameRequest, opts ...grpc.CallOption) (*CheckUsernameResponse, error) {
	return invoke[CheckUsernameResponse](ctx, c.cc, Loopin_CheckUsername_FullMethodName, in, opts)
}

func (c *loopinClient) ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[ListPostsResponse](ctx, c.cc, Loopin_ListPosts_FullMethodName, in, opts)
}

func (c *loopinClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error) {
	return invoke[GetPostResponse](ctx, c.cc, Loopin_GetPost_FullMethodName, in, opts)
}

func (c *loopinClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeResponse](ctx, c.cc, Loopin_Me_FullMethodName, in, opts)
}

func (c *loopinClient) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*CreatePostResponse, error) {
	return invoke[CreatePostResponse](ctx, c.cc, Loopin_CreatePost_FullMethodName, in, opts)
}

func (c *loopinClient) UpdatePostTitle(ctx context.Context, in *UpdatePostTitleRequest, opts ...grpc.CallOption) (*UpdatePostTitleResponse, error) {
	return invoke[UpdatePostTitleResponse](ctx, c.cc, Loopin_UpdatePostTitle_FullMethodName, in, opts)
}

func (c *loopinClient) DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error) {
	return invoke[DeletePostResponse](ctx, c.cc, Loopin_DeletePost_FullMethodName, in, opts)
}

func (c *loopinClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*AddCommentResponse, error) {
	return invoke[AddCommentResponse](ctx, c.cc, Loopin_AddComment_FullMethodName, in, opts)
}

func (c *loopinClient) ToggleLike(ctx context.Context, in *ToggleLikeRequest, opts ...grpc.CallOption) (*LikeStatusResponse, error) {
	return invoke[LikeStatusResponse](ctx, c.cc, Loopin_ToggleLike_FullMethodName, in, opts)
}

func (c *loopinClient) GetLikeStatus(ctx context.Context, in *GetLikeStatusRequest, opts ...grpc.CallOption) (*LikeStatusResponse, error) {
	return invoke[LikeStatusResponse](ctx, c.cc, Loopin_GetLikeStatus_FullMethodName, in, opts)
}

func (c *loopinClient) ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c.cc, Loopin_ListNotifications_FullMethodName, in, opts)
}

func (c *loopinClient) MarkNotificationRead(ctx context.Context, in *MarkNotificationReadRequest, opts ...grpc.CallOption) (*MarkNotificationReadResponse, error) {
	return invoke[MarkNotificationReadResponse](ctx, c.cc, Loopin_MarkNotificationRead_FullMethodName, in, opts)
}

func (c *loopinClient) CreateAttachmentUpload(ctx context.Context, in *CreateAttachmentUploadRequest, opts ...grpc.CallOption) (*CreateAttachmentUploadResponse, error) {
	return invoke[CreateAttachmentUploadResponse](ctx, c.cc, Loopin_CreateAttachmentUpload_FullMethodName, in, opts)
}

func (c *loopinClient) MarkAttachmentUploaded(ctx context.Context, in *MarkAttachmentUploadedRequest, opts ...grpc.CallOption) (*MarkAttachmentUploadedResponse, error) {
	return invoke[MarkAttachmentUploadedResponse](ctx, c.cc, Loopin_MarkAttachmentUploaded_FullMethodName, in, opts)
}

func (c *loopinClient) GetAttachmentURL(ctx context.Context, in *GetAttachmentURLRequest, opts ...grpc.CallOption) (*GetAttachmentURLResponse, error) {
	return invoke[GetAttachmentURLResponse](ctx, c.cc, Loopin_GetAttachmentURL_FullMethodName, in, opts)
}

func (c *loopinClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ChangeEvent], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod(), grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &Loopin_ServiceDesc.Streams[0], Loopin_Subscribe_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[SubscribeRequest, ChangeEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
