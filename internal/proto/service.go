package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "loopin.v1.Loopin"

const (
	Loopin_Ping_FullMethodName                   = "/loopin.v1.Loopin/Ping"
	Loopin_Register_FullMethodName               = "/loopin.v1.Loopin/Register"
	Loopin_Login_FullMethodName                  = "/loopin.v1.Loopin/Login"
	Loopin_RefreshToken_FullMethodName           = "/loopin.v1.Loopin/RefreshToken"
	Loopin_CheckUsername_FullMethodName          = "/loopin.v1.Loopin/CheckUsername"
	Loopin_ListPosts_FullMethodName              = "/loopin.v1.Loopin/ListPosts"
	Loopin_GetPost_FullMethodName                = "/loopin.v1.Loopin/GetPost"
	Loopin_Me_FullMethodName                     = "/loopin.v1.Loopin/Me"
	Loopin_CreatePost_FullMethodName             = "/loopin.v1.Loopin/CreatePost"
	Loopin_UpdatePostTitle_FullMethodName        = "/loopin.v1.Loopin/UpdatePostTitle"
	Loopin_DeletePost_FullMethodName             = "/loopin.v1.Loopin/DeletePost"
	Loopin_AddComment_FullMethodName             = "/loopin.v1.Loopin/AddComment"
	Loopin_ToggleLike_FullMethodName             = "/loopin.v1.Loopin/ToggleLike"
	Loopin_GetLikeStatus_FullMethodName          = "/loopin.v1.Loopin/GetLikeStatus"
	Loopin_ListNotifications_FullMethodName      = "/loopin.v1.Loopin/ListNotifications"
	Loopin_MarkNotificationRead_FullMethodName   = "/loopin.v1.Loopin/MarkNotificationRead"
	Loopin_CreateAttachmentUpload_FullMethodName = "/loopin.v1.Loopin/CreateAttachmentUpload"
	Loopin_MarkAttachmentUploaded_FullMethodName = "/loopin.v1.Loopin/MarkAttachmentUploaded"
	Loopin_GetAttachmentURL_FullMethodName       = "/loopin.v1.Loopin/GetAttachmentURL"
	Loopin_Subscribe_FullMethodName              = "/loopin.v1.Loopin/Subscribe"
)

// LoopinServer is implemented by the server's gRPC layer.
type LoopinServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	CheckUsername(context.Context, *CheckUsernameRequest) (*CheckUsernameResponse, error)
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	CreatePost(context.Context, *CreatePostRequest) (*CreatePostResponse, error)
	UpdatePostTitle(context.Context, *UpdatePostTitleRequest) (*UpdatePostTitleResponse, error)
	DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*AddCommentResponse, error)
	ToggleLike(context.Context, *ToggleLikeRequest) (*LikeStatusResponse, error)
	GetLikeStatus(context.Context, *GetLikeStatusRequest) (*LikeStatusResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*MarkNotificationReadResponse, error)
	CreateAttachmentUpload(context.Context, *CreateAttachmentUploadRequest) (*CreateAttachmentUploadResponse, error)
	MarkAttachmentUploaded(context.Context, *MarkAttachmentUploadedRequest) (*MarkAttachmentUploadedResponse, error)
	GetAttachmentURL(context.Context, *GetAttachmentURLRequest) (*GetAttachmentURLResponse, error)
	Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[ChangeEvent]) error
	mustEmbedUnimplementedLoopinServer()
}

// UnimplementedLoopinServer must be embedded by every LoopinServer.
type UnimplementedLoopinServer struct{}

func (UnimplementedLoopinServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLoopinServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedLoopinServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedLoopinServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedLoopinServer) CheckUsername(context.Context, *CheckUsernameRequest) (*CheckUsernameResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckUsername not implemented")
}
func (UnimplementedLoopinServer) ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPosts not implemented")
}
func (UnimplementedLoopinServer) GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPost not implemented")
}
func (UnimplementedLoopinServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedLoopinServer) CreatePost(context.Context, *CreatePostRequest) (*CreatePostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreatePost not implemented")
}
func (UnimplementedLoopinServer) UpdatePostTitle(context.Context, *UpdatePostTitleRequest) (*UpdatePostTitleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePostTitle not implemented")
}
func (UnimplementedLoopinServer) DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeletePost not implemented")
}
func (UnimplementedLoopinServer) AddComment(context.Context, *AddCommentRequest) (*AddCommentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddComment not implemented")
}
func (UnimplementedLoopinServer) ToggleLike(context.Context, *ToggleLikeRequest) (*LikeStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleLike not implemented")
}
func (UnimplementedLoopinServer) GetLikeStatus(context.Context, *GetLikeStatusRequest) (*LikeStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLikeStatus not implemented")
}
func (UnimplementedLoopinServer) ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotifications not implemented")
}
func (UnimplementedLoopinServer) MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*MarkNotificationReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkNotificationRead not implemented")
}
func (UnimplementedLoopinServer) CreateAttachmentUpload(context.Context, *CreateAttachmentUploadRequest) (*CreateAttachmentUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAttachmentUpload not implemented")
}
func (UnimplementedLoopinServer) MarkAttachmentUploaded(context.Context, *MarkAttachmentUploadedRequest) (*MarkAttachmentUploadedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkAttachmentUploaded not implemented")
}
func (UnimplementedLoopinServer) GetAttachmentURL(context.Context, *GetAttachmentURLRequest) (*GetAttachmentURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAttachmentURL not implemented")
}
func (UnimplementedLoopinServer) Subscribe(*SubscribeRequest, grpc.ServerStreamingServer[ChangeEvent]) error {
	return status.Error(codes.Unimplemented, "method Subscribe not implemented")
}
func (UnimplementedLoopinServer) mustEmbedUnimplementedLoopinServer() {}

func RegisterLoopinServer(s grpc.ServiceRegistrar, srv LoopinServer) {
	s.RegisterService(&Loopin_ServiceDesc, srv)
}

// unary builds the MethodHandler for one unary RPC.
func unary[Req, Resp any](fullMethod string, call func(LoopinServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LoopinServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LoopinServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _Loopin_Subscribe_Handler(srv any, stream grpc.ServerStream) error {
	m := new(SubscribeRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(LoopinServer).Subscribe(m, &grpc.GenericServerStream[SubscribeRequest, ChangeEvent]{ServerStream: stream})
}

// Loopin_ServiceDesc describes the loopin.v1.Loopin service.
var Loopin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoopinServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(Loopin_Ping_FullMethodName, LoopinServer.Ping)},
		{MethodName: "Register", Handler: unary(Loopin_Register_FullMethodName, LoopinServer.Register)},
		{MethodName: "Login", Handler: unary(Loopin_Login_FullMethodName, LoopinServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(Loopin_RefreshToken_FullMethodName, LoopinServer.RefreshToken)},
		{MethodName: "CheckUsername", Handler: unary(Loopin_CheckUsername_FullMethodName, LoopinServer.CheckUsername)},
		{MethodName: "ListPosts", Handler: unary(Loopin_ListPosts_FullMethodName, LoopinServer.ListPosts)},
		{MethodName: "GetPost", Handler: unary(Loopin_GetPost_FullMethodName, LoopinServer.GetPost)},
		{MethodName: "Me", Handler: unary(Loopin_Me_FullMethodName, LoopinServer.Me)},
		{MethodName: "CreatePost", Handler: unary(Loopin_CreatePost_FullMethodName, LoopinServer.CreatePost)},
		{MethodName: "UpdatePostTitle", Handler: unary(Loopin_UpdatePostTitle_FullMethodName, LoopinServer.UpdatePostTitle)},
		{MethodName: "DeletePost", Handler: unary(Loopin_DeletePost_FullMethodName, LoopinServer.DeletePost)},
		{MethodName: "AddComment", Handler: unary(Loopin_AddComment_FullMethodName, LoopinServer.AddComment)},
		{MethodName: "ToggleLike", Handler: unary(Loopin_ToggleLike_FullMethodName, LoopinServer.ToggleLike)},
		{MethodName: "GetLikeStatus", Handler: unary(Loopin_GetLikeStatus_FullMethodName, LoopinServer.GetLikeStatus)},
		{MethodName: "ListNotifications", Handler: unary(Loopin_ListNotifications_FullMethodName, LoopinServer.ListNotifications)},
		{MethodName: "MarkNotificationRead", Handler: unary(Loopin_MarkNotificationRead_FullMethodName, LoopinServer.MarkNotificationRead)},
		{MethodName: "CreateAttachmentUpload", Handler: unary(Loopin_CreateAttachmentUpload_FullMethodName, LoopinServer.CreateAttachmentUpload)},
		{MethodName: "MarkAttachmentUploaded", Handler: unary(Loopin_MarkAttachmentUploaded_FullMethodName, LoopinServer.MarkAttachmentUploaded)},
		{MethodName: "GetAttachmentURL", Handler: unary(Loopin_GetAttachmentURL_FullMethodName, LoopinServer.GetAttachmentURL)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Subscribe", Handler: _Loopin_Subscribe_Handler, ServerStreams: true},
	},
	Metadata: "loopin/v1/loopin.json",
}
