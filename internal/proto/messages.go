// Package proto defines the loopin.v1.Loopin gRPC service: its messages,
// service descriptor, client stub and the JSON codec they travel with.
package proto

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type CheckUsernameResponse struct {
	Username string `json:"username"`
	Found    bool   `json:"found"`
}

type MeRequest struct{}

type MeResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Author identifies who wrote a post or comment, or triggered a notification.
type Author struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ListPostsRequest struct {
	Limit int32 `json:"limit"`
}

type ListPostsResponse struct {
	Posts []*Post `json:"posts"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type Attachment struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetPostResponse struct {
	Post        *Post         `json:"post"`
	Comments    []*Comment    `json:"comments"`
	Attachments []*Attachment `json:"attachments,omitempty"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreatePostResponse struct {
	Post *Post `json:"post"`
}

type UpdatePostTitleRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type UpdatePostTitleResponse struct {
	Post *Post `json:"post"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct{}

type AddCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type AddCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ToggleLikeRequest struct {
	PostID string `json:"post_id"`
}

type GetLikeStatusRequest struct {
	PostID string `json:"post_id"`
}

type LikeStatusResponse struct {
	PostID string `json:"post_id"`
	Liked  bool   `json:"liked"`
	Count  int64  `json:"count"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     Author    `json:"actor"`
	PostID    string    `json:"post_id"`
	PostTitle string    `json:"post_title,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListNotificationsRequest struct {
	Limit int32 `json:"limit"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	Unread        int64           `json:"unread"`
}

type MarkNotificationReadRequest struct {
	ID string `json:"id"`
}

type MarkNotificationReadResponse struct{}

type CreateAttachmentUploadRequest struct {
	PostID      string `json:"post_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type CreateAttachmentUploadResponse struct {
	AttachmentID string    `json:"attachment_id"`
	UploadURL    string    `json:"upload_url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type MarkAttachmentUploadedRequest struct {
	ID string `json:"id"`
}

type MarkAttachmentUploadedResponse struct{}

type GetAttachmentURLRequest struct {
	ID string `json:"id"`
}

type GetAttachmentURLResponse struct {
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Collections a client may subscribe to.
const (
	CollectionComments      = "comments"
	CollectionNotifications = "notifications"
)

type SubscribeRequest struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
}

// ChangeEvent tells a subscriber that a row appeared in the collection. It
// carries ids only; subscribers refetch what they display.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	Key        string    `json:"key"`
	RowID      string    `json:"row_id"`
	At         time.Time `json:"at"`
}
