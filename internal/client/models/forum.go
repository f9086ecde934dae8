package models

import (
	"time"

	"github.com/dmitrijs2005/loopin/internal/username"
)

type Author struct {
	UserID   string
	Username string
	Email    string
}

func (a Author) Display() string {
	return username.Display(a.Username, a.Email)
}

type Post struct {
	ID        string
	Title     string
	Content   string
	Author    Author
	Likes     int64
	Comments  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        string
	PostID    string
	Author    Author
	Content   string
	CreatedAt time.Time
}

type Attachment struct {
	ID          string
	FileName    string
	ContentType string
	CreatedAt   time.Time
}

type PostDetails struct {
	Post        Post
	Comments    []Comment
	Attachments []Attachment
}

type LikeStatus struct {
	PostID string
	Liked  bool
	Count  int64
}

type Notification struct {
	ID        string
	Type      string
	Actor     Author
	PostID    string
	PostTitle string
	Read      bool
	CreatedAt time.Time
}

type Inbox struct {
	Notifications []Notification
	Unread        int64
}

// Upload is a presigned slot for an attachment's bytes.
type Upload struct {
	AttachmentID string
	URL          string
	ExpiresAt    time.Time
}

// Change tells a watcher that a row appeared; the watcher refetches.
type Change struct {
	Collection string
	Key        string
	RowID      string
	At         time.Time
}
