package models

import "time"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

type Notification struct {
	ID          string
	RecipientID string
	ActorID     string
	Type        string
	PostID      string
	PostTitle   string
	Actor       Author
	Read        bool
	CreatedAt   time.Time
}
