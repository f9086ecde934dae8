package models

import "time"

type Post struct {
	ID           string
	UserID       string
	Title        string
	Content      string
	Author       Author
	LikeCount    int64
	CommentCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	Author    Author
	CreatedAt time.Time
}

type LikeStatus struct {
	PostID string
	Liked  bool
	Count  int64
}
