package models

import "time"

// Attachment is a file stored in object storage under StorageKey. The row
// is created before the client uploads; Uploaded flips once it confirms.
type Attachment struct {
	ID          string
	PostID      string
	UserID      string
	StorageKey  string
	FileName    string
	ContentType string
	Uploaded    bool
	CreatedAt   time.Time
}
