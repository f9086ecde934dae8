package client

import (
	"github.com/dmitrijs2005/loopin/internal/client/models"
	pb "github.com/dmitrijs2005/loopin/internal/proto"
)

func fromPBAuthor(a pb.Author) models.Author {
	return models.Author{UserID: a.UserID, Username: a.Username, Email: a.Email}
}

func fromPBPost(p *pb.Post) models.Post {
	if p == nil {
		return models.Post{}
	}
	return models.Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    fromPBAuthor(p.Author),
		Likes:     p.Likes,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPBComment(c *pb.Comment) models.Comment {
	if c == nil {
		return models.Comment{}
	}
	return models.Comment{ID: c.ID, PostID: c.PostID, Author: fromPBAuthor(c.Author), Content: c.Content, CreatedAt: c.CreatedAt}
}

func fromPBAttachment(a *pb.Attachment) models.Attachment {
	return models.Attachment{ID: a.ID, FileName: a.FileName, ContentType: a.ContentType, CreatedAt: a.CreatedAt}
}

func fromPBNotification(n *pb.Notification) models.Notification {
	return models.Notification{
		ID:        n.ID,
		Type:      n.Type,
		Actor:     fromPBAuthor(n.Actor),
		PostID:    n.PostID,
		PostTitle: n.PostTitle,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
