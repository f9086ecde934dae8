package grpc

import (
	pb "github.com/dmitrijs2005/loopin/internal/proto"
	"github.com/dmitrijs2005/loopin/internal/server/feed"
	"github.com/dmitrijs2005/loopin/internal/server/models"
)

func toPBAuthor(a models.Author) pb.Author {
	return pb.Author{UserID: a.UserID, Username: a.Username, Email: a.Email}
}

func toPBPost(p *models.Post) *pb.Post {
	return &pb.Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    toPBAuthor(p.Author),
		Likes:     p.LikeCount,
		Comments:  p.CommentCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPBComment(c *models.Comment) *pb.Comment {
	return &pb.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    toPBAuthor(c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toPBNotification(n *models.Notification) *pb.Notification {
	return &pb.Notification{
		ID:        n.ID,
		Type:      n.Type,
		Actor:     toPBAuthor(n.Actor),
		PostID:    n.PostID,
		PostTitle: n.PostTitle,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func toPBAttachment(a *models.Attachment) *pb.Attachment {
	return &pb.Attachment{ID: a.ID, FileName: a.FileName, ContentType: a.ContentType, CreatedAt: a.CreatedAt}
}

func toPBLikeStatus(st *models.LikeStatus) *pb.LikeStatusResponse {
	return &pb.LikeStatusResponse{PostID: st.PostID, Liked: st.Liked, Count: st.Count}
}

func toPBEvent(e feed.Event) *pb.ChangeEvent {
	return &pb.ChangeEvent{ID: e.ID, Collection: e.Collection, Op: e.Op, Key: e.Key, RowID: e.RowID, At: e.At}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
