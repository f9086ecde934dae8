package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/dmitrijs2005/loopin/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func (a *App) Feed(ctx context.Context) error {
	posts, err := a.forum.Feed(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return nil
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "%s  %-40s  %s  likes:%d comments:%d\n",
			p.ID, p.Title, p.Author.Display(), p.Likes, p.Comments)
	}
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	v, err := a.forum.Show(ctx, id)
	if err != nil {
		return err
	}

	p := v.Post
	fmt.Fprintln(a.out, p.Title)
	fmt.Fprintf(a.out, "by %s, %s\n", p.Author.Display(), p.CreatedAt.Local().Format(timeLayout))
	likes := fmt.Sprintf("likes: %d", p.Likes)
	if v.Liked {
		likes += " (you like this)"
	}
	fmt.Fprintln(a.out, likes)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, p.Content)

	if len(v.Attachments) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Attachments:")
		for _, at := range v.Attachments {
			fmt.Fprintf(a.out, "  %s  %s\n", at.ID, at.FileName)
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Comments (%d):\n", len(v.Comments))
	for _, c := range v.Comments {
		printComment(a, c)
	}
	return nil
}

func printComment(a *App, c models.Comment) {
	fmt.Fprintf(a.out, "  [%s] %s: %s\n", c.CreatedAt.Local().Format(timeLayout), c.Author.Display(), c.Content)
}

func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	p, err := a.forum.Publish(ctx, title, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Published %s\n", p.ID)
	return nil
}

func (a *App) Comment(ctx context.Context, postID string) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	content, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	if _, err := a.forum.Comment(ctx, postID, content); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment added")
	return nil
}

func (a *App) Like(ctx context.Context, postID string) error {
	st, err := a.forum.ToggleLike(ctx, postID)
	if err != nil {
		return err
	}
	if st.Liked {
		fmt.Fprintf(a.out, "Liked (%d)\n", st.Count)
	} else {
		fmt.Fprintf(a.out, "Unliked (%d)\n", st.Count)
	}
	return nil
}

func (a *App) Retitle(ctx context.Context, postID string) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	title, err := getSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return err
	}
	p, err := a.forum.Retitle(ctx, postID, title)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Renamed to %q\n", p.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, postID string) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	v, err := a.forum.Show(ctx, postID)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", v.Post.Title), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.forum.Delete(ctx, postID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func describeNotification(n models.Notification) string {
	verb := "commented on"
	if n.Type == "like" {
		verb = "liked"
	}
	mark := " "
	if !n.Read {
		mark = "*"
	}
	return fmt.Sprintf("%s %s  %s %s %q  %s", mark, n.ID, n.Actor.Display(), verb, n.PostTitle,
		n.CreatedAt.Local().Format(timeLayout))
}

func (a *App) Notifications(ctx context.Context) error {
	inbox, err := a.forum.Notifications(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d unread\n", inbox.Unread)
	for _, n := range inbox.Notifications {
		fmt.Fprintln(a.out, describeNotification(n))
	}
	return nil
}

func (a *App) Read(ctx context.Context, id string) error {
	if err := a.forum.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Marked as read")
	return nil
}

func (a *App) Attach(ctx context.Context, postID, path string) error {
	id, err := a.forum.Attach(ctx, postID, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded attachment %s\n", id)
	return nil
}

func (a *App) AttachmentURL(ctx context.Context, id string) error {
	url, err := a.forum.AttachmentURL(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

// follow runs watch in the background and blocks until the user presses
// Enter, then stops it.
func (a *App) follow(ctx context.Context, what string, watch func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)

	fmt.Fprintf(a.out, "Following %s, press Enter to stop\n", what)
	go func() { done <- watch(ctx) }()

	_, _ = readLine(a.reader)
	cancel()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		return nil
	}
}

func (a *App) Watch(ctx context.Context, postID string) error {
	return a.follow(ctx, "comments on "+postID, func(ctx context.Context) error {
		return a.forum.WatchComments(ctx, postID, func(c models.Comment) {
			printComment(a, c)
		})
	})
}

func (a *App) Inbox(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}
	return a.follow(ctx, "your notifications", func(ctx context.Context) error {
		return a.forum.WatchInbox(ctx, func(n models.Notification) {
			fmt.Fprintln(a.out, strings.TrimSpace(describeNotification(n)))
		})
	})
}
