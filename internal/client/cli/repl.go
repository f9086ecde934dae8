package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/loopin/internal/client/client"
	"github.com/sony/gobreaker"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Feed(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Post(ctx context.Context) error
	Comment(ctx context.Context, postID string) error
	Like(ctx context.Context, postID string) error
	Retitle(ctx context.Context, postID string) error
	Delete(ctx context.Context, postID string) error
	Notifications(ctx context.Context) error
	Read(ctx context.Context, id string) error
	Watch(ctx context.Context, postID string) error
	Inbox(ctx context.Context) error
	Attach(ctx context.Context, postID, path string) error
	AttachmentURL(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: register, login, feed, show <id>, whoami, exit"
	helpSignedIn  = "Available commands: feed, show <id>, post, comment <id>, like <id>, retitle <id>, delete <id>, " +
		"notifications, read <id>, watch <id>, inbox, attach <post-id> <file>, url <attachment-id>, whoami, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("loopin %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		// arg returns the n-th argument or prints usage.
		arg := func(n int, usage string) (string, bool) {
			if len(args) <= n {
				printlnFn("Usage:", usage)
				return "", false
			}
			return args[n], true
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "feed", "l":
			cmdErr = a.Feed(ctx)
		case "show":
			if id, ok := arg(0, "show <post-id>"); ok {
				cmdErr = a.Show(ctx, id)
			}
		case "post":
			cmdErr = a.Post(ctx)
		case "comment":
			if id, ok := arg(0, "comment <post-id>"); ok {
				cmdErr = a.Comment(ctx, id)
			}
		case "like":
			if id, ok := arg(0, "like <post-id>"); ok {
				cmdErr = a.Like(ctx, id)
			}
		case "retitle":
			if id, ok := arg(0, "retitle <post-id>"); ok {
				cmdErr = a.Retitle(ctx, id)
			}
		case "delete":
			if id, ok := arg(0, "delete <post-id>"); ok {
				cmdErr = a.Delete(ctx, id)
			}

		case "notifications":
			cmdErr = a.Notifications(ctx)
		case "read":
			if id, ok := arg(0, "read <notification-id>"); ok {
				cmdErr = a.Read(ctx, id)
			}
		case "watch":
			if id, ok := arg(0, "watch <post-id>"); ok {
				cmdErr = a.Watch(ctx, id)
			}
		case "inbox":
			cmdErr = a.Inbox(ctx)

		case "attach":
			if _, ok := arg(1, "attach <post-id> <file>"); ok {
				cmdErr = a.Attach(ctx, args[0], args[1])
			}
		case "url":
			if id, ok := arg(0, "url <attachment-id>"); ok {
				cmdErr = a.AttachmentURL(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}

// describeError turns client errors into short messages for the prompt.
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "you need to log in first"
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, gobreaker.ErrOpenState):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrForbidden):
		return "only the author can do that"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, client.ErrConflict):
		return "already exists"
	case errors.Is(err, client.ErrUnauthorized):
		return "wrong credentials or session expired"
	default:
		return err.Error()
	}
}
