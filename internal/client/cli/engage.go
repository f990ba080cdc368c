package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/clipstream/clipstream/internal/client/likes"
	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

// Like likes the n-th listed video. The listing updates immediately; if the
// server rejects the call the count is rolled back and the error reported.
func (a *App) Like(ctx context.Context, n int) error {
	return a.react(ctx, n, likes.ActionLike)
}

// Unlike removes a like from the n-th listed video.
func (a *App) Unlike(ctx context.Context, n int) error {
	return a.react(ctx, n, likes.ActionUnlike)
}

func (a *App) react(ctx context.Context, n int, action likes.Action) error {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	video, err := a.videoAt(n)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	var applied bool
	switch action {
	case likes.ActionLike:
		applied, err = a.engine.Like(ctx, a.activePager(), video.ID, sess.ID)
	case likes.ActionUnlike:
		applied, err = a.engine.Unlike(ctx, a.activePager(), video.ID, sess.ID)
	}
	if err != nil {
		printlnFn(fmt.Sprintf("Could not %s %q: %s", action, video.Title, err.Error()))
		return err
	}
	if !applied {
		return nil
	}

	printlnFn(formatVideo(n, mustVideoAt(a, n)))
	return nil
}

func mustVideoAt(a *App, n int) models.Video {
	v, _ := a.videoAt(n)
	return v
}

// Comments prints the full comment thread of the n-th listed video,
// newest first. The thread is cached; reopening the same video does not
// refetch.
func (a *App) Comments(ctx context.Context, n int) error {
	video, err := a.videoAt(n)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	thread, err := a.comments.LoadAll(ctx, video.ID)
	if err != nil {
		printlnFn("Comments unavailable:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Comments on %q:", video.Title))
	if len(thread) == 0 {
		printlnFn("  (none yet)")
		return nil
	}
	for _, c := range thread {
		printlnFn("  " + formatComment(c))
	}
	return nil
}

// Comment prompts for a comment body and posts it on the n-th listed video.
func (a *App) Comment(ctx context.Context, n int) error {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}

	video, err := a.videoAt(n)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	text, err := getSimpleText(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.comments.Submit(ctx, video.ID, sess.ID, video.CreatorID, text)
	if err != nil {
		printlnFn("Comment failed:", err.Error())
		return err
	}

	printlnFn("Posted: " + formatComment(created))
	return nil
}

func formatComment(c models.Comment) string {
	author := c.AuthorName
	if author == "" {
		author = c.AuthorID
	}
	s := fmt.Sprintf("%s  %s: %s", c.CreatedAt.Format("2006-01-02 15:04"), author, c.Text)
	if c.Sentiment != "" {
		s += fmt.Sprintf(" [%s]", c.Sentiment)
	}
	return s
}
