package cli

import (
	"context"
	"fmt"

	"github.com/clipstream/clipstream/internal/client/feed"
	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

// Feed loads (or reloads the view of) the public feed and lists it.
// Calling it again while a feed is already loaded just re-renders; the
// pager itself refuses duplicate first-page fetches.
func (a *App) Feed(ctx context.Context) error {
	if a.feedPager == nil {
		a.feedPager = feed.NewPager(a.feedFetch, a.config.PageLimit, a.viewerID(), a.log)
	}
	if err := a.feedPager.LoadFirst(ctx); err != nil {
		printlnFn("Feed unavailable:", err.Error())
		return err
	}
	a.renderListing(a.feedPager, 0)
	return nil
}

// More fetches the next feed page and lists only the newly added videos.
func (a *App) More(ctx context.Context) error {
	return a.more(ctx, a.feedPager, "Load the feed first (feed)")
}

// Mine loads the creator's own videos. Only creators may use it.
func (a *App) Mine(ctx context.Context) error {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}
	if !sess.IsCreator() {
		printlnFn("Only creators can browse their own videos")
		return common.ErrCreatorOnly
	}

	if a.minePager == nil {
		a.minePager = feed.NewPager(feed.CreatorFetch(sess.ID, a.creatorLoad), a.config.PageLimit, sess.ID, a.log)
	}
	if err := a.minePager.LoadFirst(ctx); err != nil {
		printlnFn("Your videos are unavailable:", err.Error())
		return err
	}
	a.renderListing(a.minePager, 0)
	return nil
}

// MoreMine fetches the next page of the creator's own videos.
func (a *App) MoreMine(ctx context.Context) error {
	return a.more(ctx, a.minePager, "Load your videos first (mine)")
}

func (a *App) more(ctx context.Context, p *feed.Pager, hint string) error {
	if p == nil {
		printlnFn(hint)
		return nil
	}
	before := len(p.Videos())
	if err := p.LoadMore(ctx); err != nil {
		printlnFn("Loading more failed:", err.Error())
		return err
	}
	a.renderListing(p, before)
	return nil
}

// renderListing prints videos starting at offset, numbered by their 1-based
// position in the complete listing so engagement commands can refer to them.
func (a *App) renderListing(p *feed.Pager, offset int) {
	videos := p.Videos()
	if len(videos) == 0 {
		printlnFn("No videos")
		return
	}
	for i := offset; i < len(videos); i++ {
		v := videos[i]
		// The loader's preview stays current as comments are posted; the
		// copy shipped with the feed response only seeds it.
		if pv := a.comments.Preview(v.ID); pv != nil {
			v.CommentsPreview = pv
		} else if len(v.CommentsPreview) > 0 {
			a.comments.SeedPreview(v.ID, v.CommentsPreview)
		}
		printlnFn(formatVideo(i+1, v))
	}
	if offset >= len(videos) {
		printlnFn("No new videos")
	}
	if !p.HasMore() {
		printlnFn("(end of feed)")
	}
}

func formatVideo(n int, v models.Video) string {
	liked := " "
	if v.LikedByViewer {
		liked = "*"
	}
	s := fmt.Sprintf("%3d. [%s%3d] %s", n, liked, v.LikeCount, v.Title)
	if v.MediaType == models.VideoTypeShort {
		s += " (short)"
	}
	for _, c := range v.CommentsPreview {
		s += fmt.Sprintf("\n       %s: %s", c.AuthorName, c.Text)
	}
	return s
}

// videoAt resolves a 1-based listing position against the active pager.
// Positions refer to the feed listing; creator listings share the numbering
// only when the feed is not loaded.
func (a *App) videoAt(n int) (models.Video, error) {
	p := a.feedPager
	if p == nil {
		p = a.minePager
	}
	if p == nil {
		return models.Video{}, fmt.Errorf("%w: no videos listed yet", common.ErrValidation)
	}
	videos := p.Videos()
	if n < 1 || n > len(videos) {
		return models.Video{}, fmt.Errorf("%w: no video at position %d", common.ErrValidation, n)
	}
	return videos[n-1], nil
}

// activePager returns the pager backing the current listing.
func (a *App) activePager() *feed.Pager {
	if a.feedPager != nil {
		return a.feedPager
	}
	return a.minePager
}
