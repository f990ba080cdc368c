// Package comments loads and caches per-video comment threads. A thread is
// fetched whole in one call, ordered newest-first, and cached so reopening
// the same video does not refetch; newly posted comments are merged into
// both the full thread and a compact preview without a reload.
package comments

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/clipstream/clipstream/internal/client/api"
	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
	"github.com/clipstream/clipstream/internal/logging"
)

// PreviewSize bounds the compact preview kept per video.
const PreviewSize = 3

// DefaultCacheTTL is how long a loaded thread stays warm.
const DefaultCacheTTL = 5 * time.Minute

// Gateway is the slice of the backend API the loader needs.
type Gateway interface {
	ListComments(ctx context.Context, videoID string) ([]api.CommentRecord, error)
	PostComment(ctx context.Context, req models.CommentRequest) (api.CommentRecord, error)
}

// Loader caches one full thread per video plus a bounded preview.
type Loader struct {
	gw       Gateway
	log      logging.Logger
	threads  *gocache.Cache
	previews *gocache.Cache
	now      func() time.Time
	newID    func() string
}

func NewLoader(gw Gateway, ttl time.Duration, log logging.Logger) *Loader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{
		gw:       gw,
		log:      log,
		threads:  gocache.New(ttl, 2*ttl),
		previews: gocache.New(ttl, 2*ttl),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// LoadAll returns the video's full thread, newest first. The first call per
// open lifecycle hits the backend; subsequent calls serve the cached copy
// until Reset (or TTL expiry). The sort runs client-side even when the
// backend already orders the rows, so out-of-order arrivals from optimistic
// inserts cannot corrupt the presentation.
func (l *Loader) LoadAll(ctx context.Context, videoID string) ([]models.Comment, error) {
	if cached, ok := l.threads.Get(videoID); ok {
		return cloneThread(cached.([]models.Comment)), nil
	}

	rows, err := l.gw.ListComments(ctx, videoID)
	if err != nil {
		return nil, err
	}

	thread := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		thread = append(thread, api.NormalizeComment(row))
	}
	sortNewestFirst(thread)

	l.threads.SetDefault(videoID, thread)
	l.log.Info(ctx, "comment thread loaded", "video_id", videoID, "count", len(thread))
	return cloneThread(thread), nil
}

// Submit posts a comment and merges the normalized echo into the cached
// thread and the preview. Whitespace-only text fails locally without any
// network call. Fields the server echo omits fall back to locally known
// values: a fresh id, the submitted text, the supplied author, the current
// time.
func (l *Loader) Submit(ctx context.Context, videoID, authorID, creatorID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("%w: comment text is empty", common.ErrValidation)
	}

	echo, err := l.gw.PostComment(ctx, models.CommentRequest{
		VideoID:   videoID,
		ViewerID:  authorID,
		CreatorID: creatorID,
		Text:      text,
	})
	if err != nil {
		return models.Comment{}, err
	}

	created := api.NormalizeComment(echo)
	created.VideoID = videoID
	if created.ID == "" {
		created.ID = l.newID()
	}
	if created.AuthorID == "" {
		created.AuthorID = authorID
	}
	if created.Text == "" {
		created.Text = text
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = l.now()
	}

	if cached, ok := l.threads.Get(videoID); ok {
		thread := cached.([]models.Comment)
		l.threads.SetDefault(videoID, append([]models.Comment{created}, thread...))
	}
	l.prependPreview(videoID, created)

	return created, nil
}

// Preview returns the bounded newest-first preview for a video.
func (l *Loader) Preview(videoID string) []models.Comment {
	cached, ok := l.previews.Get(videoID)
	if !ok {
		return nil
	}
	return cloneThread(cached.([]models.Comment))
}

// SeedPreview installs the preview shipped with a feed response.
func (l *Loader) SeedPreview(videoID string, preview []models.Comment) {
	bounded := cloneThread(preview)
	sortNewestFirst(bounded)
	if len(bounded) > PreviewSize {
		bounded = bounded[:PreviewSize]
	}
	l.previews.SetDefault(videoID, bounded)
}

// Reset drops the cached thread so the next LoadAll refetches.
func (l *Loader) Reset(videoID string) {
	l.threads.Delete(videoID)
}

func (l *Loader) prependPreview(videoID string, c models.Comment) {
	var preview []models.Comment
	if cached, ok := l.previews.Get(videoID); ok {
		preview = cached.([]models.Comment)
	}
	preview = append([]models.Comment{c}, preview...)
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}
	l.previews.SetDefault(videoID, preview)
}

func sortNewestFirst(thread []models.Comment) {
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.After(thread[j].CreatedAt)
	})
}

func cloneThread(thread []models.Comment) []models.Comment {
	out := make([]models.Comment, len(thread))
	copy(out, thread)
	return out
}
