// Package feed drives incremental, deduplicated loading of a video
// collection. A Pager instance owns one feed (global or creator-scoped);
// the rendering surface signals "more content wanted" by calling LoadMore,
// the Go analogue of a sentinel element entering the viewport.
package feed

import (
	"context"
	"sync"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/logging"
)

// State is the pager's lifecycle position.
type State int

const (
	StateEmpty State = iota
	StateLoadingFirst
	StateReady
	StateLoadingMore
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoadingFirst:
		return "loading-first"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading-more"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// FetchFunc loads one page. The global feed binds this to the gateway's
// LoadFeed; creator feeds adapt the query (see CreatorFetch).
type FetchFunc func(ctx context.Context, q models.FeedQuery) (models.FeedPage, error)

// Pager is the per-feed state machine:
//
//	Empty -> LoadingFirst -> Ready <-> LoadingMore -> ... -> Exhausted
//
// Invariants: the merged collection never contains duplicate ids and keeps
// first-seen order; at most one fetch is in flight; a failed fetch leaves
// both the collection and the pagination position exactly as they were.
type Pager struct {
	fetch FetchFunc
	log   logging.Logger

	limit    int
	viewerID string

	mu         sync.Mutex
	videos     []models.Video
	seen       map[string]struct{}
	state      State
	page       int
	cursor     string
	cursorMode bool
	hasMore    bool
	inFlight   bool
}

func NewPager(fetch FetchFunc, limit int, viewerID string, log logging.Logger) *Pager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Pager{
		fetch:    fetch,
		log:      log,
		limit:    limit,
		viewerID: viewerID,
		seen:     make(map[string]struct{}),
		state:    StateEmpty,
		hasMore:  true,
	}
}

// CreatorFetch adapts a creator-scoped gateway call to FetchFunc. The
// page number is dropped: the creator endpoint paginates by cursor only.
func CreatorFetch(creatorID string, load func(ctx context.Context, q models.CreatorFeedQuery) (models.FeedPage, error)) FetchFunc {
	return func(ctx context.Context, q models.FeedQuery) (models.FeedPage, error) {
		return load(ctx, models.CreatorFeedQuery{
			CreatorID: creatorID,
			Cursor:    q.Cursor,
			Limit:     q.Limit,
			ViewerID:  q.ViewerID,
		})
	}
}

// LoadFirst issues the initial fetch. Calling it again after the feed has
// loaded is a no-op, matching a remounting view that must not duplicate
// its content.
func (p *Pager) LoadFirst(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateEmpty || p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.state = StateLoadingFirst
	q := models.FeedQuery{Page: 1, Limit: p.limit, ViewerID: p.viewerID}
	p.mu.Unlock()

	return p.run(ctx, q, StateEmpty, 1)
}

// LoadMore is the proximity trigger. It is a no-op (not an error, not
// queued) while a fetch is outstanding, after exhaustion, or before the
// first load.
func (p *Pager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateReady || !p.hasMore || p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.state = StateLoadingMore

	var q models.FeedQuery
	nextPage := p.page
	if p.cursorMode {
		q = models.FeedQuery{Cursor: p.cursor, Limit: p.limit}
	} else {
		nextPage = p.page + 1
		q = models.FeedQuery{Page: nextPage, Limit: p.limit, ViewerID: p.viewerID}
	}
	p.mu.Unlock()

	return p.run(ctx, q, StateReady, nextPage)
}

// run performs the fetch and commits or rolls back the machine.
// prev is the state to restore on failure; committedPage is the page
// number to record on success (ignored in cursor mode).
func (p *Pager) run(ctx context.Context, q models.FeedQuery, prev State, committedPage int) error {
	page, err := p.fetch(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false

	if err != nil {
		p.state = prev
		p.log.Error(ctx, "feed fetch failed", "state", prev.String(), "error", err)
		return err
	}
	if ctx.Err() != nil {
		// the caller went away mid-flight: discard the result silently
		p.state = prev
		return nil
	}

	added := 0
	for _, v := range page.Items {
		if _, dup := p.seen[v.ID]; dup {
			continue
		}
		p.seen[v.ID] = struct{}{}
		p.videos = append(p.videos, v)
		added++
	}

	if !p.cursorMode {
		p.page = committedPage
	}
	p.hasMore = page.HasMore
	if page.NextCursor != "" {
		// sticky: from here on this instance paginates by cursor only
		p.cursorMode = true
		p.cursor = page.NextCursor
	} else if p.cursorMode {
		// cursor mode with no token left to continue on
		p.hasMore = false
	}

	if !p.hasMore && len(p.videos) > 0 {
		p.state = StateExhausted
	} else {
		p.state = StateReady
	}

	p.log.Info(ctx, "feed page merged",
		"added", added, "total", len(p.videos), "has_more", p.hasMore, "cursor_mode", p.cursorMode)
	return nil
}

// Videos returns a copy of the merged collection in first-seen order.
func (p *Pager) Videos() []models.Video {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Video, len(p.videos))
	copy(out, p.videos)
	return out
}

// SetVideos replaces the collection, leaving pagination state alone. This
// is the surface the optimistic mutation engine publishes through.
func (p *Pager) SetVideos(videos []models.Video) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.videos = videos
}

// State returns the machine's current position.
func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// HasMore reports whether another page is believed to exist.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}
