package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clipstream/clipstream/internal/client/models"
)

// scriptedFetch replays canned pages and records every query it saw.
type scriptedFetch struct {
	mu      sync.Mutex
	pages   []models.FeedPage
	errs    []error
	queries []models.FeedQuery
	block   chan struct{} // when set, fetch waits until the channel closes
}

func (s *scriptedFetch) fetch(ctx context.Context, q models.FeedQuery) (models.FeedPage, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	idx := len(s.queries) - 1
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if idx < len(s.errs) && s.errs[idx] != nil {
		return models.FeedPage{}, s.errs[idx]
	}
	if idx < len(s.pages) {
		return s.pages[idx], nil
	}
	return models.FeedPage{}, nil
}

func vids(ids ...string) []models.Video {
	out := make([]models.Video, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Video{ID: id, Title: "t-" + id})
	}
	return out
}

func ids(videos []models.Video) []string {
	out := make([]string, 0, len(videos))
	for _, v := range videos {
		out = append(out, v.ID)
	}
	return out
}

func TestPager_FirstLoadPageMode(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{{Items: vids("a", "b"), HasMore: true}}}
	p := NewPager(f.fetch, 2, "viewer-1", nil)

	require.Equal(t, StateEmpty, p.State())
	require.NoError(t, p.LoadFirst(context.Background()))

	require.Equal(t, StateReady, p.State())
	require.Equal(t, []string{"a", "b"}, ids(p.Videos()))
	require.Equal(t, models.FeedQuery{Page: 1, Limit: 2, ViewerID: "viewer-1"}, f.queries[0])
}

func TestPager_LoadFirstIsIdempotent(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{{Items: vids("a"), HasMore: true}}}
	p := NewPager(f.fetch, 8, "", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.NoError(t, p.LoadFirst(context.Background()))
	require.Len(t, f.queries, 1)
}

func TestPager_MergeDeduplicatesAndPreservesOrder(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{
		{Items: vids("a", "b", "c"), HasMore: true},
		// b arrives again with a different title: the existing entry wins
		{Items: []models.Video{{ID: "b", Title: "replacement"}, {ID: "d"}}, HasMore: false},
	}}
	p := NewPager(f.fetch, 3, "", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))

	videos := p.Videos()
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(videos))
	require.Equal(t, "t-b", videos[1].Title, "first-seen entry must win positionally")
	require.Equal(t, StateExhausted, p.State())
}

func TestPager_PageNumberAdvancesOnlyOnSuccess(t *testing.T) {
	f := &scriptedFetch{
		pages: []models.FeedPage{
			{Items: vids("a"), HasMore: true},
			{}, // second call errors
			{Items: vids("b"), HasMore: false},
		},
		errs: []error{nil, errors.New("boom"), nil},
	}
	p := NewPager(f.fetch, 1, "", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.Error(t, p.LoadMore(context.Background()))

	// failure leaves the machine Ready and the collection untouched
	require.Equal(t, StateReady, p.State())
	require.Equal(t, []string{"a"}, ids(p.Videos()))

	// retrying asks for the same page again, not the one after it
	require.NoError(t, p.LoadMore(context.Background()))
	require.Equal(t, 2, f.queries[1].Page)
	require.Equal(t, 2, f.queries[2].Page)
	require.Equal(t, []string{"a", "b"}, ids(p.Videos()))
}

func TestPager_CursorModeIsSticky(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{
		{Items: vids("a"), HasMore: true, NextCursor: "cur-1"},
		{Items: vids("b"), HasMore: true, NextCursor: "cur-2"},
		{Items: vids("c"), HasMore: true}, // cursor omitted mid-stream
	}}
	p := NewPager(f.fetch, 1, "viewer-1", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))

	// after the first response produced a cursor, page is never sent again
	require.Equal(t, "cur-1", f.queries[1].Cursor)
	require.Zero(t, f.queries[1].Page)
	require.Equal(t, "cur-2", f.queries[2].Cursor)
	require.Zero(t, f.queries[2].Page)

	// no token left to continue on: the feed is done
	require.False(t, p.HasMore())
	require.Equal(t, StateExhausted, p.State())
}

func TestPager_EmptyFirstPageStaysReady(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{{HasMore: false}}}
	p := NewPager(f.fetch, 8, "", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.Equal(t, StateReady, p.State())
	require.Empty(t, p.Videos())
	require.False(t, p.HasMore())

	// and the trigger stays a no-op
	require.NoError(t, p.LoadMore(context.Background()))
	require.Len(t, f.queries, 1)
}

func TestPager_TriggerWhileInFlightIsNoOp(t *testing.T) {
	block := make(chan struct{})
	f := &scriptedFetch{
		pages: []models.FeedPage{{Items: vids("a"), HasMore: true}, {Items: vids("b")}},
		block: block,
	}
	p := NewPager(f.fetch, 1, "", nil)

	done := make(chan error, 1)
	go func() { done <- p.LoadFirst(context.Background()) }()

	// wait for the fetch to start, then fire the trigger mid-flight
	for {
		f.mu.Lock()
		started := len(f.queries) == 1
		f.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, p.LoadMore(context.Background()))

	close(block)
	require.NoError(t, <-done)
	require.Len(t, f.queries, 1, "mid-flight trigger must not queue a fetch")
}

func TestPager_CancelledContextDiscardsResult(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{{Items: vids("a"), HasMore: true}}}
	p := NewPager(f.fetch, 1, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.LoadFirst(ctx))
	require.Empty(t, p.Videos(), "result for a departed caller must be dropped")
	require.Equal(t, StateEmpty, p.State())
}

func TestPager_NoDuplicateIDsAcrossManyPages(t *testing.T) {
	f := &scriptedFetch{pages: []models.FeedPage{
		{Items: vids("a", "b"), HasMore: true},
		{Items: vids("b", "c"), HasMore: true},
		{Items: vids("c", "a", "d"), HasMore: false},
	}}
	p := NewPager(f.fetch, 2, "", nil)

	require.NoError(t, p.LoadFirst(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))
	require.NoError(t, p.LoadMore(context.Background()))

	got := ids(p.Videos())
	require.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestCreatorFetch_AdaptsQuery(t *testing.T) {
	var got models.CreatorFeedQuery
	fetch := CreatorFetch("c1", func(_ context.Context, q models.CreatorFeedQuery) (models.FeedPage, error) {
		got = q
		return models.FeedPage{}, nil
	})

	_, err := fetch(context.Background(), models.FeedQuery{Cursor: "cur", Limit: 8, ViewerID: "v1"})
	require.NoError(t, err)
	require.Equal(t, models.CreatorFeedQuery{CreatorID: "c1", Cursor: "cur", Limit: 8, ViewerID: "v1"}, got)
}
