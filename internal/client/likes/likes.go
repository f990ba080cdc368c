// Package likes applies like/unlike actions optimistically: the local
// collection changes first, the server call follows, and a failure rolls
// the collection back to the pre-action snapshot.
package likes

import (
	"context"
	"sync"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/logging"
)

// Action is the mutation kind.
type Action int

const (
	ActionLike Action = iota
	ActionUnlike
)

func (a Action) String() string {
	if a == ActionLike {
		return "like"
	}
	return "unlike"
}

// Apply is the pure optimistic transform. It returns a new collection where
// exactly the target video's like count and flag changed, plus ok=false
// when the action is a no-op: unknown id, liking an already-liked video, or
// unliking a video that is not liked. The count never goes below zero.
func Apply(videos []models.Video, videoID string, action Action) ([]models.Video, bool) {
	target := -1
	for i, v := range videos {
		if v.ID == videoID {
			target = i
			break
		}
	}
	if target == -1 {
		return videos, false
	}

	v := videos[target]
	switch action {
	case ActionLike:
		if v.LikedByViewer {
			return videos, false
		}
		v.LikeCount++
		v.LikedByViewer = true
	case ActionUnlike:
		if !v.LikedByViewer {
			return videos, false
		}
		if v.LikeCount > 0 {
			v.LikeCount--
		}
		v.LikedByViewer = false
	}

	next := make([]models.Video, len(videos))
	copy(next, videos)
	next[target] = v
	return next, true
}

// Collection is the mutable video list the engine publishes through;
// feed.Pager satisfies it.
type Collection interface {
	Videos() []models.Video
	SetVideos([]models.Video)
}

// Mutator is the slice of the gateway the engine calls.
type Mutator interface {
	Like(ctx context.Context, req models.LikeRequest) error
	Unlike(ctx context.Context, req models.LikeRequest) error
}

// Engine coordinates optimistic like/unlike against one or more
// collections. Each action is a single attempt, never retried; at most one
// call per (video, action) pair is in flight at a time.
type Engine struct {
	mutator Mutator
	log     logging.Logger

	mu       sync.Mutex
	inFlight map[inFlightKey]struct{}
}

type inFlightKey struct {
	videoID string
	action  Action
}

func NewEngine(mutator Mutator, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{
		mutator:  mutator,
		log:      log,
		inFlight: make(map[inFlightKey]struct{}),
	}
}

// Like optimistically likes videoID inside col on behalf of viewerID.
// Returns false when the action was a no-op (precondition failed or an
// identical call is in flight); a non-nil error means the server rejected
// the call and the collection has been rolled back.
func (e *Engine) Like(ctx context.Context, col Collection, videoID, viewerID string) (bool, error) {
	return e.mutate(ctx, col, videoID, viewerID, ActionLike)
}

// Unlike is the symmetric counterpart of Like.
func (e *Engine) Unlike(ctx context.Context, col Collection, videoID, viewerID string) (bool, error) {
	return e.mutate(ctx, col, videoID, viewerID, ActionUnlike)
}

func (e *Engine) mutate(ctx context.Context, col Collection, videoID, viewerID string, action Action) (bool, error) {
	key := inFlightKey{videoID: videoID, action: action}

	e.mu.Lock()
	if _, busy := e.inFlight[key]; busy {
		e.mu.Unlock()
		return false, nil
	}
	e.inFlight[key] = struct{}{}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.inFlight, key)
		e.mu.Unlock()
	}()

	snapshot := col.Videos()
	next, ok := Apply(snapshot, videoID, action)
	if !ok {
		return false, nil
	}

	creatorID := ""
	for _, v := range snapshot {
		if v.ID == videoID {
			creatorID = v.CreatorID
			break
		}
	}

	col.SetVideos(next)

	req := models.LikeRequest{VideoID: videoID, ViewerID: viewerID, CreatorID: creatorID}
	var err error
	if action == ActionLike {
		err = e.mutator.Like(ctx, req)
	} else {
		err = e.mutator.Unlike(ctx, req)
	}
	if err != nil {
		// full rollback to the pre-action snapshot, last writer wins
		col.SetVideos(snapshot)
		e.log.Warn(ctx, "optimistic mutation rolled back",
			"action", action.String(), "video_id", videoID, "error", err)
		return false, err
	}
	return true, nil
}
