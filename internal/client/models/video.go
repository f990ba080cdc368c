package models

import "time"

// Video is the normalized video record every component downstream of the
// gateway can rely on. ID is globally unique and stable across paginated
// fetches; it is the de-duplication key.
type Video struct {
	ID            string
	Title         string
	Description   string
	MediaURL      string
	CreatorID     string
	MediaType     string
	CreatedAt     time.Time
	LikeCount     int
	LikedByViewer bool
	// CommentsPreview holds the compact comment preview shipped with feed
	// responses; the full thread is loaded separately on demand.
	CommentsPreview []Comment
}

// FeedPage is one page of a paginated feed.
type FeedPage struct {
	Items      []Video
	HasMore    bool
	NextCursor string
}

// FeedQuery parameterizes a global feed fetch. When Cursor is set only
// cursor+limit are sent; otherwise page/limit/viewer are used.
type FeedQuery struct {
	Cursor   string
	Page     int
	Limit    int
	ViewerID string
}

// CreatorFeedQuery parameterizes a creator-scoped feed fetch.
// CreatorID is required.
type CreatorFeedQuery struct {
	CreatorID string
	Cursor    string
	Limit     int
	ViewerID  string
}

// LikeRequest is the body of like/unlike calls.
type LikeRequest struct {
	VideoID   string `json:"videoId"`
	ViewerID  string `json:"currentUserId"`
	CreatorID string `json:"creatorId"`
}
