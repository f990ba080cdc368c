package models

import "time"

// Comment is a normalized comment record. Sentiment fields are optional and
// purely server-supplied; the client only displays them.
type Comment struct {
	ID              string
	VideoID         string
	AuthorID        string
	AuthorName      string
	Text            string
	CreatedAt       time.Time
	Sentiment       string
	SentimentScores map[string]float64
}

// CommentRequest is the body of a post-comment call.
type CommentRequest struct {
	VideoID   string `json:"videoId"`
	ViewerID  string `json:"currentUserId"`
	CreatorID string `json:"creatorId"`
	Text      string `json:"comment"`
}
