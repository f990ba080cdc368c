package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/clipstream/clipstream/internal/client/models"
)

// The backend uses different field names for the same data depending on the
// endpoint. This file is the only place that variance is absorbed; every
// other package sees the normalized models types.
//
// Fallback rules:
//
//	media URL   url, then blobUrl
//	like count  likes, then likeCount, then 0
//	comments    missing -> empty
//	role        role, then userrole
//	username    username, then name
//	author id   authorId, then currentUserId
//	text        text, then comment
//	list shape  bare JSON array, or {"items": [...]}

// rawVideo matches every video field name any endpoint is known to emit.
type rawVideo struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	URL                string          `json:"url"`
	BlobURL            string          `json:"blobUrl"`
	CreatorID          string          `json:"creatorId"`
	Type               string          `json:"type"`
	CreatedAt          string          `json:"createdAt"`
	Likes              *int            `json:"likes"`
	LikeCount          *int            `json:"likeCount"`
	LikedByCurrentUser bool            `json:"likedByCurrentUser"`
	Comments           []CommentRecord `json:"comments"`
}

// CommentRecord is the raw comment shape as returned by the backend, before
// the comment loader applies its fallbacks and ordering.
type CommentRecord struct {
	ID              string             `json:"id"`
	VideoID         string             `json:"videoId"`
	AuthorID        string             `json:"authorId"`
	CurrentUserID   string             `json:"currentUserId"`
	AuthorName      string             `json:"authorName"`
	Text            string             `json:"text"`
	Comment         string             `json:"comment"`
	CreatedAt       string             `json:"createdAt"`
	Sentiment       string             `json:"sentiment"`
	SentimentScores map[string]float64 `json:"sentimentScores"`
}

type rawUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	UserRole string `json:"userrole"`
}

type authEnvelope struct {
	Token string  `json:"token"`
	User  rawUser `json:"user"`
}

type feedEnvelope struct {
	Items      []rawVideo `json:"items"`
	HasMore    *bool      `json:"hasMore"`
	NextCursor *string    `json:"nextCursor"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseWhen parses the backend's timestamp strings. The backend is not
// consistent about precision, so several layouts are tried; an unparseable
// value yields the zero time rather than an error.
func parseWhen(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func normalizeUser(u rawUser) models.Session {
	return models.Session{
		ID:       u.ID,
		Email:    u.Email,
		Username: firstNonEmpty(u.Username, u.Name),
		Role:     firstNonEmpty(u.Role, u.UserRole),
	}
}

func normalizeVideo(v rawVideo) models.Video {
	likeCount := 0
	if v.Likes != nil {
		likeCount = *v.Likes
	} else if v.LikeCount != nil {
		likeCount = *v.LikeCount
	}
	preview := make([]models.Comment, 0, len(v.Comments))
	for _, c := range v.Comments {
		preview = append(preview, NormalizeComment(c))
	}
	return models.Video{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		MediaURL:        firstNonEmpty(v.URL, v.BlobURL),
		CreatorID:       v.CreatorID,
		MediaType:       v.Type,
		CreatedAt:       parseWhen(v.CreatedAt),
		LikeCount:       likeCount,
		LikedByViewer:   v.LikedByCurrentUser,
		CommentsPreview: preview,
	}
}

// NormalizeComment maps a raw record to the client schema, resolving the
// author-id and text field variants. Missing-value fallbacks (local
// timestamp, submitted text) are the comment loader's job, not ours.
func NormalizeComment(c CommentRecord) models.Comment {
	return models.Comment{
		ID:              c.ID,
		VideoID:         c.VideoID,
		AuthorID:        firstNonEmpty(c.AuthorID, c.CurrentUserID),
		AuthorName:      c.AuthorName,
		Text:            firstNonEmpty(c.Text, c.Comment),
		CreatedAt:       parseWhen(c.CreatedAt),
		Sentiment:       c.Sentiment,
		SentimentScores: c.SentimentScores,
	}
}

// decodeFeedEnvelope accepts both list shapes: a bare array of videos, or an
// object with items/hasMore/nextCursor.
func decodeFeedEnvelope(data []byte) (feedEnvelope, error) {
	var env feedEnvelope
	if isJSONArray(data) {
		err := json.Unmarshal(data, &env.Items)
		return env, err
	}
	err := json.Unmarshal(data, &env)
	return env, err
}

// decodeCommentList accepts a bare array or an {items} wrapper.
func decodeCommentList(data []byte) ([]CommentRecord, error) {
	if isJSONArray(data) {
		var rows []CommentRecord
		err := json.Unmarshal(data, &rows)
		return rows, err
	}
	var wrapper struct {
		Items []CommentRecord `json:"items"`
	}
	err := json.Unmarshal(data, &wrapper)
	return wrapper.Items, err
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
