package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

// SignIn authenticates with username/password and returns the bearer token
// with the normalized session.
func (c *Client) SignIn(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	return c.auth(ctx, "/signIn", creds)
}

// SignUp registers a new account. Profile defaults: Role "viewer",
// Type "user".
func (c *Client) SignUp(ctx context.Context, profile models.SignupProfile) (models.AuthResult, error) {
	if profile.Role == "" {
		profile.Role = models.RoleViewer
	}
	if profile.Type == "" {
		profile.Type = "user"
	}
	return c.auth(ctx, "/signUp", profile)
}

func (c *Client) auth(ctx context.Context, path string, body any) (models.AuthResult, error) {
	data, err := c.postJSON(ctx, path, body)
	if err != nil {
		return models.AuthResult{}, err
	}
	var env authEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return models.AuthResult{}, fmt.Errorf("failed to decode auth response: %w", err)
	}
	return models.AuthResult{Token: env.Token, User: normalizeUser(env.User)}, nil
}

// LoadFeed fetches one page of the global feed. In cursor mode only the
// cursor parameter is sent; otherwise page, limit and currentUserId. When
// the backend omits hasMore it is inferred: a full page, or the presence of
// a next cursor, means there is more.
func (c *Client) LoadFeed(ctx context.Context, q models.FeedQuery) (models.FeedPage, error) {
	query := url.Values{}
	if q.Cursor != "" {
		query.Set("cursor", q.Cursor)
	} else {
		query.Set("page", strconv.Itoa(q.Page))
		query.Set("limit", strconv.Itoa(q.Limit))
		query.Set("currentUserId", q.ViewerID)
	}

	data, err := c.do(ctx, http.MethodGet, "/LoadVideos", query, nil, "")
	if err != nil {
		return models.FeedPage{}, err
	}
	env, err := decodeFeedEnvelope(data)
	if err != nil {
		return models.FeedPage{}, fmt.Errorf("failed to decode feed response: %w", err)
	}

	page := models.FeedPage{Items: make([]models.Video, 0, len(env.Items))}
	for _, v := range env.Items {
		page.Items = append(page.Items, normalizeVideo(v))
	}
	if env.NextCursor != nil {
		page.NextCursor = *env.NextCursor
	}
	if env.HasMore != nil {
		page.HasMore = *env.HasMore
	} else {
		page.HasMore = q.Limit > 0 && len(page.Items) == q.Limit
	}
	if page.NextCursor != "" {
		page.HasMore = true
	}
	return page, nil
}

// LoadCreatorFeed fetches one page of a creator's own videos. CreatorID is
// required; its absence fails locally before any network call. Unlike the
// global feed, hasMore is taken verbatim from the response.
func (c *Client) LoadCreatorFeed(ctx context.Context, q models.CreatorFeedQuery) (models.FeedPage, error) {
	if q.CreatorID == "" {
		return models.FeedPage{}, fmt.Errorf("%w: creatorId is required", common.ErrValidation)
	}

	query := url.Values{}
	query.Set("creatorId", q.CreatorID)
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.Cursor != "" {
		query.Set("cursor", q.Cursor)
	}
	if q.ViewerID != "" {
		query.Set("currentUserId", q.ViewerID)
	}

	data, err := c.do(ctx, http.MethodGet, "/LoadCreatorVideos", query, nil, "")
	if err != nil {
		return models.FeedPage{}, err
	}
	env, err := decodeFeedEnvelope(data)
	if err != nil {
		return models.FeedPage{}, fmt.Errorf("failed to decode creator feed response: %w", err)
	}

	page := models.FeedPage{Items: make([]models.Video, 0, len(env.Items))}
	for _, v := range env.Items {
		page.Items = append(page.Items, normalizeVideo(v))
	}
	if env.HasMore != nil {
		page.HasMore = *env.HasMore
	}
	if env.NextCursor != nil {
		page.NextCursor = *env.NextCursor
	}
	return page, nil
}

// Like records a like. The response body carries nothing the client needs.
func (c *Client) Like(ctx context.Context, req models.LikeRequest) error {
	_, err := c.postJSON(ctx, "/LikeVideo", req)
	return err
}

// Unlike removes a like via the backend's toggle endpoint.
func (c *Client) Unlike(ctx context.Context, req models.LikeRequest) error {
	_, err := c.postJSON(ctx, "/ToggleLikeVideo", req)
	return err
}

// PostComment submits a comment and returns the raw created-comment echo.
// The echo's shape varies by backend version; the comment loader fills in
// whatever the server leaves blank. A non-JSON 2xx body yields an empty
// record, not an error.
func (c *Client) PostComment(ctx context.Context, req models.CommentRequest) (CommentRecord, error) {
	data, err := c.postJSON(ctx, "/CommentVideo", req)
	if err != nil {
		return CommentRecord{}, err
	}
	var echo CommentRecord
	if err := json.Unmarshal(data, &echo); err != nil {
		return CommentRecord{}, nil
	}
	return echo, nil
}

// ListComments fetches the complete comment set for a video in one call.
// Ordering is the caller's responsibility.
func (c *Client) ListComments(ctx context.Context, videoID string) ([]CommentRecord, error) {
	query := url.Values{}
	query.Set("videoId", videoID)

	data, err := c.do(ctx, http.MethodGet, "/ListVideoComments", query, nil, "")
	if err != nil {
		return nil, err
	}
	rows, err := decodeCommentList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode comment list: %w", err)
	}
	return rows, nil
}
