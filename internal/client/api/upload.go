package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

// Upload posts a video as multipart/form-data and returns the backend's
// confirmation message. Local validation runs before any network traffic:
// a file and a title are required, and short-format videos whose duration
// is known must fit the short ceiling.
func (c *Client) Upload(ctx context.Context, req models.UploadRequest) (string, error) {
	if req.File == nil {
		return "", fmt.Errorf("%w: no video file selected", common.ErrValidation)
	}
	if req.Title == "" {
		return "", fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if req.Category == "" {
		req.Category = models.DefaultCategory
	}
	if req.Visibility == "" {
		req.Visibility = models.DefaultVisibility
	}
	if req.VideoType == "" {
		req.VideoType = models.VideoTypeShort
	}
	if req.ContentType == "" {
		req.ContentType = models.ContentTypeForFile(req.FileName)
	}
	if req.MimeType == "" {
		req.MimeType = "mp4"
	}
	if req.VideoType == models.VideoTypeShort && req.DurationSeconds > models.ShortMaxSeconds {
		return "", fmt.Errorf("%w: short videos must be 60 seconds or less", common.ErrValidation)
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", req.FileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return "", fmt.Errorf("failed to read video file: %w", err)
	}

	fields := map[string]string{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"visibility":  req.Visibility,
		"mime_type":   req.MimeType,
		"video_type":  req.VideoType,
		"type":        req.ContentType,
	}
	if req.CreatorID != "" {
		fields["creatorId"] = req.CreatorID
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	data, err := c.do(ctx, http.MethodPost, "/uploadVideo", nil, body, form.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Message == "" {
		return "video uploaded", nil
	}
	return resp.Message, nil
}
