package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

// Upload walks a creator through publishing a video: source file, title,
// description, and optional category/visibility/duration. A duration at or
// under the short-form threshold marks the video as a short.
func (a *App) Upload(ctx context.Context) error {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Log in first")
		return common.ErrUnauthorized
	}
	if !sess.IsCreator() {
		printlnFn("Only creators can upload videos")
		return common.ErrCreatorOnly
	}

	path, err := getSimpleText(a.reader, "Enter video file path", os.Stdout)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s]", models.DefaultCategory), os.Stdout)
	if err != nil {
		return err
	}
	visibility, err := getSimpleText(a.reader, fmt.Sprintf("Visibility (public/private) [%s]", models.DefaultVisibility), os.Stdout)
	if err != nil {
		return err
	}
	durationText, err := getSimpleText(a.reader, "Duration in seconds (optional)", os.Stdout)
	if err != nil {
		return err
	}

	var duration float64
	if durationText != "" {
		duration, err = strconv.ParseFloat(durationText, 64)
		if err != nil {
			printlnFn("Invalid duration:", durationText)
			return fmt.Errorf("%w: invalid duration %q", common.ErrValidation, durationText)
		}
	}
	videoType := models.VideoTypeStandard
	if duration > 0 && duration <= models.ShortMaxSeconds {
		videoType = models.VideoTypeShort
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot open file:", err.Error())
		return err
	}
	defer file.Close()

	contentType := models.ContentTypeForFile(path)

	msg, err := a.uploader.Upload(ctx, models.UploadRequest{
		File:            file,
		FileName:        file.Name(),
		Title:           title,
		Description:     description,
		Category:        category,
		Visibility:      visibility,
		MimeType:        contentType,
		VideoType:       videoType,
		ContentType:     contentType,
		CreatorID:       sess.ID,
		DurationSeconds: duration,
	})
	if err != nil {
		printlnFn("Upload failed:", err.Error())
		return err
	}

	printlnFn(msg)

	// Force the next own-videos listing to pick up the new upload.
	a.minePager = nil
	return nil
}
