package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clipstream/clipstream/internal/client/models"
	"github.com/clipstream/clipstream/internal/common"
)

func TestUpload_LocalValidationBeforeNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	cases := []struct {
		name string
		req  models.UploadRequest
	}{
		{"no file", models.UploadRequest{Title: "t"}},
		{"no title", models.UploadRequest{File: strings.NewReader("x"), FileName: "a.mp4"}},
		{"short too long", models.UploadRequest{
			File: strings.NewReader("x"), FileName: "a.mp4", Title: "t",
			VideoType: models.VideoTypeShort, DurationSeconds: 75,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Upload(context.Background(), tc.req)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
	require.False(t, called)
}

func TestUpload_StandardVideoSkipsDurationRule(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"queued"}`))
	})

	msg, err := c.Upload(context.Background(), models.UploadRequest{
		File: strings.NewReader("x"), FileName: "long.mp4", Title: "t",
		VideoType: models.VideoTypeStandard, DurationSeconds: 600,
	})
	require.NoError(t, err)
	require.Equal(t, "queued", msg)
}

func TestUpload_MultipartFieldsAndDefaults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "My clip", r.FormValue("title"))
		require.Equal(t, "about it", r.FormValue("description"))
		require.Equal(t, models.DefaultCategory, r.FormValue("category"))
		require.Equal(t, models.DefaultVisibility, r.FormValue("visibility"))
		require.Equal(t, models.VideoTypeShort, r.FormValue("video_type"))
		require.Equal(t, "mov", r.FormValue("type"))
		require.Equal(t, "c1", r.FormValue("creatorId"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "clip.mov", header.Filename)

		_, _ = w.Write([]byte(`{"message":"Video uploaded"}`))
	})

	msg, err := c.Upload(context.Background(), models.UploadRequest{
		File:        strings.NewReader("binary-bytes"),
		FileName:    "clip.mov",
		Title:       "My clip",
		Description: "about it",
		CreatorID:   "c1",
	})
	require.NoError(t, err)
	require.Equal(t, "Video uploaded", msg)
}

func TestContentTypeForFile(t *testing.T) {
	require.Equal(t, "mov", models.ContentTypeForFile("a.MOV"))
	require.Equal(t, "mkv", models.ContentTypeForFile("b.mkv"))
	require.Equal(t, "mp4", models.ContentTypeForFile("c.mp4"))
	require.Equal(t, "mp4", models.ContentTypeForFile("noext"))
}
