package models

import (
	"io"
	"path/filepath"
	"strings"
)

// Upload form defaults.
const (
	DefaultCategory   = "general"
	DefaultVisibility = "public"

	VideoTypeShort    = "short"
	VideoTypeStandard = "standard"

	// ShortMaxSeconds is the duration ceiling for short-format uploads.
	// Slightly above 60 to tolerate container rounding.
	ShortMaxSeconds = 60.5
)

// UploadRequest carries the multipart upload form. File and FileName are
// required; empty Category/Visibility/VideoType fall back to the defaults
// above, and ContentType is inferred from FileName when empty.
type UploadRequest struct {
	File            io.Reader
	FileName        string
	Title           string
	Description     string
	Category        string
	Visibility      string
	MimeType        string
	VideoType       string
	ContentType     string
	CreatorID       string
	DurationSeconds float64
}

// ContentTypeForFile maps a file name to the backend's simple content type
// tag: mov and mkv by extension, mp4 for everything else.
func ContentTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mov":
		return "mov"
	case ".mkv":
		return "mkv"
	default:
		return "mp4"
	}
}
