package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// TransportError reports a failed backend call: a non-2xx response or a
// network-level failure (StatusCode 0). Message carries the server-provided
// text and is what the user sees.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend error: %s", http.StatusText(e.StatusCode))
	}
	return "backend error"
}

// messageFromBody extracts the failure message from an error response body.
// JSON objects with a "message" or "error" string field yield that field;
// anything else is surfaced as raw text.
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return trimmed
}
