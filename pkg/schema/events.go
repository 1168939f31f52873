// Package schema defines the JSON payloads exchanged over the bus.
//
// The producers of these payloads are not controlled by this service and
// have drifted across revisions (success flag vs. status string, channel
// vs. channel_title, duration string vs. duration_seconds). Payload keeps
// the fallback rule for each field in exactly one place.
package schema

import (
	"encoding/json"
)

// Subjects consumed and produced by the bridge.
const (
	SubjectWatch            = "youtube.watch"
	SubjectLikes            = "youtube.likes"
	SubjectSubscriptions    = "youtube.subscriptions"
	SubjectDownloadComplete = "download.complete"
	SubjectHealth           = "system.health"
	SubjectDownloadRequest  = "download.request"
)

// DownloadRequest is published on download.request when the admin sends a
// video link. The downloader forwards requester_chat_id back on
// download.complete so the upload returns to the requester.
type DownloadRequest struct {
	VideoID         string `json:"video_id"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	RequesterChatID int64  `json:"requester_chat_id,omitempty"`
}

// Payload is an untyped bus message body. Accessors absorb producer schema
// drift and substitute defaults; they never fail.
type Payload map[string]any

// ParsePayload decodes a raw bus message body.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// String returns the value under key if it is a string, "" otherwise.
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Int64 returns the value under key as an integer. JSON numbers decode as
// float64; producers using json.Number are accepted too.
func (p Payload) Int64(key string) int64 {
	switch v := p[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Title returns the video title, defaulting to "Unknown".
func (p Payload) Title() string {
	if t := p.String("title"); t != "" {
		return t
	}
	return "Unknown"
}

// Channel returns the channel name from either field name a producer might
// send.
func (p Payload) Channel() string {
	if c := p.String("channel_title"); c != "" {
		return c
	}
	if c := p.String("channel"); c != "" {
		return c
	}
	return "Unknown"
}

// DurationSeconds returns the duration in whole seconds, 0 when unknown.
func (p Payload) DurationSeconds() int {
	return int(p.Int64("duration_seconds"))
}

// DurationText returns a preformatted duration string when the producer
// sent one, "" otherwise.
func (p Payload) DurationText() string {
	return p.String("duration")
}

// Success reports whether a completed-download payload succeeded. The
// downloader emits a "success" bool; older revisions emitted a "status"
// string.
func (p Payload) Success() bool {
	if v, ok := p["success"].(bool); ok {
		return v
	}
	switch p.String("status") {
	case "success", "completed", "ok":
		return true
	}
	return false
}

// Error returns the failure reason, defaulting to "Unknown error".
func (p Payload) Error() string {
	if e := p.String("error"); e != "" {
		return e
	}
	return "Unknown error"
}

// ThumbnailURL returns the remote thumbnail location under either key.
func (p Payload) ThumbnailURL() string {
	if u := p.String("thumbnail"); u != "" {
		return u
	}
	return p.String("thumbnail_url")
}

// RequesterChatID returns the chat that requested an admin download, 0 for
// poller-initiated downloads.
func (p Payload) RequesterChatID() int64 {
	return p.Int64("requester_chat_id")
}

// VideoID returns the video identifier, defaulting to "unknown".
func (p Payload) VideoID() string {
	if id := p.String("video_id"); id != "" {
		return id
	}
	return "unknown"
}

// FilePath returns the downloaded file location, "" when absent.
func (p Payload) FilePath() string {
	return p.String("file_path")
}
