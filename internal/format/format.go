// Package format renders bus payloads into Telegram message text. All
// functions are pure and substitute defaults for missing fields instead of
// failing.
package format

import (
	"fmt"

	"github.com/SunnyXdm/yagami/pkg/schema"
)

// Duration converts seconds to "H:MM:SS" or "M:SS". Zero or negative
// values render as "Unknown".
func Duration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Views compacts a view count: 1_500_000 -> "1.5M", 45_300 -> "45.3K".
// Zero or negative counts render as "N/A". No current message includes
// view counts; kept for producers that send them.
func Views(count int64) string {
	switch {
	case count <= 0:
		return "N/A"
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK", float64(count)/1_000)
	default:
		return fmt.Sprintf("%d", count)
	}
}

// duration prefers a preformatted string from the producer over raw
// seconds.
func duration(p schema.Payload) string {
	if d := p.DurationText(); d != "" {
		return d
	}
	return Duration(p.DurationSeconds())
}

// Watch renders a watch-history notification.
func Watch(p schema.Payload) string {
	return fmt.Sprintf(
		"🎬 `Watched`\n\n%s\nChannel: %s\nDuration: %s\n\n🔗 https://youtube.com/watch?v=%s",
		p.Title(), p.Channel(), duration(p), p.String("video_id"),
	)
}

// Like renders a liked-video notification.
func Like(p schema.Payload) string {
	return fmt.Sprintf(
		"❤️ `Liked`\n\n%s\nChannel: %s\nDuration: %s\n\n⬇️ Downloading for Telegram...",
		p.Title(), p.Channel(), duration(p),
	)
}

// Subscription renders a subscribe or unsubscribe notification depending
// on the payload's action field.
func Subscription(p schema.Payload) string {
	if p.String("action") == "unsubscribed" {
		return fmt.Sprintf("👋 `Unsubscribed from`\n\nChannel: %s", p.Channel())
	}
	return fmt.Sprintf(
		"📺 `Subscribed to`\n\n%s\n\n🔗 https://youtube.com/channel/%s",
		p.Channel(), p.String("channel_id"),
	)
}

// VideoCaption renders the caption attached to an uploaded video.
func VideoCaption(p schema.Payload) string {
	title := p.String("title")
	if title == "" {
		title = "Video"
	}
	return fmt.Sprintf("❤️ %s — %s (%s)", title, p.Channel(), duration(p))
}

// PartCaption renders the caption for one part of a split upload, using
// 1-based display numbering.
func PartCaption(p schema.Payload, part, total int) string {
	return fmt.Sprintf("%s (part %d/%d)", VideoCaption(p), part, total)
}

// DownloadFailed renders the user-visible notice for a failed download.
func DownloadFailed(p schema.Payload) string {
	title := p.String("title")
	if title == "" {
		title = p.VideoID()
	}
	return fmt.Sprintf("❌ Download failed: %s\n%s", title, p.Error())
}

// FileNotFound renders the notice for a download whose file is missing.
func FileNotFound(path string) string {
	return fmt.Sprintf("❌ File not found: %s", path)
}
