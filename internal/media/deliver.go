package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SunnyXdm/yagami/internal/format"
	"github.com/SunnyXdm/yagami/internal/telegram"
	"github.com/SunnyXdm/yagami/pkg/schema"
)

// Deliverer turns a completed-download event into one or more Telegram
// uploads. Each invocation exclusively owns the event's file and every
// artifact derived from it; all of them are gone when Deliver returns,
// whatever the outcome.
type Deliverer struct {
	transport telegram.Transport
	probe     Prober
	thumbs    Thumbnailer
	segmenter Segmenter
	log       *slog.Logger
}

func NewDeliverer(transport telegram.Transport, probe Prober, thumbs Thumbnailer, segmenter Segmenter, log *slog.Logger) *Deliverer {
	return &Deliverer{
		transport: transport,
		probe:     probe,
		thumbs:    thumbs,
		segmenter: segmenter,
		log:       log,
	}
}

// Deliver uploads the downloaded video to the requester's chat when the
// download was admin-initiated, otherwise to defaultChatID. Transport
// errors surface to the caller, but only after cleanup has run.
func (d *Deliverer) Deliver(ctx context.Context, p schema.Payload, defaultChatID int64) error {
	target := p.RequesterChatID()
	if target == 0 {
		target = defaultChatID
	}
	videoID := p.VideoID()

	if !p.Success() {
		d.log.Error("download failed", "video_id", videoID, "error", p.Error())
		return d.transport.SendMessage(ctx, target, format.DownloadFailed(p))
	}

	path := p.FilePath()
	info, err := os.Stat(path)
	if path == "" || err != nil {
		d.log.Error("file missing after download", "video_id", videoID, "path", path)
		return d.transport.SendMessage(ctx, target, format.FileNotFound(path))
	}
	size := info.Size()
	d.log.Info("uploading video", "video_id", videoID, "size_mb", float64(size)/(1<<20), "chat_id", target)

	width, height := d.probe.Dimensions(ctx, path)
	duration := int(d.probe.Duration(ctx, path))

	thumbPath := ""
	if url := p.ThumbnailURL(); url != "" {
		tp, err := d.thumbs.Normalize(ctx, url, path)
		if err != nil {
			d.log.Warn("thumbnail preparation failed", "video_id", videoID, "err", err)
		} else {
			thumbPath = tp
		}
	}

	defer func() {
		d.remove(path)
		d.remove(thumbPath)
	}()

	if size <= MaxUploadBytes {
		err := d.transport.SendVideo(ctx, target, path, telegram.VideoOptions{
			Caption:           format.VideoCaption(p),
			ThumbPath:         thumbPath,
			Width:             width,
			Height:            height,
			DurationSeconds:   duration,
			SupportsStreaming: true,
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", videoID, err)
		}
		d.log.Info("uploaded video", "video_id", videoID)
		return nil
	}

	parts, err := d.segmenter.Split(ctx, path)
	if err != nil {
		return fmt.Errorf("split %s: %w", videoID, err)
	}
	total := len(parts)
	d.log.Info("file exceeds upload ceiling, split into parts", "video_id", videoID, "parts", total)

	// Parts upload strictly in order. Each part is removed right after its
	// own attempt so peak disk usage stays bounded.
	for i, partPath := range parts {
		partW, partH := d.probe.Dimensions(ctx, partPath)
		if partW == 0 || partH == 0 {
			partW, partH = width, height
		}
		partDuration := int(d.probe.Duration(ctx, partPath))
		if partDuration == 0 {
			partDuration = duration
		}

		err := d.transport.SendVideo(ctx, target, partPath, telegram.VideoOptions{
			Caption:           format.PartCaption(p, i+1, total),
			ThumbPath:         thumbPath,
			Width:             partW,
			Height:            partH,
			DurationSeconds:   partDuration,
			SupportsStreaming: true,
		})
		d.remove(partPath)
		if err != nil {
			for _, rest := range parts[i+1:] {
				d.remove(rest)
			}
			return fmt.Errorf("upload part %d/%d of %s: %w", i+1, total, videoID, err)
		}
		d.log.Info("uploaded part", "video_id", videoID, "part", i+1, "total", total)
	}
	d.log.Info("uploaded all parts", "video_id", videoID, "parts", total)
	return nil
}

// remove deletes a file best-effort. Cleanup never masks the upload
// outcome.
func (d *Deliverer) remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		d.log.Warn("could not delete file", "path", path, "err", err)
	}
}
