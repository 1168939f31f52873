package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// MaxUploadBytes is the single-file upload ceiling: 1.95 GB, leaving margin
// under Telegram's 2 GB MTProto limit.
const MaxUploadBytes int64 = 1_950_000_000

// PartCount returns how many parts a file of the given size splits into.
func PartCount(sizeBytes int64) int {
	if sizeBytes <= 0 {
		return 1
	}
	return int((sizeBytes + MaxUploadBytes - 1) / MaxUploadBytes)
}

// Segmenter splits an oversized media file into upload-sized parts.
type Segmenter interface {
	// Split returns the part paths in ascending order. Callers own the
	// returned files.
	Split(ctx context.Context, path string) ([]string, error)
}

// FFmpegSegmenter cuts time-bounded segments with ffmpeg stream copy: no
// re-encoding, so cuts may land off-keyframe, which is acceptable here.
type FFmpegSegmenter struct {
	probe Prober
}

func NewFFmpegSegmenter(probe Prober) *FFmpegSegmenter {
	return &FFmpegSegmenter{probe: probe}
}

func (s *FFmpegSegmenter) Split(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	numParts := PartCount(info.Size())
	duration := s.probe.Duration(ctx, path)
	if duration <= 0 {
		return nil, fmt.Errorf("cannot split %s: unknown duration", path)
	}
	segmentDuration := duration / float64(numParts)

	parts := make([]string, 0, numParts)
	for i := 0; i < numParts; i++ {
		partPath := fmt.Sprintf("%s.part%d.mp4", path, i+1)
		start := float64(i) * segmentDuration

		out, err := exec.CommandContext(ctx, "ffmpeg",
			"-y",
			"-ss", strconv.FormatFloat(start, 'f', 3, 64),
			"-i", path,
			"-t", strconv.FormatFloat(segmentDuration, 'f', 3, 64),
			"-c", "copy",
			"-movflags", "+faststart",
			partPath,
		).CombinedOutput()
		if err != nil {
			// Drop parts already written before reporting.
			for _, p := range parts {
				os.Remove(p)
			}
			os.Remove(partPath)
			return nil, fmt.Errorf("ffmpeg split part %d/%d: %w: %s", i+1, numParts, err, out)
		}
		parts = append(parts, partPath)
	}
	return parts, nil
}
