// Package media implements the delivery pipeline for completed downloads:
// probing, thumbnail normalization, segmentation and upload, with
// unconditional cleanup of every temporary file.
package media

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Prober reports media metadata. Implementations never fail: unknown
// metadata comes back as zero values and the upload proceeds without it.
type Prober interface {
	// Dimensions returns the pixel width and height, (0, 0) when unknown.
	Dimensions(ctx context.Context, path string) (int, int)
	// Duration returns the duration in seconds, 0 when unknown.
	Duration(ctx context.Context, path string) float64
}

// FFProbe probes files with the external ffprobe tool.
type FFProbe struct{}

func (FFProbe) Dimensions(ctx context.Context, path string) (int, int) {
	if path == "" {
		return 0, 0
	}
	if _, err := os.Stat(path); err != nil {
		return 0, 0
	}

	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	).Output()
	if err != nil {
		return 0, 0
	}

	// Output is "WIDTHxHEIGHT", e.g. "1920x1080".
	parts := strings.SplitN(strings.TrimSpace(string(out)), "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil {
		return 0, 0
	}
	return w, h
}

func (FFProbe) Duration(ctx context.Context, path string) float64 {
	if path == "" {
		return 0
	}
	if _, err := os.Stat(path); err != nil {
		return 0
	}

	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return d
}
