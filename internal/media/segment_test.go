package media

import (
	"context"
	"testing"
)

func TestPartCount(t *testing.T) {
	cases := []struct {
		size int64
		want int
	}{
		{1_900_000_000, 1},
		{1_950_000_000, 1},
		{1_950_000_001, 2},
		{2_000_000_000, 2},
		{4_000_000_000, 3},
		{0, 1},
	}
	for _, tc := range cases {
		if got := PartCount(tc.size); got != tc.want {
			t.Errorf("PartCount(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestMaxUploadBytes(t *testing.T) {
	// Margin below Telegram's 2 GB hard limit.
	if MaxUploadBytes != 1_950_000_000 {
		t.Fatalf("MaxUploadBytes = %d", MaxUploadBytes)
	}
}

func TestSplitMissingFile(t *testing.T) {
	s := NewFFmpegSegmenter(FFProbe{})
	if _, err := s.Split(context.Background(), "/nonexistent/video.mp4"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
