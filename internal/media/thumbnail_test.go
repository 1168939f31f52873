package media

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/disintegration/imaging"
)

type fixedProber struct {
	w, h int
	dur  float64
}

func (p fixedProber) Dimensions(context.Context, string) (int, int) { return p.w, p.h }
func (p fixedProber) Duration(context.Context, string) float64      { return p.dur }

func newTestImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func serveImage(t *testing.T, w, h int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "image/png")
		if err := png.Encode(rw, newTestImage(w, h)); err != nil {
			t.Errorf("encode test image: %v", err)
		}
	}))
}

func TestNormalizeEmptyURL(t *testing.T) {
	n := NewNormalizer(fixedProber{})
	path, err := n.Normalize(context.Background(), "", "ref.mp4")
	if err != nil || path != "" {
		t.Fatalf("Normalize(\"\") = (%q, %v), want (\"\", nil)", path, err)
	}
}

func TestNormalizeUnreachableURL(t *testing.T) {
	n := NewNormalizer(fixedProber{})
	if _, err := n.Normalize(context.Background(), "http://127.0.0.1:1/thumb.jpg", ""); err == nil {
		t.Fatalf("expected error for unreachable url")
	}
}

func TestNormalizeCropsToReferenceRatio(t *testing.T) {
	srv := serveImage(t, 400, 300) // 4:3 thumbnail
	defer srv.Close()

	n := NewNormalizer(fixedProber{w: 1920, h: 1080}) // 16:9 video
	path, err := n.Normalize(context.Background(), srv.URL, "ref.mp4")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	defer os.Remove(path)

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	b := img.Bounds()
	ratio := float64(b.Dx()) / float64(b.Dy())
	if math.Abs(ratio-16.0/9.0) > 0.02 {
		t.Errorf("result ratio %.3f, want within 0.02 of 16:9", ratio)
	}
	if b.Dx() > 320 || b.Dy() > 320 {
		t.Errorf("result exceeds 320 bound: %dx%d", b.Dx(), b.Dy())
	}
}

func TestNormalizeWithoutReference(t *testing.T) {
	srv := serveImage(t, 1280, 720)
	defer srv.Close()

	n := NewNormalizer(fixedProber{}) // probe yields no dimensions
	path, err := n.Normalize(context.Background(), srv.URL, "ref.mp4")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	defer os.Remove(path)

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("got %dx%d, want 320x180", b.Dx(), b.Dy())
	}
}

func TestCropToRatioWiderImage(t *testing.T) {
	// 2:1 image cropped down to 16:9.
	result := cropToRatio(newTestImage(800, 400), 1920, 1080)
	b := result.Bounds()
	ratio := float64(b.Dx()) / float64(b.Dy())
	if math.Abs(ratio-16.0/9.0) > 0.02 {
		t.Errorf("ratio %.3f, want ~16:9", ratio)
	}
	if b.Dy() != 400 {
		t.Errorf("height changed on a side crop: %d", b.Dy())
	}
}

func TestCropToRatioTallerImage(t *testing.T) {
	result := cropToRatio(newTestImage(200, 400), 1920, 1080)
	b := result.Bounds()
	ratio := float64(b.Dx()) / float64(b.Dy())
	if math.Abs(ratio-16.0/9.0) > 0.02 {
		t.Errorf("ratio %.3f, want ~16:9", ratio)
	}
	if b.Dx() != 200 {
		t.Errorf("width changed on a vertical crop: %d", b.Dx())
	}
}

func TestCropToRatioAlreadyMatching(t *testing.T) {
	img := newTestImage(320, 180) // already 16:9
	result := cropToRatio(img, 1920, 1080)
	if b := result.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("matching image modified: %dx%d", b.Dx(), b.Dy())
	}
}
