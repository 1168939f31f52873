package media

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Telegram renders thumbnails at most 320 on either side.
const thumbnailBound = 320

// ratioTolerance below which two aspect ratios count as already matching.
const ratioTolerance = 0.01

// Thumbnailer produces a local, transport-ready thumbnail from a remote
// image.
type Thumbnailer interface {
	// Normalize returns the path of the prepared thumbnail, or "" with a
	// nil error when url is empty. Callers own the returned file.
	Normalize(ctx context.Context, url, refPath string) (string, error)
}

// Normalizer downloads a thumbnail and reshapes it to match the video it
// accompanies: cropped to the video's aspect ratio, fit into 320x320, JPEG
// quality 95. A mismatched ratio would letterbox the preview card.
type Normalizer struct {
	probe  Prober
	client *http.Client
}

func NewNormalizer(probe Prober) *Normalizer {
	return &Normalizer{probe: probe, client: http.DefaultClient}
}

func (n *Normalizer) Normalize(ctx context.Context, url, refPath string) (string, error) {
	if url == "" {
		return "", nil
	}

	dst := filepath.Join(os.TempDir(), "thumb_"+uuid.NewString()+".jpg")
	if err := n.download(ctx, url, dst); err != nil {
		return "", err
	}

	img, err := imaging.Open(dst)
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("decode thumbnail: %w", err)
	}

	if refPath != "" {
		if refW, refH := n.probe.Dimensions(ctx, refPath); refW > 0 && refH > 0 {
			img = cropToRatio(img, refW, refH)
		}
	}

	img = imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)
	if err := imaging.Save(img, dst, imaging.JPEGQuality(95)); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return dst, nil
}

func (n *Normalizer) download(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build thumbnail request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch thumbnail: status %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create thumbnail file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dst)
		return fmt.Errorf("write thumbnail file: %w", err)
	}
	return nil
}

// cropToRatio center-crops img to the refW:refH aspect ratio. Images whose
// ratio already matches within the tolerance are returned unchanged.
func cropToRatio(img image.Image, refW, refH int) image.Image {
	bounds := img.Bounds()
	imgW, imgH := bounds.Dx(), bounds.Dy()
	if imgW == 0 || imgH == 0 {
		return img
	}

	targetRatio := float64(refW) / float64(refH)
	imageRatio := float64(imgW) / float64(imgH)
	if math.Abs(targetRatio-imageRatio) < ratioTolerance {
		return img
	}

	if imageRatio > targetRatio {
		// Too wide: trim symmetric margins from the sides.
		cropW := int(float64(imgH) * targetRatio)
		return imaging.CropCenter(img, cropW, imgH)
	}
	// Too tall: trim symmetric margins from top and bottom.
	cropH := int(float64(imgW) / targetRatio)
	return imaging.CropCenter(img, imgW, cropH)
}
