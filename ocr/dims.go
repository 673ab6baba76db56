package ocr

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders for the image formats identity documents
	// arrive in, so dimensions can be read without OCR support.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageSize reads the pixel dimensions of an image without decoding it.
// Extraction strategies that use relative positions need them alongside the
// detections.
func ImageSize(imageData []byte) (width, height float64, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}
