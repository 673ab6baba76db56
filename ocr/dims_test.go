package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG creates a simple grayscale PNG with a dark rectangle on white.
func testPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestImageSize(t *testing.T) {
	w, h, err := ImageSize(testPNG(120, 80))
	if err != nil {
		t.Fatalf("ImageSize failed: %v", err)
	}
	if w != 120 || h != 80 {
		t.Errorf("Expected 120x80, got %gx%g", w, h)
	}
}

func TestImageSizeBadData(t *testing.T) {
	if _, _, err := ImageSize([]byte("not an image")); err == nil {
		t.Error("Expected error for invalid image data")
	}
}
