//go:build ocr

package ocr

import (
	"testing"
)

func TestNew(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestDetectWords(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	pngData := testPNG(100, 50)

	// The test image is a bare rectangle, so no words are expected; this
	// only verifies the adapter runs and keeps confidences in range.
	detections, err := client.DetectWords(pngData)
	if err != nil {
		t.Fatalf("DetectWords failed: %v", err)
	}
	for _, d := range detections {
		if d.Text == "" {
			t.Error("Empty detection text should have been dropped")
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			t.Errorf("Confidence %f outside [0, 1]", d.Confidence)
		}
	}
}

func TestSetLanguage(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	// English should always be available
	err = client.SetLanguage("eng")
	if err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}

	// First close should succeed
	err = client.Close()
	if err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Second close should also be safe (nil client)
	client.client = nil
	err = client.Close()
	if err != nil {
		t.Errorf("Close on nil client failed: %v", err)
	}
}
