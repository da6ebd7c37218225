package extract

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platewise/backend/internal/domain"
)

func writeTempPNG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImageOCRExtract(t *testing.T) {
	engine := NewImageOCREngine()
	path := writeTempPNG(t, "recipe.png")

	result := engine.Extract(context.Background(), path)

	if result.EngineUsed != "imageocr" {
		t.Errorf("EngineUsed = %q", result.EngineUsed)
	}
	if result.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want the flat 0.7", result.Confidence)
	}
	if result.Text == "" {
		t.Error("Text is empty")
	}
	if result.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", result.PageCount)
	}
}

func TestImageOCRMissingFile(t *testing.T) {
	engine := NewImageOCREngine()

	result := engine.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"))

	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "File not found") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestImageOCRUndecodableFile(t *testing.T) {
	// A .png extension on non-image bytes degrades to zero confidence,
	// never an error
	engine := NewImageOCREngine()
	path := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := engine.Extract(context.Background(), path)

	if result.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", result.Confidence)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Error extracting text") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestImageOCRSupports(t *testing.T) {
	engine := NewImageOCREngine()

	for _, path := range []string{"a.jpg", "a.jpeg", "a.png", "a.GIF"} {
		if !engine.Supports(path) {
			t.Errorf("Supports(%q) = false, want true", path)
		}
	}
	for _, path := range []string{"a.txt", "a.pdf", "a"} {
		if engine.Supports(path) {
			t.Errorf("Supports(%q) = true, want false", path)
		}
	}
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		kind     string
		wantName string
	}{
		{"doctext", "doctext"},
		{"imageocr", "imageocr"},
	}

	for _, tt := range tests {
		engine, err := NewEngine(tt.kind)
		if err != nil {
			t.Fatalf("NewEngine(%q): %v", tt.kind, err)
		}
		if engine.Name() != tt.wantName {
			t.Errorf("Name() = %q, want %q", engine.Name(), tt.wantName)
		}
	}

	_, err := NewEngine("tesseract")
	if !errors.Is(err, domain.ErrUnsupportedEngine) {
		t.Errorf("error = %v, want ErrUnsupportedEngine", err)
	}
}
