package extract

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/platewise/backend/internal/domain"
)

const (
	imageOCRVersion = "0.1.0"

	// imageOCRConfidence is the flat score reported for a successfully
	// decoded image. The recognition backend does not expose a real
	// per-image score yet.
	imageOCRConfidence = 0.7
)

// ImageOCREngine extracts text from photographed or scanned recipes. It is
// the slower fallback engine. The recognition step is a placeholder until
// a real OCR backend is plugged in; it validates that the file decodes as
// an image and reports the flat placeholder confidence.
type ImageOCREngine struct{}

// NewImageOCREngine creates the image fallback engine
func NewImageOCREngine() *ImageOCREngine {
	return &ImageOCREngine{}
}

func (e *ImageOCREngine) Extract(ctx context.Context, path string) *domain.ExtractionResult {
	start := time.Now()
	var warnings []string

	if _, err := os.Stat(path); err != nil {
		warnings = append(warnings, fmt.Sprintf("File not found: %s", path))
		return failedResult(e.Name(), start, warnings)
	}

	if !e.Supports(path) {
		warnings = append(warnings, fmt.Sprintf("Unsupported file format: %s", filepath.Ext(path)))
		return failedResult(e.Name(), start, warnings)
	}

	f, err := os.Open(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Error extracting text: %v", err))
		return failedResult(e.Name(), start, warnings)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		warnings = append(warnings, fmt.Sprintf("Error extracting text: %v", err))
		return failedResult(e.Name(), start, warnings)
	}

	// TODO(imageocr): replace with a real recognition call once an OCR
	// backend is chosen; Tesseract over a local socket is the candidate.
	text := fmt.Sprintf("[Recognized text for %s]", filepath.Base(path))

	return &domain.ExtractionResult{
		Text:           text,
		Confidence:     imageOCRConfidence,
		EngineUsed:     e.Name(),
		ProcessingTime: time.Since(start).Seconds(),
		PageCount:      1,
		Warnings:       warnings,
	}
}

func (e *ImageOCREngine) Name() string    { return "imageocr" }
func (e *ImageOCREngine) Version() string { return imageOCRVersion }

func (e *ImageOCREngine) SupportedFormats() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif"}
}

func (e *ImageOCREngine) Supports(path string) bool {
	return supportsExt(e.SupportedFormats(), path)
}
