// Package extract provides the interchangeable text-extraction engines
// used by the recipe extraction pipeline. Engines never return errors:
// every failure mode degrades to a zero-confidence result with a warning
// so the orchestrator can compare attempts uniformly.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/platewise/backend/internal/domain"
)

const docTextVersion = "1.0.0"

// DocTextEngine extracts text from structured plain-text documents. It is
// the fast primary engine: a direct read with a length-based confidence
// heuristic, since plain documents carry no recognition score of their own.
type DocTextEngine struct{}

// NewDocTextEngine creates the structured-document engine
func NewDocTextEngine() *DocTextEngine {
	return &DocTextEngine{}
}

// Extract reads the file and scores confidence by text length, capped at
// 1.0 for documents of 1000+ characters. Empty or unreadable files score 0.
func (e *DocTextEngine) Extract(ctx context.Context, path string) *domain.ExtractionResult {
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

	data, err := os.ReadFile(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Error extracting text: %v", err))
		return failedResult(e.Name(), start, warnings)
	}

	text := string(data)
	confidence := 0.0
	if text != "" {
		confidence = min(1.0, float64(len(text))/1000)
	}

	return &domain.ExtractionResult{
		Text:           text,
		Confidence:     confidence,
		EngineUsed:     e.Name(),
		ProcessingTime: time.Since(start).Seconds(),
		PageCount:      pageCount(text),
		Warnings:       warnings,
	}
}

func (e *DocTextEngine) Name() string    { return "doctext" }
func (e *DocTextEngine) Version() string { return docTextVersion }

func (e *DocTextEngine) SupportedFormats() []string {
	return []string{".txt", ".text", ".md", ".markdown", ".rst"}
}

func (e *DocTextEngine) Supports(path string) bool {
	return supportsExt(e.SupportedFormats(), path)
}

// pageCount approximates pages by form-feed separators, the convention in
// text renderings of paginated documents. A document is at least one page.
func pageCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\f") + 1
}

// failedResult is the shared zero-confidence shape for every failure mode
func failedResult(engine string, start time.Time, warnings []string) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		Text:           "",
		Confidence:     0.0,
		EngineUsed:     engine,
		ProcessingTime: time.Since(start).Seconds(),
		Warnings:       warnings,
	}
}

// supportsExt checks the file extension against an engine's format set
func supportsExt(formats []string, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if ext == f {
			return true
		}
	}
	return false
}
