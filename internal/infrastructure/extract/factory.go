package extract

import (
	"fmt"
	"log"

	"github.com/platewise/backend/internal/domain"
)

// NewEngine creates a text-extraction engine by configuration key
func NewEngine(kind string) (domain.TextExtractor, error) {
	log.Printf("[Extract] Creating extraction engine: %s", kind)

	switch kind {
	case "doctext":
		return NewDocTextEngine(), nil
	case "imageocr":
		return NewImageOCREngine(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedEngine, kind)
	}
}
