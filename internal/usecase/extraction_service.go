package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/platewise/backend/internal/domain"
)

// fallbackThreshold is the confidence below which the primary result is
// considered weak enough to try the fallback engine. Confidence scales
// are engine-specific; comparing them across engine families is a known
// simplification that only applies within a single extraction attempt.
const fallbackThreshold = 0.5

// ExtractionService coordinates the extraction engines and the language
// model provider into one extract-a-recipe-from-a-file operation. There
// is no fatal path: every sub-step degrades to a usable-but-flagged
// output rather than aborting. No retries, no internal timeouts; the
// provider transport's timeout is the only guard against a hung call.
type ExtractionService struct {
	primary  domain.TextExtractor
	fallback domain.TextExtractor // nil disables the fallback hop
	provider domain.LLMProvider
}

// NewExtractionService creates the orchestrator. fallback may be nil.
func NewExtractionService(primary, fallback domain.TextExtractor, provider domain.LLMProvider) *ExtractionService {
	fallbackName := "no fallback"
	if fallback != nil {
		fallbackName = fallback.Name()
	}
	log.Printf("[Extract] Initialized extraction service with %s and %s", primary.Name(), fallbackName)

	return &ExtractionService{
		primary:  primary,
		fallback: fallback,
		provider: provider,
	}
}

// ExtractRecipe runs the pipeline: primary engine, one fallback hop when
// confidence is low, a quality assessment that only augments warnings,
// then structuring. The chosen result's text always flows through, even
// at zero confidence — degraded output is flagged, never discarded.
func (s *ExtractionService) ExtractRecipe(ctx context.Context, path, userNotes string) *domain.RecipeExtraction {
	start := time.Now()
	var warnings []string

	log.Printf("[Extract] Extracting recipe from %s", path)

	result := s.primary.Extract(ctx, path)

	if result.Confidence < fallbackThreshold && s.fallback != nil {
		warnings = append(warnings, fmt.Sprintf(
			"Primary engine (%s) produced low confidence result (%.2f). Trying fallback engine.",
			s.primary.Name(), result.Confidence,
		))

		fallbackResult := s.fallback.Extract(ctx, path)

		if fallbackResult.Confidence > result.Confidence {
			warnings = append(warnings, fmt.Sprintf(
				"Using fallback engine (%s) with confidence %.2f",
				s.fallback.Name(), fallbackResult.Confidence,
			))
			result = fallbackResult
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"Fallback engine (%s) produced lower confidence result (%.2f). Using primary result.",
				s.fallback.Name(), fallbackResult.Confidence,
			))
		}
	}

	// The assessment never changes which result was chosen; it only
	// contributes warnings.
	assessment := s.provider.EvaluateQuality(ctx, result.Text, result.Confidence)
	warnings = append(warnings, assessment.DetectedIssues...)

	recipe := s.provider.StructureRecipe(ctx, result.Text, userNotes)
	recipe.SourceFile = path

	return &domain.RecipeExtraction{
		Recipe:         recipe,
		Result:         result,
		ProcessingTime: time.Since(start).Seconds(),
		Warnings:       warnings,
	}
}
