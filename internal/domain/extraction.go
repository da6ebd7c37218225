package domain

// ExtractionResult is the output of one text-extraction attempt. It is
// immutable once produced. Extraction failures are data, not errors: a
// failed attempt is a zero-confidence result with a descriptive warning,
// so the orchestrator can compare attempts uniformly.
type ExtractionResult struct {
	Text           string   `json:"text"`
	Confidence     float64  `json:"confidence"` // 0..1, engine-specific scale
	EngineUsed     string   `json:"engine_used"`
	ProcessingTime float64  `json:"processing_time"` // seconds
	PageCount      int      `json:"page_count,omitempty"`
	Warnings       []string `json:"warnings"`
}

// RecommendedAction is the language model's suggestion for what to do with
// an extraction result.
type RecommendedAction string

const (
	ActionUseResult            RecommendedAction = "use_result"
	ActionRetryDifferentEngine RecommendedAction = "retry_with_different_engine"
	ActionManualEntry          RecommendedAction = "manual_entry"
)

// QualityAssessment is the language model's judgement of extracted text.
// It is produced transiently during extraction and never persisted.
type QualityAssessment struct {
	QualityScore      float64           `json:"quality_score"`
	IsRecipeContent   bool              `json:"is_recipe_content"`
	DetectedIssues    []string          `json:"detected_issues"`
	RecommendedAction RecommendedAction `json:"recommended_action"`
}

// RecipeExtraction bundles everything produced by one extract-a-recipe
// operation: the structured recipe, the winning extraction result, total
// elapsed time, and every warning accumulated along the way.
type RecipeExtraction struct {
	Recipe         *Recipe           `json:"recipe"`
	Result         *ExtractionResult `json:"extraction_result"`
	ProcessingTime float64           `json:"processing_time"`
	Warnings       []string          `json:"warnings"`
}
