package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/platewise/backend/internal/domain"
)

// Provider implements domain.LLMProvider over any TextGenerator. Every
// operation resolves locally to a well-formed value: malformed model
// output and transport failures alike map to the operation's fixed
// fallback payload, never to an error.
type Provider struct {
	generator domain.TextGenerator
	name      string
	model     string
}

// NewProvider creates a provider over the given transport
func NewProvider(generator domain.TextGenerator, name, model string) *Provider {
	log.Printf("[LLM] Initialized provider %s with model %s", name, model)
	return &Provider{
		generator: generator,
		name:      name,
		model:     model,
	}
}

func (p *Provider) Name() string  { return p.name }
func (p *Provider) Model() string { return p.model }

// extractJSON carves the first '{' through the last '}' out of a model
// reply and returns it when both exist in order. The model habitually
// wraps its JSON in prose, so this best-effort slice is deliberately
// permissive. Known limitation: unbalanced braces inside string values
// break the carve; the fallback-on-failure behavior covers that case.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// truncate shortens source text for embedding in fallback notes
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// EvaluateQuality asks the model to judge extracted text. On any failure
// the assessment degrades to "use the result as-is" with the engine's own
// confidence carried through as the quality score.
func (p *Provider) EvaluateQuality(ctx context.Context, text string, confidence float64) *domain.QualityAssessment {
	prompt := fmt.Sprintf(`Evaluate the quality of the following extracted text. The extraction engine reported a confidence score of %.2f.

TEXT:
%s

Analyze the text and provide a JSON response with the following fields:
- quality_score: A float between 0 and 1 representing the overall quality
- is_recipe_content: A boolean indicating if this appears to be recipe content
- detected_issues: A list of strings describing any detected issues
- recommended_action: One of ["use_result", "retry_with_different_engine", "manual_entry"]

JSON response:`, confidence, text)

	fallback := func(issue string) *domain.QualityAssessment {
		return &domain.QualityAssessment{
			QualityScore:      confidence,
			IsRecipeContent:   true,
			DetectedIssues:    []string{issue},
			RecommendedAction: domain.ActionUseResult,
		}
	}

	response, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLM] Error evaluating quality: %v", err)
		return fallback(fmt.Sprintf("Error: %v", err))
	}

	raw, ok := extractJSON(response)
	if !ok {
		return fallback("Failed to parse LLM response")
	}

	var qa domain.QualityAssessment
	if err := json.Unmarshal([]byte(raw), &qa); err != nil {
		return fallback("Failed to parse LLM response")
	}

	return &qa
}

// structuredRecipe is the JSON shape the model is asked for when
// structuring free text into a recipe
type structuredRecipe struct {
	Title               string                    `json:"title"`
	Ingredients         []domain.RecipeIngredient `json:"ingredients"`
	Instructions        []string                  `json:"instructions"`
	MealTypes           []string                  `json:"meal_types"`
	PrepTimeMinutes     *int                      `json:"prep_time_minutes"`
	CookTimeMinutes     *int                      `json:"cook_time_minutes"`
	Servings            *int                      `json:"servings"`
	Tags                []string                  `json:"tags"`
	DietaryRestrictions []string                  `json:"dietary_restrictions"`
}

// StructureRecipe turns extracted text into a recipe record. Parse
// failures yield a placeholder recipe titled "Extraction Failed";
// transport failures yield "Extraction Error". Both embed the head of the
// source text in the notes so nothing is silently lost.
func (p *Provider) StructureRecipe(ctx context.Context, text, userNotes string) *domain.Recipe {
	notesSection := ""
	if userNotes != "" {
		notesSection = fmt.Sprintf("USER NOTES: %s\n\n", userNotes)
	}

	prompt := fmt.Sprintf(`Extract and structure a recipe from the following text.

TEXT:
%s

%sAnalyze the text and provide a JSON response with the following fields:
- title: The recipe title
- ingredients: A list of ingredients (strings)
- instructions: A list of steps (strings)
- meal_types: A list of meal types (breakfast, lunch, dinner, snack, dessert)
- prep_time_minutes: Preparation time in minutes (integer, optional)
- cook_time_minutes: Cooking time in minutes (integer, optional)
- servings: Number of servings (integer, optional)
- tags: A list of tags (strings, optional)
- dietary_restrictions: A list of dietary restrictions (strings, optional)

JSON response:`, text, notesSection)

	response, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLM] Error structuring recipe: %v", err)
		recipe := domain.NewRecipe("Extraction Error")
		recipe.Ingredients = []domain.RecipeIngredient{{Raw: "Extraction error"}}
		recipe.Instructions = []string{fmt.Sprintf("Error: %v", err)}
		recipe.Notes = fmt.Sprintf("Original text: %s...", truncate(text, 100))
		return recipe
	}

	raw, ok := extractJSON(response)
	if ok {
		var sr structuredRecipe
		if err := json.Unmarshal([]byte(raw), &sr); err == nil {
			recipe := domain.NewRecipe(sr.Title)
			if recipe.Title == "" {
				recipe.Title = "Untitled Recipe"
			}
			recipe.Ingredients = sr.Ingredients
			recipe.Instructions = sr.Instructions
			recipe.MealTypes = sr.MealTypes
			recipe.PrepTimeMinutes = sr.PrepTimeMinutes
			recipe.CookTimeMinutes = sr.CookTimeMinutes
			recipe.Servings = sr.Servings
			recipe.Tags = sr.Tags
			recipe.DietaryRestrictions = sr.DietaryRestrictions
			recipe.Notes = userNotes
			return recipe
		}
	}

	recipe := domain.NewRecipe("Extraction Failed")
	recipe.Ingredients = []domain.RecipeIngredient{{Raw: "Extraction failed"}}
	recipe.Instructions = []string{"Could not extract recipe from text"}
	recipe.Notes = fmt.Sprintf("Original text: %s...", truncate(text, 100))
	return recipe
}

// recipeSummary is the lightweight view of a recipe sent to the model for
// planning: full records would blow the context window for no gain.
type recipeSummary struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	MealTypes           []string `json:"meal_types"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	PrepTimeMinutes     *int     `json:"prep_time_minutes"`
	CookTimeMinutes     *int     `json:"cook_time_minutes"`
}

// GenerateMealPlan asks the model for a day-by-day plan over the
// available recipes. The reply is returned as-is: referenced recipe IDs
// are not checked against the available set. On failure the data carries
// an error/message pair the caller must treat as a failed generation.
func (p *Provider) GenerateMealPlan(ctx context.Context, prefs *domain.UserPreferences, recipes []*domain.Recipe, goal domain.NutritionGoal, days int) *domain.MealPlanData {
	summaries := make([]recipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, recipeSummary{
			ID:                  r.ID.String(),
			Title:               r.Title,
			MealTypes:           r.MealTypes,
			DietaryRestrictions: r.DietaryRestrictions,
			PrepTimeMinutes:     r.PrepTimeMinutes,
			CookTimeMinutes:     r.CookTimeMinutes,
		})
	}

	prefsJSON, _ := json.MarshalIndent(prefs, "", "  ")
	summariesJSON, _ := json.MarshalIndent(summaries, "", "  ")

	goalText := string(goal)
	if goalText == "" {
		goalText = "None"
	}

	prompt := fmt.Sprintf(`Generate a meal plan based on the following information:

USER PREFERENCES:
%s

NUTRITION GOAL: %s

DAYS: %d

AVAILABLE RECIPES:
%s

Create a meal plan that satisfies the user's preferences and nutrition goals.
Provide a JSON response with the following fields:
- days: A list of day objects, each with:
  - date: Date in YYYY-MM-DD format
  - breakfast: Recipe ID for breakfast (or null)
  - lunch: Recipe ID for lunch (or null)
  - dinner: Recipe ID for dinner (or null)
  - snacks: List of recipe IDs for snacks (or empty list)
- grocery_items: A list of grocery items, each with:
  - name: Item name
  - quantity: Quantity
  - unit: Unit of measurement
  - recipe_ids: List of recipe IDs that use this item
  - category: Category (e.g., "Produce", "Dairy", etc.)
- total_cost: Estimated total cost (optional)
- nutrition_summary: Summary of nutritional information (optional)

JSON response:`, prefsJSON, goalText, days, summariesJSON)

	response, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLM] Error generating meal plan: %v", err)
		return &domain.MealPlanData{
			Error:   err.Error(),
			Message: "Could not generate meal plan",
		}
	}

	raw, ok := extractJSON(response)
	if !ok {
		return &domain.MealPlanData{
			Error:   "Failed to parse LLM response",
			Message: "Could not generate meal plan",
		}
	}

	var data domain.MealPlanData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return &domain.MealPlanData{
			Error:   "Failed to parse LLM response",
			Message: "Could not generate meal plan",
		}
	}

	return &data
}

// AnalyzeNutrition estimates the per-serving nutrition of a recipe. The
// fallback is an assessment with every field null.
func (p *Provider) AnalyzeNutrition(ctx context.Context, recipe *domain.Recipe) *domain.NutritionInfo {
	ingredients := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, ing.Display())
	}
	ingredientsJSON, _ := json.MarshalIndent(ingredients, "", "  ")

	servings := "Unknown"
	if recipe.Servings != nil {
		servings = fmt.Sprintf("%d", *recipe.Servings)
	}

	prompt := fmt.Sprintf(`Analyze the nutritional content of the following recipe:

RECIPE: %s

INGREDIENTS:
%s

SERVINGS: %s

Estimate the nutritional content per serving and provide a JSON response with the following fields:
- calories: Calories per serving (integer)
- protein_grams: Protein in grams (float)
- carbs_grams: Carbohydrates in grams (float)
- fat_grams: Fat in grams (float)
- fiber_grams: Fiber in grams (float)
- sugar_grams: Sugar in grams (float)
- sodium_mg: Sodium in milligrams (integer)
- cholesterol_mg: Cholesterol in milligrams (integer)

JSON response:`, recipe.Title, ingredientsJSON, servings)

	response, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[LLM] Error analyzing nutrition: %v", err)
		return &domain.NutritionInfo{}
	}

	raw, ok := extractJSON(response)
	if !ok {
		return &domain.NutritionInfo{}
	}

	var info domain.NutritionInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return &domain.NutritionInfo{}
	}

	return &info
}
