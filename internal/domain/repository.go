package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeRepository persists recipes. Get returns (nil, nil) when the
// recipe is absent or its stored form is unreadable; a hard error means
// the backing store itself is unreachable. Delete is idempotent and
// reports whether anything was removed. List order is stable by
// identifier across repeated calls over an unchanged data set.
type RecipeRepository interface {
	Save(ctx context.Context, recipe *Recipe) error
	Get(ctx context.Context, id uuid.UUID) (*Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*Recipe, error)
	Search(ctx context.Context, query string, limit int) ([]*Recipe, error)
}

// MealPlanRepository persists generated meal plans and their derived
// grocery lists.
type MealPlanRepository interface {
	SavePlan(ctx context.Context, plan *MealPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*MealPlan, error)
	ListPlans(ctx context.Context, userID *uuid.UUID) ([]*MealPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) (bool, error)
	SaveGroceryList(ctx context.Context, list *GroceryList) error
	GetGroceryList(ctx context.Context, id uuid.UUID) (*GroceryList, error)
	GroceryListForPlan(ctx context.Context, planID uuid.UUID) (*GroceryList, error)
}

// UserRepository persists users, their preferences and favorites.
// Lookups return (nil, nil) on absence, mirroring RecipeRepository.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
	SetPreferences(ctx context.Context, userID uuid.UUID, prefs *UserPreferences) error
	GetPreferences(ctx context.Context, userID uuid.UUID) (*UserPreferences, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, fav *UserFavorite) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*UserFavorite, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
}

// TextExtractor is one interchangeable text-extraction engine. Extract
// never fails: missing files, unsupported formats and read errors all
// come back as a zero-confidence ExtractionResult carrying a warning.
// Supports is a pure function of the file extension; callers should
// check it first, but Extract guards on its own as well.
type TextExtractor interface {
	Extract(ctx context.Context, path string) *ExtractionResult
	Name() string
	Version() string
	SupportedFormats() []string
	Supports(path string) bool
}

// TextGenerator is the raw transport to a hosted language model: one
// prompt in, free-form text out. Transport-level errors surface here and
// nowhere above.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMProvider exposes the JSON-shaped operations derived from a
// TextGenerator. No operation returns an error: every failure, from
// malformed model output to a dead socket, resolves into the operation's
// fixed fallback payload.
type LLMProvider interface {
	EvaluateQuality(ctx context.Context, text string, confidence float64) *QualityAssessment
	StructureRecipe(ctx context.Context, text, userNotes string) *Recipe
	GenerateMealPlan(ctx context.Context, prefs *UserPreferences, recipes []*Recipe, goal NutritionGoal, days int) *MealPlanData
	AnalyzeNutrition(ctx context.Context, recipe *Recipe) *NutritionInfo
	Name() string
	Model() string
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
