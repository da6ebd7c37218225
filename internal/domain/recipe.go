package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealType classifies which meal slot a recipe fits
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealDessert   MealType = "dessert"
)

// DietaryRestriction labels a dietary constraint a recipe satisfies
type DietaryRestriction string

const (
	DietVegetarian  DietaryRestriction = "vegetarian"
	DietVegan       DietaryRestriction = "vegan"
	DietGlutenFree  DietaryRestriction = "gluten_free"
	DietDairyFree   DietaryRestriction = "dairy_free"
	DietNutFree     DietaryRestriction = "nut_free"
	DietLowCarb     DietaryRestriction = "low_carb"
	DietKeto        DietaryRestriction = "keto"
	DietPaleo       DietaryRestriction = "paleo"
	DietPescatarian DietaryRestriction = "pescatarian"
)

// Ingredient is the structured form of a recipe ingredient
type Ingredient struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	EstimatedCost float64 `json:"estimated_cost,omitempty"`
}

// RecipeIngredient is either a bare string ("2 cups flour") or a structured
// Ingredient. Uploaded and extracted recipes mix both forms freely, so the
// JSON shape is preserved on round-trip: strings stay strings, objects stay
// objects.
type RecipeIngredient struct {
	Raw        string
	Structured *Ingredient
}

// Text returns the searchable text of the ingredient: the raw string for
// bare ingredients, the name field for structured ones.
func (i RecipeIngredient) Text() string {
	if i.Structured != nil {
		return i.Structured.Name
	}
	return i.Raw
}

// Display renders the ingredient as a single human-readable line.
func (i RecipeIngredient) Display() string {
	if i.Structured == nil {
		return i.Raw
	}
	var b strings.Builder
	if i.Structured.Quantity != 0 {
		fmt.Fprintf(&b, "%g ", i.Structured.Quantity)
	}
	if i.Structured.Unit != "" {
		b.WriteString(i.Structured.Unit)
		b.WriteString(" ")
	}
	b.WriteString(i.Structured.Name)
	return b.String()
}

func (i RecipeIngredient) MarshalJSON() ([]byte, error) {
	if i.Structured != nil {
		return json.Marshal(i.Structured)
	}
	return json.Marshal(i.Raw)
}

func (i *RecipeIngredient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Raw = s
		i.Structured = nil
		return nil
	}
	var ing Ingredient
	if err := json.Unmarshal(data, &ing); err != nil {
		return fmt.Errorf("ingredient must be a string or an object: %w", err)
	}
	i.Raw = ""
	i.Structured = &ing
	return nil
}

// NutritionInfo holds the per-serving nutrition breakdown for a recipe.
// All fields are pointers: a nil field means the value is unknown, which
// is also the fallback shape when analysis fails.
type NutritionInfo struct {
	Calories      *int     `json:"calories"`
	ProteinGrams  *float64 `json:"protein_grams"`
	CarbsGrams    *float64 `json:"carbs_grams"`
	FatGrams      *float64 `json:"fat_grams"`
	FiberGrams    *float64 `json:"fiber_grams"`
	SugarGrams    *float64 `json:"sugar_grams"`
	SodiumMg      *int     `json:"sodium_mg"`
	CholesterolMg *int     `json:"cholesterol_mg"`
}

// Recipe is the central record of the system. Ingredients and instructions
// should be non-empty for a usable recipe, but the schema does not enforce
// it: extraction can legitimately produce flagged placeholder recipes.
type Recipe struct {
	ID                  uuid.UUID          `json:"id"`
	Title               string             `json:"title"`
	Ingredients         []RecipeIngredient `json:"ingredients"`
	Instructions        []string           `json:"instructions"`
	MealTypes           []string           `json:"meal_types"`
	PrepTimeMinutes     *int               `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes     *int               `json:"cook_time_minutes,omitempty"`
	Servings            *int               `json:"servings,omitempty"`
	SourceURL           string             `json:"source_url,omitempty"`
	SourceFile          string             `json:"source_file,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	Tags                []string           `json:"tags"`
	DietaryRestrictions []string           `json:"dietary_restrictions"`
	Appliances          []string           `json:"appliances,omitempty"`
	Nutrition           *NutritionInfo     `json:"nutrition,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// NewRecipe creates a recipe with a fresh identifier and timestamps.
func NewRecipe(title string) *Recipe {
	now := time.Now().UTC()
	return &Recipe{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Matches reports whether the lower-cased query is a substring of the
// recipe's title, any ingredient text, or any tag. Both storage backends
// share this so search semantics cannot drift between them.
func (r *Recipe) Matches(query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Text()), query) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
