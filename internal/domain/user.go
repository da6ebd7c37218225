package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns recipes, preferences and meal plans
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPreferences feed the meal-plan assembler
type UserPreferences struct {
	FavoriteCuisines    []string            `json:"favorite_cuisines"`
	DislikedIngredients []string            `json:"disliked_ingredients"`
	DietaryRestrictions []string            `json:"dietary_restrictions"`
	MealPreferences     map[string][]string `json:"meal_preferences,omitempty"`
	BudgetPerMeal       float64             `json:"budget_per_meal,omitempty"`
	ServingsPerMeal     int                 `json:"servings_per_meal"`
}

// UserFavorite marks a recipe a user has starred
type UserFavorite struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Notes    string    `json:"notes,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}
