package domain

import (
	"time"

	"github.com/google/uuid"
)

// NutritionGoal names the dietary objective a meal plan is built around
type NutritionGoal string

const (
	GoalWeightLoss     NutritionGoal = "weight_loss"
	GoalMuscleGain     NutritionGoal = "muscle_gain"
	GoalMaintenance    NutritionGoal = "maintenance"
	GoalHormoneBalance NutritionGoal = "hormone_balance"
	GoalGutHealth      NutritionGoal = "gut_health"
	GoalHeartHealth    NutritionGoal = "heart_health"
	GoalEnergyBoost    NutritionGoal = "energy_boost"
)

// MealPlanDay assigns recipes to the meal slots of a single day. Recipe
// identifiers are plain strings because they come back from the language
// model and are deliberately not validated against the recipe set.
type MealPlanDay struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Breakfast string   `json:"breakfast,omitempty"`
	Lunch     string   `json:"lunch,omitempty"`
	Dinner    string   `json:"dinner,omitempty"`
	Snacks    []string `json:"snacks,omitempty"`
}

// MealPlan is a generated day-by-day plan. It is a historical record:
// immutable once created except through explicit updates.
type MealPlan struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	Days               []MealPlanDay `json:"days"`
	NutritionGoal      NutritionGoal `json:"nutrition_goal,omitempty"`
	TotalEstimatedCost float64       `json:"total_estimated_cost,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// GroceryItem is one aggregated ingredient across the recipes of a plan.
type GroceryItem struct {
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	Unit          string   `json:"unit,omitempty"`
	EstimatedCost float64  `json:"estimated_cost,omitempty"`
	RecipeIDs     []string `json:"recipe_ids,omitempty"`
	Category      string   `json:"category,omitempty"`
	Purchased     bool     `json:"purchased"`
}

// GroceryList is derived from a meal plan and persisted alongside it,
// one list per plan.
type GroceryList struct {
	ID                 uuid.UUID     `json:"id"`
	MealPlanID         uuid.UUID     `json:"meal_plan_id"`
	UserID             uuid.UUID     `json:"user_id"`
	Items              []GroceryItem `json:"items"`
	TotalEstimatedCost float64       `json:"total_estimated_cost,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// MealPlanData is the language model's answer to a plan request, returned
// to callers verbatim. A non-empty Error field means generation failed and
// the caller must surface it as a client error. Referenced recipe IDs are
// not cross-checked against the available set.
type MealPlanData struct {
	Days             []MealPlanDay  `json:"days,omitempty"`
	GroceryItems     []GroceryItem  `json:"grocery_items,omitempty"`
	TotalCost        float64        `json:"total_cost,omitempty"`
	NutritionSummary map[string]any `json:"nutrition_summary,omitempty"`
	Error            string         `json:"error,omitempty"`
	Message          string         `json:"message,omitempty"`
}

// Failed reports whether the provider signalled a failed generation.
func (d *MealPlanData) Failed() bool {
	return d.Error != ""
}
