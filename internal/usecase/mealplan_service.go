package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// availableRecipesCap bounds how many recipes are offered to the model
// for planning. It matches the search scan cap: recipes beyond it are
// invisible to planning.
const availableRecipesCap = 1000

// MealPlanService assembles meal plans: it gathers the available recipe
// set, delegates the assignment decision to the language model, and
// returns the model's answer verbatim. It deliberately does not verify
// that returned recipe IDs exist in the available set.
type MealPlanService struct {
	recipes  domain.RecipeRepository
	provider domain.LLMProvider
}

// NewMealPlanService creates the assembler
func NewMealPlanService(recipes domain.RecipeRepository, provider domain.LLMProvider) *MealPlanService {
	return &MealPlanService{
		recipes:  recipes,
		provider: provider,
	}
}

// Generate produces plan data for the inclusive date range. With no
// recipes stored it returns the error shape immediately, without calling
// the provider. A storage failure propagates; everything else resolves
// into the returned data.
func (s *MealPlanService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate string,
	prefs *domain.UserPreferences,
	goal domain.NutritionGoal,
	budgetLimit float64,
) (*domain.MealPlanData, error) {
	log.Printf("[MealPlan] Generating meal plan for user %s", userID)

	days, err := inclusiveDays(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	available, err := s.recipes.List(ctx, availableRecipesCap, 0)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	if len(available) == 0 {
		log.Printf("[MealPlan] No recipes available for meal planning")
		return &domain.MealPlanData{
			Error:   "No recipes available for meal planning",
			Message: "Please add some recipes before generating a meal plan",
		}, nil
	}

	data := s.provider.GenerateMealPlan(ctx, prefs, available, goal, days)

	log.Printf("[MealPlan] Generated meal plan for user %s", userID)
	return data, nil
}

// inclusiveDays computes the day count of a date range, counting both
// endpoints: a plan from Monday to Monday is one day long.
func inclusiveDays(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %q precedes start date %q", endDate, startDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
