package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// mealPlanRequest is the JSON body for generating a meal plan
type mealPlanRequest struct {
	UserID        uuid.UUID              `json:"user_id" binding:"required"`
	StartDate     string                 `json:"start_date" binding:"required"`
	EndDate       string                 `json:"end_date" binding:"required"`
	NutritionGoal domain.NutritionGoal   `json:"nutrition_goal"`
	BudgetLimit   float64                `json:"budget_limit"`
	Preferences   domain.UserPreferences `json:"preferences"`
}

// mealPlanResponse bundles the persisted plan with its grocery list
type mealPlanResponse struct {
	MealPlan         *domain.MealPlan    `json:"meal_plan"`
	GroceryList      *domain.GroceryList `json:"grocery_list"`
	TotalCost        float64             `json:"total_cost,omitempty"`
	NutritionSummary map[string]any      `json:"nutrition_summary"`
	ProcessingTime   float64             `json:"processing_time"`
}

// GenerateMealPlan handles POST /meal-plans. A failed generation from
// the assembler (the provider's error shape included) surfaces as 400.
func (h *Handler) GenerateMealPlan(c *gin.Context) {
	var req mealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()

	data, err := h.planner.Generate(
		c.Request.Context(),
		req.UserID,
		req.StartDate,
		req.EndDate,
		&req.Preferences,
		req.NutritionGoal,
		req.BudgetLimit,
	)
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if data.Failed() {
		c.JSON(http.StatusBadRequest, gin.H{"error": data.Error, "message": data.Message})
		return
	}

	now := time.Now().UTC()
	plan := &domain.MealPlan{
		ID:                 uuid.New(),
		UserID:             req.UserID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Days:               data.Days,
		NutritionGoal:      req.NutritionGoal,
		TotalEstimatedCost: data.TotalCost,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	list := &domain.GroceryList{
		ID:                 uuid.New(),
		MealPlanID:         plan.ID,
		UserID:             req.UserID,
		Items:              data.GroceryItems,
		TotalEstimatedCost: data.TotalCost,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.mealPlans.SavePlan(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.mealPlans.SaveGroceryList(c.Request.Context(), list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := data.NutritionSummary
	if summary == nil {
		summary = map[string]any{}
	}

	c.JSON(http.StatusOK, mealPlanResponse{
		MealPlan:         plan,
		GroceryList:      list,
		TotalCost:        data.TotalCost,
		NutritionSummary: summary,
		ProcessingTime:   time.Since(start).Seconds(),
	})
}

// GetMealPlan handles GET /meal-plans/:id
func (h *Handler) GetMealPlan(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	plan, err := h.mealPlans.GetPlan(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListMealPlans handles GET /meal-plans with an optional user filter
func (h *Handler) ListMealPlans(c *gin.Context) {
	var userID *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id: must be a UUID"})
			return
		}
		userID = &id
	}

	plans, err := h.mealPlans.ListPlans(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if plans == nil {
		plans = []*domain.MealPlan{}
	}

	c.JSON(http.StatusOK, plans)
}

// DeleteMealPlan handles DELETE /meal-plans/:id, removing the derived
// grocery list with it
func (h *Handler) DeleteMealPlan(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.mealPlans.DeletePlan(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal plan deleted successfully"})
}

// GetMealPlanGroceryList handles GET /meal-plans/:id/grocery-list
func (h *Handler) GetMealPlanGroceryList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	plan, err := h.mealPlans.GetPlan(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	list, err := h.mealPlans.GroceryListForPlan(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery list not found for this meal plan"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetGroceryList handles GET /grocery-lists/:id
func (h *Handler) GetGroceryList(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.mealPlans.GetGroceryList(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grocery list not found"})
		return
	}

	c.JSON(http.StatusOK, list)
}
