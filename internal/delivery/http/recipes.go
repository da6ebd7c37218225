package http

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// recipeCreateRequest is the JSON body for creating a recipe
type recipeCreateRequest struct {
	Title               string                    `json:"title" binding:"required"`
	Ingredients         []domain.RecipeIngredient `json:"ingredients" binding:"required"`
	Instructions        []string                  `json:"instructions" binding:"required"`
	MealTypes           []string                  `json:"meal_types"`
	PrepTimeMinutes     *int                      `json:"prep_time_minutes"`
	CookTimeMinutes     *int                      `json:"cook_time_minutes"`
	Servings            *int                      `json:"servings"`
	SourceURL           string                    `json:"source_url"`
	ImageURL            string                    `json:"image_url"`
	Tags                []string                  `json:"tags"`
	DietaryRestrictions []string                  `json:"dietary_restrictions"`
	Appliances          []string                  `json:"appliances"`
	Notes               string                    `json:"notes"`
}

// recipeUpdateRequest carries only the fields present in the body;
// nil means leave unchanged
type recipeUpdateRequest struct {
	Title               *string                    `json:"title"`
	Ingredients         *[]domain.RecipeIngredient `json:"ingredients"`
	Instructions        *[]string                  `json:"instructions"`
	MealTypes           *[]string                  `json:"meal_types"`
	PrepTimeMinutes     *int                       `json:"prep_time_minutes"`
	CookTimeMinutes     *int                       `json:"cook_time_minutes"`
	Servings            *int                       `json:"servings"`
	SourceURL           *string                    `json:"source_url"`
	ImageURL            *string                    `json:"image_url"`
	Tags                *[]string                  `json:"tags"`
	DietaryRestrictions *[]string                  `json:"dietary_restrictions"`
	Appliances          *[]string                  `json:"appliances"`
	Notes               *string                    `json:"notes"`
}

// CreateRecipe handles POST /recipes
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := domain.NewRecipe(req.Title)
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.MealTypes = req.MealTypes
	recipe.PrepTimeMinutes = req.PrepTimeMinutes
	recipe.CookTimeMinutes = req.CookTimeMinutes
	recipe.Servings = req.Servings
	recipe.SourceURL = req.SourceURL
	recipe.ImageURL = req.ImageURL
	recipe.Tags = req.Tags
	recipe.DietaryRestrictions = req.DietaryRestrictions
	recipe.Appliances = req.Appliances
	recipe.Notes = req.Notes

	if err := h.recipes.Save(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// ListRecipes handles GET /recipes
func (h *Handler) ListRecipes(c *gin.Context) {
	limit := queryInt(c, "limit", 100, 1, 100)
	offset := queryInt(c, "offset", 0, 0, 1<<30)

	recipes, err := h.recipes.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// SearchRecipes handles GET /recipes/search
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}
	limit := queryInt(c, "limit", 20, 1, 100)

	recipes, err := h.recipes.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles GET /recipes/:id
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles PUT /recipes/:id
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req recipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	applyRecipeUpdate(recipe, &req)

	if err := h.recipes.Save(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.recipes.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// ExtractRecipe handles POST /recipes/extract: a multipart upload is
// staged under the upload directory and run through the extraction
// pipeline, and the structured recipe is persisted before returning.
func (h *Handler) ExtractRecipe(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file exceeds maximum upload size of %d bytes", h.maxUploadSize),
		})
		return
	}
	userNotes := c.PostForm("notes")

	// Keep the original extension: engines route on it
	staged := filepath.Join(h.uploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, staged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	extraction := h.extraction.ExtractRecipe(c.Request.Context(), staged, userNotes)

	if err := h.recipes.Save(c.Request.Context(), extraction.Recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, extraction)
}

// AnalyzeNutrition handles POST /recipes/:id/analyze-nutrition. Results
// are cached per recipe revision so unchanged recipes skip the model.
func (h *Handler) AnalyzeNutrition(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	cacheKey := fmt.Sprintf("nutrition:%s:%d", recipe.ID, recipe.UpdatedAt.Unix())
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		c.JSON(http.StatusOK, gin.H{"recipe_id": recipe.ID, "nutrition": cached, "source": "cache"})
		return
	}

	nutrition := h.provider.AnalyzeNutrition(c.Request.Context(), recipe)

	if err := h.cache.Set(c.Request.Context(), cacheKey, nutrition, h.cacheTTL); err != nil {
		log.Printf("[HTTP] Failed to cache nutrition for %s: %v", recipe.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": recipe.ID, "nutrition": nutrition})
}

func applyRecipeUpdate(recipe *domain.Recipe, req *recipeUpdateRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.MealTypes != nil {
		recipe.MealTypes = *req.MealTypes
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = req.CookTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = req.Servings
	}
	if req.SourceURL != nil {
		recipe.SourceURL = *req.SourceURL
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.Tags != nil {
		recipe.Tags = *req.Tags
	}
	if req.DietaryRestrictions != nil {
		recipe.DietaryRestrictions = *req.DietaryRestrictions
	}
	if req.Appliances != nil {
		recipe.Appliances = *req.Appliances
	}
	if req.Notes != nil {
		recipe.Notes = *req.Notes
	}
	recipe.UpdatedAt = time.Now().UTC()
}

// pathUUID parses a UUID path parameter, answering 400 itself on failure
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: must be a UUID", name)})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter, clamping to [lo, hi]
func queryInt(c *gin.Context, name string, def, lo, hi int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
