package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/usecase"
)

const apiVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recipes    domain.RecipeRepository
	mealPlans  domain.MealPlanRepository
	users      domain.UserRepository
	extraction *usecase.ExtractionService
	planner    *usecase.MealPlanService
	provider   domain.LLMProvider
	cache      domain.CacheRepository

	uploadDir     string
	maxUploadSize int64
	cacheTTL      time.Duration
}

// HandlerConfig carries the request-handling knobs that are not
// collaborator dependencies
type HandlerConfig struct {
	UploadDir     string
	MaxUploadSize int64
	CacheTTL      time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	recipes domain.RecipeRepository,
	mealPlans domain.MealPlanRepository,
	users domain.UserRepository,
	extraction *usecase.ExtractionService,
	planner *usecase.MealPlanService,
	provider domain.LLMProvider,
	cache domain.CacheRepository,
	cfg HandlerConfig,
) *Handler {
	return &Handler{
		recipes:       recipes,
		mealPlans:     mealPlans,
		users:         users,
		extraction:    extraction,
		planner:       planner,
		provider:      provider,
		cache:         cache,
		uploadDir:     cfg.UploadDir,
		maxUploadSize: cfg.MaxUploadSize,
		cacheTTL:      cfg.CacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "platewise-backend",
		"version":   apiVersion,
		"timestamp": time.Now().Unix(),
	})
}
