package http

import (
	"github.com/gin-gonic/gin"
	"github.com/platewise/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("", handler.CreateRecipe)
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/search", handler.SearchRecipes)
			recipes.POST("/extract", handler.ExtractRecipe)
			recipes.GET("/:id", handler.GetRecipe)
			recipes.PUT("/:id", handler.UpdateRecipe)
			recipes.DELETE("/:id", handler.DeleteRecipe)
			recipes.POST("/:id/analyze-nutrition", handler.AnalyzeNutrition)
		}

		mealPlans := v1.Group("/meal-plans")
		{
			mealPlans.POST("", handler.GenerateMealPlan)
			mealPlans.GET("", handler.ListMealPlans)
			mealPlans.GET("/:id", handler.GetMealPlan)
			mealPlans.DELETE("/:id", handler.DeleteMealPlan)
			mealPlans.GET("/:id/grocery-list", handler.GetMealPlanGroceryList)
		}

		v1.GET("/grocery-lists/:id", handler.GetGroceryList)

		users := v1.Group("/users")
		{
			users.POST("", handler.CreateUser)
			users.GET("/:id", handler.GetUser)
			users.PUT("/:id", handler.UpdateUser)
			users.DELETE("/:id", handler.DeleteUser)
			users.POST("/:id/preferences", handler.SetUserPreferences)
			users.GET("/:id/preferences", handler.GetUserPreferences)
			users.POST("/:id/favorites/:recipe_id", handler.AddFavorite)
			users.GET("/:id/favorites", handler.ListFavorites)
			users.DELETE("/:id/favorites/:recipe_id", handler.RemoveFavorite)
		}
	}

	return router
}
