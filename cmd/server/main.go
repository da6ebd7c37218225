package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/platewise/backend/config"
	httpDelivery "github.com/platewise/backend/internal/delivery/http"
	"github.com/platewise/backend/internal/domain"
	"github.com/platewise/backend/internal/infrastructure/cache"
	"github.com/platewise/backend/internal/infrastructure/extract"
	"github.com/platewise/backend/internal/infrastructure/llm"
	"github.com/platewise/backend/internal/infrastructure/storage"
	"github.com/platewise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PlateWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage: %s", cfg.Storage.Type)

	// Meal plans and users always live in sqlite; recipes are file-backed
	// or relational depending on configuration
	database, err := storage.Open(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	var recipes domain.RecipeRepository
	switch cfg.Storage.Type {
	case "file":
		recipes, err = storage.NewFileRecipeStore(filepath.Join(cfg.Storage.DataDir, "recipes"))
		if err != nil {
			log.Fatalf("Failed to initialize recipe store: %v", err)
		}
	case "sqlite":
		recipes = storage.NewSQLiteRecipeStore(database)
	default:
		log.Fatalf("%v: %s", domain.ErrUnsupportedStorage, cfg.Storage.Type)
	}

	mealPlans := storage.NewMealPlanStore(database)
	users := storage.NewUserStore(database)

	if err := os.MkdirAll(cfg.Extraction.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Extraction engines
	primary, err := extract.NewEngine(cfg.Extraction.PrimaryEngine)
	if err != nil {
		log.Fatalf("Failed to create primary engine: %v", err)
	}

	var fallback domain.TextExtractor
	if cfg.Extraction.FallbackEngine != "" {
		fallback, err = extract.NewEngine(cfg.Extraction.FallbackEngine)
		if err != nil {
			log.Fatalf("Failed to create fallback engine: %v", err)
		}
	}

	// Language model provider
	client := llm.NewClient(cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("LLM client debug mode enabled")
	}
	provider := llm.NewProvider(client, "ollama", cfg.LLM.Model)

	log.Printf("LLM configured: %s (model: %s, timeout: %s)",
		cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout)

	// Initialize usecase layer
	extraction := usecase.NewExtractionService(primary, fallback, provider)
	planner := usecase.NewMealPlanService(recipes, provider)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(
		recipes,
		mealPlans,
		users,
		extraction,
		planner,
		provider,
		cache.NewMemoryCache(),
		httpDelivery.HandlerConfig{
			UploadDir:     cfg.Extraction.UploadDir,
			MaxUploadSize: cfg.Extraction.MaxUploadSize,
			CacheTTL:      cfg.LLM.CacheTTL,
		},
	)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
