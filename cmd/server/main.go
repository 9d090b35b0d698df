package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/dishoutapp/dishout/internal/ai"
	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/api"
	"github.com/dishoutapp/dishout/internal/auth"
	"github.com/dishoutapp/dishout/internal/config"
	"github.com/dishoutapp/dishout/internal/kvstore"
	"github.com/dishoutapp/dishout/internal/leads"
	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/order"
	"github.com/dishoutapp/dishout/internal/trending"
	"github.com/dishoutapp/dishout/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	if cfg.GeminiAPIKey == "" {
		log.Printf("GEMINI_API_KEY is not set. Analysis requests will fail until it is configured.")
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal("Failed to load policy:", err)
	}

	kv, err := kvstore.Open(cfg.DB)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer kv.Close()

	trendingStore := trending.NewStore(kv, policy.Trending)
	authService := auth.NewService(kv)

	var uploader analysis.Uploader
	if cfg.UploadEndpoint != "" {
		uploader = upload.NewClient(cfg.UploadEndpoint)
	}

	var tracker order.Tracker
	if cfg.LeadsEndpoint != "" {
		tracker = leads.NewClient(cfg.LeadsEndpoint)
	}

	var locator location.Locator
	if cfg.FallbackArea != "" {
		locator = location.NewNominatimLocator(cfg.FallbackArea)
	}

	model := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	analysisService := analysis.NewService(model, trendingStore, uploader, locator)
	orderService := order.NewService(policy.Phone, tracker)

	app := &api.App{
		Analysis:      analysisService,
		Trending:      trendingStore,
		Auth:          authService,
		Orders:        orderService,
		Providers:     policy.Providers,
		Plan:          policy.Phone,
		MaxUploadSize: cfg.MaxUploadSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Database type: %s", cfg.DB.Type)
	if cfg.DB.Type == "postgres" {
		log.Printf("Database connection: %s@%s:%d/%s", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	} else {
		log.Printf("Database path: %s", cfg.DB.SQLitePath)
	}
	log.Printf("Model: %s", cfg.GeminiModel)

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
