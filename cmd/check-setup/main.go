package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dishoutapp/dishout/internal/config"
	"github.com/dishoutapp/dishout/internal/kvstore"
	"github.com/dishoutapp/dishout/internal/trending"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	fmt.Println("🔍 Checking DishOut Setup")
	fmt.Println("=========================")

	if cfg.GeminiAPIKey == "" {
		fmt.Println("⚠️  WARNING: GEMINI_API_KEY is not set!")
		fmt.Println("   Dish analysis will fail until it is configured.")
	} else {
		fmt.Println("✅ Gemini configured:")
		fmt.Printf("   - Model: %s\n", cfg.GeminiModel)
	}
	fmt.Println()

	if cfg.UploadEndpoint != "" {
		fmt.Println("✅ Image upload endpoint configured")
	} else {
		fmt.Println("ℹ️  No UPLOAD_ENDPOINT set; shared order messages will have no image link")
	}
	if cfg.LeadsEndpoint != "" {
		fmt.Println("✅ Lead tracking endpoint configured")
	} else {
		fmt.Println("ℹ️  No LEADS_ENDPOINT set; confirmed orders will not be reported")
	}
	fmt.Println()

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal("Failed to load policy:", err)
	}
	fmt.Printf("📋 Policy: calling code +%s, %d trending seeds\n\n", policy.Phone.CallingCode, len(policy.Trending.Seeds))

	kv, err := kvstore.Open(cfg.DB)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer kv.Close()

	if cfg.DB.Type == "postgres" {
		fmt.Printf("💾 Database: postgres %s@%s:%d/%s\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	} else {
		fmt.Printf("💾 Database: sqlite %s\n", cfg.DB.SQLitePath)
	}

	store := trending.NewStore(kv, policy.Trending)
	entries, err := store.List(context.Background())
	if err != nil {
		fmt.Println("❌ Failed to load trending entries:", err)
		os.Exit(1)
	}

	fmt.Println("\n📊 Trending dishes:")
	fmt.Println("-------------------")
	for i, entry := range entries {
		fmt.Printf("%d. %s (popularity %d)\n", i+1, entry.Name, entry.Popularity)
	}

	fmt.Println("\n✅ Setup looks good.")
}
