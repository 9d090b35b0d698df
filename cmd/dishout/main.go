package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dishoutapp/dishout/internal/ai"
	"github.com/dishoutapp/dishout/internal/analysis"
	"github.com/dishoutapp/dishout/internal/cli"
	"github.com/dishoutapp/dishout/internal/config"
	"github.com/dishoutapp/dishout/internal/kvstore"
	"github.com/dishoutapp/dishout/internal/location"
	"github.com/dishoutapp/dishout/internal/trending"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	kv, err := kvstore.Open(cfg.DB)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer kv.Close()

	// The CLI is quiet by default; pipeline internals go to stderr only.
	log.SetOutput(os.Stderr)

	trendingStore := trending.NewStore(kv, policy.Trending)

	var locator location.Locator
	if cfg.FallbackArea != "" {
		locator = location.NewNominatimLocator(cfg.FallbackArea)
	}

	model := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	deps := cli.Dependencies{
		Analysis: analysis.NewService(model, trendingStore, nil, locator),
		Trending: trendingStore,
		Version:  version,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}
