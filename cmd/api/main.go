package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	impactapi "impact_engine/pkg/api/impact"
	"impact_engine/pkg/core/cache"
	"impact_engine/pkg/core/config"
	"impact_engine/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/engine.yaml")
	if err != nil {
		fmt.Printf("[FATAL] Config error: %v\n", err)
		os.Exit(1)
	}

	// Seed the Monte Carlo source; 0 keeps runs time-seeded.
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		fmt.Printf("[CONFIG] Fixed random seed %d (reproducible simulations)\n", seed)
	}
	rng := rand.New(rand.NewSource(seed))

	// Result cache: Redis when configured, in-process otherwise.
	var resultCache cache.Repository = cache.NewMemory()
	if cfg.RedisAddr != "" {
		resultCache = cache.NewRedis(cfg.RedisAddr)
		fmt.Printf("[CACHE] Using Redis at %s\n", cfg.RedisAddr)
	}

	// Persistence is optional; the engine runs fine without a database.
	var repo *store.ImpactRepo
	if cfg.DatabaseURL != "" {
		os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	}
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, persistence disabled: %v\n", err)
		} else {
			repo = store.NewImpactRepo()
			defer store.Close()
			fmt.Println("[STORE] Analysis persistence enabled")
		}
	}

	impactapi.InitHandler(rng, resultCache, repo, cfg.MonteCarloTrials)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/impact/roi", impactapi.HandleROI)
	r.Post("/api/impact/scenarios", impactapi.HandleScenarios)
	r.Post("/api/impact/montecarlo", impactapi.HandleMonteCarlo)
	r.Post("/api/impact/sensitivity", impactapi.HandleSensitivity)
	r.Post("/api/impact/comprehensive", impactapi.HandleComprehensive)

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("Impact engine API starting on %s...\n", addr)
	fmt.Println("  - POST /api/impact/roi")
	fmt.Println("  - POST /api/impact/scenarios")
	fmt.Println("  - POST /api/impact/montecarlo")
	fmt.Println("  - POST /api/impact/sensitivity")
	fmt.Println("  - POST /api/impact/comprehensive")

	if err := http.ListenAndServe(addr, r); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
