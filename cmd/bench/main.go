// README: Smoke/benchmark runner; executes HTTP, tip store, and load checks against a running planner.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, pending, skipped := 0, 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "PENDING":
			pending++
		case "SKIP":
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if fail > 0 || (cfg.Strict && pending > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	RedisTipsKey   string
	TipsFile       string
	MigrationPath  string
	ApplyMigration bool
	SeedRedis      bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("PLANNER_BENCH_BASE_URL", "http://localhost:5000"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", envOrDefault("PLANNER_DB_DSN", ""), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", envOrDefault("PLANNER_REDIS_ADDR", ""), "Redis address (empty skips Redis checks)")
	flag.StringVar(&cfg.RedisTipsKey, "redis-key", envOrDefault("TIPS_REDIS_KEY", "planner:tips"), "Redis tip key prefix")
	flag.StringVar(&cfg.TipsFile, "tips", envOrDefault("TIPS_FILE", "local_tips.json"), "Tip file used for Redis seeding")
	flag.StringVar(&cfg.MigrationPath, "migration", envOrDefault("PLANNER_BENCH_MIGRATION", "migrations/0001_local_tips.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envOrDefaultBool("PLANNER_BENCH_APPLY_MIGRATION", false), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.SeedRedis, "seed-redis", envOrDefaultBool("PLANNER_BENCH_SEED_REDIS", false), "Copy the tip file into Redis before tests")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("PLANNER_BENCH_STRICT", false), "Fail on pending tests")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("PLANNER_BENCH_TIMEOUT", 5*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("PLANNER_BENCH_CONCURRENCY", 8), "Concurrency for load tests")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("PLANNER_BENCH_DURATION", 10*time.Second), "Duration for load tests")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
