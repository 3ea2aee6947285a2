// README: Smoke cases for the planner API, tip stores (Postgres, Redis), and a load check.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"wanderplan/internal/infra"
	"wanderplan/internal/modules/insights"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 120 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "tip DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "tip cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "seed local_tips table",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: tables exist",
			Focus: "tables from the migration file are present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Tips: Postgres source loads",
			Focus: "ordered tip table through database/sql",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.cfg.DSN == "" {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				db, err := infra.NewDB(ctx, r.cfg.DSN)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer db.Close()
				return loadTips(ctx, insights.NewPostgresSource(db))
			},
		},
		{
			Name:  "Tips: seed Redis (optional)",
			Focus: "copy tip file into Redis",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.SeedRedis {
					return Result{Status: "SKIP", Note: "seed-redis=false"}
				}
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				table, err := insights.NewFileSource(r.cfg.TipsFile).Load(ctx)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if err := insights.NewRedisSource(r.redis, r.cfg.RedisTipsKey).Store(ctx, table); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS", Note: fmt.Sprintf("tips=%d", len(table))}
			},
		},
		{
			Name:  "Tips: Redis source loads",
			Focus: "ordered tip table from Redis",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				return loadTips(ctx, insights.NewRedisSource(r.redis, r.cfg.RedisTipsKey))
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", "", []int{200}, `"status":"healthy"`),

		// Plan
		httpCase("Plan: valid request", base+"/plan",
			`{"source":"Mumbai","destination":"Goa","days":3}`, []int{200}, `"plan"`),
		httpCase("Plan: numeric string days", base+"/plan",
			`{"source":"Delhi","destination":"Agra","days":"2"}`, []int{200}, `2-day itinerary`),
		httpCase("Plan: missing fields -> 400", base+"/plan",
			`{"source":"Mumbai"}`, []int{400}, "Source, destination, and days are required!"),
		httpCase("Plan: days not a number -> 400", base+"/plan",
			`{"source":"Mumbai","destination":"Goa","days":"abc"}`, []int{400}, "Days must be a valid number."),
		httpCase("Plan: days out of range -> 400", base+"/plan",
			`{"source":"Mumbai","destination":"Goa","days":31}`, []int{400}, "Days must be a number between 1 and 30"),
		httpCase("Plan: non-JSON body -> 400", base+"/plan",
			`source=Mumbai`, []int{400}, "Request body must be JSON."),

		// Reschedule
		httpCase("Reschedule: valid request", base+"/reschedule",
			`{"plan":"<h2>Day 1</h2><p>Museum</p>","suggestion":"make it adventurous"}`, []int{200}, `"updatedPlan"`),
		httpCase("Reschedule: missing suggestion -> 400", base+"/reschedule",
			`{"plan":"x"}`, []int{400}, "Both plan and suggestion are required!"),

		// Export
		httpCase("Export: txt", base+"/export",
			`{"plan":"<h2>Day 1</h2><p>Museum</p>","format":"txt"}`, []int{200}, "Day 1"),
		httpCase("Export: pdf", base+"/export",
			`{"plan":"<h2>Day 1</h2><p>Museum</p>","format":"pdf"}`, []int{200}, "%PDF"),
		httpCase("Export: unknown format -> 400", base+"/export",
			`{"plan":"<p>x</p>","format":"docx"}`, []int{400}, "Format must be txt or pdf."),

		{
			Name:  "Perf: concurrent health",
			Focus: "throughput of the cheapest route",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/health", "")
			},
		},
		{
			Name:  "Perf: concurrent plan (mock mode)",
			Focus: "plan pipeline throughput without model latency",
			Run: func(ctx context.Context, r *Runner) Result {
				if !envOrDefaultBool("MOCK_MODE", false) {
					return Result{Status: "SKIP", Note: "set MOCK_MODE=true on server and bench"}
				}
				return perfLoad(ctx, r, http.MethodPost, base+"/plan", `{"source":"Mumbai","destination":"Goa","days":3}`)
			},
		},
	}
}

func loadTips(ctx context.Context, src insights.Source) Result {
	start := time.Now()
	table, err := src.Load(ctx)
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	if len(table) == 0 {
		return Result{Status: "PENDING", Latency: time.Since(start), Note: "no tips stored"}
	}
	return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("tips=%d first=%s", len(table), table[0].Key)}
}

func httpCase(name, url, body string, okStatuses []int, wantBody string) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, wantBody)
}

func httpCaseMethod(name, method, url, body string, okStatuses []int, wantBody string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != "" {
				reader = strings.NewReader(body)
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			note := fmt.Sprintf("status=%d", resp.StatusCode)
			if !contains(okStatuses, resp.StatusCode) {
				return Result{Status: "FAIL", Latency: latency, Note: note}
			}
			if wantBody != "" && !strings.Contains(string(respBody), wantBody) {
				return Result{Status: "FAIL", Latency: latency, Note: note + " body missing " + wantBody}
			}
			return Result{Status: "PASS", Latency: latency, Note: note}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, method, url, body string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				var reader io.Reader
				if body != "" {
					reader = strings.NewReader(body)
				}
				req, _ := http.NewRequestWithContext(ctx, method, url, reader)
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				if resp.StatusCode >= 500 {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

// splitSQL splits a migration into statements on semicolons outside single-quoted
// literals. Whole-line "--" comments are skipped.
func splitSQL(sql string) []string {
	var stmts []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			stmts = append(stmts, s)
		}
		cur.Reset()
	}

	for _, line := range strings.Split(sql, "\n") {
		if l := strings.TrimSpace(line); !inQuote && (l == "" || strings.HasPrefix(l, "--")) {
			continue
		}
		for _, r := range line {
			switch {
			case r == '\'':
				inQuote = !inQuote
				cur.WriteRune(r)
			case r == ';' && !inQuote:
				flush()
			default:
				cur.WriteRune(r)
			}
		}
		cur.WriteByte('\n')
	}
	flush()
	return stmts
}
