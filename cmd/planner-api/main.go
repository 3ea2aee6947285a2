// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	httptransport "wanderplan/internal/http"
	"wanderplan/internal/infra"
	"wanderplan/internal/maps"
	"wanderplan/internal/modules/insights"
	"wanderplan/internal/modules/itinerary"
	"wanderplan/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := observability.Init(cfg.LogLevel)
	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider ai.TextGenerator
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, ai.Options{Model: cfg.AI.Model})
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		provider = gemini
	}
	gateway := itinerary.NewGateway(provider, cfg.AI.MockFile, config.MockModeEnabled)

	tips, closeTips, err := newTipSource(ctx, cfg)
	if err != nil {
		log.Fatalf("tip source init: %v", err)
	}
	defer closeTips()

	var routes itinerary.RouteEstimator
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		routes = routeSvc
	}

	planner := itinerary.NewService(gateway, insights.NewEnricher(tips), routes)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:        planner,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
	}()

	logger.Info("travel planner listening",
		"addr", cfg.HTTP.Addr,
		"mock_mode", cfg.AI.MockMode,
		"model", cfg.AI.Model,
		"tips_source", cfg.Tips.Source,
		"route_hints", routes != nil,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// newTipSource builds the configured tip store and a func releasing its connections.
func newTipSource(ctx context.Context, cfg config.Config) (insights.Source, func(), error) {
	switch cfg.Tips.Source {
	case config.TipsSourcePostgres:
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return insights.NewPostgresSource(db), func() { _ = db.Close() }, nil
	case config.TipsSourceRedis:
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, nil, err
		}
		return insights.NewRedisSource(client, cfg.Tips.RedisKey), func() { _ = client.Close() }, nil
	default:
		return insights.NewFileSource(cfg.Tips.File), func() {}, nil
	}
}
