// README: CLI demo; generates, enriches and sanitizes one itinerary and prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	"wanderplan/internal/modules/export"
	"wanderplan/internal/modules/insights"
	"wanderplan/internal/modules/itinerary"
	"wanderplan/internal/observability"
)

func main() {
	_ = godotenv.Load()

	source := flag.String("from", "Mumbai", "trip origin")
	destination := flag.String("to", "Goa", "trip destination")
	days := flag.Int("days", 3, "trip length in days (1-30)")
	reschedule := flag.String("reschedule", "", "optional suggestion applied to the generated plan")
	asText := flag.Bool("text", false, "print plain text instead of HTML")
	timeout := flag.Duration("timeout", 90*time.Second, "generation timeout")
	flag.Parse()

	observability.Init(os.Getenv("LOG_LEVEL"))

	req, err := itinerary.ParseTripRequest(map[string]any{
		"source":      *source,
		"destination": *destination,
		"days":        *days,
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var provider ai.TextGenerator
	if !config.MockModeEnabled() {
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			log.Fatal(config.ErrMissingAPIKey)
		}
		gemini, err := ai.NewGeminiProvider(ctx, apiKey, ai.Options{Model: os.Getenv("GEMINI_MODEL")})
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		defer gemini.Close()
		provider = gemini
	}

	mockFile := os.Getenv("MOCK_DATA_FILE")
	if mockFile == "" {
		mockFile = "mock_data.html"
	}
	tipsFile := os.Getenv("TIPS_FILE")
	if tipsFile == "" {
		tipsFile = "local_tips.json"
	}

	svc := itinerary.NewService(
		itinerary.NewGateway(provider, mockFile, config.MockModeEnabled),
		insights.NewEnricher(insights.NewFileSource(tipsFile)),
		nil,
	)

	res, err := svc.Plan(ctx, req)
	if err != nil {
		log.Fatalf("plan: %v", err)
	}
	fmt.Println(res.Message)
	plan := res.Plan

	if *reschedule != "" {
		updated, err := svc.Reschedule(ctx, itinerary.RescheduleRequest{Plan: plan, Suggestion: *reschedule})
		if err != nil {
			log.Fatalf("reschedule: %v", err)
		}
		fmt.Println(updated.Message)
		plan = updated.UpdatedPlan
	}

	if *asText {
		doc, err := export.Render(export.Request{Plan: plan, Format: export.FormatText, Source: req.Source, Destination: req.Destination})
		if err != nil {
			log.Fatalf("render text: %v", err)
		}
		fmt.Print(string(doc.Body))
		return
	}
	fmt.Println(plan)
}
