// README: Itinerary service orchestrates prompt → generate → enrich → sanitize.
package itinerary

import (
	"context"
	"fmt"

	"wanderplan/internal/modules/insights"
	"wanderplan/internal/modules/markup"
	"wanderplan/internal/observability"
)

const RescheduleMessage = "Your itinerary has been updated with better timing! ✨"

// Generator is satisfied by *Gateway.
type Generator interface {
	Generate(ctx context.Context, prompt string) Generation
}

// Enricher is satisfied by *insights.Enricher.
type Enricher interface {
	Enrich(ctx context.Context, plan, destination string) insights.Result
}

// RouteEstimator supplies driving logistics for the trip prompt. Optional.
type RouteEstimator interface {
	RouteHint(ctx context.Context, origin, destination string) (RouteHint, error)
}

// Service runs the per-request pipeline. It holds no per-request state.
type Service struct {
	generator Generator
	enricher  Enricher
	routes    RouteEstimator
	sanitize  func(string) (string, error)
}

// NewService creates a Service; routes may be nil to build prompts without logistics.
func NewService(generator Generator, enricher Enricher, routes RouteEstimator) *Service {
	return &Service{
		generator: generator,
		enricher:  enricher,
		routes:    routes,
		sanitize:  markup.Sanitize,
	}
}

// PlanMessage is the success message for a new itinerary.
func PlanMessage(req TripRequest) string {
	return fmt.Sprintf("Your efficient %d-day itinerary from %s to %s is ready! 🎉", req.Days, req.Source, req.Destination)
}

// Plan generates, enriches and sanitizes a new itinerary. Generation and tip failures
// degrade into placeholder content; only sanitizer faults are returned as errors.
func (s *Service) Plan(ctx context.Context, req TripRequest) (PlanResult, error) {
	prompt := BuildTripPromptWithRoute(req.Source, req.Destination, req.Days, s.routeHint(ctx, req))

	gen := s.generator.Generate(ctx, prompt)
	enriched := s.enricher.Enrich(ctx, gen.Text, req.Destination)

	plan, err := s.sanitize(enriched.Plan)
	if err != nil {
		return PlanResult{}, fmt.Errorf("sanitize plan: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("plan generated",
		"days", req.Days,
		"mode", gen.Mode,
		"generation_degraded", gen.Degraded,
		"tip", enriched.Key,
		"tips_degraded", enriched.Degraded,
	)
	return PlanResult{Plan: plan, Message: PlanMessage(req)}, nil
}

// Reschedule regenerates an itinerary from a prior plan and a free-text request. No enrichment.
func (s *Service) Reschedule(ctx context.Context, req RescheduleRequest) (RescheduleResult, error) {
	gen := s.generator.Generate(ctx, BuildReschedulePrompt(req.Plan, req.Suggestion))

	plan, err := s.sanitize(gen.Text)
	if err != nil {
		return RescheduleResult{}, fmt.Errorf("sanitize rescheduled plan: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("plan rescheduled", "mode", gen.Mode, "generation_degraded", gen.Degraded)
	return RescheduleResult{UpdatedPlan: plan, Message: RescheduleMessage}, nil
}

func (s *Service) routeHint(ctx context.Context, req TripRequest) RouteHint {
	if s.routes == nil {
		return RouteHint{}
	}
	hint, err := s.routes.RouteHint(ctx, req.Source, req.Destination)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("route hint unavailable", "error", err)
		return RouteHint{}
	}
	return hint
}
