package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"wanderplan/internal/modules/itinerary"
)

// directionsClient is the part of *maps.Client used here.
type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client directionsClient
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate returns the duration and distance string for a trip from origin to destination.
// It assumes driving mode.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

// RouteHint implements itinerary.RouteEstimator.
func (s *RouteService) RouteHint(ctx context.Context, origin, destination string) (itinerary.RouteHint, error) {
	d, distance, err := s.GetTravelEstimate(ctx, origin, destination)
	if err != nil {
		return itinerary.RouteHint{}, err
	}
	return itinerary.RouteHint{Duration: humanDuration(d), Distance: distance}, nil
}

// humanDuration formats d as "45 min", "3 h" or "5 h 12 min".
func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
