// README: Itinerary request types, validation errors, and field parsing.
package itinerary

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	MinDays = 1
	MaxDays = 30
)

// Validation errors; their text is returned to the client verbatim.
var (
	ErrMissingFields    = errors.New("Source, destination, and days are required!")
	ErrInvalidDays      = errors.New("Days must be a valid number.")
	ErrDaysOutOfRange   = errors.New("Days must be a number between 1 and 30")
	ErrRescheduleFields = errors.New("Both plan and suggestion are required!")
)

type TripRequest struct {
	Source      string
	Destination string
	Days        int
}

type RescheduleRequest struct {
	Plan       string
	Suggestion string
}

// PlanResult is the response body of a successful plan request.
type PlanResult struct {
	Plan    string `json:"plan"`
	Message string `json:"message"`
}

// RescheduleResult is the response body of a successful reschedule request.
type RescheduleResult struct {
	UpdatedPlan string `json:"updatedPlan"`
	Message     string `json:"message"`
}

// ParseTripRequest validates a decoded JSON object. Checks run in order:
// presence, then days parseability, then days range.
func ParseTripRequest(body map[string]any) (TripRequest, error) {
	source := stringField(body, "source")
	destination := stringField(body, "destination")
	daysRaw, hasDays := body["days"]
	if source == "" || destination == "" || !hasDays || daysRaw == nil {
		return TripRequest{}, ErrMissingFields
	}

	days, err := parseDays(daysRaw)
	if err != nil {
		return TripRequest{}, ErrInvalidDays
	}
	if days < MinDays || days > MaxDays {
		return TripRequest{}, ErrDaysOutOfRange
	}
	return TripRequest{Source: source, Destination: destination, Days: days}, nil
}

// ParseRescheduleRequest validates a decoded JSON object; both fields must be non-blank.
func ParseRescheduleRequest(body map[string]any) (RescheduleRequest, error) {
	plan := stringField(body, "plan")
	suggestion := stringField(body, "suggestion")
	if plan == "" || suggestion == "" {
		return RescheduleRequest{}, ErrRescheduleFields
	}
	return RescheduleRequest{Plan: plan, Suggestion: suggestion}, nil
}

// stringField returns the trimmed string value of key; non-string values count as missing.
func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return strings.TrimSpace(s)
}

// parseDays accepts integers, numbers with a fraction (truncated toward zero)
// and numeric strings such as " 7 ".
func parseDays(v any) (int, error) {
	switch d := v.(type) {
	case json.Number:
		if n, err := d.Int64(); err == nil {
			return clampInt(n), nil
		}
		f, err := d.Float64()
		if err != nil {
			return 0, err
		}
		return truncate(f)
	case float64:
		return truncate(d)
	case int:
		return d, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(d), 10, 64)
		var numErr *strconv.NumError
		if err != nil && !(errors.As(err, &numErr) && numErr.Err == strconv.ErrRange) {
			return 0, err
		}
		// On overflow ParseInt saturates at the int64 bounds; clampInt keeps the sign.
		return clampInt(n), nil
	default:
		return 0, ErrInvalidDays
	}
}

func truncate(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidDays
	}
	t := math.Trunc(f)
	if t > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	if t < math.MinInt32 {
		return math.MinInt32, nil
	}
	return int(t), nil
}

// clampInt keeps huge values out of range without overflowing int on 32-bit targets.
func clampInt(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}
