// README: Itinerary handlers for POST /plan and POST /reschedule.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderplan/internal/modules/itinerary"
	"wanderplan/internal/observability"
)

// Planner is satisfied by *itinerary.Service.
type Planner interface {
	Plan(ctx context.Context, req itinerary.TripRequest) (itinerary.PlanResult, error)
	Reschedule(ctx context.Context, req itinerary.RescheduleRequest) (itinerary.RescheduleResult, error)
}

type PlanHandler struct {
	planner Planner
}

func NewPlanHandler(planner Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// Plan handles POST /plan.
func (h *PlanHandler) Plan(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, MsgBodyMustBeJSON)
		return
	}

	req, err := itinerary.ParseTripRequest(body)
	if err != nil {
		writeValidationError(c, err, MsgPlanFailed)
		return
	}

	result, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		observability.LoggerFromContext(c.Request.Context()).Error("plan failed",
			"source", req.Source, "destination", req.Destination, "days", req.Days, "error", err)
		writeError(c, http.StatusInternalServerError, MsgPlanFailed)
		return
	}

	writeJSON(c, http.StatusOK, result)
}

// Reschedule handles POST /reschedule.
func (h *PlanHandler) Reschedule(c *gin.Context) {
	body, err := decodeObject(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, MsgBodyMustBeJSON)
		return
	}

	req, err := itinerary.ParseRescheduleRequest(body)
	if err != nil {
		writeValidationError(c, err, MsgRescheduleFailed)
		return
	}

	result, err := h.planner.Reschedule(c.Request.Context(), req)
	if err != nil {
		observability.LoggerFromContext(c.Request.Context()).Error("reschedule failed", "error", err)
		writeError(c, http.StatusInternalServerError, MsgRescheduleFailed)
		return
	}

	writeJSON(c, http.StatusOK, result)
}

// writeValidationError maps request validation errors to 400 with their literal text.
func writeValidationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, itinerary.ErrMissingFields),
		errors.Is(err, itinerary.ErrInvalidDays),
		errors.Is(err, itinerary.ErrDaysOutOfRange),
		errors.Is(err, itinerary.ErrRescheduleFields):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		observability.LoggerFromContext(c.Request.Context()).Error("request validation failed", "error", err)
		writeError(c, http.StatusInternalServerError, fallback)
	}
}
