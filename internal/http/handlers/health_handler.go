package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const healthMessage = "Travel planner is ready to create efficient itineraries!"

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /health.
func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, healthResponse{Status: "healthy", Message: healthMessage})
}
