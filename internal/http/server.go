// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"github.com/gin-gonic/gin"

	"wanderplan/internal/http/handlers"
	"wanderplan/internal/http/middleware"
)

type ServerDeps struct {
	Planner        handlers.Planner
	AllowedOrigins []string
}

type Server struct {
	planner        handlers.Planner
	allowedOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		planner:        deps.Planner,
		allowedOrigins: deps.AllowedOrigins,
	}
}

// Routes builds the gin engine. Each itinerary route carries its own recovery so a
// panic surfaces as that route's generic 500 message.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.CORS(s.allowedOrigins))

	plan := handlers.NewPlanHandler(s.planner)
	r.POST("/plan", middleware.Recovery(handlers.MsgPlanFailed), plan.Plan)
	r.POST("/reschedule", middleware.Recovery(handlers.MsgRescheduleFailed), plan.Reschedule)
	r.POST("/export", middleware.Recovery(handlers.MsgExportFailed), handlers.Export)
	r.GET("/health", gin.Recovery(), handlers.Health)

	return r
}
