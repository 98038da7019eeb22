package http

import (
	"net/http"

	"github.com/daechan-jo/auto-store-services-order/internal/jobs"

	"github.com/labstack/echo/v4"
)

// Server exposes the operational HTTP surface: a health probe and a manual
// trigger for the order job.
type Server struct {
	orderJob *jobs.OrderJob
}

// NewServer creates the ops HTTP server around the order job.
func NewServer(orderJob *jobs.OrderJob) *Server {
	return &Server{orderJob: orderJob}
}

// RegisterRoutes binds the server's handlers onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.GetHealth)
	e.POST("/jobs/order/run", s.RunOrderJob)
}

// errorResponse is the JSON body returned on handler failures.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// runAccepted is the JSON body returned when a manual run is started.
type runAccepted struct {
	RunID string `json:"runId"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RunOrderJob handles POST /jobs/order/run - starts one processing run out of
// schedule. The run executes asynchronously; the response carries its run id.
// A run already in flight yields 409 rather than a queued duplicate.
func (s *Server) RunOrderJob(ctx echo.Context) error {
	rc, started, err := s.orderJob.Trigger()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to start order run: " + err.Error(),
		})
	}
	if !started {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "An order run is already in flight",
		})
	}

	return ctx.JSON(http.StatusAccepted, runAccepted{RunID: rc.RunID().String()})
}
