package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerforge/careerforge/internal/domains/jobfit"
	"github.com/careerforge/careerforge/pkg/Logger"
)

// JobFitHandler handles job-fit analysis HTTP requests
type JobFitHandler struct {
	service jobfit.Service
	logger  *Logger.Logger
}

func NewJobFitHandler(service jobfit.Service, logger *Logger.Logger) *JobFitHandler {
	return &JobFitHandler{service: service, logger: logger}
}

// Analyze scores a candidate profile against a job description
// @Summary Analyze job fit
// @Description Score a candidate profile against a job description with skill and experience breakdowns
// @Tags JobFit
// @Accept json
// @Produce json
// @Param request body jobfit.Request true "Profile and job description"
// @Success 200 {object} jobfit.Analysis "Fit analysis"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /job-fit/analyze [post]
func (h *JobFitHandler) Analyze(c *gin.Context) {
	var req jobfit.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("job fit analysis error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to analyze job fit"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// RegisterJobFitRoutes registers all job-fit routes
func (h *JobFitHandler) RegisterJobFitRoutes(r *gin.RouterGroup) {
	g := r.Group("/job-fit")
	{
		g.POST("/analyze", h.Analyze)
	}
}
