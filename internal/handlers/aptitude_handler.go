package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerforge/careerforge/internal/domains/aptitude"
	"github.com/careerforge/careerforge/pkg/Logger"
)

// AptitudeHandler handles aptitude test HTTP requests
type AptitudeHandler struct {
	service aptitude.Service
	logger  *Logger.Logger
}

func NewAptitudeHandler(service aptitude.Service, logger *Logger.Logger) *AptitudeHandler {
	return &AptitudeHandler{service: service, logger: logger}
}

// BatchEvaluateRequest submits all answers of a test at once
type BatchEvaluateRequest struct {
	TestID      string                      `json:"test_id" binding:"required"`
	Submissions []aptitude.AnswerSubmission `json:"submissions" binding:"required"`
}

// Generate creates a new aptitude test
// @Summary Generate an aptitude test
// @Description Generate reasoning questions; answers are held server-side under the test ID
// @Tags Aptitude
// @Accept json
// @Produce json
// @Param request body aptitude.GenerateRequest true "Difficulty and count"
// @Success 201 {object} aptitude.GenerateResponse "Generated test"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /aptitude/generate [post]
func (h *AptitudeHandler) Generate(c *gin.Context) {
	var req aptitude.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("aptitude generation error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate aptitude test"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Evaluate scores a single answer
// @Summary Evaluate an aptitude answer
// @Description Score one answer of a generated test by exact match
// @Tags Aptitude
// @Accept json
// @Produce json
// @Param request body aptitude.AnswerSubmission true "Answer submission"
// @Success 200 {object} aptitude.AnswerResult "Evaluation result"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 404 {object} ErrorResponse "Test not found or expired"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /aptitude/evaluate [post]
func (h *AptitudeHandler) Evaluate(c *gin.Context) {
	var sub aptitude.AnswerSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), sub)
	if err != nil {
		switch err {
		case aptitude.ErrTestNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Test not found or expired"})
		default:
			h.logger.Errorf("aptitude evaluation error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to evaluate answer"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// BatchEvaluate scores all answers of a test
// @Summary Batch evaluate aptitude answers
// @Description Score every submitted answer of a generated test
// @Tags Aptitude
// @Accept json
// @Produce json
// @Param request body BatchEvaluateRequest true "Test ID and submissions"
// @Success 200 {array} aptitude.AnswerResult "Evaluation results"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 404 {object} ErrorResponse "Test not found or expired"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /aptitude/batch-evaluate [post]
func (h *AptitudeHandler) BatchEvaluate(c *gin.Context) {
	var req BatchEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	results, err := h.service.BatchEvaluate(c.Request.Context(), req.TestID, req.Submissions)
	if err != nil {
		switch err {
		case aptitude.ErrTestNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Test not found or expired"})
		default:
			h.logger.Errorf("aptitude batch evaluation error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to evaluate answers"})
		}
		return
	}

	c.JSON(http.StatusOK, results)
}

// RegisterAptitudeRoutes registers all aptitude test routes
func (h *AptitudeHandler) RegisterAptitudeRoutes(r *gin.RouterGroup) {
	g := r.Group("/aptitude")
	{
		g.POST("/generate", h.Generate)
		g.POST("/evaluate", h.Evaluate)
		g.POST("/batch-evaluate", h.BatchEvaluate)
	}
}
