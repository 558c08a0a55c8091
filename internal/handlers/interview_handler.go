package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerforge/careerforge/internal/domains/interview"
	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
)

// InterviewHandler handles mock-interview HTTP requests
type InterviewHandler struct {
	service interview.Service
	logger  *Logger.Logger
}

func NewInterviewHandler(service interview.Service, logger *Logger.Logger) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger}
}

// SubmitAnswerRequest is the body for answering the current question
type SubmitAnswerRequest struct {
	QuestionID string         `json:"question_id"`
	Transcript string         `json:"transcript" binding:"required"`
	Metrics    map[string]any `json:"metrics,omitempty"`
}

// Start begins a new interview session
// @Summary Start a mock interview
// @Description Start an adaptive interview session from a candidate profile
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body engine.Profile true "Candidate profile"
// @Success 201 {object} interview.StartResponse "Session created with first question"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /interview/start [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	var profile engine.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Start(c.Request.Context(), interview.StartRequest{
		UserID:  c.GetString("userID"),
		Profile: profile,
	})
	if err != nil {
		h.logger.Errorf("interview start error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start interview"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Answer submits an answer to the session's current question
// @Summary Submit an interview answer
// @Description Evaluate the answer and return the next question, or complete the session
// @Tags Interview
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SubmitAnswerRequest true "Answer transcript"
// @Success 200 {object} interview.AnswerResponse "Evaluation and next question"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 409 {object} ErrorResponse "Session not active"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /interview/{id}/answer [post]
func (h *InterviewHandler) Answer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Answer(c.Request.Context(), interview.AnswerRequest{
		SessionID:  c.Param("id"),
		QuestionID: req.QuestionID,
		Transcript: req.Transcript,
		Metrics:    req.Metrics,
	})
	if err != nil {
		switch err {
		case interview.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		case interview.ErrSessionClosed:
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Session is not active"})
		default:
			h.logger.Errorf("interview answer error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process answer"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Report returns the full report for a session
// @Summary Get interview report
// @Description Build the final interview report with per-question evaluations
// @Tags Interview
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} interview.SessionReport "Full session report"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /interview/report/{id} [get]
func (h *InterviewHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case interview.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		default:
			h.logger.Errorf("interview report error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListReports lists summaries of all sessions
// @Summary List interview reports
// @Description List summaries of every interview session
// @Tags Interview
// @Produce json
// @Success 200 {array} interview.ReportSummary "Report summaries"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /interview/reports [get]
func (h *InterviewHandler) ListReports(c *gin.Context) {
	reports, err := h.service.ListReports(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list reports error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// RegisterInterviewRoutes registers all interview routes
func (h *InterviewHandler) RegisterInterviewRoutes(r *gin.RouterGroup) {
	g := r.Group("/interview")
	{
		g.POST("/start", h.Start)
		g.POST("/:id/answer", h.Answer)
		g.GET("/report/:id", h.Report)
		g.GET("/reports", h.ListReports)
	}
}
