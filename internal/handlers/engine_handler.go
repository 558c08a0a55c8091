package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerforge/careerforge/internal/config"
	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
)

// EngineHandler exposes the engine router's admin surface
type EngineHandler struct {
	router *engine.Router
	cfg    config.EnginesConfig
	logger *Logger.Logger
}

func NewEngineHandler(router *engine.Router, cfg config.EnginesConfig, logger *Logger.Logger) *EngineHandler {
	return &EngineHandler{router: router, cfg: cfg, logger: logger}
}

// EngineSelectionRequest picks which engine handles subsequent requests
type EngineSelectionRequest struct {
	Engine string `json:"engine" binding:"required"`
}

// Status reports preferences, health and usage counters
// @Summary Engine status
// @Description Get current engine preferences, cached health and usage statistics
// @Tags AIEngine
// @Produce json
// @Success 200 {object} EngineResponse "Engine status"
// @Router /ai-engine/status [get]
func (h *EngineHandler) Status(c *gin.Context) {
	status := h.router.Status()

	available := make(map[string]bool, len(status.Engines))
	for id, health := range status.Engines {
		available[string(id)] = health.Available
	}

	c.JSON(http.StatusOK, EngineResponse{
		Success: true,
		Message: "AI engine status retrieved successfully",
		Data: map[string]any{
			"stats":             status.Stats,
			"health":            status.Engines,
			"preferences":       status.Preferences,
			"available_engines": available,
			"current_engine":    status.Stats.LastEngineUsed,
			"fallback_count":    status.Stats.FallbackCount,
		},
	})
}

// Select forces a specific engine
// @Summary Select engine
// @Description Force all subsequent requests onto one engine
// @Tags AIEngine
// @Accept json
// @Produce json
// @Param request body EngineSelectionRequest true "Engine name"
// @Success 200 {object} EngineResponse "Engine selected"
// @Failure 400 {object} EngineResponse "Unknown engine"
// @Router /ai-engine/select [post]
func (h *EngineHandler) Select(c *gin.Context) {
	var req EngineSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	id, err := engine.ParseID(req.Engine)
	if err == nil {
		err = h.router.ForceSelect(id)
	}
	if err != nil {
		if errors.Is(err, engine.ErrUnknownEngine) {
			c.JSON(http.StatusBadRequest, EngineResponse{
				Success: false,
				Message: "Unknown engine: " + req.Engine,
			})
			return
		}
		h.logger.Errorf("engine selection error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to select engine"})
		return
	}

	c.JSON(http.StatusOK, EngineResponse{
		Success: true,
		Message: "Engine selected successfully",
		Data:    map[string]any{"selected_engine": id},
	})
}

// Reset restores the configured default preferences
// @Summary Reset engine preferences
// @Description Restore engine preferences to the configured defaults
// @Tags AIEngine
// @Produce json
// @Success 200 {object} EngineResponse "Preferences reset"
// @Router /ai-engine/reset [post]
func (h *EngineHandler) Reset(c *gin.Context) {
	h.router.ResetPreferences()
	status := h.router.Status()

	c.JSON(http.StatusOK, EngineResponse{
		Success: true,
		Message: "AI engine preferences reset to defaults",
		Data: map[string]any{
			"preferences": status.Preferences,
			"stats":       status.Stats,
		},
	})
}

// Health probes every engine
// @Summary Engine health check
// @Description Probe every engine and refresh the cached health state
// @Tags AIEngine
// @Produce json
// @Success 200 {object} EngineResponse "Health check results"
// @Router /ai-engine/health [get]
func (h *EngineHandler) Health(c *gin.Context) {
	health := h.router.CheckHealth(c.Request.Context())

	anyAvailable := false
	for _, hs := range health {
		if hs.Available {
			anyAvailable = true
			break
		}
	}
	overall := "unhealthy"
	if anyAvailable {
		overall = "healthy"
	}

	c.JSON(http.StatusOK, EngineResponse{
		Success: true,
		Message: "Health check completed - status: " + overall,
		Data: map[string]any{
			"engines":         health,
			"overall_status":  overall,
			"recommendations": healthRecommendations(health),
		},
	})
}

// Models reports the configured model per engine
// @Summary Available models
// @Description Get the configured model and endpoint for each engine
// @Tags AIEngine
// @Produce json
// @Success 200 {object} EngineResponse "Model information"
// @Router /ai-engine/models [get]
func (h *EngineHandler) Models(c *gin.Context) {
	status := h.router.Status()

	c.JSON(http.StatusOK, EngineResponse{
		Success: true,
		Message: "Available models retrieved successfully",
		Data: map[string]any{
			"ollama": map[string]any{
				"available":     status.Engines[engine.Local].Available,
				"current_model": h.cfg.Ollama.Model,
				"base_url":      h.cfg.Ollama.BaseURL,
			},
			"gemini": map[string]any{
				"available":      status.Engines[engine.Cloud].Available,
				"model":          h.cfg.Gemini.Model,
				"api_configured": h.cfg.Gemini.APIKey != "",
			},
		},
	})
}

func healthRecommendations(health map[engine.ID]engine.Health) []string {
	var recs []string
	localOK := health[engine.Local].Available
	cloudOK := health[engine.Cloud].Available

	switch {
	case !localOK && !cloudOK:
		recs = append(recs, "CRITICAL: No AI engines available. Check Ollama installation and Gemini API key.")
	case !localOK:
		recs = append(recs, "Ollama not available. Install Ollama and pull a model for local processing.")
	case !cloudOK:
		recs = append(recs, "Gemini not available. Set the Gemini API key for cloud fallback.")
	default:
		recs = append(recs, "Both engines available. Optimal configuration for reliability.")
	}
	return recs
}

// RegisterEngineRoutes registers the engine admin routes
func (h *EngineHandler) RegisterEngineRoutes(r *gin.RouterGroup) {
	g := r.Group("/ai-engine")
	{
		g.GET("/status", h.Status)
		g.POST("/select", h.Select)
		g.POST("/reset", h.Reset)
		g.GET("/health", h.Health)
		g.GET("/models", h.Models)
	}
}
