package app

import (
	"context"
	"fmt"

	"github.com/careerforge/careerforge/internal/config"
	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/gemini"
	"github.com/careerforge/careerforge/pkg/engine/ollama"
)

// EngineRouterFactory builds the engine router from configuration.
type EngineRouterFactory struct {
	cfg    config.EnginesConfig
	logger *Logger.Logger
}

func NewEngineRouterFactory(cfg config.EnginesConfig, logger *Logger.Logger) *EngineRouterFactory {
	return &EngineRouterFactory{cfg: cfg, logger: logger}
}

// CreateRouter registers every configured adapter. Ollama is always
// registered; Gemini only when an API key is present.
func (f *EngineRouterFactory) CreateRouter(ctx context.Context) (*engine.Router, error) {
	var adapters []engine.Adapter

	ollamaAdapter, err := ollama.New(ollama.Config{
		BaseURL: f.cfg.Ollama.BaseURL,
		Model:   f.cfg.Ollama.Model,
		Timeout: f.cfg.Ollama.Timeout(),
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama adapter: %w", err)
	}
	adapters = append(adapters, ollamaAdapter)

	if f.cfg.Gemini.APIKey != "" {
		geminiAdapter, err := gemini.New(ctx, gemini.Config{
			APIKey:  f.cfg.Gemini.APIKey,
			Model:   f.cfg.Gemini.Model,
			Timeout: f.cfg.Gemini.Timeout(),
		}, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini adapter: %w", err)
		}
		adapters = append(adapters, geminiAdapter)
	} else {
		f.logger.Warn("Gemini API key not configured, running without cloud fallback")
	}

	preferred, err := engine.ParseID(f.cfg.Preferred)
	if err != nil {
		f.logger.Warnf("unknown preferred engine %q, defaulting to %s", f.cfg.Preferred, engine.Local)
		preferred = engine.Local
	}

	router, err := engine.New(engine.Preferences{
		Preferred:       preferred,
		FallbackEnabled: f.cfg.FallbackEnabled,
	}, f.logger, adapters...)
	if err != nil {
		return nil, err
	}

	f.logger.Infof("engine router created with %d adapter(s), preferred %s", len(adapters), preferred)
	return router, nil
}
