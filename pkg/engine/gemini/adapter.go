// Package gemini adapts the Google Gemini cloud backend to the engine
// contract.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/prompt"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 30 * time.Second
	probeTimeout   = 5 * time.Second
)

// Config holds the cloud engine's API settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type adapter struct {
	client *genai.Client
	cfg    Config
	logger *Logger.Logger
}

// New builds the Cloud adapter. An API key is mandatory; without one the
// engine cannot be registered at all.
func New(ctx context.Context, cfg Config, logger *Logger.Logger) (engine.Adapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger.Infof("gemini adapter created - model %s", cfg.Model)
	return &adapter{client: client, cfg: cfg, logger: logger}, nil
}

func (a *adapter) ID() engine.ID { return engine.Cloud }

func (a *adapter) Invoke(ctx context.Context, op engine.Operation, payload engine.Payload) (engine.Result, error) {
	spec, err := prompt.Build(op, payload)
	if err != nil {
		return engine.Result{}, engine.ResponseInvalid(engine.Cloud, op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	model := a.client.GenerativeModel(a.cfg.Model)
	model.SetTemperature(spec.Temperature)
	model.SetMaxOutputTokens(int32(spec.MaxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(spec.Text))
	if err != nil {
		return engine.Result{}, engine.Unavailable(engine.Cloud, op, err)
	}

	raw := collectText(resp)
	if strings.TrimSpace(raw) == "" {
		return engine.Result{}, engine.ResponseInvalid(engine.Cloud, op,
			fmt.Errorf("empty response from model %s", a.cfg.Model))
	}

	result, err := prompt.ParseResult(op, payload, raw, engine.Cloud)
	if err != nil {
		a.logger.Debugf("gemini raw output for %s: %s", op, raw)
		return engine.Result{}, engine.ResponseInvalid(engine.Cloud, op, err)
	}
	return result, nil
}

// HealthCheck pulls the first page of the model listing, which exercises
// authentication and reachability without a generation call.
func (a *adapter) HealthCheck(ctx context.Context) engine.Health {
	now := time.Now()

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	it := a.client.ListModels(ctx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return engine.Health{LastCheckedAt: now, LastError: err.Error()}
	}
	return engine.Health{Available: true, LastCheckedAt: now}
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return b.String()
}
