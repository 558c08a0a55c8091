// Package ollama adapts the local Ollama backend to the engine contract.
package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/prompt"
)

const (
	DefaultModel   = "llama3.1:8b"
	DefaultTimeout = 30 * time.Second
	probeTimeout   = 5 * time.Second
)

// Config holds the local engine's connection settings.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type adapter struct {
	farm   *ollamafarm.Farm
	cfg    Config
	logger *Logger.Logger
}

// New builds the Local adapter. The farm tracks server liveness so a
// dead Ollama shows up as unavailable instead of a hung request.
func New(cfg Config, logger *Logger.Logger) (engine.Adapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	farm := ollamafarm.New()
	if err := farm.RegisterURL(cfg.BaseURL, nil); err != nil {
		return nil, fmt.Errorf("register ollama server %s: %w", cfg.BaseURL, err)
	}

	logger.Infof("ollama adapter created - model %s at %s", cfg.Model, cfg.BaseURL)
	return &adapter{farm: farm, cfg: cfg, logger: logger}, nil
}

func (a *adapter) ID() engine.ID { return engine.Local }

// Invoke renders the prompt for op, runs one non-streaming generate call
// with a bounded timeout, and parses the output. No retries here.
func (a *adapter) Invoke(ctx context.Context, op engine.Operation, payload engine.Payload) (engine.Result, error) {
	spec, err := prompt.Build(op, payload)
	if err != nil {
		return engine.Result{}, engine.ResponseInvalid(engine.Local, op, err)
	}

	client, err := a.client()
	if err != nil {
		return engine.Result{}, engine.Unavailable(engine.Local, op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  a.cfg.Model,
		Prompt: spec.Text,
		Stream: &stream,
		Options: map[string]any{
			"temperature": spec.Temperature,
			"num_predict": spec.MaxTokens,
			"top_p":       0.8,
			"top_k":       10,
		},
	}

	var out strings.Builder
	err = client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return engine.Result{}, engine.Unavailable(engine.Local, op, err)
	}

	result, err := prompt.ParseResult(op, payload, out.String(), engine.Local)
	if err != nil {
		a.logger.Debugf("ollama raw output for %s: %s", op, out.String())
		return engine.Result{}, engine.ResponseInvalid(engine.Local, op, err)
	}
	return result, nil
}

// HealthCheck lists the server's models, the same cheap probe the
// backend exposes as /api/tags.
func (a *adapter) HealthCheck(ctx context.Context) engine.Health {
	now := time.Now()

	client, err := a.client()
	if err != nil {
		return engine.Health{LastCheckedAt: now, LastError: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	tags, err := client.List(ctx)
	if err != nil {
		return engine.Health{LastCheckedAt: now, LastError: err.Error()}
	}
	if len(tags.Models) == 0 {
		return engine.Health{LastCheckedAt: now, LastError: "no models installed"}
	}
	if !a.modelPresent(tags) {
		// Reachable, so still usable for routing purposes; surface the
		// mismatch for operators.
		return engine.Health{
			Available:     true,
			LastCheckedAt: now,
			LastError:     fmt.Sprintf("model %s not installed", a.cfg.Model),
		}
	}
	return engine.Health{Available: true, LastCheckedAt: now}
}

func (a *adapter) client() (*api.Client, error) {
	srv := a.farm.First(&ollamafarm.Where{Offline: false})
	if srv == nil {
		return nil, fmt.Errorf("no online ollama server at %s", a.cfg.BaseURL)
	}
	return srv.Client(), nil
}

func (a *adapter) modelPresent(tags *api.ListResponse) bool {
	family := strings.SplitN(a.cfg.Model, ":", 2)[0]
	for _, m := range tags.Models {
		if strings.Contains(m.Name, a.cfg.Model) || strings.HasPrefix(m.Name, family) {
			return true
		}
	}
	return false
}
