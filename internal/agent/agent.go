// Package agent issues single chat-completion calls to an OpenAI-compatible
// endpoint and returns the raw text of the first choice.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/internforge/backend/pkg/metrics"
)

const (
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second

	maxErrorBody = 2048
)

// Config describes one agent. It is copied into the Agent on construction.
type Config struct {
	Name         string
	Model        string
	SystemPrompt string
	Endpoint     string // full chat-completions URL
	APIKey       string
	Temperature  *float64 // nil means DefaultTemperature; 0 is sent as is
	Timeout      time.Duration
}

// Agent is safe for concurrent use; its configuration never changes after New.
type Agent struct {
	cfg    Config
	client *resty.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// New validates cfg, applies defaults and returns an Agent.
func New(cfg Config) (*Agent, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("agent: endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("agent: api key is required")
	}
	if cfg.Name == "" {
		cfg.Name = "agent"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	temp := DefaultTemperature
	if cfg.Temperature != nil {
		temp = *cfg.Temperature
	}
	cfg.Temperature = &temp
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.SystemPrompt = strings.TrimSpace(cfg.SystemPrompt)

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Agent{cfg: cfg, client: client}, nil
}

// Name returns the agent's configured name.
func (a *Agent) Name() string { return a.cfg.Name }

// Run sends the system prompt and userPrompt and returns the trimmed content
// of the first choice. Exactly one HTTP request is made.
func (a *Agent) Run(ctx context.Context, userPrompt string) (string, error) {
	start := time.Now()
	out, err := a.run(ctx, userPrompt)
	outcome := "ok"
	if s := Stage(err); s != "" {
		outcome = s
	} else if err != nil {
		outcome = "error"
	}
	metrics.AgentCalls.WithLabelValues(a.cfg.Name, outcome).Inc()
	metrics.AgentLatency.WithLabelValues(a.cfg.Name).Observe(time.Since(start).Seconds())
	return out, err
}

func (a *Agent) run(ctx context.Context, userPrompt string) (string, error) {
	body := completionRequest{
		Model: a.cfg.Model,
		Messages: []message{
			{Role: "system", Content: a.cfg.SystemPrompt},
			{Role: "user", Content: strings.TrimSpace(userPrompt)},
		},
		Temperature: *a.cfg.Temperature,
	}
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(a.cfg.Endpoint)
	if err != nil {
		return "", &TransportError{Agent: a.cfg.Name, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &TransportError{Agent: a.cfg.Name, StatusCode: resp.StatusCode(), Body: truncate(resp.String())}
	}

	var cr completionResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", &ResponseFormatError{Agent: a.cfg.Name, Body: truncate(resp.String()), Err: err}
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == nil {
		return "", &ResponseFormatError{Agent: a.cfg.Name, Body: truncate(resp.String())}
	}
	return strings.TrimSpace(*cr.Choices[0].Message.Content), nil
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}
