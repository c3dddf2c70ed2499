package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Request describes a single completion call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Generator is the minimal completion interface the pipeline depends on.
// Tests substitute a fake; production code uses Client.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client is the production Generator. It builds a fresh chat model per
// call, bounds each call with a timeout, and retries once on transport
// errors. Model-side failures (bad request, auth) are not retried but
// transient network errors usually are indistinguishable at this layer,
// so the single retry is applied to any error as long as the parent
// context is still live.
type Client struct {
	cfg Config
}

// NewClient creates a Client. Empty fields in cfg fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModelForProvider(cfg.Provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg}
}

// Config returns the resolved configuration.
func (c *Client) Config() Config { return c.cfg }

// Generate sends the request to the configured provider and returns the
// raw response text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	content, err := c.generateOnce(ctx, req)
	if err == nil {
		return content, nil
	}
	if ctx.Err() != nil {
		return "", err
	}
	// One retry. Provider SDKs surface transient failures as opaque
	// errors, so we retry anything once rather than inspect.
	content, retryErr := c.generateOnce(ctx, req)
	if retryErr != nil {
		return "", fmt.Errorf("llm generate (after retry): %w", retryErr)
	}
	return content, nil
}

func (c *Client) generateOnce(ctx context.Context, req Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	chatModel, err := NewChatModel(callCtx, c.cfg)
	if err != nil {
		return "", fmt.Errorf("create model: %w", err)
	}

	messages := make([]*schema.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.Prompt))

	opts := make([]model.Option, 0, 2)
	if req.Temperature > 0 {
		opts = append(opts, model.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	resp, err := chatModel.Generate(callCtx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	return resp.Content, nil
}

// GenerateWithTiming sends the request and also reports the call duration.
func (c *Client) GenerateWithTiming(ctx context.Context, req Request) (string, time.Duration, error) {
	start := time.Now()
	content, err := c.Generate(ctx, req)
	return content, time.Since(start), err
}
