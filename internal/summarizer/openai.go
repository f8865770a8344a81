package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/econbrief/econbrief/internal/config"
	"github.com/econbrief/econbrief/internal/inference"
)

// Observer receives per-call metrics.
type Observer interface {
	ObserveUpstream(target, outcome string, duration time.Duration)
	ObserveTokens(model string, prompt, completion int)
}

// OpenAIClient completes prompts against any OpenAI-compatible chat API.
// The default base URL points at Groq.
type OpenAIClient struct {
	client          *openai.Client
	model           string
	timeout         time.Duration
	logger          *slog.Logger
	inferenceLogger *inference.Logger
	observer        Observer
}

// NewOpenAIClient builds a client from the LLM configuration.
func NewOpenAIClient(cfg config.LLMConfig, logger *slog.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// WithInferenceLogger records every call in inference_logs.
func (c *OpenAIClient) WithInferenceLogger(l *inference.Logger) *OpenAIClient {
	c.inferenceLogger = l
	return c
}

// WithObserver reports latency, outcome and token usage.
func (c *OpenAIClient) WithObserver(o Observer) *OpenAIClient {
	c.observer = o
	return c
}

// Complete sends req as a system + user message pair and returns the trimmed
// text of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	apiCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		apiCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.MaxTokens > 0 {
		request.MaxTokens = req.MaxTokens
	}

	startTime := time.Now()
	resp, err := c.client.CreateChatCompletion(apiCtx, request)
	latency := time.Since(startTime)

	if err == nil && len(resp.Choices) == 0 {
		err = ErrEmptyCompletion
	}

	c.record(req, resp.Usage, latency, err)

	if err != nil {
		c.logger.Error("completion failed",
			"model", c.model,
			"operation", req.Operation,
			"country", req.Country,
			"error", err)
		return "", fmt.Errorf("completion call failed: %w", err)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	c.logger.Info("completion received",
		"model", c.model,
		"operation", req.Operation,
		"country", req.Country,
		"content_length", len(content),
		"finish_reason", resp.Choices[0].FinishReason,
		"latency_ms", latency.Milliseconds())

	return content, nil
}

func (c *OpenAIClient) record(req Request, usage openai.Usage, latency time.Duration, err error) {
	if c.observer != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		c.observer.ObserveUpstream("llm", outcome, latency)
		if err == nil {
			c.observer.ObserveTokens(c.model, usage.PromptTokens, usage.CompletionTokens)
		}
	}

	if c.inferenceLogger != nil {
		c.inferenceLogger.LogCall(inference.Call{
			Model:            c.model,
			Operation:        req.Operation,
			Country:          req.Country,
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			Latency:          latency,
			Err:              err,
			Metadata: map[string]interface{}{
				"temperature": req.Temperature,
				"max_tokens":  req.MaxTokens,
			},
		})
	}
}
