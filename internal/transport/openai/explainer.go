package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/metrics"
)

// Explainer is an explanation provider using the OpenAI-compatible chat API.
type Explainer struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the explainer provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// NewExplainer creates an OpenAI-compatible explanation provider.
func NewExplainer(cfg *Config) *Explainer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Explainer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Explain implements domain.Explainer. Returns the rendered explanation and
// token usage with transport-level metrics.
func (e *Explainer) Explain(ctx context.Context, input domain.ExplainInput) (domain.ExplainResult, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(input)},
		},
		User: e.user,
	}

	start := time.Now()

	resp, err := e.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ExplainerRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.ExplainerErrorsTotal.WithLabelValues(e.provider, e.model, "api_error").Inc()
		return domain.ExplainResult{}, parseAPIError(err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if text == "" {
		metrics.ExplainerRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
		metrics.ExplainerErrorsTotal.WithLabelValues(e.provider, e.model, "empty_response").Inc()
		return domain.ExplainResult{}, fmt.Errorf("empty explainer response: %w", domain.ErrExplainerEmpty)
	}

	// Record success metrics
	metrics.ExplainerRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.ExplainerRequestDuration.WithLabelValues(e.provider, e.model).Observe(duration.Seconds())

	usage := resp.Usage
	if usage.TotalTokens > 0 {
		metrics.ExplainerTokensTotal.WithLabelValues(e.provider, e.model, "prompt").Add(float64(usage.PromptTokens))
		metrics.ExplainerTokensTotal.WithLabelValues(e.provider, e.model, "completion").Add(float64(usage.CompletionTokens))
		metrics.ExplainerTokensTotal.WithLabelValues(e.provider, e.model, "total").Add(float64(usage.TotalTokens))
	}

	return domain.ExplainResult{
		Explanation:      text,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Explainer) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrExplainerUnavailable for correct 503 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrExplainerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("explainer API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("explainer API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("explainer API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("explainer request failed: %w", wrap)
}

// extractDetail extracts the "detail" field some OpenAI-compatible gateways
// put in their JSON error bodies.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
