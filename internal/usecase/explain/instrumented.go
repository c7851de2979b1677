package explain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedExplainer wraps an Explainer with budget enforcement and
// logging. Transport metrics (requests, duration, tokens) are recorded in
// transport/openai; this layer owns budget tracking and budget metrics only.
type InstrumentedExplainer struct {
	inner    domain.Explainer
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedExplainer wraps an explainer with budget and observability.
func NewInstrumentedExplainer(
	inner domain.Explainer, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedExplainer {
	return &InstrumentedExplainer{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Explain wraps the inner explainer with a budget check before the call
// and token accounting after it.
func (p *InstrumentedExplainer) Explain(
	ctx context.Context, input domain.ExplainInput,
) (domain.ExplainResult, error) {
	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			p.logger.Error("Budget exceeded",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Error(err),
			)
			return domain.ExplainResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()

	result, err := p.inner.Explain(ctx, input)

	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Explanation request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.ExplainResult{}, fmt.Errorf("explain: %w", err)
	}

	if p.budget != nil && result.TotalTokens > 0 {
		p.budget.Record(int64(result.TotalTokens))
		gauge := metrics.ExplainerBudgetTokensRemaining
		gauge.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
		gauge.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
	}

	p.logger.Debug("Explanation request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}

// HealthCheck delegates to the inner explainer when it supports checks.
func (p *InstrumentedExplainer) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
