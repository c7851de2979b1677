package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/actdex/internal/domain/usage"
	"github.com/kailas-cloud/actdex/internal/domain/usage/budget"
	"github.com/kailas-cloud/actdex/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	br          BudgetReader
	provider    string
	costPerMTok float64
}

// New creates a Service. br can be nil (unlimited mode).
// costPerMillionTokens is the provider price used for the cost column;
// 0 disables cost reporting.
func New(br BudgetReader, provider string, costPerMillionTokens float64) *Service {
	return &Service{br: br, provider: provider, costPerMTok: costPerMillionTokens}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := time.Now().UTC()
	var start, end int64
	var limit, used, remaining int64

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(24 * time.Hour)
		start = dayStart.UnixMilli()
		end = dayEnd.UnixMilli()
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		start = monthStart.UnixMilli()
		end = monthEnd.UnixMilli()
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	default:
		// total: no period boundaries
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	}

	exhausted := limit > 0 && remaining <= 0
	resetsAt := end

	// used tokens * $/1M tokens, reported in millidollars.
	cost := int(float64(used) * s.costPerMTok / 1000)

	b := budget.New(int(limit), int(remaining), exhausted, resetsAt)
	m := metrics.New(0, int(used), cost) // requests are not tracked per-period yet

	return domusage.NewReport(period, start, end, s.provider, m, b)
}
