package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
	domusage "github.com/kailas-cloud/actdex/internal/domain/usage"
	explainuc "github.com/kailas-cloud/actdex/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/actdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/actdex/internal/usecase/search"
	usageuc "github.com/kailas-cloud/actdex/internal/usecase/usage"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the actdex API.
type Server struct {
	search        *searchuc.Service
	explain       *explainuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	explain *explainuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		explain: explain,
		usage:   usage,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStoreUninitialized, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrExplainerQuotaExceeded, http.StatusPaymentRequired, codeExplainerQuotaExceeded),
		sentinelHandler(domain.ErrExplainerEmpty, http.StatusBadGateway, codeExplainerEmpty),
		sentinelHandler(domain.ErrExplainerUnavailable, http.StatusServiceUnavailable, codeExplainerUnavailable),
	}
	return s
}

// Routes mounts all API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/ping", s.Ping)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/acts", s.ListActs)
	r.Get("/usage", s.GetUsage)
	r.Post("/search-law", s.SearchLaw)
	r.Post("/explain-law", s.ExplainLaw)
}

// Root handles GET /. It serves a small service descriptor.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Service:     "actdex",
		Description: "Keyword search over Indian bare act pages with plain-language explanations.",
		DocsURL:     "https://github.com/kailas-cloud/actdex",
		Health:      "/health",
	})
}

// Ping handles GET /ping.
func (s *Server) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Message: "actdex backend running 🚀"})
}

// SearchLaw handles POST /search-law.
func (s *Server) SearchLaw(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := domsearch.NewQuery(req.Query, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:    resp.Query(),
		Keywords: keywordsToWire(resp.Keywords()),
		Results:  resultsToWire(resp.Results()),
	})
}

// ExplainLaw handles POST /explain-law.
func (s *Server) ExplainLaw(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = domsearch.DefaultExplainResults
	}

	q, err := domsearch.NewQuery(req.Query, maxResults)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	expl, err := s.explain.Explain(ctx, q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setExplainerHeaders(w, usage)
	writeJSON(w, http.StatusOK, explainResponse{
		Query:       expl.Query,
		Keywords:    keywordsToWire(expl.Keywords),
		UsedResults: resultsToWire(expl.UsedResults),
		Explanation: expl.Answer,
		Style:       string(expl.Style),
	})
}

// ListActs handles GET /acts.
func (s *Server) ListActs(w http.ResponseWriter, r *http.Request) {
	counts, err := s.search.Acts(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]actItem, len(counts))
	for i, c := range counts {
		items[i] = actItem{Name: c.Name, Pages: c.Pages}
	}

	writeJSON(w, http.StatusOK, actsResponse{Acts: items, Total: len(items)})
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period := domusage.PeriodMonth
	switch r.URL.Query().Get("period") {
	case "day":
		period = domusage.PeriodDay
	case "total":
		period = domusage.PeriodTotal
	}

	report := s.usage.GetReport(r.Context(), period)

	isExhausted := report.Budget().IsExhausted()
	resp := usageResponse{
		Period:   string(report.Period()),
		Provider: report.Provider(),
		Usage: usageMetrics{
			ExplainRequests: report.Metrics().ExplainRequests(),
			Tokens:          report.Metrics().Tokens(),
		},
		Budget: budgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     &isExhausted,
		},
	}

	if report.Metrics().CostMillidollars() > 0 {
		cost := report.Metrics().CostMillidollars()
		resp.Usage.CostMillidollars = &cost
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setExplainerHeaders(w http.ResponseWriter, usage *domain.ExplainUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Explainer-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrStoreUninitialized,
		domain.ErrStoreUnavailable,
		domain.ErrExplainerUnavailable,
		domain.ErrExplainerEmpty,
		domain.ErrExplainerQuotaExceeded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
