package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	explainer ExplainerChecker
}

// New creates a Service. explainer can be nil.
func New(db DBPinger, explainer ExplainerChecker) *Service {
	return &Service{db: db, explainer: explainer}
}

// Check probes all components concurrently, so a slow explainer does not
// stack its latency on top of the database ping.
func (s *Service) Check(ctx context.Context) Report {
	type probe struct {
		name  string
		check func(context.Context) error
	}
	probes := []probe{{"database", s.db.Ping}}
	if s.explainer != nil {
		probes = append(probes, probe{"explainer", s.explainer.HealthCheck})
	}

	type outcome struct {
		name string
		err  error
	}
	results := make(chan outcome, len(probes))
	for _, p := range probes {
		p := p
		go func() { results <- outcome{p.name, p.check(ctx)} }()
	}

	checks := make(map[string]CheckResult, len(probes))
	status := Healthy
	for range probes {
		r := <-results
		if r.err != nil {
			checks[r.name] = CheckError
			status = Degraded
			continue
		}
		checks[r.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
