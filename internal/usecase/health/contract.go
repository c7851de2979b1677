package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ExplainerChecker checks explainer provider availability.
type ExplainerChecker interface {
	HealthCheck(ctx context.Context) error
}
