package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SearchChecker checks search index availability.
type SearchChecker interface {
	HealthCheck(ctx context.Context) error
}
