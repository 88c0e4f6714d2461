package ports

import "context"

// HealthChecker probes one dependency (database, redis, identity provider)
// for the health endpoint. A nil error means healthy.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
