// Package health aggregates component availability checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the pipeline can answer, with fallbacks.
	Degraded Status = "degraded"
	// Unhealthy indicates searches cannot be served.
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
	store    StorePinger
	embedder ProviderChecker
}

// New creates a Service. embedder can be nil.
func New(store StorePinger, embedder ProviderChecker) *Service {
	return &Service{store: store, embedder: embedder}
}

// Check probes all components. An unreachable store is fatal for every
// search, so it alone makes the report unhealthy; a failing model
// provider only degrades (the pipeline falls back to heuristics).
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks["store"] = CheckError
		status = Unhealthy
	} else {
		checks["store"] = CheckOK
	}

	if s.embedder != nil {
		if err := s.embedder.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
