package server

import (
	"context"

	"github.com/vanshika/fintrace/backend/internal/graphexport"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService verifies graph-export connectivity as part of health
// checks, when a graph store is configured.
type GraphHealthService struct {
	Client graphexport.Client
}

// Probe implements the HealthService interface. A nil Client means no
// graph store was configured (GRAPH_URI unset); the probe is then a no-op
// success, matching the teacher's optional-dependency health pattern.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}
