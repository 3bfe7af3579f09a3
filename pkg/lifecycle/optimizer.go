package lifecycle

import (
	"context"

	"github.com/gnames/gnobs/pkg/config"
)

// Optimizer refreshes storage and planner statistics of the feature
// tables after large ingests or removals.
type Optimizer interface {
	// Optimize runs maintenance statements of the connected dialect.
	Optimize(ctx context.Context, cfg *config.Config) error
}
