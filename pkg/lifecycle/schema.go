// Package lifecycle defines contracts of the stages a feature store goes
// through.
package lifecycle

import (
	"context"

	"github.com/gnames/gnobs/pkg/config"
)

// SchemaManager defines the interface for feature table management.
// PostgreSQL tables are created by GORM AutoMigrate, embedded engines get
// DDL generated from the same models. Creation is idempotent - safe to
// run multiple times.
type SchemaManager interface {
	// Create creates missing feature tables and their indexes.
	Create(ctx context.Context, cfg *config.Config) error

	// Drop removes the feature tables with all their data.
	Drop(ctx context.Context, cfg *config.Config) error
}
