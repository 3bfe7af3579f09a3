// Package ioschema implements SchemaManager interface for
// feature table management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality for PostgreSQL and
// runs generated DDL on embedded engines.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/db"
	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/lifecycle"
	"github.com/gnames/gnobs/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates feature tables and indexes that do not exist yet.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	sdb := m.operator.DB()
	if sdb == nil {
		return NotConnectedError()
	}
	prefix := cfg.Database.Schema
	if !schema.IsValidPrefix(prefix) {
		return SchemaPrefixError(prefix)
	}

	d := m.operator.Dialect()
	var err error
	if d == dialect.Postgres {
		err = m.migratePostgres(ctx, prefix)
	} else {
		err = m.createEmbedded(ctx, d, prefix)
	}
	if err != nil {
		return err
	}

	for _, model := range schema.AllModels() {
		for _, idx := range model.IndexDDL(prefix) {
			if _, err = sdb.ExecContext(ctx, idx); err != nil {
				return CreateSchemaError(err)
			}
		}
	}

	slog.Info("Feature tables are ready",
		"dialect", d.String(), "tables", tableNames(prefix))
	return nil
}

// migratePostgres enables PostGIS and runs GORM AutoMigrate.
func (m *manager) migratePostgres(ctx context.Context, prefix string) error {
	sdb := m.operator.DB()
	q := "CREATE EXTENSION IF NOT EXISTS postgis"
	if _, err := sdb.ExecContext(ctx, q); err != nil {
		return ExtensionError("postgis", err)
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sdb}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx), prefix); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}

// createEmbedded runs CREATE TABLE IF NOT EXISTS statements.
func (m *manager) createEmbedded(
	ctx context.Context,
	d dialect.Dialect,
	prefix string,
) error {
	sdb := m.operator.DB()
	for _, model := range schema.AllModels() {
		if _, err := sdb.ExecContext(ctx, model.TableDDL(d, prefix)); err != nil {
			return CreateSchemaError(err)
		}
	}
	return nil
}

// Drop removes all feature tables.
func (m *manager) Drop(
	ctx context.Context,
	cfg *config.Config,
) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}
	prefix := cfg.Database.Schema
	if !schema.IsValidPrefix(prefix) {
		return SchemaPrefixError(prefix)
	}
	return m.operator.DropTables(ctx, tableNames(prefix))
}
