package schemadoc

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lucasefe/schemadoc/config"
	"github.com/lucasefe/schemadoc/export"
	"github.com/lucasefe/schemadoc/introspect"
)

const pingTimeout = 5 * time.Second

// Open opens a connection with the configured driver and checks it is alive.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewExporter builds the extractor and exporter described by cfg on top of
// an open connection.
func NewExporter(db *sql.DB, cfg *config.Config, log logrus.FieldLogger) (*export.Exporter, error) {
	opts := []introspect.Option{introspect.WithForeignKeys(cfg.Export.ForeignKeys())}
	if len(cfg.Export.TypeMappings) > 0 {
		opts = append(opts, introspect.WithTypeMappings(cfg.Export.TypeMappings))
	}

	ex, err := introspect.New(cfg.Database.Engine, db, opts...)
	if err != nil {
		return nil, err
	}

	return export.New(ex, cfg.Database.Schema, cfg.Export.OutputDir,
		export.WithDescriber(introspect.NewDescriber(ex, opts...)),
		export.WithExcludeTables(cfg.Export.ExcludeTables),
		export.WithLogger(log),
	), nil
}

// Run exports every table of the configured schema. cfg must already be
// normalized and validated.
func Run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*export.Result, error) {
	db, err := Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	log.WithFields(logrus.Fields{
		"engine": cfg.Database.Engine,
		"driver": cfg.Database.Driver,
		"schema": cfg.Database.Schema,
	}).Info("connected to database")

	exporter, err := NewExporter(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return exporter.Run(ctx)
}

// NewLogger builds a logger writing to stderr with the configured level and
// format.
func NewLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
