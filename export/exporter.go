// Package export writes one report file per table of a schema.
//
// Basic usage:
//
//	ex, _ := introspect.New("db2", db)
//	result, err := export.New(ex, "APP", "output",
//	    export.WithLogger(log),
//	    export.WithExcludeTables([]string{"FLYWAY_HISTORY"}),
//	).Run(ctx)
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lucasefe/schemadoc/generator"
	"github.com/lucasefe/schemadoc/introspect"
	"github.com/lucasefe/schemadoc/schema"
)

// ErrOutputDirectory is returned when the output directory cannot be created.
// It is the only failure that aborts a run before any table is processed.
var ErrOutputDirectory = errors.New("cannot create output directory")

// ErrInvalidTableName is recorded for a table whose name cannot be used as a
// file name inside the output directory.
var ErrInvalidTableName = errors.New("invalid table file name")

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Failure records a table that could not be exported.
type Failure struct {
	Table string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Table, f.Err)
}

// Result summarizes an export run.
type Result struct {
	RunID     string
	OutputDir string
	Exported  []string
	Failures  []Failure
	Duration  time.Duration
}

// Failed reports whether any table could not be exported.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Exporter drives the describe, render and write cycle for a schema.
type Exporter struct {
	extractor introspect.Extractor
	describer *introspect.Describer
	schema    string
	outputDir string
	exclude   []string
	log       logrus.FieldLogger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithExcludeTables skips the named tables.
func WithExcludeTables(names []string) Option {
	return func(e *Exporter) {
		e.exclude = names
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// WithDescriber replaces the Describer built from the extractor, typically
// to pass introspect.WithForeignKeys(false).
func WithDescriber(d *introspect.Describer) Option {
	return func(e *Exporter) {
		if d != nil {
			e.describer = d
		}
	}
}

// New returns an Exporter for schemaName writing into outputDir.
func New(ex introspect.Extractor, schemaName, outputDir string, opts ...Option) *Exporter {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Exporter{
		extractor: ex,
		describer: introspect.NewDescriber(ex),
		schema:    schemaName,
		outputDir: outputDir,
		log:       discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run exports every table of the schema. A table that fails is logged,
// recorded in Result.Failures and skipped; the run goes on with the next one.
// Run returns an error only when the output directory cannot be created, the
// table list cannot be read, or ctx is cancelled.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		OutputDir: e.outputDir,
	}
	log := e.log.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"schema": e.schema,
	})

	if err := os.MkdirAll(e.outputDir, dirPerm); err != nil {
		return result, fmt.Errorf("%w %s: %v", ErrOutputDirectory, e.outputDir, err)
	}

	names, err := e.extractor.Tables(ctx, e.schema)
	if err != nil {
		return result, fmt.Errorf("failed to list tables for schema %s: %w", e.schema, err)
	}
	names = schema.FilterNames(names, e.exclude)

	log.WithField("tables", len(names)).Info("starting export")

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		tableLog := log.WithField("table", name)
		tableLog.Infof("processing table %d/%d", i+1, len(names))

		if _, err := e.exportTable(ctx, name, tableLog); err != nil {
			tableLog.WithError(err).Error("failed to export table")
			result.Failures = append(result.Failures, Failure{Table: name, Err: err})
			continue
		}
		result.Exported = append(result.Exported, name)
	}

	result.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"exported":   len(result.Exported),
		"failed":     len(result.Failures),
		"output_dir": e.outputDir,
		"duration":   result.Duration.String(),
	}).Info("export finished")

	return result, nil
}

// ExportTable describes, renders and writes a single table, returning the
// path of the written file.
func (e *Exporter) ExportTable(ctx context.Context, tableName string) (string, error) {
	if err := os.MkdirAll(e.outputDir, dirPerm); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrOutputDirectory, e.outputDir, err)
	}
	return e.exportTable(ctx, tableName, e.log.WithField("table", tableName))
}

func (e *Exporter) exportTable(ctx context.Context, tableName string, log logrus.FieldLogger) (string, error) {
	if !validFileName(tableName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTableName, tableName)
	}

	table, err := e.describer.Describe(ctx, e.schema, tableName)
	if err != nil {
		return "", err
	}

	content, err := generator.Generate(table)
	if err != nil {
		return "", fmt.Errorf("failed to render table %s: %w", tableName, err)
	}

	path := filepath.Join(e.outputDir, tableName+".txt")
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"file":         path,
		"columns":      len(table.Columns),
		"primary_key":  len(table.PrimaryKey),
		"foreign_keys": len(table.ForeignKeys),
	}).Debug("table written")

	return path, nil
}

// validFileName reports whether name stays a single path element once joined
// to the output directory.
func validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsRune(name, '/')
}
