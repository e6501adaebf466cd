package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs"
	"github.com/openkinase/klifs-ids/logging"
	"github.com/openkinase/klifs-ids/metrics"
)

// Compile-time check to ensure Exporter implements the Exporter interface
var _ interfaces.Exporter = (*Exporter)(nil)

// Exporter runs the fetch-project-check-persist-verify pipeline. Each run is
// tagged with a UUID so log lines and reports can be correlated.
type Exporter struct {
	client    interfaces.Client
	validator interfaces.Validator
	outputDir string
	now       func() time.Time
}

// NewExporter creates an exporter writing dated archives into outputDir
func NewExporter(client interfaces.Client, validator interfaces.Validator, outputDir string) *Exporter {
	return &Exporter{
		client:    client,
		validator: validator,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Run executes one export. Duplicate findings are advisory and never fail the
// run; fetch, write and verification errors do.
func (e *Exporter) Run(ctx context.Context) (*interfaces.ExportResult, error) {
	runID := uuid.NewString()
	start := e.now()

	logging.Info("Starting identifier export", "run_id", runID)

	result, err := e.run(ctx, runID)
	if err != nil {
		metrics.ExportFailuresTotal.Inc()
		return nil, err
	}

	result.Duration = e.now().Sub(start)

	metrics.ExportRunsTotal.Inc()
	metrics.StructureRecordCount.Set(float64(len(result.Records)))
	metrics.AmbiguousLigandCount.Set(float64(len(result.Report.AmbiguousLigands)))

	logging.Info("Identifier export completed",
		"run_id", runID,
		"duration", result.Duration.String(),
		"archive", result.ArchivePath,
		"structure_count", len(result.Records),
		"ligand_count", len(result.Ligands),
	)

	return result, nil
}

func (e *Exporter) run(ctx context.Context, runID string) (*interfaces.ExportResult, error) {
	structures, err := e.client.ListAllStructures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch structures: %w", err)
	}

	ligands, err := e.client.ListAllLigands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ligands: %w", err)
	}

	records := klifs.ProjectIdentifiers(structures)
	klifs.SortByStructureID(records)

	report := e.validator.ReportQuality(records, ligands)
	report.RunID = runID

	if err := os.MkdirAll(e.outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", e.outputDir, err)
	}

	archivePath := filepath.Join(e.outputDir, ArchiveName(e.now()))
	if err := WriteArchive(archivePath, records); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	if err := VerifyRoundTrip(archivePath, records); err != nil {
		return nil, err
	}

	return &interfaces.ExportResult{
		RunID:       runID,
		ArchivePath: archivePath,
		Records:     records,
		Ligands:     ligands,
		Report:      report,
	}, nil
}
