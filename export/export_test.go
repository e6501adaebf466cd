package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient serves canned tables so the pipeline runs without the network
type fakeClient struct {
	structures []entities.Structure
	ligands    []entities.Ligand
}

func (f *fakeClient) ListAllStructures(ctx context.Context) ([]entities.Structure, error) {
	return f.structures, nil
}

func (f *fakeClient) ListAllLigands(ctx context.Context) ([]entities.Ligand, error) {
	return f.ligands, nil
}

func TestExporterRun(t *testing.T) {
	client := &fakeClient{
		structures: []entities.Structure{
			{StructureID: 5, Kinase: "ITK", KinaseID: 474, Pdb: "3mj1", Alt: "-", Chain: "A", Ligand: "-"},
			{StructureID: 1, Kinase: "EphA7", KinaseID: 415, Pdb: "3dko", Alt: "A", Chain: "A", Ligand: "SKE"},
			{StructureID: 3, Kinase: "EphA7", KinaseID: 415, Pdb: "2rei", Alt: "A", Chain: "A", Ligand: "-"},
		},
		ligands: []entities.Ligand{
			{LigandID: 912, PdbCode: "6VL"},
			{LigandID: 1226, PdbCode: "6VL"},
		},
	}

	outputDir := t.TempDir()
	exporter := NewExporter(client, validation.NewValidator(), outputDir)
	exporter.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}

	result, err := exporter.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, filepath.Join(outputDir, "klifs_ids.20260828.csv.zip"), result.ArchivePath)

	// Records come back sorted ascending by structure ID
	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Records[0].StructureID)
	assert.Equal(t, 3, result.Records[1].StructureID)
	assert.Equal(t, 5, result.Records[2].StructureID)

	// The expo-code collision is reported, not fatal
	require.Len(t, result.Report.AmbiguousLigands, 1)
	assert.Equal(t, "6VL", result.Report.AmbiguousLigands[0].ExpoID)
	assert.Equal(t, result.RunID, result.Report.RunID)

	// The archive exists and round-trips
	_, err = os.Stat(result.ArchivePath)
	require.NoError(t, err)

	reloaded, err := ReadArchive(result.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, result.Records, reloaded)
}

func TestExporterRunSurvivesDuplicateStructureIDs(t *testing.T) {
	// A structure-identifier collision is advisory: the run still writes
	// and verifies the archive
	client := &fakeClient{
		structures: []entities.Structure{
			{StructureID: 1, Kinase: "EphA7", KinaseID: 415, Pdb: "3dko", Alt: "A", Chain: "A", Ligand: "SKE"},
			{StructureID: 2, Kinase: "EphA7", KinaseID: 415, Pdb: "3dko", Alt: "A", Chain: "A", Ligand: "SKE"},
		},
	}

	exporter := NewExporter(client, validation.NewValidator(), t.TempDir())

	result, err := exporter.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Report.StructureCollisions, 1)
	assert.Equal(t, []int{1, 2}, result.Report.StructureCollisions[0].StructureIDs)
}
