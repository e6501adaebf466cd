// Package interfaces defines core abstractions for the KLIFS identifier
// export service to improve testability and separation of concerns.
package interfaces

import (
	"context"
	"time"

	"github.com/openkinase/klifs-ids/klifs/entities"
)

// StructureCollision is a (pdb_id, alternate_model, chain) triple that maps
// to more than one structure ID. These must be resolved manually upstream.
type StructureCollision struct {
	PdbID          string `json:"pdb_id"`
	AlternateModel string `json:"alternate_model"`
	Chain          string `json:"chain"`
	StructureIDs   []int  `json:"structure_ids"`
}

// LigandAmbiguity is a PDB expo code shared by more than one KLIFS ligand ID.
// Ambiguities are reported, never auto-resolved.
type LigandAmbiguity struct {
	ExpoID    string `json:"expo_id"`
	LigandIDs []int  `json:"ligand_ids"`
}

// QualityReport summarizes the duplicate checks for one export run.
type QualityReport struct {
	RunID               string               `json:"run_id"`
	GeneratedAt         time.Time            `json:"generated_at"`
	StructureCount      int                  `json:"structure_count"`
	LigandCount         int                  `json:"ligand_count"`
	StructureCollisions []StructureCollision `json:"structure_collisions"`
	AmbiguousLigands    []LigandAmbiguity    `json:"ambiguous_ligands"`
}

// Client defines the contract for the remote KLIFS collaborator. The service
// treats it as opaque: it only needs the two full-table listings.
type Client interface {
	// ListAllStructures fetches the complete structures table
	ListAllStructures(ctx context.Context) ([]entities.Structure, error)

	// ListAllLigands fetches the complete ligands table
	ListAllLigands(ctx context.Context) ([]entities.Ligand, error)
}

// DataStore defines the contract for snapshot storage. It provides
// thread-safe access to the current identifier table with atomic swaps for
// zero-downtime refreshes.
type DataStore interface {
	GetRecords() []entities.StructureRecord
	GetRecordsMap() map[int]entities.StructureRecord
	GetLigands() []entities.Ligand
	GetQualityReport() *QualityReport
	GetLatestArchive() string
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateData(records []entities.StructureRecord, recordsMap map[int]entities.StructureRecord,
		ligands []entities.Ligand, report *QualityReport, archivePath string)
	BeginUpdate() bool
	EndUpdate()
}

// ExportResult describes one completed export run.
type ExportResult struct {
	RunID       string
	ArchivePath string
	Records     []entities.StructureRecord
	Ligands     []entities.Ligand
	Report      *QualityReport
	Duration    time.Duration
}

// Exporter defines the contract for the fetch-project-check-persist-verify
// pipeline.
type Exporter interface {
	Run(ctx context.Context) (*ExportResult, error)
}

// Validator defines the contract for the duplicate checks on a snapshot.
type Validator interface {
	// CheckStructureCollisions groups records by (pdb_id, alternate_model,
	// chain) and returns every group holding more than one structure ID
	CheckStructureCollisions(records []entities.StructureRecord) []StructureCollision

	// CheckLigandAmbiguity groups ligands by expo code and returns every
	// code shared by more than one KLIFS ligand ID
	CheckLigandAmbiguity(ligands []entities.Ligand) []LigandAmbiguity

	// ReportQuality runs both checks and assembles a QualityReport
	ReportQuality(records []entities.StructureRecord, ligands []entities.Ligand) *QualityReport
}

// Scheduler defines the contract for periodic snapshot refreshes.
type Scheduler interface {
	Start() error
	Stop()
}
