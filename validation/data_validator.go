// Package validation provides the duplicate checks for KLIFS identifier
// snapshots. Findings are advisory: they are logged and reported, never used
// to abort an export run.
package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/openkinase/klifs-ids/interfaces"
	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/openkinase/klifs-ids/logging"
)

// Compile-time check to ensure ValidatorImpl implements the Validator interface
var _ interfaces.Validator = (*ValidatorImpl)(nil)

// ValidatorImpl implements the interfaces.Validator interface
type ValidatorImpl struct{}

// NewValidator creates a new validator
func NewValidator() interfaces.Validator {
	return &ValidatorImpl{}
}

type structureKey struct {
	pdbID          string
	alternateModel string
	chain          string
}

// CheckStructureCollisions groups records by (pdb_id, alternate_model, chain)
// and returns every triple mapped to more than one structure ID. A collision
// means the source violated structure-ID uniqueness and must be resolved
// manually.
func (v *ValidatorImpl) CheckStructureCollisions(records []entities.StructureRecord) []interfaces.StructureCollision {
	groups := make(map[structureKey][]int)
	for _, record := range records {
		key := structureKey{record.PdbID, record.AlternateModel, record.Chain}
		groups[key] = append(groups[key], record.StructureID)
	}

	var collisions []interfaces.StructureCollision
	for key, ids := range groups {
		if len(ids) <= 1 {
			continue
		}
		sort.Ints(ids)
		collisions = append(collisions, interfaces.StructureCollision{
			PdbID:          key.pdbID,
			AlternateModel: key.alternateModel,
			Chain:          key.chain,
			StructureIDs:   ids,
		})
	}

	sortCollisions(collisions)

	if len(collisions) > 0 {
		logging.Error("Duplicate structure identifiers detected",
			"count", len(collisions),
			"collisions", collisions,
		)
	}

	return collisions
}

// CheckLigandAmbiguity groups ligands by their PDB expo code and returns
// every code shared by more than one KLIFS ligand ID. Protonation-state
// variants of the same compound are the known cause.
func (v *ValidatorImpl) CheckLigandAmbiguity(ligands []entities.Ligand) []interfaces.LigandAmbiguity {
	groups := make(map[string][]int)
	for _, ligand := range ligands {
		if ligand.PdbCode == entities.NoValue || ligand.PdbCode == "" {
			continue
		}
		groups[ligand.PdbCode] = append(groups[ligand.PdbCode], ligand.LigandID)
	}

	var ambiguities []interfaces.LigandAmbiguity
	for expoID, ids := range groups {
		if len(ids) <= 1 {
			continue
		}
		sort.Ints(ids)
		ambiguities = append(ambiguities, interfaces.LigandAmbiguity{
			ExpoID:    expoID,
			LigandIDs: ids,
		})
	}

	sort.Slice(ambiguities, func(i, j int) bool {
		return ambiguities[i].ExpoID < ambiguities[j].ExpoID
	})

	if len(ambiguities) > 0 {
		logging.Warn("Ambiguous ligand expo codes detected",
			"count", len(ambiguities),
			"ambiguities", ambiguities,
		)
	}

	return ambiguities
}

// ReportQuality runs both duplicate checks and assembles a QualityReport
func (v *ValidatorImpl) ReportQuality(records []entities.StructureRecord, ligands []entities.Ligand) *interfaces.QualityReport {
	return &interfaces.QualityReport{
		GeneratedAt:         time.Now(),
		StructureCount:      len(records),
		LigandCount:         len(ligands),
		StructureCollisions: v.CheckStructureCollisions(records),
		AmbiguousLigands:    v.CheckLigandAmbiguity(ligands),
	}
}

// Render formats a quality report for console output. The layout is stable so
// runs can be diffed against each other.
func Render(report *interfaces.QualityReport) string {
	out := fmt.Sprintf("quality report\n  structures: %d\n  ligands: %d\n",
		report.StructureCount, report.LigandCount)

	if len(report.StructureCollisions) == 0 {
		out += "  structure identifiers: unique per (pdb, alt, chain)\n"
	} else {
		out += fmt.Sprintf("  structure identifier collisions: %d\n", len(report.StructureCollisions))
		for _, collision := range report.StructureCollisions {
			out += fmt.Sprintf("    %s/%s/%s -> structure ids %v\n",
				collision.PdbID, collision.AlternateModel, collision.Chain, collision.StructureIDs)
		}
	}

	if len(report.AmbiguousLigands) == 0 {
		out += "  ligand expo codes: unambiguous\n"
	} else {
		out += fmt.Sprintf("  ambiguous ligand expo codes: %d\n", len(report.AmbiguousLigands))
		for _, ambiguity := range report.AmbiguousLigands {
			out += fmt.Sprintf("    %s -> ligand ids %v\n", ambiguity.ExpoID, ambiguity.LigandIDs)
		}
	}

	return out
}

func sortCollisions(collisions []interfaces.StructureCollision) {
	sort.Slice(collisions, func(i, j int) bool {
		a, b := collisions[i], collisions[j]
		if a.PdbID != b.PdbID {
			return a.PdbID < b.PdbID
		}
		if a.AlternateModel != b.AlternateModel {
			return a.AlternateModel < b.AlternateModel
		}
		return a.Chain < b.Chain
	})
}
