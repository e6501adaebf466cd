package klifs

import (
	"sort"

	"github.com/openkinase/klifs-ids/klifs/entities"
)

// ProjectIdentifiers narrows the structures table to the seven identifier
// columns. Absent alternate models and ligands keep the literal "-"
// placeholder so the archive round-trips them unchanged.
func ProjectIdentifiers(structures []entities.Structure) []entities.StructureRecord {
	records := make([]entities.StructureRecord, 0, len(structures))

	for _, s := range structures {
		records = append(records, entities.StructureRecord{
			StructureID:    s.StructureID,
			PdbID:          s.Pdb,
			AlternateModel: sentinelOrValue(string(s.Alt)),
			Chain:          s.Chain,
			KinaseName:     s.Kinase,
			KinaseID:       s.KinaseID,
			LigandExpoID:   sentinelOrValue(string(s.Ligand)),
		})
	}

	return records
}

// SortByStructureID orders records ascending by structure ID
func SortByStructureID(records []entities.StructureRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].StructureID < records[j].StructureID
	})
}

func sentinelOrValue(value string) string {
	if value == "" {
		return entities.NoValue
	}
	return value
}
