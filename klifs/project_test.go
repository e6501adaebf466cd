package klifs

import (
	"testing"

	"github.com/openkinase/klifs-ids/klifs/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIdentifiers(t *testing.T) {
	structures := []entities.Structure{
		{
			StructureID: 784,
			Kinase:      "EphA7",
			KinaseID:    415,
			Pdb:         "3dko",
			Alt:         "A",
			Chain:       "A",
			Ligand:      "SKE",
			Dfg:         "in",
			Resolution:  2.0,
		},
		{
			StructureID: 3597,
			Kinase:      "ITK",
			KinaseID:    474,
			Pdb:         "3mj1",
			Alt:         "-",
			Chain:       "B",
			Ligand:      "-",
		},
	}

	records := ProjectIdentifiers(structures)
	require.Len(t, records, 2)

	assert.Equal(t, entities.StructureRecord{
		StructureID:    784,
		PdbID:          "3dko",
		AlternateModel: "A",
		Chain:          "A",
		KinaseName:     "EphA7",
		KinaseID:       415,
		LigandExpoID:   "SKE",
	}, records[0])

	// Only the seven identifier fields survive; sentinels stay literal
	assert.Equal(t, "-", records[1].AlternateModel)
	assert.Equal(t, "-", records[1].LigandExpoID)
}

func TestProjectIdentifiersNormalizesEmptySentinels(t *testing.T) {
	structures := []entities.Structure{
		{StructureID: 1, Pdb: "1abc", Alt: "", Chain: "A", Ligand: ""},
	}

	records := ProjectIdentifiers(structures)
	require.Len(t, records, 1)
	assert.Equal(t, entities.NoValue, records[0].AlternateModel)
	assert.Equal(t, entities.NoValue, records[0].LigandExpoID)
}

func TestSortByStructureID(t *testing.T) {
	records := []entities.StructureRecord{
		{StructureID: 5, KinaseName: "ITK"},
		{StructureID: 3, KinaseName: "EphA7"},
		{StructureID: 1, KinaseName: "EphA7"},
		{StructureID: 4, KinaseName: "EphA7"},
		{StructureID: 2, KinaseName: "EphA7"},
	}

	SortByStructureID(records)

	for i, record := range records {
		assert.Equal(t, i+1, record.StructureID)
	}
}
