package entities

// StructureRecord is the seven-column identifier projection of a KLIFS
// structure. The structure ID is expected to be unique per
// (pdb_id, alternate_model, chain) triple, but the source does not guarantee
// it, so the validation package checks every snapshot.
type StructureRecord struct {
	StructureID    int    `json:"structure_id"`
	PdbID          string `json:"pdb_id"`
	AlternateModel string `json:"alternate_model"`
	Chain          string `json:"chain"`
	KinaseName     string `json:"kinase_name"`
	KinaseID       int    `json:"kinase_id"`
	LigandExpoID   string `json:"ligand_expo_id"`
}
