package entities

// Ligand is a single entry of the KLIFS ligands_list endpoint. The PDB expo
// code is not unique: protonation-state variants of the same compound carry
// distinct KLIFS ligand IDs but share one expo code.
type Ligand struct {
	LigandID int    `json:"ligand_ID"`
	PdbCode  string `json:"PDB-code"`
	Name     string `json:"Name"`
	Smiles   string `json:"SMILES"`
	InchiKey string `json:"InChIKey"`
}
