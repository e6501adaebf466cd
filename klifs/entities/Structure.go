package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NoValue is the placeholder KLIFS uses for missing alternate models and
// missing ligands. It must survive serialization as a literal string.
const NoValue = "-"

// SentinelString decodes KLIFS fields that may arrive as a string, an empty
// string, the number 0 or null. Anything that means "absent" becomes NoValue.
type SentinelString string

func (s *SentinelString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	// The ligand field is the number 0 when no ligand is bound
	if string(trimmed) == "null" || string(trimmed) == "0" {
		*s = NoValue
		return nil
	}

	var value string
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		*s = NoValue
		return nil
	}

	*s = SentinelString(value)
	return nil
}

// Structure is a single entry of the KLIFS structures_list endpoint.
// Only the fields the identifier export needs are decoded.
type Structure struct {
	StructureID      int            `json:"structure_ID"`
	Kinase           string         `json:"kinase"`
	Species          string         `json:"species"`
	KinaseID         int            `json:"kinase_ID"`
	Pdb              string         `json:"pdb"`
	Alt              SentinelString `json:"alt"`
	Chain            string         `json:"chain"`
	Ligand           SentinelString `json:"ligand"`
	AllostericLigand SentinelString `json:"allosteric_ligand"`
	Dfg              string         `json:"DFG"`
	AcHelix          string         `json:"aC_helix"`
	QualityScore     float64        `json:"quality_score"`
	Resolution       float64        `json:"resolution"`
}

// Kinase is a single entry of the KLIFS kinase_information endpoint.
type Kinase struct {
	KinaseID int    `json:"kinase_ID"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Species  string `json:"species"`
}
