package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EstimateSchema is the top-level structure of an estimate file. Rows
// reference their parent by ref; list position is the sort order.
type EstimateSchema struct {
	Proposal   ProposalImport   `json:"proposal" yaml:"proposal"`
	WBS        []WBSImport      `json:"wbs" yaml:"wbs"`
	Phases     []PhaseImport    `json:"phases" yaml:"phases"`
	Activities []ActivityImport `json:"activities" yaml:"activities"`
}

type ProposalImport struct {
	ProposalNumber string `json:"proposal_number" yaml:"proposal_number"`
	JobNumber      string `json:"job_number,omitempty" yaml:"job_number,omitempty"`
	Name           string `json:"name" yaml:"name"`
	Owner          string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Location       string `json:"location,omitempty" yaml:"location,omitempty"`
}

type WBSImport struct {
	Ref  string `json:"ref" yaml:"ref"`
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// PhaseImport carries the piping fields verbatim; they are display-only.
type PhaseImport struct {
	Ref         string `json:"ref" yaml:"ref"`
	WBSRef      string `json:"wbs_ref" yaml:"wbs_ref"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Size        string `json:"size,omitempty" yaml:"size,omitempty"`
	Spec        string `json:"spec,omitempty" yaml:"spec,omitempty"`
	Insulation  string `json:"insulation,omitempty" yaml:"insulation,omitempty"`
	Sheet       string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// ActivityImport is one budget line. Constants are hours per unit and are
// only read for labor and custom_labor activities.
type ActivityImport struct {
	PhaseRef       string   `json:"phase_ref" yaml:"phase_ref"`
	Description    string   `json:"description" yaml:"description"`
	Type           string   `json:"type" yaml:"type"`
	Quantity       float64  `json:"quantity" yaml:"quantity"`
	Unit           string   `json:"unit" yaml:"unit"`
	CraftConstant  *float64 `json:"craft_constant,omitempty" yaml:"craft_constant,omitempty"`
	WelderConstant *float64 `json:"welder_constant,omitempty" yaml:"welder_constant,omitempty"`
}

// LoadEstimateSchema reads an estimate file. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadEstimateSchema(path string) (*EstimateSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading estimate file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseEstimateYAML(data)
	default:
		return ParseEstimateJSON(data)
	}
}

func ParseEstimateJSON(data []byte) (*EstimateSchema, error) {
	var schema EstimateSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing estimate JSON: %w", err)
	}
	return &schema, nil
}

func ParseEstimateYAML(data []byte) (*EstimateSchema, error) {
	var schema EstimateSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing estimate YAML: %w", err)
	}
	return &schema, nil
}
