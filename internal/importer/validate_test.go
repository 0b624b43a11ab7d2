package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *EstimateSchema {
	return &EstimateSchema{
		Proposal: ProposalImport{ProposalNumber: "P-1042", Name: "Unit 4 Revamp"},
		WBS:      []WBSImport{{Ref: "tf", Code: "100", Name: "Tank Farm"}},
		Phases:   []PhaseImport{{Ref: "tf1", WBSRef: "tf", Code: "100-01"}},
		Activities: []ActivityImport{
			{PhaseRef: "tf1", Description: "Pipe", Type: "labor", Quantity: 10, Unit: "LF", CraftConstant: ptrFloat(1.5)},
		},
	}
}

func TestValidateEstimateSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateEstimateSchema(validMinimalSchema()))
}

func TestValidateEstimateSchema_NonLaborNeedsNoConstants(t *testing.T) {
	schema := validMinimalSchema()
	schema.Activities = append(schema.Activities,
		ActivityImport{PhaseRef: "tf1", Description: "Gaskets", Type: "material", Quantity: 40, Unit: "EA"})
	assert.Empty(t, ValidateEstimateSchema(schema))
}

func TestValidateEstimateSchema_MissingProposalFields(t *testing.T) {
	schema := validMinimalSchema()
	schema.Proposal = ProposalImport{}

	errs := ValidateEstimateSchema(schema)
	assert.Len(t, errs, 2)
	assertHasError(t, errs, "proposal.proposal_number is required")
	assertHasError(t, errs, "proposal.name is required")
}

func TestValidateEstimateSchema_DuplicateRefsAndCodes(t *testing.T) {
	schema := validMinimalSchema()
	schema.WBS = append(schema.WBS, WBSImport{Ref: "tf", Code: "100"})
	schema.Phases = append(schema.Phases, PhaseImport{Ref: "tf1", WBSRef: "tf", Code: "100-02"})

	errs := ValidateEstimateSchema(schema)
	assertHasError(t, errs, `wbs[1].ref: duplicate ref "tf"`)
	assertHasError(t, errs, `wbs[1].code: duplicate code "100"`)
	assertHasError(t, errs, `phases[1].ref: duplicate ref "tf1"`)
}

func TestValidateEstimateSchema_DanglingRefs(t *testing.T) {
	schema := validMinimalSchema()
	schema.Phases = append(schema.Phases, PhaseImport{Ref: "x1", WBSRef: "nope", Code: "900-01"})
	schema.Activities[0].PhaseRef = "missing"

	errs := ValidateEstimateSchema(schema)
	assertHasError(t, errs, `phases[1].wbs_ref: ref "nope" not found in wbs`)
	assertHasError(t, errs, `activities[0].phase_ref: ref "missing" not found in phases`)
}

func TestValidateEstimateSchema_ActivityRules(t *testing.T) {
	schema := validMinimalSchema()
	schema.Activities = []ActivityImport{
		{PhaseRef: "tf1", Description: "Bad type", Type: "overhead", Quantity: 1, Unit: "EA"},
		{PhaseRef: "tf1", Description: "Negative", Type: "material", Quantity: -1, Unit: "EA"},
		{PhaseRef: "tf1", Description: "No craft", Type: "custom_labor", Quantity: 1, Unit: "EA"},
		{PhaseRef: "tf1", Description: "Bad weld", Type: "labor", Quantity: 1, Unit: "EA", CraftConstant: ptrFloat(1), WelderConstant: ptrFloat(-2)},
		{PhaseRef: "tf1", Type: "material", Quantity: 1},
	}

	errs := ValidateEstimateSchema(schema)
	assertHasError(t, errs, `activities[0].type: invalid value "overhead"`)
	assertHasError(t, errs, "activities[1].quantity must be zero or positive")
	assertHasError(t, errs, "activities[2].craft_constant is required for custom_labor activities")
	assertHasError(t, errs, "activities[3].welder_constant must be zero or positive")
	assertHasError(t, errs, "activities[4].description is required")
	assertHasError(t, errs, "activities[4].unit is required")
}

func TestValidateEstimateSchema_ReportsEveryError(t *testing.T) {
	schema := &EstimateSchema{
		Activities: []ActivityImport{{}},
	}
	errs := ValidateEstimateSchema(schema)
	// proposal x2, empty wbs, activity phase_ref/description/unit/type
	assert.Len(t, errs, 7)
}

func assertHasError(t *testing.T, errs []error, substr string) {
	t.Helper()
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got %v", substr, errs)
}
