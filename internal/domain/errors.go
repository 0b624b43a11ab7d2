package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrProjectExists        = errors.New("a project already exists for this proposal")
	ErrCrossWBSReassign     = errors.New("moving an activity to a phase in a different WBS is not supported")
	ErrPhaseOutsideProposal = errors.New("target phase does not belong to the project's proposal")
	ErrOverBudget           = errors.New("quantity exceeds budget")
	ErrInvalidQuantity      = errors.New("quantity must be zero or positive")
)

// OverBudgetError reports a save that would push an activity's cumulative
// quantity past its budget.
type OverBudgetError struct {
	ActivityID  string
	Description string
	Unit        string
	Budget      float64
	Requested   float64
	MaxAllowed  float64
}

func (e *OverBudgetError) Error() string {
	return fmt.Sprintf("%q: %g %s exceeds remaining budget (max %g of %g)",
		e.Description, e.Requested, e.Unit, e.MaxAllowed, e.Budget)
}

func (e *OverBudgetError) Is(target error) bool {
	return target == ErrOverBudget
}
