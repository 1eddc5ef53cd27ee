package services

import (
	"errors"
	"fmt"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
	"github.com/jakechorley/shift-rota/pkg/roster"
)

// FeasibilityReport summarises whether a roster can meet minimum staffing
type FeasibilityReport struct {
	Employees  int
	Required   int
	Supply     int
	Feasible   bool
	Infeasible *scheduler.InfeasibleError // set when Feasible is false
}

// CheckFeasibility cleans the roster and compares its capacity with the
// minimum staffing target without running the scheduler
func CheckFeasibility(cfg scheduler.Config, doc *roster.Document) (*FeasibilityReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	employees := scheduler.CleanRoster(doc.Employees)
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: no employees provided", scheduler.ErrInvalidInput)
	}

	report := &FeasibilityReport{
		Employees: len(employees),
		Required:  scheduler.RequiredAssignments(cfg),
		Supply:    scheduler.AssignmentSupply(len(employees), cfg),
		Feasible:  true,
	}

	err := scheduler.CheckFeasibility(len(employees), cfg)
	var infeasible *scheduler.InfeasibleError
	if errors.As(err, &infeasible) {
		report.Feasible = false
		report.Infeasible = infeasible
	} else if err != nil {
		return nil, err
	}

	return report, nil
}
