package scheduler

import "fmt"

// RequiredAssignments is the number of slots needed to meet MinPerShift everywhere
func RequiredAssignments(cfg Config) int {
	return len(Days) * len(Shifts) * cfg.MinPerShift
}

// AssignmentSupply is the most assignments the roster can absorb
func AssignmentSupply(employeeCount int, cfg Config) int {
	return employeeCount * cfg.MaxDaysPerEmployee
}

// CheckFeasibility fails fast when the roster cannot possibly meet the
// minimum staffing target. It is pure arithmetic and touches no schedule state.
func CheckFeasibility(employeeCount int, cfg Config) error {
	required := RequiredAssignments(cfg)
	supply := AssignmentSupply(employeeCount, cfg)
	if supply >= required {
		return nil
	}

	deficit := required - supply
	return &InfeasibleError{
		Required:           required,
		Supply:             supply,
		Deficit:            deficit,
		SuggestedEmployees: (deficit + cfg.MaxDaysPerEmployee - 1) / cfg.MaxDaysPerEmployee,
	}
}

// Validate rejects configs the arithmetic above cannot reason about
func (c Config) Validate() error {
	if c.MinPerShift < 0 {
		return fmt.Errorf("%w: min per shift must not be negative, got %d", ErrInvalidInput, c.MinPerShift)
	}
	if c.MaxDaysPerEmployee < 1 {
		return fmt.Errorf("%w: max days per employee must be at least 1, got %d", ErrInvalidInput, c.MaxDaysPerEmployee)
	}
	return nil
}
