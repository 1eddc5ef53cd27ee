package scheduler

import "fmt"

// Result is the outcome of a scheduling run
type Result struct {
	// Roster is the cleaned roster the run used
	Roster []string

	// Schedule holds assignments in insertion order
	Schedule Schedule

	// Warnings describe understaffed shifts and dropped employees
	Warnings []string

	// DaysWorked is the final number of days assigned per employee
	DaysWorked map[string]int
}

// Generate builds a weekly schedule.
//
// The roster is cleaned and the config checked before anything else; an empty
// roster returns ErrInvalidInput and a roster that cannot cover MinPerShift
// returns an *InfeasibleError. Otherwise the pipeline runs: per-day preference
// rounds and fallback (carrying deferred employees forward), then a global
// backfill and a global rebalance. Shortfalls are reported as warnings and
// never fail the run.
func Generate(employees []string, raw RawPreferences, cfg Config) (*Result, error) {
	roster := CleanRoster(employees)
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: no employees provided", ErrInvalidInput)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := CheckFeasibility(len(roster), cfg); err != nil {
		return nil, err
	}

	state := NewState(roster, NormalizePreferences(roster, raw), cfg)
	state.Run()

	return state.Result(), nil
}

// Run executes every allocation phase on the state in pipeline order
func (s *State) Run() {
	for _, day := range Days {
		s.AssignDay(day)
	}
	s.Backfill()
	s.Rebalance()
}

// Result snapshots the state as a Result
func (s *State) Result() *Result {
	daysWorked := make(map[string]int, len(s.DaysWorked))
	for employee, count := range s.DaysWorked {
		daysWorked[employee] = count
	}

	return &Result{
		Roster:     s.Roster,
		Schedule:   s.Schedule,
		Warnings:   s.Warnings,
		DaysWorked: daysWorked,
	}
}
