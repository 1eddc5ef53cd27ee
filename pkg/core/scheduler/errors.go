package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the request cannot be interpreted,
	// e.g. the roster is empty after cleaning
	ErrInvalidInput = errors.New("invalid input")

	// ErrInfeasible is returned when staffing targets cannot be met even in principle
	ErrInfeasible = errors.New("infeasible configuration")
)

// InfeasibleError describes the shortfall between required assignment slots
// and the total capacity of the roster
type InfeasibleError struct {
	Required           int
	Supply             int
	Deficit            int
	SuggestedEmployees int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"%s: need at least %d total shift assignments, but employee supply caps at %d (deficit %d). "+
			"Consider adding ~%d more employees or increasing max days per employee",
		ErrInfeasible, e.Required, e.Supply, e.Deficit, e.SuggestedEmployees)
}

// Is lets errors.Is(err, ErrInfeasible) match
func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}
