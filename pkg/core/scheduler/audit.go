package scheduler

import "fmt"

// Violation is a hard-constraint breach found in a finished schedule
type Violation struct {
	Day         Day
	Shift       ShiftName
	Employee    string
	Description string
}

// Audit re-derives the hard invariants from a schedule:
//   - an employee works at most one shift per day
//   - no employee works more than MaxDaysPerEmployee days
//   - no shift exceeds MaxPerShift when it is bounded
//
// MinPerShift is a target, not an invariant, so it is not checked.
// An empty slice means the schedule is valid.
func Audit(sched Schedule, cfg Config) []Violation {
	violations := []Violation{}
	daysWorked := make(map[string]int)
	var employees []string

	for _, day := range Days {
		seen := make(map[string]ShiftName)
		for _, shift := range Shifts {
			names := sched[day][shift]

			if cfg.Bounded() && len(names) > cfg.MaxPerShift {
				violations = append(violations, Violation{
					Day:         day,
					Shift:       shift,
					Description: fmt.Sprintf("shift is overfilled: has %d employees but max is %d", len(names), cfg.MaxPerShift),
				})
			}

			for _, employee := range names {
				if first, dup := seen[employee]; dup {
					violations = append(violations, Violation{
						Day:         day,
						Shift:       shift,
						Employee:    employee,
						Description: fmt.Sprintf("employee already works the %s shift that day", first),
					})
					continue
				}
				seen[employee] = shift
				if daysWorked[employee] == 0 {
					employees = append(employees, employee)
				}
				daysWorked[employee]++
			}
		}
	}

	for _, employee := range employees {
		if days := daysWorked[employee]; days > cfg.MaxDaysPerEmployee {
			violations = append(violations, Violation{
				Employee:    employee,
				Description: fmt.Sprintf("employee works %d days but max is %d", days, cfg.MaxDaysPerEmployee),
			})
		}
	}

	return violations
}
