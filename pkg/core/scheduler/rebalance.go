package scheduler

import "fmt"

// Rebalance enforces MaxPerShift. For every overfull shift it repeatedly
// evicts the most recently added employee and tries to relocate them: first to
// another shift on the same day, then to any shift on the following day.
// Employees that fit nowhere are dropped with a warning.
//
// Only the next day is considered and earlier days are never revisited, so a
// relocation into the next day is not re-examined during the current day's pass.
// Does nothing when MaxPerShift is unbounded.
func (s *State) Rebalance() {
	if !s.Config.Bounded() {
		return
	}

	for _, day := range Days {
		for _, shift := range Shifts {
			for s.Schedule.Count(day, shift) > s.Config.MaxPerShift {
				employee := s.popLast(day, shift)
				if s.relocateSameDay(day, shift, employee) {
					continue
				}
				if s.relocateNextDay(day, employee) {
					continue
				}
				s.warn(fmt.Sprintf("Could not relocate %s from %s %s; leaving unassigned.", employee, day, shift))
			}
		}
	}
}

func (s *State) relocateSameDay(day Day, from ShiftName, employee string) bool {
	if !s.available(day, employee) {
		return false
	}
	for _, shift := range Shifts {
		if shift == from {
			continue
		}
		if s.HasCapacity(day, shift) {
			s.assign(day, shift, employee)
			return true
		}
	}
	return false
}

// relocateNextDay ignores preferences; any shift with room will do
func (s *State) relocateNextDay(day Day, employee string) bool {
	next, ok := nextDay(day)
	if !ok || !s.available(next, employee) {
		return false
	}
	for _, shift := range Shifts {
		if s.HasCapacity(next, shift) {
			s.assign(next, shift, employee)
			return true
		}
	}
	return false
}
