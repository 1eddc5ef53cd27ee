package scheduler

import "slices"

// AssignDay runs the greedy preference rounds and then the fallback pass for one day
func (s *State) AssignDay(day Day) {
	order := s.dayOrder(day)
	s.assignPreferences(day, order)
	s.assignFallback(day, order)
}

// assignPreferences places employees on their rank-r shift for r = 0, 1, 2.
//
// Ranks run in the outer loop and employees in the inner loop, so every
// employee's first choice is considered before anyone's second choice.
// Ranks beyond the third are never consulted here.
func (s *State) assignPreferences(day Day, order []string) {
	for rank := 0; rank < preferenceRounds; rank++ {
		for _, employee := range order {
			if !s.available(day, employee) {
				continue
			}

			ranked := s.preferencesFor(employee, day)
			if rank >= len(ranked) {
				continue
			}

			target := ranked[rank]
			if s.HasCapacity(day, target) {
				s.assign(day, target, employee)
			}
		}
	}
}

// assignFallback places employees that stated a preference but were not placed
// by the preference rounds. They try their whole ranked list, then every
// unlisted shift in label order. If nothing has room they are deferred to the
// next day; on the last day they simply stay unassigned.
//
// Employees with no preference for the day are left for backfill.
func (s *State) assignFallback(day Day, order []string) {
	next, hasNext := nextDay(day)

	for _, employee := range order {
		if !s.available(day, employee) {
			continue
		}

		ranked := s.preferencesFor(employee, day)
		if len(ranked) == 0 {
			continue
		}

		if s.placeFirstAvailable(day, employee, fallbackOrder(ranked)) {
			continue
		}

		if hasNext {
			s.CarryOver[next] = append(s.CarryOver[next], employee)
		}
	}
}

// placeFirstAvailable assigns the employee to the first shift in tryOrder with room
func (s *State) placeFirstAvailable(day Day, employee string, tryOrder []ShiftName) bool {
	for _, shift := range tryOrder {
		if s.HasCapacity(day, shift) {
			s.assign(day, shift, employee)
			return true
		}
	}
	return false
}

// fallbackOrder is the ranked list followed by every shift it does not mention
func fallbackOrder(ranked []ShiftName) []ShiftName {
	order := slices.Clone(ranked)
	for _, shift := range Shifts {
		if !slices.Contains(ranked, shift) {
			order = append(order, shift)
		}
	}
	return order
}
