package scheduler

import "fmt"

// Backfill tops up every shift below MinPerShift from employees who are free
// that day and under their cap. Candidates are shuffled with the run's seeded
// generator so roster order is not systematically favoured, while identical
// inputs still give identical output. Backfill never pushes a shift past
// MaxPerShift. Shifts left short produce a warning.
func (s *State) Backfill() {
	for _, day := range Days {
		for _, shift := range Shifts {
			s.backfillShift(day, shift)
		}
	}
}

func (s *State) backfillShift(day Day, shift ShiftName) {
	need := s.Config.MinPerShift - s.Schedule.Count(day, shift)
	if need <= 0 {
		return
	}

	candidates := make([]string, 0, len(s.Roster))
	for _, employee := range s.Roster {
		if s.available(day, employee) {
			candidates = append(candidates, employee)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	added := 0
	for _, employee := range candidates {
		if !s.HasCapacity(day, shift) {
			break
		}
		s.assign(day, shift, employee)
		added++
		if added >= need {
			break
		}
	}

	if have := s.Schedule.Count(day, shift); have < s.Config.MinPerShift {
		s.warn(fmt.Sprintf(
			"Could not meet min staffing for %s %s (%d/%d). Consider more staff or relaxing caps.",
			day, shift, have, s.Config.MinPerShift))
	}
}
