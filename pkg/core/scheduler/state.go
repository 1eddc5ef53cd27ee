package scheduler

import (
	"math/rand"
	"slices"
)

// State is the mutable context of one scheduling run. It is created fresh by
// NewState, threaded through every phase and discarded once the run returns.
type State struct {
	Config      Config
	Roster      []string
	Preferences Preferences

	// Schedule being built
	Schedule Schedule

	// AssignedOnDay tracks who already works on each day (any shift)
	AssignedOnDay map[Day]map[string]bool

	// DaysWorked counts assigned days per employee across the whole week
	DaysWorked map[string]int

	// CarryOver holds employees deferred into a day, in deferral order.
	// Each day's list is consumed once, when that day is assigned.
	CarryOver map[Day][]string

	// Warnings collected so far, in the order they were raised
	Warnings []string

	rng *rand.Rand
}

// NewState allocates empty per-run state for an already cleaned roster
func NewState(roster []string, prefs Preferences, cfg Config) *State {
	state := &State{
		Config:        cfg,
		Roster:        roster,
		Preferences:   prefs,
		Schedule:      NewSchedule(),
		AssignedOnDay: make(map[Day]map[string]bool, len(Days)),
		DaysWorked:    make(map[string]int, len(roster)),
		CarryOver:     make(map[Day][]string, len(Days)),
		Warnings:      []string{},
		rng:           rand.New(rand.NewSource(cfg.RandomSeed)),
	}

	for _, day := range Days {
		state.AssignedOnDay[day] = make(map[string]bool)
		state.CarryOver[day] = []string{}
	}
	for _, employee := range roster {
		state.DaysWorked[employee] = 0
	}

	return state
}

// HasCapacity reports whether a shift can take one more employee
func (s *State) HasCapacity(day Day, shift ShiftName) bool {
	if !s.Config.Bounded() {
		return true
	}
	return s.Schedule.Count(day, shift) < s.Config.MaxPerShift
}

// IsAssigned reports whether the employee already works on the day
func (s *State) IsAssigned(day Day, employee string) bool {
	return s.AssignedOnDay[day][employee]
}

// UnderCap reports whether the employee can work another day
func (s *State) UnderCap(employee string) bool {
	return s.DaysWorked[employee] < s.Config.MaxDaysPerEmployee
}

// available combines the two eligibility checks every phase starts with
func (s *State) available(day Day, employee string) bool {
	return !s.IsAssigned(day, employee) && s.UnderCap(employee)
}

// assign places an employee on a shift and updates the bookkeeping
func (s *State) assign(day Day, shift ShiftName, employee string) {
	s.Schedule[day][shift] = append(s.Schedule[day][shift], employee)
	s.AssignedOnDay[day][employee] = true
	s.DaysWorked[employee]++
}

// popLast removes the most recently added employee from a shift and reverses
// their bookkeeping
func (s *State) popLast(day Day, shift ShiftName) string {
	names := s.Schedule[day][shift]
	employee := names[len(names)-1]
	s.Schedule[day][shift] = names[:len(names)-1]

	if s.AssignedOnDay[day][employee] {
		delete(s.AssignedOnDay[day], employee)
		s.DaysWorked[employee]--
	}

	return employee
}

// preferencesFor returns the ranked shifts for an employee on a day
func (s *State) preferencesFor(employee string, day Day) []ShiftName {
	return s.Preferences[employee][day]
}

// dayOrder is the carry-over list for the day followed by the rest of the roster
func (s *State) dayOrder(day Day) []string {
	carried := s.CarryOver[day]
	order := make([]string, 0, len(s.Roster)+len(carried))
	order = append(order, carried...)
	for _, employee := range s.Roster {
		if !slices.Contains(carried, employee) {
			order = append(order, employee)
		}
	}
	return order
}

// nextDay returns the day after d, if the week has one
func nextDay(d Day) (Day, bool) {
	i := DayIndex(d)
	if i < 0 || i+1 >= len(Days) {
		return "", false
	}
	return Days[i+1], true
}

func (s *State) warn(message string) {
	s.Warnings = append(s.Warnings, message)
}
