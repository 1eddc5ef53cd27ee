package scheduler

import (
	"slices"
	"strings"
)

// Day is one of the seven fixed day labels
type Day string

const (
	Mon Day = "Mon"
	Tue Day = "Tue"
	Wed Day = "Wed"
	Thu Day = "Thu"
	Fri Day = "Fri"
	Sat Day = "Sat"
	Sun Day = "Sun"
)

// Days is the ordered week. Order defines carry-over direction.
var Days = []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// ShiftName is one of the three fixed shift labels
type ShiftName string

const (
	Morning   ShiftName = "morning"
	Afternoon ShiftName = "afternoon"
	Evening   ShiftName = "evening"
)

// Shifts is the fixed label order used by fallback and rebalancing
var Shifts = []ShiftName{Morning, Afternoon, Evening}

// preferenceRounds is how many ranks the greedy assigner consults
const preferenceRounds = 3

// ParseDay matches a day label case-insensitively, ignoring surrounding whitespace
func ParseDay(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// ParseShift returns the shift for an exact (trimmed, lowercased) label match
func ParseShift(s string) (ShiftName, bool) {
	candidate := ShiftName(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Shifts, candidate) {
		return candidate, true
	}
	return "", false
}

// DayIndex returns the position of d in the week, or -1
func DayIndex(d Day) int {
	return slices.Index(Days, d)
}

// Config holds the capacity rules for one scheduling run
type Config struct {
	// MinPerShift is the best-effort lower bound of employees per shift
	MinPerShift int

	// MaxPerShift is the hard upper bound per shift. Zero or negative means unbounded.
	MaxPerShift int

	// MaxDaysPerEmployee caps the number of days any employee works across the week
	MaxDaysPerEmployee int

	// RandomSeed keys the backfill shuffle
	RandomSeed int64
}

// DefaultConfig returns the standard staffing rules
func DefaultConfig() Config {
	return Config{
		MinPerShift:        2,
		MaxPerShift:        4,
		MaxDaysPerEmployee: 5,
		RandomSeed:         42,
	}
}

// Bounded reports whether MaxPerShift is enforced
func (c Config) Bounded() bool {
	return c.MaxPerShift > 0
}

// PreferenceKind discriminates RawPreference
type PreferenceKind int

const (
	// PreferenceAbsent means nothing was supplied for the day
	PreferenceAbsent PreferenceKind = iota
	// PreferenceSingle is a single shift label
	PreferenceSingle
	// PreferenceRanked is an ordered list of shift labels
	PreferenceRanked
)

// RawPreference is what a caller supplied for one employee and day: either a
// single label or a ranked list. Labels are unvalidated. The zero value is absent.
type RawPreference struct {
	kind   PreferenceKind
	single string
	ranked []string
}

// SinglePreference builds a single-label preference
func SinglePreference(label string) RawPreference {
	return RawPreference{kind: PreferenceSingle, single: label}
}

// RankedPreference builds a ranked-list preference (rank 0 first)
func RankedPreference(labels ...string) RawPreference {
	return RawPreference{kind: PreferenceRanked, ranked: slices.Clone(labels)}
}

// Kind reports which variant is held
func (p RawPreference) Kind() PreferenceKind {
	return p.kind
}

// RawPreferences maps employee name -> day -> raw value
type RawPreferences map[string]map[Day]RawPreference

// Preferences maps employee -> day -> ranked valid shifts (rank 0 = most preferred)
type Preferences map[string]map[Day][]ShiftName

// Schedule maps day -> shift -> employees in insertion order
type Schedule map[Day]map[ShiftName][]string

// NewSchedule returns an empty schedule with every day and shift present
func NewSchedule() Schedule {
	sched := make(Schedule, len(Days))
	for _, day := range Days {
		sched[day] = make(map[ShiftName][]string, len(Shifts))
		for _, shift := range Shifts {
			sched[day][shift] = []string{}
		}
	}
	return sched
}

// Count returns the number of employees on a day's shift
func (s Schedule) Count(day Day, shift ShiftName) int {
	return len(s[day][shift])
}

// Sorted returns a copy with each shift's employees sorted lexicographically.
// Insertion order is not a contract; this is the presentation order.
func (s Schedule) Sorted() Schedule {
	out := NewSchedule()
	for day, shifts := range s {
		if out[day] == nil {
			out[day] = make(map[ShiftName][]string)
		}
		for shift, names := range shifts {
			sorted := slices.Clone(names)
			slices.Sort(sorted)
			out[day][shift] = sorted
		}
	}
	return out
}

// ShiftOf returns the shift an employee works on a day, if any
func (s Schedule) ShiftOf(day Day, employee string) (ShiftName, bool) {
	for _, shift := range Shifts {
		if slices.Contains(s[day][shift], employee) {
			return shift, true
		}
	}
	return "", false
}
