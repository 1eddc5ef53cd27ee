package db

// Run represents a persisted scheduling run
type Run struct {
	ID                 string
	WeekStart          string // 2006-01-02, always a Monday
	MinPerShift        int
	MaxPerShift        int
	MaxDaysPerEmployee int
	RandomSeed         int64
	CreatedAt          string // RFC3339, UTC
}

// Assignment represents one employee placed on one shift of a run
type Assignment struct {
	ID        string
	RunID     string
	Day       string
	ShiftDate string
	Shift     string
	Employee  string
	Position  int // insertion order within the shift
}

// Warning represents a non-fatal note raised while scheduling a run
type Warning struct {
	ID       string
	RunID    string
	Position int
	Message  string
}
