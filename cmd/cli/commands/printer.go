package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

const dateLayout = "2006-01-02"

// printSchedule writes the week day by day with one line per shift.
// Names are printed in alphabetical order.
func printSchedule(w io.Writer, sched scheduler.Schedule, dates map[scheduler.Day]time.Time) {
	sorted := sched.Sorted()
	for _, day := range scheduler.Days {
		fmt.Fprintf(w, "\n%s%s\n", day, dayDateSuffix(dates, day))
		for _, shift := range scheduler.Shifts {
			fmt.Fprintf(w, "  - %-10s: %s\n", shiftTitle(shift), formatNames(sorted[day][shift]))
		}
	}
	fmt.Fprintln(w)
}

// printWarnings writes warnings in the order they were raised
func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(w, "%sAll shifts staffed to minimum.%s\n", colorGreen, colorReset)
		return
	}

	fmt.Fprintf(w, "%sNotes & Warnings (%d):%s\n", colorYellow, len(warnings), colorReset)
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
	fmt.Fprintln(w)
}

// printDaysWorked writes the per-employee day count, one line per roster entry
func printDaysWorked(w io.Writer, roster []string, daysWorked map[string]int, maxDays int) {
	if len(roster) == 0 {
		return
	}

	width := 0
	for _, name := range roster {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintln(w, "Days worked:")
	for _, name := range roster {
		days := daysWorked[name]
		color := colorGreen
		switch {
		case days == 0:
			color = colorRed
		case maxDays > 0 && days < maxDays:
			color = colorYellow
		}
		fmt.Fprintf(w, "  %-*s %s%d%s\n", width, name, color, days, colorReset)
	}
	fmt.Fprintln(w)
}

func dayDateSuffix(dates map[scheduler.Day]time.Time, day scheduler.Day) string {
	date, ok := dates[day]
	if !ok || date.IsZero() {
		return ":"
	}
	return fmt.Sprintf(" (%s):", date.Format(dateLayout))
}

func shiftTitle(shift scheduler.ShiftName) string {
	s := string(shift)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
