package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

const dateLayout = "2006-01-02"

// WeekDates expands a Monday into the seven calendar dates of its week
func WeekDates(start time.Time) ([]time.Time, error) {
	start = normalizeDate(start)
	if start.Weekday() != time.Monday {
		return nil, fmt.Errorf("week must start on a Monday, got %s (%s)", start.Format(dateLayout), start.Weekday())
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   len(scheduler.Days),
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build week rule: %w", err)
	}

	return rule.All(), nil
}

// DatesByDay maps each day label to its date in the week starting at start
func DatesByDay(start time.Time) (map[scheduler.Day]time.Time, error) {
	dates, err := WeekDates(start)
	if err != nil {
		return nil, err
	}

	byDay := make(map[scheduler.Day]time.Time, len(dates))
	for i, day := range scheduler.Days {
		byDay[day] = dates[i]
	}
	return byDay, nil
}

// NextMonday returns the next Monday after the given date
func NextMonday(from time.Time) time.Time {
	normalized := normalizeDate(from)

	// Monday is 1; if today is Monday use next week's
	daysUntilMonday := (8 - int(normalized.Weekday())) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}

	return normalized.AddDate(0, 0, daysUntilMonday)
}

// normalizeDate drops the time of day to avoid time-of-day issues
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
