package scheduler

import (
	"slices"
	"strings"
)

// NormalizePreferences builds a ranked shift list for every rostered employee
// and every day.
//
// Each candidate label is trimmed and lowercased and kept only when it exactly
// matches a known shift. A single label becomes a one-element list, a ranked
// list keeps its order (duplicates included) and a missing day yields an empty
// list. Raw entries are matched to the roster by trimmed name; entries for
// names not on the roster are ignored. Nothing here returns an error.
func NormalizePreferences(roster []string, raw RawPreferences) Preferences {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)

	// An exact key wins over keys that only match after trimming
	byName := make(map[string]map[Day]RawPreference, len(raw))
	for _, name := range names {
		key := strings.TrimSpace(name)
		if _, exists := byName[key]; exists && key != name {
			continue
		}
		byName[key] = raw[name]
	}

	prefs := make(Preferences, len(roster))
	for _, employee := range roster {
		perDay := byName[employee]
		prefs[employee] = make(map[Day][]ShiftName, len(Days))
		for _, day := range Days {
			prefs[employee][day] = normalizeValue(perDay[day])
		}
	}

	return prefs
}

// normalizeValue filters a raw value down to its valid shift labels
func normalizeValue(value RawPreference) []ShiftName {
	var candidates []string
	switch value.Kind() {
	case PreferenceSingle:
		candidates = []string{value.single}
	case PreferenceRanked:
		candidates = value.ranked
	}

	ranked := make([]ShiftName, 0, len(candidates))
	for _, candidate := range candidates {
		if shift, ok := ParseShift(candidate); ok {
			ranked = append(ranked, shift)
		}
	}
	return ranked
}
