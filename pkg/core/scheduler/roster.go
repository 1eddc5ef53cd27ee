package scheduler

import "strings"

// CleanRoster trims names, drops blanks and removes duplicates, keeping the
// first occurrence. Duplicates are detected case-insensitively.
func CleanRoster(names []string) []string {
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, name)
	}

	return cleaned
}
