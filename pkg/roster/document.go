package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

// Document is a roster file: the employees to schedule and their per-day
// shift preferences keyed by employee name then day label
type Document struct {
	Employees   []string                    `yaml:"employees" json:"employees" validate:"required"`
	Preferences map[string]map[string]Value `yaml:"preferences,omitempty" json:"preferences,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the document's structure. Blank or duplicate names are
// allowed here; the scheduler cleans the roster itself.
func Validate(doc *Document) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("roster validation failed: %w", err)
	}
	return nil
}

// ParseYAML decodes and validates a YAML roster document
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseJSON decodes and validates a JSON roster document
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads a roster document, choosing the decoder by file extension.
// Anything other than .json is read as YAML.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// RawPreferences converts the document's preferences for the scheduler.
// Day labels are matched case-insensitively and unknown labels are ignored.
// When two labels name the same day the one spelled exactly like the day wins.
func (d *Document) RawPreferences() scheduler.RawPreferences {
	raw := make(scheduler.RawPreferences, len(d.Preferences))

	for employee, days := range d.Preferences {
		labels := make([]string, 0, len(days))
		for label := range days {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		byDay := make(map[scheduler.Day]scheduler.RawPreference, len(days))
		for _, label := range labels {
			day, ok := scheduler.ParseDay(label)
			if !ok {
				continue
			}
			if _, seen := byDay[day]; seen && label != string(day) {
				continue
			}
			byDay[day] = days[label].Raw()
		}
		raw[employee] = byDay
	}

	return raw
}
