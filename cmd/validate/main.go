package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jwebster45206/encounter-engine/pkg/dice"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/jwebster45206/encounter-engine/pkg/tables"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <locations.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &LocationValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range validator.warnings {
		fmt.Println("warning:" + strings.TrimPrefix(w, "  -"))
	}
	fmt.Println("Locations file is valid!")
}

type LocationValidator struct {
	errors   []string
	warnings []string
}

func (v *LocationValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("locations file must have .yaml or .yml extension: %s", baseName)
	}
	if !isValidID(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("locations filename '%s' must be lowercase snake_case", baseName)
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	lf, err := tables.DecodeLocations(f)
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML decoding: %w", filename, err)
	}

	v.errors = nil
	v.warnings = nil
	v.validateLocations(lf)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *LocationValidator) validateLocations(lf *tables.LocationFile) {
	if len(lf.Locations) == 0 {
		v.addError("no locations defined")
		return
	}

	keys := make([]string, 0, len(lf.Locations))
	for k := range lf.Locations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !isValidID(key) {
			v.addError(fmt.Sprintf("location '%s' should be lowercase snake_case", key))
		}

		names := lf.Locations[key]
		if len(names) == 0 {
			v.addWarning(fmt.Sprintf("location '%s' has no monsters; encounters there use the fallback list", key))
			continue
		}

		seen := make(map[string]bool, len(names))
		for i, name := range names {
			trimmed := strings.TrimSpace(name)
			switch {
			case trimmed == "":
				v.addError(fmt.Sprintf("location '%s' monster #%d has an empty name", key, i+1))
			case trimmed != name:
				v.addError(fmt.Sprintf("location '%s' monster '%s' has surrounding whitespace", key, name))
			case seen[strings.ToLower(name)]:
				v.addError(fmt.Sprintf("location '%s' lists '%s' more than once", key, name))
			}
			seen[strings.ToLower(name)] = true
		}
	}

	if len(v.errors) > 0 {
		return
	}
	v.trialRun(lf)
}

// trialRun generates one encounter per location against the overridden
// tables to catch anything the structural checks miss.
func (v *LocationValidator) trialRun(lf *tables.LocationFile) {
	tb := tables.Default().WithLocations(lf.Locations)
	if err := tb.Validate(); err != nil {
		v.addError(err.Error())
		return
	}

	b := encounter.NewBalancer(tb)
	party := encounter.Party{{Level: 5}, {Level: 5}, {Level: 5}, {Level: 5}}
	for location := range lf.Locations {
		res := b.CreateEncounter(dice.NewSource(1), party, location, encounter.Medium)
		if !res.OK() {
			v.addError(fmt.Sprintf("location '%s' failed a trial encounter: %s", location, res.Message))
		}
	}
}

func (v *LocationValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *LocationValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
