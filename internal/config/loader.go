package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"wpm/pkg/logging"
)

// LoadUnits scans dir for "*.json" and "*.toml" unit files, parses each one,
// and validates the resulting set as a whole (unique names, resolvable
// dependencies, no cycles). It returns every successfully parsed unit along
// with a LoadErrorCollection describing any file that failed to parse; a
// non-nil, non-empty collection is still returned as the error even when
// some units loaded fine, so callers can decide whether a partial load is
// acceptable.
func LoadUnits(dir string) ([]Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading unit directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".toml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var units []Unit
	var loadErrs LoadErrorCollection

	for _, name := range files {
		path := filepath.Join(dir, name)
		u, err := loadUnitFile(path)
		if err != nil {
			loadErrs.Add(NewLoadError(path, name, "parse", err.Error()))
			continue
		}
		units = append(units, u)
	}

	if loadErrs.HasErrors() {
		logging.Warn("ConfigLoader", "%s", loadErrs.GetDetailedReport())
	}

	if err := ValidateUnitSet(units); err != nil {
		loadErrs.Add(NewLoadError(dir, filepath.Base(dir), "validation", err.Error()))
	}

	if loadErrs.HasErrors() {
		return units, loadErrs
	}
	return units, nil
}

func loadUnitFile(path string) (Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Unit{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var u Unit
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &u); err != nil {
			return Unit{}, fmt.Errorf("parsing json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &u); err != nil {
			return Unit{}, fmt.Errorf("parsing toml: %w", err)
		}
	default:
		return Unit{}, fmt.Errorf("unsupported unit file extension: %s", filepath.Ext(path))
	}

	if u.Name == "" {
		base := filepath.Base(path)
		u.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	u.SourcePath = path
	ApplyDefaults(&u)
	return u, nil
}

// DefaultUnitDir returns the per-user unit directory, $USERPROFILE\.wpm\units
// on Windows, used when no directory is given on the command line.
func DefaultUnitDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return filepath.Join(home, ".wpm", "units"), nil
}
