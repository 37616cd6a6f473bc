// Package config defines the on-disk unit schema and loads a unit
// directory into validated Unit values.
//
// # Unit Files
//
// Each unit is one file, either JSON or TOML, named "<unit-name>.json" or
// "<unit-name>.toml" (the name field inside the file, if present, wins over
// the filename). A unit directory is a flat directory of such files; there
// is no nesting and no layering (unlike the multi-source YAML configuration
// this package's ancestor used) — wpm manages one unit directory per user.
//
// # Loading
//
// LoadUnits reads every "*.json"/"*.toml" file in a directory, parses each
// into a Unit, and validates the set as a whole: every name must be unique,
// every DependsOn entry must name another unit in the set, and the
// resulting dependency graph (see internal/dependency) must be acyclic.
// Parse failures for individual files are collected rather than stopping
// at the first one, so a single load reports every bad file; LoadUnits
// returns the units that did parse together with that error, and the
// daemon rejects the whole load when the error is non-nil.
//
// # Storage
//
// Storage is a small synchronized file writer used by the ExampleGen CLI
// command to write canned unit files.
package config
