// Package template expands the placeholder syntax unit files use in
// executable local paths and command arguments (environment values and
// working directories are passed to processes unexpanded): shell-style
// $VAR/%VAR% environment references, {{ Resources.KEY }} lookups against a
// unit's resolved named resources, and, for anything more involved, a full
// text/template render with Sprig's function map available.
//
// Engine implements the single-string Expand used by the unit lifecycle
// engine; each unit gets its own Engine built from its own resolved resource
// map, so one unit's {{ Resources.KEY }} references can never resolve
// against another unit's resources.
package template
