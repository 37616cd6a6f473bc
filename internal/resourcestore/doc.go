// Package resourcestore resolves the Executable descriptors that appear in
// unit files — a literal local path, a Scoop package reference, or a remote
// URL with an optional sha256 — into a path on disk the lifecycle engine
// can hand to os/exec.
//
// Remote resources are fetched once into a content-addressed cache under
// the store root ("store/<sha256 prefix>/<sha256>.exe", or a URL-hash path
// when no sha256 is configured) and never re-downloaded once present.
// Concurrent requests for the same descriptor — multiple units sharing one
// executable, or a restart racing a dependent unit's start — are coalesced
// through a golang.org/x/sync/singleflight group so only one download ever
// happens at a time for a given key; a partially written file is removed
// rather than left in place on any failure, so a crashed download can never
// be mistaken for a cached hit.
package resourcestore
