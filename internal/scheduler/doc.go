// Package scheduler translates a batch Start/Stop/Restart/Reset request
// into a safe per-unit transition ordering over the dependency graph.
//
// Start expands the requested names to their full dependency closure and
// walks it in topologically-sorted batches (alphabetical within a batch),
// starting every unit in a batch concurrently and waiting for the batch to
// finish before moving to the next. A unit whose dependency failed to reach
// Running or Completed is recorded as failed in the returned map without an
// attempt to start it (its own lifecycle state is not changed), and that
// failure propagates to its own dependents in later batches.
//
// Stop expands to the dependent closure and walks it in reverse-topological
// batches, so a unit is always stopped before anything it depends on.
//
// Every unit name has its own transition lock, acquired for the duration of
// whatever operation is in flight for it, so a Start and a Stop (or two
// overlapping Starts) for the same unit can never race each other.
//
// Scheduler also republishes every unit's state-change callback onto a
// fan-out of subscriber channels obtained through Subscribe.
package scheduler
