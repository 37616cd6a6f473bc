// Package dependency provides a directed acyclic graph (DAG) implementation
// for managing unit dependencies in wpm.
//
// This package underlies the unit registry and the scheduler: it is how the
// daemon knows a unit may not start until its dependencies are running, and
// how it computes a safe order to stop a batch of units without stopping
// something still depended upon.
//
// # Core Concepts
//
// Graph: a directed acyclic graph whose nodes are units and whose edges are
// "depends on" relationships.
//
// Node: a single unit reference — its ID and the IDs it depends on. The
// graph stores no other unit metadata; callers keep that in the registry and
// look nodes up by NodeID (the unit name).
//
// # Validation
//
// Validate walks every DependsOn edge and reports the first missing
// reference or dependency cycle it finds, using a three-color depth-first
// search (white/gray/black) so a cycle is reported as the exact path that
// closes it rather than just "a cycle exists somewhere".
//
// # Ordering
//
// TopoBatches groups a set of node IDs into sequential, dependency-respecting
// batches for starting; ReverseTopoBatches reverses that grouping for
// stopping, so a unit's dependents always stop before the unit itself.
// Within a batch, node IDs sort alphabetically so execution order is
// deterministic.
//
// # Usage Example
//
//	g := dependency.New()
//	g.AddNode(dependency.Node{ID: "network", DependsOn: nil})
//	g.AddNode(dependency.Node{ID: "web", DependsOn: []dependency.NodeID{"network"}})
//
//	if err := g.Validate(); err != nil {
//	    // *dependency.CycleError or *dependency.MissingDependency
//	}
//
//	closure := g.Closure([]dependency.NodeID{"web"})
//	batches := g.TopoBatches(closure) // [[network] [web]]
//
// # Thread Safety
//
// Graph is not safe for concurrent mutation; callers that add nodes from
// multiple goroutines must synchronise externally. Read-only queries
// (Dependencies, Dependents, Closure, TopoBatches) are safe once the graph is
// no longer being written to.
package dependency
