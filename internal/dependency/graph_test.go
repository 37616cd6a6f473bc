package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	require.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		expected int
	}{
		{
			name:     "add single node",
			nodes:    []Node{{ID: "network"}},
			expected: 1,
		},
		{
			name: "add multiple nodes",
			nodes: []Node{
				{ID: "network"},
				{ID: "db", DependsOn: []NodeID{"network"}},
				{ID: "web", DependsOn: []NodeID{"db"}},
			},
			expected: 3,
		},
		{
			name: "replace existing node",
			nodes: []Node{
				{ID: "web"},
				{ID: "web", DependsOn: []NodeID{"network"}},
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			assert.Len(t, g.nodes, tt.expected)

			last := tt.nodes[len(tt.nodes)-1]
			got := g.Get(last.ID)
			require.NotNil(t, got)
			assert.Equal(t, last.DependsOn, got.DependsOn)
		})
	}
}

func TestGet(t *testing.T) {
	g := New()
	assert.Nil(t, g.Get("nonexistent"))

	g.AddNode(Node{ID: "web", DependsOn: []NodeID{"db", "cache"}})
	got := g.Get("web")
	require.NotNil(t, got)
	assert.Equal(t, NodeID("web"), got.ID)
	assert.Equal(t, []NodeID{"db", "cache"}, got.DependsOn)
}

func TestDependenciesAndDependents(t *testing.T) {
	g := New()
	assert.Empty(t, g.Dependencies("nonexistent"))
	assert.Empty(t, g.Dependents("nonexistent"))

	g.AddNode(Node{ID: "k8s1"})
	g.AddNode(Node{ID: "pf1", DependsOn: []NodeID{"k8s1"}})
	g.AddNode(Node{ID: "pf2", DependsOn: []NodeID{"k8s1"}})
	g.AddNode(Node{ID: "mcp1", DependsOn: []NodeID{"pf1"}})
	g.AddNode(Node{ID: "mcp2", DependsOn: []NodeID{"pf1", "k8s1"}})

	assert.ElementsMatch(t, []NodeID{"pf1", "k8s1"}, g.Dependencies("mcp2"))
	assert.ElementsMatch(t, []NodeID{"pf1", "pf2", "mcp2"}, g.Dependents("k8s1"))
	assert.ElementsMatch(t, []NodeID{"mcp1", "mcp2"}, g.Dependents("pf1"))
	assert.Empty(t, g.Dependents("pf2"))
	assert.Empty(t, g.Dependents("mcp1"))
}

func TestValidateDetectsMissingDependency(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "web", DependsOn: []NodeID{"network"}})

	err := g.Validate()
	require.Error(t, err)
	var missing *MissingDependency
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, NodeID("web"), missing.Node)
	assert.Equal(t, NodeID("network"), missing.Missing)
}

func TestValidateDetectsCycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", DependsOn: []NodeID{"b"}})
	g.AddNode(Node{ID: "b", DependsOn: []NodeID{"c"}})
	g.AddNode(Node{ID: "c", DependsOn: []NodeID{"a"}})

	err := g.Validate()
	require.Error(t, err)
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.NotEmpty(t, cycle.Cycle)
}

func TestSelfDependencyIsACycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", DependsOn: []NodeID{"a"}})

	var cycle *CycleError
	require.ErrorAs(t, g.Validate(), &cycle)
}

func TestValidateAcceptsDAG(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "k8s-mc"})
	g.AddNode(Node{ID: "k8s-wc"})
	g.AddNode(Node{ID: "pf-prometheus", DependsOn: []NodeID{"k8s-mc"}})
	g.AddNode(Node{ID: "pf-grafana", DependsOn: []NodeID{"k8s-mc"}})
	g.AddNode(Node{ID: "pf-alloy", DependsOn: []NodeID{"k8s-wc"}})
	g.AddNode(Node{ID: "mcp-kubernetes", DependsOn: []NodeID{"k8s-mc"}})
	g.AddNode(Node{ID: "mcp-prometheus", DependsOn: []NodeID{"pf-prometheus"}})
	g.AddNode(Node{ID: "mcp-grafana", DependsOn: []NodeID{"pf-grafana"}})

	assert.NoError(t, g.Validate())

	mcDependents := g.Dependents("k8s-mc")
	assert.ElementsMatch(t, []NodeID{"pf-prometheus", "pf-grafana", "mcp-kubernetes"}, mcDependents)

	promDependents := g.Dependents("pf-prometheus")
	assert.Equal(t, []NodeID{"mcp-prometheus"}, promDependents)
}

func TestClosureAndDependentClosure(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "network"})
	g.AddNode(Node{ID: "db", DependsOn: []NodeID{"network"}})
	g.AddNode(Node{ID: "cache", DependsOn: []NodeID{"network"}})
	g.AddNode(Node{ID: "web", DependsOn: []NodeID{"db", "cache"}})

	assert.Equal(t, []NodeID{"cache", "db", "network", "web"}, g.Closure([]NodeID{"web"}))
	assert.Equal(t, []NodeID{"cache", "db", "network", "web"}, g.DependentClosure([]NodeID{"network"}))
}

func TestTopoBatchesOrdersByDependency(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "network"})
	g.AddNode(Node{ID: "db", DependsOn: []NodeID{"network"}})
	g.AddNode(Node{ID: "cache", DependsOn: []NodeID{"network"}})
	g.AddNode(Node{ID: "web", DependsOn: []NodeID{"db", "cache"}})

	batches := g.TopoBatches(g.Closure([]NodeID{"web"}))
	require.Len(t, batches, 3)
	assert.Equal(t, []NodeID{"network"}, batches[0])
	assert.Equal(t, []NodeID{"cache", "db"}, batches[1])
	assert.Equal(t, []NodeID{"web"}, batches[2])
}

func TestReverseTopoBatchesStopsDependentsFirst(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "network"})
	g.AddNode(Node{ID: "db", DependsOn: []NodeID{"network"}})
	g.AddNode(Node{ID: "web", DependsOn: []NodeID{"db"}})

	batches := g.ReverseTopoBatches(g.Closure([]NodeID{"web"}))
	require.Len(t, batches, 3)
	assert.Equal(t, []NodeID{"web"}, batches[0])
	assert.Equal(t, []NodeID{"db"}, batches[1])
	assert.Equal(t, []NodeID{"network"}, batches[2])
}
