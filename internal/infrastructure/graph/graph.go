// Package graph builds the directed dependency graph over resources
// across a set of stacks (spec §4.1). It is grounded on the teacher's
// resource.Graph (adjacency lists keyed by node id, Kahn's-algorithm
// topological sort), generalized with a Direction parameter and
// cross-stack Fn::ImportValue edge resolution.
package graph

import (
	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// Direction selects which way edges point when the graph is built.
// Direct is the graph as derived from the templates; Opposite inverts
// every edge before the digest engine hashes it, and is only ever
// used to compute structural overrides (spec §4.1, §4.4).
type Direction int

const (
	Direct Direction = iota
	Opposite
)

// Graph is an immutable directed graph over resources, keyed by node
// id "{stackName}.{logicalId}" (spec §4.1).
type Graph struct {
	nodes     map[string]bool
	outEdges  map[string][]string // dependency targets (things this node points at)
	inEdges   map[string][]string // dependents (things pointing at this node)
	order     []string            // deterministic node insertion order
	direction Direction
}

// Build constructs the dependency graph over all resources in stacks.
// stacks must be either all-deployed or all-local, never mixed (spec
// §4.1 Inputs).
func Build(stacks []cfn.Stack, direction Direction) *Graph {
	g := &Graph{
		nodes:     make(map[string]bool),
		outEdges:  make(map[string][]string),
		inEdges:   make(map[string][]string),
		direction: direction,
	}

	exports := buildExportsIndex(stacks)

	// First pass: register every node so edge targets can be validated.
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for _, logicalID := range st.Template.SortedResourceIDs() {
			g.addNode(cfn.NewLocation(st.StackName, logicalID).NodeID())
		}
	}

	// Second pass: derive edges.
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for _, logicalID := range st.Template.SortedResourceIDs() {
			res := st.Template.Resources[logicalID]
			from := cfn.NewLocation(st.StackName, logicalID).NodeID()

			for _, dep := range res.DependsOn {
				g.addRawEdge(from, cfn.NewLocation(st.StackName, dep).NodeID())
			}

			walkValue(res.Properties, func(m cfn.Value) {
				if target, ok := resolveConstructTarget(m, st.StackName, exports); ok {
					g.addRawEdge(from, target)
				}
			})
		}
	}

	return g
}

func (g *Graph) addNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.order = append(g.order, id)
	}
}

// addRawEdge adds from->to honoring direction, dropping self-loops and
// edges to unknown nodes silently (spec §4.1).
func (g *Graph) addRawEdge(from, to string) {
	if from == to {
		return
	}
	if !g.nodes[to] {
		return
	}
	if g.direction == Opposite {
		from, to = to, from
	}
	g.outEdges[from] = append(g.outEdges[from], to)
	g.inEdges[to] = append(g.inEdges[to], from)
}

// Nodes returns every node id in the graph, in deterministic insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// OutNeighbors returns the dependency targets of node (spec §4.1).
func (g *Graph) OutNeighbors(node string) ([]string, error) {
	if !g.nodes[node] {
		return nil, cfn.NewErrGraphNodeMissing(node)
	}
	return append([]string(nil), g.outEdges[node]...), nil
}

// InNeighbors returns the dependents of node (spec §4.1).
func (g *Graph) InNeighbors(node string) ([]string, error) {
	if !g.nodes[node] {
		return nil, cfn.NewErrGraphNodeMissing(node)
	}
	return append([]string(nil), g.inEdges[node]...), nil
}

// Has reports whether node exists in the graph.
func (g *Graph) Has(node string) bool { return g.nodes[node] }

// SortedNodes returns a topological order (Kahn's algorithm by
// out-degree), dependencies before dependents. Nodes unreachable due
// to a cycle are omitted — the digest engine simply does not hash
// cycle members (spec §4.1 Failure, §4.2).
func (g *Graph) SortedNodes() []string {
	outDegree := make(map[string]int, len(g.nodes))
	for _, n := range g.order {
		outDegree[n] = len(g.outEdges[n])
	}

	queue := make([]string, 0)
	for _, n := range g.order {
		if outDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		result = append(result, n)

		for _, dependent := range g.inEdges[n] {
			outDegree[dependent]--
			if outDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return result
}
