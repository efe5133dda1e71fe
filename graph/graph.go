// Package graph builds the directed supply graph from validated entities
// and answers the adjacency questions routing, ranking and prediction ask.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// ErrDanglingEdge is returned by Build when an edge references a node ID
// that is not part of the node set.
var ErrDanglingEdge = errors.New("graph: edge references unknown node")

// Graph is the immutable directed supply network.
type Graph struct {
	nodes map[string]models.Node
	ids   []string
	out   map[string][]models.Edge
	edges []models.Edge
}

// Build validates edge endpoints against the node set and indexes the
// adjacency. Successor lists are ordered by destination ID so every
// traversal is deterministic.
func Build(nodes []models.Node, edges []models.Edge) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]models.Node, len(nodes)),
		ids:   make([]string, 0, len(nodes)),
		out:   make(map[string][]models.Edge),
		edges: make([]models.Edge, 0, len(edges)),
	}

	for _, n := range nodes {
		g.nodes[n.ID()] = n
		g.ids = append(g.ids, n.ID())
	}
	sort.Strings(g.ids)

	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s (missing %q)", ErrDanglingEdge, e.From, e.To, e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s (missing %q)", ErrDanglingEdge, e.From, e.To, e.To)
		}
		g.out[e.From] = append(g.out[e.From], e)
		g.edges = append(g.edges, e)
	}

	for id := range g.out {
		adj := g.out[id]
		sort.Slice(adj, func(i, j int) bool { return adj[i].To < adj[j].To })
	}

	return g, nil
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (models.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Successors returns the outgoing edges of a node, ordered by destination.
func (g *Graph) Successors(id string) []models.Edge {
	return g.out[id]
}

// EdgeBetween returns the direct edge from one node to another, if any.
func (g *Graph) EdgeBetween(from, to string) (models.Edge, bool) {
	for _, e := range g.out[from] {
		if e.To == to {
			return e, true
		}
	}
	return models.Edge{}, false
}

// Nodes returns all nodes ordered by ID.
func (g *Graph) Nodes() []models.Node {
	out := make([]models.Node, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []models.Edge {
	out := make([]models.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Order is the node count, Size the edge count.
func (g *Graph) Order() int { return len(g.nodes) }
func (g *Graph) Size() int  { return len(g.edges) }

// Connectivity summarizes a node's outgoing edges for the yield model.
type Connectivity struct {
	RouteCount            int
	MeanCenterDistanceKm  float64
	MeanRainAccessibility float64
	MeanCostPerTon        float64
}

// ConnectivityOf aggregates the outgoing edges of a node. Distance averages
// only the connections into collection centers; accessibility and cost
// average every outgoing edge. A node without routes reports zeros.
func (g *Graph) ConnectivityOf(id string) Connectivity {
	adj := g.out[id]
	c := Connectivity{RouteCount: len(adj)}
	if len(adj) == 0 {
		return c
	}

	var centerDist, centerEdges float64
	var accSum, costSum float64
	for _, e := range adj {
		if e.Connection == models.ConnParcelCenter {
			centerDist += e.DistanceKm
			centerEdges++
		}
		accSum += e.RainAccessibility
		costSum += e.CostPerTon
	}
	if centerEdges > 0 {
		c.MeanCenterDistanceKm = centerDist / centerEdges
	}
	c.MeanRainAccessibility = accSum / float64(len(adj))
	c.MeanCostPerTon = costSum / float64(len(adj))
	return c
}
