package graph

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVertexCount = errors.New("number of vertices should be a positive integer")
	ErrVertexOutOfRange   = errors.New("invalid vertex index")
)

// Edge is a directed edge From -> To.
type Edge struct {
	From int
	To   int
}

// Graph is a directed graph over the vertices 0..N()-1. A Graph is
// immutable once built; the adjacency it returns must not be modified.
type Graph struct {
	adjacency [][]int
}

// New builds a graph with n vertices from a list of directed edges. Edges
// keep their input order inside each vertex's out-neighbor list; a
// repeated edge is kept once.
func New(n int, edges []Edge) (*Graph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVertexCount, n)
	}
	adjacency := make([][]int, n)
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, fmt.Errorf("%w: edge (%d, %d) with %d vertices", ErrVertexOutOfRange, e.From, e.To, n)
		}
		adjacency[e.From] = appendNeighbor(adjacency[e.From], e.To)
	}
	return &Graph{adjacency: adjacency}, nil
}

// FromAdjacency builds a graph whose vertex count is len(adjacency). The
// i-th entry lists the out-neighbors of vertex i.
func FromAdjacency(adjacency [][]int) (*Graph, error) {
	n := len(adjacency)
	if n == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVertexCount, n)
	}
	copied := make([][]int, n)
	for v, neighbors := range adjacency {
		for _, w := range neighbors {
			if w < 0 || w >= n {
				return nil, fmt.Errorf("%w: edge (%d, %d) with %d vertices", ErrVertexOutOfRange, v, w, n)
			}
		}
		for _, w := range neighbors {
			copied[v] = appendNeighbor(copied[v], w)
		}
	}
	return &Graph{adjacency: copied}, nil
}

func appendNeighbor(neighbors []int, w int) []int {
	for _, o := range neighbors {
		if o == w {
			return neighbors
		}
	}
	return append(neighbors, w)
}

// N returns the number of vertices.
func (g *Graph) N() int {
	return len(g.adjacency)
}

// Neighbors returns the out-neighbors of v in insertion order.
func (g *Graph) Neighbors(v int) []int {
	return g.adjacency[v]
}

// Contains reports whether v is a vertex of g.
func (g *Graph) Contains(v int) bool {
	return v >= 0 && v < len(g.adjacency)
}

// HasEdge reports whether the directed edge u -> v exists.
func (g *Graph) HasEdge(u, v int) bool {
	if !g.Contains(u) {
		return false
	}
	for _, w := range g.adjacency[u] {
		if w == v {
			return true
		}
	}
	return false
}

// Edges returns every edge of g, grouped by source vertex.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for u, neighbors := range g.adjacency {
		for _, v := range neighbors {
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	return edges
}

// MinOutDegreeVertex returns the vertex with the fewest out-neighbors. Ties
// go to the lowest vertex index. Cycle search anchors on this vertex, so
// the number of independent attempts is bounded by its out-degree.
func (g *Graph) MinOutDegreeVertex() int {
	anchor := 0
	for v := 1; v < len(g.adjacency); v++ {
		if len(g.adjacency[v]) < len(g.adjacency[anchor]) {
			anchor = v
		}
	}
	return anchor
}
