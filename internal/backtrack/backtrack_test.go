package backtrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/rikudo/internal/backtrack"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

func mustGraph(t *testing.T, adjacency [][]int) *graph.Graph {
	t.Helper()
	g, err := graph.FromAdjacency(adjacency)
	require.NoError(t, err)
	return g
}

func mustGrid(t *testing.T, rows, cols int) *graph.Graph {
	t.Helper()
	g, err := graph.Grid(rows, cols)
	require.NoError(t, err)
	return g
}

// 0->1, 0->2, 1->2, 2->1, 1->3, 3->1
var scenarioA = [][]int{{1, 2}, {2, 3}, {1}, {1}}

func TestPath(t *testing.T) {
	g := mustGraph(t, scenarioA)

	p, ok, err := backtrack.Path(g, 0, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rikudo.Path{0, 2, 1, 3}, p)

	paths, err := backtrack.Paths(g, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []rikudo.Path{{0, 2, 1, 3}}, paths)

	_, ok, err = backtrack.Path(g, 3, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPathSingleVertex(t *testing.T) {
	g := mustGraph(t, [][]int{{}})
	p, ok, err := backtrack.Path(g, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rikudo.Path{0}, p)
}

func TestPathInvalidInput(t *testing.T) {
	g := mustGraph(t, scenarioA)

	_, _, err := backtrack.Path(g, 0, 4)
	assert.ErrorIs(t, err, graph.ErrVertexOutOfRange)

	_, _, err = backtrack.Path(g, 0, 3, backtrack.WithConstraints(rikudo.ConstraintSet{
		Diamonds: []rikudo.DiamondConstraint{{U: 1, V: 1}},
	}))
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	type tc struct {
		Name     string
		Rows     int
		Cols     int
		Expected int
	}

	for _, tt := range []tc{
		{Name: "single row", Rows: 1, Cols: 5, Expected: 1},
		{Name: "2x2 has no corner to corner path", Rows: 2, Cols: 2, Expected: 0},
		{Name: "2x3", Rows: 2, Cols: 3, Expected: 1},
		{Name: "3x3", Rows: 3, Cols: 3, Expected: 2},
		{Name: "4x4 corners share a colour", Rows: 4, Cols: 4, Expected: 0},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			g := mustGrid(t, tt.Rows, tt.Cols)
			count, err := backtrack.Count(g, 0, g.N()-1)
			require.NoError(t, err)
			assert.Equal(t, tt.Expected, count)
		})
	}
}

func TestLimit(t *testing.T) {
	// complete graph on 5 vertices: 3! paths between two fixed endpoints
	var adjacency [][]int
	for u := 0; u < 5; u++ {
		var neighbors []int
		for v := 0; v < 5; v++ {
			if u != v {
				neighbors = append(neighbors, v)
			}
		}
		adjacency = append(adjacency, neighbors)
	}
	g := mustGraph(t, adjacency)

	count, err := backtrack.Count(g, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	count, err = backtrack.Count(g, 0, 4, backtrack.WithLimit(2))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	paths, err := backtrack.Paths(g, 0, 4, backtrack.WithLimit(10))
	require.NoError(t, err)
	assert.Len(t, paths, 6)
	for _, p := range paths {
		assert.Equal(t, 0, p[0])
		assert.Equal(t, 4, p[len(p)-1])
	}
}

func TestConstraints(t *testing.T) {
	g := mustGrid(t, 3, 3)

	type tc struct {
		Name        string
		Constraints rikudo.ConstraintSet
		Expected    []rikudo.Path
	}

	for _, tt := range []tc{
		{
			Name: "no constraints",
			Expected: []rikudo.Path{
				{0, 3, 6, 7, 4, 1, 2, 5, 8},
				{0, 1, 2, 5, 4, 3, 6, 7, 8},
			},
		},
		{
			Name:        "map selects one snake",
			Constraints: rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{{Step: 1, Vertex: 1}}},
			Expected:    []rikudo.Path{{0, 1, 2, 5, 4, 3, 6, 7, 8}},
		},
		{
			Name:        "diamond selects the other",
			Constraints: rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 4, V: 7}}},
			Expected:    []rikudo.Path{{0, 3, 6, 7, 4, 1, 2, 5, 8}},
		},
		{
			Name: "conflicting pins",
			Constraints: rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{
				{Step: 1, Vertex: 1},
				{Step: 1, Vertex: 3},
			}},
		},
		{
			Name:        "diamond neither snake uses",
			Constraints: rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 0, V: 4}}},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			paths, err := backtrack.Paths(g, 0, 8, backtrack.WithConstraints(tt.Constraints))
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.Expected, paths)
			for _, p := range paths {
				assert.True(t, tt.Constraints.Satisfies(p, g.N()))
			}
		})
	}
}

func TestCycle(t *testing.T) {
	// 2x2 grid: 0-1 / 2-3, every vertex has out-degree two
	g := mustGrid(t, 2, 2)
	anchor := g.MinOutDegreeVertex()
	assert.Equal(t, 0, anchor)

	p, ok, err := backtrack.Cycle(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p, g.N()+1)
	assert.Equal(t, p[0], p[len(p)-1])
	assert.Equal(t, anchor, p[len(p)-2])
	for i := 0; i+1 < len(p); i++ {
		assert.True(t, g.HasEdge(p[i], p[i+1]), "edge %d -> %d", p[i], p[i+1])
	}

	cycles, err := backtrack.Cycles(g)
	require.NoError(t, err)
	// both orientations of the square, each reported once
	assert.ElementsMatch(t, []rikudo.Path{{1, 3, 2, 0, 1}, {2, 3, 1, 0, 2}}, cycles)

	count, err := backtrack.CountCycles(g, backtrack.WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNoCycle(t *testing.T) {
	g := mustGraph(t, scenarioA)
	_, ok, err := backtrack.Cycle(g)
	require.NoError(t, err)
	assert.False(t, ok)

	g = mustGraph(t, [][]int{{0}})
	p, ok, err := backtrack.Cycle(g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rikudo.Path{0, 0}, p)
}

func TestReentrant(t *testing.T) {
	g := mustGrid(t, 3, 3)
	var inner []int
	err := backtrack.WalkPaths(g, 0, 8, func(rikudo.Path) bool {
		count, err := backtrack.Count(g, 0, 8)
		require.NoError(t, err)
		inner = append(inner, count)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, inner)
}
