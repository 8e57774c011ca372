package graph

import "fmt"

var gridSteps = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// GridVertex returns the vertex id of the cell at row, col in a grid with
// the given number of columns.
func GridVertex(row, col, cols int) int {
	return row*cols + col
}

// Grid returns the rows x cols grid graph where every cell is connected in
// both directions to its horizontal and vertical neighbours.
func Grid(rows, cols int) (*Graph, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidVertexCount, rows, cols)
	}
	adjacency := make([][]int, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			for _, step := range gridSteps {
				ii, jj := i+step[0], j+step[1]
				if ii >= 0 && ii < rows && jj >= 0 && jj < cols {
					v := GridVertex(i, j, cols)
					adjacency[v] = append(adjacency[v], GridVertex(ii, jj, cols))
				}
			}
		}
	}
	return &Graph{adjacency: adjacency}, nil
}
