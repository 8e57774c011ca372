package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Description is a graph together with the endpoints of the requested
// Hamiltonian path, as read from a graph description stream.
type Description struct {
	Graph        *Graph
	Source       int
	Destination  int
	HasEndpoints bool
}

// ReadDescription parses a whitespace separated graph description:
//
//	4       <- number of vertices
//	0 1     <- directed edge 0 -> 1
//	1 3
//	-1      <- end of the edge list
//	0 3     <- source and destination (optional)
//
// The endpoints may be omitted, in which case HasEndpoints is false.
func ReadDescription(r io.Reader) (*Description, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("error reading graph description: %w", err)
			}
			return 0, fmt.Errorf("unexpected end of graph description: missing %s", what)
		}
		value, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("invalid number (%s) for %s", scanner.Text(), what)
		}
		return value, nil
	}

	n, err := next("number of vertices")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVertexCount, n)
	}

	var edges []Edge
	for {
		a, err := next("edge source or -1")
		if err != nil {
			return nil, err
		}
		if a < 0 {
			break
		}
		b, err := next(fmt.Sprintf("edge destination after %d", a))
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{From: a, To: b})
	}

	g, err := New(n, edges)
	if err != nil {
		return nil, err
	}
	d := &Description{Graph: g}

	// endpoints are optional
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading graph description: %w", err)
		}
		return d, nil
	}
	source, err := strconv.Atoi(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("invalid number (%s) for source", scanner.Text())
	}
	destination, err := next("destination")
	if err != nil {
		return nil, err
	}
	if !g.Contains(source) || !g.Contains(destination) {
		return nil, fmt.Errorf("%w: endpoints (%d, %d) with %d vertices", ErrVertexOutOfRange, source, destination, n)
	}
	d.Source, d.Destination, d.HasEndpoints = source, destination, true
	return d, nil
}

// WriteDescription writes d in the format accepted by ReadDescription.
func WriteDescription(w io.Writer, d *Description) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", d.Graph.N())
	for _, e := range d.Graph.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.From, e.To)
	}
	fmt.Fprintln(bw, "-1")
	if d.HasEndpoints {
		fmt.Fprintf(bw, "%d %d\n", d.Source, d.Destination)
	}
	return bw.Flush()
}
