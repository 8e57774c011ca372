package rikudo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const sentinel = -1

// Solution is a Hamiltonian path together with a constraint set under
// which it is the only Hamiltonian path between its endpoints.
type Solution struct {
	Path        Path
	Constraints ConstraintSet
}

// WriteSolution writes s as three sections, each terminated by -1:
//
//	0      <- path, one vertex per line
//	2
//	1
//	3
//	-1
//	2 2    <- map constraints as "vertex step", steps counted from 1
//	-1
//	0 2    <- diamond constraints as "u v"
//	-1
//
// An empty path writes three bare sentinels.
func WriteSolution(w io.Writer, s Solution) error {
	bw := bufio.NewWriter(w)
	for _, v := range s.Path {
		fmt.Fprintf(bw, "%d\n", v)
	}
	fmt.Fprintf(bw, "%d\n", sentinel)
	for _, m := range s.Constraints.Maps {
		fmt.Fprintf(bw, "%d %d\n", m.Vertex, m.Step+1)
	}
	fmt.Fprintf(bw, "%d\n", sentinel)
	for _, d := range s.Constraints.Diamonds {
		fmt.Fprintf(bw, "%d %d\n", d.U, d.V)
	}
	fmt.Fprintf(bw, "%d\n", sentinel)
	return bw.Flush()
}

// ReadSolution parses the format produced by WriteSolution.
func ReadSolution(r io.Reader) (Solution, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(section string) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("error reading solution: %w", err)
			}
			return 0, fmt.Errorf("unexpected end of solution in %s section", section)
		}
		value, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("invalid number (%s) in %s section", scanner.Text(), section)
		}
		return value, nil
	}

	var s Solution
	for {
		v, err := next("path")
		if err != nil {
			return Solution{}, err
		}
		if v == sentinel {
			break
		}
		s.Path = append(s.Path, v)
	}
	for {
		v, err := next("map")
		if err != nil {
			return Solution{}, err
		}
		if v == sentinel {
			break
		}
		step, err := next("map")
		if err != nil {
			return Solution{}, err
		}
		if step < 1 {
			return Solution{}, fmt.Errorf("invalid step %d for vertex %d: steps start at 1", step, v)
		}
		s.Constraints.Maps = append(s.Constraints.Maps, MapConstraint{Step: step - 1, Vertex: v})
	}
	for {
		u, err := next("diamond")
		if err != nil {
			return Solution{}, err
		}
		if u == sentinel {
			break
		}
		v, err := next("diamond")
		if err != nil {
			return Solution{}, err
		}
		s.Constraints.Diamonds = append(s.Constraints.Diamonds, DiamondConstraint{U: u, V: v})
	}
	return s, nil
}
