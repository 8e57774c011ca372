package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Clause is a disjunction of signed DIMACS literals: a positive literal
// asserts its variable, a negative one its negation.
type Clause []int

// Instance is a CNF formula: a declared variable count and an ordered list
// of clauses.
type Instance struct {
	vars    int
	clauses []Clause
}

// NewInstance returns an instance declaring vars variables. The declared
// count is raised if a clause mentions a larger variable.
func NewInstance(vars int, clauses ...Clause) *Instance {
	i := &Instance{vars: vars}
	i.Add(clauses...)
	return i
}

// Vars returns the declared number of variables.
func (i *Instance) Vars() int {
	return i.vars
}

// Len returns the number of clauses.
func (i *Instance) Len() int {
	return len(i.clauses)
}

// Clauses returns the clauses in insertion order. The result must not be
// modified.
func (i *Instance) Clauses() []Clause {
	return i.clauses
}

// HasEmptyClause reports whether the instance contains the empty clause,
// which no assignment satisfies.
func (i *Instance) HasEmptyClause() bool {
	for _, c := range i.clauses {
		if len(c) == 0 {
			return true
		}
	}
	return false
}

// Add appends clauses to i in place.
func (i *Instance) Add(clauses ...Clause) {
	for _, c := range clauses {
		for _, lit := range c {
			if v := abs(lit); v > i.vars {
				i.vars = v
			}
		}
		i.clauses = append(i.clauses, c)
	}
}

// Extend returns a new instance holding every clause of i followed by
// clauses. The receiver is left untouched, so one base instance can be
// extended with different clause sets.
func (i *Instance) Extend(clauses ...Clause) *Instance {
	e := &Instance{
		vars:    i.vars,
		clauses: i.clauses[:len(i.clauses):len(i.clauses)],
	}
	e.Add(clauses...)
	return e
}

// Verify checks that a satisfies every clause of i.
func (i *Instance) Verify(a Assignment) error {
	for n, c := range i.clauses {
		satisfied := false
		for _, lit := range c {
			if a.Value(abs(lit)) == (lit > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return fmt.Errorf("clause %d (%v) violated", n+1, c)
		}
	}
	return nil
}

// WriteDIMACS writes i in DIMACS CNF format: a "p cnf <vars> <clauses>"
// header followed by one zero-terminated clause per line.
func (i *Instance) WriteDIMACS(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", i.vars, len(i.clauses))
	for _, c := range i.clauses {
		for _, lit := range c {
			bw.WriteString(strconv.Itoa(lit))
			bw.WriteByte(' ')
		}
		bw.WriteString("0\n")
	}
	return bw.Flush()
}

func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}
