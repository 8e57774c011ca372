package cnf

// Assignment is a valuation of the variables 1..Vars(). Variables the
// engine did not report read as false.
type Assignment struct {
	values []bool
}

// NewAssignment returns an all-false assignment over vars variables.
func NewAssignment(vars int) Assignment {
	return Assignment{values: make([]bool, vars+1)}
}

// FromModel builds an assignment from a model where model[k] is the value
// of variable k+1.
func FromModel(model []bool) Assignment {
	a := NewAssignment(len(model))
	copy(a.values[1:], model)
	return a
}

// FromLiterals builds an assignment from signed literals; a positive
// literal sets its variable true. Zero literals are ignored.
func FromLiterals(lits []int) Assignment {
	vars := 0
	for _, lit := range lits {
		if v := abs(lit); v > vars {
			vars = v
		}
	}
	a := NewAssignment(vars)
	for _, lit := range lits {
		if lit > 0 {
			a.values[lit] = true
		}
	}
	return a
}

// Vars returns the number of variables covered by a.
func (a Assignment) Vars() int {
	if len(a.values) == 0 {
		return 0
	}
	return len(a.values) - 1
}

// Value returns the value of variable id.
func (a Assignment) Value(id int) bool {
	if id <= 0 || id >= len(a.values) {
		return false
	}
	return a.values[id]
}

// Set assigns variable id. It panics if id is outside 1..Vars().
func (a Assignment) Set(id int, value bool) {
	a.values[id] = value
}

// Literals returns the assignment as signed literals, one per variable.
func (a Assignment) Literals() []int {
	lits := make([]int, 0, a.Vars())
	for id := 1; id < len(a.values); id++ {
		if a.values[id] {
			lits = append(lits, id)
		} else {
			lits = append(lits, -id)
		}
	}
	return lits
}
