package solver

import (
	"errors"
	"fmt"
)

var (
	ErrNoPath  = errors.New("no hamiltonian path exists")
	ErrNoCycle = errors.New("no hamiltonian cycle exists")
	// ErrUndetermined is matched by UndeterminedError.
	ErrUndetermined = errors.New("could not determine a distinguishing constraint set")
)

// UndeterminedError is returned by a growing refinement that reached its
// iteration bound while the path was still not unique.
type UndeterminedError struct {
	Iterations int
}

func (e UndeterminedError) Error() string {
	return fmt.Sprintf("%s after %d iterations", ErrUndetermined, e.Iterations)
}

func (e UndeterminedError) Is(target error) bool {
	return target == ErrUndetermined
}
