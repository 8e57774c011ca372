package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/rikudo/internal/cnf"
)

var _ Engine = &ExecEngine{}

// Exit codes of the SAT competition output convention.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// ExecEngine runs an out-of-process DIMACS solver (kissat, cadical,
// cryptominisat and the like). The instance is fed on stdin and the
// answer is read from the "s" and "v" lines of stdout.
type ExecEngine struct {
	path   string
	args   []string
	logger *logrus.Entry
}

func NewExecEngine(path string, args []string, logger *logrus.Entry) *ExecEngine {
	return &ExecEngine{path: path, args: args, logger: logger}
}

func (e *ExecEngine) Submit(ctx context.Context, inst *cnf.Instance) (Result, error) {
	if inst.HasEmptyClause() {
		return Unsatisfiable, nil
	}

	var stdin bytes.Buffer
	if err := inst.WriteDIMACS(&stdin); err != nil {
		return Result{}, fmt.Errorf("error writing instance: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.path, e.args...)
	cmd.Stdin = &stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.WithFields(logrus.Fields{
		"solver":  e.path,
		"vars":    inst.Vars(),
		"clauses": inst.Len(),
	}).Debug("submitting instance")

	err := cmd.Run()
	code := cmd.ProcessState.ExitCode()
	var exitErr *exec.ExitError
	if err != nil && !(errors.As(err, &exitErr) && (code == exitSatisfiable || code == exitUnsatisfiable)) {
		return Result{}, fmt.Errorf("error running solver (%s): %w: %s", e.path, err, stderr.String())
	}

	result, err := ParseOutput(stdout.String(), code)
	if err != nil {
		return Result{}, err
	}
	if result.Satisfiable && e.logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if verr := inst.Verify(result.Assignment); verr != nil {
			e.logger.WithError(verr).Debug("solver model does not satisfy the instance")
		}
	}
	return result, nil
}

func (e *ExecEngine) Open(inst *cnf.Instance) (Session, error) {
	return NewRebuildSession(e, inst), nil
}

// ParseOutput reads a solver's answer. The "s" line decides the status; if
// there is none the exit code does. A satisfiable answer whose "v" lines
// are missing or partial is returned as is: decoding rejects it.
func ParseOutput(output string, exitCode int) (Result, error) {
	lines := strings.Split(output, "\n")

	status := unknown
	switch exitCode {
	case exitSatisfiable:
		status = satisfiable
	case exitUnsatisfiable:
		status = unsatisfiable
	}
	if line, ok := lo.Find(lines, func(line string) bool { return strings.HasPrefix(line, "s ") }); ok {
		switch strings.TrimSpace(strings.TrimPrefix(line, "s ")) {
		case "SATISFIABLE":
			status = satisfiable
		case "UNSATISFIABLE":
			status = unsatisfiable
		default:
			status = unknown
		}
	}

	switch status {
	case unsatisfiable:
		return Unsatisfiable, nil
	case unknown:
		return Result{}, ErrUnknown
	}

	values := lo.FlatMap(
		lo.Filter(lines, func(line string, _ int) bool { return strings.HasPrefix(line, "v ") || line == "v" }),
		func(line string, _ int) []string { return strings.Fields(strings.TrimPrefix(line, "v")) },
	)
	lits := make([]int, 0, len(values))
	for _, value := range values {
		lit, err := strconv.Atoi(value)
		if err != nil {
			return Result{}, fmt.Errorf("invalid literal (%s) in solver output", value)
		}
		if lit != 0 {
			lits = append(lits, lit)
		}
	}
	return Result{Satisfiable: true, Assignment: cnf.FromLiterals(lits)}, nil
}
