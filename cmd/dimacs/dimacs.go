package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/operator-framework/rikudo/internal/cnf"
)

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+\d+\s+\d+$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)*0$`)
	cleanInput  = regexp.MustCompile(`\s\s+`)
)

// Parse reads a CNF problem in DIMACS format, one clause per line
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
func Parse(dimacsReader io.Reader) (*cnf.Instance, error) {
	reader := bufio.NewReader(dimacsReader)

	numVariables := 0
	numClauses := 0
	var inst *cnf.Instance

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading dimacs data: %w", err)
		}
		eof := err != nil
		line = strings.TrimSpace(line)

		switch {
		case line == "" || commentLine.MatchString(line):
			// ignore comments and blank lines

		case headerLine.MatchString(line):
			if inst != nil {
				return nil, fmt.Errorf("invalid statement: (%s). Duplicate header", line)
			}
			problem := strings.Fields(line)
			numVariables, err = strconv.Atoi(problem[2])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[2], line)
			}
			numClauses, err = strconv.Atoi(problem[3])
			if err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", problem[3], line)
			}
			inst = cnf.NewInstance(numVariables)

		case clauseLine.MatchString(line):
			if inst == nil {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variable> <clauses>'")
			}
			line = cleanInput.ReplaceAllString(line, " ")
			fields := strings.Split(line, " ")
			clause, err := parseClause(fields[:len(fields)-1], numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			inst.Add(clause)

		default:
			// error out if the instruction is invalid
			return nil, fmt.Errorf("invalid dimacs command: %s", line)
		}

		if eof {
			break
		}
	}

	if inst == nil {
		return nil, fmt.Errorf("invalid format: no header found")
	}
	if numVariables == 0 || inst.Len() == 0 {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}
	if inst.Len() != numClauses {
		return nil, fmt.Errorf("invalid format: number of clauses in header differ from the total number of clauses")
	}
	return inst, nil
}

func parseClause(fields []string, numVariables int) (cnf.Clause, error) {
	clause := make(cnf.Clause, 0, len(fields))
	for _, lit := range fields {
		litInt, err := strconv.Atoi(lit)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", lit)
		}
		if litInt == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if litInt > numVariables || litInt < -numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", lit)
		}
		clause = append(clause, litInt)
	}
	return clause, nil
}
