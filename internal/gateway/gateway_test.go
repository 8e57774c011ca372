package gateway_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/internal/gateway"
)

func engines() map[string]gateway.Engine {
	return map[string]gateway.Engine{
		"gini":      gateway.NewGiniEngine(),
		"gophersat": gateway.NewGophersatEngine(),
	}
}

func TestSubmit(t *testing.T) {
	type tc struct {
		Name        string
		Instance    *cnf.Instance
		Satisfiable bool
		Model       map[int]bool
	}

	for _, tt := range []tc{
		{
			Name:        "single unit",
			Instance:    cnf.NewInstance(1, cnf.Clause{1}),
			Satisfiable: true,
			Model:       map[int]bool{1: true},
		},
		{
			Name:        "forced chain",
			Instance:    cnf.NewInstance(3, cnf.Clause{1, 2}, cnf.Clause{-1}, cnf.Clause{-2, 3}),
			Satisfiable: true,
			Model:       map[int]bool{1: false, 2: true, 3: true},
		},
		{
			Name:     "contradicting units",
			Instance: cnf.NewInstance(1, cnf.Clause{1}, cnf.Clause{-1}),
		},
		{
			Name:     "empty clause",
			Instance: cnf.NewInstance(2, cnf.Clause{1, 2}, cnf.Clause{}),
		},
		{
			Name:     "all four combinations excluded",
			Instance: cnf.NewInstance(2, cnf.Clause{1, 2}, cnf.Clause{1, -2}, cnf.Clause{-1, 2}, cnf.Clause{-1, -2}),
		},
	} {
		for name, engine := range engines() {
			t.Run(tt.Name+"/"+name, func(t *testing.T) {
				result, err := engine.Submit(context.Background(), tt.Instance)
				require.NoError(t, err)
				assert.Equal(t, tt.Satisfiable, result.Satisfiable)
				if !tt.Satisfiable {
					return
				}
				assert.NoError(t, tt.Instance.Verify(result.Assignment))
				for id, value := range tt.Model {
					assert.Equal(t, value, result.Assignment.Value(id), "variable %d", id)
				}
			})
		}
	}
}

func TestSessionExtend(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := engine.Open(cnf.NewInstance(2, cnf.Clause{1, 2}))
			require.NoError(t, err)

			result, err := s.Solve(ctx)
			require.NoError(t, err)
			assert.True(t, result.Satisfiable)

			require.NoError(t, s.Extend(cnf.Clause{-1}))
			result, err = s.Solve(ctx)
			require.NoError(t, err)
			require.True(t, result.Satisfiable)
			assert.False(t, result.Assignment.Value(1))
			assert.True(t, result.Assignment.Value(2))

			require.NoError(t, s.Extend(cnf.Clause{-2}))
			result, err = s.Solve(ctx)
			require.NoError(t, err)
			assert.False(t, result.Satisfiable)
		})
	}
}

func TestSessionGuards(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := engine.Open(cnf.NewInstance(3, cnf.Clause{1, 2, 3}))
			require.NoError(t, err)

			notOne, err := s.Guard(cnf.Clause{-1})
			require.NoError(t, err)
			notTwo, err := s.Guard(cnf.Clause{-2})
			require.NoError(t, err)
			notThree, err := s.Guard(cnf.Clause{-3})
			require.NoError(t, err)
			empty, err := s.Guard()
			require.NoError(t, err)

			result, err := s.Solve(ctx, notOne, notTwo, empty)
			require.NoError(t, err)
			require.True(t, result.Satisfiable)
			assert.True(t, result.Assignment.Value(3))

			result, err = s.Solve(ctx, notOne, notTwo, notThree)
			require.NoError(t, err)
			assert.False(t, result.Satisfiable)

			// guards are not sticky
			result, err = s.Solve(ctx, notThree)
			require.NoError(t, err)
			require.True(t, result.Satisfiable)
			assert.False(t, result.Assignment.Value(3))

			impossible, err := s.Guard(cnf.Clause{})
			require.NoError(t, err)
			result, err = s.Solve(ctx, impossible)
			require.NoError(t, err)
			assert.False(t, result.Satisfiable)

			result, err = s.Solve(ctx)
			require.NoError(t, err)
			assert.True(t, result.Satisfiable)
		})
	}
}

func TestGuardSelectorsAreNotReported(t *testing.T) {
	s, err := gateway.NewGiniEngine().Open(cnf.NewInstance(2, cnf.Clause{1}, cnf.Clause{2}))
	require.NoError(t, err)
	guard, err := s.Guard(cnf.Clause{1, 2})
	require.NoError(t, err)
	result, err := s.Solve(context.Background(), guard)
	require.NoError(t, err)
	require.True(t, result.Satisfiable)
	assert.Equal(t, 2, result.Assignment.Vars())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Submit(ctx, cnf.NewInstance(1, cnf.Clause{1}))
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestParseOutput(t *testing.T) {
	type tc struct {
		Name        string
		Output      string
		ExitCode    int
		Satisfiable bool
		Literals    []int
		Error       error
	}

	for _, tt := range []tc{
		{
			Name:        "satisfiable with several v lines",
			Output:      "c comment\ns SATISFIABLE\nv 1 -2\nv 3 0\n",
			ExitCode:    10,
			Satisfiable: true,
			Literals:    []int{1, -2, 3},
		},
		{
			Name:     "unsatisfiable",
			Output:   "s UNSATISFIABLE\n",
			ExitCode: 20,
		},
		{
			Name:        "exit code only",
			Output:      "v -1 2 0\n",
			ExitCode:    10,
			Satisfiable: true,
			Literals:    []int{-1, 2},
		},
		{
			Name:     "status line wins over exit code",
			Output:   "s UNSATISFIABLE\n",
			ExitCode: 10,
		},
		{
			Name:     "unknown",
			Output:   "s UNKNOWN\n",
			ExitCode: 0,
			Error:    gateway.ErrUnknown,
		},
		{
			Name:        "satisfiable without a model",
			Output:      "s SATISFIABLE\n",
			ExitCode:    10,
			Satisfiable: true,
			Literals:    []int{},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := gateway.ParseOutput(tt.Output, tt.ExitCode)
			if tt.Error != nil {
				assert.ErrorIs(t, err, tt.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Satisfiable, result.Satisfiable)
			if tt.Satisfiable {
				assert.Equal(t, tt.Literals, result.Assignment.Literals())
			}
		})
	}

	_, err := gateway.ParseOutput("s SATISFIABLE\nv 1 x 0\n", 10)
	assert.Error(t, err)
}

func TestExecEngine(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no shell available")
	}
	script := filepath.Join(t.TempDir(), "solver.sh")
	require.NoError(t, os.WriteFile(script, []byte("cat > /dev/null\necho 's SATISFIABLE'\necho 'v -1 2 0'\nexit 10\n"), 0o755))

	engine, err := gateway.New(gateway.Exec, gateway.WithBinary(sh, script))
	require.NoError(t, err)
	inst := cnf.NewInstance(2, cnf.Clause{1, 2}, cnf.Clause{-1})
	result, err := engine.Submit(context.Background(), inst)
	require.NoError(t, err)
	require.True(t, result.Satisfiable)
	assert.NoError(t, inst.Verify(result.Assignment))

	s, err := engine.Open(inst)
	require.NoError(t, err)
	result, err = s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Satisfiable)

	missing, err := gateway.New(gateway.Exec, gateway.WithBinary(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	_, err = missing.Submit(context.Background(), inst)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	for _, name := range []gateway.Name{gateway.Gini, gateway.Gophersat, ""} {
		e, err := gateway.New(name)
		assert.NoError(t, err)
		assert.NotNil(t, e)
	}
	_, err := gateway.New(gateway.Exec)
	assert.Error(t, err, "exec needs a binary")
	_, err = gateway.New("minisat")
	assert.Error(t, err)
}
