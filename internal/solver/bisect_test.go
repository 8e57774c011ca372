package solver_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/rikudo/internal/solver"
)

func TestMinimalPrefix(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for threshold := 0; threshold <= n; threshold++ {
			t.Run(fmt.Sprintf("%d of %d", threshold, n), func(t *testing.T) {
				var probes []int
				k, err := solver.MinimalPrefix(n, func(k int) (bool, error) {
					probes = append(probes, k)
					return k < threshold, nil
				})
				require.NoError(t, err)
				assert.Equal(t, threshold, k)
				assert.NotContains(t, probes, n)
				assert.LessOrEqual(t, len(probes), 4)
			})
		}
	}
}

func TestMinimalPrefixError(t *testing.T) {
	boom := errors.New("boom")
	_, err := solver.MinimalPrefix(4, func(int) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
