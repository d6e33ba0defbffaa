package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/distinct/pkg/hll"
)

const (
	// lcgFirstFromDefaultSeed is (1664525*6969 + 1013904223) mod 2^31.
	lcgFirstFromDefaultSeed = uint32(1876560708)

	// demoSigmas is the flakiness guard for the demonstration scenario.
	demoSigmas = 3.0

	// demoExpectedLow and demoExpectedHigh bracket the true distinct
	// count of 3000 uniform draws over a 5000-value domain
	// (5000 * (1 - (1 - 1/5000)^3000) is roughly 2256).
	demoExpectedLow  = 2100
	demoExpectedHigh = 2400
)

func TestNextLCG_KnownValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lcgFirstFromDefaultSeed, nextLCG(DefaultSeed))
}

func TestRun_DemoScenario(t *testing.T) {
	t.Parallel()

	result, err := Run(DefaultParams())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Expected, uint64(demoExpectedLow))
	assert.LessOrEqual(t, result.Expected, uint64(demoExpectedHigh))

	t.Logf("expected=%d estimated=%d relError=%.4f%% bound=%.4f%%",
		result.Expected, result.Estimated, result.RelativeError*100, result.ErrorBound*100)

	assert.True(t, result.Within(demoSigmas),
		"relative error %.4f exceeds %gx bound %.4f",
		result.RelativeError, demoSigmas, result.ErrorBound)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Run(DefaultParams())
	require.NoError(t, err)

	second, err := Run(DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_Validation(t *testing.T) {
	t.Parallel()

	t.Run("zero_iterations", func(t *testing.T) {
		t.Parallel()

		params := DefaultParams()
		params.Iterations = 0

		_, err := Run(params)
		assert.ErrorIs(t, err, ErrInvalidIterations)
	})

	t.Run("zero_domain", func(t *testing.T) {
		t.Parallel()

		params := DefaultParams()
		params.Domain = 0

		_, err := Run(params)
		assert.ErrorIs(t, err, ErrInvalidDomain)
	})

	t.Run("unknown_hash", func(t *testing.T) {
		t.Parallel()

		params := DefaultParams()
		params.HashName = "nonesuch"

		_, err := Run(params)
		assert.ErrorIs(t, err, hll.ErrUnknownHash)
	})

	t.Run("bad_precision", func(t *testing.T) {
		t.Parallel()

		params := DefaultParams()
		params.Precision = 99

		_, err := Run(params)
		assert.ErrorIs(t, err, hll.ErrPrecisionOutOfRange)
	})
}

func TestSweep(t *testing.T) {
	t.Parallel()

	base := DefaultParams()
	base.HashName = hll.HashNameXXHash

	points, err := Sweep(base, []int{100, 1000, 10000})
	require.NoError(t, err)
	require.Len(t, points, 3)

	for _, point := range points {
		assert.Positive(t, point.Result.Expected, "iterations=%d", point.Iterations)
		assert.True(t, point.Result.Within(demoSigmas),
			"iterations=%d relError=%.4f", point.Iterations, point.Result.RelativeError)
	}
}
