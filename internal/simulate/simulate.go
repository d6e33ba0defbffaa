// Package simulate drives the estimator against a deterministic
// pseudo-random stream and compares its output with an exact side count.
//
// The stream is a 32-bit linear congruential generator restricted to a
// bounded value domain, so the true distinct count can be tracked in a
// plain boolean array and the estimator's relative error measured
// exactly.
package simulate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/distinct/pkg/hll"
)

// LCG parameters (Numerical Recipes).
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = uint32(1) << 31
)

// Default stream parameters.
const (
	// DefaultSeed seeds the LCG stream.
	DefaultSeed = 6969

	// DefaultIterations is the number of draws fed to the estimator.
	DefaultIterations = 3000

	// DefaultDomain bounds the drawn values to [0, DefaultDomain).
	DefaultDomain = 5000

	// DefaultHashName is the hash used for the integer stream.
	DefaultHashName = hll.HashNameInteger
)

// elementWidth is the encoded size of one stream element in bytes.
const elementWidth = 4

// canonicalErrorCoeff is the leading coefficient of the HyperLogLog
// standard error, 1.04/sqrt(m).
const canonicalErrorCoeff = 1.04

var (
	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("simulate: iterations must be positive")

	// ErrInvalidDomain is returned when the value domain is not positive.
	ErrInvalidDomain = errors.New("simulate: domain must be positive")
)

// Params configures a simulation run.
type Params struct {
	// HashName selects one of the built-in hashes by name.
	HashName string

	// Iterations is the number of stream draws fed to the estimator.
	Iterations int

	// Seed seeds the pseudo-random stream.
	Seed uint32

	// Domain restricts drawn values to [0, Domain).
	Domain uint32

	// Precision is the estimator precision.
	Precision uint8
}

// DefaultParams returns the canonical demonstration parameters.
func DefaultParams() Params {
	return Params{
		HashName:   DefaultHashName,
		Iterations: DefaultIterations,
		Seed:       DefaultSeed,
		Domain:     DefaultDomain,
		Precision:  hll.DefaultPrecision,
	}
}

// Result reports one simulation outcome.
type Result struct {
	// Expected is the true distinct count from the side array.
	Expected uint64

	// Estimated is the estimator's answer.
	Estimated uint64

	// RelativeError is |Estimated-Expected| / Expected (0 when Expected is 0).
	RelativeError float64

	// ErrorBound is the canonical one-sigma bound 1.04/sqrt(2^p).
	ErrorBound float64
}

// Within reports whether the relative error falls inside sigmas times the
// canonical error bound.
func (r Result) Within(sigmas float64) bool {
	return r.RelativeError <= sigmas*r.ErrorBound
}

// Run feeds Iterations pseudo-random draws from the bounded domain into a
// fresh estimator while tracking exact ground truth, then compares the
// two counts.
func Run(params Params) (Result, error) {
	if params.Iterations <= 0 {
		return Result{}, ErrInvalidIterations
	}

	if params.Domain == 0 {
		return Result{}, ErrInvalidDomain
	}

	hashFn, hashBits, err := hll.HashByName(params.HashName)
	if err != nil {
		return Result{}, fmt.Errorf("resolve hash %q: %w", params.HashName, err)
	}

	sk, err := hll.New(hll.WithPrecision(params.Precision), hll.WithHash(hashFn, hashBits))
	if err != nil {
		return Result{}, fmt.Errorf("build sketch: %w", err)
	}
	defer func() { _ = sk.Close() }()

	seen := make([]bool, params.Domain)
	buf := make([]byte, elementWidth)
	draw := nextLCG(params.Seed)

	for i := 0; i < params.Iterations; i++ {
		value := draw % params.Domain
		seen[value] = true

		binary.LittleEndian.PutUint32(buf, value)

		if err := sk.Add(buf); err != nil {
			return Result{}, fmt.Errorf("add element: %w", err)
		}

		draw = nextLCG(draw)
	}

	expected := uint64(0)

	for _, hit := range seen {
		if hit {
			expected++
		}
	}

	estimated, err := sk.Count()
	if err != nil {
		return Result{}, fmt.Errorf("count: %w", err)
	}

	result := Result{
		Expected:   expected,
		Estimated:  estimated,
		ErrorBound: canonicalErrorCoeff / math.Sqrt(float64(sk.RegisterCount())),
	}

	if expected > 0 {
		result.RelativeError = math.Abs(float64(estimated)-float64(expected)) / float64(expected)
	}

	return result, nil
}

// SweepPoint pairs a sweep target with its result.
type SweepPoint struct {
	Iterations int
	Result     Result
}

// Sweep runs the simulation for each iteration count, holding the other
// parameters of base fixed. The domain is widened to twice the largest
// iteration count so the stream keeps producing fresh values.
func Sweep(base Params, iterations []int) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, len(iterations))

	for _, n := range iterations {
		params := base
		params.Iterations = n

		if widened := uint32(n) * 2; params.Domain < widened {
			params.Domain = widened
		}

		result, err := Run(params)
		if err != nil {
			return nil, fmt.Errorf("sweep at %d iterations: %w", n, err)
		}

		points = append(points, SweepPoint{Iterations: n, Result: result})
	}

	return points, nil
}

// nextLCG advances the linear congruential generator one step.
func nextLCG(v uint32) uint32 {
	return (lcgMultiplier*v + lcgIncrement) % lcgModulus
}
