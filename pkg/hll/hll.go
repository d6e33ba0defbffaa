// Package hll provides a HyperLogLog cardinality estimator.
//
// HyperLogLog estimates the number of distinct elements in a multiset with
// a typical standard error of 1.04/sqrt(2^p) using only 2^p registers of
// memory (one byte each). It is useful for answering "approximately how
// many distinct items have I seen?" over large or unbounded streams
// (distinct visitors, deduplicated log lines, query-planner NDV
// estimates) without storing the items themselves.
//
// This implementation uses the analytic three-regime bias correction of
// the original HyperLogLog paper (Flajolet et al., 2007): linear counting
// in the low-cardinality regime, the raw harmonic-mean estimate in the
// intermediate regime, and the hash-collision correction in the large
// regime.
//
// A Sketch is not safe for concurrent use. Distinct sketches share no
// state; to parallelize, shard by goroutine and combine with Merge.
package hll

import (
	"math"
	"math/bits"
)

const (
	// MinPrecision is the minimum allowed precision (2^4 = 16 registers).
	MinPrecision = 4

	// MaxPrecision is the maximum allowed precision (2^16 = 65536 registers).
	MaxPrecision = 16

	// DefaultPrecision is the precision used when none is configured.
	DefaultPrecision = 10

	// precisionP5 is precision 5 for alpha constant lookup.
	precisionP5 = 5

	// precisionP6 is precision 6 for alpha constant lookup.
	precisionP6 = 6

	// alphaP4 is the alpha constant for 2^4 = 16 registers.
	alphaP4 = 0.673

	// alphaP5 is the alpha constant for 2^5 = 32 registers.
	alphaP5 = 0.697

	// alphaP6 is the alpha constant for 2^6 = 64 registers.
	alphaP6 = 0.709

	// alphaGenericNumerator is the numerator in the generic alpha formula.
	alphaGenericNumerator = 0.7213

	// alphaGenericDenominatorCoeff is the coefficient in the generic alpha denominator.
	alphaGenericDenominatorCoeff = 1.079

	// smallRangeFactor bounds the linear-counting regime: E <= 2.5 * m.
	smallRangeFactor = 2.5

	// largeRangeDivisor bounds the intermediate regime: E <= 2^W / 30.
	largeRangeDivisor = 30
)

// Sketch is a HyperLogLog cardinality estimator.
//
// The zero value is unusable; construct with New. A Sketch is exclusively
// owned by its creator and must not be accessed from multiple goroutines
// without external synchronization.
type Sketch struct {
	registers []uint8
	hash      HashFunc
	precision uint8
	hashBits  uint8
}

// New creates a HyperLogLog sketch. Without options it uses
// DefaultPrecision and the library string hash; override with
// WithPrecision and WithHash.
func New(opts ...Option) (*Sketch, error) {
	s := settings{
		precision: DefaultPrecision,
		hash:      StringHash,
		hashBits:  HashBits32,
	}

	for _, opt := range opts {
		opt(&s)
	}

	if s.precision < MinPrecision || s.precision > MaxPrecision {
		return nil, ErrPrecisionOutOfRange
	}

	if s.hash == nil {
		return nil, ErrNilHash
	}

	if s.hashBits != HashBits32 && s.hashBits != HashBits64 {
		return nil, ErrInvalidHashBits
	}

	regCount := uint(1) << s.precision

	return &Sketch{
		registers: make([]uint8, regCount),
		hash:      s.hash,
		precision: s.precision,
		hashBits:  s.hashBits,
	}, nil
}

// Precision returns the configured precision of the sketch.
func (s *Sketch) Precision() uint8 {
	return s.precision
}

// RegisterCount returns the number of registers (2^p).
func (s *Sketch) RegisterCount() uint {
	return uint(1) << s.precision
}

// HashBits returns the meaningful output width of the configured hash.
func (s *Sketch) HashBits() uint8 {
	return s.hashBits
}

// Add inserts data into the sketch. The register index is taken from the
// top p bits of the hash; the rank is the zero run scanned upward from
// bit 0 of the low p bits, so the two fields never overlap.
//
// Adding the same element again never changes the final estimate:
// registers hold monotone maxima.
func (s *Sketch) Add(data []byte) error {
	if s == nil {
		return ErrNilSketch
	}

	if s.registers == nil {
		return ErrUninitialized
	}

	hashVal := s.hash(data)
	idx := (hashVal >> (s.hashBits - s.precision)) & ((uint64(1) << s.precision) - 1)
	rank := s.zeroRun(hashVal) + 1

	if rank > s.registers[idx] {
		s.registers[idx] = rank
	}

	return nil
}

// zeroRun counts consecutive zero bits from bit 0 of the hash value,
// scanning only the low p bits. An all-zero window yields the full hash
// width, matching the exhausted-scan behavior of the estimator this
// statistic is defined for.
func (s *Sketch) zeroRun(hashVal uint64) uint8 {
	window := hashVal & ((uint64(1) << s.precision) - 1)
	if window == 0 {
		return s.hashBits
	}

	return uint8(bits.TrailingZeros64(window))
}

// Count returns the estimated number of distinct elements added so far.
// The estimate is truncated toward zero; it is never negative (the
// large-range correction is clamped at zero against floating-point drift).
func (s *Sketch) Count() (uint64, error) {
	if s == nil {
		return 0, ErrNilSketch
	}

	if s.registers == nil {
		return 0, ErrUninitialized
	}

	regCount := float64(uint(1) << s.precision)
	rawEstimate := s.alpha() * regCount * regCount / s.harmonicSum()

	estimate := s.correct(rawEstimate, regCount)
	if math.IsNaN(estimate) || estimate < 0 {
		estimate = 0
	}

	return uint64(estimate), nil
}

// correct applies the three-regime range correction to the raw estimate.
func (s *Sketch) correct(rawEstimate, regCount float64) float64 {
	hashRange := math.Exp2(float64(s.hashBits))

	switch {
	case rawEstimate <= smallRangeFactor*regCount:
		zeros := s.zeroRegisters()
		if zeros == 0 {
			return rawEstimate
		}

		// Linear counting: estimate from the fraction of empty registers.
		return regCount * math.Log(regCount/float64(zeros))
	case rawEstimate <= hashRange/largeRangeDivisor:
		return rawEstimate
	default:
		ratio := rawEstimate / hashRange
		if ratio >= 1 {
			// The hash space is saturated: every output value has been
			// seen, so the range itself is the only defined answer.
			return hashRange
		}

		return -hashRange * math.Log(1-ratio)
	}
}

// harmonicSum computes the sum of 2^(-M[j]) over all registers.
func (s *Sketch) harmonicSum() float64 {
	sum := 0.0

	for _, val := range s.registers {
		sum += math.Exp2(-float64(val))
	}

	return sum
}

// zeroRegisters counts registers that are still at zero.
func (s *Sketch) zeroRegisters() int {
	count := 0

	for _, val := range s.registers {
		if val == 0 {
			count++
		}
	}

	return count
}

// alpha returns the alpha_m bias-correction constant for the configured
// register count. For m >= 128, alpha_m = 0.7213 / (1 + 1.079/m).
func (s *Sketch) alpha() float64 {
	switch s.precision {
	case MinPrecision:
		return alphaP4
	case precisionP5:
		return alphaP5
	case precisionP6:
		return alphaP6
	default:
		regCount := float64(uint(1) << s.precision)

		return alphaGenericNumerator / (1 + alphaGenericDenominatorCoeff/regCount)
	}
}

// Merge combines other into s by taking the register-wise maximum, so the
// merged sketch estimates the cardinality of the union of both input
// streams. other is not modified.
//
// Both sketches must have been built with the same precision and hash
// width; mismatches are rejected rather than silently truncated. Hash
// function identity cannot be checked: merging sketches fed through
// different hash functions produces garbage, and avoiding that is the
// caller's responsibility.
func (s *Sketch) Merge(other *Sketch) error {
	if s == nil || other == nil {
		return ErrNilSketch
	}

	if s.registers == nil || other.registers == nil {
		return ErrUninitialized
	}

	if s.precision != other.precision {
		return ErrPrecisionMismatch
	}

	if s.hashBits != other.hashBits {
		return ErrHashMismatch
	}

	for i, val := range other.registers {
		if val > s.registers[i] {
			s.registers[i] = val
		}
	}

	return nil
}

// Reset clears all registers without reallocating the underlying array.
func (s *Sketch) Reset() error {
	if s == nil {
		return ErrNilSketch
	}

	if s.registers == nil {
		return ErrUninitialized
	}

	for i := range s.registers {
		s.registers[i] = 0
	}

	return nil
}

// Clone creates a deep copy of the sketch.
func (s *Sketch) Clone() (*Sketch, error) {
	if s == nil {
		return nil, ErrNilSketch
	}

	if s.registers == nil {
		return nil, ErrUninitialized
	}

	regs := make([]uint8, len(s.registers))
	copy(regs, s.registers)

	return &Sketch{
		registers: regs,
		hash:      s.hash,
		precision: s.precision,
		hashBits:  s.hashBits,
	}, nil
}

// Close releases the register array. A closed sketch rejects all further
// operations with ErrUninitialized; closing twice is detected and
// reported, not ignored.
func (s *Sketch) Close() error {
	if s == nil {
		return ErrNilSketch
	}

	if s.registers == nil {
		return ErrUninitialized
	}

	s.registers = nil

	return nil
}
