package hll

// settings collects the configurable fields of a Sketch before validation.
type settings struct {
	hash      HashFunc
	precision uint8
	hashBits  uint8
}

// Option configures a Sketch under construction. Only the fields to
// override need be supplied; everything else keeps its library default.
type Option func(*settings)

// WithPrecision sets the precision p, which trades accuracy for memory:
// the sketch allocates 2^p one-byte registers and the typical relative
// error is 1.04/sqrt(2^p). p must be in [MinPrecision, MaxPrecision].
func WithPrecision(precision uint8) Option {
	return func(s *settings) {
		s.precision = precision
	}
}

// WithHash sets the hash function and the width of its meaningful output
// bits. The hash must be deterministic and close to uniformly distributed
// over the declared width for the accuracy guarantees to hold.
func WithHash(fn HashFunc, bits uint8) Option {
	return func(s *settings) {
		s.hash = fn
		s.hashBits = bits
	}
}
