package hll

import "errors"

var (
	// ErrNilSketch is returned when a required sketch argument is nil.
	ErrNilSketch = errors.New("hll: nil sketch")

	// ErrPrecisionOutOfRange is returned when precision is not in [4, 16].
	ErrPrecisionOutOfRange = errors.New("hll: precision must be in [4, 16]")

	// ErrUninitialized is returned when an operation is attempted on a
	// sketch whose register storage is absent: the zero value, or a
	// sketch that was already closed.
	ErrUninitialized = errors.New("hll: sketch is not initialized")

	// ErrNilHash is returned when a nil hash function is configured.
	ErrNilHash = errors.New("hll: hash function must not be nil")

	// ErrInvalidHashBits is returned when the configured hash width is
	// neither 32 nor 64 bits.
	ErrInvalidHashBits = errors.New("hll: hash width must be 32 or 64 bits")

	// ErrPrecisionMismatch is returned when merging sketches with different precisions.
	ErrPrecisionMismatch = errors.New("hll: cannot merge sketches with different precisions")

	// ErrHashMismatch is returned when merging sketches with different hash widths.
	ErrHashMismatch = errors.New("hll: cannot merge sketches with different hash widths")

	// ErrUnknownHash is returned by HashByName for an unrecognized name.
	ErrUnknownHash = errors.New("hll: unknown hash name")
)

// describeUnknown is the diagnostic for errors outside the package taxonomy.
const describeUnknown = "hll: unknown error"

// Describe maps an error produced by this package to a stable
// human-readable diagnostic string for logging. A nil error describes as
// "ok"; anything outside the package taxonomy describes as
// "hll: unknown error" rather than being swallowed.
func Describe(err error) string {
	if err == nil {
		return "ok"
	}

	known := []error{
		ErrNilSketch,
		ErrPrecisionOutOfRange,
		ErrUninitialized,
		ErrNilHash,
		ErrInvalidHashBits,
		ErrPrecisionMismatch,
		ErrHashMismatch,
		ErrUnknownHash,
	}

	for _, sentinel := range known {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return describeUnknown
}
