package hll_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/distinct/pkg/hll"
)

// hash32Max bounds the output of the 32-bit hash functions.
const hash32Max = uint64(math.MaxUint32)

func TestHashes_Deterministic(t *testing.T) {
	t.Parallel()

	// IntegerHash only consumes the first 4 bytes, so its inputs must
	// differ within that window; the other hashes cover full strings.
	tests := []struct {
		name string
		fn   hll.HashFunc
		a, b []byte
	}{
		{name: hll.HashNameString, fn: hll.StringHash, a: []byte("alpha"), b: []byte("alphb")},
		{name: hll.HashNameInteger, fn: hll.IntegerHash, a: []byte{1, 2, 3, 4}, b: []byte{1, 2, 3, 5}},
		{name: hll.HashNameXXHash, fn: hll.XXHash, a: []byte("alpha"), b: []byte("alphb")},
		{name: hll.HashNameMurmur3, fn: hll.Murmur3Hash, a: []byte("alpha"), b: []byte("alphb")},
		{name: hll.HashNameMixedFNV, fn: hll.MixedFNVHash, a: []byte("alpha"), b: []byte("alphb")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.fn(tt.a), tt.fn(tt.a))
			assert.NotEqual(t, tt.fn(tt.a), tt.fn(tt.b))
		})
	}
}

func TestHashes_32BitWidth(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		[]byte("a"),
		[]byte("hello world"),
		{0x01, 0x02, 0x03, 0x04},
		{0xff, 0xff, 0xff, 0xff},
	}

	for _, input := range inputs {
		assert.LessOrEqual(t, hll.StringHash(input), hash32Max)
		assert.LessOrEqual(t, hll.IntegerHash(input), hash32Max)
	}
}

func TestIntegerHash_Padding(t *testing.T) {
	t.Parallel()

	// Short input is zero-padded; longer input ignores the tail.
	assert.Equal(t, hll.IntegerHash([]byte{42}), hll.IntegerHash([]byte{42, 0, 0, 0}))
	assert.Equal(t, hll.IntegerHash([]byte{1, 2, 3, 4}), hll.IntegerHash([]byte{1, 2, 3, 4, 5, 6}))

	// Strings sharing their first 4 bytes collide.
	assert.Equal(t, hll.IntegerHash([]byte("alpha")), hll.IntegerHash([]byte("alphb")))
}

func TestHashByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantBits uint8
	}{
		{name: hll.HashNameString, wantBits: hll.HashBits32},
		{name: hll.HashNameInteger, wantBits: hll.HashBits32},
		{name: hll.HashNameXXHash, wantBits: hll.HashBits64},
		{name: hll.HashNameMurmur3, wantBits: hll.HashBits64},
		{name: hll.HashNameMixedFNV, wantBits: hll.HashBits64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn, bits, err := hll.HashByName(tt.name)
			require.NoError(t, err)
			require.NotNil(t, fn)
			assert.Equal(t, tt.wantBits, bits)
		})
	}

	t.Run("unknown_name", func(t *testing.T) {
		t.Parallel()

		_, _, err := hll.HashByName("sha1048576")
		assert.ErrorIs(t, err, hll.ErrUnknownHash)
	})
}
