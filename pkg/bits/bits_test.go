package bits_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/bits"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		n    int32
		want string
	}{
		{0, "00000000000000000000000000000000"},
		{1, "00000000000000000000000000000001"},
		{5554, "00000000000000000001010110110010"},
		{^5554, "11111111111111111110101001001101"},
		{-1, "11111111111111111111111111111111"},
	}
	for _, tt := range tests {
		got := bits.Encode(tt.n)
		assert.Len(t, got, bits.Width)
		assert.Equal(t, tt.want, string(got), "Encode(%d)", tt.n)
	}
}

func TestDecode(t *testing.T) {
	for _, n := range []int32{0, 1, 5554, ^5554, -1, 1 << 30} {
		got, err := bits.Decode(bits.Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	got, err := bits.Decode(domain.Symbols("101"))
	require.NoError(t, err)
	assert.Equal(t, int32(5), got)

	_, err = bits.Decode(domain.Symbols("10_1"))
	assert.ErrorContains(t, err, "not a bit")

	_, err = bits.Decode(nil)
	assert.Error(t, err)
}
