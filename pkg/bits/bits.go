// Package bits converts integers to and from the binary symbols used to seed tapes.
package bits

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Width is the number of symbols produced by Encode.
const Width = 32

// Encode returns the 32-bit two's complement representation of n as '0' and '1'
// symbols, most significant bit first.
func Encode(n int32) []domain.Symbol {
	out := make([]domain.Symbol, Width)
	u := uint32(n)
	for i := range Width {
		if u>>i&1 == 1 {
			out[Width-1-i] = '1'
		} else {
			out[Width-1-i] = '0'
		}
	}
	return out
}

// Decode is the inverse of Encode. It accepts 1 to 32 symbols, most significant bit
// first, and fails on any symbol other than '0' or '1'.
func Decode(symbols []domain.Symbol) (int32, error) {
	if len(symbols) == 0 || len(symbols) > Width {
		return 0, fmt.Errorf("decode bits: want 1 to %d symbols, got %d", Width, len(symbols))
	}
	var u uint32
	for i, s := range symbols {
		u <<= 1
		switch s {
		case '0':
		case '1':
			u |= 1
		default:
			return 0, fmt.Errorf("decode bits: symbol %q at %d is not a bit", s, i)
		}
	}
	return int32(u), nil
}
