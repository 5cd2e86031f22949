package runner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
)

var (
	ErrInputTooLarge  = errors.New("input does not fit on the tape")
	ErrInvalidUTF8    = errors.New("input contains invalid UTF-8 sequences")
	ErrUnknownSymbols = errors.New("input contains symbols outside the alphabet")
)

// SanitizeInput turns user-supplied tape contents into symbols.
//
// Whitespace and control characters are stripped so that "11 0 111" and "110111\n"
// seed the same tape. The result must fit in room cells and, when alphabet is not
// empty, use only its symbols. Inputs are rejected, never truncated.
func SanitizeInput(input string, alphabet []domain.Symbol, room int) ([]domain.Symbol, error) {
	if !utf8.ValidString(input) {
		return nil, ErrInvalidUTF8
	}

	symbols := make([]domain.Symbol, 0, len(input))
	for _, r := range input {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		symbols = append(symbols, r)
	}

	if len(symbols) > room {
		return nil, fmt.Errorf("%w: size=%d room=%d", ErrInputTooLarge, len(symbols), room)
	}

	if len(alphabet) > 0 {
		var bad []string
		for _, s := range symbols {
			if !slices.Contains(alphabet, s) && !slices.Contains(bad, string(s)) {
				bad = append(bad, string(s))
			}
		}
		if len(bad) > 0 {
			return nil, fmt.Errorf("%w: %s (alphabet %q)", ErrUnknownSymbols, strings.Join(bad, ","), string(alphabet))
		}
	}

	return symbols, nil
}
