package domain

// Symbol is a single character stored in a tape cell.
type Symbol = rune

// Blank is the reserved empty-cell symbol.
const Blank Symbol = '_'

// Symbols converts a string into the sequence of symbols it spells.
func Symbols(s string) []Symbol {
	return []Symbol(s)
}
