package yul

import (
	"fmt"
	"strconv"
)

// LiteralValue resolves a literal to its numeric value. Number literals
// accept decimal and 0x-prefixed hex; booleans map to 1 and 0. Values that
// do not fit 64 bits, and string literals, are an error: string literals
// are only meaningful as verbatim arguments to literal-argument builtins.
func LiteralValue(lit *Literal) (uint64, error) {
	switch lit.Kind {
	case NumberLiteral:
		v, err := strconv.ParseUint(lit.Value, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("literal %q out of range: %w", lit.Value, err)
		}
		return v, nil
	case BoolLiteral:
		if lit.Value == "true" {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("string literal %q has no numeric value", lit.Value)
	}
}
