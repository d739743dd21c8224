package dialect

import "github.com/wasmlang/yulwasm/wasm"

// BuiltinFunction describes one builtin. Parameters and Returns use the
// machine word kinds; an empty ValType in Parameters means the kind is
// unspecified and the argument is passed through unconverted. Returns holds
// zero or one entry.
type BuiltinFunction struct {
	Name             string
	Parameters       []wasm.ValType
	Returns          []wasm.ValType
	LiteralArguments []bool
}

// LiteralArgument reports whether argument i must stay a verbatim literal.
func (b *BuiltinFunction) LiteralArgument(i int) bool {
	return i < len(b.LiteralArguments) && b.LiteralArguments[i]
}

// NeedsLiteralArguments reports whether any argument position is flagged
// literal-only.
func (b *BuiltinFunction) NeedsLiteralArguments() bool {
	for _, lit := range b.LiteralArguments {
		if lit {
			return true
		}
	}
	return false
}

// Dialect resolves builtin names. Builtin returns nil for unknown names,
// which the translator treats as user-defined function calls.
type Dialect interface {
	Builtin(name string) *BuiltinFunction
}
