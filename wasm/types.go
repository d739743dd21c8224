package wasm

// ValType identifies one of the two machine word kinds of the target
// representation. The zero value means "unspecified" and is only valid in
// builtin signatures, never in a finished module.
type ValType string

const (
	I32 ValType = "i32" // narrow kind, used only at import/builtin boundaries
	I64 ValType = "i64" // canonical kind, carries every user-visible value
)

// Module is the root of the produced representation. Function order follows
// source order, import order follows first use during translation, and the
// globals are the multi-return handoff pool. Built once, never mutated
// afterwards.
type Module struct {
	Functions []FunctionDefinition
	Imports   []FunctionImport
	Globals   []GlobalVariableDeclaration
}

// FunctionDefinition is one translated function. Parameters and locals are
// all of the canonical kind. Returns reports whether the function leaves a
// single I64 value on exit.
type FunctionDefinition struct {
	Name           string
	ParameterNames []string
	Locals         []VariableDeclaration
	Returns        bool
	Body           []Expression
}

// FunctionImport declares a function provided by a foreign module.
// InternalName is the name call sites use; ExternalName is the name in the
// foreign module. ReturnType is empty when the import returns nothing.
type FunctionImport struct {
	Module       string
	ExternalName string
	InternalName string
	ParamTypes   []ValType
	ReturnType   ValType
}

// VariableDeclaration declares a function-local I64 variable.
type VariableDeclaration struct {
	Name string
}

// GlobalVariableDeclaration declares a module-level mutable I64 variable,
// zero-initialized.
type GlobalVariableDeclaration struct {
	Name string
}
