// Package binary encodes a module to the WebAssembly binary format.
//
// The encoder flattens the structured expression tree into bytecode,
// resolving label names to relative branch depths and variable names to
// local/global indices. Every defined function is exported under its own
// name, so encoded modules can be instantiated and called directly.
//
// Link-time constructs (literal-argument builtins carrying verbatim string
// data) have no binary encoding here and are reported as encode errors.
package binary
