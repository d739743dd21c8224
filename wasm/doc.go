// Package wasm defines the structured WebAssembly representation produced
// by the translator.
//
// The representation is an expression tree, not flat bytecode: control flow
// is expressed with labeled Block and Loop nodes plus Branch/BranchIf, and
// every function has at most one machine return value. Two value types
// exist, I32 and I64; the translator normalizes all user-visible values to
// I64 and narrows or widens only at builtin and import call boundaries.
//
// A Module is self-contained: every label, local, global, and import
// referenced by its function bodies is declared within the same module.
// Consumers render it with the wat package (text format) or the binary
// package (binary format).
package wasm
