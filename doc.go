// Package yulwasm translates Yul source trees into WebAssembly modules.
//
// The translation bridges two incompatible execution models: Yul is an
// unstructured, multi-return, untyped statement/expression language, while
// WebAssembly offers structured control flow with labeled blocks and
// branches, single-return calls, and two integer widths. The codetransform
// package performs that lowering in a single pass, preserving program
// semantics exactly.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	yulwasm/          Root package with the convenience compile functions
//	├── yul/          Source tree, literal resolution, name dispenser, parser
//	├── dialect/      Builtin-function catalog (the only type information)
//	├── codetransform/ The Yul to WebAssembly lowering pass
//	├── wasm/         The structured WebAssembly representation produced
//	├── wat/          Text format rendering of produced modules
//	├── binary/       Binary format encoding of produced modules
//	└── errors/       Structured error types shared by all phases
//
// # Quick Start
//
// Compile a program to the text format:
//
//	text, err := yulwasm.CompileText(`{
//	    function double(x) -> y {
//	        y := i64.add(x, x)
//	    }
//	}`)
//
// Or drive the phases directly:
//
//	tree, err := yul.Parse(src)
//	module, err := codetransform.Run(dialect.NewWasmDialect(), tree)
//	text := wat.Print(module)
//	bin, err := binary.Encode(module)
//
// Produced binaries export every function by name and can be instantiated
// with any WebAssembly runtime; programs calling eth.* builtins need a host
// module named "ethereum" providing the corresponding functions.
package yulwasm
