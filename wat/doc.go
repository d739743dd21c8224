// Package wat renders a module in the WebAssembly text format.
//
// The rendering uses the folded S-expression form and is deterministic:
// the same module always renders to the same bytes, which makes the text
// form suitable for golden tests and reproducible-build comparisons.
package wat
