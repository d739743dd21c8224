// Package codetransform lowers the source tree into the structured
// WebAssembly representation.
//
// The translation bridges two incompatible execution models in one pass:
// the source allows unstructured control flow, multiple return values, and
// untyped values, while the target has labeled blocks with branches, one
// return value per call, and two integer widths. Multi-value returns and
// assignments are emulated through a pool of module globals: a callee
// returns its first value directly and writes the rest into the pool, and
// the caller drains the pool immediately. The pool only ever grows, which
// is safe because evaluation is strictly sequential and at most one
// handoff is in flight at a time.
//
// Run is a pure function of its input: the same tree translates to the
// same module, byte for byte. The input tree is expected to be
// pre-validated; contract breaches (a non-function top-level statement, a
// default case out of position, break outside a loop, an oversized
// literal) abort the whole translation with an invariant error.
package codetransform
