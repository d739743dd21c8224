// Package yul defines the source statement/expression tree consumed by the
// translator, together with its collaborators: a literal value resolver, a
// fresh-name dispenser, and a small parser for the Yul subset the toolkit
// accepts.
//
// The tree is untyped. The only type information in the system comes from
// builtin signatures in the dialect package, which the translator uses to
// decide where the two machine word kinds meet.
//
// The parser exists so tools and tests can state programs as text; the
// translator itself only ever sees the tree and assumes it is well formed.
package yul
