// Package dialect is the builtin-function catalog the translator queries.
//
// A builtin signature carries the only type information in the system: the
// machine word kind of each parameter and of the at-most-one return value.
// The translator injects narrowing and widening conversions wherever a
// signature demands the narrow kind, and registers an import for every
// builtin whose name carries the foreign-module prefix.
package dialect
