// Package errors defines the structured error type shared by the toolkit.
//
// Errors carry the phase that produced them and a kind classifying them.
// Translation errors are always invariant violations: the tree handed to
// the translator is expected to be pre-validated, so a transform-phase
// error indicates an upstream defect, not bad user input. Parse and encode
// phases produce ordinary user-facing errors.
package errors
