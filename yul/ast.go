package yul

// Statement is the closed union over source statement variants.
type Statement interface {
	isStatement()
}

// Expression is the closed union over source expression variants.
type Expression interface {
	isExpression()
}

// Block is a brace-delimited statement sequence.
type Block struct {
	Statements []Statement
}

// VariableDeclaration introduces one or more variables, optionally with an
// initializer. Value is nil for a plain declaration; with more than one
// variable the initializer must be a call returning that many values.
type VariableDeclaration struct {
	Variables []string
	Value     Expression
}

// Assignment assigns the value of Value to one or more existing variables.
type Assignment struct {
	VariableNames []string
	Value         Expression
}

// ExpressionStatement evaluates an expression for its effect.
type ExpressionStatement struct {
	Expression Expression
}

// If runs Body when Condition is nonzero. There is no else in the source
// language; else chains are spelled with switch.
type If struct {
	Condition Expression
	Body      Block
}

// Case is one arm of a switch. A nil Value marks the default case, which
// must be last.
type Case struct {
	Value *Literal
	Body  Block
}

// Switch compares Expression against each case value in order.
type Switch struct {
	Expression Expression
	Cases      []Case
}

// ForLoop is the single looping construct: Pre runs once, Condition guards
// each iteration, Post runs after the body on every iteration.
type ForLoop struct {
	Pre       Block
	Condition Expression
	Post      Block
	Body      Block
}

// Break exits the innermost loop.
type Break struct{}

// Continue skips to the innermost loop's post statements.
type Continue struct{}

// Leave exits the current function, returning the current values of its
// return variables.
type Leave struct{}

// FunctionDefinition defines a function. Only legal directly inside the
// top-level block.
type FunctionDefinition struct {
	Name            string
	Parameters      []string
	ReturnVariables []string
	Body            Block
}

// FunctionCall calls a builtin or user-defined function.
type FunctionCall struct {
	FunctionName string
	Arguments    []Expression
}

// Identifier references a variable by name.
type Identifier struct {
	Name string
}

// LiteralKind distinguishes the literal flavors of the source language.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	BoolLiteral
	StrLiteral
)

// Literal is a source literal. Value holds the verbatim text (digits for
// numbers, "true"/"false" for booleans, the unquoted content for strings).
type Literal struct {
	Kind  LiteralKind
	Value string
}

func (*Block) isStatement()               {}
func (*VariableDeclaration) isStatement() {}
func (*Assignment) isStatement()          {}
func (*ExpressionStatement) isStatement() {}
func (*If) isStatement()                  {}
func (*Switch) isStatement()              {}
func (*ForLoop) isStatement()             {}
func (*Break) isStatement()               {}
func (*Continue) isStatement()            {}
func (*Leave) isStatement()               {}
func (*FunctionDefinition) isStatement()  {}

func (*FunctionCall) isExpression() {}
func (*Identifier) isExpression()   {}
func (*Literal) isExpression()      {}
