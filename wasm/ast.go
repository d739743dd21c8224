package wasm

// Expression is the closed union over every node that can appear in a
// function body. Statements and value-producing expressions share the union;
// whether a node may produce a value is determined by its position, exactly
// as in the text format.
type Expression interface {
	isExpression()
}

// Literal is an I64 constant.
type Literal struct {
	Value uint64
}

// StringLiteral carries verbatim literal text for builtins whose arguments
// must stay literal (for example data segment names). It never reaches the
// binary encoder as a runtime value.
type StringLiteral struct {
	Value string
}

// LocalVariable reads a parameter or local by name.
type LocalVariable struct {
	Name string
}

// GlobalVariable reads a module global by name.
type GlobalVariable struct {
	Name string
}

// LocalAssignment writes Value into a local.
type LocalAssignment struct {
	VariableName string
	Value        Expression
}

// GlobalAssignment writes Value into a module global.
type GlobalAssignment struct {
	VariableName string
	Value        Expression
}

// BuiltinCall applies a machine instruction named after its text-format
// mnemonic (i64.add, i64.eqz, ...).
type BuiltinCall struct {
	Name      string
	Arguments []Expression
}

// FunctionCall calls a defined or imported function by internal name.
type FunctionCall struct {
	Name      string
	Arguments []Expression
}

// If executes Statements when Condition is nonzero (I32 condition). Else is
// nil when the construct has no else arm; a non-nil empty Else still renders
// an (empty) else arm.
type If struct {
	Condition  Expression
	Statements []Expression
	Else       []Expression
}

// Block is a labeled or unlabeled sequence. Branching to its label exits
// the block.
type Block struct {
	LabelName  string
	Statements []Expression
}

// Loop is a labeled sequence. Branching to its label restarts the loop.
type Loop struct {
	LabelName  string
	Statements []Expression
}

// Branch jumps to a label unconditionally.
type Branch struct {
	LabelName string
}

// BranchIf jumps to a label when Condition is nonzero (I32 condition).
type BranchIf struct {
	LabelName string
	Condition Expression
}

func (Literal) isExpression()          {}
func (StringLiteral) isExpression()    {}
func (LocalVariable) isExpression()    {}
func (GlobalVariable) isExpression()   {}
func (LocalAssignment) isExpression()  {}
func (GlobalAssignment) isExpression() {}
func (BuiltinCall) isExpression()      {}
func (FunctionCall) isExpression()     {}
func (If) isExpression()               {}
func (Block) isExpression()            {}
func (Loop) isExpression()             {}
func (Branch) isExpression()           {}
func (BranchIf) isExpression()         {}
