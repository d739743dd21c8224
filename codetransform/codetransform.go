package codetransform

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wasmlang/yulwasm/dialect"
	"github.com/wasmlang/yulwasm/errors"
	"github.com/wasmlang/yulwasm/wasm"
	"github.com/wasmlang/yulwasm/yul"
)

// Imported builtins carry the foreign-module prefix in their name; the
// import descriptor strips it and names the foreign module explicitly.
const (
	importPrefix = "eth."
	importModule = "ethereum"
)

// Run translates a top-level block whose every statement is a function
// definition into a self-contained module. Function order follows source
// order, import order follows first use, and the globals are the
// multi-return pool. A contract breach in the input aborts the whole
// translation with a transform-phase invariant error.
func Run(d dialect.Dialect, ast *yul.Block) (m *wasm.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			m = nil
			err = e
		}
	}()

	var reserved []string
	if rn, ok := d.(interface{ ReservedNames() []string }); ok {
		reserved = rn.ReservedNames()
	}

	t := &transform{
		dialect:           d,
		names:             yul.NewNameDispenser(ast, reserved...),
		functionsToImport: make(map[string]wasm.FunctionImport),
	}

	module := &wasm.Module{}
	for _, st := range ast.Statements {
		fn, ok := st.(*yul.FunctionDefinition)
		t.invariant(ok, "expected only function definitions at the top level")
		module.Functions = append(module.Functions, t.translateFunction(fn))
	}
	for _, name := range t.importOrder {
		module.Imports = append(module.Imports, t.functionsToImport[name])
	}
	module.Globals = t.globalVariables

	Logger().Debug("translation finished",
		zap.Int("functions", len(module.Functions)),
		zap.Int("imports", len(module.Imports)),
		zap.Int("globals", len(module.Globals)))
	return module, nil
}

type labelPair struct {
	breakLabel    string
	continueLabel string
}

// transform holds the mutable state of one module translation. It is
// single-owner for the duration of Run and has no existence beyond it;
// the per-function fields are cleared between function translations.
type transform struct {
	dialect dialect.Dialect
	names   *yul.NameDispenser

	// Per-function: locals declared while lowering the current body, and
	// the label of the current function's body block (the leave target).
	localVariables    []wasm.VariableDeclaration
	functionBodyLabel string

	// Module-wide: the multi-return handoff pool and the import registry.
	globalVariables   []wasm.GlobalVariableDeclaration
	functionsToImport map[string]wasm.FunctionImport
	importOrder       []string

	breakContinueLabels []labelPair

	currentFunction string
}

// invariant aborts the translation when cond does not hold. Reaching one of
// these with pre-validated input indicates an upstream defect.
func (t *transform) invariant(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(&errors.Error{
		Phase:  errors.PhaseTransform,
		Kind:   errors.KindInvariant,
		Func:   t.currentFunction,
		Detail: fmt.Sprintf(format, args...),
	})
}

func (t *transform) translateFunction(fn *yul.FunctionDefinition) wasm.FunctionDefinition {
	out := wasm.FunctionDefinition{Name: fn.Name}
	out.ParameterNames = append(out.ParameterNames, fn.Parameters...)
	// Return variables are pre-declared as locals so the body can assign
	// them before they are returned.
	for _, ret := range fn.ReturnVariables {
		out.Locals = append(out.Locals, wasm.VariableDeclaration{Name: ret})
	}
	out.Returns = len(fn.ReturnVariables) > 0

	t.invariant(len(t.localVariables) == 0, "function translations must not nest")
	t.invariant(t.functionBodyLabel == "", "function translations must not nest")
	t.currentFunction = fn.Name
	t.functionBodyLabel = t.newLabel()

	Logger().Debug("translating function",
		zap.String("name", fn.Name),
		zap.Int("parameters", len(fn.Parameters)),
		zap.Int("returns", len(fn.ReturnVariables)))

	out.Body = append(out.Body, wasm.Block{
		LabelName:  t.functionBodyLabel,
		Statements: t.statements(fn.Body.Statements),
	})
	out.Locals = append(out.Locals, t.localVariables...)

	t.localVariables = nil
	t.functionBodyLabel = ""
	t.currentFunction = ""

	if len(fn.ReturnVariables) > 0 {
		// The first return variable travels in the function's single return
		// value, the rest through the global pool.
		t.allocateGlobals(len(fn.ReturnVariables) - 1)
		for i := 1; i < len(fn.ReturnVariables); i++ {
			out.Body = append(out.Body, wasm.GlobalAssignment{
				VariableName: t.globalVariables[i-1].Name,
				Value:        wasm.LocalVariable{Name: fn.ReturnVariables[i]},
			})
		}
		out.Body = append(out.Body, wasm.LocalVariable{Name: fn.ReturnVariables[0]})
	}
	return out
}

func (t *transform) statements(stmts []yul.Statement) []wasm.Expression {
	out := make([]wasm.Expression, 0, len(stmts))
	for _, st := range stmts {
		out = append(out, t.statement(st))
	}
	return out
}

func (t *transform) statement(st yul.Statement) wasm.Expression {
	switch s := st.(type) {
	case *yul.Block:
		return wasm.Block{Statements: t.statements(s.Statements)}

	case *yul.VariableDeclaration:
		for _, name := range s.Variables {
			t.localVariables = append(t.localVariables, wasm.VariableDeclaration{Name: name})
		}
		if s.Value == nil {
			return wasm.BuiltinCall{Name: "nop"}
		}
		return t.multiAssignment(s.Variables, t.expression(s.Value))

	case *yul.Assignment:
		return t.multiAssignment(s.VariableNames, t.expression(s.Value))

	case *yul.ExpressionStatement:
		return t.expression(s.Expression)

	case *yul.If:
		// Source conditions are truthy integers, not booleans; compare
		// against zero explicitly.
		return wasm.If{
			Condition: wasm.BuiltinCall{Name: "i64.ne", Arguments: []wasm.Expression{
				t.expression(s.Condition),
				wasm.Literal{Value: 0},
			}},
			Statements: t.statements(s.Body.Statements),
		}

	case *yul.Switch:
		return t.lowerSwitch(s)

	case *yul.ForLoop:
		return t.lowerForLoop(s)

	case *yul.Break:
		t.invariant(len(t.breakContinueLabels) > 0, "break outside of a loop")
		return wasm.Branch{LabelName: t.breakContinueLabels[len(t.breakContinueLabels)-1].breakLabel}

	case *yul.Continue:
		t.invariant(len(t.breakContinueLabels) > 0, "continue outside of a loop")
		return wasm.Branch{LabelName: t.breakContinueLabels[len(t.breakContinueLabels)-1].continueLabel}

	case *yul.Leave:
		t.invariant(t.functionBodyLabel != "", "leave outside of a function body")
		return wasm.Branch{LabelName: t.functionBodyLabel}

	case *yul.FunctionDefinition:
		t.invariant(false, "nested function definition")
		return nil

	default:
		t.invariant(false, "unknown statement variant %T", st)
		return nil
	}
}

// multiAssignment assigns an already-lowered value to one or more
// variables: the first directly, the rest drained out of the global pool
// the callee just filled.
func (t *transform) multiAssignment(names []string, value wasm.Expression) wasm.Expression {
	t.invariant(len(names) > 0, "assignment without target variables")
	first := wasm.LocalAssignment{VariableName: names[0], Value: value}
	if len(names) == 1 {
		return first
	}

	t.allocateGlobals(len(names) - 1)

	block := wasm.Block{Statements: []wasm.Expression{first}}
	for i := 1; i < len(names); i++ {
		block.Statements = append(block.Statements, wasm.LocalAssignment{
			VariableName: names[i],
			Value:        wasm.GlobalVariable{Name: t.globalVariables[i-1].Name},
		})
	}
	return block
}

func (t *transform) lowerSwitch(s *yul.Switch) wasm.Expression {
	// The switch expression is evaluated exactly once, into a fresh local.
	condition := t.names.Fresh("condition")
	t.localVariables = append(t.localVariables, wasm.VariableDeclaration{Name: condition})

	block := wasm.Block{Statements: []wasm.Expression{
		wasm.LocalAssignment{VariableName: condition, Value: t.expression(s.Expression)},
	}}

	type loweredCase struct {
		comparison wasm.Expression // nil for the default case
		body       []wasm.Expression
	}

	// Lower in source order so side effects (locals, pool growth, fresh
	// names) stay deterministic, then fold into an if/else-if chain.
	lowered := make([]loweredCase, 0, len(s.Cases))
	for i, c := range s.Cases {
		var comparison wasm.Expression
		if c.Value != nil {
			comparison = wasm.BuiltinCall{Name: "i64.eq", Arguments: []wasm.Expression{
				wasm.LocalVariable{Name: condition},
				t.expression(c.Value),
			}}
		} else {
			t.invariant(i == len(s.Cases)-1, "default case must be last")
		}
		lowered = append(lowered, loweredCase{comparison, t.statements(c.Body.Statements)})
	}

	var chain []wasm.Expression
	for i := len(lowered) - 1; i >= 0; i-- {
		if lowered[i].comparison == nil {
			chain = lowered[i].body
			continue
		}
		chain = []wasm.Expression{wasm.If{
			Condition:  lowered[i].comparison,
			Statements: lowered[i].body,
			Else:       chain,
		}}
	}
	block.Statements = append(block.Statements, chain...)
	return block
}

func (t *transform) lowerForLoop(f *yul.ForLoop) wasm.Expression {
	breakLabel := t.newLabel()
	continueLabel := t.newLabel()
	t.breakContinueLabels = append(t.breakContinueLabels, labelPair{breakLabel, continueLabel})

	loop := wasm.Loop{LabelName: t.newLabel()}
	loop.Statements = t.statements(f.Pre.Statements)
	loop.Statements = append(loop.Statements, wasm.BranchIf{
		LabelName: breakLabel,
		Condition: wasm.BuiltinCall{Name: "i64.eqz", Arguments: []wasm.Expression{
			t.expression(f.Condition),
		}},
	})
	// The body gets its own labeled block so continue lands on the post
	// statements.
	loop.Statements = append(loop.Statements, wasm.Block{
		LabelName:  continueLabel,
		Statements: t.statements(f.Body.Statements),
	})
	loop.Statements = append(loop.Statements, t.statements(f.Post.Statements)...)
	loop.Statements = append(loop.Statements, wasm.Branch{LabelName: loop.LabelName})

	t.breakContinueLabels = t.breakContinueLabels[:len(t.breakContinueLabels)-1]

	return wasm.Block{LabelName: breakLabel, Statements: []wasm.Expression{loop}}
}

func (t *transform) expressions(exprs []yul.Expression) []wasm.Expression {
	out := make([]wasm.Expression, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, t.expression(e))
	}
	return out
}

func (t *transform) expression(expr yul.Expression) wasm.Expression {
	switch e := expr.(type) {
	case *yul.FunctionCall:
		return t.lowerCall(e)

	case *yul.Identifier:
		return wasm.LocalVariable{Name: e.Name}

	case *yul.Literal:
		value, err := yul.LiteralValue(e)
		t.invariant(err == nil, "literal %q does not fit the 64-bit kind", e.Value)
		return wasm.Literal{Value: value}

	default:
		t.invariant(false, "unknown expression variant %T", expr)
		return nil
	}
}

func (t *transform) lowerCall(call *yul.FunctionCall) wasm.Expression {
	conversionNeeded := false

	if builtin := t.dialect.Builtin(call.FunctionName); builtin != nil {
		switch {
		case strings.HasPrefix(call.FunctionName, importPrefix):
			// Imported function: lowered as a regular call, registered for
			// import on first encounter.
			t.invariant(len(builtin.Returns) <= 1, "imported builtin %q returns multiple values", builtin.Name)
			if _, seen := t.functionsToImport[builtin.Name]; !seen {
				imp := wasm.FunctionImport{
					Module:       importModule,
					ExternalName: strings.TrimPrefix(builtin.Name, importPrefix),
					InternalName: builtin.Name,
					ParamTypes:   append([]wasm.ValType(nil), builtin.Parameters...),
				}
				if len(builtin.Returns) == 1 {
					imp.ReturnType = builtin.Returns[0]
				}
				t.functionsToImport[builtin.Name] = imp
				t.importOrder = append(t.importOrder, builtin.Name)
				Logger().Debug("registered import",
					zap.String("module", imp.Module),
					zap.String("name", imp.ExternalName))
			}
			conversionNeeded = true

		case builtin.NeedsLiteralArguments():
			args := make([]wasm.Expression, 0, len(call.Arguments))
			for i, arg := range call.Arguments {
				if builtin.LiteralArgument(i) {
					lit, ok := arg.(*yul.Literal)
					t.invariant(ok, "builtin %q requires a literal argument at position %d", builtin.Name, i)
					args = append(args, wasm.StringLiteral{Value: lit.Value})
				} else {
					args = append(args, t.expression(arg))
				}
			}
			return wasm.BuiltinCall{Name: builtin.Name, Arguments: args}

		default:
			out := wasm.BuiltinCall{
				Name:      builtin.Name,
				Arguments: t.convertedArguments(t.expressions(call.Arguments), builtin.Parameters),
			}
			if len(builtin.Returns) > 0 && builtin.Returns[0] != "" && builtin.Returns[0] != wasm.I64 {
				t.invariant(builtin.Returns[0] == wasm.I32, "invalid builtin return type %q", builtin.Returns[0])
				return wasm.BuiltinCall{Name: "i64.extend_i32_u", Arguments: []wasm.Expression{out}}
			}
			return out
		}
	}

	// A call returning multiple values leaves the first in the call
	// expression and the rest in the global pool; the enclosing assignment
	// or declaration drains them right away.
	out := wasm.FunctionCall{Name: call.FunctionName, Arguments: t.expressions(call.Arguments)}
	if conversionNeeded {
		return t.importCallConversion(out)
	}
	return out
}

// importCallConversion narrows arguments and widens the result of a call to
// an imported function according to its registered descriptor.
func (t *transform) importCallConversion(call wasm.FunctionCall) wasm.Expression {
	imp := t.functionsToImport[call.Name]
	t.invariant(len(call.Arguments) == len(imp.ParamTypes),
		"import %q called with %d arguments, want %d", call.Name, len(call.Arguments), len(imp.ParamTypes))
	for i := range call.Arguments {
		switch imp.ParamTypes[i] {
		case wasm.I32:
			call.Arguments[i] = wasm.BuiltinCall{Name: "i32.wrap_i64", Arguments: []wasm.Expression{call.Arguments[i]}}
		case wasm.I64:
		default:
			t.invariant(false, "unknown import parameter type %q", imp.ParamTypes[i])
		}
	}

	if imp.ReturnType != "" && imp.ReturnType != wasm.I64 {
		t.invariant(imp.ReturnType == wasm.I32, "invalid import return type %q", imp.ReturnType)
		return wasm.BuiltinCall{Name: "i64.extend_i32_u", Arguments: []wasm.Expression{call}}
	}
	return call
}

// convertedArguments narrows arguments whose declared parameter kind is the
// narrow one; unspecified kinds pass through untouched.
func (t *transform) convertedArguments(args []wasm.Expression, params []wasm.ValType) []wasm.Expression {
	t.invariant(len(args) == len(params), "builtin called with %d arguments, want %d", len(args), len(params))
	for i := range args {
		switch params[i] {
		case wasm.I32:
			args[i] = wasm.BuiltinCall{Name: "i32.wrap_i64", Arguments: []wasm.Expression{args[i]}}
		case wasm.I64, "":
		default:
			t.invariant(false, "unknown parameter type %q", params[i])
		}
	}
	return args
}

func (t *transform) newLabel() string {
	return t.names.Fresh("label")
}

// allocateGlobals grows the multi-return pool to at least n slots. The pool
// never shrinks; its size is the largest handoff arity seen so far.
func (t *transform) allocateGlobals(n int) {
	for len(t.globalVariables) < n {
		t.globalVariables = append(t.globalVariables, wasm.GlobalVariableDeclaration{
			Name: t.names.Fresh("global"),
		})
		Logger().Debug("allocated global", zap.String("name", t.globalVariables[len(t.globalVariables)-1].Name))
	}
}
