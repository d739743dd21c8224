package wat

import (
	"fmt"
	"strings"

	"github.com/wasmlang/yulwasm/wasm"
)

// Print renders a module in the text format.
func Print(m *wasm.Module) string {
	p := &printer{}
	p.line("(module")
	p.indent++
	for _, imp := range m.Imports {
		p.printImport(imp)
	}
	for _, g := range m.Globals {
		p.line(fmt.Sprintf("(global $%s (mut i64) (i64.const 0))", g.Name))
	}
	for i := range m.Functions {
		p.printFunction(&m.Functions[i])
	}
	p.indent--
	p.line(")")
	return p.out.String()
}

type printer struct {
	out    strings.Builder
	indent int
}

func (p *printer) line(s string) {
	for i := 0; i < p.indent; i++ {
		p.out.WriteString("  ")
	}
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func (p *printer) printImport(imp wasm.FunctionImport) {
	var b strings.Builder
	fmt.Fprintf(&b, "(import %q %q (func $%s", imp.Module, imp.ExternalName, imp.InternalName)
	if len(imp.ParamTypes) > 0 {
		b.WriteString(" (param")
		for _, pt := range imp.ParamTypes {
			b.WriteByte(' ')
			b.WriteString(string(pt))
		}
		b.WriteByte(')')
	}
	if imp.ReturnType != "" {
		fmt.Fprintf(&b, " (result %s)", imp.ReturnType)
	}
	b.WriteString("))")
	p.line(b.String())
}

func (p *printer) printFunction(fn *wasm.FunctionDefinition) {
	var b strings.Builder
	fmt.Fprintf(&b, "(func $%s", fn.Name)
	for _, param := range fn.ParameterNames {
		fmt.Fprintf(&b, " (param $%s i64)", param)
	}
	if fn.Returns {
		b.WriteString(" (result i64)")
	}
	p.line(b.String())
	p.indent++
	for _, local := range fn.Locals {
		p.line(fmt.Sprintf("(local $%s i64)", local.Name))
	}
	for _, st := range fn.Body {
		p.printExpression(st)
	}
	p.indent--
	p.line(")")
}

func (p *printer) printExpression(expr wasm.Expression) {
	switch e := expr.(type) {
	case wasm.Literal:
		p.line(fmt.Sprintf("(i64.const %d)", e.Value))

	case wasm.StringLiteral:
		p.line(fmt.Sprintf("%q", e.Value))

	case wasm.LocalVariable:
		p.line(fmt.Sprintf("(local.get $%s)", e.Name))

	case wasm.GlobalVariable:
		p.line(fmt.Sprintf("(global.get $%s)", e.Name))

	case wasm.LocalAssignment:
		p.line(fmt.Sprintf("(local.set $%s", e.VariableName))
		p.printNested(e.Value)
		p.line(")")

	case wasm.GlobalAssignment:
		p.line(fmt.Sprintf("(global.set $%s", e.VariableName))
		p.printNested(e.Value)
		p.line(")")

	case wasm.BuiltinCall:
		if len(e.Arguments) == 0 {
			p.line(fmt.Sprintf("(%s)", e.Name))
			return
		}
		p.line(fmt.Sprintf("(%s", e.Name))
		p.printAllNested(e.Arguments)
		p.line(")")

	case wasm.FunctionCall:
		if len(e.Arguments) == 0 {
			p.line(fmt.Sprintf("(call $%s)", e.Name))
			return
		}
		p.line(fmt.Sprintf("(call $%s", e.Name))
		p.printAllNested(e.Arguments)
		p.line(")")

	case wasm.If:
		p.line("(if")
		p.printNested(e.Condition)
		p.indent++
		p.line("(then")
		p.printAllNested(e.Statements)
		p.line(")")
		if e.Else != nil {
			p.line("(else")
			p.printAllNested(e.Else)
			p.line(")")
		}
		p.indent--
		p.line(")")

	case wasm.Block:
		if e.LabelName != "" {
			p.line(fmt.Sprintf("(block $%s", e.LabelName))
		} else {
			p.line("(block")
		}
		p.printAllNested(e.Statements)
		p.line(")")

	case wasm.Loop:
		p.line(fmt.Sprintf("(loop $%s", e.LabelName))
		p.printAllNested(e.Statements)
		p.line(")")

	case wasm.Branch:
		p.line(fmt.Sprintf("(br $%s)", e.LabelName))

	case wasm.BranchIf:
		p.line(fmt.Sprintf("(br_if $%s", e.LabelName))
		p.printNested(e.Condition)
		p.line(")")

	default:
		p.line(fmt.Sprintf(";; unknown node %T", expr))
	}
}

func (p *printer) printNested(expr wasm.Expression) {
	p.indent++
	p.printExpression(expr)
	p.indent--
}

func (p *printer) printAllNested(exprs []wasm.Expression) {
	p.indent++
	for _, e := range exprs {
		p.printExpression(e)
	}
	p.indent--
}
