package yul

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseFunctionDefinition(t *testing.T) {
	block, err := Parse(`{
		function divmod(a, b) -> q, r {
			q := i64.div_u(a, b)
			r := i64.rem_u(a, b)
		}
	}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(block.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Statements))
	}
	fn, ok := block.Statements[0].(*FunctionDefinition)
	if !ok {
		t.Fatalf("statement is %T, want function definition", block.Statements[0])
	}
	if fn.Name != "divmod" {
		t.Errorf("name %q, want divmod", fn.Name)
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0] != "a" || fn.Parameters[1] != "b" {
		t.Errorf("parameters %v, want [a b]", fn.Parameters)
	}
	if len(fn.ReturnVariables) != 2 || fn.ReturnVariables[0] != "q" || fn.ReturnVariables[1] != "r" {
		t.Errorf("return variables %v, want [q r]", fn.ReturnVariables)
	}
	if len(fn.Body.Statements) != 2 {
		t.Errorf("body has %d statements, want 2", len(fn.Body.Statements))
	}
}

func TestParseStatements(t *testing.T) {
	block, err := Parse(`{
		let a := 1
		let b, c
		a, b := f(a)
		if a { leave }
		switch a
		case 0x10 { break }
		default { continue }
		for { let i := 0 } i { i := add(i, 1) } { g() }
	}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{
		"*yul.VariableDeclaration",
		"*yul.VariableDeclaration",
		"*yul.Assignment",
		"*yul.If",
		"*yul.Switch",
		"*yul.ForLoop",
	}
	if len(block.Statements) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(block.Statements))
	}
	for i, st := range block.Statements {
		if got := fmt.Sprintf("%T", st); got != want[i] {
			t.Errorf("statement %d is %s, want %s", i, got, want[i])
		}
	}

	decl := block.Statements[1].(*VariableDeclaration)
	if len(decl.Variables) != 2 || decl.Value != nil {
		t.Errorf("plain declaration parsed as %v with value %v", decl.Variables, decl.Value)
	}

	assign := block.Statements[2].(*Assignment)
	if len(assign.VariableNames) != 2 {
		t.Errorf("assignment targets %v, want 2 names", assign.VariableNames)
	}
	if call, ok := assign.Value.(*FunctionCall); !ok || call.FunctionName != "f" {
		t.Errorf("assignment value is %v, want call to f", assign.Value)
	}

	sw := block.Statements[4].(*Switch)
	if len(sw.Cases) != 2 {
		t.Fatalf("switch has %d cases, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Value == nil || sw.Cases[0].Value.Value != "0x10" {
		t.Errorf("case value %v, want 0x10", sw.Cases[0].Value)
	}
	if sw.Cases[1].Value != nil {
		t.Errorf("default case carries a value: %v", sw.Cases[1].Value)
	}

	loop := block.Statements[5].(*ForLoop)
	if len(loop.Pre.Statements) != 1 || len(loop.Post.Statements) != 1 || len(loop.Body.Statements) != 1 {
		t.Errorf("loop sections pre=%d post=%d body=%d, want 1 each",
			len(loop.Pre.Statements), len(loop.Post.Statements), len(loop.Body.Statements))
	}
}

func TestParseNestedCalls(t *testing.T) {
	block, err := Parse(`{ let x := i64.add(i64.mul(a, 2), eth.getGasLeft()) }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	decl := block.Statements[0].(*VariableDeclaration)
	outer := decl.Value.(*FunctionCall)
	if outer.FunctionName != "i64.add" {
		t.Errorf("outer call %q, want i64.add", outer.FunctionName)
	}
	inner := outer.Arguments[0].(*FunctionCall)
	if inner.FunctionName != "i64.mul" || len(inner.Arguments) != 2 {
		t.Errorf("inner call %q with %d arguments, want i64.mul with 2", inner.FunctionName, len(inner.Arguments))
	}
	imp := outer.Arguments[1].(*FunctionCall)
	if imp.FunctionName != "eth.getGasLeft" || len(imp.Arguments) != 0 {
		t.Errorf("import call %q with %d arguments, want eth.getGasLeft with 0", imp.FunctionName, len(imp.Arguments))
	}
}

func TestParseComments(t *testing.T) {
	block, err := Parse(`{
		// line comment
		let a := 1 /* inline */ let b := 2
		/* multi
		   line */
		let c := "str" // trailing
	}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(block.Statements) != 3 {
		t.Errorf("expected 3 statements, got %d", len(block.Statements))
	}
	lit := block.Statements[2].(*VariableDeclaration).Value.(*Literal)
	if lit.Kind != StrLiteral || lit.Value != "str" {
		t.Errorf("string literal parsed as kind=%d value=%q", lit.Kind, lit.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing brace", `{ let a := 1`, "unexpected end of input"},
		{"trailing input", `{ } }`, "after top-level block"},
		{"default not last", `{ switch x default { } case 1 { } }`, "default case must be last"},
		{"empty switch", `{ switch x let y := 1 }`, "at least one case"},
		{"non-literal case", `{ switch x case y { } }`, "expected literal"},
		{"missing expression", `{ let a := }`, "expected expression"},
		{"unterminated string", `{ let a := "oops }`, "unterminated string"},
		{"unterminated comment", `{ /* forever }`, "unterminated comment"},
		{"bare colon", `{ a : 1 }`, "unexpected ':'"},
		{"stray character", `{ let a := 1 ; }`, "unexpected character"},
		{"no return variables", `{ function f() -> { } }`, "expected return variables"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestParseErrorReportsLine(t *testing.T) {
	_, err := Parse("{\n\tlet a := 1\n\tlet b := ;\n}")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not carry line 3", err)
	}
}
