package yulwasm_test

import (
	"bytes"
	"strings"
	"testing"

	yulwasm "github.com/wasmlang/yulwasm"
)

const program = `{
	function double(x) -> y {
		y := i64.add(x, x)
	}
}`

func TestCompile(t *testing.T) {
	m, err := yulwasm.Compile(program)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(m.Functions) != 1 || m.Functions[0].Name != "double" {
		t.Errorf("unexpected functions: %+v", m.Functions)
	}
}

func TestCompileText(t *testing.T) {
	text, err := yulwasm.CompileText(program)
	if err != nil {
		t.Fatalf("CompileText: %v", err)
	}
	for _, want := range []string{"(module", "(func $double", "(i64.add"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestCompileBinary(t *testing.T) {
	bin, err := yulwasm.CompileBinary(program)
	if err != nil {
		t.Fatalf("CompileBinary: %v", err)
	}
	if !bytes.HasPrefix(bin, []byte{0x00, 0x61, 0x73, 0x6d}) {
		t.Errorf("binary does not start with the magic number: %x", bin[:8])
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	if _, err := yulwasm.Compile(`{ let x := }`); err == nil {
		t.Error("expected parse error")
	}
}
