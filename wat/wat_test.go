package wat_test

import (
	"testing"

	"github.com/wasmlang/yulwasm/codetransform"
	"github.com/wasmlang/yulwasm/dialect"
	"github.com/wasmlang/yulwasm/wasm"
	"github.com/wasmlang/yulwasm/wat"
	"github.com/wasmlang/yulwasm/yul"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	tree, err := yul.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := codetransform.Run(dialect.NewWasmDialect(), tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return wat.Print(m)
}

func TestPrintFunction(t *testing.T) {
	got := compile(t, `{ function double(x) -> y { y := i64.add(x, x) } }`)
	want := `(module
  (func $double (param $x i64) (result i64)
    (local $y i64)
    (block $label_1
      (local.set $y
        (i64.add
          (local.get $x)
          (local.get $x)
        )
      )
    )
    (local.get $y)
  )
)
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintImportsAndGlobals(t *testing.T) {
	got := compile(t, `{
		function withgas(a, b) -> q, r {
			eth.useGas(a)
			q := b
			r := a
		}
	}`)
	want := `(module
  (import "ethereum" "useGas" (func $eth.useGas (param i64)))
  (global $global_1 (mut i64) (i64.const 0))
  (func $withgas (param $a i64) (param $b i64) (result i64)
    (local $q i64)
    (local $r i64)
    (block $label_1
      (call $eth.useGas
        (local.get $a)
      )
      (local.set $q
        (local.get $b)
      )
      (local.set $r
        (local.get $a)
      )
    )
    (global.set $global_1
      (local.get $r)
    )
    (local.get $q)
  )
)
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintControlFlowNodes(t *testing.T) {
	m := &wasm.Module{
		Functions: []wasm.FunctionDefinition{{
			Name: "f",
			Body: []wasm.Expression{
				wasm.Block{LabelName: "exit", Statements: []wasm.Expression{
					wasm.Loop{LabelName: "again", Statements: []wasm.Expression{
						wasm.BranchIf{LabelName: "exit", Condition: wasm.Literal{Value: 1}},
						wasm.If{
							Condition:  wasm.Literal{Value: 0},
							Statements: []wasm.Expression{wasm.BuiltinCall{Name: "nop"}},
							Else:       []wasm.Expression{wasm.BuiltinCall{Name: "unreachable"}},
						},
						wasm.Branch{LabelName: "again"},
					}},
				}},
			},
		}},
	}
	want := `(module
  (func $f
    (block $exit
      (loop $again
        (br_if $exit
          (i64.const 1)
        )
        (if
          (i64.const 0)
          (then
            (nop)
          )
          (else
            (unreachable)
          )
        )
        (br $again)
      )
    )
  )
)
`
	if got := wat.Print(m); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
