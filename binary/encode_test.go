package binary_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wasmlang/yulwasm/binary"
	"github.com/wasmlang/yulwasm/codetransform"
	"github.com/wasmlang/yulwasm/dialect"
	"github.com/wasmlang/yulwasm/errors"
	"github.com/wasmlang/yulwasm/wasm"
	"github.com/wasmlang/yulwasm/yul"
)

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func encode(t *testing.T, src string) []byte {
	t.Helper()
	tree, err := yul.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := codetransform.Run(dialect.NewWasmDialect(), tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	bin, err := binary.Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return bin
}

func TestEncodeEmptyModule(t *testing.T) {
	bin, err := binary.Encode(&wasm.Module{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(bin, header) {
		t.Errorf("empty module encodes to %x, want bare header", bin)
	}
}

func TestEncodeSectionLayout(t *testing.T) {
	bin := encode(t, `{
		function pair(x) -> a, b {
			a := x
			b := eth.getGasLeft()
		}
	}`)

	if !bytes.HasPrefix(bin, header) {
		t.Fatalf("missing header: %x", bin[:8])
	}

	// Walk the section stream and record IDs in order.
	var ids []byte
	rest := bin[8:]
	for len(rest) > 0 {
		id := rest[0]
		size, n := leb128(rest[1:])
		ids = append(ids, id)
		rest = rest[1+n+size:]
	}
	want := []byte{
		binary.SectionType,
		binary.SectionImport,
		binary.SectionFunction,
		binary.SectionGlobal,
		binary.SectionExport,
		binary.SectionCode,
	}
	if !bytes.Equal(ids, want) {
		t.Errorf("section IDs %v, want %v", ids, want)
	}
}

func leb128(b []byte) (size, n int) {
	shift := uint(0)
	for {
		size |= int(b[n]&0x7f) << shift
		n++
		shift += 7
		if b[n-1]&0x80 == 0 {
			return size, n
		}
	}
}

func TestEncodeDeterminism(t *testing.T) {
	src := `{
		function f(a, b) -> q, r {
			q := i64.div_u(a, b)
			r := i64.rem_u(a, b)
			eth.useGas(q)
		}
	}`
	if !bytes.Equal(encode(t, src), encode(t, src)) {
		t.Error("encoding the same program twice differs")
	}
}

func TestEncodeRejectsDataBuiltins(t *testing.T) {
	tree, err := yul.Parse(`{ function f() -> s { s := datasize("seg") } }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := codetransform.Run(dialect.NewWasmDialect(), tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	_, err = binary.Encode(m)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindUnsupported}) {
		t.Errorf("expected encode unsupported error, got %v", err)
	}
}

func TestEncodeRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name string
		mod  wasm.Module
	}{
		{"function", wasm.Module{Functions: []wasm.FunctionDefinition{{
			Name: "f",
			Body: []wasm.Expression{wasm.FunctionCall{Name: "missing"}},
		}}}},
		{"local", wasm.Module{Functions: []wasm.FunctionDefinition{{
			Name: "f",
			Body: []wasm.Expression{wasm.LocalVariable{Name: "missing"}},
		}}}},
		{"global", wasm.Module{Functions: []wasm.FunctionDefinition{{
			Name: "f",
			Body: []wasm.Expression{wasm.GlobalVariable{Name: "missing"}},
		}}}},
		{"label", wasm.Module{Functions: []wasm.FunctionDefinition{{
			Name: "f",
			Body: []wasm.Expression{wasm.Branch{LabelName: "missing"}},
		}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := binary.Encode(&tc.mod)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindUnknownName}) {
				t.Errorf("expected unknown-name error, got %v", err)
			}
		})
	}
}

func TestEncodeTypeDeduplication(t *testing.T) {
	// Three functions, two distinct signatures: ()->i64 and (i64)->i64.
	bin := encode(t, `{
		function a() -> r { r := 1 }
		function b() -> r { r := 2 }
		function c(x) -> r { r := x }
	}`)

	rest := bin[8:]
	if rest[0] != binary.SectionType {
		t.Fatalf("first section is %d, want type section", rest[0])
	}
	// Section size and entry count are single-byte LEB here.
	if count := rest[2]; count != 2 {
		t.Errorf("type section has %d entries, want 2", count)
	}
}
