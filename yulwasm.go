package yulwasm

import (
	"github.com/wasmlang/yulwasm/binary"
	"github.com/wasmlang/yulwasm/codetransform"
	"github.com/wasmlang/yulwasm/dialect"
	"github.com/wasmlang/yulwasm/wasm"
	"github.com/wasmlang/yulwasm/wat"
	"github.com/wasmlang/yulwasm/yul"
)

// Compile parses src and lowers it to a module using the WebAssembly
// dialect.
func Compile(src string) (*wasm.Module, error) {
	tree, err := yul.Parse(src)
	if err != nil {
		return nil, err
	}
	return codetransform.Run(dialect.NewWasmDialect(), tree)
}

// CompileText compiles src and renders the result in the text format.
func CompileText(src string) (string, error) {
	module, err := Compile(src)
	if err != nil {
		return "", err
	}
	return wat.Print(module), nil
}

// CompileBinary compiles src and encodes the result in the binary format.
func CompileBinary(src string) ([]byte, error) {
	module, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return binary.Encode(module)
}
