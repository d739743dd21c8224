package dialect

import "github.com/wasmlang/yulwasm/wasm"

// WasmDialect is the concrete catalog for the WebAssembly target: the i64
// instruction set spelled by its text-format mnemonics, the two conversion
// instructions, a pair of literal-argument data builtins, and the external
// functions of the "ethereum" foreign module under the eth. prefix.
type WasmDialect struct {
	builtins map[string]*BuiltinFunction
	names    []string
}

// NewWasmDialect builds the catalog. The result is immutable and can be
// shared between translations.
func NewWasmDialect() *WasmDialect {
	d := &WasmDialect{builtins: make(map[string]*BuiltinFunction)}

	// i64 arithmetic and bitwise instructions: (i64, i64) -> i64.
	for _, name := range []string{
		"i64.add", "i64.sub", "i64.mul",
		"i64.div_u", "i64.div_s", "i64.rem_u", "i64.rem_s",
		"i64.and", "i64.or", "i64.xor",
		"i64.shl", "i64.shr_u", "i64.shr_s",
	} {
		d.add(name, []wasm.ValType{wasm.I64, wasm.I64}, []wasm.ValType{wasm.I64})
	}

	// i64 comparisons produce the narrow kind, as in the instruction set.
	for _, name := range []string{
		"i64.eq", "i64.ne",
		"i64.lt_u", "i64.lt_s", "i64.gt_u", "i64.gt_s",
		"i64.le_u", "i64.le_s", "i64.ge_u", "i64.ge_s",
	} {
		d.add(name, []wasm.ValType{wasm.I64, wasm.I64}, []wasm.ValType{wasm.I32})
	}
	d.add("i64.eqz", []wasm.ValType{wasm.I64}, []wasm.ValType{wasm.I32})

	// Conversions between the two kinds.
	d.add("i32.wrap_i64", []wasm.ValType{wasm.I64}, []wasm.ValType{wasm.I32})
	d.add("i64.extend_i32_u", []wasm.ValType{wasm.I32}, []wasm.ValType{wasm.I64})

	d.add("nop", nil, nil)
	d.add("unreachable", nil, nil)

	// Data builtins take the segment name verbatim; they are resolved at
	// link time, not evaluated.
	d.addLiteral("datasize", []wasm.ValType{""}, []wasm.ValType{wasm.I64}, []bool{true})
	d.addLiteral("dataoffset", []wasm.ValType{""}, []wasm.ValType{wasm.I64}, []bool{true})

	// External functions of the ethereum module. Pointer-shaped parameters
	// are narrow per the environment interface.
	i32 := wasm.I32
	i64 := wasm.I64
	d.add("eth.getCallDataSize", nil, []wasm.ValType{i32})
	d.add("eth.callDataCopy", []wasm.ValType{i32, i32, i32}, nil)
	d.add("eth.getCallValue", []wasm.ValType{i32}, nil)
	d.add("eth.storageStore", []wasm.ValType{i32, i32}, nil)
	d.add("eth.storageLoad", []wasm.ValType{i32, i32}, nil)
	d.add("eth.getGasLeft", nil, []wasm.ValType{i64})
	d.add("eth.getBlockNumber", nil, []wasm.ValType{i64})
	d.add("eth.useGas", []wasm.ValType{i64}, nil)
	d.add("eth.finish", []wasm.ValType{i32, i32}, nil)
	d.add("eth.revert", []wasm.ValType{i32, i32}, nil)

	return d
}

// Builtin implements Dialect.
func (d *WasmDialect) Builtin(name string) *BuiltinFunction {
	return d.builtins[name]
}

// ReservedNames lists every builtin name in registration order, for seeding
// fresh-name generation.
func (d *WasmDialect) ReservedNames() []string {
	return d.names
}

func (d *WasmDialect) add(name string, params, returns []wasm.ValType) {
	d.addLiteral(name, params, returns, nil)
}

func (d *WasmDialect) addLiteral(name string, params, returns []wasm.ValType, literal []bool) {
	d.builtins[name] = &BuiltinFunction{
		Name:             name,
		Parameters:       params,
		Returns:          returns,
		LiteralArguments: literal,
	}
	d.names = append(d.names, name)
}
