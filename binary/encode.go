package binary

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/wasmlang/yulwasm/errors"
	"github.com/wasmlang/yulwasm/wasm"
)

// Encode encodes the module to WebAssembly binary format. Every defined
// function is exported under its own name.
func Encode(m *wasm.Module) ([]byte, error) {
	enc := &encoder{
		mod:       m,
		typeIdx:   make(map[string]uint32),
		funcIdx:   make(map[string]uint32),
		globalIdx: make(map[string]uint32),
	}
	if err := enc.buildIndexSpaces(); err != nil {
		return nil, err
	}

	w := NewWriter()
	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	enc.writeTypeSection(w)
	enc.writeImportSection(w)
	enc.writeFunctionSection(w)
	enc.writeGlobalSection(w)
	enc.writeExportSection(w)
	if err := enc.writeCodeSection(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

type funcSig struct {
	params []wasm.ValType
	result wasm.ValType // empty when none
}

func (s funcSig) key() string {
	parts := make([]string, 0, len(s.params)+1)
	for _, p := range s.params {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",") + "->" + string(s.result)
}

type encoder struct {
	mod       *wasm.Module
	types     []funcSig
	typeIdx   map[string]uint32
	funcTypes []uint32 // type index per import, then per defined function
	funcIdx   map[string]uint32
	globalIdx map[string]uint32
}

func encodeErr(kind errors.Kind, format string, args ...any) error {
	return errors.New(errors.PhaseEncode, kind, fmt.Sprintf(format, args...))
}

func valTypeByte(t wasm.ValType) (byte, error) {
	switch t {
	case wasm.I32:
		return ValI32, nil
	case wasm.I64:
		return ValI64, nil
	}
	return 0, encodeErr(errors.KindUnsupported, "value type %q has no binary encoding", t)
}

// buildIndexSpaces assigns type, function, and global indices. The function
// index space lists imports first, then defined functions, in module order.
func (e *encoder) buildIndexSpaces() error {
	for _, imp := range e.mod.Imports {
		idx, err := safecast.Conv[uint32](len(e.funcIdx))
		if err != nil {
			return encodeErr(errors.KindOverflow, "too many functions: %v", err)
		}
		e.funcIdx[imp.InternalName] = idx
		e.funcTypes = append(e.funcTypes, e.internSig(funcSig{imp.ParamTypes, imp.ReturnType}))
	}
	for i := range e.mod.Functions {
		fn := &e.mod.Functions[i]
		idx, err := safecast.Conv[uint32](len(e.funcIdx))
		if err != nil {
			return encodeErr(errors.KindOverflow, "too many functions: %v", err)
		}
		e.funcIdx[fn.Name] = idx
		sig := funcSig{params: make([]wasm.ValType, len(fn.ParameterNames))}
		for j := range sig.params {
			sig.params[j] = wasm.I64
		}
		if fn.Returns {
			sig.result = wasm.I64
		}
		e.funcTypes = append(e.funcTypes, e.internSig(sig))
	}
	for i, g := range e.mod.Globals {
		e.globalIdx[g.Name] = uint32(i)
	}
	return nil
}

func (e *encoder) internSig(sig funcSig) uint32 {
	key := sig.key()
	if idx, ok := e.typeIdx[key]; ok {
		return idx
	}
	idx := uint32(len(e.types))
	e.types = append(e.types, sig)
	e.typeIdx[key] = idx
	return idx
}

func writeSection(w *Writer, id byte, payload []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(payload)))
	w.WriteBytes(payload)
}

func (e *encoder) writeTypeSection(w *Writer) {
	if len(e.types) == 0 {
		return
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.types)))
	for _, sig := range e.types {
		sec.Byte(FuncTypeByte)
		sec.WriteU32(uint32(len(sig.params)))
		for _, p := range sig.params {
			b, _ := valTypeByte(p)
			sec.Byte(b)
		}
		if sig.result == "" {
			sec.WriteU32(0)
		} else {
			sec.WriteU32(1)
			b, _ := valTypeByte(sig.result)
			sec.Byte(b)
		}
	}
	writeSection(w, SectionType, sec.Bytes())
}

func (e *encoder) writeImportSection(w *Writer) {
	if len(e.mod.Imports) == 0 {
		return
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.mod.Imports)))
	for i, imp := range e.mod.Imports {
		sec.WriteName(imp.Module)
		sec.WriteName(imp.ExternalName)
		sec.Byte(KindFunc)
		sec.WriteU32(e.funcTypes[i])
	}
	writeSection(w, SectionImport, sec.Bytes())
}

func (e *encoder) writeFunctionSection(w *Writer) {
	if len(e.mod.Functions) == 0 {
		return
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.mod.Functions)))
	for _, typeIdx := range e.funcTypes[len(e.mod.Imports):] {
		sec.WriteU32(typeIdx)
	}
	writeSection(w, SectionFunction, sec.Bytes())
}

// writeGlobalSection declares the multi-return pool: mutable i64 globals,
// zero-initialized.
func (e *encoder) writeGlobalSection(w *Writer) {
	if len(e.mod.Globals) == 0 {
		return
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.mod.Globals)))
	for range e.mod.Globals {
		sec.Byte(ValI64)
		sec.Byte(0x01) // mutable
		sec.Byte(OpI64Const)
		sec.WriteS64(0)
		sec.Byte(OpEnd)
	}
	writeSection(w, SectionGlobal, sec.Bytes())
}

func (e *encoder) writeExportSection(w *Writer) {
	if len(e.mod.Functions) == 0 {
		return
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.mod.Functions)))
	for i := range e.mod.Functions {
		name := e.mod.Functions[i].Name
		sec.WriteName(name)
		sec.Byte(KindFunc)
		sec.WriteU32(e.funcIdx[name])
	}
	writeSection(w, SectionExport, sec.Bytes())
}

func (e *encoder) writeCodeSection(w *Writer) error {
	if len(e.mod.Functions) == 0 {
		return nil
	}
	sec := NewWriter()
	sec.WriteU32(uint32(len(e.mod.Functions)))
	for i := range e.mod.Functions {
		body, err := e.encodeFunctionBody(&e.mod.Functions[i])
		if err != nil {
			return err
		}
		size, err := safecast.Conv[uint32](len(body))
		if err != nil {
			return encodeErr(errors.KindOverflow, "function body too large: %v", err)
		}
		sec.WriteU32(size)
		sec.WriteBytes(body)
	}
	writeSection(w, SectionCode, sec.Bytes())
	return nil
}

func (e *encoder) encodeFunctionBody(fn *wasm.FunctionDefinition) ([]byte, error) {
	locals := make(map[string]uint32, len(fn.ParameterNames)+len(fn.Locals))
	for _, name := range fn.ParameterNames {
		locals[name] = uint32(len(locals))
	}
	for _, l := range fn.Locals {
		locals[l.Name] = uint32(len(locals))
	}

	w := NewWriter()
	// All locals share the canonical kind, so one local group suffices.
	if len(fn.Locals) == 0 {
		w.WriteU32(0)
	} else {
		w.WriteU32(1)
		w.WriteU32(uint32(len(fn.Locals)))
		w.Byte(ValI64)
	}

	c := &codeEmitter{enc: e, w: w, fn: fn.Name, locals: locals}
	for _, st := range fn.Body {
		if err := c.emit(st); err != nil {
			return nil, err
		}
	}
	w.Byte(OpEnd)
	return w.Bytes(), nil
}

// codeEmitter flattens one function body, tracking the label stack so
// branches can be resolved to relative depths.
type codeEmitter struct {
	enc    *encoder
	w      *Writer
	fn     string
	locals map[string]uint32
	labels []string
}

func (c *codeEmitter) errUnknown(what, name string) error {
	return encodeErr(errors.KindUnknownName, "%s %q not declared in function %q", what, name, c.fn)
}

func (c *codeEmitter) localIndex(name string) (uint32, error) {
	idx, ok := c.locals[name]
	if !ok {
		return 0, c.errUnknown("local", name)
	}
	return idx, nil
}

// labelDepth resolves a label name to its relative branch depth, counting
// outwards from the innermost enclosing construct.
func (c *codeEmitter) labelDepth(name string) (uint32, error) {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i] == name {
			return uint32(len(c.labels) - 1 - i), nil
		}
	}
	return 0, c.errUnknown("label", name)
}

func (c *codeEmitter) emitAll(exprs []wasm.Expression) error {
	for _, e := range exprs {
		if err := c.emit(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *codeEmitter) emit(expr wasm.Expression) error {
	switch x := expr.(type) {
	case wasm.Literal:
		c.w.Byte(OpI64Const)
		c.w.WriteS64(int64(x.Value))

	case wasm.StringLiteral:
		return encodeErr(errors.KindUnsupported,
			"literal-argument builtin data %q is resolved at link time and has no binary encoding", x.Value)

	case wasm.LocalVariable:
		idx, err := c.localIndex(x.Name)
		if err != nil {
			return err
		}
		c.w.Byte(OpLocalGet)
		c.w.WriteU32(idx)

	case wasm.GlobalVariable:
		idx, ok := c.enc.globalIdx[x.Name]
		if !ok {
			return c.errUnknown("global", x.Name)
		}
		c.w.Byte(OpGlobalGet)
		c.w.WriteU32(idx)

	case wasm.LocalAssignment:
		if err := c.emit(x.Value); err != nil {
			return err
		}
		idx, err := c.localIndex(x.VariableName)
		if err != nil {
			return err
		}
		c.w.Byte(OpLocalSet)
		c.w.WriteU32(idx)

	case wasm.GlobalAssignment:
		if err := c.emit(x.Value); err != nil {
			return err
		}
		idx, ok := c.enc.globalIdx[x.VariableName]
		if !ok {
			return c.errUnknown("global", x.VariableName)
		}
		c.w.Byte(OpGlobalSet)
		c.w.WriteU32(idx)

	case wasm.BuiltinCall:
		if err := c.emitAll(x.Arguments); err != nil {
			return err
		}
		switch x.Name {
		case "nop":
			c.w.Byte(OpNop)
		case "unreachable":
			c.w.Byte(OpUnreachable)
		default:
			op, ok := numericOpcodes[x.Name]
			if !ok {
				return encodeErr(errors.KindUnsupported, "builtin %q has no binary encoding", x.Name)
			}
			c.w.Byte(op)
		}

	case wasm.FunctionCall:
		if err := c.emitAll(x.Arguments); err != nil {
			return err
		}
		idx, ok := c.enc.funcIdx[x.Name]
		if !ok {
			return c.errUnknown("function", x.Name)
		}
		c.w.Byte(OpCall)
		c.w.WriteU32(idx)

	case wasm.If:
		if err := c.emit(x.Condition); err != nil {
			return err
		}
		c.w.Byte(OpIf)
		c.w.Byte(BlockTypeVoid)
		c.labels = append(c.labels, "")
		if err := c.emitAll(x.Statements); err != nil {
			return err
		}
		if x.Else != nil {
			c.w.Byte(OpElse)
			if err := c.emitAll(x.Else); err != nil {
				return err
			}
		}
		c.labels = c.labels[:len(c.labels)-1]
		c.w.Byte(OpEnd)

	case wasm.Block:
		c.w.Byte(OpBlock)
		c.w.Byte(BlockTypeVoid)
		c.labels = append(c.labels, x.LabelName)
		if err := c.emitAll(x.Statements); err != nil {
			return err
		}
		c.labels = c.labels[:len(c.labels)-1]
		c.w.Byte(OpEnd)

	case wasm.Loop:
		c.w.Byte(OpLoop)
		c.w.Byte(BlockTypeVoid)
		c.labels = append(c.labels, x.LabelName)
		if err := c.emitAll(x.Statements); err != nil {
			return err
		}
		c.labels = c.labels[:len(c.labels)-1]
		c.w.Byte(OpEnd)

	case wasm.Branch:
		depth, err := c.labelDepth(x.LabelName)
		if err != nil {
			return err
		}
		c.w.Byte(OpBr)
		c.w.WriteU32(depth)

	case wasm.BranchIf:
		if err := c.emit(x.Condition); err != nil {
			return err
		}
		depth, err := c.labelDepth(x.LabelName)
		if err != nil {
			return err
		}
		c.w.Byte(OpBrIf)
		c.w.WriteU32(depth)

	default:
		return encodeErr(errors.KindUnsupported, "unknown node %T", expr)
	}
	return nil
}
