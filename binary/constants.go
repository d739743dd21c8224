package binary

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs define the binary identifiers for each module section.
// Sections must appear in increasing order by ID.
const (
	SectionType     byte = 1  // Type section (function signatures)
	SectionImport   byte = 2  // Import section
	SectionFunction byte = 3  // Function section (type indices)
	SectionGlobal   byte = 6  // Global section
	SectionExport   byte = 7  // Export section
	SectionCode     byte = 10 // Code section (function bodies)
)

// Import/export descriptor kind for functions.
const KindFunc byte = 0

// Value type encodings.
const (
	ValI32 byte = 0x7F // 32-bit integer
	ValI64 byte = 0x7E // 64-bit integer
)

// FuncTypeByte prefixes every function type in the type section.
const FuncTypeByte byte = 0x60

// BlockTypeVoid is the block type of every structured construct the
// translator emits; values never cross block boundaries.
const BlockTypeVoid byte = 0x40

// Control flow and variable access opcodes.
const (
	OpUnreachable byte = 0x00
	OpNop         byte = 0x01
	OpBlock       byte = 0x02
	OpLoop        byte = 0x03
	OpIf          byte = 0x04
	OpElse        byte = 0x05
	OpEnd         byte = 0x0B
	OpBr          byte = 0x0C
	OpBrIf        byte = 0x0D
	OpCall        byte = 0x10
	OpLocalGet    byte = 0x20
	OpLocalSet    byte = 0x21
	OpGlobalGet   byte = 0x23
	OpGlobalSet   byte = 0x24
	OpI64Const    byte = 0x42
)

// Numeric opcodes, keyed by the mnemonic the translator uses as builtin
// name.
var numericOpcodes = map[string]byte{
	"i64.eqz":  0x50,
	"i64.eq":   0x51,
	"i64.ne":   0x52,
	"i64.lt_s": 0x53,
	"i64.lt_u": 0x54,
	"i64.gt_s": 0x55,
	"i64.gt_u": 0x56,
	"i64.le_s": 0x57,
	"i64.le_u": 0x58,
	"i64.ge_s": 0x59,
	"i64.ge_u": 0x5A,

	"i64.add":   0x7C,
	"i64.sub":   0x7D,
	"i64.mul":   0x7E,
	"i64.div_s": 0x7F,
	"i64.div_u": 0x80,
	"i64.rem_s": 0x81,
	"i64.rem_u": 0x82,
	"i64.and":   0x83,
	"i64.or":    0x84,
	"i64.xor":   0x85,
	"i64.shl":   0x86,
	"i64.shr_s": 0x87,
	"i64.shr_u": 0x88,

	"i32.wrap_i64":     0xA7,
	"i64.extend_i32_s": 0xAC,
	"i64.extend_i32_u": 0xAD,
}
