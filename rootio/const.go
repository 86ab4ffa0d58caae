package rootio

// Tag and framing bits used by the versioned-record bracket and
// ReadObjectAny (spec §6 "Provided constants").
const (
	kByteCountMask  = 0x40000000
	kByteCountVMask = 0x4000 // bit 14 of the 16-bit TObject version field
	kNewClassTag    = 0xFFFFFFFF
	kClassMask      = 0x80000000
	kMapOffset      = 2

	kIsOnHeap    = 0x01000000
	kIsReferenced = 1 << 4
)

// kOffsetL and kOffsetP bound the "fixed-length array of basic type" and
// "basic-type pointer" ranges of the fType element-type code.
const (
	kOffsetL = 20
	kOffsetP = 40
)

// Basic-type element codes (TVirtualStreamerInfo::EReadWrite), the ones
// this decoder interprets directly.
const (
	kBase       = 0
	kChar       = 1
	kShort      = 2
	kInt        = 3
	kLong       = 4
	kFloat      = 5
	kCounter    = 6
	kCharStar   = 7
	kDouble     = 8
	kDouble32   = 9
	kLegacyChar = 10
	kUChar      = 11
	kUShort     = 12
	kUInt       = 13
	kULong      = 14
	kBits       = 15
	kLong64     = 16
	kULong64    = 17
	kBool       = 18
	kFloat16    = 19

	kObject    = 61
	kAny       = 62
	kObjectp   = 63
	kObjectP   = 64
	kTString   = 65
	kTObject   = 66
	kTNamed    = 67
	kAnyp      = 68
	kAnyP      = 69
	kSTLp      = 70

	kSTL       = 300
	kSTLstring = 365
)

// STL container sub-kinds relevant to TStreamerSTL's set/multimap
// reclassification (spec §4.4).
const (
	kSTLmap      = 4
	kSTLset      = 5
	kSTLmultimap = 9
)
