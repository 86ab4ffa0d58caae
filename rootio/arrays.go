package rootio

import (
	"encoding/binary"
	"math"
)

// readFixedArray reads n raw bytes per item and decodes each with
// decode, doing a single underlying read for the whole array (spec
// §4.1 "read n*itemsize(dtype) bytes and reinterpret... ").
func readFixedArray[T any](src ByteSource, cur *Cursor, n, itemSize int, decode func([]byte) T) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	buf, err := cur.Bytes(src, n*itemSize)
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		out[i] = decode(buf[i*itemSize : (i+1)*itemSize])
	}
	return out, nil
}

// basicItemSize returns the on-disk size, in bytes, of one element of
// basic type fType (after any kOffsetL normalization has already been
// applied by the caller), mirroring uproot's _ftype2struct/_ftype2dtype
// tables (original_source/uproot/rootio.py).
func basicItemSize(fType int32) (int, error) {
	switch fType {
	case kBool, kChar, kUChar, kLegacyChar:
		return 1, nil
	case kShort, kUShort:
		return 2, nil
	case kInt, kBits, kUInt, kCounter, kFloat, kFloat16:
		return 4, nil
	case kLong, kULong, kLong64, kULong64, kDouble, kDouble32:
		return 8, nil
	case kCharStar:
		return 8, nil // pointer-sized; value itself is unsupported (spec §9)
	default:
		return 0, unsupportedf("basicItemSize", "unknown basic type code %d", fType)
	}
}

// readDynArray reads n values of basic type fType and returns them as a
// Go slice of the corresponding concrete type, boxed in an any (the
// concrete element type varies with fType, discovered only at schema
// synthesis time — spec §4.6's "the dtype is determined by fType").
func readDynArray(src ByteSource, cur *Cursor, n int, fType int32) (any, error) {
	switch fType {
	case kBool:
		return readFixedArray(src, cur, n, 1, func(b []byte) bool { return b[0] != 0 })
	case kChar, kLegacyChar:
		return readFixedArray(src, cur, n, 1, func(b []byte) int8 { return int8(b[0]) })
	case kUChar:
		return readFixedArray(src, cur, n, 1, func(b []byte) uint8 { return b[0] })
	case kShort:
		return readFixedArray(src, cur, n, 2, func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) })
	case kUShort:
		return readFixedArray(src, cur, n, 2, func(b []byte) uint16 { return binary.BigEndian.Uint16(b) })
	case kInt:
		return readFixedArray(src, cur, n, 4, func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) })
	case kBits, kUInt, kCounter:
		return readFixedArray(src, cur, n, 4, func(b []byte) uint32 { return binary.BigEndian.Uint32(b) })
	case kLong, kLong64:
		return readFixedArray(src, cur, n, 8, func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) })
	case kULong, kULong64:
		return readFixedArray(src, cur, n, 8, func(b []byte) uint64 { return binary.BigEndian.Uint64(b) })
	case kFloat, kFloat16:
		return readFixedArray(src, cur, n, 4, func(b []byte) float32 { return math.Float32frombits(binary.BigEndian.Uint32(b)) })
	case kDouble, kDouble32:
		return readFixedArray(src, cur, n, 8, func(b []byte) float64 { return math.Float64frombits(binary.BigEndian.Uint64(b)) })
	default:
		return nil, unsupportedf("readDynArray", "unknown basic type code %d", fType)
	}
}
