package rootio

import (
	"encoding/binary"
	"math"
)

// Cursor is a positional reader over a ByteSource: an absolute offset,
// an origin subtracted to compute record-relative positions, and a
// reference table mapping integer tags to already-decoded classes or
// objects (spec §3, §4.1). Cursor values are cheap to copy; Refs is a
// map and is therefore shared between a Cursor and any Fork of it
// unless the fork is given a fresh one, matching "forks that represent
// the same logical decode scope [share refs]; distinct when scopes are
// distinct" (spec §3).
//
// A Cursor is never shared between goroutines.
type Cursor struct {
	Index  int64
	Origin int64
	Refs   map[int64]any
}

// NewCursor returns a Cursor positioned at index with a fresh reference
// table and origin 0.
func NewCursor(index int64) *Cursor {
	return &Cursor{Index: index, Refs: make(map[int64]any)}
}

// NewCursorAt returns a Cursor positioned at index with the given
// origin and a fresh reference table.
func NewCursorAt(index, origin int64) *Cursor {
	return &Cursor{Index: index, Origin: origin, Refs: make(map[int64]any)}
}

// Copied forks the cursor: same Refs table (same logical decode scope),
// optionally overriding index and/or origin. Pass nil to keep the
// current value.
func (c *Cursor) Copied(newIndex, newOrigin *int64) *Cursor {
	out := &Cursor{Index: c.Index, Origin: c.Origin, Refs: c.Refs}
	if newIndex != nil {
		out.Index = *newIndex
	}
	if newOrigin != nil {
		out.Origin = *newOrigin
	}
	return out
}

// Rel returns the cursor's position relative to its origin.
func (c *Cursor) Rel() int64 { return c.Index - c.Origin }

// Skip advances the cursor by n bytes without reading anything.
func (c *Cursor) Skip(n int64) { c.Index += n }

// Bytes reads n raw bytes, advancing the cursor.
func (c *Cursor) Bytes(src ByteSource, n int) ([]byte, error) {
	buf, err := readAt(src, uint64(c.Index), n)
	if err != nil {
		return nil, err
	}
	c.Index += int64(n)
	return buf, nil
}

func (c *Cursor) U8(src ByteSource) (uint8, error) {
	b, err := c.Bytes(src, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) I8(src ByteSource) (int8, error) {
	v, err := c.U8(src)
	return int8(v), err
}

func (c *Cursor) U16(src ByteSource) (uint16, error) {
	b, err := c.Bytes(src, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) I16(src ByteSource) (int16, error) {
	v, err := c.U16(src)
	return int16(v), err
}

func (c *Cursor) U32(src ByteSource) (uint32, error) {
	b, err := c.Bytes(src, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *Cursor) I32(src ByteSource) (int32, error) {
	v, err := c.U32(src)
	return int32(v), err
}

func (c *Cursor) U64(src ByteSource) (uint64, error) {
	b, err := c.Bytes(src, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *Cursor) I64(src ByteSource) (int64, error) {
	v, err := c.U64(src)
	return int64(v), err
}

func (c *Cursor) F32(src ByteSource) (float32, error) {
	v, err := c.U32(src)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *Cursor) F64(src ByteSource) (float64, error) {
	v, err := c.U64(src)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// String reads a length-prefixed byte string: the length is the first
// byte, unless that byte is 255, in which case the true length follows
// as a big-endian uint32 (spec §4.1, invariant 2).
func (c *Cursor) String(src ByteSource) (string, error) {
	n, err := c.U8(src)
	if err != nil {
		return "", err
	}
	length := int(n)
	if n == 255 {
		big, err := c.U32(src)
		if err != nil {
			return "", err
		}
		length = int(big)
	}
	if length == 0 {
		return "", nil
	}
	b, err := c.Bytes(src, length)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CString reads a NUL-terminated byte string, returning the content
// without the terminator.
func (c *Cursor) CString(src ByteSource) (string, error) {
	var out []byte
	for {
		b, err := c.U8(src)
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out), nil
}
