package rootio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func testContextWithTString() *FileContext {
	return &FileContext{Classes: map[string]*ClassDescriptor{
		"TString": {Name: "TString", ReadFunc: readTString},
	}}
}

func TestReadObjectAnyNewClassTag(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF} // kNewClassTag, vers==0 (no byte-count prefix)
	data = append(data, []byte("TString\x00")...)
	data = append(data, 3, 'f', 'o', 'o')

	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	obj, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	require.Equal(t, TString("foo"), obj)
}

func TestReadObjectAnyClassReferenceReuse(t *testing.T) {
	// First object is a vers==0 new-class-tag record; its class
	// descriptor is cached under the auto-incrementing ref id 1 since
	// there is no byte-count prefix to derive a position-based key
	// from. A second object, framed with a real byte-count prefix
	// (vers==1), then refers back to that class by ref id instead of
	// repeating the class name.
	first := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	first = append(first, []byte("TString\x00")...)
	first = append(first, 3, 'o', 'n', 'e')

	second := make([]byte, 8)
	binary.BigEndian.PutUint32(second[0:4], kByteCountMask|4)
	binary.BigEndian.PutUint32(second[4:8], kClassMask|1)
	second = append(second, 3, 't', 'w', 'o')

	data := append(first, second...)
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	obj1, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	require.Equal(t, TString("one"), obj1)

	obj2, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	require.Equal(t, TString("two"), obj2)
}

func TestReadObjectAnyNilPointer(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00} // tag==0, kClassMask clear: null pointer
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	obj, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	require.Nil(t, obj)
}

func TestReadObjectAnySelfReferenceUnsupported(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01} // tag==1: self-reference
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	_, err := ReadObjectAny(src, cur, ctx)
	require.Error(t, err)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestReadObjectAnyUnknownObjectReferenceJumpsPast(t *testing.T) {
	// vers==1 framing (real byte count) referencing an object ref
	// never seen at this scope: the cursor must jump past the
	// unresolved object's declared bytes and yield nil, not error.
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], kByteCountMask|10) // bcnt's low bits = 10
	binary.BigEndian.PutUint32(data[4:8], 42)                // tag: unseen object ref
	data = append(data, make([]byte, 20)...)                 // filler past the jump target

	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	obj, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	require.Nil(t, obj)
	require.EqualValues(t, 0+10+4, cur.Index) // origin(0) + beg(0) + bcnt(10) + 4
}

func TestReadObjectAnyUnknownClassDefaultsToUndefined(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	data = append(data, []byte("Bogus\x00")...)
	data = append(data, framedRecord(1, nil)...)

	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := testContextWithTString()

	obj, err := ReadObjectAny(src, cur, ctx)
	require.NoError(t, err)
	undef, ok := obj.(*Undefined)
	require.True(t, ok)
	require.Equal(t, "Bogus", undef.ClassName)
}
