package rootio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorScalars(t *testing.T) {
	src := &memSource{path: "mem", data: []byte{
		0x01,                   // U8
		0x00, 0x02,             // U16 = 2
		0x00, 0x00, 0x00, 0x03, // U32 = 3
	}}
	cur := NewCursor(0)

	u8, err := cur.U8(src)
	require.NoError(t, err)
	require.EqualValues(t, 1, u8)

	u16, err := cur.U16(src)
	require.NoError(t, err)
	require.EqualValues(t, 2, u16)

	u32, err := cur.U32(src)
	require.NoError(t, err)
	require.EqualValues(t, 3, u32)

	require.EqualValues(t, 7, cur.Index)
}

func TestCursorStringShortForm(t *testing.T) {
	src := &memSource{path: "mem", data: []byte{3, 'f', 'o', 'o'}}
	cur := NewCursor(0)
	s, err := cur.String(src)
	require.NoError(t, err)
	require.Equal(t, "foo", s)
	require.EqualValues(t, 4, cur.Index)
}

func TestCursorStringEscapedLength(t *testing.T) {
	data := append([]byte{255, 0, 0, 0, 5}, []byte("hello")...)
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	s, err := cur.String(src)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	require.EqualValues(t, 10, cur.Index)
}

func TestCursorStringEmpty(t *testing.T) {
	src := &memSource{path: "mem", data: []byte{0}}
	cur := NewCursor(0)
	s, err := cur.String(src)
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestCursorCString(t *testing.T) {
	src := &memSource{path: "mem", data: []byte("abc\x00trailing")}
	cur := NewCursor(0)
	s, err := cur.CString(src)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
	require.EqualValues(t, 4, cur.Index)
}

func TestCursorCopiedSharesRefs(t *testing.T) {
	cur := NewCursor(10)
	cur.Refs[1] = "marker"
	idx := int64(20)
	fork := cur.Copied(&idx, nil)
	require.EqualValues(t, 20, fork.Index)
	require.EqualValues(t, 10, cur.Index)
	require.Equal(t, "marker", fork.Refs[1])

	fork.Refs[2] = "added-via-fork"
	require.Equal(t, "added-via-fork", cur.Refs[2])
}

func TestCursorReadPastEndIsError(t *testing.T) {
	src := &memSource{path: "mem", data: []byte{1, 2}}
	cur := NewCursor(0)
	_, err := cur.Bytes(src, 5)
	require.Error(t, err)
	var srcErr *SourceIOError
	require.ErrorAs(t, err, &srcErr)
}
