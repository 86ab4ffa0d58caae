package rootio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func framedRecord(version int16, payload []byte) []byte {
	buf := make([]byte, 4+2+len(payload))
	cnt := uint32(2+len(payload)) | kByteCountMask
	binary.BigEndian.PutUint32(buf[0:4], cnt)
	binary.BigEndian.PutUint16(buf[4:6], uint16(version))
	copy(buf[6:], payload)
	return buf
}

func TestStartCheckEndCheckRoundTrip(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	data := framedRecord(1, payload)
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)

	start, expected, vers, err := startCheck(src, cur)
	require.NoError(t, err)
	require.EqualValues(t, 1, vers)
	require.EqualValues(t, 0, start)

	_, err = cur.Bytes(src, len(payload))
	require.NoError(t, err)

	require.NoError(t, endCheck("test", start, cur, expected))
}

func TestEndCheckDetectsMismatch(t *testing.T) {
	payload := []byte{0xAA, 0xBB, 0xCC}
	data := framedRecord(1, payload)
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)

	start, expected, _, err := startCheck(src, cur)
	require.NoError(t, err)

	// Consume only part of the payload, so the byte count won't match.
	_, err = cur.Bytes(src, 1)
	require.NoError(t, err)

	err = endCheck("test", start, cur, expected)
	require.Error(t, err)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestSkipTObjectSetsIsOnHeap(t *testing.T) {
	data := []byte{
		0x00, 0x01, // version, no byte-count flag
		0x00, 0x00, 0x00, 0x2A, // uniqueID = 42
		0x00, 0x00, 0x00, 0x00, // bits = 0
	}
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)

	id, bits, err := skipTObject(src, cur)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
	require.EqualValues(t, kIsOnHeap, bits)
}

func TestNameTitle(t *testing.T) {
	data := []byte{
		0x00, 0x01, // TObject version
		0x00, 0x00, 0x00, 0x00, // uniqueID
		0x00, 0x00, 0x00, 0x00, // bits
		3, 'f', 'o', 'o', // name
		3, 'b', 'a', 'r', // title
	}
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)

	name, title, err := nameTitle(src, cur)
	require.NoError(t, err)
	require.Equal(t, "foo", name)
	require.Equal(t, "bar", title)
}
