package compress

import (
	"bytes"
	"testing"

	kzlib "github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

func TestFromCompress(t *testing.T) {
	cases := []struct {
		in   int32
		want Descriptor
	}{
		{0, Descriptor{AlgoNone, 0}},
		{101, Descriptor{AlgoZLIB, 1}},
		{207, Descriptor{AlgoLZMA, 7}},
		{5, Descriptor{AlgoZLIB, 5}}, // bare level, no algo component
	}
	for _, c := range cases {
		got := FromCompress(c.in)
		require.Equal(t, c.want, got, "fCompress=%d", c.in)
	}
}

func blockHeader(algo Algo, compLen, uncompLen int) []byte {
	m := magicFor[algo]
	h := make([]byte, blockHeaderSize)
	h[0], h[1] = m[0], m[1]
	h[2] = 0
	h[3], h[4], h[5] = byte(compLen), byte(compLen>>8), byte(compLen>>16)
	h[6], h[7], h[8] = byte(uncompLen), byte(uncompLen>>8), byte(uncompLen>>16)
	return h
}

func TestDecompressZlibSingleBlock(t *testing.T) {
	plain := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 100)

	var buf bytes.Buffer
	w := kzlib.NewWriter(&buf)
	_, err := w.Write(plain)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	compressed := buf.Bytes()

	src := append(blockHeader(AlgoZLIB, len(compressed), len(plain)), compressed...)

	reg := NewRegistry()
	out, err := reg.Decompress(AlgoZLIB, src, len(plain))
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecompressNone(t *testing.T) {
	reg := NewRegistry()
	plain := []byte("uncompressed payload")
	out, err := reg.Decompress(AlgoNone, plain, len(plain))
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecompressUnregisteredAlgo(t *testing.T) {
	reg := &Registry{codecs: map[Algo]Decompressor{}}
	_, err := reg.Decompress(AlgoLZ4, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0}, 10)
	require.Error(t, err)
}

func TestDecompressTruncatedHeader(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Decompress(AlgoZLIB, []byte{1, 2, 3}, 10)
	require.Error(t, err)
}

func TestDecompressMagicMismatch(t *testing.T) {
	reg := NewRegistry()
	h := blockHeader(AlgoLZMA, 1, 1)
	_, err := reg.Decompress(AlgoZLIB, append(h, 0x00), 1)
	require.Error(t, err)
}
