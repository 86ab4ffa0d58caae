package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCodec is the default ZLIB Decompressor, backed by klauspost/compress
// rather than the standard library's compress/zlib for its faster
// inflate implementation.
type zlibCodec struct{}

func (zlibCodec) DecompressBlock(dst, src []byte) error {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return err
	}
	defer zr.Close()
	n, err := io.ReadFull(zr, dst)
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}
	if n != len(dst) {
		return io.ErrShortBuffer
	}
	return nil
}
