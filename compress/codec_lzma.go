package compress

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaCodec is the default LZMA Decompressor. ROOT's "XZ"-tagged blocks
// are raw LZMA1 streams (not the xz container format), so this uses the
// lzma subpackage's reader directly rather than xz.NewReader.
type lzmaCodec struct{}

func (lzmaCodec) DecompressBlock(dst, src []byte) error {
	lr, err := lzma.NewReader(bytes.NewReader(src))
	if err != nil {
		return err
	}
	n, err := io.ReadFull(lr, dst)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if n != len(dst) {
		return io.ErrShortBuffer
	}
	return nil
}
