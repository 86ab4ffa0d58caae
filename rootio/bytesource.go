package rootio

import (
	"fmt"

	"github.com/hepio/rootio/compress"
)

// ByteSource is the abstract random-access byte source the core depends
// on. Concrete implementations (a local memory-mapped file, a remote
// byte-range-readable endpoint) live outside this package — see package
// source — and are treated purely as external collaborators (spec §1,
// §6).
type ByteSource interface {
	// Path identifies this source (a file path or URL), for error
	// messages and FileContext.SourcePath.
	Path() string
	// Read returns exactly length bytes starting at offset. A read
	// past the end of the source is always an error, never silently
	// truncated (spec §4.1).
	Read(offset uint64, length int) ([]byte, error)
}

// Dismisser is an optional capability a ByteSource may implement: a hint
// that the caller is done with a top-level decode and the source may
// release or park any handles it holds (spec §5).
type Dismisser interface {
	Dismiss() error
}

// dismiss invokes Dismiss on src if it implements Dismisser, swallowing
// the "doesn't support it" case; Dismiss failures are logged, not
// propagated, since a partial release is still better than a leak and
// the caller has already gotten (or failed to get) its answer.
func dismiss(src ByteSource) {
	if d, ok := src.(Dismisser); ok {
		if err := d.Dismiss(); err != nil {
			defaultLogger().Debug("dismiss failed", "source", src.Path(), "err", err)
		}
	}
}

// readAt is the single chokepoint every cursor operation reads through;
// it exists so SourceIOError can always carry path/offset/length.
func readAt(src ByteSource, offset uint64, length int) ([]byte, error) {
	buf, err := src.Read(offset, length)
	if err != nil {
		return nil, &SourceIOError{Path: src.Path(), Offset: offset, Length: length, Err: err}
	}
	if len(buf) != length {
		return nil, &SourceIOError{Path: src.Path(), Offset: offset, Length: length,
			Err: fmt.Errorf("short read: got %d bytes", len(buf))}
	}
	return buf, nil
}

// CompressedSubSource is a virtual ByteSource over a contiguous
// compressed span of an underlying source; it decompresses the whole
// span eagerly on construction (object payloads are bounded by
// fObjlen, never file-sized) and serves Read calls from the result,
// satisfying the compression contract of spec §6: "a random-access
// source of fObjlen bytes whose origin corresponds to -fKeylen in the
// record's framing".
type CompressedSubSource struct {
	path string
	data []byte
}

// NewCompressedSubSource reads compressedSize bytes at offset from src
// and decompresses them into exactly uncompressedSize bytes using the
// codec registry reg has for desc.Algo.
func NewCompressedSubSource(src ByteSource, offset uint64, compressedSize, uncompressedSize int, desc compress.Descriptor, reg *compress.Registry) (*CompressedSubSource, error) {
	raw, err := readAt(src, offset, compressedSize)
	if err != nil {
		return nil, err
	}
	data, err := reg.Decompress(desc.Algo, raw, uncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("rootio: decompressing payload from %q at %d: %w", src.Path(), offset, err)
	}
	return &CompressedSubSource{path: src.Path(), data: data}, nil
}

func (c *CompressedSubSource) Path() string { return c.path }

func (c *CompressedSubSource) Read(offset uint64, length int) ([]byte, error) {
	end := offset + uint64(length)
	if end > uint64(len(c.data)) || end < offset {
		return nil, fmt.Errorf("rootio: read [%d,%d) out of range for decompressed payload of %q (%d bytes)",
			offset, end, c.path, len(c.data))
	}
	out := make([]byte, length)
	copy(out, c.data[offset:end])
	return out, nil
}
