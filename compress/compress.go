// Package compress implements the decompression side of the ROOT object
// buffer format: a small per-block header (algorithm tag, version,
// compressed/uncompressed lengths) followed by one or more
// algorithm-specific blocks, each no larger than kMaxCompressedBlockSize.
//
// The core decoder in package rootio depends only on the Decompressor
// interface; this package is the "externally defined mapping" from a
// file's fCompress field to a concrete codec (spec §3, §6).
package compress

import (
	"fmt"
)

// Algo identifies a ROOT compression algorithm.
type Algo int

const (
	AlgoNone Algo = iota
	AlgoZLIB
	AlgoLZMA
	AlgoLZ4
	AlgoZSTD
)

func (a Algo) String() string {
	switch a {
	case AlgoNone:
		return "none"
	case AlgoZLIB:
		return "zlib"
	case AlgoLZMA:
		return "lzma"
	case AlgoLZ4:
		return "lz4"
	case AlgoZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("algo(%d)", int(a))
	}
}

// Descriptor is the compression descriptor derived from a file's
// fCompress field: algorithm code + level.
type Descriptor struct {
	Algo  Algo
	Level int
}

// FromCompress maps a TFile fCompress value to a Descriptor. ROOT encodes
// fCompress as 100*algorithm + level (TFile::SetCompressionSettings); a
// bare level with no algorithm component (fCompress < 100) means the
// default algorithm, ZLIB.
func FromCompress(fCompress int32) Descriptor {
	if fCompress <= 0 {
		return Descriptor{Algo: AlgoNone, Level: 0}
	}
	algo := fCompress / 100
	level := fCompress % 100
	if algo == 0 {
		algo = int32(AlgoZLIB)
	}
	return Descriptor{Algo: Algo(algo), Level: int(level)}
}

// Decompressor decompresses the payload of one block of a ROOT
// compressed buffer. Implementations see only the raw bytes after the
// 9-byte block header has been parsed by Decompress, which calls them
// once per block; per-algorithm decompressors never see framing.
type Decompressor interface {
	// DecompressBlock decompresses one block's payload. dst has exactly
	// the block's declared uncompressed length.
	DecompressBlock(dst, src []byte) error
}

// Registry maps an Algo to the Decompressor used for it.
type Registry struct {
	codecs map[Algo]Decompressor
}

// NewRegistry returns a Registry pre-populated with the default codecs
// this package ships: zlib and LZMA. Callers may Register additional or
// replacement codecs (e.g. for LZ4/ZSTD) before first use.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[Algo]Decompressor)}
	r.Register(AlgoZLIB, zlibCodec{})
	r.Register(AlgoLZMA, lzmaCodec{})
	return r
}

// Register installs (or overrides) the Decompressor used for algo.
func (r *Registry) Register(algo Algo, d Decompressor) {
	r.codecs[algo] = d
}

// Lookup returns the Decompressor registered for algo, if any.
func (r *Registry) Lookup(algo Algo) (Decompressor, bool) {
	d, ok := r.codecs[algo]
	return d, ok
}

const (
	// kMaxCompressedBlockSize is the largest single compressed block ROOT
	// will emit; larger payloads are split across consecutive blocks,
	// each individually framed.
	kMaxCompressedBlockSize = 0xffffff
	blockHeaderSize         = 9
)

var magicFor = map[Algo][2]byte{
	AlgoZLIB: {'Z', 'L'},
	AlgoLZMA: {'X', 'Z'},
	AlgoLZ4:  {'L', '4'},
	AlgoZSTD: {'Z', 'S'},
}

// Decompress decompresses a ROOT object payload (the concatenation of one
// or more framed blocks) into a buffer of exactly uncompressedSize bytes,
// using the codec the Registry has registered for algo.
func (r *Registry) Decompress(algo Algo, src []byte, uncompressedSize int) ([]byte, error) {
	if algo == AlgoNone {
		if len(src) != uncompressedSize {
			return nil, fmt.Errorf("compress: uncompressed payload has %d bytes, want %d", len(src), uncompressedSize)
		}
		out := make([]byte, uncompressedSize)
		copy(out, src)
		return out, nil
	}

	codec, ok := r.Lookup(algo)
	if !ok {
		return nil, fmt.Errorf("compress: no decompressor registered for algorithm %s", algo)
	}

	out := make([]byte, 0, uncompressedSize)
	for len(out) < uncompressedSize {
		if len(src) < blockHeaderSize {
			return nil, fmt.Errorf("compress: truncated block header (%d bytes left)", len(src))
		}
		wantMagic, known := magicFor[algo]
		gotMagic := [2]byte{src[0], src[1]}
		if known && gotMagic != wantMagic {
			return nil, fmt.Errorf("compress: block magic %q does not match algorithm %s", gotMagic, algo)
		}
		// src[2] is the codec version byte; not interpreted here.
		compLen := int(src[3]) | int(src[4])<<8 | int(src[5])<<16
		uncompLen := int(src[6]) | int(src[7])<<8 | int(src[8])<<16
		src = src[blockHeaderSize:]
		if len(src) < compLen {
			return nil, fmt.Errorf("compress: truncated block body: have %d bytes, want %d", len(src), compLen)
		}
		dst := make([]byte, uncompLen)
		if err := codec.DecompressBlock(dst, src[:compLen]); err != nil {
			return nil, fmt.Errorf("compress: %s block decompress: %w", algo, err)
		}
		out = append(out, dst...)
		src = src[compLen:]
	}
	if len(out) != uncompressedSize {
		return nil, fmt.Errorf("compress: decompressed %d bytes, want %d", len(out), uncompressedSize)
	}
	return out, nil
}
