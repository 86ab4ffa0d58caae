package rootio

import "github.com/hepio/rootio/compress"

// Key is one TKey record: a directory entry pointing at an object's
// (possibly compressed) payload, plus the bookkeeping ROOT needs to
// validate and locate it (spec §3, §4.4 "TKey"). Fields named fXxx
// mirror the ROOT field they were decoded from.
type Key struct {
	src ByteSource

	NBytes     int32
	Version    int16
	ObjLen     int32
	DatimeSec  uint32
	KeyLen     int16
	Cycle      int16
	SeekKey    int64
	SeekPdir   int64
	ClassName  string
	NameStr    string
	TitleStr   string
	SeekStart  int64 // absolute offset the payload begins at
}

func (k *Key) Name() string  { return k.NameStr }
func (k *Key) Title() string { return k.TitleStr }

// IsCompressed reports whether the key's payload is smaller on disk
// than in memory, i.e. was compressed when written (spec §4.4).
func (k *Key) IsCompressed() bool {
	return k.NBytes-int32(k.KeyLen) != k.ObjLen
}

// readKey decodes one TKey starting at cur's current position. big
// selects the wide (8-byte pointer) record layout used once a file
// exceeds the 2GB/32-bit-offset boundary (spec §4.4's small/big key
// table).
func readKey(src ByteSource, cur *Cursor, big bool) (*Key, error) {
	k := &Key{src: src}

	var err error
	if k.NBytes, err = cur.I32(src); err != nil {
		return nil, err
	}
	if k.Version, err = cur.I16(src); err != nil {
		return nil, err
	}
	if k.ObjLen, err = cur.I32(src); err != nil {
		return nil, err
	}
	if k.DatimeSec, err = cur.U32(src); err != nil {
		return nil, err
	}
	if k.KeyLen, err = cur.I16(src); err != nil {
		return nil, err
	}
	if k.Cycle, err = cur.I16(src); err != nil {
		return nil, err
	}

	if big || k.Version > 1000 {
		if k.SeekKey, err = cur.I64(src); err != nil {
			return nil, err
		}
		if k.SeekPdir, err = cur.I64(src); err != nil {
			return nil, err
		}
	} else {
		v, err := cur.I32(src)
		if err != nil {
			return nil, err
		}
		k.SeekKey = int64(v)
		v, err = cur.I32(src)
		if err != nil {
			return nil, err
		}
		k.SeekPdir = int64(v)
	}

	if k.ClassName, err = cur.String(src); err != nil {
		return nil, err
	}
	if k.NameStr, err = cur.String(src); err != nil {
		return nil, err
	}
	if k.TitleStr, err = cur.String(src); err != nil {
		return nil, err
	}

	k.SeekStart = k.SeekKey + int64(k.KeyLen)
	return k, nil
}

// payloadCursor returns a Cursor ready to decode k's object: if the
// key's payload was compressed, it is first transparently and eagerly
// decompressed into a CompressedSubSource (spec §4.1 "decompression is
// transparent to the decoder above it").
func (k *Key) payloadCursor(reg *compress.Registry, desc compress.Descriptor) (ByteSource, *Cursor, error) {
	compressedLen := int(k.NBytes) - int(k.KeyLen)
	if !k.IsCompressed() {
		return k.src, NewCursorAt(k.SeekStart, k.SeekStart), nil
	}
	sub, err := NewCompressedSubSource(k.src, uint64(k.SeekStart), compressedLen, int(k.ObjLen), desc, reg)
	if err != nil {
		return nil, nil, err
	}
	return sub, NewCursorAt(0, 0), nil
}

// Get decodes the object this key refers to, dispatching to its
// class's descriptor. When dismiss is true and the payload was
// compressed, the in-memory CompressedSubSource is passed to dismiss
// after decoding; it implements no Dismisser, so nothing is released,
// and the key's underlying source is never dismissed here.
func (k *Key) Get(ctx *FileContext, dismiss bool) (Object, error) {
	src, cur, err := k.payloadCursor(ctx.Registry, ctx.Compression)
	if err != nil {
		return nil, err
	}
	if dismiss {
		defer dismissIfCompressed(src, k)
	}
	desc, ok := ctx.Classes[k.ClassName]
	if !ok {
		return &Undefined{ClassName: k.ClassName}, nil
	}
	return desc.Read(src, cur, ctx)
}

func dismissIfCompressed(src ByteSource, k *Key) {
	if k.IsCompressed() {
		dismiss(src)
	}
}
