package rootio

import (
	"strconv"
	"strings"
)

// fileHeader is the fixed-layout preamble at the start of every
// container, selecting the small (4-byte pointer) or big (8-byte
// pointer) record layout by its own version field (spec §3 "File
// header").
type fileHeader struct {
	version     int32
	begin       int64
	end         int64
	seekFree    int64
	nbytesFree  int32
	nfree       int32
	nbytesName  int32
	units       byte
	compress    int32
	seekInfo    int64
	nbytesInfo  int32
	uuid        [18]byte
	big         bool
}

const magicLen = 4

func readFileHeader(src ByteSource) (*fileHeader, error) {
	buf, err := readAt(src, 0, magicLen)
	if err != nil {
		return nil, err
	}
	if string(buf) != "root" {
		return nil, malformedf("readFileHeader", "bad magic %q", buf)
	}

	cur := NewCursorAt(magicLen, 0)
	h := &fileHeader{}
	v, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	h.version = v
	beg, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	h.begin = int64(beg)
	h.big = h.version >= 1000000

	if !h.big {
		end, err := cur.I32(src)
		if err != nil {
			return nil, err
		}
		h.end = int64(end)
		sf, err := cur.I32(src)
		if err != nil {
			return nil, err
		}
		h.seekFree = int64(sf)
	} else {
		end, err := cur.I64(src)
		if err != nil {
			return nil, err
		}
		h.end = end
		sf, err := cur.I64(src)
		if err != nil {
			return nil, err
		}
		h.seekFree = sf
	}

	if h.nbytesFree, err = cur.I32(src); err != nil {
		return nil, err
	}
	if h.nfree, err = cur.I32(src); err != nil {
		return nil, err
	}
	if h.nbytesName, err = cur.I32(src); err != nil {
		return nil, err
	}
	if h.units, err = cur.U8(src); err != nil {
		return nil, err
	}
	if h.compress, err = cur.I32(src); err != nil {
		return nil, err
	}

	if !h.big {
		si, err := cur.I32(src)
		if err != nil {
			return nil, err
		}
		h.seekInfo = int64(si)
	} else {
		si, err := cur.I64(src)
		if err != nil {
			return nil, err
		}
		h.seekInfo = si
	}
	if h.nbytesInfo, err = cur.I32(src); err != nil {
		return nil, err
	}

	uuidBuf, err := cur.Bytes(src, 18)
	if err != nil {
		return nil, err
	}
	copy(h.uuid[:], uuidBuf)

	h.version %= 1000000
	return h, nil
}

// Directory is a TDirectory: a named scope holding a list of TKeys,
// each either a nested Directory or a leaf object (spec §4.4, §5
// "Directory").
type Directory struct {
	src    ByteSource
	ctx    *FileContext
	keys   []*Key
	name   string
	parent *Directory
}

// readDirectory decodes the TKey list for the directory whose own
// record begins at seekDir. It does not descend into keys whose class
// is a nested TDirectory/TDirectoryFile; Get, Classes and AllKeys read
// those on demand.
//
// The top-level directory's own record sits directly at the file
// header's fBEGIN with no enclosing TKey (wrapped=false); every nested
// directory is itself the payload of an ordinary TKey (wrapped=true),
// matching basnyats1024-hep's split between readHeader's direct
// tdirectory.readDirInfo() call and an ordinary key-addressed object.
func readDirectory(src ByteSource, ctx *FileContext, seekDir int64, name string, parent *Directory, big, wrapped bool) (*Directory, error) {
	var payloadSrc ByteSource
	var payloadCur *Cursor

	if wrapped {
		dirCur := NewCursorAt(seekDir, 0)
		dirKey, err := readKey(src, dirCur, big)
		if err != nil {
			return nil, err
		}
		payloadSrc, payloadCur, err = dirKey.payloadCursor(ctx.Registry, ctx.Compression)
		if err != nil {
			return nil, err
		}
	} else {
		payloadSrc, payloadCur = src, NewCursorAt(seekDir, seekDir)
	}

	if _, _, _, err := startCheck(payloadSrc, payloadCur); err != nil {
		return nil, err
	}
	payloadCur.Skip(4) // fDatimeC
	payloadCur.Skip(4) // fDatimeM
	nbyteskeys, err := payloadCur.I32(payloadSrc)
	if err != nil {
		return nil, err
	}
	_ = nbyteskeys
	payloadCur.Skip(4) // fNbytesName

	var seekKeys int64
	if big {
		seekKeys, err = payloadCur.I64(payloadSrc)
	} else {
		var v int32
		v, err = payloadCur.I32(payloadSrc)
		seekKeys = int64(v)
	}
	if err != nil {
		return nil, err
	}

	keysCur := NewCursorAt(seekKeys, 0)
	keysKey, err := readKey(src, keysCur, big)
	if err != nil {
		return nil, err
	}
	keysPayloadSrc, keysPayloadCur, err := keysKey.payloadCursor(ctx.Registry, ctx.Compression)
	if err != nil {
		return nil, err
	}

	nkeys, err := keysPayloadCur.I32(keysPayloadSrc)
	if err != nil {
		return nil, err
	}

	dir := &Directory{src: src, ctx: ctx, name: name, parent: parent}
	for i := int32(0); i < nkeys; i++ {
		k, err := readKey(src, keysPayloadCur, big)
		if err != nil {
			return nil, err
		}
		k.src = src
		dir.keys = append(dir.keys, k)
	}
	return dir, nil
}

// splitNameCycle splits "name;cycle" into its parts; cycle is nil when
// absent (spec §4.4 "Get" namecycle syntax).
func splitNameCycle(namecycle string) (string, *int16) {
	idx := strings.LastIndexByte(namecycle, ';')
	if idx < 0 {
		return namecycle, nil
	}
	cycleStr := namecycle[idx+1:]
	n, err := strconv.ParseInt(cycleStr, 10, 16)
	if err != nil {
		return namecycle, nil
	}
	c := int16(n)
	return namecycle[:idx], &c
}

// Get resolves a "/"-separated, optionally ";cycle"-suffixed path
// against this directory, recursing into nested directories (spec
// §4.4 "Get").
func (d *Directory) Get(namecycle string) (Object, error) {
	head, rest, hasRest := strings.Cut(namecycle, "/")
	name, cycle := splitNameCycle(head)

	var best *Key
	for _, k := range d.keys {
		if k.Name() != name {
			continue
		}
		if cycle != nil && k.Cycle != *cycle {
			continue
		}
		if best == nil || k.Cycle > best.Cycle {
			best = k
		}
	}
	if best == nil {
		return nil, &NotFoundError{Name: name, Cycle: cycle}
	}

	if !hasRest {
		return best.Get(d.ctx, true)
	}

	if !isDirectoryClass(best.ClassName) {
		return nil, &NotFoundError{Name: namecycle}
	}
	sub, err := readDirectory(d.src, d.ctx, best.SeekStart-int64(best.KeyLen), name, d, d.ctx.Big, true)
	if err != nil {
		return nil, err
	}
	return sub.Get(rest)
}

func isDirectoryClass(className string) bool {
	return className == "TDirectory" || className == "TDirectoryFile"
}

// Keys returns this directory's own key records, non-recursively.
func (d *Directory) Keys() []*Key { return d.keys }

// Classes returns the distinct class names of this directory's keys,
// optionally recursing into nested directories (spec §4.4 "Classes").
func (d *Directory) Classes(recursive bool) []string {
	seen := make(map[string]bool)
	var out []string
	d.walkClasses(recursive, func(className string) {
		if !seen[className] {
			seen[className] = true
			out = append(out, className)
		}
	})
	return out
}

func (d *Directory) walkClasses(recursive bool, visit func(string)) {
	for _, k := range d.keys {
		visit(k.ClassName)
		if recursive && isDirectoryClass(k.ClassName) {
			sub, err := readDirectory(d.src, d.ctx, k.SeekStart-int64(k.KeyLen), k.Name(), d, d.ctx.Big, true)
			if err == nil {
				sub.walkClasses(recursive, visit)
			}
		}
	}
}

// AllKeys returns every key in this directory and, recursively, every
// nested directory (spec §4.4 "AllKeys").
func (d *Directory) AllKeys() []*Key {
	out := append([]*Key(nil), d.keys...)
	for _, k := range d.keys {
		if isDirectoryClass(k.ClassName) {
			sub, err := readDirectory(d.src, d.ctx, k.SeekStart-int64(k.KeyLen), k.Name(), d, d.ctx.Big, true)
			if err == nil {
				out = append(out, sub.AllKeys()...)
			}
		}
	}
	return out
}
