package rootio

import (
	"log/slog"

	"github.com/hepio/rootio/compress"
	"github.com/hepio/rootio/source"
)

// File is an opened container: its header, its root Directory, and the
// FileContext every decode below it shares (spec §5 "File").
type File struct {
	src  ByteSource
	root *Directory
	ctx  *FileContext
}

// OpenOption configures Open/OpenFile (spec §6 "External Interfaces").
type OpenOption func(*openConfig)

type openConfig struct {
	methods         *MethodRegistry
	withoutStreamers bool
	logger          *slog.Logger
}

// WithMethods attaches a MethodRegistry whose mixins run after every
// synthesized object is decoded.
func WithMethods(reg *MethodRegistry) OpenOption {
	return func(c *openConfig) { c.methods = reg }
}

// WithoutStreamers skips reading the schema catalog entirely; only
// built-in classes will be decodable, and any key referring to a
// schema-only class surfaces as *Undefined rather than failing the
// open.
func WithoutStreamers() OpenOption {
	return func(c *openConfig) { c.withoutStreamers = true }
}

// WithLogger replaces the package-wide structured logger used for
// diagnostics (dismiss failures); the replacement stays in effect for
// later calls as well, not only this open call.
func WithLogger(l *slog.Logger) OpenOption {
	return func(c *openConfig) { c.logger = l }
}

// OpenFile memory-maps path and opens it as a container (spec §6
// "open(path)").
func OpenFile(path string, opts ...OpenOption) (*File, error) {
	mm, err := source.OpenMmapFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Open(mm, opts...)
	if err != nil {
		dismiss(mm)
		return nil, err
	}
	return f, nil
}

// Open decodes a container already reachable through src (spec §6
// "open(path) -> ByteSource -> Cursor" data flow, generalized to any
// already-constructed ByteSource such as an HTTP range source).
func Open(src ByteSource, opts ...OpenOption) (*File, error) {
	cfg := &openConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger != nil {
		setDefaultLogger(cfg.logger)
	}

	hdr, err := readFileHeader(src)
	if err != nil {
		return nil, err
	}

	ctx := &FileContext{
		SourcePath:  src.Path(),
		Classes:     defaultClasses(),
		Compression: compress.FromCompress(hdr.compress),
		Registry:    compress.NewRegistry(),
		Methods:     cfg.methods,
		Big:         hdr.big,
		rawUUID:     hdr.uuid,
	}

	if !cfg.withoutStreamers && hdr.seekInfo != 0 {
		streamers, err := readStreamerCatalog(src, ctx, hdr)
		if err != nil {
			return nil, err
		}
		ctx.Streamers = make(map[string]*StreamerInfo, len(streamers))
		for _, si := range streamers {
			ctx.Streamers[si.Name] = si
		}
		sorted, err := sortStreamers(streamers)
		if err != nil {
			return nil, err
		}
		for _, si := range sorted {
			if _, builtin := ctx.Classes[si.Name]; builtin {
				continue
			}
			desc, err := synthesizeClass(si)
			if err != nil {
				return nil, err
			}
			ctx.Classes[si.Name] = desc
		}
	}

	root, err := readDirectory(src, ctx, hdr.begin, "", nil, hdr.big, false)
	if err != nil {
		return nil, err
	}

	return &File{src: src, root: root, ctx: ctx}, nil
}

// readStreamerCatalog decodes the TList of TStreamerInfo stored at the
// header's fSeekInfo (spec §4.4 "schema catalog").
func readStreamerCatalog(src ByteSource, ctx *FileContext, hdr *fileHeader) ([]*StreamerInfo, error) {
	cur := NewCursorAt(hdr.seekInfo, 0)
	key, err := readKey(src, cur, hdr.big)
	if err != nil {
		return nil, err
	}
	payloadSrc, payloadCur, err := key.payloadCursor(ctx.Registry, ctx.Compression)
	if err != nil {
		return nil, err
	}
	list, err := readTList(payloadSrc, payloadCur, ctx)
	if err != nil {
		return nil, err
	}
	tlist, ok := list.(*TList)
	if !ok {
		return nil, malformedf("readStreamerCatalog", "schema catalog is not a TList")
	}

	var out []*StreamerInfo
	for _, item := range tlist.Items {
		if si, ok := item.(*StreamerInfo); ok {
			out = append(out, si)
			continue
		}
		if rules, ok := item.(*TList); ok && allObjStrings(rules) {
			continue // schema-rule list, kept aside
		}
		return nil, malformedf("readStreamerCatalog", "unexpected %T in schema catalog", item)
	}
	return out, nil
}

func allObjStrings(l *TList) bool {
	for _, it := range l.Items {
		if _, ok := it.(*TObjString); !ok {
			return false
		}
	}
	return true
}

// Root returns the container's top-level Directory.
func (f *File) Root() *Directory { return f.root }

// Context returns the FileContext backing this File's decodes.
func (f *File) Context() *FileContext { return f.ctx }

// Get is shorthand for f.Root().Get(namecycle).
func (f *File) Get(namecycle string) (Object, error) {
	return f.root.Get(namecycle)
}

// Close releases the underlying source, if it supports it.
func (f *File) Close() error {
	if d, ok := f.src.(Dismisser); ok {
		return d.Dismiss()
	}
	return nil
}

// defaultClasses returns the built-in class descriptors every File
// starts with, before any schema-synthesized class is layered on top
// (spec §4.4's built-ins: TObject, TString, TNamed, TObjArray, TList,
// TObjString, the TArray family).
func defaultClasses() map[string]*ClassDescriptor {
	classes := map[string]*ClassDescriptor{
		"TObject":                  {Name: "TObject", ReadFunc: readTObject},
		"TString":                  {Name: "TString", ReadFunc: readTString},
		"TNamed":                   {Name: "TNamed", ReadFunc: readTNamed},
		"TObjArray":                {Name: "TObjArray", ReadFunc: readTObjArray},
		"TList":                    {Name: "TList", ReadFunc: readTList},
		"TObjString":               {Name: "TObjString", ReadFunc: readTObjString},
		"TStreamerInfo":            {Name: "TStreamerInfo", ReadFunc: readTStreamerInfo},
		"TStreamerBase":            {Name: "TStreamerBase", ReadFunc: readStreamerBase},
		"TStreamerBasicType":       {Name: "TStreamerBasicType", ReadFunc: readStreamerBasicType},
		"TStreamerBasicPointer":    {Name: "TStreamerBasicPointer", ReadFunc: readStreamerBasicPointer},
		"TStreamerLoop":            {Name: "TStreamerLoop", ReadFunc: readStreamerLoop},
		"TStreamerObject":          {Name: "TStreamerObject", ReadFunc: readStreamerObject},
		"TStreamerObjectAny":       {Name: "TStreamerObjectAny", ReadFunc: readStreamerObjectAny},
		"TStreamerObjectPointer":   {Name: "TStreamerObjectPointer", ReadFunc: readStreamerObjectPointer},
		"TStreamerObjectAnyPointer": {Name: "TStreamerObjectAnyPointer", ReadFunc: readStreamerObjectAnyPointer},
		"TStreamerString":          {Name: "TStreamerString", ReadFunc: readStreamerString},
		"TStreamerSTL":             {Name: "TStreamerSTL", ReadFunc: readStreamerSTL},
		"TStreamerSTLstring":       {Name: "TStreamerSTLstring", ReadFunc: readStreamerSTLstring},
		"TStreamerArtificial":      {Name: "TStreamerArtificial", ReadFunc: readStreamerArtificial},
	}
	arrayTypes := []struct {
		name  string
		ftype int32
	}{
		{"TArrayC", kChar},
		{"TArrayS", kShort},
		{"TArrayI", kInt},
		{"TArrayL", kLong},
		{"TArrayL64", kLong64},
		{"TArrayF", kFloat},
		{"TArrayD", kDouble},
	}
	for _, at := range arrayTypes {
		classes[at.name] = &ClassDescriptor{Name: at.name, ReadFunc: makeTArrayReader(at.name, at.ftype)}
	}
	return classes
}
