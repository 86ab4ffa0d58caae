package rootio

import (
	"github.com/google/uuid"

	"github.com/hepio/rootio/compress"
)

// FileContext bundles everything a decode in progress needs besides
// the raw bytes: the schema catalog resolved into read-capable class
// descriptors, the file's compression settings, and its identity
// (spec §5 "FileContext"). It is built once when a File is opened and
// then threaded, read-only from the decoder's point of view, through
// every subsequent read.
//
// Copy produces a shallow copy sharing the same Classes/Streamers maps,
// for the rare case a caller wants to layer per-call overrides (e.g.
// MethodMixin lookups scoped to one Get) without mutating the file's
// own context, mirroring uproot's _FileContext.copy().
type FileContext struct {
	SourcePath  string
	Streamers   map[string]*StreamerInfo
	Classes     map[string]*ClassDescriptor
	Compression compress.Descriptor
	Registry    *compress.Registry
	Methods     *MethodRegistry
	Big         bool
	rawUUID     [18]byte
}

// Copy returns a shallow copy of the context: map values are shared,
// not deep-cloned, matching the original's copy() semantics (spec §5).
func (c *FileContext) Copy() *FileContext {
	cp := *c
	return &cp
}

// UUID returns the file's identifying UUID, derived from the first 16
// bytes of the 18-byte fUUID field ROOT stores in the file header.
func (c *FileContext) UUID() uuid.UUID {
	id, err := uuid.FromBytes(c.rawUUID[:16])
	if err != nil {
		return uuid.UUID{}
	}
	return id
}
