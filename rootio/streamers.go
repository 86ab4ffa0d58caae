package rootio

import "strings"

// StreamerElementBase holds the fields every TStreamerElement variant
// shares (spec §4.5), embedded into each concrete variant below so a
// type switch on StreamerElement can still reach the common fields via
// the promoted Base() method.
type StreamerElementBase struct {
	FName        string
	FTitle       string
	FType        int32
	FSize        int32
	FArrayLength int32
	FArrayDim    int32
	FMaxIndex    [5]int32
	FTypeName    string
}

func (b *StreamerElementBase) Base() *StreamerElementBase { return b }

// StreamerElement is any decoded TStreamerElement variant.
type StreamerElement interface {
	Base() *StreamerElementBase
}

// StreamerBase represents a TStreamerBase element: the class inherits
// from FName (spec §4.5 "Base").
type StreamerBase struct {
	StreamerElementBase
	BaseVersion int16
}

// StreamerBasicType is a single scalar field of basic type FType.
type StreamerBasicType struct {
	StreamerElementBase
}

// StreamerBasicPointer is a counted array of basic type: the element
// count is the value of the field named in FCountName, read off the
// element's own on-disk fCountVersion/fCountName/fCountClass trailer
// (spec §4.5 "BasicPointer").
type StreamerBasicPointer struct {
	StreamerElementBase
	FCountVersion int32
	FCountName    string
	FCountClass   string
}

// StreamerLoop is a counted array of nested objects (spec §4.5 "Loop");
// unsupported (spec §9 Non-goals), but the schema catalog still has to
// record its presence for the dependency graph.
type StreamerLoop struct {
	StreamerElementBase
	FCountVersion int32
	FCountName    string
	FCountClass   string
}

// StreamerObject is an inline (non-pointer, non-polymorphic) member of
// a named class, read directly rather than through ReadObjectAny.
type StreamerObject struct {
	StreamerElementBase
}

// StreamerObjectAny is an inline member read through ReadObjectAny so
// the actual runtime class can differ from the declared one.
type StreamerObjectAny struct {
	StreamerElementBase
}

// StreamerObjectPointer is a "ClassName*" member. FType distinguishes
// kObjectp (participates in the dependency graph; read via
// ReadObjectAny) from kObjectP (raw pointer, same read mechanism but
// excluded from dependency extraction, spec §4.6).
type StreamerObjectPointer struct {
	StreamerElementBase
}

// StreamerObjectAnyPointer is the "Any*" counterpart of
// StreamerObjectPointer.
type StreamerObjectAnyPointer struct {
	StreamerElementBase
}

// StreamerString is a TString member.
type StreamerString struct {
	StreamerElementBase
}

// StreamerSTL is an STL container member (vector, map, set, ...);
// unsupported in general, with a set/multimap FSTLtype corrected from
// the declared type name (set vs multimap).
type StreamerSTL struct {
	StreamerElementBase
	FSTLtype int32
	FCtype   int32
}

// StreamerSTLstring is the special-cased "std::string" STL element,
// read the same way as a TString (spec §4.5).
type StreamerSTLstring struct {
	StreamerElementBase
}

// StreamerArtificial is a transient/derived element that carries no
// on-disk payload and must be skipped entirely during synthesis.
type StreamerArtificial struct {
	StreamerElementBase
}

// StreamerInfo is one class's schema record: a name, a version, and an
// ordered list of elements describing its on-disk layout (spec §4.4
// "TStreamerInfo").
type StreamerInfo struct {
	Name     string
	Version  int16
	Elements []StreamerElement
	Checksum uint32
}

// dependsOn returns the set of class names this schema must be able to
// construct before it can synthesize its own reader: base classes, and
// any inline Object/ObjectAny/String member whose declared type is
// itself a class, plus ObjectPointer members specifically typed
// kObjectp (not kObjectP), mirroring original_source/uproot/rootio.py's
// _readstreamers dependency walk.
func (s *StreamerInfo) dependsOn() map[string]bool {
	deps := make(map[string]bool)
	for _, elem := range s.Elements {
		switch e := elem.(type) {
		case *StreamerBase:
			deps[e.FName] = true
		case *StreamerObject, *StreamerObjectAny, *StreamerString:
			base := elem.Base()
			if tn := strings.TrimSuffix(base.FTypeName, "*"); tn != "" {
				deps[tn] = true
			}
		case *StreamerObjectPointer:
			if e.FType == kObjectp {
				if tn := strings.TrimSuffix(e.FTypeName, "*"); tn != "" {
					deps[tn] = true
				}
			}
		}
	}
	return deps
}

// bootstrapClasses seeds the topological sort with the built-in
// classes that never go through schema synthesis, mirroring uproot's
// seeded "provided" set in _readstreamers.
func bootstrapClasses() map[string]bool {
	return map[string]bool{
		"TObject":   true,
		"TNamed":    true,
		"TString":   true,
		"TList":     true,
		"TObjArray": true,
		"TObjString": true,
		"TArrayC":   true,
		"TArrayS":   true,
		"TArrayI":   true,
		"TArrayL":   true,
		"TArrayL64": true,
		"TArrayF":   true,
		"TArrayD":   true,
	}
}

// sortStreamers orders infos so that every class appears after all the
// classes it depends on, failing if a cycle or a missing dependency
// makes that impossible (spec §4.6 invariant "schema catalog is
// acyclic with respect to Base/Object dependencies").
func sortStreamers(infos []*StreamerInfo) ([]*StreamerInfo, error) {
	provided := bootstrapClasses()
	byName := make(map[string]*StreamerInfo, len(infos))
	for _, si := range infos {
		byName[si.Name] = si
	}

	var ordered []*StreamerInfo
	remaining := append([]*StreamerInfo(nil), infos...)

	for len(remaining) > 0 {
		progressed := false
		var next []*StreamerInfo
		for _, si := range remaining {
			ready := true
			for dep := range si.dependsOn() {
				if !provided[dep] {
					ready = false
					break
				}
			}
			if ready {
				ordered = append(ordered, si)
				provided[si.Name] = true
				progressed = true
			} else {
				next = append(next, si)
			}
		}
		remaining = next
		if !progressed {
			names := make([]string, 0, len(remaining))
			for _, si := range remaining {
				names = append(names, si.Name)
			}
			return nil, malformedf("sortStreamers", "unresolvable dependency among classes: %s", strings.Join(names, ", "))
		}
	}
	return ordered, nil
}
