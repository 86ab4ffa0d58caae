package rootio

import "strings"

// This file decodes TStreamerInfo and the TStreamerElement family from
// their own on-disk framed records, the way every other built-in class
// in this package is hand-written rather than schema-synthesized: the
// schema catalog itself cannot bootstrap from a schema that doesn't
// exist yet (spec §4.4 "TStreamerInfo", §9 design note).

func (s *StreamerInfo) Class() string { return "TStreamerInfo" }

func readTStreamerInfo(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	start, expected, _, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	name, _, err := nameTitle(src, cur)
	if err != nil {
		return nil, err
	}
	checksum, err := cur.U32(src)
	if err != nil {
		return nil, err
	}
	classVersion, err := cur.I32(src)
	if err != nil {
		return nil, err
	}

	elemsObj, err := ReadObjectAny(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	elemsArray, _ := elemsObj.(*TObjArray)

	si := &StreamerInfo{Name: name, Version: int16(classVersion), Checksum: checksum}
	if elemsArray != nil {
		si.Elements = make([]StreamerElement, 0, len(elemsArray.Items))
		for _, item := range elemsArray.Items {
			if item == nil {
				continue
			}
			if elem, ok := item.(StreamerElement); ok {
				si.Elements = append(si.Elements, elem)
			}
		}
	}

	if err := endCheck("TStreamerInfo", start, cur, expected); err != nil {
		return nil, err
	}
	return si, nil
}

// readElementBase decodes the TStreamerElement fields every variant
// shares, framed as their own record.
func readElementBase(src ByteSource, cur *Cursor, ctx *FileContext) (StreamerElementBase, int64, int64, error) {
	start, expected, vers, err := startCheck(src, cur)
	if err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	name, title, err := nameTitle(src, cur)
	if err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	b := StreamerElementBase{FName: name, FTitle: title}
	if b.FType, err = cur.I32(src); err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	if b.FSize, err = cur.I32(src); err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	if b.FArrayLength, err = cur.I32(src); err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	if b.FArrayDim, err = cur.I32(src); err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	if vers == 1 {
		n, err := cur.I32(src)
		if err != nil {
			return StreamerElementBase{}, 0, 0, err
		}
		for i := int32(0); i < n && i < int32(len(b.FMaxIndex)); i++ {
			if b.FMaxIndex[i], err = cur.I32(src); err != nil {
				return StreamerElementBase{}, 0, 0, err
			}
		}
		for i := int32(len(b.FMaxIndex)); i < n; i++ {
			if _, err := cur.I32(src); err != nil {
				return StreamerElementBase{}, 0, 0, err
			}
		}
	} else {
		for i := range b.FMaxIndex {
			if b.FMaxIndex[i], err = cur.I32(src); err != nil {
				return StreamerElementBase{}, 0, 0, err
			}
		}
	}
	if b.FTypeName, err = cur.String(src); err != nil {
		return StreamerElementBase{}, 0, 0, err
	}
	if b.FType == kUChar && (b.FTypeName == "Bool_t" || b.FTypeName == "bool") {
		b.FType = kBool
	}
	if vers == 3 {
		// fXmin, fXmax, fFactor: kept for completeness but unused by
		// this decoder's read-step interpreter.
		cur.Skip(24)
	}
	return b, start, expected, nil
}

func (*StreamerBase) Class() string             { return "TStreamerBase" }
func (*StreamerBasicType) Class() string        { return "TStreamerBasicType" }
func (*StreamerBasicPointer) Class() string     { return "TStreamerBasicPointer" }
func (*StreamerLoop) Class() string             { return "TStreamerLoop" }
func (*StreamerObject) Class() string           { return "TStreamerObject" }
func (*StreamerObjectAny) Class() string        { return "TStreamerObjectAny" }
func (*StreamerObjectPointer) Class() string    { return "TStreamerObjectPointer" }
func (*StreamerObjectAnyPointer) Class() string { return "TStreamerObjectAnyPointer" }
func (*StreamerString) Class() string           { return "TStreamerString" }
func (*StreamerSTL) Class() string              { return "TStreamerSTL" }
func (*StreamerSTLstring) Class() string        { return "TStreamerSTLstring" }
func (*StreamerArtificial) Class() string       { return "TStreamerArtificial" }

func readStreamerBase(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	baseVersion, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerBase", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerBase{StreamerElementBase: base, BaseVersion: int16(baseVersion)}, nil
}

func readStreamerBasicType(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}

	if kOffsetL < base.FType && base.FType < kOffsetP {
		base.FType -= kOffsetL
	}
	if size, err := basicItemSize(base.FType); err == nil {
		base.FSize = int32(size)
		if base.FArrayLength > 0 {
			base.FSize *= base.FArrayLength
		}
	}

	if err := endCheck("TStreamerBasicType", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerBasicType{StreamerElementBase: base}, nil
}

func readStreamerBasicPointer(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	countVersion, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	countName, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	countClass, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerBasicPointer", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerBasicPointer{
		StreamerElementBase: base,
		FCountVersion:       countVersion,
		FCountName:          countName,
		FCountClass:         countClass,
	}, nil
}

func readStreamerLoop(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	countVersion, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	countName, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	countClass, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerLoop", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerLoop{
		StreamerElementBase: base,
		FCountVersion:       countVersion,
		FCountName:          countName,
		FCountClass:         countClass,
	}, nil
}

func readStreamerObject(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerObject", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerObject{StreamerElementBase: base}, nil
}

func readStreamerObjectAny(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerObjectAny", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerObjectAny{StreamerElementBase: base}, nil
}

func readStreamerObjectPointer(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerObjectPointer", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerObjectPointer{StreamerElementBase: base}, nil
}

func readStreamerObjectAnyPointer(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerObjectAnyPointer", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerObjectAnyPointer{StreamerElementBase: base}, nil
}

func readStreamerString(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerString", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerString{StreamerElementBase: base}, nil
}

func readStreamerSTL(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	stlType, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	ctype, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	if stlType == kSTLset || stlType == kSTLmultimap {
		// A set/multimap code is corrected from the declared type
		// name: set names become kSTLset, multimap names kSTLmultimap.
		tn := base.FTypeName
		if strings.HasPrefix(tn, "set") || strings.HasPrefix(tn, "std::set") {
			stlType = kSTLset
		} else if strings.HasPrefix(tn, "multimap") || strings.HasPrefix(tn, "std::multimap") {
			stlType = kSTLmultimap
		}
	}
	if err := endCheck("TStreamerSTL", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerSTL{StreamerElementBase: base, FSTLtype: stlType, FCtype: ctype}, nil
}

func readStreamerSTLstring(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerSTLstring", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerSTLstring{StreamerElementBase: base}, nil
}

func readStreamerArtificial(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	base, start, expected, err := readElementBase(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TStreamerArtificial", start, cur, expected); err != nil {
		return nil, err
	}
	return &StreamerArtificial{StreamerElementBase: base}, nil
}
