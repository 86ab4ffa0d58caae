package rootio

// ReadObjectAny decodes a "TObject*"-shaped slot: either a brand-new
// class tag followed by its framed payload, a back-reference to a
// class already seen at this cursor's scope, a back-reference to a
// concrete object already decoded at this scope, or a nil pointer
// (spec §4.3, grounded on original_source/uproot/rootio.py's
// _readobjany, lines 449-529).
func ReadObjectAny(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	return readObjectAny(src, cur, ctx, false)
}

// readObjectAnySkip is ReadObjectAny's wantundefined=True counterpart:
// it still advances the cursor and populates cur.Refs exactly as a
// full decode would, but every newly decoded object is a placeholder
// *Undefined rather than the real decode (a back-reference to an
// object already registered still returns that object), for callers
// that only need to skip past a slot a skip-set has excluded (spec
// §4.3, §4.6 skip-set, invariant 10).
func readObjectAnySkip(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	return readObjectAny(src, cur, ctx, true)
}

// readObjectAny implements TBufferFile::ReadObjectAny's tag protocol.
//
// The leading word, bcnt, is only a byte count if its kByteCountMask
// bit is set and it isn't exactly kNewClassTag; otherwise there is no
// byte-count prefix at all and bcnt itself already is the tag (the
// "vers == 0" / old-style encoding). When bcnt is a real byte count, a
// second word, tag, follows and carries the same meaning bcnt would
// have in the old-style encoding ("vers == 1").
//
// tag is then classified:
//   - kClassMask clear: a reference to an already-decoded object.
//     tag 0 is a null pointer; tag 1 is a self-reference (unsupported);
//     otherwise cur.Refs[tag] is the object, or, if never decoded, the
//     cursor jumps past the unknown object's bytes and returns nil.
//   - tag == kNewClassTag: a class name follows as a NUL-terminated
//     string; this is the class's first appearance at this scope.
//   - otherwise: tag &^ kClassMask references a class descriptor
//     recorded earlier at this scope, and a new object of that class
//     follows.
func readObjectAny(src ByteSource, cur *Cursor, ctx *FileContext, wantUndefined bool) (Object, error) {
	beg := cur.Rel()
	bcnt, err := cur.U32(src)
	if err != nil {
		return nil, err
	}

	var vers int
	var start int64
	var tag uint32
	if bcnt&kByteCountMask == 0 || bcnt == kNewClassTag {
		vers = 0
		start = 0
		tag = bcnt
		bcnt = 0
	} else {
		vers = 1
		start = cur.Rel()
		tag, err = cur.U32(src)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case tag&kClassMask == 0:
		return readObjectReference(src, cur, beg, int64(bcnt&^kByteCountMask), tag)
	case tag == kNewClassTag:
		return readNewClassAndObject(src, cur, ctx, beg, start, vers, wantUndefined)
	default:
		return readClassReferenceAndObject(src, cur, ctx, beg, vers, tag, wantUndefined)
	}
}

// readObjectReference handles the tag&kClassMask==0 branch: a
// reference to an object already decoded at this cursor's scope.
func readObjectReference(src ByteSource, cur *Cursor, beg int64, bcnt int64, tag uint32) (Object, error) {
	switch tag {
	case 0:
		return nil, nil
	case 1:
		return nil, unsupportedf("ReadObjectAny", "self-referencing object tag")
	}
	ref, ok := cur.Refs[int64(tag)]
	if !ok {
		// Jump past this (unknown) object's bytes and return nil,
		// matching the original's "cursor.index = origin + beg + bcnt + 4"
		// fallback rather than failing the whole decode.
		cur.Index = cur.Origin + beg + bcnt + 4
		return nil, nil
	}
	obj, ok := ref.(Object)
	if !ok {
		return nil, malformedf("ReadObjectAny", "reference %d is not an object", tag)
	}
	return obj, nil
}

// readNewClassAndObject handles the tag==kNewClassTag branch: the
// class's first appearance at this scope, followed by its object.
func readNewClassAndObject(src ByteSource, cur *Cursor, ctx *FileContext, beg, start int64, vers int, wantUndefined bool) (Object, error) {
	cname, err := cur.CString(src)
	if err != nil {
		return nil, err
	}

	desc, ok := ctx.Classes[cname]
	if !ok {
		desc = &ClassDescriptor{Name: cname, ReadFunc: readUndefined}
	}

	if vers > 0 {
		cur.Refs[start+kMapOffset] = desc
	} else {
		cur.Refs[int64(len(cur.Refs)+1)] = desc
	}

	var obj Object
	if wantUndefined {
		obj, err = readUndefined(src, cur, ctx)
	} else {
		obj, err = desc.Read(src, cur, ctx)
	}
	if err != nil {
		return nil, err
	}
	if u, ok := obj.(*Undefined); ok {
		u.ClassName = cname
	}

	if vers > 0 {
		cur.Refs[beg+kMapOffset] = obj
	} else {
		cur.Refs[int64(len(cur.Refs)+1)] = obj
	}
	return obj, nil
}

// readClassReferenceAndObject handles the remaining branch: tag &^
// kClassMask references a class descriptor recorded earlier at this
// scope, and a new object of that class follows.
func readClassReferenceAndObject(src ByteSource, cur *Cursor, ctx *FileContext, beg int64, vers int, tag uint32, wantUndefined bool) (Object, error) {
	ref := int64(tag &^ uint32(kClassMask))
	stored, ok := cur.Refs[ref]
	if !ok {
		return nil, malformedf("ReadObjectAny", "invalid class-tag reference %d", ref)
	}
	desc, ok := stored.(*ClassDescriptor)
	if !ok {
		return nil, malformedf("ReadObjectAny", "class-tag reference %d is not a recognized class", ref)
	}

	var obj Object
	var err error
	if wantUndefined {
		obj, err = readUndefined(src, cur, ctx)
	} else {
		obj, err = desc.Read(src, cur, ctx)
	}
	if err != nil {
		return nil, err
	}

	if vers > 0 {
		cur.Refs[beg+kMapOffset] = obj
	} else {
		cur.Refs[int64(len(cur.Refs)+1)] = obj
	}
	return obj, nil
}
