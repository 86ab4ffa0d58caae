package rootio

// startCheck reads the 32-bit count + 16-bit version prefix of a framed
// record (spec §4.2). It returns the record's start position, the
// number of bytes expected from start (the count with its
// kByteCountMask bit cleared, + 4 for the count field itself), and the record's
// version.
func startCheck(src ByteSource, cur *Cursor) (start int64, expected int64, version int16, err error) {
	start = cur.Index
	bcnt, err := cur.U32(src)
	if err != nil {
		return 0, 0, 0, err
	}
	vers, err := cur.I16(src)
	if err != nil {
		return 0, 0, 0, err
	}
	cnt := int64(bcnt &^ kByteCountMask)
	return start, cnt + 4, vers, nil
}

// endCheck verifies a framed record consumed exactly the bytes
// startCheck promised (spec invariant 1).
func endCheck(op string, start int64, cur *Cursor, expected int64) error {
	observed := cur.Index - start
	if observed != expected {
		return malformedf(op, "record has %d bytes; expected %d", observed, expected)
	}
	return nil
}

// skipTObject skips the base TObject bits embedded at the start of
// every streamed class deriving from TObject (spec §4.2).
func skipTObject(src ByteSource, cur *Cursor) (uniqueID, bits uint32, err error) {
	version, err := cur.I16(src)
	if err != nil {
		return 0, 0, err
	}
	if uint16(version)&kByteCountVMask != 0 {
		cur.Skip(4)
	}
	uniqueID, err = cur.U32(src)
	if err != nil {
		return 0, 0, err
	}
	bits, err = cur.U32(src)
	if err != nil {
		return 0, 0, err
	}
	bits |= kIsOnHeap
	if bits&kIsReferenced != 0 {
		cur.Skip(2)
	}
	return uniqueID, bits, nil
}

// nameTitle decodes the `name,title` pair embedded in a framed record
// immediately after its TObject prefix (spec §4.2).
func nameTitle(src ByteSource, cur *Cursor) (name, title string, err error) {
	if _, _, err = skipTObject(src, cur); err != nil {
		return "", "", err
	}
	if name, err = cur.String(src); err != nil {
		return "", "", err
	}
	if title, err = cur.String(src); err != nil {
		return "", "", err
	}
	return name, title, nil
}
