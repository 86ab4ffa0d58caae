package rootio

// Object is anything this package can decode: a built-in record type or
// an instance of a class synthesized from the file's own schema.
type Object interface {
	Class() string
}

// Named is an Object that carries a name and a title, the ROOT TNamed
// contract.
type Named interface {
	Object
	Name() string
	Title() string
}

// fielder is the ad hoc capability a class-synthesis Base element relies
// on: an object that can hand back its decoded fields so a subclass's
// reader can flatten them onto its own instance, the way the original's
// generated code calls `Base._readinto(self, ...)` and mutates the same
// self (spec §4.6 "Base: invoke the base class's reader on self").
type fielder interface {
	fields() map[string]any
}

// TObject is the ROOT TObject bootstrap record: no name, no title, just
// the unique ID and bit flags every streamed class's instances carry
// (spec §4.4).
type TObject struct {
	UniqueID uint32
	Bits     uint32
}

func (o *TObject) Class() string { return "TObject" }

func (o *TObject) fields() map[string]any {
	return map[string]any{"fUniqueID": o.UniqueID, "fBits": o.Bits}
}

func readTObject(src ByteSource, cur *Cursor, _ *FileContext) (Object, error) {
	id, bits, err := skipTObject(src, cur)
	if err != nil {
		return nil, err
	}
	return &TObject{UniqueID: id, Bits: bits}, nil
}

// TString is a length-prefixed string with no framing of its own.
type TString string

func (TString) Class() string { return "TString" }

func readTString(src ByteSource, cur *Cursor, _ *FileContext) (Object, error) {
	s, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	return TString(s), nil
}

// TNamed is TObject plus a name and a title, framed.
type TNamed struct {
	TObject
	NameStr  string
	TitleStr string
}

func (n *TNamed) Class() string  { return "TNamed" }
func (n *TNamed) Name() string   { return n.NameStr }
func (n *TNamed) Title() string  { return n.TitleStr }

func (n *TNamed) fields() map[string]any {
	f := n.TObject.fields()
	f["fName"] = n.NameStr
	f["fTitle"] = n.TitleStr
	return f
}

func readTNamed(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	start, expected, _, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	obj, err := readTObject(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	tobj := obj.(*TObject)
	name, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	title, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TNamed", start, cur, expected); err != nil {
		return nil, err
	}
	return &TNamed{TObject: *tobj, NameStr: name, TitleStr: title}, nil
}

// Undefined is the placeholder produced when a class named in an object
// stream is unknown to the context, or when a skip-rule deliberately
// elides a field; it consumes the framed payload without interpreting
// it (spec §4.4, §7).
type Undefined struct {
	ClassName string
}

func (u *Undefined) Class() string { return "Undefined" }

func readUndefined(src ByteSource, cur *Cursor, _ *FileContext) (Object, error) {
	start, expected, _, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	cur.Skip(expected - 6)
	if err := endCheck("Undefined", start, cur, expected); err != nil {
		return nil, err
	}
	return &Undefined{}, nil
}
