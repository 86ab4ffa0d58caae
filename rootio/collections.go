package rootio

// TObjString is a TObject wrapping a single TString payload.
type TObjString struct {
	TObject
	Str string
}

func (s *TObjString) Class() string { return "TObjString" }
func (s *TObjString) String() string { return s.Str }

func readTObjString(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	start, expected, _, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	obj, err := readTObject(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	s, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	if err := endCheck("TObjString", start, cur, expected); err != nil {
		return nil, err
	}
	return &TObjString{TObject: *obj.(*TObject), Str: s}, nil
}

// TObjArray is a fixed-size array of Objects (nils permitted), each
// decoded through ReadObjectAny so heterogeneous element classes are
// supported (spec §4.4 "TObjArray").
type TObjArray struct {
	TObject
	NameStr string
	Items   []Object
	Lower   int32
}

func (a *TObjArray) Class() string { return "TObjArray" }

func readTObjArray(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	start, expected, vers, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	obj, err := readTObject(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	name := ""
	if vers >= 2 {
		name, err = cur.String(src)
		if err != nil {
			return nil, err
		}
	}
	size, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	lower, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	items := make([]Object, size)
	for i := range items {
		items[i], err = ReadObjectAny(src, cur, ctx)
		if err != nil {
			return nil, err
		}
	}
	if err := endCheck("TObjArray", start, cur, expected); err != nil {
		return nil, err
	}
	return &TObjArray{TObject: *obj.(*TObject), NameStr: name, Items: items, Lower: lower}, nil
}

// TList is an ordered, named collection of Objects, each followed on
// disk by a byte-length-prefixed "add option" string this decoder
// retains but does not interpret (spec §4.4 "TList").
type TList struct {
	TObject
	NameStr string
	Items   []Object
	Options []string
}

func (l *TList) Class() string { return "TList" }

func readTList(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	start, expected, _, err := startCheck(src, cur)
	if err != nil {
		return nil, err
	}
	obj, err := readTObject(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	name, err := cur.String(src)
	if err != nil {
		return nil, err
	}
	size, err := cur.I32(src)
	if err != nil {
		return nil, err
	}
	items := make([]Object, size)
	options := make([]string, size)
	for i := range items {
		items[i], err = ReadObjectAny(src, cur, ctx)
		if err != nil {
			return nil, err
		}
		options[i], err = cur.String(src)
		if err != nil {
			return nil, err
		}
	}
	if err := endCheck("TList", start, cur, expected); err != nil {
		return nil, err
	}
	return &TList{TObject: *obj.(*TObject), NameStr: name, Items: items, Options: options}, nil
}

// TArray is the shared representation of ROOT's fixed-element-type
// array classes (TArrayC/S/I/L/L64/F/D); it carries no TObject header
// of its own (spec §4.4 "TArray family").
type TArray struct {
	ClassName string
	Values    any // one of []int8/[]int16/[]int32/[]int64/[]float32/[]float64
}

func (a *TArray) Class() string { return a.ClassName }

func makeTArrayReader(className string, ftype int32) func(ByteSource, *Cursor, *FileContext) (Object, error) {
	return func(src ByteSource, cur *Cursor, _ *FileContext) (Object, error) {
		n, err := cur.I32(src)
		if err != nil {
			return nil, err
		}
		vals, err := readDynArray(src, cur, int(n), ftype)
		if err != nil {
			return nil, err
		}
		return &TArray{ClassName: className, Values: vals}, nil
	}
}
