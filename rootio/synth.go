package rootio

// Instance is a decoded object of a schema-synthesized class: Go has
// no runtime equivalent of the original implementation's exec()-based
// class generation, so instead of a bespoke struct type every
// synthesized class gets this single generic carrier plus an
// interpreter over its schema's read-steps (spec §9 design note).
type Instance struct {
	ClassName string
	Version   int16
	Fields    map[string]any
	Bases     []Object
	Attached  map[string]any // reserved for MethodMixin use
}

func (i *Instance) Class() string { return i.ClassName }

func (i *Instance) fields() map[string]any { return i.Fields }

// Get returns the decoded value of a named field, the field having
// come either directly from this class's own schema or flattened in
// from one of its base classes.
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// ClassDescriptor is the read-capable form of either a built-in class
// (ReadFunc hand-written in Go) or a schema-synthesized one (ReadFunc
// a generated step-interpreter closure); both produce an Object (spec
// §4.6, §9).
type ClassDescriptor struct {
	Name     string
	Version  int16
	ReadFunc func(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error)
}

// Read decodes one instance of d's class and, if a mixin is registered
// for it, applies the mixin before returning.
func (d *ClassDescriptor) Read(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
	obj, err := d.ReadFunc(src, cur, ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Methods != nil {
		if err := ctx.Methods.apply(obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// readStep is one instruction in a synthesized class's interpreter,
// each corresponding to one StreamerElement (spec §4.6).
type readStep interface {
	apply(src ByteSource, cur *Cursor, ctx *FileContext, inst *Instance) error
}

type baseStep struct {
	baseName string
}

func (s baseStep) apply(src ByteSource, cur *Cursor, ctx *FileContext, inst *Instance) error {
	desc, ok := ctx.Classes[s.baseName]
	if !ok {
		return malformedf("synthesize", "unknown base class %q", s.baseName)
	}
	obj, err := desc.Read(src, cur, ctx)
	if err != nil {
		return err
	}
	inst.Bases = append(inst.Bases, obj)
	if f, ok := obj.(fielder); ok {
		for k, v := range f.fields() {
			inst.Fields[k] = v
		}
	}
	return nil
}

type scalarStep struct {
	name  string
	ftype int32
}

func (s scalarStep) apply(src ByteSource, cur *Cursor, _ *FileContext, inst *Instance) error {
	v, err := readScalar(src, cur, s.ftype)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = v
	return nil
}

type fixedArrayStep struct {
	name  string
	ftype int32
	n     int
}

func (s fixedArrayStep) apply(src ByteSource, cur *Cursor, _ *FileContext, inst *Instance) error {
	v, err := readDynArray(src, cur, s.n, s.ftype)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = v
	return nil
}

type countedArrayStep struct {
	name        string
	ftype       int32
	counterName string
}

func (s countedArrayStep) apply(src ByteSource, cur *Cursor, _ *FileContext, inst *Instance) error {
	n, err := counterValue(inst, s.counterName)
	if err != nil {
		return err
	}
	// A leading byte flags whether the pointer is non-null, matching
	// TStreamerBasicPointer's on-disk "is-array-present" marker.
	present, err := cur.U8(src)
	if err != nil {
		return err
	}
	if present == 0 || n == 0 {
		inst.Fields[s.name] = nil
		return nil
	}
	v, err := readDynArray(src, cur, n, s.ftype)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = v
	return nil
}

type tstringStep struct{ name string }

func (s tstringStep) apply(src ByteSource, cur *Cursor, _ *FileContext, inst *Instance) error {
	v, err := cur.String(src)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = v
	return nil
}

type inlineObjectStep struct {
	name      string
	className string
}

func (s inlineObjectStep) apply(src ByteSource, cur *Cursor, ctx *FileContext, inst *Instance) error {
	desc, ok := ctx.Classes[s.className]
	if !ok {
		return malformedf("synthesize", "unknown inline class %q", s.className)
	}
	obj, err := desc.Read(src, cur, ctx)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = obj
	return nil
}

type objectAnyStep struct{ name string }

func (s objectAnyStep) apply(src ByteSource, cur *Cursor, ctx *FileContext, inst *Instance) error {
	obj, err := ReadObjectAny(src, cur, ctx)
	if err != nil {
		return err
	}
	inst.Fields[s.name] = obj
	return nil
}

// readScalar reads a single value of basic type fType.
func readScalar(src ByteSource, cur *Cursor, fType int32) (any, error) {
	switch fType {
	case kBool:
		v, err := cur.U8(src)
		return v != 0, err
	case kChar, kLegacyChar:
		v, err := cur.I8(src)
		return v, err
	case kUChar:
		return cur.U8(src)
	case kShort:
		return cur.I16(src)
	case kUShort:
		return cur.U16(src)
	case kInt:
		return cur.I32(src)
	case kBits, kUInt, kCounter:
		return cur.U32(src)
	case kLong, kLong64:
		return cur.I64(src)
	case kULong, kULong64:
		return cur.U64(src)
	case kFloat, kFloat16:
		return cur.F32(src)
	case kDouble, kDouble32:
		return cur.F64(src)
	default:
		return nil, unsupportedf("readScalar", "unknown basic type code %d", fType)
	}
}

func counterValue(inst *Instance, counterName string) (int, error) {
	v, ok := inst.Fields[counterName]
	if !ok {
		return 0, malformedf("synthesize", "counter field %q not yet decoded", counterName)
	}
	switch n := v.(type) {
	case int32:
		return int(n), nil
	case uint32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	default:
		return 0, malformedf("synthesize", "counter field %q has non-integer type %T", counterName, v)
	}
}

// synthesizeClass builds a ClassDescriptor for si by compiling its
// elements into an ordered list of read-steps, failing outright on the
// first element it cannot interpret — matching the original
// implementation's all-or-nothing _defineclasses behaviour (spec §9
// Open Question decision: no partial/best-effort catalog).
func synthesizeClass(si *StreamerInfo) (*ClassDescriptor, error) {
	steps := make([]readStep, 0, len(si.Elements))
	for _, elem := range si.Elements {
		step, err := compileElement(elem)
		if err != nil {
			return nil, unsupportedf("synthesizeClass", "class %q: %v", si.Name, err)
		}
		if step != nil {
			steps = append(steps, step)
		}
	}

	name := si.Name
	version := si.Version
	read := func(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
		start, expected, _, err := startCheck(src, cur)
		if err != nil {
			return nil, err
		}
		inst := &Instance{ClassName: name, Version: version, Fields: make(map[string]any)}
		for _, step := range steps {
			if err := step.apply(src, cur, ctx, inst); err != nil {
				return nil, err
			}
		}
		if err := endCheck(name, start, cur, expected); err != nil {
			return nil, err
		}
		return inst, nil
	}

	return &ClassDescriptor{Name: name, Version: version, ReadFunc: read}, nil
}

func compileElement(elem StreamerElement) (readStep, error) {
	base := elem.Base()
	switch e := elem.(type) {
	case *StreamerBase:
		return baseStep{baseName: e.FName}, nil
	case *StreamerBasicType:
		if base.FArrayLength > 1 {
			return fixedArrayStep{name: base.FName, ftype: base.FType, n: int(base.FArrayLength)}, nil
		}
		return scalarStep{name: base.FName, ftype: base.FType}, nil
	case *StreamerBasicPointer:
		if e.FCountName == "" {
			return nil, malformedf("compileElement", "BasicPointer %q has no fCountName", base.FName)
		}
		return countedArrayStep{name: base.FName, ftype: base.FType - kOffsetP, counterName: e.FCountName}, nil
	case *StreamerString:
		return tstringStep{name: base.FName}, nil
	case *StreamerObject:
		return inlineObjectStep{name: base.FName, className: base.FTypeName}, nil
	case *StreamerObjectAny:
		return objectAnyStep{name: base.FName}, nil
	case *StreamerObjectPointer:
		return objectAnyStep{name: base.FName}, nil
	case *StreamerSTLstring:
		return tstringStep{name: base.FName}, nil
	case *StreamerArtificial:
		return nil, nil // carries no payload; nothing to read
	default:
		return nil, unsupportedf("compileElement", "element kind %T for field %q not supported", elem, base.FName)
	}
}
