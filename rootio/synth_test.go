package rootio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hepio/rootio/compress"
)

func TestSynthesizeClassScalarField(t *testing.T) {
	si := &StreamerInfo{
		Name:    "Hit",
		Version: 1,
		Elements: []StreamerElement{
			&StreamerBasicType{StreamerElementBase: StreamerElementBase{FName: "fEnergy", FType: kFloat}},
		},
	}
	desc, err := synthesizeClass(si)
	require.NoError(t, err)

	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, 0x3F800000) // 1.0f

	data := framedRecord(1, payload)
	src := &memSource{path: "mem", data: data}
	cur := NewCursor(0)
	ctx := &FileContext{Classes: map[string]*ClassDescriptor{"Hit": desc}, Registry: compress.NewRegistry()}

	obj, err := desc.Read(src, cur, ctx)
	require.NoError(t, err)
	inst, ok := obj.(*Instance)
	require.True(t, ok)
	v, ok := inst.Get("fEnergy")
	require.True(t, ok)
	require.InDelta(t, float32(1.0), v.(float32), 1e-6)
}

func TestSynthesizeClassFailsOnUnsupportedElement(t *testing.T) {
	si := &StreamerInfo{
		Name: "Weird",
		Elements: []StreamerElement{
			&StreamerLoop{StreamerElementBase: StreamerElementBase{FName: "fLoop"}, FCountName: "fN"},
		},
	}
	_, err := synthesizeClass(si)
	require.Error(t, err)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
}

func TestCompileBasicPointerRequiresCountName(t *testing.T) {
	elem := &StreamerBasicPointer{StreamerElementBase: StreamerElementBase{FName: "fVals", FType: kFloat + kOffsetP}}
	_, err := compileElement(elem)
	require.Error(t, err)
}

func TestBaseStepFlattensFields(t *testing.T) {
	baseDesc := &ClassDescriptor{Name: "Base", ReadFunc: func(src ByteSource, cur *Cursor, ctx *FileContext) (Object, error) {
		return &Instance{ClassName: "Base", Fields: map[string]any{"fBaseField": int32(7)}}, nil
	}}
	ctx := &FileContext{Classes: map[string]*ClassDescriptor{"Base": baseDesc}}
	inst := &Instance{ClassName: "Derived", Fields: make(map[string]any)}

	step := baseStep{baseName: "Base"}
	require.NoError(t, step.apply(nil, nil, ctx, inst))
	require.Len(t, inst.Bases, 1)
	v, ok := inst.Get("fBaseField")
	require.True(t, ok)
	require.EqualValues(t, 7, v)
}
