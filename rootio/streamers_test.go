package rootio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortStreamersOrdersByDependency(t *testing.T) {
	event := &StreamerInfo{Name: "Event", Elements: []StreamerElement{
		&StreamerBase{StreamerElementBase: StreamerElementBase{FName: "Particle"}},
	}}
	particle := &StreamerInfo{Name: "Particle", Elements: []StreamerElement{
		&StreamerBasicType{StreamerElementBase: StreamerElementBase{FName: "fPx", FType: kFloat}},
	}}

	sorted, err := sortStreamers([]*StreamerInfo{event, particle})
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	require.Equal(t, "Particle", sorted[0].Name)
	require.Equal(t, "Event", sorted[1].Name)
}

func TestSortStreamersDetectsUnresolvableDependency(t *testing.T) {
	orphan := &StreamerInfo{Name: "Orphan", Elements: []StreamerElement{
		&StreamerBase{StreamerElementBase: StreamerElementBase{FName: "NeverDefined"}},
	}}

	_, err := sortStreamers([]*StreamerInfo{orphan})
	require.Error(t, err)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
}

func TestSortStreamersSeedsBootstrapClasses(t *testing.T) {
	usesTNamed := &StreamerInfo{Name: "Labeled", Elements: []StreamerElement{
		&StreamerBase{StreamerElementBase: StreamerElementBase{FName: "TNamed"}},
	}}
	sorted, err := sortStreamers([]*StreamerInfo{usesTNamed})
	require.NoError(t, err)
	require.Len(t, sorted, 1)
}

func TestDependsOnCollectsObjectAnyTypeName(t *testing.T) {
	si := &StreamerInfo{Name: "Holder", Elements: []StreamerElement{
		&StreamerObjectAny{StreamerElementBase: StreamerElementBase{FName: "fTrack", FTypeName: "Track"}},
	}}
	deps := si.dependsOn()
	require.True(t, deps["Track"])
}
