package filter

import (
	"slices"
	"testing"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
	"github.com/stretchr/testify/assert"
)

func sample() []event.Event {
	return []event.Event{
		event.NoteOn(0, 0, 60, event.NewValue7(100)),
		event.CC(0, 1, event.ControllerSustainPedal, event.NewValue7(127)),
		event.CC(0, 1, event.ControllerModulationWheel, event.NewValue7(64)),
		event.NoteOn(1, 2, 90, event.NewValue7(30)),
		event.TimingClock(0),
	}
}

func TestOnlyAllIsIdentity(t *testing.T) {
	in := sample()
	out := Apply(in, Only(All()))
	assert.True(t, slices.EqualFunc(in, out, event.Event.Equal))
}

func TestDropEmptySetIsIdentity(t *testing.T) {
	in := sample()
	out := Apply(in, Drop(ByType()))
	assert.True(t, slices.EqualFunc(in, out, event.Event.Equal))
}

func TestByTypeKeepsOnlyMatchingKinds(t *testing.T) {
	out := Apply(sample(), Only(ByType(event.KindNoteOn)))
	assert.Len(t, out, 2)
	for _, e := range out {
		assert.Equal(t, event.KindNoteOn, e.Kind)
	}
}

func TestByChannelIgnoresNonChannelVoice(t *testing.T) {
	out := Apply(sample(), Only(ByChannel(0)))
	assert.Len(t, out, 1)
	assert.Equal(t, event.KindNoteOn, out[0].Kind)
}

func TestByCCNumberMatchesExactController(t *testing.T) {
	out := Apply(sample(), Only(ByCCNumber(event.ControllerSustainPedal)))
	assert.Len(t, out, 1)
	assert.Equal(t, event.ControllerSustainPedal, out[0].Controller)
}

func TestByNoteRangeInclusiveBounds(t *testing.T) {
	out := Apply(sample(), Only(ByNoteRange(NoteRange{Low: 60, High: 60})))
	assert.Len(t, out, 1)
	assert.Equal(t, value.U7(60), out[0].Note)
}

func TestByGroupSelectsOnlyThatGroup(t *testing.T) {
	out := Apply(sample(), Only(ByGroup(1)))
	assert.Len(t, out, 1)
	assert.Equal(t, value.U4(1), out[0].Group)
}

func TestDropIsComplementOfOnly(t *testing.T) {
	in := sample()
	kept := Apply(in, Only(ByType(event.KindCC)))
	dropped := Apply(in, Drop(ByType(event.KindCC)))
	assert.Equal(t, len(in), len(kept)+len(dropped))
}

func TestFilterPreservesOrder(t *testing.T) {
	in := sample()
	out := Apply(in, Only(ByChannel(1, 2)))
	require := assert.New(t)
	require.Len(out, 3)
	require.Equal(event.KindCC, out[0].Kind)
	require.Equal(event.KindCC, out[1].Kind)
	require.Equal(event.KindNoteOn, out[2].Kind)
}

func TestApplySeqMatchesApply(t *testing.T) {
	in := sample()
	pred := Only(ByType(event.KindCC))
	want := Apply(in, pred)

	seq := func(yield func(event.Event) bool) {
		for _, e := range in {
			if !yield(e) {
				return
			}
		}
	}
	var got []event.Event
	for e := range ApplySeq(seq, pred) {
		got = append(got, e)
	}
	assert.True(t, slices.EqualFunc(want, got, event.Event.Equal))
}
