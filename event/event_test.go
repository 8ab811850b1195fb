package event

import (
	"testing"

	"github.com/PKsong/MIDIKit/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteOnVelocityZeroNotNormalizedAtConstruction(t *testing.T) {
	// event.NoteOn is a raw constructor; the velocity-0 -> NoteOff
	// normalization is the midi1 decoder's job, not the event model's.
	e := NoteOn(0, 0, 60, NewValue7(0))
	assert.Equal(t, KindNoteOn, e.Kind)
}

func TestEventEqualIgnoresDataIdentityNotContent(t *testing.T) {
	a := SysEx7(0, mustManufacturer(t, 0x41), []byte{1, 2, 3})
	b := SysEx7(0, mustManufacturer(t, 0x41), []byte{1, 2, 3})
	assert.True(t, a.Equal(b))

	c := SysEx7(0, mustManufacturer(t, 0x41), []byte{1, 2, 4})
	assert.False(t, a.Equal(c))
}

func mustManufacturer(t *testing.T, id byte) ManufacturerID {
	t.Helper()
	m, err := NewManufacturerID1(id)
	require.NoError(t, err)
	return m
}

func TestManufacturerIDRejectsUniversalBytes(t *testing.T) {
	_, err := NewManufacturerID1(0x7E)
	assert.Error(t, err)
	_, err = NewManufacturerID1(0x7F)
	assert.Error(t, err)
	_, err = NewManufacturerID1(0x00)
	assert.Error(t, err)
}

func TestManufacturerIDExtendedRoundTrip(t *testing.T) {
	m, err := NewManufacturerID3(0x00, 0x21)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x21}, m.Bytes())

	parsed, n, err := ParseManufacturerID(m.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, m, parsed)
}

func TestNoteNameMiddleC(t *testing.T) {
	assert.Equal(t, "C4", NoteName(60))
	n, err := ParseNoteName("C4")
	require.NoError(t, err)
	assert.Equal(t, value.U7(60), n)
}

func TestNoteNameSharpsAndFlats(t *testing.T) {
	sharp, err := ParseNoteName("F#3")
	require.NoError(t, err)
	flat, err := ParseNoteName("Gb3")
	require.NoError(t, err)
	assert.Equal(t, sharp, flat)
}

func TestCC14Combiner(t *testing.T) {
	// MIDI-1 bytes B0 01 40 then B0 21 00.
	c := NewCC14Combiner()

	_, ok := c.Feed(CC(0, 0, ControllerModulationWheel, NewValue7(0x40)))
	assert.False(t, ok)

	out, ok := c.Feed(CC(0, 0, ControllerModulationWheelLSB, NewValue7(0x00)))
	require.True(t, ok)
	assert.Equal(t, ControllerModulationWheel, out.Controller)
	// The 14-bit pair value 0x2000 (the exact wire centre) lands on the
	// 16-bit scale centre, reads back as the MSB at 7 bits, and inverts
	// to the pair value on the way back down.
	assert.Equal(t, value.U16(0x8000), out.Value.As16())
	assert.Equal(t, value.U7(0x40), out.Value.AsU7())
	assert.Equal(t, value.U14(0x2000), value.ScaleU16ToU14(out.Value.As16()))
}

func TestRPNCombinerAbsolute(t *testing.T) {
	c := NewRPNCombiner()
	_, ok := c.Feed(CC(0, 0, ControllerRPNMSB, NewValue7(0)))
	assert.False(t, ok)
	_, ok = c.Feed(CC(0, 0, ControllerRPNLSB, NewValue7(0)))
	assert.False(t, ok)
	_, ok = c.Feed(CC(0, 0, ControllerDataEntryMSB, NewValue7(0x10)))
	assert.False(t, ok)

	out, ok := c.Feed(CC(0, 0, ControllerDataEntryLSB, NewValue7(0x00)))
	require.True(t, ok)
	assert.Equal(t, KindRPN, out.Kind)
	assert.Equal(t, RPNPitchBendSensitivity, out.Parameter)
	assert.Equal(t, ChangeAbsolute, out.Change)
}

func TestRPNCombinerSwitchesToNRPN(t *testing.T) {
	c := NewRPNCombiner()
	c.Feed(CC(0, 0, ControllerNRPNMSB, NewValue7(1)))
	c.Feed(CC(0, 0, ControllerNRPNLSB, NewValue7(2)))
	c.Feed(CC(0, 0, ControllerDataEntryMSB, NewValue7(5)))
	out, ok := c.Feed(CC(0, 0, ControllerDataEntryLSB, NewValue7(0)))
	require.True(t, ok)
	assert.Equal(t, KindNRPN, out.Kind)
	assert.Equal(t, value.Pair7{MSB: 1, LSB: 2}, out.Parameter)
}

func TestRPNCombinerRelativeIncrement(t *testing.T) {
	c := NewRPNCombiner()
	c.Feed(CC(0, 0, ControllerRPNMSB, NewValue7(0)))
	c.Feed(CC(0, 0, ControllerRPNLSB, NewValue7(0)))
	out, ok := c.Feed(CC(0, 0, ControllerDataIncrement, NewValue7(1)))
	require.True(t, ok)
	assert.Equal(t, ChangeRelative, out.Change)
}
