package midi1

import (
	"testing"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNoteOnVelocityZeroNormalizesToNoteOff(t *testing.T) {
	events, err := DecodeBytes(0, []byte{0x90, 60, 0x00})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindNoteOff, events[0].Kind)
	assert.Equal(t, value.U7(60), events[0].Note)
}

func TestDecodeNoteOnVelocityZeroCanBeDisabled(t *testing.T) {
	events, err := DecodeBytes(0, []byte{0x90, 60, 0x00}, WithoutNoteOnNormalization())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindNoteOn, events[0].Kind)
}

func TestDecodeChannelVoiceRoundTrip(t *testing.T) {
	cases := []event.Event{
		event.NoteOn(0, 3, 64, event.NewValue7(100)),
		event.NoteOff(0, 3, 64, event.NewValue7(0)),
		event.CC(0, 1, event.ControllerSustainPedal, event.NewValue7(127)),
		event.ProgramChange(0, 1, 42),
		event.Pressure(0, 1, event.NewValue7(10)),
		event.PitchBend(0, 1, event.NewValue7(0)),
	}
	for _, e := range cases {
		wire, err := Encode(e)
		require.NoError(t, err)
		decoded, err := DecodeBytes(0, wire, WithoutNoteOnNormalization())
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.True(t, e.Equal(decoded[0]), "%+v != %+v (wire %x)", e, decoded[0], wire)
	}
}

func TestPitchBendWireRoundTrip(t *testing.T) {
	wire := []byte{0xE1, 0x00, 0x40} // LSB 0, MSB 0x40: wire centre
	events, err := DecodeBytes(0, wire)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindPitchBend, events[0].Kind)
	assert.Equal(t, value.U16(0x8000), events[0].Value.As16())

	re, err := Encode(events[0])
	require.NoError(t, err)
	assert.Equal(t, wire, re)
}

func TestDecodeRealTimeDoesNotDisturbPendingChannelVoice(t *testing.T) {
	// Note On status + data1, interrupted by a Timing Clock, then data2.
	events, err := DecodeBytes(0, []byte{0x90, 60, byteTimingClock, 100})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, event.KindTimingClock, events[0].Kind)
	assert.Equal(t, event.KindNoteOn, events[1].Kind)
	assert.Equal(t, value.U7(100), events[1].Velocity.AsU7())
}

func TestDecodeSystemCommon(t *testing.T) {
	events, err := DecodeBytes(0, []byte{byteTuneRequest})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindTuneRequest, events[0].Kind)

	events, err = DecodeBytes(0, []byte{byteSongSelect, 5})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindSongSelect, events[0].Kind)
	assert.Equal(t, value.U7(5), events[0].Number)

	events, err = DecodeBytes(0, []byte{byteSongPosition, 0x00, 0x40})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, value.U14(0x2000), events[0].Beat)
}

func TestDecodeSysEx7Manufacturer(t *testing.T) {
	wire := []byte{byteSysExStart, 0x41, 0x01, 0x02, byteSysExEnd}
	events, err := DecodeBytes(0, wire)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindSysEx7, events[0].Kind)
	assert.Equal(t, []byte{0x01, 0x02}, events[0].Data)
}

func TestDecodeSysEx7Universal(t *testing.T) {
	wire := []byte{byteSysExStart, 0x7E, 0x7F, 0x06, 0x01, 0x02, byteSysExEnd}
	events, err := DecodeBytes(0, wire)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindUniversalSysEx7, events[0].Kind)
	assert.Equal(t, event.RealmNonRealtime, events[0].Realm)
	assert.Equal(t, []byte{0x02}, events[0].Data)
}

func TestDecodeUnexpectedDataByteIsMalformed(t *testing.T) {
	_, err := DecodeBytes(0, []byte{0x40})
	assert.Error(t, err)
}

func TestDecodeUnexpectedEndOfExclusiveIsMalformed(t *testing.T) {
	_, err := DecodeBytes(0, []byte{byteSysExEnd})
	assert.Error(t, err)
}

func TestRPNTransactionEncoding(t *testing.T) {
	e := event.RPN(0, 0, event.RPNPitchBendSensitivity, event.NewValue16(0x1000), event.ChangeAbsolute)
	wire, err := Encode(e)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0xB0, 101, 0,
		0xB0, 100, 0,
		0xB0, 6, byte(0x1000 >> 9),
		0xB0, 38, byte((0x1000 >> 2) & 0x7F),
	}, wire)
}

func TestEncodeUnsupportedMIDI2Kind(t *testing.T) {
	_, err := Encode(event.NoteCC(0, 0, 60, event.ControllerModulationWheel, event.NewValue16(1)))
	assert.Error(t, err)
}
