package ump

import (
	"testing"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMIDI2NoteOn(t *testing.T) {
	words := []uint32{0x41913C00, 0xC0000000}
	events, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, event.KindNoteOn, e.Kind)
	assert.Equal(t, value.U4(1), e.Group)
	assert.Equal(t, value.U4(1), e.Channel)
	assert.Equal(t, value.U7(60), e.Note)
	assert.Equal(t, value.U16(0xC000), e.Velocity.As16())
	assert.False(t, e.HasAttribute)
}

func TestEncodeMIDI2NoteOnRoundTrip(t *testing.T) {
	words := []uint32{0x41913C00, 0xC0000000}
	events, err := DecodeWords(words)
	require.NoError(t, err)
	encoded, err := Encode(events[0], ProtocolMIDI2)
	require.NoError(t, err)
	assert.Equal(t, words, encoded)
}

func TestDecodeSysEx7Reassembly(t *testing.T) {
	// Start [F0 7E 00 06 01], Continue [02 03 04 05 06], End [07 F7].
	start := sysex7Packet(0, sysexStatusStart, []byte{0xF0, 0x7E, 0x00, 0x06, 0x01})
	cont := sysex7Packet(0, sysexStatusContinue, []byte{0x02, 0x03, 0x04, 0x05, 0x06})
	end := sysex7Packet(0, sysexStatusEnd, []byte{0x07, 0xF7})

	var words []uint32
	words = append(words, start...)
	words = append(words, cont...)
	words = append(words, end...)

	events, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, event.KindUniversalSysEx7, e.Kind)
	assert.Equal(t, event.RealmNonRealtime, e.Realm)
	assert.Equal(t, value.U7(0), e.DeviceID)
	assert.Equal(t, value.U7(6), e.SubID1)
	assert.Equal(t, value.U7(1), e.SubID2)
	assert.Equal(t, []byte{0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, e.Data)
}

func TestSysEx7ContinueWithoutStartIsMalformed(t *testing.T) {
	cont := sysex7Packet(0, sysexStatusContinue, []byte{0x01})
	_, err := DecodeWords(cont)
	assert.Error(t, err)
}

func TestProtocolTranslationScalesValues(t *testing.T) {
	// A 7-bit-native event pushed through the MIDI 2 channel-voice form
	// comes back at 16-bit width on the same point of the value scale.
	e := event.NoteOn(0, 0, 60, event.NewValue7(100))
	words, err := Encode(e, ProtocolMIDI2)
	require.NoError(t, err)
	require.Len(t, words, 2)
	decoded, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, event.KindNoteOn, decoded[0].Kind)
	assert.True(t, e.Equal(decoded[0]))
	assert.Equal(t, value.U7(100), decoded[0].Velocity.AsU7())
}

func TestMIDI1ChannelVoiceRoundTrip(t *testing.T) {
	e := event.CC(2, 5, event.ControllerSustainPedal, event.NewValue7(100))
	words, err := Encode(e, ProtocolMIDI1)
	require.NoError(t, err)
	decoded, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, e.Equal(decoded[0]))
}

func TestUtilityRoundTrip(t *testing.T) {
	e := event.JRTimestamp(0, 0x1234)
	words, err := Encode(e, ProtocolMIDI1)
	require.NoError(t, err)
	decoded, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, e.Equal(decoded[0]))
}

func TestSysEx7RoundTripLongPayload(t *testing.T) {
	manufacturer, err := event.NewManufacturerID1(0x41)
	require.NoError(t, err)
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i)
	}
	e := event.SysEx7(0, manufacturer, data)
	words, err := Encode(e, ProtocolMIDI1)
	require.NoError(t, err)
	assert.Greater(t, len(words), 2)
	decoded, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, e.Equal(decoded[0]))
}

func TestFlexDataPassesThroughUnrecognized(t *testing.T) {
	words := []uint32{0xD0000000, 0x01020304, 0x05060708, 0x090A0B0C}
	events, err := DecodeWords(words)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindUnrecognizedUMP, events[0].Kind)

	reencoded, err := Encode(events[0], ProtocolMIDI1)
	require.NoError(t, err)
	assert.Equal(t, words, reencoded)
}
