package smf

import (
	"testing"

	"github.com/PKsong/MIDIKit/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	_, err := Parse([]byte("XXXX\x00\x00\x00\x06\x00\x00\x00\x01\x01\xE0"))
	require.Error(t, err)
}

func TestParseHeaderRejectsWrongLength(t *testing.T) {
	_, err := Parse([]byte("MThd\x00\x00\x00\x07\x00\x00\x00\x01\x01\xE0"))
	require.Error(t, err)
}

// A format 0 file at 480 ticks/quarter whose single track carries a
// Tempo event (500 000 us/quarter, i.e. 120 BPM), a 4/4 TimeSignature
// (24 clocks/click, 8 thirty-seconds/quarter) and EndOfTrack parses,
// re-encodes byte-exactly, and round-trips.
func TestScenarioTempoTimeSignature(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x13,
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08,
		0x00, 0xFF, 0x2F, 0x00,
	}

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Format0, f.Format)
	assert.Equal(t, TimeBaseMusical, f.TimeBase.Kind)
	assert.Equal(t, uint16(480), f.TimeBase.TicksPerQuarter)
	require.Equal(t, 1, f.NTracks())

	track := f.Chunks[0]
	require.Equal(t, ChunkTrack, track.Kind)
	require.Len(t, track.Events, 3)

	tempo, ok := track.Events[0].Meta.(Tempo)
	require.True(t, ok)
	assert.Equal(t, uint32(500000), tempo.MicrosecondsPerQuarter)
	assert.InDelta(t, 120.0, tempo.BPM(), 0.001)

	ts, ok := track.Events[1].Meta.(TimeSignature)
	require.True(t, ok)
	assert.Equal(t, TimeSignature{Numerator: 4, Denominator: 4, ClocksPerClick: 24, ThirtySecondsPerQuarter: 8}, ts)

	_, ok = track.Events[2].Meta.(EndOfTrack)
	require.True(t, ok)

	reencoded, err := Encode(f)
	require.NoError(t, err)
	assert.Equal(t, data, reencoded)

	roundTripped, err := Parse(reencoded)
	require.NoError(t, err)
	assert.True(t, f.Equal(roundTripped))
}

func TestEncodeAppendsMissingEndOfTrack(t *testing.T) {
	f := &MidiFile{
		Format:   Format0,
		TimeBase: TimeBase{Kind: TimeBaseMusical, TicksPerQuarter: 96},
		Chunks: []Chunk{
			Track([]TrackEvent{MetaTrackEvent(0, Tempo{MicrosecondsPerQuarter: 500000})}),
		},
	}
	data, err := Encode(f)
	require.NoError(t, err)

	decoded, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, decoded.Chunks[0].Events, 2)
	_, ok := decoded.Chunks[0].Events[1].Meta.(EndOfTrack)
	assert.True(t, ok)
}

func TestParseRejectsEventsAfterEndOfTrack(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x08,
		0x00, 0xFF, 0x2F, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}
	_, err := Parse(data)
	require.Error(t, err)
}

func TestParseRejectsTrackMissingEndOfTrack(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x04,
		0x00, 0x90, 0x40, 0x7F,
	}
	_, err := Parse(data)
	require.Error(t, err)
}

func TestRunningStatusDecodeAndOptInEncode(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x0B,
		0x00, 0x90, 0x40, 0x7F, // Note On ch0, running status established
		0x00, 0x3C, 0x10, // running status reused: Note On 60 vel 16
		0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	require.NoError(t, err)
	track := f.Chunks[0]
	require.Len(t, track.Events, 3)
	assert.Equal(t, event.KindNoteOn, track.Events[0].Channel.Kind)
	assert.Equal(t, event.KindNoteOn, track.Events[1].Channel.Kind)

	withoutRS, err := Encode(f)
	require.NoError(t, err)
	withRS, err := Encode(f, WithRunningStatus())
	require.NoError(t, err)
	assert.True(t, len(withRS) < len(withoutRS), "running-status output should be shorter")

	decodedRS, err := Parse(withRS)
	require.NoError(t, err)
	assert.True(t, f.Equal(decodedRS))
}

func TestDivisionTimecodeRoundTrip(t *testing.T) {
	tb := TimeBase{Kind: TimeBaseTimecode, FPS: FPS25, TicksPerFrame: 40}
	raw := divisionBytes(tb)
	got, err := decodeDivision(raw)
	require.NoError(t, err)
	assert.Equal(t, tb, got)
}

func TestSysExTrackEventRoundTrip(t *testing.T) {
	manufacturer, err := event.NewManufacturerID1(0x41)
	require.NoError(t, err)
	e := event.SysEx7(0, manufacturer, []byte{0x01, 0x02})
	f := &MidiFile{
		Format:   Format0,
		TimeBase: TimeBase{Kind: TimeBaseMusical, TicksPerQuarter: 96},
		Chunks:   []Chunk{Track([]TrackEvent{ChannelEvent(0, e), MetaTrackEvent(0, EndOfTrack{})})},
	}
	data, err := Encode(f)
	require.NoError(t, err)
	decoded, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, f.Equal(decoded))
}

func TestEscapeTrackEventRoundTrip(t *testing.T) {
	f := &MidiFile{
		Format:   Format0,
		TimeBase: TimeBase{Kind: TimeBaseMusical, TicksPerQuarter: 96},
		Chunks:   []Chunk{Track([]TrackEvent{EscapeTrackEvent(0, []byte{0xAA, 0xBB}), MetaTrackEvent(0, EndOfTrack{})})},
	}
	data, err := Encode(f)
	require.NoError(t, err)
	decoded, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, f.Equal(decoded))
}

func TestUnrecognizedChunkPreservedVerbatim(t *testing.T) {
	data := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		'X', 'F', 'O', 'O', 0x00, 0x00, 0x00, 0x02, 0xDE, 0xAD,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, f.Chunks, 2)
	assert.Equal(t, ChunkUnrecognized, f.Chunks[0].Kind)
	assert.Equal(t, [4]byte{'X', 'F', 'O', 'O'}, f.Chunks[0].ID)
	assert.Equal(t, 1, f.NTracks())

	reencoded, err := Encode(f)
	require.NoError(t, err)
	assert.Equal(t, data, reencoded)
}
