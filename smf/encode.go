package smf

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/internal/ioutil"
	"github.com/PKsong/MIDIKit/midi1"
)

// EncoderOption configures Encode at call time.
type EncoderOption func(*encoderState)

// WithRunningStatus enables running-status omission: a channel-voice
// event's status byte is omitted when it repeats the immediately
// preceding channel-voice status within the same track. Disabled by
// default, so Encode's output is the unabbreviated form unless the
// caller opts in; either way the choice is deterministic, so encoding
// the same file twice produces identical bytes.
func WithRunningStatus() EncoderOption {
	return func(s *encoderState) { s.runningStatus = true }
}

type encoderState struct {
	runningStatus bool
}

// Encode renders f as a complete Standard MIDI File. EndOfTrack is
// appended to any track chunk that is missing it.
func Encode(f *MidiFile, opts ...EncoderOption) ([]byte, error) {
	s := &encoderState{}
	for _, opt := range opts {
		opt(s)
	}

	var out []byte
	out = append(out, "MThd"...)
	out = append(out, 0, 0, 0, 6)
	out = appendUint16(out, uint16(f.Format))
	out = appendUint16(out, uint16(f.NTracks()))
	out = appendUint16(out, divisionBytes(f.TimeBase))

	for _, c := range f.Chunks {
		switch c.Kind {
		case ChunkTrack:
			body, err := encodeTrack(c.Events, s)
			if err != nil {
				return nil, err
			}
			out = append(out, "MTrk"...)
			out = appendUint32(out, uint32(len(body)))
			out = append(out, body...)
		case ChunkUnrecognized:
			out = append(out, c.ID[:]...)
			out = appendUint32(out, uint32(len(c.Data)))
			out = append(out, c.Data...)
		}
	}
	return out, nil
}

func appendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func encodeTrack(events []TrackEvent, s *encoderState) ([]byte, error) {
	var out []byte
	var runningStatus byte
	haveEnd := false

	for _, te := range events {
		out = append(out, ioutil.EncodeVarLength(te.Delta)...)
		switch te.Kind {
		case TrackEventMeta:
			out = append(out, te.Meta.Raw()...)
			if _, ok := te.Meta.(EndOfTrack); ok {
				haveEnd = true
			}
			runningStatus = 0
		case TrackEventEscape:
			out = append(out, 0xF7)
			out = append(out, ioutil.EncodeVarLength(uint32(len(te.Escape)))...)
			out = append(out, te.Escape...)
			runningStatus = 0
		default:
			wire, err := encodeTrackChannelEvent(te.Channel)
			if err != nil {
				return nil, err
			}
			status := wire[0]
			if s.runningStatus && status == runningStatus && status < 0xF0 {
				out = append(out, wire[1:]...)
			} else {
				out = append(out, wire...)
			}
			if status < 0xF0 {
				runningStatus = status
			} else {
				runningStatus = 0
			}
		}
	}
	if !haveEnd {
		out = append(out, ioutil.EncodeVarLength(0)...)
		out = append(out, EndOfTrack{}.Raw()...)
	}
	return out, nil
}

// encodeTrackChannelEvent renders a TrackEvent's channel-voice payload.
// SysEx events use the SMF length-prefixed form (0xF0 <VLQ length>
// data...); channel-voice events reuse the midi1 codec, which every SMF
// channel message shares the wire shape of.
func encodeTrackChannelEvent(e event.Event) ([]byte, error) {
	switch e.Kind {
	case event.KindSysEx7, event.KindUniversalSysEx7:
		body, err := midi1.Encode(e)
		if err != nil {
			return nil, err
		}
		// midi1.Encode frames 0xF0 ... 0xF7; SMF wants 0xF0 <VLQ len> data
		// (data including the trailing 0xF7).
		payload := body[1:]
		out := []byte{0xF0}
		out = append(out, ioutil.EncodeVarLength(uint32(len(payload)))...)
		out = append(out, payload...)
		return out, nil
	case event.KindNoteOn, event.KindNoteOff, event.KindNotePressure, event.KindCC,
		event.KindProgramChange, event.KindPressure, event.KindPitchBend:
		return midi1.Encode(e)
	default:
		return nil, event.NewUnsupported(e.Kind.String() + " has no Standard MIDI File track wire form")
	}
}
