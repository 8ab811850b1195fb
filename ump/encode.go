package ump

import (
	"github.com/PKsong/MIDIKit/event"
)

// Protocol selects which UMP channel-voice message type Encode targets for
// a channel-voice event: MIDI 1.0 (message type 0x2, 1 word) or MIDI 2.0
// (message type 0x4, 2 words).
type Protocol uint8

const (
	ProtocolMIDI1 Protocol = iota
	ProtocolMIDI2
)

// Encode renders e as its UMP word sequence for the requested protocol.
// System common/real-time, utility and sysex7/8 events ignore protocol
// (they have one wire form); channel-voice events are rendered as MIDI 1
// or MIDI 2 channel voice according to p, scaling Value widths as needed.
func Encode(e event.Event, p Protocol) ([]uint32, error) {
	group := uint32(e.Group)
	switch e.Kind {
	case event.KindNoOp:
		return []uint32{group << 24}, nil
	case event.KindJRClock:
		return []uint32{group<<24 | 0x1<<20 | uint32(e.Time)}, nil
	case event.KindJRTimestamp:
		return []uint32{group<<24 | 0x2<<20 | uint32(e.Time)}, nil

	case event.KindTimingClock:
		return []uint32{0x1<<28 | group<<24 | 0xF8<<16}, nil
	case event.KindStart:
		return []uint32{0x1<<28 | group<<24 | 0xFA<<16}, nil
	case event.KindContinue:
		return []uint32{0x1<<28 | group<<24 | 0xFB<<16}, nil
	case event.KindStop:
		return []uint32{0x1<<28 | group<<24 | 0xFC<<16}, nil
	case event.KindActiveSensing:
		return []uint32{0x1<<28 | group<<24 | 0xFE<<16}, nil
	case event.KindSystemReset:
		return []uint32{0x1<<28 | group<<24 | 0xFF<<16}, nil
	case event.KindTuneRequest:
		return []uint32{0x1<<28 | group<<24 | 0xF6<<16}, nil
	case event.KindTimecodeQuarterFrame:
		return []uint32{0x1<<28 | group<<24 | 0xF1<<16 | uint32(e.DataByte)<<8}, nil
	case event.KindSongSelect:
		return []uint32{0x1<<28 | group<<24 | 0xF3<<16 | uint32(e.Number)<<8}, nil
	case event.KindSongPositionPointer:
		pair := e.Beat.IntoPair()
		return []uint32{0x1<<28 | group<<24 | 0xF2<<16 | uint32(pair.LSB)<<8 | uint32(pair.MSB)}, nil

	case event.KindNoteOff, event.KindNoteOn, event.KindNotePressure, event.KindCC,
		event.KindProgramChange, event.KindPressure, event.KindPitchBend:
		if p == ProtocolMIDI1 {
			return encodeMIDI1ChannelVoice(e)
		}
		return encodeMIDI2ChannelVoice(e)

	case event.KindNoteCC, event.KindNotePitchBend, event.KindNoteManagement,
		event.KindRPN, event.KindNRPN:
		return encodeMIDI2ChannelVoice(e)

	case event.KindSysEx7, event.KindUniversalSysEx7:
		return encodeSysEx7(e)
	case event.KindSysEx8, event.KindUniversalSysEx8:
		return encodeSysEx8(e)

	case event.KindUnrecognizedUMP:
		return bytesToWords(e.Data), nil

	default:
		return nil, event.NewUnsupported(e.Kind.String() + " has no UMP wire form")
	}
}

func bytesToWords(data []byte) []uint32 {
	out := make([]uint32, 0, (len(data)+3)/4)
	for i := 0; i < len(data); i += 4 {
		var b [4]byte
		copy(b[:], data[i:min(i+4, len(data))])
		out = append(out, bytesToWord(b[0], b[1], b[2], b[3]))
	}
	return out
}

func encodeMIDI1ChannelVoice(e event.Event) ([]uint32, error) {
	group := uint32(e.Group)
	channel := uint32(e.Channel)
	switch e.Kind {
	case event.KindNoteOff:
		return []uint32{0x2<<28 | group<<24 | 0x8<<20 | channel<<16 | uint32(e.Note)<<8 | uint32(e.Velocity.AsU7())}, nil
	case event.KindNoteOn:
		return []uint32{0x2<<28 | group<<24 | 0x9<<20 | channel<<16 | uint32(e.Note)<<8 | uint32(e.Velocity.AsU7())}, nil
	case event.KindNotePressure:
		return []uint32{0x2<<28 | group<<24 | 0xA<<20 | channel<<16 | uint32(e.Note)<<8 | uint32(e.Velocity.AsU7())}, nil
	case event.KindCC:
		return []uint32{0x2<<28 | group<<24 | 0xB<<20 | channel<<16 | uint32(e.Controller.Number())<<8 | uint32(e.Value.AsU7())}, nil
	case event.KindProgramChange:
		return []uint32{0x2<<28 | group<<24 | 0xC<<20 | channel<<16 | uint32(e.Program)<<8}, nil
	case event.KindPressure:
		return []uint32{0x2<<28 | group<<24 | 0xD<<20 | channel<<16 | uint32(e.Velocity.AsU7())<<8}, nil
	case event.KindPitchBend:
		pair := fourteenBitPairFromValue(e.Value)
		return []uint32{0x2<<28 | group<<24 | 0xE<<20 | channel<<16 | uint32(pair.LSB)<<8 | uint32(pair.MSB)}, nil
	default:
		return nil, event.NewUnsupported(e.Kind.String() + " has no MIDI 1 channel-voice UMP form")
	}
}
