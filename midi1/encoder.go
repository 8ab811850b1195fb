package midi1

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// Encode renders e as MIDI 1.0 wire bytes: one status byte followed by its
// data bytes, or an 0xF0 ... 0xF7 frame for system-exclusive. It returns
// *event.Unsupported for any MIDI 2.0-only Kind (NoteCC, NotePitchBend,
// NoteManagement, SysEx8, UniversalSysEx8, the utility messages) since
// those have no MIDI 1.0 wire form.
func Encode(e event.Event) ([]byte, error) {
	channel := byte(e.Channel)
	switch e.Kind {
	case event.KindNoteOff:
		return []byte{0x80 | channel, byte(e.Note), byte(e.Velocity.AsU7())}, nil
	case event.KindNoteOn:
		return []byte{0x90 | channel, byte(e.Note), byte(e.Velocity.AsU7())}, nil
	case event.KindNotePressure:
		return []byte{0xA0 | channel, byte(e.Note), byte(e.Velocity.AsU7())}, nil
	case event.KindCC:
		return []byte{0xB0 | channel, byte(e.Controller.Number()), byte(e.Value.AsU7())}, nil
	case event.KindProgramChange:
		return []byte{0xC0 | channel, byte(e.Program)}, nil
	case event.KindPressure:
		return []byte{0xD0 | channel, byte(e.Velocity.AsU7())}, nil
	case event.KindPitchBend:
		pair := fourteenBitPair(e.Value.As16())
		return []byte{0xE0 | channel, byte(pair.LSB), byte(pair.MSB)}, nil
	case event.KindRPN:
		return encodeParamTransaction(channel, 101, 100, e), nil
	case event.KindNRPN:
		return encodeParamTransaction(channel, 99, 98, e), nil
	case event.KindTimecodeQuarterFrame:
		return []byte{byteTimecodeQF, byte(e.DataByte)}, nil
	case event.KindSongPositionPointer:
		pair := e.Beat.IntoPair()
		return []byte{byteSongPosition, byte(pair.LSB), byte(pair.MSB)}, nil
	case event.KindSongSelect:
		return []byte{byteSongSelect, byte(e.Number)}, nil
	case event.KindTuneRequest:
		return []byte{byteTuneRequest}, nil
	case event.KindTimingClock:
		return []byte{byteTimingClock}, nil
	case event.KindStart:
		return []byte{byteStart}, nil
	case event.KindContinue:
		return []byte{byteContinue}, nil
	case event.KindStop:
		return []byte{byteStop}, nil
	case event.KindActiveSensing:
		return []byte{byteActiveSensing}, nil
	case event.KindSystemReset:
		return []byte{byteSystemReset}, nil
	case event.KindSysEx7:
		return encodeSysEx(e.Manufacturer.Bytes(), e.Data), nil
	case event.KindUniversalSysEx7:
		header := []byte{universalRealmByte(e.Realm), byte(e.DeviceID), byte(e.SubID1), byte(e.SubID2)}
		return encodeSysEx(header, e.Data), nil
	default:
		return nil, event.NewUnsupported(e.Kind.String() + " has no MIDI 1.0 wire form")
	}
}

func universalRealmByte(r event.SysExRealm) byte {
	if r == event.RealmRealtime {
		return 0x7F
	}
	return 0x7E
}

func encodeSysEx(header, data []byte) []byte {
	out := make([]byte, 0, len(header)+len(data)+2)
	out = append(out, byteSysExStart)
	out = append(out, header...)
	out = append(out, data...)
	out = append(out, byteSysExEnd)
	return out
}

// fourteenBitPair converts a 16-bit Value into the 7-bit MSB/LSB pair MIDI
// 1.0 transmits pitch bend and (N)RPN data-entry values as.
func fourteenBitPair(v16 value.U16) value.Pair7 {
	return value.ScaleU16ToU14(v16).IntoPair()
}

// encodeParamTransaction renders an RPN/NRPN event as its nine- or twelve-
// byte Control Change transaction: parameter-number select, then either a
// Data Increment (relative) or Data Entry MSB+LSB (absolute).
func encodeParamTransaction(channel byte, msbCC, lsbCC byte, e event.Event) []byte {
	out := []byte{
		0xB0 | channel, msbCC, byte(e.Parameter.MSB),
		0xB0 | channel, lsbCC, byte(e.Parameter.LSB),
	}
	if e.Change == event.ChangeRelative {
		// Data Increment (CC 96): the combiner that builds relative
		// (N)RPN events does not preserve increment-vs-decrement
		// direction separately from Change, so encode always picks
		// CC 96 with ParamValue.AsU7() as its data byte; a decrement's
		// direction is not carried on the wire.
		return append(out, 0xB0|channel, 96, byte(e.ParamValue.AsU7()))
	}
	pair := fourteenBitPair(e.ParamValue.As16())
	return append(out, 0xB0|channel, 6, byte(pair.MSB), 0xB0|channel, 38, byte(pair.LSB))
}
