package ump

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// Decoder turns a stream of UMP words into events. It holds the SysEx7/
// SysEx8 reassembly buffers: not safe for concurrent use.
type Decoder struct {
	sysex7 map[byte]*sysexBuffer
	sysex8 map[byte]*sysexBuffer

	// maxBufferedBytes bounds a single stream's reassembly buffer,
	// reporting Malformed on overflow.
	maxBufferedBytes int
}

const defaultMaxBufferedBytes = 65536

// NewDecoder returns a ready Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		sysex7:           map[byte]*sysexBuffer{},
		sysex8:           map[byte]*sysexBuffer{},
		maxBufferedBytes: defaultMaxBufferedBytes,
	}
}

// DecodeWords decodes every complete event words contains, in order,
// using a fresh Decoder. It stops and returns the error from the first
// malformed message, along with the events decoded up to that point.
func DecodeWords(words []uint32) ([]event.Event, error) {
	d := NewDecoder()
	var out []event.Event
	total := len(words)
	for len(words) > 0 {
		mt := messageType(words[0])
		n := wordCount(mt)
		if n > len(words) {
			return out, event.NewMalformed(total-len(words), "truncated UMP message")
		}
		e, ok, err := d.decodeOne(mt, words[:n])
		if err != nil {
			return out, err
		}
		if ok {
			out = append(out, e)
		}
		words = words[n:]
	}
	return out, nil
}

func (d *Decoder) decodeOne(mt uint8, words []uint32) (event.Event, bool, error) {
	switch mt {
	case mtUtility:
		return decodeUtility(words[0]), true, nil
	case mtSystemRealTime:
		return decodeSystemRealTime(words[0])
	case mtMIDI1ChannelVoice:
		return decodeMIDI1ChannelVoice(words[0]), true, nil
	case mtMIDI2ChannelVoice:
		return decodeMIDI2ChannelVoice(words[0], words[1]), true, nil
	case mtSysEx7:
		return d.decodeSysEx7(words[0], words[1])
	case mtSysEx8:
		return d.decodeSysEx8(words)
	case mtFlexData, mtStream:
		return decodeUnrecognized(words), true, nil
	default:
		return event.Event{}, false, event.NewUnsupported("reserved UMP message type")
	}
}

func decodeUtility(w uint32) event.Event {
	group := value.U4(groupOf(w))
	status := (byte1(w) >> 4) & 0x0F
	data16 := uint16(byte2(w))<<8 | uint16(byte3(w))
	switch status {
	case 0x1:
		return event.JRClock(group, value.U16(data16))
	case 0x2:
		return event.JRTimestamp(group, value.U16(data16))
	default:
		return event.NoOp(group)
	}
}

func decodeSystemRealTime(w uint32) (event.Event, bool, error) {
	group := value.U4(groupOf(w))
	status := byte1(w)
	d1 := byte2(w)
	d2 := byte3(w)
	switch status {
	case 0xF8:
		return event.TimingClock(group), true, nil
	case 0xFA:
		return event.Start(group), true, nil
	case 0xFB:
		return event.Continue(group), true, nil
	case 0xFC:
		return event.Stop(group), true, nil
	case 0xFE:
		return event.ActiveSensing(group), true, nil
	case 0xFF:
		return event.SystemReset(group), true, nil
	case 0xF6:
		return event.TuneRequest(group), true, nil
	case 0xF1:
		return event.TimecodeQuarterFrame(group, value.U7(d1)), true, nil
	case 0xF2:
		beat := value.FromPair14(value.U7(d2), value.U7(d1))
		return event.SongPositionPointer(group, beat), true, nil
	case 0xF3:
		return event.SongSelect(group, value.U7(d1)), true, nil
	default:
		return event.Event{}, false, event.NewMalformed(0, "reserved system real-time/common status byte")
	}
}

func decodeMIDI1ChannelVoice(w uint32) event.Event {
	group := value.U4(groupOf(w))
	channel := value.U4(byte1(w) & 0x0F)
	opcode := byte1(w) >> 4
	d1 := value.U7(byte2(w) & 0x7F)
	d2 := value.U7(byte3(w) & 0x7F)
	switch opcode {
	case 0x8:
		return event.NoteOff(group, channel, d1, event.NewValue7(d2))
	case 0x9:
		if d2 == 0 {
			return event.NoteOff(group, channel, d1, event.NewValue7(0))
		}
		return event.NoteOn(group, channel, d1, event.NewValue7(d2))
	case 0xA:
		return event.NotePressure(group, channel, d1, event.NewValue7(d2))
	case 0xB:
		return event.CC(group, channel, event.Controller(d1), event.NewValue7(d2))
	case 0xC:
		return event.ProgramChange(group, channel, d1)
	case 0xD:
		return event.Pressure(group, channel, event.NewValue7(d1))
	case 0xE:
		bend := value.FromPair14(d2, d1)
		return event.PitchBend(group, channel, event.NewValue16(value.ScaleU14ToU16(bend)))
	default:
		return event.Event{}
	}
}

func decodeMIDI2ChannelVoice(w1, w2 uint32) event.Event {
	group := value.U4(groupOf(w1))
	channel := value.U4(byte1(w1) & 0x0F)
	opcode := byte1(w1) >> 4
	idx2 := byte2(w1)
	idx3 := byte3(w1)
	note := value.U7(idx2 & 0x7F)

	switch opcode {
	case 0x0, 0x1:
		ctrl := event.PerNoteController(value.TruncateU7(idx3))
		return event.NoteCC(group, channel, note, ctrl, event.NewValue32(value.U32(w2)))
	case 0x2, 0x3:
		param := value.Pair7{MSB: value.U7(idx2 & 0x7F), LSB: value.U7(idx3 & 0x7F)}
		v := event.NewValue32(value.U32(w2))
		if opcode == 0x2 {
			return event.RPN(group, channel, param, v, event.ChangeAbsolute)
		}
		return event.NRPN(group, channel, param, v, event.ChangeAbsolute)
	case 0x4, 0x5:
		param := value.Pair7{MSB: value.U7(idx2 & 0x7F), LSB: value.U7(idx3 & 0x7F)}
		v := event.NewValue32(value.U32(w2))
		if opcode == 0x4 {
			return event.RPN(group, channel, param, v, event.ChangeRelative)
		}
		return event.NRPN(group, channel, param, v, event.ChangeRelative)
	case 0x6:
		return event.NotePitchBend(group, channel, note, value.U32(w2))
	case 0x8:
		return event.NoteOff(group, channel, note, noteVelocity(w2))
	case 0x9:
		attr := noteAttribute(idx3, w2)
		v := noteVelocity(w2)
		if attr.Type == event.AttributeNone {
			return event.NoteOn(group, channel, note, v)
		}
		return event.NoteOnWithAttribute(group, channel, note, v, attr)
	case 0xA:
		return event.NotePressure(group, channel, note, event.NewValue32(value.U32(w2)))
	case 0xB:
		return event.CC(group, channel, event.Controller(idx2&0x7F), event.NewValue32(value.U32(w2)))
	case 0xC:
		program := value.U7(byte0(w2) & 0x7F)
		if idx2&0x01 == 0 {
			return event.ProgramChange(group, channel, program)
		}
		bank := value.FromPair14(value.U7(byte2(w2)&0x7F), value.U7(byte3(w2)&0x7F))
		return event.ProgramChangeWithBank(group, channel, program, bank)
	case 0xD:
		return event.Pressure(group, channel, event.NewValue32(value.U32(w2)))
	case 0xE:
		return event.PitchBend(group, channel, event.NewValue32(value.U32(w2)))
	case 0xF:
		return event.NoteManagementEvent(group, channel, note, event.NoteManagementOptions{
			Detach: idx3&0x01 != 0,
			Reset:  idx3&0x02 != 0,
		})
	default:
		return event.Event{}
	}
}

func noteVelocity(w2 uint32) event.Value {
	return event.NewValue16(value.U16(w2 >> 16))
}

func noteAttribute(attrType byte, w2 uint32) event.NoteAttribute {
	return event.NoteAttribute{
		Type: event.NoteAttributeType(attrType),
		Data: value.U16(uint16(w2)),
	}
}

func decodeUnrecognized(words []uint32) event.Event {
	group := value.U4(groupOf(words[0]))
	data := make([]byte, 0, len(words)*4)
	for _, w := range words {
		b := wordToBytes(w)
		data = append(data, b[:]...)
	}
	return event.UnrecognizedUMP(group, data)
}
