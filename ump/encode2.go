package ump

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

func fourteenBitPairFromValue(v event.Value) value.Pair7 {
	return value.ScaleU16ToU14(v.As16()).IntoPair()
}

func encodeMIDI2ChannelVoice(e event.Event) ([]uint32, error) {
	group := uint32(e.Group)
	channel := uint32(e.Channel)
	head := func(opcode uint32, idx2, idx3 byte) uint32 {
		return 0x4<<28 | group<<24 | opcode<<20 | channel<<16 | uint32(idx2)<<8 | uint32(idx3)
	}
	switch e.Kind {
	case event.KindNoteOff:
		return []uint32{head(0x8, byte(e.Note), 0), uint32(e.Velocity.As16()) << 16}, nil
	case event.KindNoteOn:
		attrType := byte(e.Attribute.Type)
		w2 := uint32(e.Velocity.As16())<<16 | uint32(e.Attribute.Data)
		return []uint32{head(0x9, byte(e.Note), attrType), w2}, nil
	case event.KindNotePressure:
		return []uint32{head(0xA, byte(e.Note), 0), uint32(e.Velocity.As32())}, nil
	case event.KindCC:
		return []uint32{head(0xB, byte(e.Controller.Number()), 0), uint32(e.Value.As32())}, nil
	case event.KindProgramChange:
		flag := byte(0)
		if e.HasBank {
			flag = 1
		}
		w2 := uint32(e.Program) << 24
		if e.HasBank {
			pair := e.Bank.IntoPair()
			w2 |= uint32(pair.MSB)<<8 | uint32(pair.LSB)
		}
		return []uint32{head(0xC, flag, 0), w2}, nil
	case event.KindPressure:
		return []uint32{head(0xD, 0, 0), uint32(e.Velocity.As32())}, nil
	case event.KindPitchBend:
		return []uint32{head(0xE, 0, 0), uint32(e.Value.As32())}, nil
	case event.KindNoteCC:
		return []uint32{head(0x1, byte(e.Note), byte(e.PerNoteController.Number())), uint32(e.Value.As32())}, nil
	case event.KindNotePitchBend:
		return []uint32{head(0x6, byte(e.Note), 0), uint32(e.Value.As32())}, nil
	case event.KindNoteManagement:
		var flags byte
		if e.NoteManagement.Detach {
			flags |= 0x01
		}
		if e.NoteManagement.Reset {
			flags |= 0x02
		}
		return []uint32{head(0xF, byte(e.Note), flags), 0}, nil
	case event.KindRPN, event.KindNRPN:
		opcode := uint32(0x2)
		if e.Kind == event.KindNRPN {
			opcode = 0x3
		}
		if e.Change == event.ChangeRelative {
			opcode += 2
		}
		return []uint32{
			head(opcode, byte(e.Parameter.MSB), byte(e.Parameter.LSB)),
			uint32(e.ParamValue.As32()),
		}, nil
	default:
		return nil, event.NewUnsupported(e.Kind.String() + " has no MIDI 2 channel-voice UMP form")
	}
}

func encodeSysEx7(e event.Event) ([]uint32, error) {
	var body []byte
	body = append(body, 0xF0)
	switch e.Kind {
	case event.KindSysEx7:
		body = append(body, e.Manufacturer.Bytes()...)
	case event.KindUniversalSysEx7:
		body = append(body, universalHeader(e)...)
	}
	body = append(body, e.Data...)
	body = append(body, 0xF7)
	return packSysEx7(uint32(e.Group), body), nil
}

func universalHeader(e event.Event) []byte {
	realmByte := byte(0x7E)
	if e.Realm == event.RealmRealtime {
		realmByte = 0x7F
	}
	return []byte{realmByte, byte(e.DeviceID), byte(e.SubID1), byte(e.SubID2)}
}

// packSysEx7 chunks body into 6-byte UMP SysEx7 packets (Complete if it
// fits in one, otherwise Start/Continue.../End).
func packSysEx7(group uint32, body []byte) []uint32 {
	const chunkSize = 6
	if len(body) <= chunkSize {
		return sysex7Packet(group, sysexStatusComplete, body)
	}
	var out []uint32
	for i := 0; i < len(body); i += chunkSize {
		end := i + chunkSize
		if end > len(body) {
			end = len(body)
		}
		status := sysexStatusContinue
		switch {
		case i == 0:
			status = sysexStatusStart
		case end == len(body):
			status = sysexStatusEnd
		}
		out = append(out, sysex7Packet(group, status, body[i:end])...)
	}
	return out
}

func sysex7Packet(group uint32, status int, chunk []byte) []uint32 {
	var b [6]byte
	copy(b[:], chunk)
	w1 := 0x3<<28 | group<<24 | uint32(status)<<20 | uint32(len(chunk))<<16 | uint32(b[0])<<8 | uint32(b[1])
	w2 := uint32(b[2])<<24 | uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5])
	return []uint32{w1, w2}
}

func encodeSysEx8(e event.Event) ([]uint32, error) {
	var body []byte
	switch e.Kind {
	case event.KindSysEx8:
		body = append(body, e.Manufacturer.Bytes()...)
	case event.KindUniversalSysEx8:
		body = append(body, universalHeader(e)...)
	}
	body = append(body, e.Data...)
	return packSysEx8(uint32(e.Group), e.StreamID, body), nil
}

// packSysEx8 chunks body into 13-byte UMP SysEx8/Mixed Data Set packets.
func packSysEx8(group uint32, streamID byte, body []byte) []uint32 {
	const chunkSize = 13
	if len(body) <= chunkSize {
		return sysex8Packet(group, sysexStatusComplete, streamID, body)
	}
	var out []uint32
	for i := 0; i < len(body); i += chunkSize {
		end := i + chunkSize
		if end > len(body) {
			end = len(body)
		}
		status := sysexStatusContinue
		switch {
		case i == 0:
			status = sysexStatusStart
		case end == len(body):
			status = sysexStatusEnd
		}
		out = append(out, sysex8Packet(group, status, streamID, body[i:end])...)
	}
	return out
}

func sysex8Packet(group uint32, status int, streamID byte, chunk []byte) []uint32 {
	var b [13]byte
	copy(b[:], chunk)
	w1 := 0x5<<28 | group<<24 | uint32(status)<<20 | uint32(len(chunk))<<16 | uint32(streamID)<<8 | uint32(b[0])
	w2 := uint32(b[1])<<24 | uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4])
	w3 := uint32(b[5])<<24 | uint32(b[6])<<16 | uint32(b[7])<<8 | uint32(b[8])
	w4 := uint32(b[9])<<24 | uint32(b[10])<<16 | uint32(b[11])<<8 | uint32(b[12])
	return []uint32{w1, w2, w3, w4}
}
