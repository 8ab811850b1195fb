package ump

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// sysexBuffer accumulates payload bytes across Start/Continue/End packets
// for one UMP group.
type sysexBuffer struct {
	data []byte
}

const (
	sysexStatusComplete = 0x0
	sysexStatusStart    = 0x1
	sysexStatusContinue = 0x2
	sysexStatusEnd      = 0x3
)

func (d *Decoder) decodeSysEx7(w1, w2 uint32) (event.Event, bool, error) {
	group := groupOf(w1)
	status := (byte1(w1) >> 4) & 0x0F
	numBytes := int(byte1(w1) & 0x0F)
	all := [6]byte{byte2(w1), byte3(w1), byte0(w2), byte1(w2), byte2(w2), byte3(w2)}
	if numBytes > 6 {
		numBytes = 6
	}
	payload := all[:numBytes]

	switch status {
	case sysexStatusComplete:
		e, err := parseSysEx7Body(value.U4(group), payload)
		return e, err == nil, err
	case sysexStatusStart:
		buf := &sysexBuffer{data: append([]byte{}, payload...)}
		if len(buf.data) > d.maxBufferedBytes {
			delete(d.sysex7, group)
			return event.Event{}, false, event.NewMalformed(0, "sysex7 stream exceeds buffer cap")
		}
		d.sysex7[group] = buf
		return event.Event{}, false, nil
	case sysexStatusContinue:
		buf, ok := d.sysex7[group]
		if !ok {
			return event.Event{}, false, event.NewMalformed(0, "sysex7 Continue without Start")
		}
		buf.data = append(buf.data, payload...)
		if len(buf.data) > d.maxBufferedBytes {
			delete(d.sysex7, group)
			return event.Event{}, false, event.NewMalformed(0, "sysex7 stream exceeds buffer cap")
		}
		return event.Event{}, false, nil
	case sysexStatusEnd:
		buf, ok := d.sysex7[group]
		if !ok {
			return event.Event{}, false, event.NewMalformed(0, "sysex7 End without Start")
		}
		delete(d.sysex7, group)
		buf.data = append(buf.data, payload...)
		e, err := parseSysEx7Body(value.U4(group), buf.data)
		return e, err == nil, err
	default:
		return event.Event{}, false, event.NewMalformed(0, "unrecognized sysex7 stream status")
	}
}

// parseSysEx7Body interprets a reassembled SysEx7 payload. This package's
// wire convention carries the 0xF0/0xF7 MIDI 1.0 framing bytes as literal
// payload content rather than implying them, so they are stripped here if
// present before manufacturer/universal dispatch — the same dispatch
// midi1 uses for its own SysEx7 frames.
func parseSysEx7Body(group value.U4, raw []byte) (event.Event, error) {
	body := raw
	if len(body) > 0 && body[0] == 0xF0 {
		body = body[1:]
	}
	if len(body) > 0 && body[len(body)-1] == 0xF7 {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return event.Event{}, event.NewMalformed(0, "empty system-exclusive body")
	}
	if body[0] == 0x7E || body[0] == 0x7F {
		if len(body) < 4 {
			return event.Event{}, event.NewMalformed(0, "truncated universal system-exclusive header")
		}
		realm := event.RealmNonRealtime
		if body[0] == 0x7F {
			realm = event.RealmRealtime
		}
		return event.UniversalSysEx7(group, realm, value.U7(body[1]), value.U7(body[2]), value.U7(body[3]), body[4:]), nil
	}
	id, n, err := event.ParseManufacturerID(body)
	if err != nil {
		return event.Event{}, err
	}
	return event.SysEx7(group, id, body[n:]), nil
}

func (d *Decoder) decodeSysEx8(words []uint32) (event.Event, bool, error) {
	w1 := words[0]
	group := groupOf(w1)
	status := (byte1(w1) >> 4) & 0x0F
	numBytes := int(byte1(w1) & 0x0F)
	streamID := byte2(w1)

	all := make([]byte, 0, 13)
	all = append(all, byte3(w1))
	for _, w := range words[1:] {
		b := wordToBytes(w)
		all = append(all, b[:]...)
	}
	if numBytes > len(all) {
		numBytes = len(all)
	}
	payload := all[:numBytes]

	switch status {
	case sysexStatusComplete:
		e, err := parseSysEx8Body(value.U4(group), streamID, payload)
		return e, err == nil, err
	case sysexStatusStart:
		buf := &sysexBuffer{data: append([]byte{}, payload...)}
		if len(buf.data) > d.maxBufferedBytes {
			delete(d.sysex8, group)
			return event.Event{}, false, event.NewMalformed(0, "sysex8 stream exceeds buffer cap")
		}
		d.sysex8[group] = buf
		return event.Event{}, false, nil
	case sysexStatusContinue:
		buf, ok := d.sysex8[group]
		if !ok {
			return event.Event{}, false, event.NewMalformed(0, "sysex8 Continue without Start")
		}
		buf.data = append(buf.data, payload...)
		if len(buf.data) > d.maxBufferedBytes {
			delete(d.sysex8, group)
			return event.Event{}, false, event.NewMalformed(0, "sysex8 stream exceeds buffer cap")
		}
		return event.Event{}, false, nil
	case sysexStatusEnd:
		buf, ok := d.sysex8[group]
		if !ok {
			return event.Event{}, false, event.NewMalformed(0, "sysex8 End without Start")
		}
		delete(d.sysex8, group)
		buf.data = append(buf.data, payload...)
		e, err := parseSysEx8Body(value.U4(group), streamID, buf.data)
		return e, err == nil, err
	default:
		return event.Event{}, false, event.NewMalformed(0, "unrecognized sysex8 stream status")
	}
}

func parseSysEx8Body(group value.U4, streamID byte, body []byte) (event.Event, error) {
	if len(body) == 0 {
		return event.Event{}, event.NewMalformed(0, "empty mixed data set body")
	}
	if body[0] == 0x7E || body[0] == 0x7F {
		if len(body) < 4 {
			return event.Event{}, event.NewMalformed(0, "truncated universal system-exclusive header")
		}
		realm := event.RealmNonRealtime
		if body[0] == 0x7F {
			realm = event.RealmRealtime
		}
		return event.UniversalSysEx8(group, streamID, realm, value.U7(body[1]), value.U7(body[2]), value.U7(body[3]), body[4:]), nil
	}
	id, n, err := event.ParseManufacturerID(body)
	if err != nil {
		return event.Event{}, err
	}
	return event.SysEx8(group, streamID, id, body[n:]), nil
}
