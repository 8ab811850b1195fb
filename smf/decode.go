package smf

import (
	"bytes"
	"io"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/internal/ioutil"
	"github.com/PKsong/MIDIKit/value"
)

// maxChunkBytes bounds a single chunk's declared length field, the same
// safety cap the UMP SysEx reassembler imposes per stream.
const maxChunkBytes = 65536

// Parse decodes a complete Standard MIDI File. It fails on a short header,
// bad magic, an inconsistent declared chunk length, a VLQ longer than 4
// bytes, or a truncated chunk. Every track's last event must be
// EndOfTrack; Parse returns *event.Malformed otherwise.
func Parse(data []byte) (*MidiFile, error) {
	r := bytes.NewReader(data)

	magic, err := ioutil.ReadFull(r, 4)
	if err != nil {
		return nil, event.NewMalformed(0, "truncated SMF header")
	}
	if string(magic) != "MThd" {
		return nil, event.NewMalformed(0, "bad MThd magic")
	}
	headerLen, err := ioutil.ReadUint32(r)
	if err != nil {
		return nil, event.NewMalformed(4, "truncated MThd length")
	}
	if headerLen != 6 {
		return nil, event.NewMalformed(8, "MThd length must be 6")
	}
	format, err := ioutil.ReadUint16(r)
	if err != nil {
		return nil, event.NewMalformed(8, "truncated format field")
	}
	// ntrks is advisory; this parser discovers tracks from the chunk
	// stream itself (MidiFile.NTracks) rather than trusting the count.
	if _, err := ioutil.ReadUint16(r); err != nil {
		return nil, event.NewMalformed(10, "truncated ntrks field")
	}
	divisionRaw, err := ioutil.ReadUint16(r)
	if err != nil {
		return nil, event.NewMalformed(12, "truncated division field")
	}
	tb, err := decodeDivision(divisionRaw)
	if err != nil {
		return nil, err
	}

	f := &MidiFile{Format: Format(format), TimeBase: tb}
	for r.Len() > 0 {
		id, err := ioutil.ReadFull(r, 4)
		if err != nil {
			return nil, event.NewMalformed(0, "truncated chunk id")
		}
		length, err := ioutil.ReadUint32(r)
		if err != nil {
			return nil, event.NewMalformed(0, "truncated chunk length")
		}
		if length > maxChunkBytes {
			return nil, event.NewMalformed(0, "chunk length exceeds safety cap")
		}
		body, err := ioutil.ReadFull(r, int(length))
		if err != nil {
			return nil, event.NewMalformed(0, "truncated chunk body")
		}
		if string(id) == "MTrk" {
			events, err := parseTrack(body)
			if err != nil {
				return nil, err
			}
			f.Chunks = append(f.Chunks, Track(events))
		} else {
			var rawID [4]byte
			copy(rawID[:], id)
			f.Chunks = append(f.Chunks, Unrecognized(rawID, body))
		}
	}
	return f, nil
}

// parseTrack decodes one MTrk chunk body (delta-time, event)* with running
// status recognition: a first event byte with the high bit clear reuses
// the most recently seen channel-voice status.
func parseTrack(body []byte) ([]TrackEvent, error) {
	r := bytes.NewReader(body)
	var events []TrackEvent
	var runningStatus byte

	for {
		if r.Len() == 0 {
			return nil, event.NewMalformed(0, "track missing EndOfTrack")
		}
		delta, err := ioutil.ReadVarLength(r)
		if err != nil {
			return nil, err
		}

		peek, err := ioutil.ReadByte(r)
		if err != nil {
			return nil, err
		}

		switch {
		case peek == 0xFF:
			m, err := readMeta(r)
			if err != nil {
				return nil, err
			}
			events = append(events, MetaTrackEvent(delta, m))
			if _, ok := m.(EndOfTrack); ok {
				if r.Len() != 0 {
					return nil, event.NewMalformed(0, "events found after EndOfTrack")
				}
				return events, nil
			}
		case peek == 0xF0:
			data, err := ioutil.ReadVarLengthData(r)
			if err != nil {
				return nil, err
			}
			e, err := decodeSMFSysEx(data)
			if err != nil {
				return nil, err
			}
			events = append(events, ChannelEvent(delta, e))
		case peek == 0xF7:
			data, err := ioutil.ReadVarLengthData(r)
			if err != nil {
				return nil, err
			}
			events = append(events, EscapeTrackEvent(delta, data))
		case peek&0x80 != 0:
			runningStatus = peek
			e, err := decodeChannelEvent(runningStatus, r)
			if err != nil {
				return nil, err
			}
			events = append(events, ChannelEvent(delta, e))
		default:
			if runningStatus == 0 {
				return nil, event.NewMalformed(0, "data byte with no running status")
			}
			e, err := decodeChannelEventWithFirstByte(runningStatus, peek, r)
			if err != nil {
				return nil, err
			}
			events = append(events, ChannelEvent(delta, e))
		}
	}
}

func channelDataBytes(status byte) int {
	switch status >> 4 {
	case 0xC, 0xD:
		return 1
	default:
		return 2
	}
}

func decodeChannelEvent(status byte, r io.Reader) (event.Event, error) {
	b1, err := ioutil.ReadByte(r)
	if err != nil {
		return event.Event{}, err
	}
	return decodeChannelEventWithFirstByte(status, b1, r)
}

func decodeChannelEventWithFirstByte(status, b1 byte, r io.Reader) (event.Event, error) {
	channel := value.U4(status & 0x0F)
	d1 := value.U7(b1 & 0x7F)
	if channelDataBytes(status) == 1 {
		switch status >> 4 {
		case 0xC:
			return event.ProgramChange(0, channel, d1), nil
		case 0xD:
			return event.Pressure(0, channel, event.NewValue7(d1)), nil
		}
	}
	b2, err := ioutil.ReadByte(r)
	if err != nil {
		return event.Event{}, err
	}
	d2 := value.U7(b2 & 0x7F)
	switch status >> 4 {
	case 0x8:
		return event.NoteOff(0, channel, d1, event.NewValue7(d2)), nil
	case 0x9:
		if d2 == 0 {
			return event.NoteOff(0, channel, d1, event.NewValue7(0)), nil
		}
		return event.NoteOn(0, channel, d1, event.NewValue7(d2)), nil
	case 0xA:
		return event.NotePressure(0, channel, d1, event.NewValue7(d2)), nil
	case 0xB:
		return event.CC(0, channel, event.Controller(d1), event.NewValue7(d2)), nil
	case 0xE:
		bend := value.FromPair14(d2, d1)
		return event.PitchBend(0, channel, event.NewValue16(value.ScaleU14ToU16(bend))), nil
	default:
		return event.Event{}, event.NewMalformed(0, "unrecognized channel-voice status byte in track")
	}
}

// decodeSMFSysEx interprets a length-prefixed 0xF0 SysEx body, parsed the
// same way midi1/ump parse a SysEx7 body (manufacturer ID or universal
// header), with an optional trailing 0xF7 terminator stripped if present.
func decodeSMFSysEx(data []byte) (event.Event, error) {
	body := data
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
		return event.UniversalSysEx7(0, realm, value.U7(body[1]), value.U7(body[2]), value.U7(body[3]), body[4:]), nil
	}
	id, n, err := event.ParseManufacturerID(body)
	if err != nil {
		return event.Event{}, err
	}
	return event.SysEx7(0, id, body[n:]), nil
}
