package midi1

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

type decoderState uint8

const (
	stateIdle decoderState = iota
	stateData1Expected
	stateData2Expected
	stateSysExBody
)

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// WithoutNoteOnNormalization disables the velocity-0 Note On -> Note Off
// rewrite, so callers can inspect the wire bytes exactly as received.
func WithoutNoteOnNormalization() DecoderOption {
	return func(d *Decoder) { d.normalizeNoteOn = false }
}

// Decoder turns a running-status-free MIDI 1.0 byte stream into events. A
// Decoder is not safe for concurrent use; feed it bytes from one goroutine.
type Decoder struct {
	group value.U4

	state  decoderState
	status byte
	data1  byte
	sysex  []byte

	normalizeNoteOn bool
}

// NewDecoder returns a Decoder that tags every event with the given UMP
// group (use 0 for plain MIDI 1.0 wire decoding outside a UMP context).
func NewDecoder(group value.U4, opts ...DecoderOption) *Decoder {
	d := &Decoder{group: group, normalizeNoteOn: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed processes one wire byte. It returns a decoded event and true when b
// completed one, or (zero, false, nil) when b was absorbed into decoder
// state without completing an event yet. A malformed byte sequence yields
// an *event.Malformed error; the decoder resets to Idle so the caller can
// resynchronize on the next status byte.
func (d *Decoder) Feed(b byte) (event.Event, bool, error) {
	if isRealTime(b) {
		return d.realTimeEvent(b), true, nil
	}
	if b&0x80 == 0 {
		return d.feedDataByte(b)
	}
	return d.feedStatusByte(b)
}

func (d *Decoder) feedStatusByte(b byte) (event.Event, bool, error) {
	switch {
	case b == byteSysExStart:
		d.state = stateSysExBody
		d.sysex = d.sysex[:0]
		return event.Event{}, false, nil
	case b == byteSysExEnd:
		if d.state != stateSysExBody {
			d.resync()
			return event.Event{}, false, event.NewMalformed(0, "unexpected end of exclusive")
		}
		e, err := decodeSysEx(d.group, d.sysex)
		d.resync()
		if err != nil {
			return event.Event{}, false, err
		}
		return e, true, nil
	case b == byteTimecodeQF:
		d.status, d.state = b, stateData1Expected
		return event.Event{}, false, nil
	case b == byteSongPosition:
		d.status, d.state = b, stateData1Expected
		return event.Event{}, false, nil
	case b == byteSongSelect:
		d.status, d.state = b, stateData1Expected
		return event.Event{}, false, nil
	case b == byteTuneRequest:
		d.resync()
		return event.TuneRequest(d.group), true, nil
	case isChannelVoiceStatus(b):
		d.status, d.state = b, stateData1Expected
		return event.Event{}, false, nil
	default:
		d.resync()
		return event.Event{}, false, event.NewMalformed(0, "reserved or unsupported status byte")
	}
}

func (d *Decoder) feedDataByte(b byte) (event.Event, bool, error) {
	switch d.state {
	case stateSysExBody:
		d.sysex = append(d.sysex, b)
		return event.Event{}, false, nil
	case stateData1Expected:
		if isChannelVoiceStatus(d.status) && channelVoiceDataBytes(d.status>>4) == 1 {
			e := d.decodeChannelVoice(b, 0)
			d.resync()
			return e, true, nil
		}
		if d.status == byteSongSelect {
			d.resync()
			return event.SongSelect(d.group, value.U7(b)), true, nil
		}
		if d.status == byteTimecodeQF {
			d.resync()
			return event.TimecodeQuarterFrame(d.group, value.U7(b)), true, nil
		}
		d.data1 = b
		d.state = stateData2Expected
		return event.Event{}, false, nil
	case stateData2Expected:
		e := d.decodeChannelVoice(d.data1, b)
		if d.status == byteSongPosition {
			// Wire order is LSB then MSB; FromPair14 wants (msb, lsb).
			beat := value.FromPair14(value.U7(b), value.U7(d.data1))
			e = event.SongPositionPointer(d.group, beat)
		}
		d.resync()
		return e, true, nil
	default:
		d.resync()
		return event.Event{}, false, event.NewMalformed(0, "unexpected data byte with no active status")
	}
}

func (d *Decoder) decodeChannelVoice(data1, data2 byte) event.Event {
	typ := d.status >> 4
	channel := value.U4(d.status & 0x0F)
	v1 := value.U7(data1)
	v2 := value.U7(data2)
	switch typ {
	case statusNoteOff:
		return event.NoteOff(d.group, channel, v1, event.NewValue7(v2))
	case statusNoteOn:
		if d.normalizeNoteOn && v2 == 0 {
			return event.NoteOff(d.group, channel, v1, event.NewValue7(0))
		}
		return event.NoteOn(d.group, channel, v1, event.NewValue7(v2))
	case statusPolyPressure:
		return event.NotePressure(d.group, channel, v1, event.NewValue7(v2))
	case statusCC:
		return event.CC(d.group, channel, event.Controller(v1), event.NewValue7(v2))
	case statusProgramChange:
		return event.ProgramChange(d.group, channel, v1)
	case statusChannelPressure:
		return event.Pressure(d.group, channel, event.NewValue7(v1))
	case statusPitchBend:
		// Wire order is LSB then MSB; FromPair14 wants (msb, lsb). The
		// 14-bit wire value is carried at 16-bit width via Min-Center-Max
		// scaling so the encoder's 16-to-14 truncation inverts it exactly.
		bend := value.FromPair14(v2, v1)
		return event.PitchBend(d.group, channel, event.NewValue16(value.ScaleU14ToU16(bend)))
	}
	return event.Event{}
}

func (d *Decoder) realTimeEvent(b byte) event.Event {
	switch b {
	case byteTimingClock:
		return event.TimingClock(d.group)
	case byteStart:
		return event.Start(d.group)
	case byteContinue:
		return event.Continue(d.group)
	case byteStop:
		return event.Stop(d.group)
	case byteActiveSensing:
		return event.ActiveSensing(d.group)
	case byteSystemReset:
		return event.SystemReset(d.group)
	default:
		return event.Event{}
	}
}

func (d *Decoder) resync() {
	d.state = stateIdle
	d.status = 0
	d.data1 = 0
}

func decodeSysEx(group value.U4, data []byte) (event.Event, error) {
	if len(data) == 0 {
		return event.Event{}, event.NewMalformed(0, "empty system-exclusive body")
	}
	if data[0] == 0x7E || data[0] == 0x7F {
		if len(data) < 4 {
			return event.Event{}, event.NewMalformed(0, "truncated universal system-exclusive header")
		}
		realm := event.RealmNonRealtime
		if data[0] == 0x7F {
			realm = event.RealmRealtime
		}
		return event.UniversalSysEx7(group, realm, value.U7(data[1]), value.U7(data[2]), value.U7(data[3]), data[4:]), nil
	}
	id, n, err := event.ParseManufacturerID(data)
	if err != nil {
		return event.Event{}, err
	}
	return event.SysEx7(group, id, data[n:]), nil
}
