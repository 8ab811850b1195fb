package hui

import (
	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

const (
	ccZoneSelect = 0x0C
	ccPortSelect = 0x0D
	ccVPotBase   = 0x10 // CC 0x10-0x17, one per channel strip 0-7
	ccVPotLast   = 0x17

	pingNote = 0
)

// lcdManufacturer is the Mackie ID HUI's LCD-update SysEx is framed under.
var lcdManufacturer = mustManufacturer()

func mustManufacturer() event.ManufacturerID {
	id, err := event.NewManufacturerID3(0x00, 0x66)
	if err != nil {
		panic(err)
	}
	return id
}

var lcdTargetByte = [...]byte{
	LCDTimeDisplay:   0x00,
	LCDChannelStrip:  0x01,
	LCDLarge2x40:     0x02,
	LCDSelectAssign:  0x03,
}

var lcdTargetByByte = map[byte]LCDTarget{
	0x00: LCDTimeDisplay,
	0x01: LCDChannelStrip,
	0x02: LCDLarge2x40,
	0x03: LCDSelectAssign,
}

// Perspective selects which direction of HUI traffic a Decoder reads. A
// host reads surface-to-host traffic, where a V-Pot CC carries a rotation
// delta; a surface reads host-to-surface traffic, where the same CC
// carries an LED ring display byte.
type Perspective uint8

const (
	HostPerspective Perspective = iota
	SurfacePerspective
)

// DecoderOption configures a Decoder at construction time.
type DecoderOption func(*Decoder)

// WithPerspective selects which side of the link the decoder is reading
// for. The default is HostPerspective.
func WithPerspective(p Perspective) DecoderOption {
	return func(d *Decoder) { d.perspective = p }
}

// Decoder turns a stream of already-MIDI1-decoded events into HUI
// messages. It is stateful only across a zone/port switch-select pair;
// every other message decodes from a single event.
type Decoder struct {
	perspective Perspective

	pendingZone value.U7
	haveZone    bool
}

// NewDecoder constructs an idle HUI wire decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Feed decodes one already-demultiplexed channel-voice or SysEx7 event.
// ok is false for events that are not part of the HUI vocabulary (so a
// caller can feed an unfiltered event stream through).
func (d *Decoder) Feed(e event.Event) (Message, bool, error) {
	switch e.Kind {
	case event.KindCC:
		return d.feedCC(e)
	case event.KindPitchBend:
		return FaderMessage{Channel: e.Channel, Value: value.ScaleU16ToU14(e.Value.As16())}, true, nil
	case event.KindNoteOn, event.KindNoteOff:
		if e.Note != pingNote {
			return nil, false, nil
		}
		return PingMessage{Toggle: e.Velocity.AsU7() != 0}, true, nil
	case event.KindSysEx7:
		if e.Manufacturer != lcdManufacturer {
			return nil, false, nil
		}
		return decodeLCD(e.Data)
	default:
		return nil, false, nil
	}
}

func (d *Decoder) feedCC(e event.Event) (Message, bool, error) {
	cc := value.U7(e.Controller)
	switch {
	case cc == ccZoneSelect:
		d.pendingZone, d.haveZone = e.Value.AsU7(), true
		return nil, false, nil
	case cc == ccPortSelect:
		if !d.haveZone {
			return nil, false, event.NewMalformed(0, "HUI port select without a preceding zone select")
		}
		v := e.Value.AsU7()
		msg := SwitchMessage{
			Addr:  Addr{Zone: d.pendingZone, Port: value.U4(v & 0x0F)},
			State: v&0x40 != 0,
		}
		d.haveZone = false
		return msg, true, nil
	case cc >= ccVPotBase && cc <= ccVPotLast:
		channel := value.U4(cc - ccVPotBase)
		v := uint8(e.Value.AsU7())
		if d.perspective == SurfacePerspective {
			display, err := ParseRingByte(v)
			if err != nil {
				return nil, false, err
			}
			return VPotDisplayMessage{Channel: channel, Display: display}, true, nil
		}
		magnitude := int8(v & 0x0F)
		if v&0x40 != 0 {
			magnitude = -magnitude
		}
		return VPotMessage{Channel: channel, Delta: magnitude}, true, nil
	default:
		return nil, false, nil
	}
}

func decodeLCD(data []byte) (Message, bool, error) {
	if len(data) < 2 {
		return nil, false, event.NewMalformed(0, "truncated HUI LCD message")
	}
	target, ok := lcdTargetByByte[data[0]]
	if !ok {
		return nil, false, event.NewMalformed(0, "unrecognized HUI LCD target sub-id")
	}
	offset := data[1]
	var channel value.U4
	text := data[2:]
	if target == LCDChannelStrip {
		if len(text) < 1 {
			return nil, false, event.NewMalformed(0, "truncated HUI channel-strip LCD message")
		}
		channel = value.U4(text[0] & 0x0F)
		text = text[1:]
	}
	return LCDMessage{Target: target, Channel: channel, Offset: offset, Text: string(text)}, true, nil
}

// EncodeSwitch renders a switch press/release as its CC 0x0C/0x0D pair.
func EncodeSwitch(group, channel value.U4, addr Addr, state bool) []event.Event {
	v := byte(addr.Port)
	if state {
		v |= 0x40
	}
	return []event.Event{
		event.CC(group, channel, ccZoneSelect, event.NewValue7(addr.Zone)),
		event.CC(group, channel, ccPortSelect, event.NewValue7(value.U7(v))),
	}
}

// EncodeVPot renders a V-Pot rotation delta (-15..15) as its sign/
// magnitude CC.
func EncodeVPot(group, channel value.U4, stripChannel value.U4, delta int8) event.Event {
	mag := delta
	var sign byte
	if mag < 0 {
		sign = 0x40
		mag = -mag
	}
	if mag > 0x0F {
		mag = 0x0F
	}
	cc := event.Controller(ccVPotBase + uint8(stripChannel))
	return event.CC(group, channel, cc, event.NewValue7(value.U7(sign|uint8(mag))))
}

// EncodeVPotDisplay renders a host-to-surface V-Pot LED ring update.
func EncodeVPotDisplay(group, channel value.U4, stripChannel value.U4, d VPotDisplay) event.Event {
	cc := event.Controller(ccVPotBase + uint8(stripChannel))
	return event.CC(group, channel, cc, event.NewValue7(value.U7(RingByte(d))))
}

// EncodeFader renders a motorized-fader position as channel pitch bend.
func EncodeFader(group, channel value.U4, v value.U14) event.Event {
	return event.PitchBend(group, channel, event.NewValue16(value.ScaleU14ToU16(v)))
}

// EncodeLCD renders an LCD text update as the HUI Mackie SysEx.
func EncodeLCD(group value.U4, msg LCDMessage) event.Event {
	data := make([]byte, 0, 2+1+len(msg.Text))
	data = append(data, lcdTargetByte[msg.Target], msg.Offset)
	if msg.Target == LCDChannelStrip {
		data = append(data, byte(msg.Channel))
	}
	data = append(data, []byte(msg.Text)...)
	return event.SysEx7(group, lcdManufacturer, data)
}

// EncodePing renders the keep-alive handshake note.
func EncodePing(group, channel value.U4, toggle bool) event.Event {
	v := value.U7(0)
	if toggle {
		v = 127
	}
	return event.NoteOn(group, channel, pingNote, event.NewValue7(v))
}
