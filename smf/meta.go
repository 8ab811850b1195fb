package smf

import (
	"fmt"
	"io"
	"reflect"

	"github.com/PKsong/MIDIKit/internal/ioutil"
)

// MetaEvent is one SMF meta-event ("FF type length data"). Unlike
// event.Event it stays an interface-per-variant: meta-events exist only
// inside an MTrk chunk, so no cross-codec equality property forces them
// into a single tagged struct.
type MetaEvent interface {
	// Type is the meta-event's type byte (the second byte of "FF type...").
	Type() byte
	// Raw renders the full wire encoding: 0xFF, type, VLQ length, data.
	Raw() []byte
	String() string
}

func metaBytes(typ byte, data []byte) []byte {
	out := make([]byte, 0, 2+5+len(data))
	out = append(out, 0xFF, typ)
	out = append(out, ioutil.EncodeVarLength(uint32(len(data)))...)
	out = append(out, data...)
	return out
}

func metaEqual(a, b MetaEvent) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// Meta-event type bytes.
const (
	metaSequenceNumber    = 0x00
	metaText              = 0x01
	metaCopyright         = 0x02
	metaTrackName         = 0x03
	metaInstrumentName    = 0x04
	metaLyric             = 0x05
	metaMarker            = 0x06
	metaCuePoint          = 0x07
	metaProgramName       = 0x08
	metaDeviceName        = 0x09
	metaChannelPrefix     = 0x20
	metaPortPrefix        = 0x21
	metaEndOfTrack        = 0x2F
	metaTempo             = 0x51
	metaSMPTEOffset       = 0x54
	metaTimeSignature     = 0x58
	metaKeySignature      = 0x59
	metaSequencerSpecific = 0x7F
	metaXMFPatchType      = 0x60
)

// TextKind distinguishes the meta type-0x01..0x09 text-family events; they
// share the same "length-prefixed ASCII/UTF-8" wire shape and differ only
// in type byte and semantic role.
type TextKind uint8

const (
	TextGeneric TextKind = iota
	TextCopyright
	TextTrackName
	TextInstrumentName
	TextLyric
	TextMarker
	TextCuePoint
	TextProgramName
	TextDeviceName
)

var textKindByte = [...]byte{
	TextGeneric:        metaText,
	TextCopyright:      metaCopyright,
	TextTrackName:      metaTrackName,
	TextInstrumentName: metaInstrumentName,
	TextLyric:          metaLyric,
	TextMarker:         metaMarker,
	TextCuePoint:       metaCuePoint,
	TextProgramName:    metaProgramName,
	TextDeviceName:     metaDeviceName,
}

var textKindByByte = map[byte]TextKind{
	metaText:           TextGeneric,
	metaCopyright:      TextCopyright,
	metaTrackName:      TextTrackName,
	metaInstrumentName: TextInstrumentName,
	metaLyric:          TextLyric,
	metaMarker:         TextMarker,
	metaCuePoint:       TextCuePoint,
	metaProgramName:    TextProgramName,
	metaDeviceName:     TextDeviceName,
}

func (k TextKind) String() string {
	names := [...]string{"Text", "Copyright", "TrackName", "InstrumentName", "Lyric", "Marker", "CuePoint", "ProgramName", "DeviceName"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Text"
}

// Text is the text-family meta event (FF 01-09 length text), collapsed
// to one type tagged by Kind the way event.Event tags channel-voice
// variants.
type Text struct {
	Kind TextKind
	Str  string
}

func (m Text) Type() byte   { return textKindByte[m.Kind] }
func (m Text) Raw() []byte  { return metaBytes(m.Type(), []byte(m.Str)) }
func (m Text) String() string { return fmt.Sprintf("%s: %q", m.Kind, m.Str) }

// SequenceNumber is the FF 00 02 ssss pattern-number meta event. A bare
// "FF 00 00" (no data) is also conforming and decodes to
// SequenceNumber{HasNumber: false}.
type SequenceNumber struct {
	Number    uint16
	HasNumber bool
}

func (m SequenceNumber) Type() byte { return metaSequenceNumber }
func (m SequenceNumber) Raw() []byte {
	if !m.HasNumber {
		return metaBytes(metaSequenceNumber, nil)
	}
	return metaBytes(metaSequenceNumber, []byte{byte(m.Number >> 8), byte(m.Number)})
}
func (m SequenceNumber) String() string {
	if !m.HasNumber {
		return "SequenceNumber: (none)"
	}
	return fmt.Sprintf("SequenceNumber: %d", m.Number)
}

// ChannelPrefix is the obsolete FF 20 01 cc "MIDI Channel Prefix" event.
type ChannelPrefix struct{ Channel uint8 }

func (m ChannelPrefix) Type() byte     { return metaChannelPrefix }
func (m ChannelPrefix) Raw() []byte    { return metaBytes(metaChannelPrefix, []byte{m.Channel}) }
func (m ChannelPrefix) String() string { return fmt.Sprintf("ChannelPrefix: %d", m.Channel) }

// PortPrefix is the obsolete FF 21 01 pp "MIDI Port" event.
type PortPrefix struct{ Port uint8 }

func (m PortPrefix) Type() byte     { return metaPortPrefix }
func (m PortPrefix) Raw() []byte    { return metaBytes(metaPortPrefix, []byte{m.Port}) }
func (m PortPrefix) String() string { return fmt.Sprintf("PortPrefix: %d", m.Port) }

// Tempo is the FF 51 03 tttttt microseconds-per-quarter-note event.
type Tempo struct{ MicrosecondsPerQuarter uint32 }

func (m Tempo) Type() byte { return metaTempo }
func (m Tempo) Raw() []byte {
	u := m.MicrosecondsPerQuarter & 0xFFFFFF
	return metaBytes(metaTempo, []byte{byte(u >> 16), byte(u >> 8), byte(u)})
}
func (m Tempo) String() string {
	return fmt.Sprintf("Tempo: %d us/quarter (%.2f BPM)", m.MicrosecondsPerQuarter, m.BPM())
}

// BPM converts the stored microseconds-per-quarter-note into beats per
// minute, the unit most sequencer UIs display.
func (m Tempo) BPM() float64 {
	if m.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return 60000000.0 / float64(m.MicrosecondsPerQuarter)
}

// SMPTEOffset is the FF 54 05 hr mn se fr ff track-start-time event.
// Frames is clamped to FPS's carried maximum on decode rather than
// trusting an out-of-range byte; Clamped records when that happened so
// a caller can flag the file without the decoder silently repairing it.
type SMPTEOffset struct {
	Hours, Minutes, Seconds uint8
	Frames, Subframes       uint8
	FPS                     FPS
	Clamped                 bool
}

func (m SMPTEOffset) Type() byte { return metaSMPTEOffset }
func (m SMPTEOffset) Raw() []byte {
	var rr byte
	switch m.FPS {
	case FPS24:
		rr = 0x00
	case FPS25:
		rr = 0x01
	case FPS29Drop:
		rr = 0x02
	default:
		rr = 0x03
	}
	hr := rr<<5 | (m.Hours & 0x1F)
	return metaBytes(metaSMPTEOffset, []byte{hr, m.Minutes, m.Seconds, m.Frames, m.Subframes})
}
func (m SMPTEOffset) String() string {
	return fmt.Sprintf("SMPTEOffset: %02d:%02d:%02d:%02d.%02d @%s", m.Hours, m.Minutes, m.Seconds, m.Frames, m.Subframes, m.FPS)
}

// TimeSignature is the FF 58 04 nn dd cc bb event.
type TimeSignature struct {
	Numerator               uint8
	Denominator             uint8 // decimal (4 = quarter note), not the wire's negative power of 2
	ClocksPerClick          uint8
	ThirtySecondsPerQuarter uint8
}

func (m TimeSignature) Type() byte { return metaTimeSignature }
func (m TimeSignature) Raw() []byte {
	return metaBytes(metaTimeSignature, []byte{m.Numerator, decBinDenom(m.Denominator), m.ClocksPerClick, m.ThirtySecondsPerQuarter})
}
func (m TimeSignature) String() string {
	return fmt.Sprintf("TimeSignature: %d/%d", m.Numerator, m.Denominator)
}

func decBinDenom(dec uint8) uint8 {
	if dec <= 1 {
		return 0
	}
	var bin uint8
	for dec > 2 {
		bin++
		dec >>= 1
	}
	return bin + 1
}

func binDecDenom(bin uint8) uint8 {
	if bin == 0 {
		return 1
	}
	return 2 << (bin - 1)
}

// KeySignature is the FF 59 02 sf mi event.
type KeySignature struct {
	SharpsOrFlats int8 // negative = flats, positive = sharps
	Minor         bool
}

func (m KeySignature) Type() byte { return metaKeySignature }
func (m KeySignature) Raw() []byte {
	return metaBytes(metaKeySignature, []byte{byte(m.SharpsOrFlats), boolByte(m.Minor)})
}
func (m KeySignature) String() string {
	mode := "major"
	if m.Minor {
		mode = "minor"
	}
	return fmt.Sprintf("KeySignature: %d %s", m.SharpsOrFlats, mode)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// SequencerSpecific is the FF 7F length data manufacturer-private event;
// Data's first 1 or 3 bytes are a manufacturer ID in the same encoding
// system-exclusive uses.
type SequencerSpecific struct{ Data []byte }

func (m SequencerSpecific) Type() byte     { return metaSequencerSpecific }
func (m SequencerSpecific) Raw() []byte    { return metaBytes(metaSequencerSpecific, m.Data) }
func (m SequencerSpecific) String() string { return fmt.Sprintf("SequencerSpecific: % X", m.Data) }

// XMFPatchTypePrefix is the FF 60 01 pp XMF "patch type prefix" event:
// it marks which patch/preset numbering convention (General MIDI, DLS,
// ...) the subsequent Bank/Program messages use in an eXtensible Music
// Format container; within a plain SMF it is simply preserved.
type XMFPatchTypePrefix struct{ PatchType uint8 }

func (m XMFPatchTypePrefix) Type() byte     { return metaXMFPatchType }
func (m XMFPatchTypePrefix) Raw() []byte    { return metaBytes(metaXMFPatchType, []byte{m.PatchType}) }
func (m XMFPatchTypePrefix) String() string { return fmt.Sprintf("XMFPatchTypePrefix: %d", m.PatchType) }

// EndOfTrack is the mandatory FF 2F 00 final event of every track.
type EndOfTrack struct{}

func (m EndOfTrack) Type() byte     { return metaEndOfTrack }
func (m EndOfTrack) Raw() []byte    { return metaBytes(metaEndOfTrack, nil) }
func (m EndOfTrack) String() string { return "EndOfTrack" }

// UnrecognizedMeta preserves a meta-event whose type byte this library
// does not interpret, verbatim, for faithful round-tripping.
type UnrecognizedMeta struct {
	MetaType byte
	Data     []byte
}

func (m UnrecognizedMeta) Type() byte     { return m.MetaType }
func (m UnrecognizedMeta) Raw() []byte    { return metaBytes(m.MetaType, m.Data) }
func (m UnrecognizedMeta) String() string { return fmt.Sprintf("UnrecognizedMeta type % X: % X", m.MetaType, m.Data) }

// readMeta reads one meta-event's type, VLQ length and data from r (the
// leading 0xFF has already been consumed by the caller) and dispatches
// on the type byte.
func readMeta(r io.Reader) (MetaEvent, error) {
	typ, err := ioutil.ReadByte(r)
	if err != nil {
		return nil, err
	}
	switch typ {
	case metaSequenceNumber:
		return readSequenceNumber(r)
	case metaText, metaCopyright, metaTrackName, metaInstrumentName, metaLyric, metaMarker, metaCuePoint, metaProgramName, metaDeviceName:
		s, err := ioutil.ReadText(r)
		if err != nil {
			return nil, err
		}
		return Text{Kind: textKindByByte[typ], Str: s}, nil
	case metaChannelPrefix:
		return readLen1(r, metaChannelPrefix, "ChannelPrefix", func(b byte) MetaEvent { return ChannelPrefix{Channel: b} })
	case metaPortPrefix:
		return readLen1(r, metaPortPrefix, "PortPrefix", func(b byte) MetaEvent { return PortPrefix{Port: b} })
	case metaEndOfTrack:
		n, err := ioutil.ReadVarLength(r)
		if err != nil {
			return nil, err
		}
		if n != 0 {
			return nil, ioutil.UnexpectedLengthError("EndOfTrack", int(n))
		}
		return EndOfTrack{}, nil
	case metaTempo:
		data, err := ioutil.ReadVarLengthData(r)
		if err != nil {
			return nil, err
		}
		if len(data) != 3 {
			return nil, ioutil.UnexpectedLengthError("Tempo", len(data))
		}
		return Tempo{MicrosecondsPerQuarter: uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])}, nil
	case metaSMPTEOffset:
		return readSMPTEOffset(r)
	case metaTimeSignature:
		data, err := ioutil.ReadVarLengthData(r)
		if err != nil {
			return nil, err
		}
		if len(data) != 4 {
			return nil, ioutil.UnexpectedLengthError("TimeSignature", len(data))
		}
		return TimeSignature{
			Numerator:               data[0],
			Denominator:             binDecDenom(data[1]),
			ClocksPerClick:          data[2],
			ThirtySecondsPerQuarter: data[3],
		}, nil
	case metaKeySignature:
		data, err := ioutil.ReadVarLengthData(r)
		if err != nil {
			return nil, err
		}
		if len(data) != 2 {
			return nil, ioutil.UnexpectedLengthError("KeySignature", len(data))
		}
		return KeySignature{SharpsOrFlats: int8(data[0]), Minor: data[1] != 0}, nil
	case metaSequencerSpecific:
		data, err := ioutil.ReadVarLengthData(r)
		if err != nil {
			return nil, err
		}
		return SequencerSpecific{Data: data}, nil
	case metaXMFPatchType:
		return readLen1(r, metaXMFPatchType, "XMFPatchTypePrefix", func(b byte) MetaEvent { return XMFPatchTypePrefix{PatchType: b} })
	default:
		data, err := ioutil.ReadVarLengthData(r)
		if err != nil {
			return nil, err
		}
		return UnrecognizedMeta{MetaType: typ, Data: data}, nil
	}
}

func readLen1(r io.Reader, typ byte, name string, build func(byte) MetaEvent) (MetaEvent, error) {
	data, err := ioutil.ReadVarLengthData(r)
	if err != nil {
		return nil, err
	}
	if len(data) != 1 {
		return nil, ioutil.UnexpectedLengthError(name, len(data))
	}
	return build(data[0]), nil
}

func readSequenceNumber(r io.Reader) (MetaEvent, error) {
	n, err := ioutil.ReadVarLength(r)
	if err != nil {
		return nil, err
	}
	switch n {
	case 0:
		return SequenceNumber{}, nil
	case 2:
		data, err := ioutil.ReadFull(r, 2)
		if err != nil {
			return nil, err
		}
		return SequenceNumber{Number: uint16(data[0])<<8 | uint16(data[1]), HasNumber: true}, nil
	default:
		return nil, ioutil.UnexpectedLengthError("SequenceNumber", int(n))
	}
}

func readSMPTEOffset(r io.Reader) (MetaEvent, error) {
	data, err := ioutil.ReadVarLengthData(r)
	if err != nil {
		return nil, err
	}
	if len(data) != 5 {
		return nil, ioutil.UnexpectedLengthError("SMPTEOffset", len(data))
	}
	rr := data[0] >> 5
	hours := data[0] & 0x1F
	var fps FPS
	switch rr {
	case 0x00:
		fps = FPS24
	case 0x01:
		fps = FPS25
	case 0x02:
		fps = FPS29Drop
	default:
		fps = FPS30
	}
	frames := data[3]
	clamped := false
	if max := fps.maxFrame(); frames >= max {
		frames = max - 1
		clamped = true
	}
	return SMPTEOffset{
		Hours: hours, Minutes: data[1], Seconds: data[2],
		Frames: frames, Subframes: data[4], FPS: fps, Clamped: clamped,
	}, nil
}
