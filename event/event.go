// Package event implements the MIDI event model: a single tagged sum type
// covering every channel-voice, system-common, system-real-time,
// system-exclusive and utility message defined by MIDI 1.0 and MIDI 2.0.
package event

import (
	"bytes"

	"github.com/PKsong/MIDIKit/value"
)

// NoteAttributeType is the MIDI 2.0 per-note attribute type carried
// alongside a NoteOn/NoteOff's velocity.
type NoteAttributeType uint8

const (
	AttributeNone NoteAttributeType = iota
	AttributeManufacturerSpecific
	AttributeProfile
	AttributePitch79
)

// NoteAttribute is the optional MIDI 2.0 per-note attribute.
type NoteAttribute struct {
	Type NoteAttributeType
	Data value.U16
}

// Change distinguishes an absolute (N)RPN value from a relative (increment/
// decrement) one. The MIDI-2 status byte carries this as a single bit; it
// is preserved across round-trips even when the distinction is otherwise
// opaque to the host.
type Change uint8

const (
	ChangeAbsolute Change = iota
	ChangeRelative
)

// NoteManagementOptions are the flag bits carried by a MIDI 2.0
// Per-Note Management message.
type NoteManagementOptions struct {
	Detach bool
	Reset  bool
}

// SysExRealm distinguishes Universal Non-Realtime from Universal Realtime
// system-exclusive messages (first data byte 0x7E vs 0x7F).
type SysExRealm uint8

const (
	RealmNonRealtime SysExRealm = iota
	RealmRealtime
)

// RegisteredParameter names a well-known RPN parameter number
// (MSB, LSB of CC 101/100).
type RegisteredParameter = value.Pair7

var (
	RPNPitchBendSensitivity = RegisteredParameter{MSB: 0, LSB: 0}
	RPNFineTuning           = RegisteredParameter{MSB: 0, LSB: 1}
	RPNCoarseTuning         = RegisteredParameter{MSB: 0, LSB: 2}
	RPNTuningProgram        = RegisteredParameter{MSB: 0, LSB: 3}
	RPNTuningBank           = RegisteredParameter{MSB: 0, LSB: 4}
	RPNNull                 = RegisteredParameter{MSB: 0x7F, LSB: 0x7F}
)

// Event is the single tagged sum type covering every MIDI message this
// library represents. Kind selects which fields are meaningful; unused
// fields are left at their zero value. Construction helpers below
// (NoteOn, CC, ProgramChange, ...) are the supported way to build one —
// never allocate, and never panic except through the value package's own
// panicking constructors.
type Event struct {
	Kind    Kind
	Group   value.U4
	Channel value.U4

	Note      value.U7
	Velocity  Value
	Attribute NoteAttribute
	HasAttribute bool

	PerNoteController PerNoteController
	NoteManagement    NoteManagementOptions

	Controller Controller
	Value      Value

	Program  value.U7
	Bank     value.U14
	HasBank  bool

	Parameter  value.Pair7
	ParamValue Value
	Change     Change

	DataByte value.U7
	Beat     value.U14
	Number   value.U7

	Manufacturer ManufacturerID
	Realm        SysExRealm
	DeviceID     value.U7
	SubID1       value.U7
	SubID2       value.U7
	Data         []byte
	StreamID     byte

	Time value.U16
}

// Equal reports whether a and b represent the same MIDI event. Event is
// not compared with == because Data is a byte slice; this method is the
// value-equality notion every codec's round-trip tests rely on.
func (a Event) Equal(b Event) bool {
	if a.Kind != b.Kind || a.Group != b.Group || a.Channel != b.Channel {
		return false
	}
	switch a.Kind {
	case KindNoteOn, KindNoteOff:
		return a.Note == b.Note && a.Velocity.Equal(b.Velocity) &&
			a.HasAttribute == b.HasAttribute && a.Attribute == b.Attribute
	case KindNoteCC:
		return a.Note == b.Note && a.PerNoteController == b.PerNoteController && a.Value.Equal(b.Value)
	case KindNotePitchBend:
		return a.Note == b.Note && a.Value.Equal(b.Value)
	case KindNotePressure:
		return a.Note == b.Note && a.Velocity.Equal(b.Velocity)
	case KindNoteManagement:
		return a.Note == b.Note && a.NoteManagement == b.NoteManagement
	case KindCC:
		return a.Controller == b.Controller && a.Value.Equal(b.Value)
	case KindProgramChange:
		return a.Program == b.Program && a.HasBank == b.HasBank && a.Bank == b.Bank
	case KindPitchBend:
		return a.Value.Equal(b.Value)
	case KindPressure:
		return a.Velocity.Equal(b.Velocity)
	case KindRPN, KindNRPN:
		return a.Parameter == b.Parameter && a.ParamValue.Equal(b.ParamValue) && a.Change == b.Change
	case KindTimecodeQuarterFrame:
		return a.DataByte == b.DataByte
	case KindSongPositionPointer:
		return a.Beat == b.Beat
	case KindSongSelect:
		return a.Number == b.Number
	case KindTuneRequest, KindTimingClock, KindStart, KindContinue, KindStop,
		KindActiveSensing, KindSystemReset, KindNoOp:
		return true
	case KindSysEx7, KindSysEx8:
		return a.Manufacturer == b.Manufacturer && a.StreamID == b.StreamID && bytes.Equal(a.Data, b.Data)
	case KindUniversalSysEx7, KindUniversalSysEx8:
		return a.Realm == b.Realm && a.DeviceID == b.DeviceID && a.SubID1 == b.SubID1 &&
			a.SubID2 == b.SubID2 && a.StreamID == b.StreamID && bytes.Equal(a.Data, b.Data)
	case KindJRClock, KindJRTimestamp:
		return a.Time == b.Time
	case KindUnrecognizedUMP:
		return bytes.Equal(a.Data, b.Data)
	}
	return false
}

// NoteOn constructs a Note On event. MIDI-1 velocity zero is the wire
// encoding of Note Off; callers building a MIDI-1 stream should construct
// NoteOff directly instead when they mean "note off" (the midi1 decoder
// performs that normalization automatically on decode).
func NoteOn(group, channel value.U4, note value.U7, velocity Value) Event {
	return Event{Kind: KindNoteOn, Group: group, Channel: channel, Note: note, Velocity: velocity}
}

// NoteOnWithAttribute constructs a MIDI 2.0 Note On carrying a per-note attribute.
func NoteOnWithAttribute(group, channel value.U4, note value.U7, velocity Value, attr NoteAttribute) Event {
	e := NoteOn(group, channel, note, velocity)
	e.Attribute = attr
	e.HasAttribute = true
	return e
}

// NoteOff constructs a Note Off event.
func NoteOff(group, channel value.U4, note value.U7, velocity Value) Event {
	return Event{Kind: KindNoteOff, Group: group, Channel: channel, Note: note, Velocity: velocity}
}

// NoteCC constructs a MIDI 2.0 per-note controller (assignable/registered
// per-note CC) event.
func NoteCC(group, channel value.U4, note value.U7, controller PerNoteController, v Value) Event {
	return Event{Kind: KindNoteCC, Group: group, Channel: channel, Note: note, PerNoteController: controller, Value: v}
}

// NotePitchBend constructs a MIDI 2.0 per-note pitch bend event.
func NotePitchBend(group, channel value.U4, note value.U7, v value.U32) Event {
	return Event{Kind: KindNotePitchBend, Group: group, Channel: channel, Note: note, Value: NewValue32(v)}
}

// NotePressure constructs a MIDI 2.0 per-note (polyphonic) pressure event.
func NotePressure(group, channel value.U4, note value.U7, amount Value) Event {
	return Event{Kind: KindNotePressure, Group: group, Channel: channel, Note: note, Velocity: amount}
}

// NoteManagementEvent constructs a MIDI 2.0 Per-Note Management event.
func NoteManagementEvent(group, channel value.U4, note value.U7, opts NoteManagementOptions) Event {
	return Event{Kind: KindNoteManagement, Group: group, Channel: channel, Note: note, NoteManagement: opts}
}

// CC constructs a Control Change event.
func CC(group, channel value.U4, controller Controller, v Value) Event {
	return Event{Kind: KindCC, Group: group, Channel: channel, Controller: controller, Value: v}
}

// ProgramChange constructs a Program Change event.
func ProgramChange(group, channel value.U4, program value.U7) Event {
	return Event{Kind: KindProgramChange, Group: group, Channel: channel, Program: program}
}

// ProgramChangeWithBank constructs a Program Change event carrying a
// MIDI 2.0 bank-select pair.
func ProgramChangeWithBank(group, channel value.U4, program value.U7, bank value.U14) Event {
	return Event{Kind: KindProgramChange, Group: group, Channel: channel, Program: program, Bank: bank, HasBank: true}
}

// PitchBend constructs a channel Pitch Bend event.
func PitchBend(group, channel value.U4, v Value) Event {
	return Event{Kind: KindPitchBend, Group: group, Channel: channel, Value: v}
}

// Pressure constructs a channel (monophonic) Pressure/Aftertouch event.
func Pressure(group, channel value.U4, amount Value) Event {
	return Event{Kind: KindPressure, Group: group, Channel: channel, Velocity: amount}
}

// RPN constructs a Registered Parameter Number event.
func RPN(group, channel value.U4, parameter RegisteredParameter, v Value, change Change) Event {
	return Event{Kind: KindRPN, Group: group, Channel: channel, Parameter: parameter, ParamValue: v, Change: change}
}

// NRPN constructs a Non-Registered Parameter Number event.
func NRPN(group, channel value.U4, parameter value.Pair7, v Value, change Change) Event {
	return Event{Kind: KindNRPN, Group: group, Channel: channel, Parameter: parameter, ParamValue: v, Change: change}
}

// TimecodeQuarterFrame constructs a MIDI Time Code quarter-frame event.
func TimecodeQuarterFrame(group value.U4, dataByte value.U7) Event {
	return Event{Kind: KindTimecodeQuarterFrame, Group: group, DataByte: dataByte}
}

// SongPositionPointer constructs a Song Position Pointer event.
func SongPositionPointer(group value.U4, beat value.U14) Event {
	return Event{Kind: KindSongPositionPointer, Group: group, Beat: beat}
}

// SongSelect constructs a Song Select event.
func SongSelect(group value.U4, number value.U7) Event {
	return Event{Kind: KindSongSelect, Group: group, Number: number}
}

// TuneRequest constructs a Tune Request event.
func TuneRequest(group value.U4) Event { return Event{Kind: KindTuneRequest, Group: group} }

// TimingClock constructs a Timing Clock event.
func TimingClock(group value.U4) Event { return Event{Kind: KindTimingClock, Group: group} }

// Start constructs a Start event.
func Start(group value.U4) Event { return Event{Kind: KindStart, Group: group} }

// Continue constructs a Continue event.
func Continue(group value.U4) Event { return Event{Kind: KindContinue, Group: group} }

// Stop constructs a Stop event.
func Stop(group value.U4) Event { return Event{Kind: KindStop, Group: group} }

// ActiveSensing constructs an Active Sensing event.
func ActiveSensing(group value.U4) Event { return Event{Kind: KindActiveSensing, Group: group} }

// SystemReset constructs a System Reset event.
func SystemReset(group value.U4) Event { return Event{Kind: KindSystemReset, Group: group} }

// SysEx7 constructs a manufacturer system-exclusive event carrying 7-bit data.
func SysEx7(group value.U4, manufacturer ManufacturerID, data []byte) Event {
	return Event{Kind: KindSysEx7, Group: group, Manufacturer: manufacturer, Data: data}
}

// UniversalSysEx7 constructs a Universal (non-)realtime system-exclusive
// event carrying 7-bit data.
func UniversalSysEx7(group value.U4, realm SysExRealm, deviceID, subID1, subID2 value.U7, data []byte) Event {
	return Event{Kind: KindUniversalSysEx7, Group: group, Realm: realm, DeviceID: deviceID, SubID1: subID1, SubID2: subID2, Data: data}
}

// SysEx8 constructs a manufacturer system-exclusive event carrying 8-bit
// data over a UMP stream.
func SysEx8(group value.U4, streamID byte, manufacturer ManufacturerID, data []byte) Event {
	return Event{Kind: KindSysEx8, Group: group, StreamID: streamID, Manufacturer: manufacturer, Data: data}
}

// UniversalSysEx8 constructs a Universal system-exclusive event carrying
// 8-bit data over a UMP stream.
func UniversalSysEx8(group value.U4, streamID byte, realm SysExRealm, deviceID, subID1, subID2 value.U7, data []byte) Event {
	return Event{Kind: KindUniversalSysEx8, Group: group, StreamID: streamID, Realm: realm, DeviceID: deviceID, SubID1: subID1, SubID2: subID2, Data: data}
}

// UnrecognizedUMP constructs a passthrough event for a UMP message type
// this library does not interpret. wordBytes is the big-endian encoding of
// the original words, preserved verbatim for re-encoding.
func UnrecognizedUMP(group value.U4, wordBytes []byte) Event {
	return Event{Kind: KindUnrecognizedUMP, Group: group, Data: wordBytes}
}

// NoOp constructs a MIDI 2.0 no-op utility message.
func NoOp(group value.U4) Event { return Event{Kind: KindNoOp, Group: group} }

// JRClock constructs a MIDI 2.0 Jitter Reduction clock message.
func JRClock(group value.U4, t value.U16) Event { return Event{Kind: KindJRClock, Group: group, Time: t} }

// JRTimestamp constructs a MIDI 2.0 Jitter Reduction timestamp message.
func JRTimestamp(group value.U4, t value.U16) Event {
	return Event{Kind: KindJRTimestamp, Group: group, Time: t}
}
