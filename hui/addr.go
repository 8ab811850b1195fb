// Package hui implements the Mackie HUI control-surface protocol layered
// over MIDI 1.0 channel voice and system-exclusive messages: a zone/port
// addressing table, switch/fader/V-Pot/LCD wire codecs, the keep-alive
// ping handshake, and a surface-model state store with change
// notifications.
package hui

import "github.com/PKsong/MIDIKit/value"

// Addr is a HUI switch address: a zone selects a group of up to 8
// related controls, a port selects which one within the zone.
type Addr struct {
	Zone value.U7
	Port value.U4
}

// Section partitions the switch address space into the named control
// groups the HUI front panel is laid out as.
type Section uint8

const (
	SectionUndefined Section = iota
	SectionAssign
	SectionAutoEnable
	SectionAutoMode
	SectionBankMove
	SectionControlRoom
	SectionCursor
	SectionEdit
	SectionFunctionKey
	SectionHotKey
	SectionNumPad
	SectionParamEdit
	SectionStatusAndGroup
	SectionTransport
	SectionWindow
	SectionChannelStrip
)

func (s Section) String() string {
	names := [...]string{
		"Undefined", "Assign", "AutoEnable", "AutoMode", "BankMove",
		"ControlRoom", "Cursor", "Edit", "FunctionKey", "HotKey", "NumPad",
		"ParamEdit", "StatusAndGroup", "Transport", "Window", "ChannelStrip",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Undefined"
}

// Switch is one named, addressable HUI front-panel control.
type Switch struct {
	Addr    Addr
	Section Section
	Name    string
}

// UndefinedSwitch holds a (zone, port, state) triple for a pair this table
// doesn't name. Neither Lookup nor the decoder produces it: an unnamed pair
// decodes to a SwitchMessage whose Addr Lookup reports as unknown.
type UndefinedSwitch struct {
	Zone  value.U7
	Port  value.U4
	State bool
}

// switchTable maps every named (zone, port) pair this library knows
// about to its Switch. It is a representative slice of the full HUI
// control surface rather than an exhaustive 128x16 table: every named
// Section has at least one member, and Lookup reports (Switch{}, false)
// for anything missing.
var switchTable = buildSwitchTable()

type switchSeed struct {
	zone, port uint8
	section    Section
	name       string
}

func buildSwitchTable() map[Addr]Switch {
	seeds := []switchSeed{
		// Transport
		{0x0E, 0, SectionTransport, "Rewind"},
		{0x0E, 1, SectionTransport, "FastForward"},
		{0x0E, 2, SectionTransport, "Stop"},
		{0x0E, 3, SectionTransport, "Play"},
		{0x0E, 4, SectionTransport, "Record"},
		// Cursor / navigation
		{0x0F, 0, SectionCursor, "Up"},
		{0x0F, 1, SectionCursor, "Down"},
		{0x0F, 2, SectionCursor, "Left"},
		{0x0F, 3, SectionCursor, "Right"},
		// Bank/channel move
		{0x0D, 0, SectionBankMove, "ChannelLeft"},
		{0x0D, 1, SectionBankMove, "ChannelRight"},
		{0x0D, 2, SectionBankMove, "BankLeft"},
		{0x0D, 3, SectionBankMove, "BankRight"},
		// Assign section (the 6-character function row above the strips)
		{0x0A, 0, SectionAssign, "Output"},
		{0x0A, 1, SectionAssign, "Input"},
		{0x0A, 2, SectionAssign, "Pan"},
		{0x0A, 3, SectionAssign, "SendA"},
		// Auto enable (automation write-mode toggles)
		{0x0B, 0, SectionAutoEnable, "Fader"},
		{0x0B, 1, SectionAutoEnable, "Pan"},
		{0x0B, 2, SectionAutoEnable, "Mute"},
		// Auto mode (automation playback mode)
		{0x0C, 0, SectionAutoMode, "Trim"},
		{0x0C, 1, SectionAutoMode, "Latch"},
		{0x0C, 2, SectionAutoMode, "Read"},
		{0x0C, 3, SectionAutoMode, "Write"},
		// Control room monitoring
		{0x02, 0, SectionControlRoom, "Mono"},
		{0x02, 1, SectionControlRoom, "Dim"},
		// Edit / function keys
		{0x09, 0, SectionEdit, "Undo"},
		{0x09, 1, SectionEdit, "Cut"},
		{0x09, 2, SectionEdit, "Copy"},
		{0x09, 3, SectionEdit, "Paste"},
		{0x08, 0, SectionFunctionKey, "F1"},
		{0x08, 1, SectionFunctionKey, "F2"},
		{0x08, 2, SectionFunctionKey, "F3"},
		{0x08, 3, SectionFunctionKey, "F4"},
		// Hot keys / numeric keypad
		{0x07, 0, SectionHotKey, "Save"},
		{0x07, 1, SectionHotKey, "Revert"},
		{0x06, 0, SectionNumPad, "0"},
		{0x06, 1, SectionNumPad, "1"},
		{0x06, 2, SectionNumPad, "Enter"},
		{0x06, 3, SectionNumPad, "Clear"},
		// Parameter edit (plug-in editor nav)
		{0x05, 0, SectionParamEdit, "Insert"},
		{0x05, 1, SectionParamEdit, "Param"},
		// Status & group
		{0x03, 0, SectionStatusAndGroup, "AutoGlide"},
		{0x03, 1, SectionStatusAndGroup, "Group"},
		// Window
		{0x04, 0, SectionWindow, "Mix"},
		{0x04, 1, SectionWindow, "Edit"},
		{0x04, 2, SectionWindow, "Transport"},
		// Channel strip: Select/Mute/Solo per strip 0-7
		{0x18, 0, SectionChannelStrip, "Select0"},
		{0x18, 1, SectionChannelStrip, "Select1"},
		{0x18, 2, SectionChannelStrip, "Select2"},
		{0x18, 3, SectionChannelStrip, "Select3"},
		{0x19, 0, SectionChannelStrip, "Mute0"},
		{0x19, 1, SectionChannelStrip, "Mute1"},
		{0x19, 2, SectionChannelStrip, "Mute2"},
		{0x19, 3, SectionChannelStrip, "Mute3"},
		{0x1A, 0, SectionChannelStrip, "Solo0"},
		{0x1A, 1, SectionChannelStrip, "Solo1"},
		{0x1A, 2, SectionChannelStrip, "Solo2"},
		{0x1A, 3, SectionChannelStrip, "Solo3"},
	}
	table := make(map[Addr]Switch, len(seeds))
	for _, s := range seeds {
		addr := Addr{Zone: value.U7(s.zone), Port: value.U4(s.port)}
		table[addr] = Switch{Addr: addr, Section: s.section, Name: s.name}
	}
	return table
}

// Lookup resolves addr against the known switch table.
func Lookup(addr Addr) (Switch, bool) {
	sw, ok := switchTable[addr]
	return sw, ok
}
