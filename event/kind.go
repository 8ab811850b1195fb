package event

// Kind discriminates the variants of Event. Event is a single tagged
// struct rather than an interface-per-variant hierarchy because the
// round-trip guarantees this library makes need a stable notion of value
// equality across every codec, which a pointer/interface sum type does
// not give for free.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Channel voice
	KindNoteOn
	KindNoteOff
	KindNoteCC
	KindNotePitchBend
	KindNotePressure
	KindNoteManagement
	KindCC
	KindProgramChange
	KindPitchBend
	KindPressure
	KindRPN
	KindNRPN

	// System common
	KindTimecodeQuarterFrame
	KindSongPositionPointer
	KindSongSelect
	KindTuneRequest

	// System real-time
	KindTimingClock
	KindStart
	KindContinue
	KindStop
	KindActiveSensing
	KindSystemReset

	// System exclusive
	KindSysEx7
	KindUniversalSysEx7
	KindSysEx8
	KindUniversalSysEx8

	// Utility (MIDI 2 only)
	KindNoOp
	KindJRClock
	KindJRTimestamp

	// KindUnrecognizedUMP carries a UMP message whose message type this
	// library does not interpret (flex data MT 0xD, stream messages
	// MT 0xF): passed through verbatim rather than rejected.
	KindUnrecognizedUMP
)

var kindNames = [...]string{
	KindInvalid:              "Invalid",
	KindNoteOn:               "NoteOn",
	KindNoteOff:              "NoteOff",
	KindNoteCC:               "NoteCC",
	KindNotePitchBend:        "NotePitchBend",
	KindNotePressure:         "NotePressure",
	KindNoteManagement:       "NoteManagement",
	KindCC:                   "CC",
	KindProgramChange:        "ProgramChange",
	KindPitchBend:            "PitchBend",
	KindPressure:             "Pressure",
	KindRPN:                  "RPN",
	KindNRPN:                 "NRPN",
	KindTimecodeQuarterFrame: "TimecodeQuarterFrame",
	KindSongPositionPointer:  "SongPositionPointer",
	KindSongSelect:           "SongSelect",
	KindTuneRequest:          "TuneRequest",
	KindTimingClock:          "TimingClock",
	KindStart:                "Start",
	KindContinue:             "Continue",
	KindStop:                 "Stop",
	KindActiveSensing:        "ActiveSensing",
	KindSystemReset:          "SystemReset",
	KindSysEx7:               "SysEx7",
	KindUniversalSysEx7:      "UniversalSysEx7",
	KindSysEx8:               "SysEx8",
	KindUniversalSysEx8:      "UniversalSysEx8",
	KindNoOp:                 "NoOp",
	KindJRClock:              "JRClock",
	KindJRTimestamp:          "JRTimestamp",
	KindUnrecognizedUMP:      "UnrecognizedUMP",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsChannelVoice reports whether k carries a channel number.
func (k Kind) IsChannelVoice() bool {
	return k >= KindNoteOn && k <= KindNRPN
}

// IsSystemRealTime reports whether k is a MIDI 1.0 system real-time message.
func (k Kind) IsSystemRealTime() bool {
	return k >= KindTimingClock && k <= KindSystemReset
}

// IsUtility reports whether k is a MIDI 2.0-only utility message.
func (k Kind) IsUtility() bool {
	return k >= KindNoOp && k <= KindJRTimestamp
}
