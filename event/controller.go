package event

import (
	"fmt"

	"github.com/PKsong/MIDIKit/value"
)

// Controller is a MIDI 1.0/2.0 continuous controller number (CC 0-127).
// Every number is representable (it carries a raw fallback for fidelity
// round-tripping of unnamed or reserved numbers); the named constants below
// exist purely for readability at call sites.
type Controller value.U7

// Named controllers (CC 0-31 are MSB of a 14-bit pair, 32-63 their LSBs,
// 64-95 single-byte switches/effects, 96-101 (N)RPN control, 120-127 channel
// mode messages).
const (
	ControllerBankSelect          Controller = 0
	ControllerModulationWheel     Controller = 1
	ControllerBreathController    Controller = 2
	ControllerFootController      Controller = 4
	ControllerPortamentoTime      Controller = 5
	ControllerDataEntryMSB        Controller = 6
	ControllerChannelVolume       Controller = 7
	ControllerBalance             Controller = 8
	ControllerPan                 Controller = 10
	ControllerExpression          Controller = 11
	ControllerEffectControl1      Controller = 12
	ControllerEffectControl2      Controller = 13
	ControllerGeneralPurpose1     Controller = 16
	ControllerGeneralPurpose2     Controller = 17
	ControllerGeneralPurpose3     Controller = 18
	ControllerGeneralPurpose4     Controller = 19
	ControllerBankSelectLSB       Controller = 32
	ControllerModulationWheelLSB  Controller = 33
	ControllerDataEntryLSB        Controller = 38
	ControllerSustainPedal        Controller = 64
	ControllerPortamentoSwitch    Controller = 65
	ControllerSostenutoPedal      Controller = 66
	ControllerSoftPedal           Controller = 67
	ControllerLegatoFootswitch    Controller = 68
	ControllerHold2               Controller = 69
	ControllerSoundController1    Controller = 70 // sound variation
	ControllerSoundController2    Controller = 71 // timbre/harmonic intensity
	ControllerSoundController3    Controller = 72 // release time
	ControllerSoundController4    Controller = 73 // attack time
	ControllerSoundController5    Controller = 74 // brightness
	ControllerPortamentoControl   Controller = 84
	ControllerEffects1Depth       Controller = 91 // reverb send
	ControllerEffects2Depth       Controller = 92 // tremolo depth
	ControllerEffects3Depth       Controller = 93 // chorus send
	ControllerEffects4Depth       Controller = 94 // celeste depth
	ControllerEffects5Depth       Controller = 95 // phaser depth
	ControllerDataIncrement       Controller = 96
	ControllerDataDecrement       Controller = 97
	ControllerNRPNLSB             Controller = 98
	ControllerNRPNMSB             Controller = 99
	ControllerRPNLSB              Controller = 100
	ControllerRPNMSB              Controller = 101
	ControllerAllSoundOff         Controller = 120
	ControllerResetAllControllers Controller = 121
	ControllerLocalControl        Controller = 122
	ControllerAllNotesOff         Controller = 123
	ControllerOmniModeOff         Controller = 124
	ControllerOmniModeOn          Controller = 125
	ControllerMonoModeOn          Controller = 126
	ControllerPolyModeOn          Controller = 127
)

var controllerNames = map[Controller]string{
	ControllerBankSelect:          "Bank Select",
	ControllerModulationWheel:     "Modulation Wheel",
	ControllerBreathController:    "Breath Controller",
	ControllerFootController:      "Foot Controller",
	ControllerPortamentoTime:      "Portamento Time",
	ControllerDataEntryMSB:        "Data Entry MSB",
	ControllerChannelVolume:       "Channel Volume",
	ControllerBalance:             "Balance",
	ControllerPan:                 "Pan",
	ControllerExpression:          "Expression",
	ControllerEffectControl1:      "Effect Control 1",
	ControllerEffectControl2:      "Effect Control 2",
	ControllerGeneralPurpose1:     "General Purpose 1",
	ControllerGeneralPurpose2:     "General Purpose 2",
	ControllerGeneralPurpose3:     "General Purpose 3",
	ControllerGeneralPurpose4:     "General Purpose 4",
	ControllerBankSelectLSB:       "Bank Select LSB",
	ControllerModulationWheelLSB:  "Modulation Wheel LSB",
	ControllerDataEntryLSB:        "Data Entry LSB",
	ControllerSustainPedal:        "Sustain Pedal",
	ControllerPortamentoSwitch:    "Portamento Switch",
	ControllerSostenutoPedal:      "Sostenuto Pedal",
	ControllerSoftPedal:           "Soft Pedal",
	ControllerLegatoFootswitch:    "Legato Footswitch",
	ControllerHold2:               "Hold 2",
	ControllerSoundController1:    "Sound Controller 1",
	ControllerSoundController2:    "Sound Controller 2",
	ControllerSoundController3:    "Sound Controller 3",
	ControllerSoundController4:    "Sound Controller 4",
	ControllerSoundController5:    "Sound Controller 5",
	ControllerPortamentoControl:   "Portamento Control",
	ControllerEffects1Depth:       "Effects 1 Depth",
	ControllerEffects2Depth:       "Effects 2 Depth",
	ControllerEffects3Depth:       "Effects 3 Depth",
	ControllerEffects4Depth:       "Effects 4 Depth",
	ControllerEffects5Depth:       "Effects 5 Depth",
	ControllerDataIncrement:       "Data Increment",
	ControllerDataDecrement:       "Data Decrement",
	ControllerNRPNLSB:             "NRPN LSB",
	ControllerNRPNMSB:             "NRPN MSB",
	ControllerRPNLSB:              "RPN LSB",
	ControllerRPNMSB:              "RPN MSB",
	ControllerAllSoundOff:         "All Sound Off",
	ControllerResetAllControllers: "Reset All Controllers",
	ControllerLocalControl:        "Local Control",
	ControllerAllNotesOff:         "All Notes Off",
	ControllerOmniModeOff:         "Omni Mode Off",
	ControllerOmniModeOn:          "Omni Mode On",
	ControllerMonoModeOn:          "Mono Mode On",
	ControllerPolyModeOn:          "Poly Mode On",
}

// String returns the named controller label, or a raw "CC n" fallback for
// reserved/unnamed numbers.
func (c Controller) String() string {
	if name, ok := controllerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CC %d", value.U7(c))
}

// Number returns the raw CC number.
func (c Controller) Number() value.U7 { return value.U7(c) }

// PerNoteController is a MIDI 2.0 per-note controller number. It shares
// Controller's numbering (CC 0-127) but is modulated per-note rather than
// per-channel.
type PerNoteController = Controller

// IsMSBPair reports whether c is one of the CC 0-31 controllers whose LSB
// companion lives at c+32, the pairing the 14-bit CC combiner (event.CC14Combiner)
// reconstructs.
func (c Controller) IsMSBPair() bool {
	return c <= 31
}
