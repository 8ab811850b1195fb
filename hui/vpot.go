package hui

import "github.com/PKsong/MIDIKit/event"

// VPotDisplayMode selects how a V-Pot's 11-LED ring fills for a given
// position.
type VPotDisplayMode uint8

const (
	VPotAllOff VPotDisplayMode = iota
	VPotSingle
	VPotLeftAnchor
	VPotCenterAnchor
	VPotCenterRadius
)

func (m VPotDisplayMode) String() string {
	switch m {
	case VPotAllOff:
		return "AllOff"
	case VPotSingle:
		return "Single"
	case VPotLeftAnchor:
		return "LeftAnchor"
	case VPotCenterAnchor:
		return "CenterAnchor"
	case VPotCenterRadius:
		return "CenterRadius"
	default:
		return "Unknown"
	}
}

// VPotDisplay is a V-Pot ring's display state: a mode plus, for every
// mode but AllOff, a unit-interval position.
type VPotDisplay struct {
	Mode VPotDisplayMode
	Unit float64
}

// ringPositions is the number of addressable LED ring positions; the
// wire byte packs mode (high 3 bits) and position (low 4 bits) into one
// byte, leaving room for the 0x0..0xC index range (0xC reserved for
// the input-only scroll encoder, which carries
// no ring at all and is represented by the zero-value VPotDisplay on a
// channel this library never renders a ring byte for).
const ringPositions = 11

// RingByte renders d as the single LED-ring status byte a HUI surface
// expects, quantizing Unit monotonically onto the 11 ring positions.
func RingByte(d VPotDisplay) byte {
	if d.Mode == VPotAllOff {
		return 0
	}
	pos := int(d.Unit*float64(ringPositions-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos > ringPositions-1 {
		pos = ringPositions - 1
	}
	return byte(d.Mode)<<4 | byte(pos)
}

// ParseRingByte inverts RingByte.
func ParseRingByte(b byte) (VPotDisplay, error) {
	mode := VPotDisplayMode(b >> 4)
	if mode > VPotCenterRadius {
		return VPotDisplay{}, event.NewMalformed(0, "unrecognized V-Pot display mode")
	}
	if mode == VPotAllOff {
		return VPotDisplay{Mode: VPotAllOff}, nil
	}
	pos := b & 0x0F
	if int(pos) > ringPositions-1 {
		return VPotDisplay{}, event.NewMalformed(0, "V-Pot ring position out of range")
	}
	return VPotDisplay{Mode: mode, Unit: float64(pos) / float64(ringPositions-1)}, nil
}

// ApplyDelta moves d's Unit by delta 1/15ths of full scale (a V-Pot's
// sign/magnitude CC carries at most 15 detents per message), clamped to
// [0.0, 1.0]. AllOff is left unchanged: a delta alone never turns a ring on.
func (d VPotDisplay) ApplyDelta(delta int8) VPotDisplay {
	if d.Mode == VPotAllOff {
		return d
	}
	next := d.Unit + float64(delta)/15.0
	if next < 0 {
		next = 0
	}
	if next > 1 {
		next = 1
	}
	return VPotDisplay{Mode: d.Mode, Unit: next}
}
