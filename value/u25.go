package value

// U25 is an unsigned integer confined to [0, 0x1FFFFFF]: the MIDI 2.0
// per-note pitch-bend and per-note management payload width used
// internally by NRPN/RPN 25-bit combination in some MIDI 2.0 profiles.
type U25 uint32

const maxU25 = 0x1FFFFFF

// NewU25 panics if raw does not fit in 25 bits.
func NewU25(raw uint32) U25 {
	if raw > maxU25 {
		panic(outOfRange("U25", int64(raw), maxU25))
	}
	return U25(raw)
}

// ClampU25 saturates raw to the representable range.
func ClampU25(raw uint32) U25 {
	if raw > maxU25 {
		return maxU25
	}
	return U25(raw)
}

// TruncateU25 keeps only the low 25 bits of raw.
func TruncateU25(raw uint32) U25 {
	return U25(raw & maxU25)
}

// TryU25 reports whether raw fits in 25 bits.
func TryU25(raw uint32) (U25, bool) {
	if raw > maxU25 {
		return 0, false
	}
	return U25(raw), true
}

// AsU32 widens the value without loss.
func (v U25) AsU32() uint32 { return uint32(v) }

// Float returns v on the unit interval [0.0, 1.0].
func (v U25) Float() float64 { return float64(v) / float64(maxU25) }

func (v U25) String() string { return fmtUint(uint64(v)) }
