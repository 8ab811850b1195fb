package value

// U16 is an unsigned integer confined to [0, 0xFFFF]: MIDI 2.0's JR clock
// and JR timestamp fields, and the "novel 16-bit" value width used by some
// MIDI 2.0 channel-voice payloads.
type U16 uint16

const maxU16 = 0xFFFF

// NewU16 never panics (uint16 already fits 16 bits); provided for symmetry
// with the other width constructors.
func NewU16(raw uint16) U16 { return U16(raw) }

// ClampU16 is the identity function for uint16 input; provided for symmetry.
func ClampU16(raw uint16) U16 { return U16(raw) }

// TruncateU16 is the identity function for uint16 input; provided for symmetry.
func TruncateU16(raw uint16) U16 { return U16(raw) }

// TryU16 always succeeds for uint16 input; provided for symmetry.
func TryU16(raw uint16) (U16, bool) { return U16(raw), true }

// AsU32 widens the value without loss.
func (v U16) AsU32() uint32 { return uint32(v) }

// Float returns v on the unit interval [0.0, 1.0].
func (v U16) Float() float64 { return float64(v) / float64(maxU16) }

func (v U16) String() string { return fmtUint(uint64(v)) }
