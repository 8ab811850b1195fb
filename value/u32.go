package value

// U32 is an unsigned integer confined to the full uint32 range: MIDI 2.0
// channel-voice payloads (pitch bend, per-note pitch bend, RPN/NRPN data)
// that occupy an entire UMP data word.
type U32 uint32

const maxU32 = 0xFFFFFFFF

// NewU32 never panics (uint32 input always fits); provided for symmetry.
func NewU32(raw uint32) U32 { return U32(raw) }

// ClampU32 is the identity function for uint32 input; provided for symmetry.
func ClampU32(raw uint32) U32 { return U32(raw) }

// TruncateU32 is the identity function for uint32 input; provided for symmetry.
func TruncateU32(raw uint32) U32 { return U32(raw) }

// TryU32 always succeeds for uint32 input; provided for symmetry.
func TryU32(raw uint32) (U32, bool) { return U32(raw), true }

// AsU32 is the identity conversion.
func (v U32) AsU32() uint32 { return uint32(v) }

// Float returns v on the unit interval [0.0, 1.0].
func (v U32) Float() float64 { return float64(v) / float64(maxU32) }

func (v U32) String() string { return fmtUint(uint64(v)) }
