package event

import "github.com/PKsong/MIDIKit/value"

// Width records which protocol width a Value was produced at, so it can be
// converted back losslessly to the protocol that asked for it instead of
// always rescaling through a lossy common denominator.
type Width uint8

const (
	// Width7 marks a value carried natively as a MIDI 1.0 7-bit data byte.
	Width7 Width = iota
	// Width16 marks a value carried natively as a MIDI 2.0 16-bit field.
	Width16
	// Width32 marks a value carried natively as a MIDI 2.0 32-bit field.
	Width32
)

// Value is the protocol-agnostic payload used by velocity, pressure, CC and
// bend fields: it holds whichever width produced it and converts losslessly
// to whatever width the caller requests.
type Value struct {
	raw   value.U32
	width Width
}

// NewValue7 builds a Value from a MIDI 1.0 7-bit quantity.
func NewValue7(v value.U7) Value {
	return Value{raw: value.U32(v), width: Width7}
}

// NewValue16 builds a Value from a MIDI 2.0 16-bit quantity.
func NewValue16(v value.U16) Value {
	return Value{raw: value.U32(v), width: Width16}
}

// NewValue32 builds a Value from a MIDI 2.0 32-bit quantity.
func NewValue32(v value.U32) Value {
	return Value{raw: v, width: Width32}
}

// Width reports which protocol width produced this Value.
func (v Value) Width() Width { return v.width }

// AsU7 converts to a MIDI 1.0 7-bit quantity, scaling down if necessary.
func (v Value) AsU7() value.U7 {
	switch v.width {
	case Width7:
		return value.U7(v.raw)
	case Width16:
		return value.ScaleU16ToU7(value.U16(v.raw))
	default:
		return value.ScaleU32ToU7(v.raw)
	}
}

// As16 converts to a MIDI 2.0 16-bit quantity, scaling up or down if necessary.
func (v Value) As16() value.U16 {
	switch v.width {
	case Width7:
		return value.ScaleU7ToU16(value.U7(v.raw))
	case Width16:
		return value.U16(v.raw)
	default:
		return value.U16(value.Scale(uint64(v.raw), 32, 16))
	}
}

// As32 converts to a MIDI 2.0 32-bit quantity, scaling up if necessary.
func (v Value) As32() value.U32 {
	switch v.width {
	case Width7:
		return value.ScaleU7ToU32(value.U7(v.raw))
	case Width16:
		return value.U32(value.Scale(uint64(v.raw), 16, 32))
	default:
		return v.raw
	}
}

// Equal reports whether v and o denote the same position on their shared
// scale. Same-width values compare raw; mixed-width values compare at the
// wider of the two widths, which is exact for every value a codec in this
// module produces (decoders re-derive a value at the wire's native width,
// and up-scaling a narrower original lands on the same point).
func (v Value) Equal(o Value) bool {
	if v.width == o.width {
		return v.raw == o.raw
	}
	w := v.width
	if o.width > w {
		w = o.width
	}
	if w == Width16 {
		return v.As16() == o.As16()
	}
	return v.As32() == o.As32()
}

// Float returns the value on the unit interval [0.0, 1.0] regardless of
// which width produced it.
func (v Value) Float() float64 {
	switch v.width {
	case Width7:
		return value.U7(v.raw).Float()
	case Width16:
		return value.U16(v.raw).Float()
	default:
		return v.raw.Float()
	}
}
