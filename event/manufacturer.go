package event

// ManufacturerID identifies the owner of a system-exclusive message: either
// a single byte in 0x01-0x7D (0x7E and 0x7F are reserved for the Universal
// Non-Realtime/Realtime pseudo-manufacturers and are rejected here — they
// are represented instead by the dedicated UniversalSysEx7/8 event kinds),
// or the three-byte extended form 0x00 msb lsb.
type ManufacturerID struct {
	extended bool
	id0      byte
	msb      byte
	lsb      byte
}

// NewManufacturerID1 builds a one-byte manufacturer ID. It returns
// OutOfRange for 0x00 (which signals the extended form), 0x7E and 0x7F
// (reserved for Universal Non-Realtime/Realtime), and anything >= 0x80.
func NewManufacturerID1(id byte) (ManufacturerID, error) {
	if id == 0x00 || id == 0x7E || id == 0x7F || id >= 0x80 {
		return ManufacturerID{}, NewOutOfRange("ManufacturerID", int64(id), 0x7D)
	}
	return ManufacturerID{id0: id}, nil
}

// NewManufacturerID3 builds a three-byte extended manufacturer ID
// (0x00 msb lsb).
func NewManufacturerID3(msb, lsb byte) (ManufacturerID, error) {
	if msb >= 0x80 || lsb >= 0x80 {
		return ManufacturerID{}, NewOutOfRange("ManufacturerID", int64(msb)<<8|int64(lsb), 0x7F7F)
	}
	return ManufacturerID{extended: true, id0: 0x00, msb: msb, lsb: lsb}, nil
}

// Extended reports whether this is a three-byte manufacturer ID.
func (m ManufacturerID) Extended() bool { return m.extended }

// Bytes returns the wire encoding: one byte, or three (0x00 msb lsb).
func (m ManufacturerID) Bytes() []byte {
	if m.extended {
		return []byte{0x00, m.msb, m.lsb}
	}
	return []byte{m.id0}
}

// ParseManufacturerID reads a manufacturer ID from the start of b, returning
// the ID and the number of bytes consumed (1 or 3).
func ParseManufacturerID(b []byte) (ManufacturerID, int, error) {
	if len(b) == 0 {
		return ManufacturerID{}, 0, NewMalformed(0, "empty manufacturer ID")
	}
	if b[0] != 0x00 {
		id, err := NewManufacturerID1(b[0])
		return id, 1, err
	}
	if len(b) < 3 {
		return ManufacturerID{}, 0, NewMalformed(0, "truncated extended manufacturer ID")
	}
	id, err := NewManufacturerID3(b[1], b[2])
	return id, 3, err
}

func (m ManufacturerID) String() string {
	if m.extended {
		return formatHex3(m.id0, m.msb, m.lsb)
	}
	return formatHex1(m.id0)
}

func formatHex1(b byte) string {
	const hexDigits = "0123456789ABCDEF"
	return string([]byte{'0', 'x', hexDigits[b>>4], hexDigits[b&0xF]})
}

func formatHex3(a, b, c byte) string {
	return formatHex1(a) + " " + formatHex1(b) + " " + formatHex1(c)
}
