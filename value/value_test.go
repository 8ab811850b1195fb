package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestU7PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { NewU7(0x80) })
	assert.NotPanics(t, func() { NewU7(0x7F) })
}

func TestU7ClampTruncateTry(t *testing.T) {
	assert.Equal(t, U7(0x7F), ClampU7(0xFF))
	assert.Equal(t, U7(0x7F), TruncateU7(0xFF))
	_, ok := TryU7(0xFF)
	assert.False(t, ok)
	v, ok := TryU7(0x40)
	assert.True(t, ok)
	assert.Equal(t, U7(0x40), v)
}

func TestU14PairRoundTrip(t *testing.T) {
	for _, v := range []U14{0, 1, 0x2000, 0x3FFF, 0x1234} {
		p := v.IntoPair()
		assert.Equal(t, v, p.U14())
	}
	assert.Equal(t, U14(0x2000), FromPair14(0x40, 0x00))
}

func TestScaleZeroAndMaxExact(t *testing.T) {
	assert.Equal(t, uint64(0), Scale(0, 7, 16))
	assert.Equal(t, uint64(0xFFFF), Scale(0x7F, 7, 16))
	assert.Equal(t, uint64(0), Scale(0, 7, 32))
	assert.Equal(t, uint64(0xFFFFFFFF), Scale(0x7F, 7, 32))
}

func TestScaleCenterExact(t *testing.T) {
	// 7-bit centre (64) maps exactly to 16-bit centre (32768).
	assert.Equal(t, uint64(0x8000), Scale(0x40, 7, 16))
}

func TestScaleDownIsTruncation(t *testing.T) {
	assert.Equal(t, uint64(0), Scale(0, 16, 7))
	assert.Equal(t, uint64(0x7F), Scale(0xFFFF, 16, 7))
}

func TestScaleU7U16RoundTripBoundaries(t *testing.T) {
	assert.Equal(t, U16(0), ScaleU7ToU16(0))
	assert.Equal(t, U16(0xFFFF), ScaleU7ToU16(0x7F))
	assert.Equal(t, U7(0), ScaleU16ToU7(0))
	assert.Equal(t, U7(0x7F), ScaleU16ToU7(0xFFFF))
}
