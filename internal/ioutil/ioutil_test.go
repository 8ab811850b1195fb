package ioutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVLQBijection(t *testing.T) {
	cases := []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFF, 0x200000, 0x0FFFFFFF}
	for _, n := range cases {
		enc := EncodeVarLength(n)
		got, err := ReadVarLength(bytes.NewReader(enc))
		require.NoError(t, err)
		assert.Equal(t, n, got, "round-trip %d", n)
	}
}

func TestVLQZeroLengthOne(t *testing.T) {
	assert.Equal(t, []byte{0}, EncodeVarLength(0))
}

func TestVLQLengthMatchesBitWidth(t *testing.T) {
	assert.Len(t, EncodeVarLength(0x7F), 1)
	assert.Len(t, EncodeVarLength(0x80), 2)
	assert.Len(t, EncodeVarLength(0x3FFF), 2)
	assert.Len(t, EncodeVarLength(0x4000), 3)
	assert.Len(t, EncodeVarLength(0x1FFFFF), 3)
	assert.Len(t, EncodeVarLength(0x200000), 4)
}

func TestReadVarLengthTooLong(t *testing.T) {
	// Four continuation bytes: never terminates within MaxVLQBytes.
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x00}
	_, err := ReadVarLength(bytes.NewReader(buf))
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	typ, ch := ParseStatus(0x91)
	assert.Equal(t, uint8(0x9), typ)
	assert.Equal(t, uint8(0x1), ch)
}
