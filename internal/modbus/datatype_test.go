package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKind(t *testing.T) {
	assert.Equal(t, KindBitfield, DecodeKind(DTBitfield))
	assert.Equal(t, KindEnumeration, DecodeKind(DTEnumeration))
	assert.Equal(t, KindString, DecodeKind(DTString))
	assert.Equal(t, KindBinaryPoint, DecodeKind(DTBinaryPointU6))
	assert.Equal(t, KindBinaryPoint, DecodeKind(DTBinaryPointS7))
}

func TestScaleOf(t *testing.T) {
	signed, scale := ScaleOf(DTBinaryPointU6)
	assert.False(t, signed)
	assert.Equal(t, 6, scale)

	signed, scale = ScaleOf(DTBinaryPointS7)
	assert.True(t, signed)
	assert.Equal(t, 7, scale)

	signed, scale = ScaleOf(DTBitfield)
	assert.False(t, signed)
	assert.Equal(t, 0, scale)
}

func TestSignExtendNegativeValue(t *testing.T) {
	// 0xFFFE as a 16-bit two's complement value is -2.
	assert.Equal(t, int64(-2), SignExtend(0xFFFE, 2))
}

func TestSignExtendPositiveValue(t *testing.T) {
	assert.Equal(t, int64(1234), SignExtend(1234, 2))
}

func TestDecodeBinaryPointUnsignedScaled(t *testing.T) {
	// output.voltage (DTBinaryPointU6): 12000 raw / 2^6 = 187.5
	data := []byte{0x2E, 0xE0}
	assert.Equal(t, 187.5, DecodeBinaryPoint(DTBinaryPointU6, data, 2))
}

func TestDecodeBinaryPointSignedScaled(t *testing.T) {
	// 0xFFFE as DTBinaryPointS7: -2 / 2^7 = -0.015625
	data := []byte{0xFF, 0xFE}
	assert.Equal(t, -0.015625, DecodeBinaryPoint(DTBinaryPointS7, data, 2))
}

func TestEncodeBinaryPointUnsignedRounding(t *testing.T) {
	// unsigned/scale>0 rounds via ceil(value*2^scale + 0.5); encoding 187.5
	// at scale 6 gives ceil(12000 + 0.5) = 12001 (0x2EE1), one above the raw
	// 12000 that decodes to 187.5.
	out := EncodeBinaryPoint(DTBinaryPointU6, 187.5, 2)
	assert.Equal(t, []byte{0x2E, 0xE1}, out)
}

func TestEncodeBinaryPointSignedScaleZero(t *testing.T) {
	// signed/scale==0 rounds via plain ceil(value).
	out := EncodeBinaryPoint(DTBinaryPointS0, 41.2, 2)
	assert.Equal(t, uint64(42), BEToUint(out, 2))
}
