package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBEToUintFoldsBigEndian(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	assert.Equal(t, uint64(0x01020304), BEToUint(buf, 4))
	assert.Equal(t, uint64(0x0102), BEToUint(buf, 2))
}

func TestUintToBE(t *testing.T) {
	buf := make([]byte, 2)
	UintToBE(0x01FE, buf, 2)
	assert.Equal(t, []byte{0x01, 0xFE}, buf)
}

func TestBEToUintPanicsOnShortBuffer(t *testing.T) {
	assert.Panics(t, func() { BEToUint([]byte{0x01}, 2) })
}

func TestBEToUintPanicsOnBadWidth(t *testing.T) {
	assert.Panics(t, func() { BEToUint([]byte{0x01, 0x02}, 0) })
	assert.Panics(t, func() { BEToUint([]byte{0x01, 0x02}, 9) })
}
