package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCKnownVector(t *testing.T) {
	// slave=1, fc=0x03 (read holding), reg=0, nregs=1 -> CRC 0x0A84 per the
	// standard MODBUS RTU worked example.
	got := CRC([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01})
	assert.Equal(t, uint16(0x0A84), got)
}

func TestAppendCRCLowByteFirst(t *testing.T) {
	frame := AppendCRC([]byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01})
	assert.Len(t, frame, 8)
	assert.Equal(t, byte(0x84), frame[6], "low byte first")
	assert.Equal(t, byte(0x0A), frame[7], "then high byte")
}

func TestCRCEmptyInput(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), CRC(nil))
}
