package modbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterToModbusTimeEpoch(t *testing.T) {
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), RegisterToModbusTime(0))
}

func TestRegisterToModbusTimeOneDay(t *testing.T) {
	assert.Equal(t, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), RegisterToModbusTime(1))
}

func TestModbusTimeToRegisterRoundTrip(t *testing.T) {
	reg := ModbusTimeToRegister(time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), RegisterToModbusTime(reg))
}

func TestModbusTimeToRegisterTruncatesToWholeDays(t *testing.T) {
	reg := ModbusTimeToRegister(time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, uint64(0), reg)
}
