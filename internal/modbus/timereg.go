package modbus

import "time"

// modbusBaseTimestamp is MODBUS_BASE_TIMESTAMP from the original driver
// (modbustypes.h), 2000-01-01 00:00:00 UTC expressed as a Unix epoch offset.
const modbusBaseTimestamp = 946684800

// RegisterToModbusTime decodes a register value as whole days since
// modbusBaseTimestamp, mirroring the original driver's ModbusRegTotime_t
// (libmodbus.c).
func RegisterToModbusTime(reg uint64) time.Time {
	return time.Unix(modbusBaseTimestamp+int64(reg)*60*60*24, 0).UTC()
}

// ModbusTimeToRegister encodes t as whole days since modbusBaseTimestamp,
// mirroring the original driver's time_tToModbusReg (libmodbus.c). Fractional
// days are truncated, matching the source's integer division.
func ModbusTimeToRegister(t time.Time) uint64 {
	return uint64((t.Unix() - modbusBaseTimestamp) / 60 / 60 / 24)
}
