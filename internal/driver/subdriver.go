// Package driver ties the modbus core to a pollable UPS subdriver: claim
// logic, model/manufacturer/serial formatting, and the poll/command loop
// that drives the binding table against a variable store.
package driver

import (
	"strings"

	"apc-modbus-hid-driver/internal/modbus"
)

// Version identifies this subdriver the way the original subdriver_t's
// first field does.
const Version = "APC MODBUS over HID 1.0"

// Vendor usage pages reserved by the MODBUS-over-HID transport, so the
// generic HID code path (out of scope here) knows to leave them alone.
const (
	UsageModbusRTURx = 0xFF8600FC
	UsageModbusRTUTx = 0xFF8600FD
)

const (
	claimVendorID  = 0x051D
	claimProductID = 0x0003
)

// ClaimResult mirrors apc_claim's two observable effects: whether the
// device is accepted, and whether the generic HID interrupt pipe must be
// disabled to avoid interfering with the vendor MODBUS protocol. The
// original expressed the second as a module-level flag flipped inside
// disable_interrupt_pipe; here it's a return value instead of global state.
type ClaimResult struct {
	Matched              bool
	DisableInterruptPipe bool
}

// Claim reports whether vendorID/productID identify a supported APC
// Smart-UPS MODBUS-over-HID device.
func Claim(vendorID, productID uint16) ClaimResult {
	if vendorID != claimVendorID || productID != claimProductID {
		return ClaimResult{}
	}
	return ClaimResult{Matched: true, DisableInterruptPipe: true}
}

// FormatModel splits an embedded firmware substring out of the HID
// product string, the way apc_format_model does: "Smart-UPS 1500 FW:UPS
// 9.4 USB FW:2.5" yields model "Smart-UPS 1500", firmware "UPS 9.4",
// firmwareAux "2.5". If no "FW:" marker is present, product is returned
// unchanged and the firmware fields are empty.
func FormatModel(product string) (model, firmware, firmwareAux string) {
	if product == "" {
		return "unknown", "", ""
	}

	idx := strings.Index(product, "FW:")
	if idx < 0 {
		return product, "", ""
	}

	model = strings.TrimSpace(product[:idx])
	rest := product[idx+len("FW:"):]

	if auxIdx := strings.Index(rest, "USB FW:"); auxIdx >= 0 {
		firmware = strings.TrimSpace(rest[:auxIdx])
		firmwareAux = strings.TrimSpace(rest[auxIdx+len("USB FW:"):])
		return model, firmware, firmwareAux
	}

	return model, strings.TrimSpace(rest), ""
}

// FormatMfr returns vendor, defaulting to "APC" the way apc_format_mfr does
// when the HID descriptor carries no vendor string.
func FormatMfr(vendor string) string {
	if vendor == "" {
		return "APC"
	}
	return vendor
}

// FormatSerial passes the HID serial string through unchanged, matching
// apc_format_serial.
func FormatSerial(serial string) string {
	return serial
}

// OutletGroupCount is hard-coded to 2, same as the original's
// get_UPS_outlets_group_num and its un-acted-on TODO about resolving the
// real configuration from register 590 (I.SOGRelayConfigSetting_BF,
// exposed here as the input.transfer.reason binding) once that register's
// value can be trusted.
const OutletGroupCount = 2

// probeRegister and probeLength mirror CheckModbusEnable's register-0,
// 2-register probe used to confirm the device actually answers MODBUS
// before the subdriver commits to it.
const (
	probeRegister = 0
	probeLength   = 2
)

// Probe confirms the device actually speaks MODBUS-over-HID by reading
// register 0 for two registers, discarding the result. A protocol error of
// any severity means the device should not be claimed as a MODBUS-over-HID
// UPS.
func Probe(engine *modbus.Engine) error {
	_, err := engine.ReadHolding(probeRegister, probeLength)
	return err
}
