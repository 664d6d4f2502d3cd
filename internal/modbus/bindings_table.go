package modbus

// Bindings is the static, order-preserved binding table (component H),
// transcribed from the original driver's register map
// (apc-modbus-hid.h:apc_hid2nut), with one disclosed exception noted below.
// Poll order follows declaration order.
var Bindings = []Binding{
	// --- Telemetry (polled, read-only) ---
	{Name: "output.voltage", Access: AccessRead, Register: 142, Length: 1, DataType: DTBinaryPointU6},
	{Name: "output.current", Access: AccessRead, Register: 140, Length: 1, DataType: DTBinaryPointU5},
	{Name: "output.frequency", Access: AccessRead, Register: 144, Length: 1, DataType: DTBinaryPointU7},
	{Name: "ups.realpower", Access: AccessRead, Register: 136, Length: 1, DataType: DTBinaryPointU8},
	{Name: "input.voltage", Access: AccessRead, Register: 151, Length: 1, DataType: DTBinaryPointU6},
	{Name: "battery.temperature", Access: AccessRead, Register: 135, Length: 1, DataType: DTBinaryPointS7},
	{Name: "battery.runtime", Access: AccessRead, Register: 128, Length: 2, DataType: DTBinaryPointU0},

	// --- UPS status (quick-poll, bitfield) ---
	// apc_hid2nut has no ups.status entry at all: apc_smt_MB_upsstatus in
	// smtmodbus.c is a value->string lookup keyed on 0, not a register
	// address. The flag vocabulary in upsStatusFlags is transcribed from
	// apc_smt_MB_upsstatus_fun's rendering logic, but the register number
	// below is NOT from the source; it is an unconfirmed placeholder until
	// a real register for this variable turns up.
	{Name: "ups.status", Access: AccessRead | AccessQuickPoll, Register: 0, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(upsStatusFlags, DialectNative)},

	// --- Outlet status (quick-poll, two dialects each) ---
	{Name: "outlet.1.status", Access: AccessRead | AccessQuickPoll, Register: 6, Length: 2, DataType: DTBitfield,
		Formatter: BitfieldFormatter(outletStatusFlags, DialectBackwardCompatible)},
	{Name: "outlet.2.status", Access: AccessRead | AccessQuickPoll, Register: 9, Length: 2, DataType: DTBitfield,
		Formatter: BitfieldFormatter(outletStatusFlags, DialectBackwardCompatible)},
	{Name: "outlet.1.status.native", Access: AccessRead | AccessQuickPoll, Register: 6, Length: 2, DataType: DTBitfield,
		Formatter: BitfieldFormatter(outletStatusFlags, DialectNative)},
	{Name: "outlet.2.status.native", Access: AccessRead | AccessQuickPoll, Register: 9, Length: 2, DataType: DTBitfield,
		Formatter: BitfieldFormatter(outletStatusFlags, DialectNative)},

	// --- Outlet delay registers (RW). stayoff spans 2 registers; the
	// shutdown/start pair spans 1 — preserved exactly per design note. ---
	{Name: "outlet.1.delay.shutdown", Access: AccessRead | AccessWrite, Register: 1034, Length: 1, DataType: DTBinaryPointS0},
	{Name: "outlet.1.delay.start", Access: AccessRead | AccessWrite, Register: 1035, Length: 1, DataType: DTBinaryPointS0},
	{Name: "outlet.1.delay.stayoff", Access: AccessRead | AccessWrite, Register: 1036, Length: 2, DataType: DTBinaryPointS0},
	{Name: "outlet.2.delay.shutdown", Access: AccessRead | AccessWrite, Register: 1039, Length: 1, DataType: DTBinaryPointS0},
	{Name: "outlet.2.delay.start", Access: AccessRead | AccessWrite, Register: 1040, Length: 1, DataType: DTBinaryPointS0},
	{Name: "outlet.2.delay.stayoff", Access: AccessRead | AccessWrite, Register: 1041, Length: 2, DataType: DTBinaryPointS0},
	{Name: "ups.delay.shutdown", Access: AccessRead | AccessWrite, Register: 1029, Length: 1, DataType: DTBinaryPointS0},
	{Name: "ups.delay.start", Access: AccessRead | AccessWrite, Register: 1030, Length: 1, DataType: DTBinaryPointS0},
	{Name: "ups.delay.stayoff", Access: AccessRead | AccessWrite, Register: 1031, Length: 2, DataType: DTBinaryPointS0},

	// --- UPS timers (quick-poll, read-only) ---
	{Name: "ups.timer.shutdown", Access: AccessRead | AccessQuickPoll, Register: 155, Length: 1, DataType: DTBinaryPointS0},
	{Name: "ups.timer.start", Access: AccessRead | AccessQuickPoll, Register: 156, Length: 1, DataType: DTBinaryPointS0},
	{Name: "ups.timer.stayoff", Access: AccessRead | AccessQuickPoll, Register: 157, Length: 2, DataType: DTBinaryPointS0},

	// --- Outlet group 1 load commands (register 1538) ---
	cmdBinding("outlet.1.load.off", 1538, bfOutletCommandOutputOff|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.off.delay", 1538, bfOutletCommandOutputOff|bfOutletCommandUseOffDelay|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.on", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.on.delay", 1538, bfOutletCommandOutputOn|bfOutletCommandUseOnDelay|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.on.coldboot", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUSBPort|bfOutletCommandColdBootAllowed),
	cmdBinding("outlet.1.load.reboot", 1538, bfOutletCommandOutputReboot|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.shutdown", 1538, bfOutletCommandOutputShutdown|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("outlet.1.load.canceloperation", 1538, bfOutletCommandCancel|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),

	// --- Outlet group 2 load commands (register 1538) ---
	cmdBinding("outlet.2.load.off", 1538, bfOutletCommandOutputOff|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.off.delay", 1538, bfOutletCommandOutputOff|bfOutletCommandUseOffDelay|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.on", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.on.delay", 1538, bfOutletCommandOutputOn|bfOutletCommandUseOnDelay|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.on.coldboot", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort|bfOutletCommandColdBootAllowed),
	cmdBinding("outlet.2.load.reboot", 1538, bfOutletCommandOutputReboot|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.shutdown", 1538, bfOutletCommandOutputShutdown|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("outlet.2.load.canceloperation", 1538, bfOutletCommandCancel|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),

	// --- Ungrouped load commands, targeting both switched groups ---
	cmdBinding("load.off", 1538, bfOutletCommandOutputOff|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("load.off.delay", 1538, bfOutletCommandOutputOff|bfOutletCommandUseOffDelay|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("load.on", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("load.on.delay", 1538, bfOutletCommandOutputOn|bfOutletCommandUseOnDelay|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort),
	cmdBinding("load.on.coldboot", 1538, bfOutletCommandOutputOn|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUSBPort|bfOutletCommandColdBootAllowed),
	cmdBinding("load.reboot", 1538, bfOutletCommandOutputReboot|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("load.shutdown", 1538, bfOutletCommandOutputShutdown|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),
	cmdBinding("load.canceloperation", 1538, bfOutletCommandCancel|bfOutletCommandSwitchedOutletGroup0|bfOutletCommandSwitchedOutletGroup1|bfOutletCommandUseOffDelay|bfOutletCommandUseOnDelay|bfOutletCommandUSBPort),

	// --- Shutdown/reboot signaling (register 1540) ---
	cmdBinding("shutdown.reboot", 1540, bfSimpleSignalingCommandRequestShutdown),
	cmdBinding("shutdown.stop", 1540, bfSimpleSignalingCommandRequestShutdown),

	// --- Runtime calibration (battery test) commands ---
	cmdBinding("test.battery.start.deep", 1542, bfRuntimeCalibrationCommandStart),
	cmdBinding("test.battery.start.quick", 1541, bfRuntimeCalibrationCommandStart),
	cmdBinding("test.battery.stop", 1542, bfRuntimeCalibrationCommandAbort),

	// --- Runtime calibration (battery test) status, both dialects ---
	{Name: "ups.test.result", Access: AccessRead, Register: 23, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(runtimeCalibrationStatusFlags, DialectBackwardCompatible)},
	{Name: "ups.test.result.deep", Access: AccessRead, Register: 24, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(runtimeCalibrationStatusFlags, DialectBackwardCompatible)},
	{Name: "ups.test.result.quick", Access: AccessRead, Register: 23, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(runtimeCalibrationStatusFlags, DialectBackwardCompatible)},
	{Name: "ups.test.result.runtimecalibration", Access: AccessRead, Register: 24, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(runtimeCalibrationStatusFlags, DialectNative)},
	{Name: "ups.test.result.battery", Access: AccessRead, Register: 23, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(runtimeCalibrationStatusFlags, DialectNative)},

	// --- Switched outlet group presence (register 590). Polled only;
	// Claim does not read it and OutletGroupCount stays fixed at 2. ---
	{Name: "input.transfer.reason", Access: AccessRead, Register: 590, Length: 1, DataType: DTBitfield,
		Formatter: BitfieldFormatter(sogRelayConfigFlags, DialectNative)},
}

// cmdBinding builds a command entry: writing triggers bitmask as a
// 2-register payload regardless of the value the caller supplies.
func cmdBinding(name string, register uint16, bitmask uint64) Binding {
	return Binding{
		Name:     name,
		Access:   AccessWrite | AccessCommand,
		Register: register,
		Length:   2,
		DataType: DTBitfield,
		Bitmask:  bitmask,
	}
}

// Find looks up a binding entry by name.
func Find(name string) (Binding, bool) {
	for _, b := range Bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}
