package modbus

// Flag vocabularies transcribed from the original driver's bitfield
// formatter functions (smtmodbus.c). The source's exact numeric BF_*
// constants were not retrieved with the pack; bit positions here are
// assigned in the same order the original declares each flag, which is
// sufficient since only the rendered label ordering and the
// set-bit-to-label mapping are observable behavior.

var upsStatusFlags = FlagTable{
	Native: []FlagPair{
		{1 << 0, "StateOnline"},
		{1 << 1, "StateOnBattery"},
		{1 << 2, "StateOutputOff"},
		{1 << 3, "Fault"},
		{1 << 4, "InputBad"},
		{1 << 5, "Test"},
		{1 << 6, "PendingOutputOn"},
		{1 << 7, "PendingOutputOff"},
		{1 << 8, "HighEfficiency"},
	},
}

// outletStatusFlags covers registers 6/9 (outlet.N.status): a 3rd bit
// distinguishes a reboot-in-progress from the on/off state pair that the
// backward-compatible dialect alone recognizes.
var outletStatusFlags = FlagTable{
	Native: []FlagPair{
		{1 << 0, "StateOn"},
		{1 << 1, "StateOff"},
		{1 << 2, "ProcessReboot"},
		{1 << 3, "ProcessShutdown"},
		{1 << 4, "ProcessSleep"},
		{1 << 5, "PendingOffDelay"},
		{1 << 6, "PendingOnACPresence"},
		{1 << 7, "PendingOnMinRuntime"},
		{1 << 8, "MemberGroupProcess1"},
		{1 << 9, "MemberGroupProcess2"},
		{1 << 10, "LowRuntime"},
	},
	BackwardCompatible: []FlagPair{
		{1 << 0, "on"},
		{1 << 1, "off"},
	},
}

// outletCommandFlags covers the outlet.*.load.* and load.* command
// entries written to register 1538.
var outletCommandFlags = FlagTable{
	Native: []FlagPair{
		{1 << 0, "Cancel"},
		{1 << 1, "OutputOn"},
		{1 << 2, "OutputOff"},
		{1 << 3, "OutputShutdown"},
		{1 << 4, "OutputReboot"},
		{1 << 5, "ColdBootAllowed"},
		{1 << 6, "UseOnDelay"},
		{1 << 7, "UseOffDelay"},
		{1 << 8, "UnswitchedOutletGroup"},
		{1 << 9, "SwitchedOutletGroup0"},
		{1 << 10, "SwitchedOutletGroup1"},
		{1 << 11, "SwitchedOutletGroup2"},
		{1 << 12, "USBPort"},
		{1 << 13, "LocalUser"},
		{1 << 14, "RJ45Port"},
		{1 << 15, "SmartSlot1"},
	},
}

// runtimeCalibrationStatusFlags covers ups.test.result (registers 23/24).
// Unlike the original C, the backward-compatible dialect here falls back
// to "unknown" like every other dialect rather than the one-off "Done and
// passed" default the source hard-codes for a single integrator; nothing
// in the distilled spec documents that exception, so it is not carried
// forward.
var runtimeCalibrationStatusFlags = FlagTable{
	Native: []FlagPair{
		{1 << 0, "Pending"},
		{1 << 1, "InProgress"},
		{1 << 2, "Passed"},
		{1 << 3, "Failed"},
		{1 << 4, "Refused"},
		{1 << 5, "Aborted"},
		{1 << 6, "Protocol"},
	},
	BackwardCompatible: []FlagPair{
		{1 << 0, "Test scheduled"},
		{1 << 1, "In progress"},
		{1 << 2, "Done and passed"},
		{1 << 3, "Done and error"},
		{1 << 4, "No test initiated"},
		{1 << 5, "Aborted"},
	},
}

// sogRelayConfigFlags covers I.SOGRelayConfigSetting (register 590). The
// outlet-group count is not derived from it; OutletGroupCount is fixed.
var sogRelayConfigFlags = FlagTable{
	Native: []FlagPair{
		{1 << 0, "MOGPresent"},
		{1 << 1, "SOG0Present"},
		{1 << 2, "SOG1Present"},
		{1 << 3, "SOG2Present"},
		{1 << 4, "SOG3Present"},
	},
}

// Command bitmasks, declared once so bindings_table.go and tests can both
// reference them by name instead of magic numbers.
const (
	bfOutletCommandCancel                = 1 << 0
	bfOutletCommandOutputOn              = 1 << 1
	bfOutletCommandOutputOff             = 1 << 2
	bfOutletCommandOutputShutdown        = 1 << 3
	bfOutletCommandOutputReboot          = 1 << 4
	bfOutletCommandColdBootAllowed       = 1 << 5
	bfOutletCommandUseOnDelay            = 1 << 6
	bfOutletCommandUseOffDelay           = 1 << 7
	bfOutletCommandUnswitchedOutletGroup = 1 << 8
	bfOutletCommandSwitchedOutletGroup0  = 1 << 9
	bfOutletCommandSwitchedOutletGroup1  = 1 << 10
	bfOutletCommandSwitchedOutletGroup2  = 1 << 11
	bfOutletCommandUSBPort               = 1 << 12

	bfSimpleSignalingCommandRequestShutdown = 1 << 0

	bfRuntimeCalibrationCommandStart = 1 << 0
	bfRuntimeCalibrationCommandAbort = 1 << 1
)
