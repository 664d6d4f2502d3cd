package modbus

import "fmt"

const (
	// ReportSize is the fixed HID interrupt report size.
	ReportSize = 64

	// ModbusHIDTxID is the report id prefixing every outbound HID report
	// that carries a MODBUS frame.
	ModbusHIDTxID = 0x90

	// ModbusHIDRxID is the report id a HID report must carry to be
	// considered a MODBUS response rather than a stray generic-HID report.
	ModbusHIDRxID = 0x89

	// MaxFrameSize is the largest MODBUS frame (slave+fc+pdu+crc) the
	// transport ever constructs.
	MaxFrameSize = 256

	// MaxPDUSize is the largest PDU the transport ever constructs.
	MaxPDUSize = 252

	// MaxReportFrameSize is the largest frame-minus-CRC payload that fits
	// in one HID report: report[0] is the id byte, leaving 63 bytes.
	MaxReportFrameSize = ReportSize - 1

	fcReadHoldingRegs    = 0x03
	fcWriteMultipleRegs  = 0x10
	fcExceptionBit  byte = 0x80
)

// Pack lays frame (which includes its trailing CRC) into a 64-byte HID
// report: report[0] is the TX id, report[1:] carries frame minus its
// 2-byte CRC tail (the wire never carries the CRC; it's reconstructed on
// receive). frame must be at least 2 bytes (slave+fc) plus its CRC.
func Pack(frame []byte) ([]byte, error) {
	if len(frame) < 4 {
		return nil, fatalf("modbus: framer: frame too short to pack: %d bytes", len(frame))
	}
	body := frame[:len(frame)-2] // strip CRC
	if len(body) > MaxReportFrameSize {
		return nil, fatalf("modbus: framer: frame body %d bytes exceeds report capacity %d", len(body), MaxReportFrameSize)
	}
	report := make([]byte, ReportSize)
	report[0] = ModbusHIDTxID
	copy(report[1:], body)
	return report, nil
}

// Unpack validates an inbound HID report's id and, for it to be accepted,
// infers the frame length from the function code byte, then returns the
// frame with a freshly computed CRC appended so callers see a conventional
// MODBUS frame (the wire itself never carried one).
func Unpack(report []byte) ([]byte, error) {
	if len(report) < 4 {
		return nil, transientf("modbus: framer: short report: %d bytes", len(report))
	}
	if report[0] != ModbusHIDRxID {
		return nil, fmt.Errorf("modbus: framer: not a modbus report (id=0x%02x): %w", report[0], errNotModbusReport)
	}

	fc := report[2]
	if fc&fcExceptionBit != 0 {
		// Exception responses are only 3 bytes (slave, fc, code) and
		// carry no length byte to infer from.
		frame := append([]byte{}, report[1:4]...)
		return AppendCRC(frame), nil
	}

	var frameLen int
	switch fc {
	case fcReadHoldingRegs:
		frameLen = int(report[3]) + 3
	case fcWriteMultipleRegs:
		frameLen = 6
	default:
		return nil, transientf("modbus: framer: unsupported function code 0x%02x", fc)
	}

	if len(report)-1 < frameLen {
		return nil, transientf("modbus: framer: report too short for inferred frame length %d", frameLen)
	}
	frame := append([]byte{}, report[1:1+frameLen]...)
	return AppendCRC(frame), nil
}

// errNotModbusReport marks a report that does not carry the RX report id;
// it is not fatal or transient on its own — callers absorb it (quiet-line
// detector) or keep reading (request/response engine).
var errNotModbusReport = fmt.Errorf("modbus: report is not a modbus report")
