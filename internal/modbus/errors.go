package modbus

import "fmt"

// Severity classes described by the error-handling design: fatal protocol
// errors abort the current operation outright, transient transport errors
// are retried, and soft inconsistencies are logged but still return data.
var (
	// ErrFatal roots every error that must not be retried: malformed
	// request construction, oversized PDU, short USB write, or an
	// exception response from the device.
	ErrFatal = fmt.Errorf("modbus: fatal protocol error")

	// ErrTransient roots every error that is worth retrying: read
	// timeout, CRC failure, short frame, address mismatch, unexpected
	// function code, size mismatch.
	ErrTransient = fmt.Errorf("modbus: transient transport error")
)

// ExceptionError wraps a MODBUS exception response (function code with the
// high bit set). It carries the device's exception code for diagnostics,
// something the original driver discarded.
type ExceptionError struct {
	FunctionCode byte
	Code         byte
}

func (e *ExceptionError) Error() string {
	return fmt.Sprintf("modbus: exception response fc=0x%02x code=0x%02x", e.FunctionCode, e.Code)
}

func (e *ExceptionError) Unwrap() error {
	return ErrFatal
}

// fatalf wraps a message under ErrFatal.
func fatalf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrFatal)...)
}

// transientf wraps a message under ErrTransient.
func transientf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrTransient)...)
}
