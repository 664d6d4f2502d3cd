package modbus

import (
	"errors"
	"time"
)

const (
	// InterCharTimeout bounds inter-character gaps on the wire; not used
	// directly by WaitIdle (which operates on whole HID reports) but kept
	// alongside the other timing constants for completeness.
	InterCharTimeout = 25 * time.Millisecond

	// InterFrameQuiet is the moving quiet-window target: once this much
	// time passes with no MODBUS report observed, the line is idle.
	InterFrameQuiet = 45 * time.Millisecond

	// IdleWaitCeiling is the hard ceiling on how long WaitIdle will keep
	// draining before giving up.
	IdleWaitCeiling = 100 * time.Millisecond

	// ResponseTimeout is the total time budget for one request/response
	// attempt in the retry engine.
	ResponseTimeout = 500 * time.Millisecond

	minReadTimeout = 5 * time.Millisecond
)

// WaitIdle drains rx until no MODBUS RX-id report has arrived for
// InterFrameQuiet, or fails once that quiet target would exceed the hard
// ceiling IdleWaitCeiling. Non-MODBUS reports are ignored and do not reset
// the quiet window; MODBUS RX-id reports ("out of sync") reset it once.
func WaitIdle(rx ReadFunc) error {
	start := time.Now()
	exitAt := start.Add(IdleWaitCeiling)
	target := start.Add(InterFrameQuiet)

	for target.Before(exitAt) || target.Equal(exitAt) {
		timeout := time.Until(target)
		if timeout < minReadTimeout {
			timeout = minReadTimeout
		}

		n, report, err := rx(timeout)
		if errors.Is(err, ErrReadTimedOut) {
			return nil
		}
		if errors.Is(err, ErrReadRetryable) {
			continue
		}
		if err != nil {
			return fatalf("modbus: wait_idle: read failed: %v", err)
		}
		if n <= 0 {
			continue
		}
		if report[0] == ModbusHIDRxID {
			target = time.Now().Add(InterFrameQuiet)
			continue
		}
		// Non-MODBUS report: absorbed, loop without resetting the window.
	}

	return fatalf("modbus: wait_idle: line never went quiet")
}
