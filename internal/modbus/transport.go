package modbus

import (
	"errors"
	"time"
)

// ErrReadTimedOut is returned by a Transport's Read when no data arrived
// within the requested timeout (the -ETIMEDOUT case from the original
// usb_interrupt_read capability).
var ErrReadTimedOut = errors.New("modbus: read timed out")

// ErrReadRetryable is returned by a Transport's Read for a transient,
// immediately-retryable condition (the -EINTR/-EAGAIN case).
var ErrReadRetryable = errors.New("modbus: read interrupted, retry")

// ReadFunc reads one HID report with the given timeout. It returns the
// byte count and the report buffer (sized ReportSize) on success, or one
// of ErrReadTimedOut / ErrReadRetryable / another error (fatal) on failure.
type ReadFunc func(timeout time.Duration) (n int, report []byte, err error)

// Transport is the capability the core consumes from its collaborator: a
// blocking interrupt write and a blocking interrupt read, mirroring
// usb_interrupt_write/usb_interrupt_read. Any other negative-errno style
// fatal condition should surface as a plain (non-sentinel) error from
// either method.
type Transport interface {
	Write(report []byte) (n int, err error)
	Read(timeout time.Duration) (n int, report []byte, err error)
}

const maxRetries = 3 // initial attempt + 2 retries

// Engine drives the request/response protocol (component F) over a
// Transport for one slave address.
type Engine struct {
	Transport Transport
	SlaveAddr byte
}

// NewEngine builds an Engine targeting slaveAddr over t.
func NewEngine(t Transport, slaveAddr byte) *Engine {
	return &Engine{Transport: t, SlaveAddr: slaveAddr}
}

// SendAndWait builds a frame for fc/txPDU, sends it, and waits for a
// matching response of rxPDULen bytes, making at most maxRetries attempts
// in all on transient faults. Exception responses, malformed requests and
// fatal read errors are not retried.
func (e *Engine) SendAndWait(fc byte, txPDU []byte, rxPDULen int) ([]byte, error) {
	if len(txPDU) > MaxPDUSize || rxPDULen > MaxPDUSize {
		return nil, fatalf("modbus: send_and_wait: pdu too large (tx=%d rx=%d)", len(txPDU), rxPDULen)
	}
	// A transmitted frame plus CRC must fit one HID report payload:
	// pdu_len + 2 (header) + 2 (crc) <= 63.
	if len(txPDU) > MaxReportFrameSize-4 {
		return nil, fatalf("modbus: send_and_wait: pdu length %d exceeds single-report capacity", len(txPDU))
	}

	frame := make([]byte, 0, 2+len(txPDU)+2)
	frame = append(frame, e.SlaveAddr, fc)
	frame = append(frame, txPDU...)
	frame = AppendCRC(frame)

	report, err := Pack(frame)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := WaitIdle(e.Transport.Read); err != nil {
			// wait_idle failures are fatal, never retried.
			return nil, err
		}

		n, err := e.Transport.Write(report)
		if err != nil {
			return nil, fatalf("modbus: send_and_wait: write failed: %v", err)
		}
		if n != len(report) {
			return nil, fatalf("modbus: send_and_wait: short write: %d of %d bytes", n, len(report))
		}

		rxFrame, err := e.readResponse()
		if err != nil {
			if errors.Is(err, ErrFatal) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if len(rxFrame) < 4 {
			lastErr = transientf("modbus: send_and_wait: runt frame %d bytes", len(rxFrame))
			continue
		}

		body, tail := rxFrame[:len(rxFrame)-2], rxFrame[len(rxFrame)-2:]
		crc := CRC(body)
		if tail[0] != byte(crc&0xFF) || tail[1] != byte(crc>>8) {
			lastErr = transientf("modbus: send_and_wait: crc mismatch")
			continue
		}

		if body[0] != e.SlaveAddr {
			lastErr = transientf("modbus: send_and_wait: address mismatch (want %d got %d)", e.SlaveAddr, body[0])
			continue
		}

		if body[1]&fcExceptionBit != 0 {
			code := byte(0)
			if len(body) > 2 {
				code = body[2]
			}
			return nil, &ExceptionError{FunctionCode: body[1], Code: code}
		}

		if body[1] != fc {
			lastErr = transientf("modbus: send_and_wait: unexpected function code 0x%02x", body[1])
			continue
		}

		if len(rxFrame) != rxPDULen+4 {
			lastErr = transientf("modbus: send_and_wait: wrong response size (want %d got %d)", rxPDULen+4, len(rxFrame))
			continue
		}

		return body[2 : 2+rxPDULen], nil
	}

	if lastErr == nil {
		lastErr = transientf("modbus: send_and_wait: retries exhausted")
	}
	return nil, lastErr
}

// readResponse drains RX reports within ResponseTimeout until one unpacks
// into a MODBUS frame or the overall response timeout elapses.
func (e *Engine) readResponse() ([]byte, error) {
	exitAt := time.Now().Add(ResponseTimeout)

	for {
		remaining := time.Until(exitAt)
		if remaining <= 0 {
			return nil, transientf("modbus: send_and_wait: response timeout")
		}

		n, report, err := e.Transport.Read(remaining)
		if errors.Is(err, ErrReadTimedOut) {
			return nil, transientf("modbus: send_and_wait: response timeout")
		}
		if errors.Is(err, ErrReadRetryable) {
			continue
		}
		if err != nil {
			return nil, fatalf("modbus: send_and_wait: read failed: %v", err)
		}
		if n <= 0 {
			continue
		}

		frame, err := Unpack(report[:n])
		if errors.Is(err, errNotModbusReport) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return frame, nil
	}
}
