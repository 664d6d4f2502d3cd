package modbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postWriteResp is what a fakeTransport's Read returns once per write, to
// model one HID report delivered per Read call, matching the real USB
// transport's one-report-per-call behavior.
type postWriteResp struct {
	report []byte
	err    error
}

// fakeTransport drives Engine.SendAndWait deterministically: idle-line
// probes (before any Write since the last one) are answered with an
// immediate ErrReadTimedOut, and each Write is followed by exactly one
// queued response (report or error) on the next Read.
type fakeTransport struct {
	writeCount int
	afterWrite bool
	queue      []postWriteResp
	idx        int
}

func (f *fakeTransport) Write(report []byte) (int, error) {
	f.writeCount++
	f.afterWrite = true
	return len(report), nil
}

func (f *fakeTransport) Read(timeout time.Duration) (int, []byte, error) {
	if !f.afterWrite {
		return 0, nil, ErrReadTimedOut
	}
	f.afterWrite = false

	if f.idx >= len(f.queue) {
		return 0, nil, ErrReadTimedOut
	}
	item := f.queue[f.idx]
	f.idx++
	if item.err != nil {
		return 0, nil, item.err
	}
	return len(item.report), item.report, nil
}

// hidReport builds a 64-byte HID report carrying slave/fc/payload under the
// given report id, zero-padded.
func hidReport(id byte, slave, fc byte, payload ...byte) []byte {
	report := make([]byte, ReportSize)
	report[0] = id
	report[1] = slave
	report[2] = fc
	copy(report[3:], payload)
	return report
}

func TestSendAndWaitSuccess(t *testing.T) {
	ft := &fakeTransport{queue: []postWriteResp{
		{report: hidReport(ModbusHIDRxID, 1, fcReadHoldingRegs, 0x02, 0x2E, 0xE0)},
	}}
	engine := NewEngine(ft, 1)

	data, err := engine.ReadHolding(142, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2E, 0xE0}, data)
	assert.Equal(t, 1, ft.writeCount)
}

func TestSendAndWaitExceptionIsFatalNoRetry(t *testing.T) {
	ft := &fakeTransport{queue: []postWriteResp{
		{report: hidReport(ModbusHIDRxID, 1, fcReadHoldingRegs|fcExceptionBit, 0x02)},
	}}
	engine := NewEngine(ft, 1)

	_, err := engine.ReadHolding(142, 1)
	var exc *ExceptionError
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, byte(0x02), exc.Code)
	assert.Equal(t, 1, ft.writeCount, "an exception response must not be retried")
}

func TestSendAndWaitRetriesOnTransientThenSucceeds(t *testing.T) {
	ft := &fakeTransport{queue: []postWriteResp{
		{report: hidReport(ModbusHIDRxID, 1, 0x06)}, // unsupported fc: transient, retried
		{report: hidReport(ModbusHIDRxID, 1, fcReadHoldingRegs, 0x02, 0x2E, 0xE0)},
	}}
	engine := NewEngine(ft, 1)

	data, err := engine.ReadHolding(142, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x2E, 0xE0}, data)
	assert.Equal(t, 2, ft.writeCount, "exactly two write attempts: the failing one and the retry")
}

func TestSendAndWaitExhaustsRetriesOnRepeatedTimeout(t *testing.T) {
	ft := &fakeTransport{} // empty queue: every response read times out
	engine := NewEngine(ft, 1)

	_, err := engine.ReadHolding(142, 1)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, maxRetries, ft.writeCount)
}

func TestReadHoldingRejectsZeroRegisters(t *testing.T) {
	engine := NewEngine(&fakeTransport{}, 1)
	_, err := engine.ReadHolding(142, 0)
	assert.ErrorIs(t, err, ErrFatal)
}

func TestWriteMultipleSuccess(t *testing.T) {
	// reg=1538 (0x0602), nregs=1 (0x0001): the response must echo this
	// 4-byte header exactly.
	ft := &fakeTransport{queue: []postWriteResp{
		{report: hidReport(ModbusHIDRxID, 1, fcWriteMultipleRegs, 0x06, 0x02, 0x00, 0x01)},
	}}
	engine := NewEngine(ft, 1)

	err := engine.WriteMultiple(1538, 1, []byte{0x00, 0x04})
	require.NoError(t, err)
}

func TestWriteMultipleRejectsMismatchedDataLength(t *testing.T) {
	engine := NewEngine(&fakeTransport{}, 1)
	err := engine.WriteMultiple(1538, 1, []byte{0x00})
	assert.ErrorIs(t, err, ErrFatal)
}
