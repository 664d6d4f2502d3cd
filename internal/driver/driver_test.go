package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-modbus-hid-driver/internal/modbus"
	"apc-modbus-hid-driver/internal/store"
)

// fakeTransport drives an *modbus.Engine deterministically for driver-level
// tests: idle-line probes succeed instantly, and each Write is answered by
// exactly one queued HID report on the following Read, mirroring the real
// USB transport's one-report-per-call behavior.
type fakeTransport struct {
	afterWrite bool
	queue      [][]byte
	idx        int
}

func (f *fakeTransport) Write(report []byte) (int, error) {
	f.afterWrite = true
	return len(report), nil
}

func (f *fakeTransport) Read(timeout time.Duration) (int, []byte, error) {
	if !f.afterWrite {
		return 0, nil, modbus.ErrReadTimedOut
	}
	f.afterWrite = false
	if f.idx >= len(f.queue) {
		return 0, nil, modbus.ErrReadTimedOut
	}
	report := f.queue[f.idx]
	f.idx++
	return len(report), report, nil
}

func hidReport(id byte, slave, fc byte, payload ...byte) []byte {
	report := make([]byte, modbus.ReportSize)
	report[0] = id
	report[1] = slave
	report[2] = fc
	copy(report[3:], payload)
	return report
}

func TestClaimMatchesAPCVendorProduct(t *testing.T) {
	res := Claim(claimVendorID, claimProductID)
	assert.True(t, res.Matched)
	assert.True(t, res.DisableInterruptPipe)
}

func TestClaimRejectsOtherDevices(t *testing.T) {
	res := Claim(0x0001, 0x0002)
	assert.False(t, res.Matched)
}

func TestFormatModelSplitsFirmwareFields(t *testing.T) {
	model, fw, aux := FormatModel("Smart-UPS 1500 FW:UPS 08.3 USB FW:2")
	assert.Equal(t, "Smart-UPS 1500", model)
	assert.Equal(t, "UPS 08.3", fw)
	assert.Equal(t, "2", aux)
}

func TestFormatModelWithoutFirmwareField(t *testing.T) {
	model, fw, aux := FormatModel("Smart-UPS 750")
	assert.Equal(t, "Smart-UPS 750", model)
	assert.Empty(t, fw)
	assert.Empty(t, aux)
}

func TestFormatModelEmptyProduct(t *testing.T) {
	model, _, _ := FormatModel("")
	assert.Equal(t, "unknown", model)
}

func TestFormatMfrDefaultsToAPC(t *testing.T) {
	assert.Equal(t, "APC", FormatMfr(""))
	assert.Equal(t, "Schneider Electric", FormatMfr("Schneider Electric"))
}

func TestPollEntryDecodesIntoStore(t *testing.T) {
	ft := &fakeTransport{queue: [][]byte{
		// output.voltage: register 142, DTBinaryPointU6, raw 12000 -> 187.5
		hidReport(modbus.ModbusHIDRxID, 1, 0x03, 0x02, 0x2E, 0xE0),
	}}
	engine := modbus.NewEngine(ft, 1)
	st := store.New()

	// Isolate the poll to a single binding for a deterministic assertion.
	b, ok := modbus.Find("output.voltage")
	require.True(t, ok)

	p := &Poller{Engine: engine, Store: st}
	err := p.pollEntry(b)
	require.NoError(t, err)

	v, ok := st.Get("output.voltage")
	require.True(t, ok)
	assert.Equal(t, 187.5, v.Numeric)
	assert.Equal(t, "187.50", v.Formatted)
}

func TestNewPollerDefinesEveryNonCommandBinding(t *testing.T) {
	st := store.New()
	NewPoller(modbus.NewEngine(&fakeTransport{}, 1), st)

	_, ok := st.Get("output.voltage")
	assert.True(t, ok)

	_, ok = st.Get("outlet.1.load.off")
	assert.False(t, ok, "command entries are write-only and are not pre-defined")
}
