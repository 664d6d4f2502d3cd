package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-modbus-hid-driver/internal/modbus"
)

func TestDefineIsIdempotent(t *testing.T) {
	s := New()
	s.Define("output.voltage", modbus.AccessRead)
	s.Set("output.voltage", 187.5, "187.50")

	s.Define("output.voltage", modbus.AccessRead) // must not clobber the value set above

	v, ok := s.Get("output.voltage")
	require.True(t, ok)
	assert.Equal(t, 187.5, v.Numeric)
}

func TestSetThenGet(t *testing.T) {
	s := New()
	s.Set("battery.charge", 100, "100.00")

	v, ok := s.Get("battery.charge")
	require.True(t, ok)
	assert.Equal(t, float64(100), v.Numeric)
	assert.Equal(t, "100.00", v.Formatted)
	assert.Empty(t, v.Err)
	assert.False(t, v.UpdatedAt.IsZero())
}

func TestSetErrorRecordsMessageWithoutClobberingLastGoodValue(t *testing.T) {
	s := New()
	s.Set("ups.status", 1, "StateOnline")
	s.SetError("ups.status", errors.New("read_holding: modbus: read timed out"))

	v, ok := s.Get("ups.status")
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Numeric, "a failed poll keeps the last good numeric value")
	assert.Equal(t, "StateOnline", v.Formatted)
	assert.Contains(t, v.Err, "timed out")
}

func TestGetUnknownVariable(t *testing.T) {
	s := New()
	_, ok := s.Get("no.such.variable")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.Set("output.voltage", 187.5, "187.50")

	snap := s.Snapshot()
	require.Contains(t, snap, "output.voltage")

	s.Set("output.voltage", 190, "190.00")
	assert.Equal(t, 187.5, snap["output.voltage"].Numeric, "snapshot must not reflect later mutations")
}
