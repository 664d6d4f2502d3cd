package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-modbus-hid-driver/internal/driver"
	"apc-modbus-hid-driver/internal/modbus"
	"apc-modbus-hid-driver/internal/store"
)

// nullTransport never has data available; it is only ever exercised by
// instcmd calls against unknown bindings, which fail before reaching the
// transport.
type nullTransport struct{}

func (nullTransport) Write(report []byte) (int, error) { return len(report), nil }
func (nullTransport) Read(timeout time.Duration) (int, []byte, error) {
	return 0, nil, modbus.ErrReadTimedOut
}

func newTestServer() (*Server, *store.Store) {
	engine := modbus.NewEngine(nullTransport{}, 1)
	st := store.New()
	poller := driver.NewPoller(engine, st)
	return New(poller, st), st
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, float64(0), body["cycles"])
}

func TestHandleStatusReturnsStoreSnapshot(t *testing.T) {
	s, st := newTestServer()
	st.Set("output.voltage", 187.5, "187.50")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "187.50")
}

func TestHandleStatusOneUnknownVariable(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status/no.such.variable", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInstCmdBadJSON(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/instcmd", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInstCmdUnknownBinding(t *testing.T) {
	s, _ := newTestServer()

	body, err := json.Marshal(map[string]any{"name": "no.such.variable", "value": 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/instcmd", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
