//go:build !mips && !mipsle
// +build !mips,!mipsle

package modbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"
)

// Default USB identifiers for the APC Smart-UPS MODBUS-over-HID transport.
const (
	USBVendorID  = gousb.ID(0x051D)
	USBProductID = gousb.ID(0x0003)

	EndpointOut = 0x01
	EndpointIn  = 0x81
)

// USBTransport implements Transport over a claimed gousb interface,
// grounded on the teacher's OpenUSBDevice/SendPacket/ReadPacket shape.
type USBTransport struct {
	ctx    *gousb.Context
	device *gousb.Device
	config *gousb.Config
	intf   *gousb.Interface
	epOut  *gousb.OutEndpoint
	epIn   *gousb.InEndpoint
}

// OpenUSBTransport opens and claims the APC Smart-UPS MODBUS-over-HID
// device at vid/pid, following the teacher's Context -> Device -> Config
// -> Interface -> Endpoint lifecycle.
func OpenUSBTransport(vid, pid gousb.ID) (*USBTransport, error) {
	ctx := gousb.NewContext()

	device, err := ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: open device: %w", err)
	}
	if device == nil {
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: device not found (VID:0x%04x PID:0x%04x)", vid, pid)
	}

	config, err := device.Config(1)
	if err != nil {
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: set config: %w", err)
	}

	intf, err := config.Interface(0, 0)
	if err != nil {
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: claim interface: %w", err)
	}

	epOut, err := intf.OutEndpoint(EndpointOut)
	if err != nil {
		intf.Close()
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: open OUT endpoint: %w", err)
	}

	epIn, err := intf.InEndpoint(EndpointIn)
	if err != nil {
		intf.Close()
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("modbus: usb: open IN endpoint: %w", err)
	}

	return &USBTransport{
		ctx:    ctx,
		device: device,
		config: config,
		intf:   intf,
		epOut:  epOut,
		epIn:   epIn,
	}, nil
}

// Close releases the interface, config, device and context, in that order.
func (t *USBTransport) Close() error {
	if t.intf != nil {
		t.intf.Close()
	}
	if t.config != nil {
		t.config.Close()
	}
	if t.device != nil {
		t.device.Close()
	}
	if t.ctx != nil {
		t.ctx.Close()
	}
	return nil
}

// Write sends one 64-byte HID report out the OUT endpoint.
func (t *USBTransport) Write(report []byte) (int, error) {
	n, err := t.epOut.Write(report)
	if err != nil {
		return n, fmt.Errorf("modbus: usb: write failed: %w", err)
	}
	return n, nil
}

// Read reads one HID report from the IN endpoint, translating
// context-deadline-exceeded into ErrReadTimedOut so the core's retry
// classification stays transport-agnostic.
func (t *USBTransport) Read(timeout time.Duration) (int, []byte, error) {
	buf := make([]byte, ReportSize)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := t.epIn.ReadContext(ctx, buf)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, ErrReadTimedOut
		}
		return 0, nil, fmt.Errorf("modbus: usb: read failed: %w", err)
	}
	return n, buf, nil
}

// IsDeviceAvailable reports whether a device matching vid/pid is currently
// enumerated, without claiming it.
func IsDeviceAvailable(vid, pid gousb.ID) bool {
	ctx := gousb.NewContext()
	defer ctx.Close()

	device, err := ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil || device == nil {
		return false
	}
	device.Close()
	return true
}
