package driver

import (
	"fmt"

	"apc-modbus-hid-driver/internal/modbus"
)

// InstCmd implements the instcmd(name, value) hook spec.md §6 names as
// consumed from collaborators: it looks up name in the binding table and
// performs the write appropriate to its kind.
//
// Command entries (AccessCommand) always write their fixed Bitmask
// regardless of value, per spec.md §4.H. RW entries encode value per their
// DataType (only BINARYPOINT_* writes are supported here, matching the
// binding table's current RW entries, all of which are delay registers).
func (p *Poller) InstCmd(name string, value float64) error {
	b, ok := modbus.Find(name)
	if !ok {
		return fmt.Errorf("driver: instcmd: unknown binding %q", name)
	}
	if b.Access&modbus.AccessWrite == 0 {
		return fmt.Errorf("driver: instcmd: %q is not writable", name)
	}

	var data []byte
	if b.IsCommand() {
		data = make([]byte, b.ByteLen())
		modbus.UintToBE(b.Bitmask, data, b.ByteLen())
	} else {
		if modbus.DecodeKind(b.DataType) != modbus.KindBinaryPoint {
			return fmt.Errorf("driver: instcmd: %q has no writable encoding for datatype", name)
		}
		data = modbus.EncodeBinaryPoint(b.DataType, value, b.ByteLen())
	}

	if err := p.Engine.WriteMultiple(b.Register, b.Length, data); err != nil {
		return fmt.Errorf("driver: instcmd %q: %w", name, err)
	}

	formatted := b.Formatter.Format(value)
	p.Store.Set(name, value, formatted)
	return nil
}
