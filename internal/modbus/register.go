package modbus

import "log"

// ReadHolding implements component G's read_holding: FC 0x03 over nregs
// registers starting at reg. The returned slice is nregs*2 bytes. A
// byte-count disagreement in the response is a soft inconsistency: it is
// logged but the data is still returned.
func (e *Engine) ReadHolding(reg uint16, nregs uint16) ([]byte, error) {
	if nregs == 0 {
		return nil, fatalf("modbus: read_holding: nregs must be > 0")
	}

	txPDU := []byte{byte(reg >> 8), byte(reg), byte(nregs >> 8), byte(nregs)}
	nbytes := int(nregs) * 2

	rxPDU, err := e.SendAndWait(fcReadHoldingRegs, txPDU, nbytes+1)
	if err != nil {
		return nil, err
	}

	count := int(rxPDU[0])
	if count != nbytes {
		log.Printf("modbus: read_holding: reg=%d response byte count %d disagrees with requested %d", reg, count, nbytes)
	}

	return rxPDU[1:], nil
}

// WriteMultiple implements component G's write_multiple: FC 0x10 writing
// data (nregs*2 bytes) starting at reg. The response's echoed
// reg/nregs header must match exactly or the write is considered failed.
func (e *Engine) WriteMultiple(reg uint16, nregs uint16, data []byte) error {
	if nregs == 0 {
		return fatalf("modbus: write_multiple: nregs must be > 0")
	}
	nbytes := int(nregs) * 2
	if len(data) != nbytes {
		return fatalf("modbus: write_multiple: data length %d does not match nregs*2 %d", len(data), nbytes)
	}

	txPDU := make([]byte, 0, 5+nbytes)
	txPDU = append(txPDU, byte(reg>>8), byte(reg), byte(nregs>>8), byte(nregs), byte(nbytes))
	txPDU = append(txPDU, data...)

	rxPDU, err := e.SendAndWait(fcWriteMultipleRegs, txPDU, 4)
	if err != nil {
		return err
	}

	for i := 0; i < 4; i++ {
		if rxPDU[i] != txPDU[i] {
			return transientf("modbus: write_multiple: response header mismatch at byte %d", i)
		}
	}
	return nil
}
