package hci

import "github.com/pkg/errors"

// CustomCommand is the escape hatch for a command this client has no
// named type for — any OGF, any payload, carried opaquely. It exists so
// a vendor extension or a not-yet-modeled standard command can still be
// sent through the normal C3 dispatch path instead of bypassing it.
type CustomCommand struct {
	opcode  uint16
	payload []byte
}

func (c *CustomCommand) OpCode() int { return int(c.opcode) }
func (c *CustomCommand) Len() int    { return len(c.payload) }

func (c *CustomCommand) Marshal(b []byte) error {
	if len(b) < len(c.payload) {
		return ErrInvalidPayloadSize
	}
	copy(b, c.payload)
	return nil
}

// CustomCommandRP is the return-parameters counterpart: it captures
// whatever bytes CommandComplete carried beyond the status byte, without
// interpreting them. A non-zero status already surfaces as a
// ControllerError before Unmarshal is reached, so b here is always the
// success case.
type CustomCommandRP struct {
	Parameters []byte
}

func (r *CustomCommandRP) Unmarshal(b []byte) error {
	if len(b) < 1 {
		return ErrInvalidPayloadSize
	}
	r.Parameters = append([]byte(nil), b[1:]...)
	return nil
}

// SendVendorSpecificCommand issues a raw opcode/payload pair and returns
// whatever return parameters came back, uninterpreted. ogf identifies the
// opcode group — ogfVendorSpecific for a true vendor extension, or any
// other OGF for a standard command this client has not modeled.
func (h *Host) SendVendorSpecificCommand(ogf uint8, ocf uint16, payload []byte) ([]byte, error) {
	if len(payload) > maxHciPayload {
		return nil, errors.Errorf("invalid payload length %d; max is %d", len(payload), maxHciPayload)
	}
	opcode := (uint16(ogf) << ogfBitShift) | (ocf & 0x3FF)
	c := &CustomCommand{opcode: opcode, payload: payload}
	rp := &CustomCommandRP{}
	if err := h.Send(c, rp); err != nil {
		return nil, err
	}
	return rp.Parameters, nil
}
