package hci

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// header sizes, excluding the leading packet-type tag.
const (
	cmdHeaderSize   = 3 // opcode(2) + len(1)
	aclHeaderSize   = 4 // handle+flags(2) + len(2)
	evtHeaderSize   = 2 // code(1) + len(1)
)

// frameCommand prepends the packet-type tag and command header (opcode,
// length) to payload, per §6 outbound layout.
func frameCommand(opcode uint16, payload []byte) ([]byte, error) {
	if len(payload) > maxHciPayload {
		return nil, errors.Wrapf(ErrInvalidPayloadSize, "command payload %d exceeds %d", len(payload), maxHciPayload)
	}
	out := make([]byte, 1+cmdHeaderSize+len(payload))
	out[0] = PktTypeCommand
	binary.LittleEndian.PutUint16(out[1:3], opcode)
	out[3] = byte(len(payload))
	copy(out[4:], payload)
	return out, nil
}

// frameACL prepends the packet-type tag and ACL header to payload.
// handle occupies bits [0:12), pb occupies [12:14), bc occupies [14:16).
func frameACL(handle uint16, pb, bc uint8, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, errors.Wrapf(ErrInvalidPayloadSize, "ACL payload %d exceeds 65535", len(payload))
	}
	hdr := (handle & 0x0FFF) | (uint16(pb&0x3) << 12) | (uint16(bc&0x3) << 14)
	out := make([]byte, 1+aclHeaderSize+len(payload))
	out[0] = PktTypeACLData
	binary.LittleEndian.PutUint16(out[1:3], hdr)
	binary.LittleEndian.PutUint16(out[3:5], uint16(len(payload)))
	copy(out[5:], payload)
	return out, nil
}

// rawPacket is a decoded, type-tagged HCI packet with its header stripped.
type rawPacket struct {
	Typ     uint8
	Opcode  uint16 // command packets only
	Code    uint8  // event packets only
	Handle  uint16 // ACL packets only; already masked to 12 bits
	PB, BC  uint8  // ACL packets only
	Payload []byte
}

// frameReader buffers bytes arriving from a streaming transport and yields
// complete HCI packets per §4.2. Whatever a read delivers is appended to
// the buffer, so it can hold several packets at once. Only an unknown
// packet-type byte is treated as desync; declared lengths are not checked
// against any bound beyond waiting for that many bytes.
type frameReader struct {
	buf []byte
}

// feed appends newly-read bytes and returns every complete packet that can
// be extracted from the buffer so far, plus an error if the stream is
// malformed (the conservative policy: stop returning packets, caller closes
// the transport).
func (r *frameReader) feed(b []byte) ([]rawPacket, error) {
	r.buf = append(r.buf, b...)

	var out []rawPacket
	for {
		pkt, n, err := r.tryParseOne()
		if err != nil {
			return out, err
		}
		if n == 0 {
			break
		}
		r.buf = r.buf[n:]
		out = append(out, pkt)
	}
	return out, nil
}

// tryParseOne attempts to parse a single packet from the front of r.buf.
// Returns n == 0 when more bytes are needed.
func (r *frameReader) tryParseOne() (rawPacket, int, error) {
	if len(r.buf) < 1 {
		return rawPacket{}, 0, nil
	}
	typ := r.buf[0]
	switch typ {
	case PktTypeEvent:
		return r.tryParseEvent()
	case PktTypeACLData:
		return r.tryParseACL()
	case PktTypeCommand:
		return r.tryParseCommand()
	default:
		return rawPacket{}, 0, errors.Errorf("hci: unknown packet type 0x%02X", typ)
	}
}

func (r *frameReader) tryParseEvent() (rawPacket, int, error) {
	if len(r.buf) < 1+evtHeaderSize {
		return rawPacket{}, 0, nil
	}
	hdr := r.buf[1 : 1+evtHeaderSize]
	plen := int(hdr[1])
	total := 1 + evtHeaderSize + plen
	if len(r.buf) < total {
		return rawPacket{}, 0, nil
	}
	pkt := rawPacket{
		Typ:     PktTypeEvent,
		Code:    hdr[0],
		Payload: append([]byte(nil), r.buf[1+evtHeaderSize:total]...),
	}
	return pkt, total, nil
}

func (r *frameReader) tryParseACL() (rawPacket, int, error) {
	if len(r.buf) < 1+aclHeaderSize {
		return rawPacket{}, 0, nil
	}
	hdr := r.buf[1 : 1+aclHeaderSize]
	rawHdr := binary.LittleEndian.Uint16(hdr[0:2])
	plen := int(binary.LittleEndian.Uint16(hdr[2:4]))
	total := 1 + aclHeaderSize + plen
	if len(r.buf) < total {
		return rawPacket{}, 0, nil
	}
	pkt := rawPacket{
		Typ:     PktTypeACLData,
		Handle:  rawHdr & 0x0FFF,
		PB:      uint8((rawHdr >> 12) & 0x3),
		BC:      uint8((rawHdr >> 14) & 0x3),
		Payload: append([]byte(nil), r.buf[1+aclHeaderSize:total]...),
	}
	return pkt, total, nil
}

func (r *frameReader) tryParseCommand() (rawPacket, int, error) {
	if len(r.buf) < 1+cmdHeaderSize {
		return rawPacket{}, 0, nil
	}
	hdr := r.buf[1 : 1+cmdHeaderSize]
	opcode := binary.LittleEndian.Uint16(hdr[0:2])
	plen := int(hdr[2])
	total := 1 + cmdHeaderSize + plen
	if len(r.buf) < total {
		return rawPacket{}, 0, nil
	}
	pkt := rawPacket{
		Typ:     PktTypeCommand,
		Opcode:  opcode,
		Payload: append([]byte(nil), r.buf[1+cmdHeaderSize:total]...),
	}
	return pkt, total, nil
}
