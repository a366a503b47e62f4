package hci

import (
	"bytes"
	"testing"
)

func TestFrameCommand(t *testing.T) {
	frame, err := frameCommand(0x0C03, []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []byte{PktTypeCommand, 0x03, 0x0C, 0x02, 0x01, 0x02}
	if !bytes.Equal(frame, want) {
		t.Fatalf("got % X, want % X", frame, want)
	}
}

func TestFrameCommandPayloadTooLarge(t *testing.T) {
	_, err := frameCommand(0x0C03, make([]byte, maxHciPayload+1))
	if err == nil {
		t.Fatal("expected an error for an oversized command payload")
	}
}

func TestFrameACL(t *testing.T) {
	frame, err := frameACL(0x0040, pbfCompleteL2CAPPDU, BroadcastPointToPoint, []byte{0xAA, 0xBB})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// handle 0x0040, pb=0x03 in bits [12:14) -> header 0x3040
	want := []byte{PktTypeACLData, 0x40, 0x30, 0x02, 0x00, 0xAA, 0xBB}
	if !bytes.Equal(frame, want) {
		t.Fatalf("got % X, want % X", frame, want)
	}
}

func TestFrameReaderEvent(t *testing.T) {
	var r frameReader
	evtFrame := []byte{PktTypeEvent, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	pkts, err := r.feed(evtFrame)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(pkts) != 1 {
		t.Fatalf("got %d packets, want 1", len(pkts))
	}
	if pkts[0].Typ != PktTypeEvent || pkts[0].Code != 0x0E {
		t.Fatalf("unexpected packet: %+v", pkts[0])
	}
	if !bytes.Equal(pkts[0].Payload, []byte{0x01, 0x03, 0x0C, 0x00}) {
		t.Fatalf("unexpected payload: % X", pkts[0].Payload)
	}
	if len(r.buf) != 0 {
		t.Fatalf("buffer not drained: %d bytes left", len(r.buf))
	}
}

// TestFrameReaderPartialDelivery exercises the core reassembly rule: a
// packet delivered byte-by-byte yields nothing until the final byte
// arrives, then yields exactly one packet.
func TestFrameReaderPartialDelivery(t *testing.T) {
	var r frameReader
	full := []byte{PktTypeEvent, 0x0E, 0x04, 0x01, 0x03, 0x0C, 0x00}
	for i := 0; i < len(full)-1; i++ {
		pkts, err := r.feed(full[i : i+1])
		if err != nil {
			t.Fatalf("unexpected error feeding byte %d: %s", i, err)
		}
		if len(pkts) != 0 {
			t.Fatalf("got a packet before the frame was complete, at byte %d", i)
		}
	}
	pkts, err := r.feed(full[len(full)-1:])
	if err != nil {
		t.Fatalf("unexpected error on final byte: %s", err)
	}
	if len(pkts) != 1 {
		t.Fatalf("got %d packets after final byte, want 1", len(pkts))
	}
}

// TestFrameReaderBackToBack checks that two packets arriving in one Read
// are both extracted and that the buffer holds neither afterward.
func TestFrameReaderBackToBack(t *testing.T) {
	var r frameReader
	one := []byte{PktTypeEvent, 0x0E, 0x01, 0xAA}
	two := []byte{PktTypeEvent, 0x10, 0x01, 0xBB}
	pkts, err := r.feed(append(append([]byte{}, one...), two...))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(pkts) != 2 {
		t.Fatalf("got %d packets, want 2", len(pkts))
	}
	if pkts[0].Code != 0x0E || pkts[1].Code != 0x10 {
		t.Fatalf("packets out of order: %+v", pkts)
	}
	if len(r.buf) != 0 {
		t.Fatalf("buffer not drained: %d bytes left", len(r.buf))
	}
}

func TestFrameReaderACL(t *testing.T) {
	var r frameReader
	// handle 5, pb=2 (controller-to-host start), bc=0, 3-byte payload
	hdr := uint16(5) | uint16(pbfControllerToHostStart)<<12
	frame := []byte{PktTypeACLData, byte(hdr), byte(hdr >> 8), 0x03, 0x00, 1, 2, 3}
	pkts, err := r.feed(frame)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(pkts) != 1 {
		t.Fatalf("got %d packets, want 1", len(pkts))
	}
	p := pkts[0]
	if p.Handle != 5 || p.PB != pbfControllerToHostStart || p.BC != 0 {
		t.Fatalf("unexpected ACL header decode: %+v", p)
	}
	if !bytes.Equal(p.Payload, []byte{1, 2, 3}) {
		t.Fatalf("unexpected payload: % X", p.Payload)
	}
}

// TestFrameReaderUnknownType verifies the desync policy: an unrecognized
// leading type byte is reported as an error rather than silently skipped.
func TestFrameReaderUnknownType(t *testing.T) {
	var r frameReader
	_, err := r.feed([]byte{0x99, 0x00, 0x00})
	if err == nil {
		t.Fatal("expected an error for an unknown packet type")
	}
}
