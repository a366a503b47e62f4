package hci

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Transmission-Dynamics/bluetooth-hci/cmd"
	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

// fakeTransport is an in-memory Transport: writes are captured on outCh
// for a test (or a scripted responder goroutine) to inspect, and bytes
// pushed onto the pipe are delivered to the Host's read loop exactly as
// a real UART or socket would deliver them.
type fakeTransport struct {
	outCh chan []byte

	pr *io.PipeReader
	pw *io.PipeWriter

	mu     sync.Mutex
	closed bool
}

func newFakeTransport() *fakeTransport {
	pr, pw := io.Pipe()
	return &fakeTransport{outCh: make(chan []byte, 32), pr: pr, pw: pw}
}

func (f *fakeTransport) Write(b []byte) (int, error) {
	f.outCh <- append([]byte(nil), b...)
	return len(b), nil
}

func (f *fakeTransport) Read(b []byte) (int, error) { return f.pr.Read(b) }

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.pw.Close()
}

// push delivers frame to the Host as if the controller had sent it.
func (f *fakeTransport) push(frame []byte) { f.pw.Write(frame) }

func eventFrame(code uint8, payload []byte) []byte {
	return append([]byte{PktTypeEvent, code, byte(len(payload))}, payload...)
}

func commandCompleteFrame(opcode uint16, rp []byte) []byte {
	payload := append([]byte{1, byte(opcode), byte(opcode >> 8)}, rp...)
	return eventFrame(evt.CommandCompleteCode, payload)
}

// bringUpResponder answers every command Init issues during bring-up with
// a scripted CommandComplete, simulating a real controller's replies.
func bringUpResponder(t *testing.T, tr *fakeTransport, bdaddr [6]byte) {
	t.Helper()
	responses := map[uint16][]byte{
		0x0C03: {StatusSuccess},                                     // Reset
		0x1009: append([]byte{StatusSuccess}, bdaddr[:]...),         // ReadBDADDR
		0x1005: {StatusSuccess, 0x40, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00}, // ReadBufferSize
		0x2002: {StatusSuccess, 0x1B, 0x00, 0x04},                   // LEReadBufferSize
		0x2007: {StatusSuccess, 0x00},                                // LEReadAdvertisingChannelTxPower
		0x2001: {StatusSuccess},                                     // LESetEventMask
		0x0C01: {StatusSuccess},                                     // SetEventMask
		0x0C6D: {StatusSuccess},                                     // WriteLEHostSupport
	}
	go func() {
		for frame := range tr.outCh {
			if len(frame) < 4 || frame[0] != PktTypeCommand {
				continue
			}
			opcode := binary.LittleEndian.Uint16(frame[1:3])
			rp, ok := responses[opcode]
			if !ok {
				t.Errorf("bring-up sent an unscripted opcode 0x%04X", opcode)
				continue
			}
			tr.push(commandCompleteFrame(opcode, rp))
		}
	}()
}

func TestHostInitBringUp(t *testing.T) {
	tr := newFakeTransport()
	bdaddr := [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	bringUpResponder(t, tr, bdaddr)

	h, err := NewHost(tr, OptCommandTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}
	defer h.Close()

	if err := h.Init(); err != nil {
		t.Fatalf("Init: %s", err)
	}
	if h.Address() != Address(bdaddr) {
		t.Fatalf("Address() = %v, want %v", h.Address(), Address(bdaddr))
	}
	if h.pool == nil {
		t.Fatal("buffer pool was not sized from LEReadBufferSize")
	}
	if h.bufCount != 4 || h.bufSize != 0x1B {
		t.Fatalf("pool sized as count=%d size=%d, want count=4 size=27", h.bufCount, h.bufSize)
	}
}

func TestHostInitResetFailure(t *testing.T) {
	tr := newFakeTransport()
	go func() {
		for frame := range tr.outCh {
			if len(frame) < 4 {
				continue
			}
			opcode := binary.LittleEndian.Uint16(frame[1:3])
			if opcode == 0x0C03 {
				tr.push(commandCompleteFrame(opcode, []byte{StatusHardwareFailure}))
				return
			}
		}
	}()

	h, err := NewHost(tr, OptCommandTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}
	defer h.Close()

	if err := h.Init(); err == nil {
		t.Fatal("expected Init to fail when Reset returns a controller error")
	}
}

func TestHostSendBusyRejection(t *testing.T) {
	tr := newFakeTransport()
	h, err := NewHost(tr)
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}
	defer h.Close()
	h.wg.Add(1)
	go h.readLoop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Send(&cmd.Reset{}, nil)
	}()
	waitUntilPending(t, h.disp)

	err = h.Send(&cmd.Reset{}, nil)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}

	// Unblock the first call so the test can close cleanly.
	tr.push(commandCompleteFrame(uint16((&cmd.Reset{}).OpCode()), []byte{StatusSuccess}))
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error from the first call: %s", err)
	}
}

func TestHostSendTimeoutThenRecovery(t *testing.T) {
	tr := newFakeTransport()
	h, err := NewHost(tr, OptCommandTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}
	defer h.Close()
	h.wg.Add(1)
	go h.readLoop()

	if err := h.Send(&cmd.Reset{}, nil); !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}

	// After a timeout the dispatcher is idle again; a later Send that
	// does get answered should succeed.
	go func() {
		for frame := range tr.outCh {
			opcode := binary.LittleEndian.Uint16(frame[1:3])
			tr.push(commandCompleteFrame(opcode, []byte{StatusSuccess}))
		}
	}()
	if err := h.Send(&cmd.Reset{}, &cmd.ResetRP{}); err != nil {
		t.Fatalf("unexpected error after recovery: %s", err)
	}
}

func TestHostAdvertisementEndToEnd(t *testing.T) {
	tr := newFakeTransport()
	bdaddr := [6]byte{1, 2, 3, 4, 5, 6}
	bringUpResponder(t, tr, bdaddr)

	var mu sync.Mutex
	var seen []*Advertisement
	h, err := NewHost(tr, OptEventHandlers(EventHandlers{
		Advertisement: func(a *Advertisement) {
			mu.Lock()
			seen = append(seen, a)
			mu.Unlock()
		},
	}))
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}
	defer h.Close()

	if err := h.Init(); err != nil {
		t.Fatalf("Init: %s", err)
	}

	report := legacyReportBytes(EvtTypAdvInd, [6]byte{9, 9, 9, 9, 9, 9}, []byte{0x01, 0x02})
	tr.push(eventFrame(evt.LEMetaCode, report))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("got %d advertisement callbacks, want 1", len(seen))
	}
	if seen[0].Addr != (Address{9, 9, 9, 9, 9, 9}) {
		t.Fatalf("Addr = %v", seen[0].Addr)
	}
}

func TestHostCloseAbandonsPending(t *testing.T) {
	tr := newFakeTransport()
	h, err := NewHost(tr)
	if err != nil {
		t.Fatalf("NewHost: %s", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- h.Send(&cmd.Reset{}, nil) }()
	waitUntilPending(t, h.disp)

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if err := <-errCh; !errors.Is(err, ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
	if err := h.Send(&cmd.Reset{}, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("got %v, want ErrClosed after Close", err)
	}
}
