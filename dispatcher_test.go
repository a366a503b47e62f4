package hci

import (
	"errors"
	"testing"
	"time"

	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

func noopLogger() Logger { return GetLogger() }

func TestDispatcherBusy(t *testing.T) {
	writes := make(chan []byte, 4)
	d := newDispatcher(func(b []byte) error { writes <- b; return nil }, time.Second, noopLogger())

	go d.send(0x0C03, nil, false, 0)
	<-writes // wait for the first command to actually be written before racing the second

	if _, err := d.send(0x1000, nil, false, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}
}

func TestDispatcherTimeout(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, 10*time.Millisecond, noopLogger())
	_, err := d.send(0x0C03, nil, false, 0)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
	if d.busy() {
		t.Fatal("dispatcher still reports busy after a timed-out command")
	}
}

// TestDispatcherCompleteCommand is a regression test for handing back the
// return parameters whole, status byte included: a CommandRP's first
// declared field is Status, so stripping it before resolve would shift
// every other field's unmarshal by one byte.
func TestDispatcherCompleteCommand(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan struct {
		rp  []byte
		err error
	}, 1)
	go func() {
		rp, err := d.send(0x0C03, nil, false, 0)
		resultCh <- struct {
			rp  []byte
			err error
		}{rp, err}
	}()

	waitUntilPending(t, d)

	// NumHCICommandPackets, opcode, then return parameters: status(0) +
	// two payload bytes that a caller's CommandRP expects right after it.
	e := evt.CommandComplete([]byte{1, 0x03, 0x0C, StatusSuccess, 0xAA, 0xBB})
	d.completeCommand(e)

	r := <-resultCh
	if r.err != nil {
		t.Fatalf("unexpected error: %s", r.err)
	}
	want := []byte{StatusSuccess, 0xAA, 0xBB}
	if string(r.rp) != string(want) {
		t.Fatalf("got % X, want % X (status byte must be included)", r.rp, want)
	}
}

func TestDispatcherCompleteCommandControllerError(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan error, 1)
	go func() {
		_, err := d.send(0x0C03, nil, false, 0)
		resultCh <- err
	}()
	waitUntilPending(t, d)

	e := evt.CommandComplete([]byte{1, 0x03, 0x0C, StatusCommandDisallowed})
	d.completeCommand(e)

	err := <-resultCh
	var cerr ControllerError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want a ControllerError", err)
	}
	if cerr.Status != StatusCommandDisallowed {
		t.Fatalf("got status 0x%02X, want 0x%02X", cerr.Status, StatusCommandDisallowed)
	}
}

func TestDispatcherDiscardsMismatchedOpcode(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan []byte, 1)
	go func() {
		rp, _ := d.send(0x0C03, nil, false, 0)
		resultCh <- rp
	}()
	waitUntilPending(t, d)

	// A completion for a different opcode must be discarded silently,
	// leaving the slot pending.
	d.completeCommand(evt.CommandComplete([]byte{1, 0x00, 0x10, StatusSuccess}))
	if !d.busy() {
		t.Fatal("dispatcher cleared its pending slot on a mismatched opcode")
	}

	d.completeCommand(evt.CommandComplete([]byte{1, 0x03, 0x0C, StatusSuccess, 0x01}))
	rp := <-resultCh
	if string(rp) != string([]byte{StatusSuccess, 0x01}) {
		t.Fatalf("got % X after the matching completion", rp)
	}
}

func TestDispatcherHandleMatching(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan []byte, 1)
	go func() {
		rp, _ := d.send(0x0C2D, nil, true, 0x0042)
		resultCh <- rp
	}()
	waitUntilPending(t, d)

	// Return parameters for the wrong connection handle (0x0099) must be
	// discarded even though the opcode matches.
	wrongHandle := []byte{1, 0x2D, 0x0C, StatusSuccess, 0x99, 0x00, 0x04}
	d.completeCommand(evt.CommandComplete(wrongHandle))
	if !d.busy() {
		t.Fatal("dispatcher cleared its pending slot on a mismatched handle")
	}

	rightHandle := []byte{1, 0x2D, 0x0C, StatusSuccess, 0x42, 0x00, 0x04}
	d.completeCommand(evt.CommandComplete(rightHandle))
	rp := <-resultCh
	if len(rp) == 0 {
		t.Fatal("expected return parameters for the matching handle")
	}
}

func TestDispatcherCompleteStatus(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan error, 1)
	go func() {
		_, err := d.send(0x0008, nil, false, 0)
		resultCh <- err
	}()
	waitUntilPending(t, d)

	d.completeStatus(evt.CommandStatus([]byte{StatusSuccess, 1, 0x08, 0x00}))
	if err := <-resultCh; err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestDispatcherCancelAbandonsPending(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())

	resultCh := make(chan error, 1)
	go func() {
		_, err := d.send(0x0C03, nil, false, 0)
		resultCh <- err
	}()
	waitUntilPending(t, d)

	d.cancel(ErrClosed)
	if err := <-resultCh; !errors.Is(err, ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
}

// waitUntilPending polls until d has a command outstanding, avoiding a
// fixed sleep racing against the goroutine that calls send.
func waitUntilPending(t *testing.T, d *dispatcher) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if d.busy() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("dispatcher never became pending")
}
