package hci

import (
	"testing"
	"time"

	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

func TestEventRouterForwardsCommandComplete(t *testing.T) {
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, nil, newConnTable(), noopLogger())

	resultCh := make(chan []byte, 1)
	go func() {
		rp, _ := d.send(0x0C03, nil, false, 0)
		resultCh <- rp
	}()
	waitUntilPending(t, d)

	r.route(evt.CommandCompleteCode, []byte{1, 0x03, 0x0C, StatusSuccess})
	if rp := <-resultCh; string(rp) != string([]byte{StatusSuccess}) {
		t.Fatalf("got % X", rp)
	}
}

func TestEventRouterDisconnectionRemovesConn(t *testing.T) {
	conns := newConnTable()
	conns.add(0x0042, RoleMaster, AddressTypePublic, [6]byte{1, 2, 3, 4, 5, 6})

	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, nil, conns, noopLogger())

	var got evt.DisconnectionComplete
	r.handlers.Disconnection = func(e evt.DisconnectionComplete) { got = e }
	r.route(evt.DisconnectionCompleteCode, []byte{0x00, 0x42, 0x00, 0x13})

	if conns.Lookup(0x0042) != nil {
		t.Fatal("connection handle was not removed on DisconnectionComplete")
	}
	if got.ConnectionHandle() != 0x0042 {
		t.Fatalf("handler saw handle 0x%04X, want 0x0042", got.ConnectionHandle())
	}
}

func TestEventRouterLEConnectionCompleteTracksConn(t *testing.T) {
	conns := newConnTable()
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, nil, conns, noopLogger())

	payload := []byte{
		evt.LEConnectionCompleteSubCode,
		StatusSuccess,
		0x10, 0x00, // ConnectionHandle
		RoleMaster,
		AddressTypePublic,
		1, 2, 3, 4, 5, 6, // PeerAddress
		0, 0, // ConnInterval
		0, 0, // ConnLatency
		0, 0, // SupervisionTimeout
		0, // MasterClockAccuracy
	}
	r.routeLEMeta(payload)

	cs := conns.Lookup(0x0010)
	if cs == nil {
		t.Fatal("LEConnectionComplete did not register the connection")
	}
	if cs.PeerAddress != (Address{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("PeerAddress = %v", cs.PeerAddress)
	}
}

func TestEventRouterLEConnectionCompleteFailureNotTracked(t *testing.T) {
	conns := newConnTable()
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, nil, conns, noopLogger())

	payload := []byte{
		evt.LEConnectionCompleteSubCode,
		StatusConnectionTimeout,
		0x10, 0x00,
		RoleMaster,
		AddressTypePublic,
		1, 2, 3, 4, 5, 6,
		0, 0, 0, 0, 0, 0, 0,
	}
	r.routeLEMeta(payload)

	if conns.Lookup(0x0010) != nil {
		t.Fatal("a failed LEConnectionComplete must not register a connection")
	}
}

func TestEventRouterAdvertisementFanOut(t *testing.T) {
	conns := newConnTable()
	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, nil, conns, noopLogger())

	var count int
	r.handlers.Advertisement = func(*Advertisement) { count++ }

	payload := legacyReportBytes(EvtTypAdvInd, [6]byte{1, 2, 3, 4, 5, 6}, []byte{0xAA})
	r.routeLEMeta(payload)

	if count != 1 {
		t.Fatalf("got %d Advertisement callbacks, want 1", count)
	}
}

func TestEventRouterNumberOfCompletedPacketsRecyclesPool(t *testing.T) {
	pool := newBufferPool(2, 64)
	pool.Lock()
	pool.Get()
	pool.Get()
	pool.Unlock()

	d := newDispatcher(func(b []byte) error { return nil }, time.Second, noopLogger())
	r := newEventRouter(d, pool, newConnTable(), noopLogger())

	payload := []byte{
		1,          // NumberOfHandles
		0x10, 0x00, // ConnectionHandle(0)
		0x02, 0x00, // HCNumOfCompletedPackets(0)
	}
	r.route(evt.NumberOfCompletedPacketsCode, payload)

	pool.Lock()
	free := len(pool.free)
	pool.Unlock()
	if free != 2 {
		t.Fatalf("got %d free buffers after recycling 2 credits, want 2", free)
	}
}
