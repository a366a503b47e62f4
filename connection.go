package hci

import "sync"

// ConnState is a snapshot of one tracked connection handle, populated
// from LeConnectionComplete/LeEnhancedConnectionComplete and retired on
// DisconnectionComplete — the bookkeeping needed to demultiplex
// per-connection events and command completions without a GATT layer
// above this one.
type ConnState struct {
	Handle          uint16
	Role            uint8
	PeerAddressType uint8
	PeerAddress     Address
}

// connTable tracks live connection handles. It exists so callers can
// look up a handle's peer without keeping their own map, and so the
// event router can clear a handle's state as soon as a disconnection is
// observed.
type connTable struct {
	mu    sync.RWMutex
	byHandle map[uint16]*ConnState
}

func newConnTable() *connTable {
	return &connTable{byHandle: make(map[uint16]*ConnState)}
}

func (t *connTable) add(handle uint16, role, peerAddrType uint8, peerAddr [6]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byHandle[handle] = &ConnState{
		Handle:          handle,
		Role:            role,
		PeerAddressType: peerAddrType,
		PeerAddress:     Address(peerAddr),
	}
}

func (t *connTable) remove(handle uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byHandle, handle)
}

// Lookup returns the tracked state for handle, or nil if it is not a
// live connection.
func (t *connTable) Lookup(handle uint16) *ConnState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byHandle[handle]
}

// Handles returns every currently live connection handle.
func (t *connTable) Handles() []uint16 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]uint16, 0, len(t.byHandle))
	for h := range t.byHandle {
		out = append(out, h)
	}
	return out
}
