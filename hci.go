package hci

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Transmission-Dynamics/bluetooth-hci/cmd"
	"github.com/Transmission-Dynamics/bluetooth-hci/internal/trace"
)

// Host is the client: it owns one Transport, the single-outstanding C3
// dispatcher that serializes commands over it, and the C4 router that
// classifies inbound events and fans them out to whatever handlers were
// attached via OptEventHandlers.
type Host struct {
	transport Transport
	log       Logger

	cmdTimeout time.Duration
	params     *params

	bufCount       int
	bufSize        int
	poolOverridden bool
	pool           *bufferPool

	disp   *dispatcher
	conns  *connTable
	router *eventRouter

	handlers    EventHandlers
	errorHandler func(error)
	smpForward   func(handle uint16, pdu []byte)

	bdAddr Address
	trace  *trace.Recorder

	reader  frameReader
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewHost constructs a Host over transport and applies opts, but does not
// talk to the controller yet — that happens in Init.
func NewHost(transport Transport, opts ...Option) (*Host, error) {
	h := &Host{
		transport:  transport,
		log:        GetLogger(),
		cmdTimeout: defaultCommandTimeout,
		params:     newParams(),
		conns:      newConnTable(),
		closeCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	h.disp = newDispatcher(h.write, h.cmdTimeout, h.log)
	h.router = newEventRouter(h.disp, nil, h.conns, h.log)
	h.router.handlers = h.handlers
	return h, nil
}

func (h *Host) write(b []byte) error {
	if h.trace != nil {
		h.trace.Trace(trace.DirectionOut, b)
	}
	_, err := h.transport.Write(b)
	return err
}

// Init brings the controller up per §5's bring-up sequence: Reset clears
// any state left by a previous session, the two buffer-size queries size
// the ACL pool, LEReadAdvertisingChannelTxPower is queried for informational
// purposes, and the three event-mask/host-support writes enable the LE
// event stream this client depends on.
func (h *Host) Init() error {
	h.wg.Add(1)
	go h.readLoop()

	if err := h.Send(&cmd.Reset{}, &cmd.ResetRP{}); err != nil {
		return errors.Wrap(err, "hci: reset")
	}
	if h.pool != nil {
		h.pool.PutAll()
	}

	bdaddrRP := &cmd.ReadBDADDRRP{}
	if err := h.Send(&cmd.ReadBDADDR{}, bdaddrRP); err != nil {
		return errors.Wrap(err, "hci: read bdaddr")
	}
	h.bdAddr = Address(bdaddrRP.BDADDR)

	bufRP := &cmd.ReadBufferSizeRP{}
	if err := h.Send(&cmd.ReadBufferSize{}, bufRP); err != nil {
		return errors.Wrap(err, "hci: read buffer size")
	}

	leBufRP := &cmd.LEReadBufferSizeRP{}
	if err := h.Send(&cmd.LEReadBufferSize{}, leBufRP); err != nil {
		return errors.Wrap(err, "hci: le read buffer size")
	}

	if !h.poolOverridden {
		h.bufCount = int(leBufRP.HCTotalNumLEDataPackets)
		h.bufSize = int(leBufRP.HCLEDataPacketLength)
		if h.bufCount == 0 {
			h.bufCount = int(bufRP.HCTotalNumACLDataPackets)
			h.bufSize = int(bufRP.HCACLDataPacketLength)
		}
	}
	if h.bufCount > 0 && h.bufSize > 0 {
		h.pool = newBufferPool(h.bufCount, h.bufSize)
		h.router.pool = h.pool
	}

	txRP := &cmd.LEReadAdvertisingChannelTxPowerRP{}
	if err := h.Send(&cmd.LEReadAdvertisingChannelTxPower{}, txRP); err != nil {
		h.log.Warnf("hci: read advertising channel tx power: %s", err)
	}

	leMask := &cmd.LESetEventMask{LEEventMask: defaultLEEventMask}
	if err := h.Send(leMask, &cmd.LESetEventMaskRP{}); err != nil {
		return errors.Wrap(err, "hci: le set event mask")
	}

	mask := &cmd.SetEventMask{EventMask: defaultEventMask}
	if err := h.Send(mask, &cmd.SetEventMaskRP{}); err != nil {
		return errors.Wrap(err, "hci: set event mask")
	}

	hostSupport := &cmd.WriteLEHostSupport{LESupportedHost: 1, SimultaneousLEHost: 0}
	if err := h.Send(hostSupport, &cmd.WriteLEHostSupportRP{}); err != nil {
		return errors.Wrap(err, "hci: write le host support")
	}

	return nil
}

// Address returns the controller's BD_ADDR, as reported during Init.
func (h *Host) Address() Address { return h.bdAddr }

// Conn returns the tracked state of a live connection handle, or nil.
func (h *Host) Conn(handle uint16) *ConnState { return h.conns.Lookup(handle) }

// Send issues c and, if rp is non-nil, decodes its return parameters into
// rp. It blocks until the command completes, times out, or is rejected
// because another command is already pending.
func (h *Host) Send(c cmd.Command, rp cmd.CommandRP) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.mu.Unlock()

	payload := make([]byte, c.Len())
	if err := c.Marshal(payload); err != nil {
		return err
	}

	hasHandle, handle := commandHandle(c)
	raw, err := h.disp.send(uint16(c.OpCode()), payload, hasHandle, handle)
	if err != nil {
		return err
	}
	if rp == nil {
		return nil
	}
	if err := rp.Unmarshal(raw); err != nil {
		return ErrInvalidPayloadSize
	}
	return nil
}

func commandHandle(c cmd.Command) (bool, uint16) {
	if hc, ok := c.(cmd.HandleCarrier); ok {
		return true, hc.ConnHandle()
	}
	return false, 0
}

// readLoop owns the transport's read side: it pulls bytes, reassembles
// packets via frameReader, and routes events/forwards command completions.
// A transport error or parse failure closes the Host and abandons any
// pending command, per §7's policy that recovery from a desynchronized
// stream is by reconnecting, not by resynchronizing in place.
func (h *Host) readLoop() {
	defer h.wg.Done()
	reader, ok := h.transport.(transportReader)
	if !ok {
		return
	}
	buf := make([]byte, 4096)
	for {
		n, err := reader.Read(buf)
		if err != nil {
			h.fail(wrapTransportErr(err, "read"))
			return
		}
		if h.trace != nil {
			h.trace.Trace(trace.DirectionIn, buf[:n])
		}
		pkts, perr := h.reader.feed(buf[:n])
		for _, pkt := range pkts {
			h.dispatchPacket(pkt)
		}
		if perr != nil {
			h.fail(errors.Wrap(perr, "hci: frame sync lost"))
			return
		}
		select {
		case <-h.closeCh:
			return
		default:
		}
	}
}

func (h *Host) dispatchPacket(pkt rawPacket) {
	switch pkt.Typ {
	case PktTypeEvent:
		if h.router != nil {
			h.router.route(pkt.Code, pkt.Payload)
		}
	case PktTypeACLData:
		if h.smpForward != nil {
			h.smpForward(pkt.Handle, pkt.Payload)
		}
	default:
		h.log.Debugf("hci: dropping unexpected packet type 0x%02X on read loop", pkt.Typ)
	}
}

// fail tears the Host down in response to a transport-level failure:
// any pending command is abandoned with err, and further Sends return
// ErrClosed.
func (h *Host) fail(err error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.disp.cancel(err)
	if h.errorHandler != nil {
		h.errorHandler(err)
	}
}

// Close stops the read loop and closes the transport. Any command still
// pending is abandoned with ErrClosed.
func (h *Host) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.closeCh)
	h.disp.cancel(ErrClosed)
	err := h.transport.Close()
	h.wg.Wait()
	if err != nil && err != io.EOF {
		return wrapTransportErr(err, "close")
	}
	return nil
}

// defaultEventMask/defaultLEEventMask enable every event this client
// classifies in routeLEMeta/route, per §5's bring-up sequence.
const (
	defaultEventMask   uint64 = 0x3FFFFFFFFFFFFFFF
	defaultLEEventMask uint64 = 0x00000000000817FF
)
