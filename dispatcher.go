package hci

import (
	"sync"
	"time"

	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

// dispatchState is the C3 state enum: Idle <-> Pending. No other states.
type dispatchState int

const (
	stateIdle dispatchState = iota
	statePending
)

// pendingCommand is the single outstanding-command slot.
type pendingCommand struct {
	opcode      uint16
	hasHandle   bool
	handle      uint16
	deadline    time.Time
	timer       *time.Timer
	resolve     func(returnParams []byte, err error)
}

// dispatcher enforces §4.3: at most one outstanding command, matched by
// opcode (and, for per-connection commands, by an embedded connection
// handle), with a per-call timeout and discard-on-mismatch semantics.
type dispatcher struct {
	mu      sync.Mutex
	state   dispatchState
	pending *pendingCommand
	write   func([]byte) error
	timeout time.Duration
	log     Logger
}

func newDispatcher(write func([]byte) error, timeout time.Duration, log Logger) *dispatcher {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &dispatcher{
		state:   stateIdle,
		write:   write,
		timeout: timeout,
		log:     log,
	}
}

// send frames and writes the command, occupying the pending slot for its
// lifetime. handle, when hasHandle is true, is matched against the first
// two bytes of the return parameters on completion, per the per-connection
// matching rule.
func (d *dispatcher) send(opcode uint16, payload []byte, hasHandle bool, handle uint16) ([]byte, error) {
	resultCh := make(chan struct {
		rp  []byte
		err error
	}, 1)

	d.mu.Lock()
	if d.state == statePending {
		d.mu.Unlock()
		return nil, ErrBusy
	}

	frame, err := frameCommand(opcode, payload)
	if err != nil {
		d.mu.Unlock()
		return nil, err
	}

	pc := &pendingCommand{
		opcode:    opcode,
		hasHandle: hasHandle,
		handle:    handle,
		deadline:  time.Now().Add(d.timeout),
		resolve: func(rp []byte, err error) {
			resultCh <- struct {
				rp  []byte
				err error
			}{rp, err}
		},
	}
	d.pending = pc
	d.state = statePending
	pc.timer = time.AfterFunc(d.timeout, func() { d.timeoutPending(pc) })
	d.mu.Unlock()

	if err := d.write(frame); err != nil {
		d.clearIfCurrent(pc)
		return nil, wrapTransportErr(err, "command write")
	}

	r := <-resultCh
	return r.rp, r.err
}

// timeoutPending fires when a pending command's deadline expires without
// a matching completion. Recovery from this point is by Reset only.
func (d *dispatcher) timeoutPending(pc *pendingCommand) {
	if d.clearIfCurrent(pc) {
		d.log.Warnf("command 0x%04X timed out after %s", pc.opcode, d.timeout)
		pc.resolve(nil, ErrTimeout)
	}
}

// clearIfCurrent clears the pending slot iff it is still pc, returning
// whether it did so. Used by both timeout and cancellation paths so a
// late completion racing a timeout cannot double-resolve the caller.
func (d *dispatcher) clearIfCurrent(pc *pendingCommand) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != pc {
		return false
	}
	d.pending = nil
	d.state = stateIdle
	return true
}

// cancel abandons the pending command, if any, without resolving it with
// a value the caller is waiting on — used when the transport itself has
// failed and all pending state must be abandoned, per §7 policy.
func (d *dispatcher) cancel(err error) {
	d.mu.Lock()
	pc := d.pending
	d.pending = nil
	d.state = stateIdle
	d.mu.Unlock()
	if pc == nil {
		return
	}
	if pc.timer != nil {
		pc.timer.Stop()
	}
	pc.resolve(nil, err)
}

// completeCommand handles an arriving CommandComplete, matching it
// against the pending slot per §4.3. Mismatched opcodes (and, for
// per-connection commands, mismatched handles) are discarded silently.
// The NumHCICommandPackets count the event carries is not tracked.
func (d *dispatcher) completeCommand(e evt.CommandComplete) {
	opcode := e.CommandOpcode()
	rp := e.ReturnParameters()

	d.mu.Lock()
	pc := d.pending
	if pc == nil || pc.opcode != opcode {
		d.mu.Unlock()
		return
	}
	if pc.hasHandle {
		if len(rp) < 3 {
			d.mu.Unlock()
			return
		}
		h := uint16(rp[1]) | uint16(rp[2])<<8
		if h != pc.handle {
			d.mu.Unlock()
			return
		}
	}
	d.pending = nil
	d.state = stateIdle
	d.mu.Unlock()

	if pc.timer != nil {
		pc.timer.Stop()
	}

	if len(rp) < 1 {
		pc.resolve(nil, ErrInvalidPayloadSize)
		return
	}
	status := rp[0]
	if status != StatusSuccess {
		pc.resolve(nil, ControllerError{Opcode: int(opcode), Status: status})
		return
	}
	// Return parameters are handed back whole, status byte included, so
	// they unmarshal directly into a CommandRP whose first field is Status.
	pc.resolve(rp, nil)
}

// completeStatus handles an arriving CommandStatus, which resolves
// commands that do not return parameters beyond status (e.g. Disconnect,
// LeCreateConnection).
func (d *dispatcher) completeStatus(e evt.CommandStatus) {
	opcode := e.CommandOpcode()

	d.mu.Lock()
	pc := d.pending
	if pc == nil || pc.opcode != opcode {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.state = stateIdle
	d.mu.Unlock()

	if pc.timer != nil {
		pc.timer.Stop()
	}

	status := e.Status()
	if status != StatusSuccess {
		pc.resolve(nil, ControllerError{Opcode: int(opcode), Status: status})
		return
	}
	pc.resolve(nil, nil)
}

// busy reports whether a command is currently outstanding, without
// mutating state — exposed for tests and for callers that want to avoid
// racing a Busy rejection.
func (d *dispatcher) busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == statePending
}
