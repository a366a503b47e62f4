package hci

import (
	"time"

	"github.com/Transmission-Dynamics/bluetooth-hci/cmd"
	"github.com/Transmission-Dynamics/bluetooth-hci/internal/trace"
)

// Option configures a Host while NewHost constructs it. Options are
// applied in order, so a later option overrides an earlier one touching
// the same field.
type Option func(*Host) error

// OptCommandTimeout overrides the default per-command deadline of §4.3.
func OptCommandTimeout(d time.Duration) Option {
	return func(h *Host) error {
		h.cmdTimeout = d
		return nil
	}
}

// OptLogger attaches a Logger; callers that want their own logrus entry,
// or any other Logger implementation, wire it in here instead of relying
// on the package default.
func OptLogger(log Logger) Option {
	return func(h *Host) error {
		h.log = log
		return nil
	}
}

// OptScanParams stores p as the Host's default scan parameters, validated
// against §6's ranges. No Host method issues a scan command from it.
func OptScanParams(p cmd.LESetScanParameters) Option {
	return func(h *Host) error {
		if err := ValidateScanParams(p); err != nil {
			return err
		}
		h.params.Lock()
		h.params.scanParams = p
		h.params.Unlock()
		return nil
	}
}

// OptAdvParams stores p as the Host's default advertising parameters. No
// Host method issues an advertising command from it.
func OptAdvParams(p cmd.LESetAdvertisingParameters) Option {
	return func(h *Host) error {
		h.params.Lock()
		h.params.advParams = p
		h.params.Unlock()
		return nil
	}
}

// OptConnParams stores p as the Host's default connection parameters,
// validated against §6's ranges. No Host method issues a connect command
// from it.
func OptConnParams(p cmd.LECreateConnection) Option {
	return func(h *Host) error {
		if err := ValidateConnParams(p); err != nil {
			return err
		}
		h.params.Lock()
		h.params.connParams = p
		h.params.Unlock()
		return nil
	}
}

// OptEventHandlers attaches the event-family callbacks the event router
// dispatches to; a nil field in handlers leaves that family dropped
// after its internal bookkeeping.
func OptEventHandlers(handlers EventHandlers) Option {
	return func(h *Host) error {
		h.handlers = handlers
		return nil
	}
}

// OptErrorHandler attaches a callback invoked when the read loop observes
// a transport failure or a frame it cannot parse — the asynchronous
// counterpart to the error returns from command calls.
func OptErrorHandler(fn func(error)) Option {
	return func(h *Host) error {
		h.errorHandler = fn
		return nil
	}
}

// OptBufferPoolSize overrides the ACL buffer pool's capacity and buffer
// size instead of sizing it from the controller's ReadBufferSize/
// LEReadBufferSize answers during Init.
func OptBufferPoolSize(count, size int) Option {
	return func(h *Host) error {
		h.bufCount = count
		h.bufSize = size
		h.poolOverridden = true
		return nil
	}
}

// OptTrace attaches a trace.Recorder that captures every frame written to
// the transport and the bytes of every read from it (one record per read,
// which may hold part of a frame or several frames), for later inspection
// with trace.Load.
func OptTrace(rec *trace.Recorder) Option {
	return func(h *Host) error {
		h.trace = rec
		return nil
	}
}

// OptSMPForwarder attaches an opaque pairing/key-agreement forwarder: the
// connection handle and raw payload of every inbound ACL data packet are
// handed to fn without this client interpreting their contents. Packets
// are not filtered by L2CAP channel and fragments are not reassembled.
func OptSMPForwarder(fn func(handle uint16, pdu []byte)) Option {
	return func(h *Host) error {
		h.smpForward = fn
		return nil
	}
}
