package hci

import (
	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

// EventHandlers holds the per-event-family callbacks a caller may attach
// to a Host. Every field is optional; a nil handler means the event is
// decoded only as far as needed for internal bookkeeping (connection
// tracking, buffer-credit recycling) and otherwise dropped.
type EventHandlers struct {
	Disconnection      func(evt.DisconnectionComplete)
	EncryptionChange    func(evt.EncryptionChange)
	HardwareError       func(evt.HardwareError)

	LEConnectionComplete         func(evt.LEConnectionComplete)
	LEEnhancedConnectionComplete func(evt.LEEnhancedConnectionComplete)
	LEConnectionUpdateComplete   func(evt.LEConnectionUpdateComplete)
	LEReadRemoteUsedFeatures     func(evt.LEReadRemoteUsedFeaturesComplete)
	LELongTermKeyRequest         func(evt.LELongTermKeyRequest)
	LERemoteConnectionParameterRequest func(evt.LERemoteConnectionParameterRequest)
	LEChannelSelectionAlgorithm  func(evt.LEChannelSelectionAlgorithm)

	// Advertisement is invoked once per advertising report, legacy or
	// extended, fanned out in the order the controller sent them.
	Advertisement func(*Advertisement)
}

// eventRouter is C4: it classifies an incoming event packet by event
// code (and, for LE Meta events, by sub-event code) and dispatches to
// the matching handler, forwarding CommandComplete/CommandStatus to the
// dispatcher that is waiting on them.
type eventRouter struct {
	disp    *dispatcher
	pool    *bufferPool
	conns   *connTable
	hist    *advHistory
	handlers EventHandlers
	log     Logger
}

func newEventRouter(disp *dispatcher, pool *bufferPool, conns *connTable, log Logger) *eventRouter {
	return &eventRouter{
		disp:  disp,
		pool:  pool,
		conns: conns,
		hist:  newAdvHistory(16),
		log:   log,
	}
}

// route classifies and handles one decoded event packet, per §4.4.
func (r *eventRouter) route(code uint8, payload []byte) {
	switch code {
	case evt.CommandCompleteCode:
		r.disp.completeCommand(evt.CommandComplete(payload))
	case evt.CommandStatusCode:
		r.disp.completeStatus(evt.CommandStatus(payload))
	case evt.DisconnectionCompleteCode:
		e := evt.DisconnectionComplete(payload)
		r.conns.remove(e.ConnectionHandle())
		if r.handlers.Disconnection != nil {
			r.handlers.Disconnection(e)
		}
	case evt.EncryptionChangeCode:
		if r.handlers.EncryptionChange != nil {
			r.handlers.EncryptionChange(evt.EncryptionChange(payload))
		}
	case evt.HardwareErrorCode:
		if r.handlers.HardwareError != nil {
			r.handlers.HardwareError(evt.HardwareError(payload))
		}
	case evt.NumberOfCompletedPacketsCode:
		r.handleNumberOfCompletedPackets(evt.NumberOfCompletedPackets(payload))
	case evt.LEMetaCode:
		r.routeLEMeta(payload)
	default:
		r.log.Debugf("event: unhandled code 0x%02X (%d bytes)", code, len(payload))
	}
}

func (r *eventRouter) routeLEMeta(payload []byte) {
	if len(payload) < 1 {
		r.log.Warnf("event: LE meta payload too short (%d bytes)", len(payload))
		return
	}
	switch payload[0] {
	case evt.LEConnectionCompleteSubCode:
		e := evt.LEConnectionComplete(payload)
		if e.Status() == StatusSuccess {
			r.conns.add(e.ConnectionHandle(), e.Role(), e.PeerAddressType(), e.PeerAddress())
		}
		if r.handlers.LEConnectionComplete != nil {
			r.handlers.LEConnectionComplete(e)
		}
	case evt.LEEnhancedConnectionCompleteSubCode:
		e := evt.LEEnhancedConnectionComplete(payload)
		if e.Status() == StatusSuccess {
			r.conns.add(e.ConnectionHandle(), e.Role(), e.PeerAddressType(), e.PeerAddress())
		}
		if r.handlers.LEEnhancedConnectionComplete != nil {
			r.handlers.LEEnhancedConnectionComplete(e)
		}
	case evt.LEAdvertisingReportSubCode:
		if r.handlers.Advertisement == nil {
			return
		}
		e := evt.LEAdvertisingReport(payload)
		if err := fanOutLegacy(e, r.hist, r.handlers.Advertisement); err != nil {
			r.log.Warnf("event: %s", err)
		}
	case evt.LEExtendedAdvertisingReportSubCode:
		if r.handlers.Advertisement == nil {
			return
		}
		e := evt.LEExtendedAdvertisingReport(payload)
		if err := fanOutExtended(e, r.handlers.Advertisement); err != nil {
			r.log.Warnf("event: %s", err)
		}
	case evt.LEConnectionUpdateCompleteSubCode:
		if r.handlers.LEConnectionUpdateComplete != nil {
			r.handlers.LEConnectionUpdateComplete(evt.LEConnectionUpdateComplete(payload))
		}
	case evt.LEReadRemoteUsedFeaturesCompleteSubCode:
		if r.handlers.LEReadRemoteUsedFeatures != nil {
			r.handlers.LEReadRemoteUsedFeatures(evt.LEReadRemoteUsedFeaturesComplete(payload))
		}
	case evt.LELongTermKeyRequestSubCode:
		if r.handlers.LELongTermKeyRequest != nil {
			r.handlers.LELongTermKeyRequest(evt.LELongTermKeyRequest(payload))
		}
	case evt.LERemoteConnectionParameterRequestSubCode:
		if r.handlers.LERemoteConnectionParameterRequest != nil {
			r.handlers.LERemoteConnectionParameterRequest(evt.LERemoteConnectionParameterRequest(payload))
		}
	case evt.LEChannelSelectionAlgorithmSubCode:
		if r.handlers.LEChannelSelectionAlgorithm != nil {
			r.handlers.LEChannelSelectionAlgorithm(evt.LEChannelSelectionAlgorithm(payload))
		}
	default:
		r.log.Debugf("event: unhandled LE meta sub-code 0x%02X", payload[0])
	}
}

// handleNumberOfCompletedPackets recycles ACL buffer-pool credits as the
// controller reports packets drained. This client does not implement an
// ACL/L2CAP data path itself; the pool exists so one built on top of it
// has its flow-control accounting already wired to this event.
func (r *eventRouter) handleNumberOfCompletedPackets(e evt.NumberOfCompletedPackets) {
	if r.pool == nil {
		return
	}
	n := int(e.NumberOfHandles())
	r.pool.Lock()
	for i := 0; i < n; i++ {
		completed := e.HCNumOfCompletedPackets(i)
		for j := uint16(0); j < completed; j++ {
			r.pool.Put()
		}
	}
	r.pool.Unlock()
}
