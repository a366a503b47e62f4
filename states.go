package hci

// LinkLayerState is one of the basic Link Layer states a controller can be
// in, as referenced by the LE Supported States bitmask [Vol 6, Part B, 4.6].
type LinkLayerState uint8

const (
	StateNonConnectableAdvertising LinkLayerState = iota
	StateScannableAdvertising
	StateConnectableAdvertising
	StateDirectedAdvertising
	StateLowDutyDirectedAdvertising
	StatePassiveScanning
	StateActiveScanning
	StateInitiating
	StateMasterConnection
	StateSlaveConnection
)

func (s LinkLayerState) String() string {
	switch s {
	case StateNonConnectableAdvertising:
		return "Non-connectable Advertising State"
	case StateScannableAdvertising:
		return "Scannable Advertising State"
	case StateConnectableAdvertising:
		return "Connectable Advertising State"
	case StateDirectedAdvertising:
		return "Directed Advertising State"
	case StateLowDutyDirectedAdvertising:
		return "Low Duty Cycle Directed Advertising State"
	case StatePassiveScanning:
		return "Passive Scanning State"
	case StateActiveScanning:
		return "Active Scanning State"
	case StateInitiating:
		return "Initiating State"
	case StateMasterConnection:
		return "Connection State (Master Role)"
	case StateSlaveConnection:
		return "Connection State (Slave Role)"
	default:
		return "Unknown State"
	}
}

// supportedStatesTable maps each bit of LeReadSupportedStates' LEStates
// mask to the one or two Link Layer states it asserts support for, in bit
// order [Vol 6, Part B, 4.6, Table 4.3]. Bits 42-63 are reserved and have
// no entry here.
var supportedStatesTable = [42][]LinkLayerState{
	{StateNonConnectableAdvertising},
	{StateScannableAdvertising},
	{StateConnectableAdvertising},
	{StateDirectedAdvertising},
	{StatePassiveScanning},
	{StateActiveScanning},
	{StateInitiating},
	{StateMasterConnection},
	{StateSlaveConnection},
	{StateNonConnectableAdvertising, StatePassiveScanning},
	{StateScannableAdvertising, StatePassiveScanning},
	{StateConnectableAdvertising, StatePassiveScanning},
	{StateDirectedAdvertising, StatePassiveScanning},
	{StateNonConnectableAdvertising, StateActiveScanning},
	{StateScannableAdvertising, StateActiveScanning},
	{StateConnectableAdvertising, StateActiveScanning},
	{StateDirectedAdvertising, StateActiveScanning},
	{StateNonConnectableAdvertising, StateInitiating},
	{StateScannableAdvertising, StateInitiating},
	{StateNonConnectableAdvertising, StateMasterConnection},
	{StateScannableAdvertising, StateMasterConnection},
	{StateNonConnectableAdvertising, StateSlaveConnection},
	{StateScannableAdvertising, StateSlaveConnection},
	{StatePassiveScanning, StateInitiating},
	{StateActiveScanning, StateInitiating},
	{StatePassiveScanning, StateMasterConnection},
	{StateActiveScanning, StateMasterConnection},
	{StatePassiveScanning, StateSlaveConnection},
	{StateActiveScanning, StateSlaveConnection},
	{StateInitiating, StateMasterConnection},
	{StateLowDutyDirectedAdvertising},
	{StateLowDutyDirectedAdvertising, StatePassiveScanning},
	{StateLowDutyDirectedAdvertising, StateActiveScanning},
	{StateConnectableAdvertising, StateInitiating},
	{StateConnectableAdvertising, StateMasterConnection},
	{StateConnectableAdvertising, StateSlaveConnection},
	{StateDirectedAdvertising, StateInitiating},
	{StateDirectedAdvertising, StateMasterConnection},
	{StateDirectedAdvertising, StateSlaveConnection},
	{StateLowDutyDirectedAdvertising, StateInitiating},
	{StateLowDutyDirectedAdvertising, StateMasterConnection},
	{StateLowDutyDirectedAdvertising, StateSlaveConnection},
}

// DecodeSupportedStates expands the raw LEStates mask returned by
// LeReadSupportedStates into the Link Layer state tuples it asserts,
// ascending by bit. Bits 42-63 are reserved and ignored.
func DecodeSupportedStates(mask uint64) [][]LinkLayerState {
	var states [][]LinkLayerState
	for bit, tuple := range supportedStatesTable {
		if mask&(1<<uint(bit)) != 0 {
			states = append(states, tuple)
		}
	}
	return states
}
