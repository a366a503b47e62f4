package hci

import (
	"fmt"

	"github.com/pkg/errors"
)

// Parser errors originate in this library rather than the controller; they
// indicate a host-side or protocol-synchronization problem, per §7.1.
var (
	// ErrBusy is returned synchronously, without touching the transport,
	// when a command is submitted while another is still pending.
	ErrBusy = errors.New("hci: command already pending")

	// ErrTimeout is returned when a pending command's deadline expires
	// without a matching CommandComplete/CommandStatus.
	ErrTimeout = errors.New("hci: command timed out")

	// ErrInvalidPayloadSize is returned when a command's return
	// parameters are shorter than its return-parameter type requires, or
	// when a payload is too long to frame. Event payloads are bounds-checked
	// by the evt accessors, which report their own errors.
	ErrInvalidPayloadSize = errors.New("hci: invalid payload size")

	// ErrClosed is returned when a command is submitted after the host
	// has been closed, or when the transport closes while a command is
	// outstanding.
	ErrClosed = errors.New("hci: closed")
)

// ControllerError is the typed form of a non-zero HCI command status byte
// [Vol 2, Part E, 7.7.14] / [Vol 2, Part D]. It carries both the originating
// opcode and the canonical status text.
type ControllerError struct {
	Opcode int
	Status uint8
}

func (e ControllerError) Error() string {
	return fmt.Sprintf("hci: controller error 0x%02X (%s) for opcode 0x%04X", e.Status, statusText(e.Status), e.Opcode)
}

// Is allows errors.Is(err, ControllerError{Status: x}) to match regardless
// of opcode, so callers can test for a specific status without threading
// the opcode through.
func (e ControllerError) Is(target error) bool {
	t, ok := target.(ControllerError)
	if !ok {
		return false
	}
	if t.Status != e.Status {
		return false
	}
	return t.Opcode == 0 || t.Opcode == e.Opcode
}

// Well-known controller status codes [Vol 2, Part D].
const (
	StatusSuccess                             uint8 = 0x00
	StatusUnknownHciCommand                   uint8 = 0x01
	StatusUnknownConnectionID                  uint8 = 0x02
	StatusHardwareFailure                      uint8 = 0x03
	StatusPageTimeout                          uint8 = 0x04
	StatusAuthenticationFailure                uint8 = 0x05
	StatusPinOrKeyMissing                      uint8 = 0x06
	StatusMemoryCapacityExceeded                uint8 = 0x07
	StatusConnectionTimeout                    uint8 = 0x08
	StatusConnectionLimitExceeded               uint8 = 0x09
	StatusSyncConnLimitExceeded                 uint8 = 0x0A
	StatusConnectionAlreadyExists               uint8 = 0x0B
	StatusCommandDisallowed                    uint8 = 0x0C
	StatusConnRejectedLimitedResources           uint8 = 0x0D
	StatusConnRejectedSecurityReasons            uint8 = 0x0E
	StatusConnRejectedUnacceptableAddr            uint8 = 0x0F
	StatusConnAcceptTimeoutExceeded              uint8 = 0x10
	StatusUnsupportedFeatureOrParameter           uint8 = 0x11
	StatusInvalidHciCommandParameters            uint8 = 0x12
	StatusRemoteUserTerminatedConnection          uint8 = 0x13
	StatusRemoteLowResources                    uint8 = 0x14
	StatusRemotePoweringOff                     uint8 = 0x15
	StatusLocalHostTerminatedConnection           uint8 = 0x16
	StatusRepeatedAttempts                      uint8 = 0x17
	StatusPairingNotAllowed                     uint8 = 0x18
	StatusUnknownLMPPDU                         uint8 = 0x19
	StatusUnsupportedRemoteFeature                uint8 = 0x1A
	StatusSCOOffsetRejected                     uint8 = 0x1B
	StatusSCOIntervalRejected                    uint8 = 0x1C
	StatusSCOAirModeRejected                     uint8 = 0x1D
	StatusInvalidLMPOrLLParameters                uint8 = 0x1E
	StatusUnspecifiedError                      uint8 = 0x1F
	StatusUnsupportedLMPOrLLParameterValue         uint8 = 0x20
	StatusRoleChangeNotAllowed                   uint8 = 0x21
	StatusLMPOrLLResponseTimeout                  uint8 = 0x22
	StatusLMPOrLLCollision                       uint8 = 0x23
	StatusLMPPDUNotAllowed                       uint8 = 0x24
	StatusEncryptionModeNotAcceptable              uint8 = 0x25
	StatusLinkKeyCannotBeChanged                  uint8 = 0x26
	StatusRequestedQoSNotSupported                 uint8 = 0x27
	StatusInstantPassed                         uint8 = 0x28
	StatusPairingWithUnitKeyNotSupported           uint8 = 0x29
	StatusDifferentTransactionCollision            uint8 = 0x2A
	StatusQoSUnacceptableParameter                 uint8 = 0x2C
	StatusQoSRejected                           uint8 = 0x2D
	StatusChannelClassificationNotSupported         uint8 = 0x2E
	StatusInsufficientSecurity                   uint8 = 0x2F
	StatusParameterOutOfMandatoryRange             uint8 = 0x30
	StatusRoleSwitchPending                      uint8 = 0x32
	StatusReservedSlotViolation                   uint8 = 0x34
	StatusRoleSwitchFailed                       uint8 = 0x35
	StatusExtendedInquiryResponseTooLarge          uint8 = 0x36
	StatusSecureSimplePairingNotSupportedByHost      uint8 = 0x37
	StatusHostBusyPairing                       uint8 = 0x38
	StatusConnRejectedNoSuitableChannel            uint8 = 0x39
	StatusControllerBusy                        uint8 = 0x3A
	StatusUnacceptableConnectionParameters          uint8 = 0x3B
	StatusAdvertisingTimeout                     uint8 = 0x3C
	StatusConnectionTerminatedMICFailure           uint8 = 0x3D
	StatusConnectionFailedToEstablish              uint8 = 0x3E
	StatusMACConnectionFailed                    uint8 = 0x3F
	StatusCoarseClockAdjRejected                  uint8 = 0x40
	StatusType0SubmapNotDefined                   uint8 = 0x41
	StatusUnknownAdvertisingIdentifier              uint8 = 0x42
	StatusLimitReached                          uint8 = 0x43
	StatusOperationCancelledByHost                uint8 = 0x44
)

var statusTable = map[uint8]string{
	StatusSuccess:                           "Success",
	StatusUnknownHciCommand:                 "Unknown HCI Command",
	StatusUnknownConnectionID:               "Unknown Connection Identifier",
	StatusHardwareFailure:                   "Hardware Failure",
	StatusPageTimeout:                       "Page Timeout",
	StatusAuthenticationFailure:             "Authentication Failure",
	StatusPinOrKeyMissing:                   "PIN or Key Missing",
	StatusMemoryCapacityExceeded:            "Memory Capacity Exceeded",
	StatusConnectionTimeout:                 "Connection Timeout",
	StatusConnectionLimitExceeded:           "Connection Limit Exceeded",
	StatusSyncConnLimitExceeded:             "Synchronous Connection Limit Exceeded",
	StatusConnectionAlreadyExists:           "Connection Already Exists",
	StatusCommandDisallowed:                 "Command Disallowed",
	StatusConnRejectedLimitedResources:      "Connection Rejected due to Limited Resources",
	StatusConnRejectedSecurityReasons:       "Connection Rejected Due To Security Reasons",
	StatusConnRejectedUnacceptableAddr:      "Connection Rejected due to Unacceptable BD_ADDR",
	StatusConnAcceptTimeoutExceeded:         "Connection Accept Timeout Exceeded",
	StatusUnsupportedFeatureOrParameter:     "Unsupported Feature or Parameter Value",
	StatusInvalidHciCommandParameters:       "Invalid HCI Command Parameters",
	StatusRemoteUserTerminatedConnection:    "Remote User Terminated Connection",
	StatusRemoteLowResources:                "Remote Device Terminated Connection due to Low Resources",
	StatusRemotePoweringOff:                 "Remote Device Terminated Connection due to Power Off",
	StatusLocalHostTerminatedConnection:     "Connection Terminated By Local Host",
	StatusRepeatedAttempts:                  "Repeated Attempts",
	StatusPairingNotAllowed:                 "Pairing Not Allowed",
	StatusUnknownLMPPDU:                     "Unknown LMP PDU",
	StatusUnsupportedRemoteFeature:          "Unsupported Remote Feature",
	StatusSCOOffsetRejected:                 "SCO Offset Rejected",
	StatusSCOIntervalRejected:               "SCO Interval Rejected",
	StatusSCOAirModeRejected:                "SCO Air Mode Rejected",
	StatusInvalidLMPOrLLParameters:          "Invalid LMP Parameters / Invalid LL Parameters",
	StatusUnspecifiedError:                  "Unspecified Error",
	StatusUnsupportedLMPOrLLParameterValue:  "Unsupported LMP Parameter Value / Unsupported LL Parameter Value",
	StatusRoleChangeNotAllowed:              "Role Change Not Allowed",
	StatusLMPOrLLResponseTimeout:            "LMP Response Timeout / LL Response Timeout",
	StatusLMPOrLLCollision:                  "LMP Error Transaction Collision / LL Procedure Collision",
	StatusLMPPDUNotAllowed:                  "LMP PDU Not Allowed",
	StatusEncryptionModeNotAcceptable:       "Encryption Mode Not Acceptable",
	StatusLinkKeyCannotBeChanged:            "Link Key cannot be Changed",
	StatusRequestedQoSNotSupported:          "Requested QoS Not Supported",
	StatusInstantPassed:                     "Instant Passed",
	StatusPairingWithUnitKeyNotSupported:    "Pairing With Unit Key Not Supported",
	StatusDifferentTransactionCollision:     "Different Transaction Collision",
	StatusQoSUnacceptableParameter:          "QoS Unacceptable Parameter",
	StatusQoSRejected:                       "QoS Rejected",
	StatusChannelClassificationNotSupported: "Channel Classification Not Supported",
	StatusInsufficientSecurity:              "Insufficient Security",
	StatusParameterOutOfMandatoryRange:      "Parameter Out Of Mandatory Range",
	StatusRoleSwitchPending:                 "Role Switch Pending",
	StatusReservedSlotViolation:             "Reserved Slot Violation",
	StatusRoleSwitchFailed:                  "Role Switch Failed",
	StatusExtendedInquiryResponseTooLarge:   "Extended Inquiry Response Too Large",
	StatusSecureSimplePairingNotSupportedByHost: "Secure Simple Pairing Not Supported by Host",
	StatusHostBusyPairing:                   "Host Busy - Pairing",
	StatusConnRejectedNoSuitableChannel:     "Connection Rejected due to No Suitable Channel Found",
	StatusControllerBusy:                    "Controller Busy",
	StatusUnacceptableConnectionParameters:  "Unacceptable Connection Parameters",
	StatusAdvertisingTimeout:                "Advertising Timeout",
	StatusConnectionTerminatedMICFailure:    "Connection Terminated due to MIC Failure",
	StatusConnectionFailedToEstablish:       "Connection Failed to be Established",
	StatusMACConnectionFailed:               "MAC Connection Failed",
	StatusCoarseClockAdjRejected:            "Coarse Clock Adjustment Rejected but Will Try to Adjust Using Clock Dragging",
	StatusType0SubmapNotDefined:             "Type0 Submap Not Defined",
	StatusUnknownAdvertisingIdentifier:      "Unknown Advertising Identifier",
	StatusLimitReached:                      "Limit Reached",
	StatusOperationCancelledByHost:          "Operation Cancelled by Host",
}

func statusText(status uint8) string {
	if s, ok := statusTable[status]; ok {
		return s
	}
	return "Unknown/Reserved"
}

// wrapTransportErr is the single place transport I/O errors are annotated
// before they propagate; per §7 transport errors close the Host and abandon
// all pending state.
func wrapTransportErr(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, "hci: transport: "+context)
}
