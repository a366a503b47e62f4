// Package evt decodes HCI event payloads. Each event is a thin []byte
// wrapper with accessor methods; every accessor has a WErr twin that
// bounds-checks its read and a convenience wrapper that discards the
// error for callers that already know the payload is long enough.
package evt

import (
	"encoding/binary"
	"fmt"
)

// Event codes this client classifies, per §4.4.
const (
	DisconnectionCompleteCode           = 0x05
	EncryptionChangeCode                = 0x08
	ReadRemoteVersionInformationCompleteCode = 0x0C
	CommandCompleteCode                 = 0x0E
	CommandStatusCode                   = 0x0F
	HardwareErrorCode                   = 0x10
	NumberOfCompletedPacketsCode        = 0x13
	DataBufferOverflowCode              = 0x1A
	EncryptionKeyRefreshCompleteCode    = 0x30
	LEMetaCode                          = 0x3E
	AuthenticatedPayloadTimeoutExpiredCode = 0x57
)

// LE Meta sub-event codes, carried in byte 0 of the LEMeta payload.
const (
	LEConnectionCompleteSubCode             = 0x01
	LEAdvertisingReportSubCode              = 0x02
	LEConnectionUpdateCompleteSubCode       = 0x03
	LEReadRemoteUsedFeaturesCompleteSubCode = 0x04
	LELongTermKeyRequestSubCode             = 0x05
	LERemoteConnectionParameterRequestSubCode = 0x06
	LEEnhancedConnectionCompleteSubCode     = 0x0A
	LEExtendedAdvertisingReportSubCode      = 0x0D
	LEChannelSelectionAlgorithmSubCode      = 0x14
)

// DisconnectionComplete implements Disconnection Complete (0x05)
// [Vol 2, Part E, 7.7.5].
type DisconnectionComplete []byte

func (r DisconnectionComplete) StatusWErr() (uint8, error)           { return getByte(r, 0, 0) }
func (r DisconnectionComplete) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 1, 0xffff) }
func (r DisconnectionComplete) ReasonWErr() (uint8, error)           { return getByte(r, 3, 0) }

func (r DisconnectionComplete) Status() uint8           { v, _ := r.StatusWErr(); return v }
func (r DisconnectionComplete) ConnectionHandle() uint16 { v, _ := r.ConnectionHandleWErr(); return v }
func (r DisconnectionComplete) Reason() uint8           { v, _ := r.ReasonWErr(); return v }

// EncryptionChange implements Encryption Change (0x08) [Vol 2, Part E, 7.7.8].
type EncryptionChange []byte

func (r EncryptionChange) StatusWErr() (uint8, error)            { return getByte(r, 0, 0) }
func (r EncryptionChange) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 1, 0xffff) }
func (r EncryptionChange) EnabledWErr() (uint8, error)           { return getByte(r, 3, 0) }

func (r EncryptionChange) Status() uint8            { v, _ := r.StatusWErr(); return v }
func (r EncryptionChange) ConnectionHandle() uint16 { v, _ := r.ConnectionHandleWErr(); return v }
func (r EncryptionChange) Enabled() uint8           { v, _ := r.EnabledWErr(); return v }

// CommandComplete implements Command Complete (0x0E) [Vol 2, Part E, 7.7.14].
type CommandComplete []byte

func (r CommandComplete) NumHCICommandPacketsWErr() (uint8, error) { return getByte(r, 0, 0) }
func (r CommandComplete) CommandOpcodeWErr() (uint16, error)       { return getUint16LE(r, 1, 0xffff) }
func (r CommandComplete) ReturnParametersWErr() ([]byte, error)    { return getBytes(r, 3, -1) }

func (r CommandComplete) NumHCICommandPackets() uint8 { v, _ := r.NumHCICommandPacketsWErr(); return v }
func (r CommandComplete) CommandOpcode() uint16       { v, _ := r.CommandOpcodeWErr(); return v }
func (r CommandComplete) ReturnParameters() []byte    { v, _ := r.ReturnParametersWErr(); return v }

// CommandStatus implements Command Status (0x0F) [Vol 2, Part E, 7.7.15].
type CommandStatus []byte

func (r CommandStatus) StatusWErr() (uint8, error)               { return getByte(r, 0, 0) }
func (r CommandStatus) NumHCICommandPacketsWErr() (uint8, error) { return getByte(r, 1, 0) }
func (r CommandStatus) CommandOpcodeWErr() (uint16, error)       { return getUint16LE(r, 2, 0xffff) }

func (r CommandStatus) Status() uint8               { v, _ := r.StatusWErr(); return v }
func (r CommandStatus) NumHCICommandPackets() uint8 { v, _ := r.NumHCICommandPacketsWErr(); return v }
func (r CommandStatus) CommandOpcode() uint16       { v, _ := r.CommandOpcodeWErr(); return v }

// HardwareError implements Hardware Error (0x10) [Vol 2, Part E, 7.7.16].
type HardwareError []byte

func (r HardwareError) HardwareCodeWErr() (uint8, error) { return getByte(r, 0, 0) }
func (r HardwareError) HardwareCode() uint8              { v, _ := r.HardwareCodeWErr(); return v }

// NumberOfCompletedPackets implements Number Of Completed Packets (0x13)
// [Vol 2, Part E, 7.7.19].
type NumberOfCompletedPackets []byte

func (r NumberOfCompletedPackets) NumberOfHandlesWErr() (uint8, error) { return getByte(r, 0, 0) }
func (r NumberOfCompletedPackets) ConnectionHandleWErr(i int) (uint16, error) {
	return getUint16LE(r, 1+i*4, 0xffff)
}
func (r NumberOfCompletedPackets) HCNumOfCompletedPacketsWErr(i int) (uint16, error) {
	return getUint16LE(r, 1+i*4+2, 0)
}

func (r NumberOfCompletedPackets) NumberOfHandles() uint8 { v, _ := r.NumberOfHandlesWErr(); return v }
func (r NumberOfCompletedPackets) ConnectionHandle(i int) uint16 {
	v, _ := r.ConnectionHandleWErr(i)
	return v
}
func (r NumberOfCompletedPackets) HCNumOfCompletedPackets(i int) uint16 {
	v, _ := r.HCNumOfCompletedPacketsWErr(i)
	return v
}

// DataBufferOverflow implements Data Buffer Overflow (0x1A)
// [Vol 2, Part E, 7.7.26].
type DataBufferOverflow []byte

func (r DataBufferOverflow) LinkTypeWErr() (uint8, error) { return getByte(r, 0, 0) }
func (r DataBufferOverflow) LinkType() uint8              { v, _ := r.LinkTypeWErr(); return v }

// EncryptionKeyRefreshComplete implements Encryption Key Refresh Complete
// (0x30) [Vol 2, Part E, 7.7.39].
type EncryptionKeyRefreshComplete []byte

func (r EncryptionKeyRefreshComplete) StatusWErr() (uint8, error) { return getByte(r, 0, 0) }
func (r EncryptionKeyRefreshComplete) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(r, 1, 0xffff)
}

func (r EncryptionKeyRefreshComplete) Status() uint8 { v, _ := r.StatusWErr(); return v }
func (r EncryptionKeyRefreshComplete) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}

// AuthenticatedPayloadTimeoutExpired implements Authenticated Payload
// Timeout Expired (0x57) [Vol 2, Part E, 7.7.75].
type AuthenticatedPayloadTimeoutExpired []byte

func (r AuthenticatedPayloadTimeoutExpired) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(r, 0, 0xffff)
}
func (r AuthenticatedPayloadTimeoutExpired) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}

// LEConnectionComplete implements LE Connection Complete (0x3E:0x01)
// [Vol 2, Part E, 7.7.65.1].
type LEConnectionComplete []byte

func (r LEConnectionComplete) SubeventCodeWErr() (uint8, error)      { return getByte(r, 0, 0xff) }
func (r LEConnectionComplete) StatusWErr() (uint8, error)            { return getByte(r, 1, 0) }
func (r LEConnectionComplete) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 2, 0xffff) }
func (r LEConnectionComplete) RoleWErr() (uint8, error)              { return getByte(r, 4, 0) }
func (r LEConnectionComplete) PeerAddressTypeWErr() (uint8, error)   { return getByte(r, 5, 0) }
func (r LEConnectionComplete) PeerAddressWErr() ([6]byte, error) {
	bb, err := getBytes(r, 6, 6)
	var out [6]byte
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEConnectionComplete) ConnIntervalWErr() (uint16, error)       { return getUint16LE(r, 12, 0) }
func (r LEConnectionComplete) ConnLatencyWErr() (uint16, error)        { return getUint16LE(r, 14, 0) }
func (r LEConnectionComplete) SupervisionTimeoutWErr() (uint16, error) { return getUint16LE(r, 16, 0) }
func (r LEConnectionComplete) MasterClockAccuracyWErr() (uint8, error) { return getByte(r, 18, 0) }

func (r LEConnectionComplete) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEConnectionComplete) Status() uint8       { v, _ := r.StatusWErr(); return v }
func (r LEConnectionComplete) ConnectionHandle() uint16 { v, _ := r.ConnectionHandleWErr(); return v }
func (r LEConnectionComplete) Role() uint8             { v, _ := r.RoleWErr(); return v }
func (r LEConnectionComplete) PeerAddressType() uint8  { v, _ := r.PeerAddressTypeWErr(); return v }
func (r LEConnectionComplete) PeerAddress() [6]byte    { v, _ := r.PeerAddressWErr(); return v }
func (r LEConnectionComplete) ConnInterval() uint16     { v, _ := r.ConnIntervalWErr(); return v }
func (r LEConnectionComplete) ConnLatency() uint16      { v, _ := r.ConnLatencyWErr(); return v }
func (r LEConnectionComplete) SupervisionTimeout() uint16 {
	v, _ := r.SupervisionTimeoutWErr()
	return v
}
func (r LEConnectionComplete) MasterClockAccuracy() uint8 {
	v, _ := r.MasterClockAccuracyWErr()
	return v
}

// LEEnhancedConnectionComplete implements LE Enhanced Connection Complete
// (0x3E:0x0A) [Vol 2, Part E, 7.7.65.10].
type LEEnhancedConnectionComplete []byte

func (r LEEnhancedConnectionComplete) SubeventCodeWErr() (uint8, error)      { return getByte(r, 0, 0xff) }
func (r LEEnhancedConnectionComplete) StatusWErr() (uint8, error)            { return getByte(r, 1, 0) }
func (r LEEnhancedConnectionComplete) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 2, 0xffff) }
func (r LEEnhancedConnectionComplete) RoleWErr() (uint8, error)              { return getByte(r, 4, 0) }
func (r LEEnhancedConnectionComplete) PeerAddressTypeWErr() (uint8, error)   { return getByte(r, 5, 0) }
func (r LEEnhancedConnectionComplete) PeerAddressWErr() ([6]byte, error) {
	bb, err := getBytes(r, 6, 6)
	var out [6]byte
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEEnhancedConnectionComplete) LocalResolvablePrivateAddressWErr() ([6]byte, error) {
	bb, err := getBytes(r, 12, 6)
	var out [6]byte
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEEnhancedConnectionComplete) PeerResolvablePrivateAddressWErr() ([6]byte, error) {
	bb, err := getBytes(r, 18, 6)
	var out [6]byte
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEEnhancedConnectionComplete) ConnIntervalWErr() (uint16, error)       { return getUint16LE(r, 24, 0) }
func (r LEEnhancedConnectionComplete) ConnLatencyWErr() (uint16, error)        { return getUint16LE(r, 26, 0) }
func (r LEEnhancedConnectionComplete) SupervisionTimeoutWErr() (uint16, error) { return getUint16LE(r, 28, 0) }
func (r LEEnhancedConnectionComplete) MasterClockAccuracyWErr() (uint8, error) { return getByte(r, 30, 0) }

func (r LEEnhancedConnectionComplete) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEEnhancedConnectionComplete) Status() uint8       { v, _ := r.StatusWErr(); return v }
func (r LEEnhancedConnectionComplete) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}
func (r LEEnhancedConnectionComplete) Role() uint8            { v, _ := r.RoleWErr(); return v }
func (r LEEnhancedConnectionComplete) PeerAddressType() uint8 { v, _ := r.PeerAddressTypeWErr(); return v }
func (r LEEnhancedConnectionComplete) PeerAddress() [6]byte   { v, _ := r.PeerAddressWErr(); return v }
func (r LEEnhancedConnectionComplete) ConnInterval() uint16   { v, _ := r.ConnIntervalWErr(); return v }
func (r LEEnhancedConnectionComplete) ConnLatency() uint16    { v, _ := r.ConnLatencyWErr(); return v }
func (r LEEnhancedConnectionComplete) SupervisionTimeout() uint16 {
	v, _ := r.SupervisionTimeoutWErr()
	return v
}
func (r LEEnhancedConnectionComplete) MasterClockAccuracy() uint8 {
	v, _ := r.MasterClockAccuracyWErr()
	return v
}

// LEConnectionUpdateComplete implements LE Connection Update Complete
// (0x3E:0x03) [Vol 2, Part E, 7.7.65.3].
type LEConnectionUpdateComplete []byte

func (r LEConnectionUpdateComplete) SubeventCodeWErr() (uint8, error)      { return getByte(r, 0, 0xff) }
func (r LEConnectionUpdateComplete) StatusWErr() (uint8, error)            { return getByte(r, 1, 0) }
func (r LEConnectionUpdateComplete) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 2, 0xffff) }
func (r LEConnectionUpdateComplete) ConnIntervalWErr() (uint16, error)     { return getUint16LE(r, 4, 0) }
func (r LEConnectionUpdateComplete) ConnLatencyWErr() (uint16, error)      { return getUint16LE(r, 6, 0) }
func (r LEConnectionUpdateComplete) SupervisionTimeoutWErr() (uint16, error) {
	return getUint16LE(r, 8, 0)
}

func (r LEConnectionUpdateComplete) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEConnectionUpdateComplete) Status() uint8       { v, _ := r.StatusWErr(); return v }
func (r LEConnectionUpdateComplete) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}
func (r LEConnectionUpdateComplete) ConnInterval() uint16 { v, _ := r.ConnIntervalWErr(); return v }
func (r LEConnectionUpdateComplete) ConnLatency() uint16  { v, _ := r.ConnLatencyWErr(); return v }
func (r LEConnectionUpdateComplete) SupervisionTimeout() uint16 {
	v, _ := r.SupervisionTimeoutWErr()
	return v
}

// LEReadRemoteUsedFeaturesComplete implements LE Read Remote Used
// Features Complete (0x3E:0x04) [Vol 2, Part E, 7.7.65.4].
type LEReadRemoteUsedFeaturesComplete []byte

func (r LEReadRemoteUsedFeaturesComplete) SubeventCodeWErr() (uint8, error) { return getByte(r, 0, 0xff) }
func (r LEReadRemoteUsedFeaturesComplete) StatusWErr() (uint8, error)       { return getByte(r, 1, 0) }
func (r LEReadRemoteUsedFeaturesComplete) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(r, 2, 0xffff)
}
func (r LEReadRemoteUsedFeaturesComplete) LEFeaturesWErr() (uint64, error) {
	bb, err := getBytes(r, 4, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bb), nil
}

func (r LEReadRemoteUsedFeaturesComplete) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEReadRemoteUsedFeaturesComplete) Status() uint8       { v, _ := r.StatusWErr(); return v }
func (r LEReadRemoteUsedFeaturesComplete) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}
func (r LEReadRemoteUsedFeaturesComplete) LEFeatures() uint64 { v, _ := r.LEFeaturesWErr(); return v }

// LELongTermKeyRequest implements LE Long Term Key Request (0x3E:0x05)
// [Vol 2, Part E, 7.7.65.5].
type LELongTermKeyRequest []byte

func (r LELongTermKeyRequest) SubeventCodeWErr() (uint8, error)      { return getByte(r, 0, 0xff) }
func (r LELongTermKeyRequest) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 1, 0xffff) }
func (r LELongTermKeyRequest) RandomNumberWErr() (uint64, error) {
	bb, err := getBytes(r, 3, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bb), nil
}
func (r LELongTermKeyRequest) EncryptionDiversifierWErr() (uint16, error) { return getUint16LE(r, 11, 0) }

func (r LELongTermKeyRequest) SubeventCode() uint8      { v, _ := r.SubeventCodeWErr(); return v }
func (r LELongTermKeyRequest) ConnectionHandle() uint16 { v, _ := r.ConnectionHandleWErr(); return v }
func (r LELongTermKeyRequest) RandomNumber() uint64     { v, _ := r.RandomNumberWErr(); return v }
func (r LELongTermKeyRequest) EncryptionDiversifier() uint16 {
	v, _ := r.EncryptionDiversifierWErr()
	return v
}

// LERemoteConnectionParameterRequest implements LE Remote Connection
// Parameter Request (0x3E:0x06) [Vol 2, Part E, 7.7.65.6].
type LERemoteConnectionParameterRequest []byte

func (r LERemoteConnectionParameterRequest) SubeventCodeWErr() (uint8, error) { return getByte(r, 0, 0xff) }
func (r LERemoteConnectionParameterRequest) ConnectionHandleWErr() (uint16, error) {
	return getUint16LE(r, 1, 0xffff)
}
func (r LERemoteConnectionParameterRequest) IntervalMinWErr() (uint16, error) { return getUint16LE(r, 3, 0) }
func (r LERemoteConnectionParameterRequest) IntervalMaxWErr() (uint16, error) { return getUint16LE(r, 5, 0) }
func (r LERemoteConnectionParameterRequest) LatencyWErr() (uint16, error)     { return getUint16LE(r, 7, 0) }
func (r LERemoteConnectionParameterRequest) TimeoutWErr() (uint16, error)     { return getUint16LE(r, 9, 0) }

func (r LERemoteConnectionParameterRequest) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LERemoteConnectionParameterRequest) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}
func (r LERemoteConnectionParameterRequest) IntervalMin() uint16 { v, _ := r.IntervalMinWErr(); return v }
func (r LERemoteConnectionParameterRequest) IntervalMax() uint16 { v, _ := r.IntervalMaxWErr(); return v }
func (r LERemoteConnectionParameterRequest) Latency() uint16     { v, _ := r.LatencyWErr(); return v }
func (r LERemoteConnectionParameterRequest) Timeout() uint16     { v, _ := r.TimeoutWErr(); return v }

// LEChannelSelectionAlgorithm implements LE Channel Selection Algorithm
// (0x3E:0x14) [Vol 2, Part E, 7.7.65.20].
type LEChannelSelectionAlgorithm []byte

func (r LEChannelSelectionAlgorithm) SubeventCodeWErr() (uint8, error)      { return getByte(r, 0, 0xff) }
func (r LEChannelSelectionAlgorithm) ConnectionHandleWErr() (uint16, error) { return getUint16LE(r, 1, 0xffff) }
func (r LEChannelSelectionAlgorithm) AlgorithmWErr() (uint8, error)         { return getByte(r, 3, 0) }

func (r LEChannelSelectionAlgorithm) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEChannelSelectionAlgorithm) ConnectionHandle() uint16 {
	v, _ := r.ConnectionHandleWErr()
	return v
}
func (r LEChannelSelectionAlgorithm) Algorithm() uint8 { v, _ := r.AlgorithmWErr(); return v }

// get or default.
func getByte(b []byte, i int, def byte) (byte, error) {
	bb, err := getBytes(b, i, 1)
	if err != nil {
		return def, err
	}
	return bb[0], nil
}

func getUint16LE(b []byte, i int, def uint16) (uint16, error) {
	bb, err := getBytes(b, i, 2)
	if err != nil {
		return def, err
	}
	return binary.LittleEndian.Uint16(bb), nil
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if bytes == nil || start >= len(bytes) {
		return nil, fmt.Errorf("evt: index error at %d (len %d)", start, len(bytes))
	}
	if count < 0 {
		return bytes[start:], nil
	}
	end := start + count
	if end > len(bytes) {
		return nil, fmt.Errorf("evt: index error at [%d:%d] (len %d)", start, end, len(bytes))
	}
	return bytes[start:end], nil
}
