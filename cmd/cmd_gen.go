package cmd

import (
	"encoding/binary"
	"io"
)

// This file enumerates the commands this client issues, grouped by OGF.
// Field order is wire order; every Marshal/Unmarshal goes through the
// reflection-based helpers in cmd.go, so struct layout IS the payload
// layout. Variable-length parameters are carried as a length byte plus a
// fixed-size array sized to the protocol maximum, with the unused tail
// ignored by the receiving controller. A handful of commands whose
// payload shape depends on a bitmask (LESetExtendedScanParameters) or
// whose wire encoding inverts a typed field (the extended advertising
// data commands' fragment preference) marshal by hand instead.

// -- Link Control (OGF 0x01) -------------------------------------------

// Disconnect implements Disconnect (0x01|0x0006) [Vol 2, Part E, 7.1.6].
type Disconnect struct {
	ConnectionHandle uint16
	Reason           uint8
}

func (c *Disconnect) OpCode() int        { return 0x01<<10 | 0x0006 }
func (c *Disconnect) Len() int           { return 3 }
func (c *Disconnect) Marshal(b []byte) error { return marshal(c, b) }

// DisconnectRP has no fields beyond the status byte, handled by the
// dispatcher directly; no RP type is needed since Disconnect completes
// with CommandStatus, not CommandComplete.

// ReadRemoteVersionInformation implements Read Remote Version Information
// (0x01|0x001D) [Vol 2, Part E, 7.1.23].
type ReadRemoteVersionInformation struct {
	ConnectionHandle uint16
}

func (c *ReadRemoteVersionInformation) OpCode() int        { return 0x01<<10 | 0x001D }
func (c *ReadRemoteVersionInformation) Len() int           { return 2 }
func (c *ReadRemoteVersionInformation) Marshal(b []byte) error { return marshal(c, b) }

// -- Controller & Baseband (OGF 0x03) ------------------------------------

// SetEventMask implements Set Event Mask (0x03|0x0001) [Vol 2, Part E, 7.3.1].
type SetEventMask struct {
	EventMask uint64
}

func (c *SetEventMask) OpCode() int        { return 0x03<<10 | 0x0001 }
func (c *SetEventMask) Len() int           { return 8 }
func (c *SetEventMask) Marshal(b []byte) error { return marshal(c, b) }

type SetEventMaskRP struct{ Status uint8 }

func (c *SetEventMaskRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// Reset implements Reset (0x03|0x0003) [Vol 2, Part E, 7.3.2].
type Reset struct{}

func (c *Reset) OpCode() int        { return 0x03<<10 | 0x0003 }
func (c *Reset) Len() int           { return 0 }
func (c *Reset) Marshal(b []byte) error { return marshal(c, b) }

type ResetRP struct{ Status uint8 }

func (c *ResetRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadTransmitPowerLevel implements Read Transmit Power Level
// (0x03|0x002D) [Vol 2, Part E, 7.3.35].
type ReadTransmitPowerLevel struct {
	ConnectionHandle uint16
	Type             uint8
}

func (c *ReadTransmitPowerLevel) OpCode() int        { return 0x03<<10 | 0x002D }
func (c *ReadTransmitPowerLevel) Len() int           { return 3 }
func (c *ReadTransmitPowerLevel) Marshal(b []byte) error { return marshal(c, b) }

func (c *ReadTransmitPowerLevel) ConnHandle() uint16 { return c.ConnectionHandle }


// ReadTransmitPowerLevelRP's first two bytes are the echoed connection
// handle; the dispatcher uses this for per-connection completion matching.
type ReadTransmitPowerLevelRP struct {
	Status           uint8
	ConnectionHandle uint16
	TransmitPowerLevel int8
}

func (c *ReadTransmitPowerLevelRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// HostBufferSize implements Host Buffer Size (0x03|0x0033)
// [Vol 2, Part E, 7.3.39]; paired with SetControllerToHostFlowControl to
// bound outstanding ACL/SCO data, consumed by the ACL buffer pool.
type HostBufferSize struct {
	HostACLDataPacketLength            uint16
	HostSynchronousDataPacketLength    uint8
	HostTotalNumACLDataPackets         uint16
	HostTotalNumSynchronousDataPackets uint16
}

func (c *HostBufferSize) OpCode() int        { return 0x03<<10 | 0x0033 }
func (c *HostBufferSize) Len() int           { return 7 }
func (c *HostBufferSize) Marshal(b []byte) error { return marshal(c, b) }

type HostBufferSizeRP struct{ Status uint8 }

func (c *HostBufferSizeRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// SetEventMaskPage2 implements Set Event Mask Page 2 (0x03|0x0063)
// [Vol 2, Part E, 7.3.69].
type SetEventMaskPage2 struct {
	EventMaskPage2 uint64
}

func (c *SetEventMaskPage2) OpCode() int        { return 0x03<<10 | 0x0063 }
func (c *SetEventMaskPage2) Len() int           { return 8 }
func (c *SetEventMaskPage2) Marshal(b []byte) error { return marshal(c, b) }

type SetEventMaskPage2RP struct{ Status uint8 }

func (c *SetEventMaskPage2RP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// WriteLEHostSupport implements Write LE Host Support (0x03|0x006D)
// [Vol 2, Part E, 7.3.79].
type WriteLEHostSupport struct {
	LESupportedHost    uint8
	SimultaneousLEHost uint8
}

func (c *WriteLEHostSupport) OpCode() int        { return 0x03<<10 | 0x006D }
func (c *WriteLEHostSupport) Len() int           { return 2 }
func (c *WriteLEHostSupport) Marshal(b []byte) error { return marshal(c, b) }

type WriteLEHostSupportRP struct{ Status uint8 }

func (c *WriteLEHostSupportRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// -- Informational Parameters (OGF 0x04) ---------------------------------

// ReadLocalVersionInformation implements Read Local Version Information
// (0x04|0x0001) [Vol 2, Part E, 7.4.1].
type ReadLocalVersionInformation struct{}

func (c *ReadLocalVersionInformation) OpCode() int        { return 0x04<<10 | 0x0001 }
func (c *ReadLocalVersionInformation) Len() int           { return 0 }
func (c *ReadLocalVersionInformation) Marshal(b []byte) error { return marshal(c, b) }

type ReadLocalVersionInformationRP struct {
	Status           uint8
	HCIVersion       uint8
	HCIRevision      uint16
	LMPPALVersion    uint8
	ManufacturerName uint16
	LMPPALSubversion uint16
}

func (c *ReadLocalVersionInformationRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadLocalSupportedFeatures implements Read Local Supported Features
// (0x04|0x0003) [Vol 2, Part E, 7.4.3].
type ReadLocalSupportedFeatures struct{}

func (c *ReadLocalSupportedFeatures) OpCode() int        { return 0x04<<10 | 0x0003 }
func (c *ReadLocalSupportedFeatures) Len() int           { return 0 }
func (c *ReadLocalSupportedFeatures) Marshal(b []byte) error { return marshal(c, b) }

type ReadLocalSupportedFeaturesRP struct {
	Status          uint8
	LMPFeatures     uint64
}

func (c *ReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadBufferSize implements Read Buffer Size (0x04|0x0005)
// [Vol 2, Part E, 7.4.5].
type ReadBufferSize struct{}

func (c *ReadBufferSize) OpCode() int        { return 0x04<<10 | 0x0005 }
func (c *ReadBufferSize) Len() int           { return 0 }
func (c *ReadBufferSize) Marshal(b []byte) error { return marshal(c, b) }

type ReadBufferSizeRP struct {
	Status                     uint8
	HCACLDataPacketLength      uint16
	HCSynchronousDataPacketLength uint8
	HCTotalNumACLDataPackets   uint16
	HCTotalNumSynchronousDataPackets uint16
}

func (c *ReadBufferSizeRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadBDADDR implements Read BD_ADDR (0x04|0x0009) [Vol 2, Part E, 7.4.6].
type ReadBDADDR struct{}

func (c *ReadBDADDR) OpCode() int        { return 0x04<<10 | 0x0009 }
func (c *ReadBDADDR) Len() int           { return 0 }
func (c *ReadBDADDR) Marshal(b []byte) error { return marshal(c, b) }

type ReadBDADDRRP struct {
	Status  uint8
	BDADDR  [6]byte
}

func (c *ReadBDADDRRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// -- Status Parameters (OGF 0x05) ----------------------------------------

// ReadRSSI implements Read RSSI (0x05|0x0005) [Vol 2, Part E, 7.5.4].
type ReadRSSI struct {
	Handle uint16
}

func (c *ReadRSSI) OpCode() int        { return 0x05<<10 | 0x0005 }
func (c *ReadRSSI) Len() int           { return 2 }
func (c *ReadRSSI) Marshal(b []byte) error { return marshal(c, b) }

type ReadRSSIRP struct {
	Status uint8
	Handle uint16
	RSSI   int8
}

func (c *ReadRSSIRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// -- LE Controller (OGF 0x08) --------------------------------------------

// LESetEventMask implements LE Set Event Mask (0x08|0x0001)
// [Vol 2, Part E, 7.8.1].
type LESetEventMask struct {
	LEEventMask uint64
}

func (c *LESetEventMask) OpCode() int        { return 0x08<<10 | 0x0001 }
func (c *LESetEventMask) Len() int           { return 8 }
func (c *LESetEventMask) Marshal(b []byte) error { return marshal(c, b) }

type LESetEventMaskRP struct{ Status uint8 }

func (c *LESetEventMaskRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadBufferSize implements LE Read Buffer Size (0x08|0x0002)
// [Vol 2, Part E, 7.8.2].
type LEReadBufferSize struct{}

func (c *LEReadBufferSize) OpCode() int        { return 0x08<<10 | 0x0002 }
func (c *LEReadBufferSize) Len() int           { return 0 }
func (c *LEReadBufferSize) Marshal(b []byte) error { return marshal(c, b) }

type LEReadBufferSizeRP struct {
	Status                    uint8
	HCLEDataPacketLength      uint16
	HCTotalNumLEDataPackets   uint8
}

func (c *LEReadBufferSizeRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadLocalSupportedFeatures implements LE Read Local Supported Features
// (0x08|0x0003) [Vol 2, Part E, 7.8.3].
type LEReadLocalSupportedFeatures struct{}

func (c *LEReadLocalSupportedFeatures) OpCode() int        { return 0x08<<10 | 0x0003 }
func (c *LEReadLocalSupportedFeatures) Len() int           { return 0 }
func (c *LEReadLocalSupportedFeatures) Marshal(b []byte) error { return marshal(c, b) }

type LEReadLocalSupportedFeaturesRP struct {
	Status   uint8
	LEFeatures uint64
}

func (c *LEReadLocalSupportedFeaturesRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetRandomAddress implements LE Set Random Address (0x08|0x0005)
// [Vol 2, Part E, 7.8.4].
type LESetRandomAddress struct {
	RandomAddress [6]byte
}

func (c *LESetRandomAddress) OpCode() int        { return 0x08<<10 | 0x0005 }
func (c *LESetRandomAddress) Len() int           { return 6 }
func (c *LESetRandomAddress) Marshal(b []byte) error { return marshal(c, b) }

type LESetRandomAddressRP struct{ Status uint8 }

func (c *LESetRandomAddressRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetAdvertisingParameters implements LE Set Advertising Parameters
// (0x08|0x0006) [Vol 2, Part E, 7.8.5].
type LESetAdvertisingParameters struct {
	AdvertisingIntervalMin  uint16
	AdvertisingIntervalMax  uint16
	AdvertisingType         uint8
	OwnAddressType          uint8
	DirectAddressType       uint8
	DirectAddress           [6]byte
	AdvertisingChannelMap   uint8
	AdvertisingFilterPolicy uint8
}

func (c *LESetAdvertisingParameters) OpCode() int        { return 0x08<<10 | 0x0006 }
func (c *LESetAdvertisingParameters) Len() int           { return 15 }
func (c *LESetAdvertisingParameters) Marshal(b []byte) error { return marshal(c, b) }

type LESetAdvertisingParametersRP struct{ Status uint8 }

func (c *LESetAdvertisingParametersRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadAdvertisingChannelTxPower implements LE Read Advertising Channel
// Tx Power (0x08|0x0007) [Vol 2, Part E, 7.8.6].
type LEReadAdvertisingChannelTxPower struct{}

func (c *LEReadAdvertisingChannelTxPower) OpCode() int        { return 0x08<<10 | 0x0007 }
func (c *LEReadAdvertisingChannelTxPower) Len() int           { return 0 }
func (c *LEReadAdvertisingChannelTxPower) Marshal(b []byte) error { return marshal(c, b) }

type LEReadAdvertisingChannelTxPowerRP struct {
	Status               uint8
	TransmitPowerLevel   int8
}

func (c *LEReadAdvertisingChannelTxPowerRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetAdvertisingData implements LE Set Advertising Data (0x08|0x0008)
// [Vol 2, Part E, 7.8.7]. AdvertisingData is the protocol-maximum 31
// bytes; AdvertisingDataLength says how much of it is significant.
type LESetAdvertisingData struct {
	AdvertisingDataLength uint8
	AdvertisingData       [31]byte
}

func (c *LESetAdvertisingData) OpCode() int        { return 0x08<<10 | 0x0008 }
func (c *LESetAdvertisingData) Len() int           { return 32 }
func (c *LESetAdvertisingData) Marshal(b []byte) error { return marshal(c, b) }

type LESetAdvertisingDataRP struct{ Status uint8 }

func (c *LESetAdvertisingDataRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetScanResponseData implements LE Set Scan Response Data
// (0x08|0x0009) [Vol 2, Part E, 7.8.8].
type LESetScanResponseData struct {
	ScanResponseDataLength uint8
	ScanResponseData       [31]byte
}

func (c *LESetScanResponseData) OpCode() int        { return 0x08<<10 | 0x0009 }
func (c *LESetScanResponseData) Len() int           { return 32 }
func (c *LESetScanResponseData) Marshal(b []byte) error { return marshal(c, b) }

type LESetScanResponseDataRP struct{ Status uint8 }

func (c *LESetScanResponseDataRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetAdvertiseEnable implements LE Set Advertise Enable (0x08|0x000A)
// [Vol 2, Part E, 7.8.9].
type LESetAdvertiseEnable struct {
	AdvertisingEnable uint8
}

func (c *LESetAdvertiseEnable) OpCode() int        { return 0x08<<10 | 0x000A }
func (c *LESetAdvertiseEnable) Len() int           { return 1 }
func (c *LESetAdvertiseEnable) Marshal(b []byte) error { return marshal(c, b) }

type LESetAdvertiseEnableRP struct{ Status uint8 }

func (c *LESetAdvertiseEnableRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetScanParameters implements LE Set Scan Parameters (0x08|0x000B)
// [Vol 2, Part E, 7.8.10].
type LESetScanParameters struct {
	LEScanType           uint8
	LEScanInterval       uint16
	LEScanWindow         uint16
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
}

func (c *LESetScanParameters) OpCode() int        { return 0x08<<10 | 0x000B }
func (c *LESetScanParameters) Len() int           { return 7 }
func (c *LESetScanParameters) Marshal(b []byte) error { return marshal(c, b) }

type LESetScanParametersRP struct{ Status uint8 }

func (c *LESetScanParametersRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetScanEnable implements LE Set Scan Enable (0x08|0x000C)
// [Vol 2, Part E, 7.8.11].
type LESetScanEnable struct {
	LEScanEnable     uint8
	FilterDuplicates uint8
}

func (c *LESetScanEnable) OpCode() int        { return 0x08<<10 | 0x000C }
func (c *LESetScanEnable) Len() int           { return 2 }
func (c *LESetScanEnable) Marshal(b []byte) error { return marshal(c, b) }

type LESetScanEnableRP struct{ Status uint8 }

func (c *LESetScanEnableRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LECreateConnection implements LE Create Connection (0x08|0x000D)
// [Vol 2, Part E, 7.8.12]. It completes with CommandStatus, not
// CommandComplete; there is no RP type.
type LECreateConnection struct {
	LEScanInterval        uint16
	LEScanWindow          uint16
	InitiatorFilterPolicy uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	OwnAddressType        uint8
	ConnIntervalMin       uint16
	ConnIntervalMax       uint16
	ConnLatency           uint16
	SupervisionTimeout    uint16
	MinimumCELength       uint16
	MaximumCELength       uint16
}

func (c *LECreateConnection) OpCode() int        { return 0x08<<10 | 0x000D }
func (c *LECreateConnection) Len() int           { return 25 }
func (c *LECreateConnection) Marshal(b []byte) error { return marshal(c, b) }

// LECreateConnectionCancel implements LE Create Connection Cancel
// (0x08|0x000E) [Vol 2, Part E, 7.8.13].
type LECreateConnectionCancel struct{}

func (c *LECreateConnectionCancel) OpCode() int        { return 0x08<<10 | 0x000E }
func (c *LECreateConnectionCancel) Len() int           { return 0 }
func (c *LECreateConnectionCancel) Marshal(b []byte) error { return marshal(c, b) }

type LECreateConnectionCancelRP struct{ Status uint8 }

func (c *LECreateConnectionCancelRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadWhiteListSize implements LE Read White List Size (0x08|0x000F)
// [Vol 2, Part E, 7.8.14].
type LEReadWhiteListSize struct{}

func (c *LEReadWhiteListSize) OpCode() int        { return 0x08<<10 | 0x000F }
func (c *LEReadWhiteListSize) Len() int           { return 0 }
func (c *LEReadWhiteListSize) Marshal(b []byte) error { return marshal(c, b) }

type LEReadWhiteListSizeRP struct {
	Status         uint8
	WhiteListSize  uint8
}

func (c *LEReadWhiteListSizeRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEClearWhiteList implements LE Clear White List (0x08|0x0010)
// [Vol 2, Part E, 7.8.15].
type LEClearWhiteList struct{}

func (c *LEClearWhiteList) OpCode() int        { return 0x08<<10 | 0x0010 }
func (c *LEClearWhiteList) Len() int           { return 0 }
func (c *LEClearWhiteList) Marshal(b []byte) error { return marshal(c, b) }

type LEClearWhiteListRP struct{ Status uint8 }

func (c *LEClearWhiteListRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEAddDeviceToWhiteList implements LE Add Device To White List
// (0x08|0x0011) [Vol 2, Part E, 7.8.16].
type LEAddDeviceToWhiteList struct {
	AddressType uint8
	Address     [6]byte
}

func (c *LEAddDeviceToWhiteList) OpCode() int        { return 0x08<<10 | 0x0011 }
func (c *LEAddDeviceToWhiteList) Len() int           { return 7 }
func (c *LEAddDeviceToWhiteList) Marshal(b []byte) error { return marshal(c, b) }

type LEAddDeviceToWhiteListRP struct{ Status uint8 }

func (c *LEAddDeviceToWhiteListRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LERemoveDeviceFromWhiteList implements LE Remove Device From White List
// (0x08|0x0012) [Vol 2, Part E, 7.8.17].
type LERemoveDeviceFromWhiteList struct {
	AddressType uint8
	Address     [6]byte
}

func (c *LERemoveDeviceFromWhiteList) OpCode() int        { return 0x08<<10 | 0x0012 }
func (c *LERemoveDeviceFromWhiteList) Len() int           { return 7 }
func (c *LERemoveDeviceFromWhiteList) Marshal(b []byte) error { return marshal(c, b) }

type LERemoveDeviceFromWhiteListRP struct{ Status uint8 }

func (c *LERemoveDeviceFromWhiteListRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEConnectionUpdate implements LE Connection Update (0x08|0x0013)
// [Vol 2, Part E, 7.8.18]. It completes with CommandStatus; no RP type.
type LEConnectionUpdate struct {
	ConnectionHandle   uint16
	ConnIntervalMin    uint16
	ConnIntervalMax    uint16
	ConnLatency        uint16
	SupervisionTimeout uint16
	MinimumCELength    uint16
	MaximumCELength    uint16
}

func (c *LEConnectionUpdate) OpCode() int        { return 0x08<<10 | 0x0013 }
func (c *LEConnectionUpdate) Len() int           { return 14 }
func (c *LEConnectionUpdate) Marshal(b []byte) error { return marshal(c, b) }

// LESetHostChannelClassification implements LE Set Host Channel
// Classification (0x08|0x0014) [Vol 2, Part E, 7.8.19].
type LESetHostChannelClassification struct {
	ChannelMap [5]byte
}

func (c *LESetHostChannelClassification) OpCode() int        { return 0x08<<10 | 0x0014 }
func (c *LESetHostChannelClassification) Len() int           { return 5 }
func (c *LESetHostChannelClassification) Marshal(b []byte) error { return marshal(c, b) }

type LESetHostChannelClassificationRP struct{ Status uint8 }

func (c *LESetHostChannelClassificationRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadChannelMap implements LE Read Channel Map (0x08|0x0015)
// [Vol 2, Part E, 7.8.20].
type LEReadChannelMap struct {
	ConnectionHandle uint16
}

func (c *LEReadChannelMap) OpCode() int        { return 0x08<<10 | 0x0015 }
func (c *LEReadChannelMap) Len() int           { return 2 }
func (c *LEReadChannelMap) Marshal(b []byte) error { return marshal(c, b) }

func (c *LEReadChannelMap) ConnHandle() uint16 { return c.ConnectionHandle }


// LEReadChannelMapRP's first two bytes echo the connection handle,
// matching the dispatcher's per-connection completion-matching rule.
type LEReadChannelMapRP struct {
	Status           uint8
	ConnectionHandle uint16
	ChannelMap       [5]byte
}

func (c *LEReadChannelMapRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadRemoteUsedFeatures implements LE Read Remote Used Features
// (0x08|0x0016) [Vol 2, Part E, 7.8.21]. Completes with CommandStatus.
type LEReadRemoteUsedFeatures struct {
	ConnectionHandle uint16
}

func (c *LEReadRemoteUsedFeatures) OpCode() int        { return 0x08<<10 | 0x0016 }
func (c *LEReadRemoteUsedFeatures) Len() int           { return 2 }
func (c *LEReadRemoteUsedFeatures) Marshal(b []byte) error { return marshal(c, b) }

// LEEncrypt implements LE Encrypt (0x08|0x0017) [Vol 2, Part E, 7.8.22].
type LEEncrypt struct {
	Key          [16]byte
	PlaintextData [16]byte
}

func (c *LEEncrypt) OpCode() int        { return 0x08<<10 | 0x0017 }
func (c *LEEncrypt) Len() int           { return 32 }
func (c *LEEncrypt) Marshal(b []byte) error { return marshal(c, b) }

type LEEncryptRP struct {
	Status        uint8
	EncryptedData [16]byte
}

func (c *LEEncryptRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LERand implements LE Rand (0x08|0x0018) [Vol 2, Part E, 7.8.23].
type LERand struct{}

func (c *LERand) OpCode() int        { return 0x08<<10 | 0x0018 }
func (c *LERand) Len() int           { return 0 }
func (c *LERand) Marshal(b []byte) error { return marshal(c, b) }

type LERandRP struct {
	Status       uint8
	RandomNumber [8]byte
}

func (c *LERandRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEStartEncryption implements LE Start Encryption (0x08|0x0019)
// [Vol 2, Part E, 7.8.24]. Completes with CommandStatus.
type LEStartEncryption struct {
	ConnectionHandle   uint16
	RandomNumber       [8]byte
	EncryptedDiversifier uint16
	LongTermKey        [16]byte
}

func (c *LEStartEncryption) OpCode() int        { return 0x08<<10 | 0x0019 }
func (c *LEStartEncryption) Len() int           { return 28 }
func (c *LEStartEncryption) Marshal(b []byte) error { return marshal(c, b) }

// LELongTermKeyRequestReply implements LE Long Term Key Request Reply
// (0x08|0x001A) [Vol 2, Part E, 7.8.25].
type LELongTermKeyRequestReply struct {
	ConnectionHandle uint16
	LongTermKey      [16]byte
}

func (c *LELongTermKeyRequestReply) OpCode() int        { return 0x08<<10 | 0x001A }
func (c *LELongTermKeyRequestReply) Len() int           { return 18 }
func (c *LELongTermKeyRequestReply) Marshal(b []byte) error { return marshal(c, b) }

type LELongTermKeyRequestReplyRP struct {
	Status           uint8
	ConnectionHandle uint16
}

func (c *LELongTermKeyRequestReplyRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LELongTermKeyRequestNegativeReply implements LE Long Term Key Request
// Negative Reply (0x08|0x001B) [Vol 2, Part E, 7.8.26].
type LELongTermKeyRequestNegativeReply struct {
	ConnectionHandle uint16
}

func (c *LELongTermKeyRequestNegativeReply) OpCode() int        { return 0x08<<10 | 0x001B }
func (c *LELongTermKeyRequestNegativeReply) Len() int           { return 2 }
func (c *LELongTermKeyRequestNegativeReply) Marshal(b []byte) error { return marshal(c, b) }

type LELongTermKeyRequestNegativeReplyRP struct {
	Status           uint8
	ConnectionHandle uint16
}

func (c *LELongTermKeyRequestNegativeReplyRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadSupportedStates implements LE Read Supported States (0x08|0x001C)
// [Vol 2, Part E, 7.8.27].
type LEReadSupportedStates struct{}

func (c *LEReadSupportedStates) OpCode() int        { return 0x08<<10 | 0x001C }
func (c *LEReadSupportedStates) Len() int           { return 0 }
func (c *LEReadSupportedStates) Marshal(b []byte) error { return marshal(c, b) }

type LEReadSupportedStatesRP struct {
	Status         uint8
	LEStates       uint64
}

func (c *LEReadSupportedStatesRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReceiverTest implements LE Receiver Test (0x08|0x001D)
// [Vol 2, Part E, 7.8.28].
type LEReceiverTest struct {
	RXChannel uint8
}

func (c *LEReceiverTest) OpCode() int        { return 0x08<<10 | 0x001D }
func (c *LEReceiverTest) Len() int           { return 1 }
func (c *LEReceiverTest) Marshal(b []byte) error { return marshal(c, b) }

type LEReceiverTestRP struct{ Status uint8 }

func (c *LEReceiverTestRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LETransmitterTest implements LE Transmitter Test (0x08|0x001E)
// [Vol 2, Part E, 7.8.29].
type LETransmitterTest struct {
	TXChannel       uint8
	LengthOfTestData uint8
	PacketPayload    uint8
}

func (c *LETransmitterTest) OpCode() int        { return 0x08<<10 | 0x001E }
func (c *LETransmitterTest) Len() int           { return 3 }
func (c *LETransmitterTest) Marshal(b []byte) error { return marshal(c, b) }

type LETransmitterTestRP struct{ Status uint8 }

func (c *LETransmitterTestRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LETestEnd implements LE Test End (0x08|0x001F) [Vol 2, Part E, 7.8.30].
type LETestEnd struct{}

func (c *LETestEnd) OpCode() int        { return 0x08<<10 | 0x001F }
func (c *LETestEnd) Len() int           { return 0 }
func (c *LETestEnd) Marshal(b []byte) error { return marshal(c, b) }

type LETestEndRP struct {
	Status       uint8
	NumberOfPackets uint16
}

func (c *LETestEndRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetDataLength implements LE Set Data Length (0x08|0x0022)
// [Vol 2, Part E, 7.8.33].
type LESetDataLength struct {
	ConnectionHandle uint16
	TxOctets         uint16
	TxTime           uint16
}

func (c *LESetDataLength) OpCode() int        { return 0x08<<10 | 0x0022 }
func (c *LESetDataLength) Len() int           { return 6 }
func (c *LESetDataLength) Marshal(b []byte) error { return marshal(c, b) }

func (c *LESetDataLength) ConnHandle() uint16 { return c.ConnectionHandle }


// LESetDataLengthRP's first two bytes echo the connection handle.
type LESetDataLengthRP struct {
	Status           uint8
	ConnectionHandle uint16
}

func (c *LESetDataLengthRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadSuggestedDefaultDataLength implements LE Read Suggested Default
// Data Length (0x08|0x0023) [Vol 2, Part E, 7.8.34].
type LEReadSuggestedDefaultDataLength struct{}

func (c *LEReadSuggestedDefaultDataLength) OpCode() int        { return 0x08<<10 | 0x0023 }
func (c *LEReadSuggestedDefaultDataLength) Len() int           { return 0 }
func (c *LEReadSuggestedDefaultDataLength) Marshal(b []byte) error { return marshal(c, b) }

type LEReadSuggestedDefaultDataLengthRP struct {
	Status                uint8
	SuggestedMaxTxOctets  uint16
	SuggestedMaxTxTime    uint16
}

func (c *LEReadSuggestedDefaultDataLengthRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEWriteSuggestedDefaultDataLength implements LE Write Suggested Default
// Data Length (0x08|0x0024) [Vol 2, Part E, 7.8.35].
type LEWriteSuggestedDefaultDataLength struct {
	SuggestedMaxTxOctets uint16
	SuggestedMaxTxTime   uint16
}

func (c *LEWriteSuggestedDefaultDataLength) OpCode() int        { return 0x08<<10 | 0x0024 }
func (c *LEWriteSuggestedDefaultDataLength) Len() int           { return 4 }
func (c *LEWriteSuggestedDefaultDataLength) Marshal(b []byte) error { return marshal(c, b) }

type LEWriteSuggestedDefaultDataLengthRP struct{ Status uint8 }

func (c *LEWriteSuggestedDefaultDataLengthRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LERemoteConnectionParameterRequestReply implements LE Remote Connection
// Parameter Request Reply (0x08|0x0020) [Vol 2, Part E, 7.8.31].
type LERemoteConnectionParameterRequestReply struct {
	ConnectionHandle uint16
	ConnIntervalMin  uint16
	ConnIntervalMax  uint16
	ConnLatency      uint16
	SupervisionTimeout uint16
	MinimumCELength  uint16
	MaximumCELength  uint16
}

func (c *LERemoteConnectionParameterRequestReply) OpCode() int        { return 0x08<<10 | 0x0020 }
func (c *LERemoteConnectionParameterRequestReply) Len() int           { return 14 }
func (c *LERemoteConnectionParameterRequestReply) Marshal(b []byte) error { return marshal(c, b) }

type LERemoteConnectionParameterRequestReplyRP struct {
	Status           uint8
	ConnectionHandle uint16
}

func (c *LERemoteConnectionParameterRequestReplyRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LERemoteConnectionParameterRequestNegativeReply implements LE Remote
// Connection Parameter Request Negative Reply (0x08|0x0021)
// [Vol 2, Part E, 7.8.32].
type LERemoteConnectionParameterRequestNegativeReply struct {
	ConnectionHandle uint16
	Reason           uint8
}

func (c *LERemoteConnectionParameterRequestNegativeReply) OpCode() int {
	return 0x08<<10 | 0x0021
}
func (c *LERemoteConnectionParameterRequestNegativeReply) Len() int { return 3 }
func (c *LERemoteConnectionParameterRequestNegativeReply) Marshal(b []byte) error {
	return marshal(c, b)
}

type LERemoteConnectionParameterRequestNegativeReplyRP struct {
	Status           uint8
	ConnectionHandle uint16
}

func (c *LERemoteConnectionParameterRequestNegativeReplyRP) Unmarshal(b []byte) error {
	return unmarshal(c, b)
}

// -- LE Extended Advertising (introduced in Core 5.0) --------------------

// LESetExtendedAdvertisingParameters implements LE Set Extended
// Advertising Parameters (0x08|0x0036) [Vol 2, Part E, 7.8.53]. Returns
// the controller's selected TX power, not merely an echo of the request.
type LESetExtendedAdvertisingParameters struct {
	AdvertisingHandle          uint8
	AdvertisingEventProperties uint16
	PrimaryAdvertisingIntervalMin [3]byte
	PrimaryAdvertisingIntervalMax [3]byte
	PrimaryAdvertisingChannelMap uint8
	OwnAddressType              uint8
	PeerAddressType             uint8
	PeerAddress                 [6]byte
	AdvertisingFilterPolicy     uint8
	AdvertisingTxPower          int8
	PrimaryAdvertisingPHY       uint8
	SecondaryAdvertisingMaxSkip uint8
	SecondaryAdvertisingPHY     uint8
	AdvertisingSID              uint8
	ScanRequestNotificationEnable uint8
}

func (c *LESetExtendedAdvertisingParameters) OpCode() int { return 0x08<<10 | 0x0036 }
func (c *LESetExtendedAdvertisingParameters) Len() int    { return 25 }
func (c *LESetExtendedAdvertisingParameters) Marshal(b []byte) error {
	return marshal(c, b)
}

type LESetExtendedAdvertisingParametersRP struct {
	Status             uint8
	SelectedTxPower    int8
}

func (c *LESetExtendedAdvertisingParametersRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// fragmentPreferenceBit converts the host's fragmentation preference into
// the wire's Fragment_Preference octet: Fragment true means the host is
// willing to let the controller fragment this data and encodes as 0;
// Fragment false asks the controller to minimize fragmentation and
// encodes as 1.
func fragmentPreferenceBit(fragment bool) uint8 {
	if fragment {
		return 0
	}
	return 1
}

// LESetExtendedAdvertisingData implements LE Set Extended Advertising
// Data (0x08|0x0037) [Vol 2, Part E, 7.8.54]. AdvertisingData carries at
// most 251 octets per fragment; Operation is one of the DataOp*
// constants and Fragment is the host-fragmentation-preference flag,
// inverted onto the wire by fragmentPreferenceBit.
type LESetExtendedAdvertisingData struct {
	AdvertisingHandle     uint8
	Operation             uint8
	Fragment              bool
	AdvertisingDataLength uint8
	AdvertisingData       [251]byte
}

func (c *LESetExtendedAdvertisingData) OpCode() int { return 0x08<<10 | 0x0037 }
func (c *LESetExtendedAdvertisingData) Len() int    { return 4 + 251 }
func (c *LESetExtendedAdvertisingData) Marshal(b []byte) error {
	if len(b) < c.Len() {
		return io.ErrShortBuffer
	}
	b[0] = c.AdvertisingHandle
	b[1] = c.Operation
	b[2] = fragmentPreferenceBit(c.Fragment)
	b[3] = c.AdvertisingDataLength
	copy(b[4:c.Len()], c.AdvertisingData[:])
	return nil
}

type LESetExtendedAdvertisingDataRP struct{ Status uint8 }

func (c *LESetExtendedAdvertisingDataRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetExtendedScanResponseData implements LE Set Extended Scan Response
// Data (0x08|0x0038) [Vol 2, Part E, 7.8.55]. Fragment is inverted onto
// the wire by fragmentPreferenceBit, same as LESetExtendedAdvertisingData.
type LESetExtendedScanResponseData struct {
	AdvertisingHandle      uint8
	Operation              uint8
	Fragment               bool
	ScanResponseDataLength uint8
	ScanResponseData       [251]byte
}

func (c *LESetExtendedScanResponseData) OpCode() int { return 0x08<<10 | 0x0038 }
func (c *LESetExtendedScanResponseData) Len() int    { return 4 + 251 }
func (c *LESetExtendedScanResponseData) Marshal(b []byte) error {
	if len(b) < c.Len() {
		return io.ErrShortBuffer
	}
	b[0] = c.AdvertisingHandle
	b[1] = c.Operation
	b[2] = fragmentPreferenceBit(c.Fragment)
	b[3] = c.ScanResponseDataLength
	copy(b[4:c.Len()], c.ScanResponseData[:])
	return nil
}

type LESetExtendedScanResponseDataRP struct{ Status uint8 }

func (c *LESetExtendedScanResponseDataRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetExtendedAdvertisingEnable implements LE Set Extended Advertising
// Enable (0x08|0x0039) [Vol 2, Part E, 7.8.56]. The struct carries the
// fields of a single advertising set; NumSets is written as given.
type LESetExtendedAdvertisingEnable struct {
	Enable                uint8
	NumSets                uint8
	AdvertisingHandle      uint8
	Duration               uint16
	MaxExtendedAdvertisingEvents uint8
}

func (c *LESetExtendedAdvertisingEnable) OpCode() int { return 0x08<<10 | 0x0039 }
func (c *LESetExtendedAdvertisingEnable) Len() int    { return 6 }
func (c *LESetExtendedAdvertisingEnable) Marshal(b []byte) error {
	return marshal(c, b)
}

type LESetExtendedAdvertisingEnableRP struct{ Status uint8 }

func (c *LESetExtendedAdvertisingEnableRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEReadMaximumAdvertisingDataLength implements LE Read Maximum
// Advertising Data Length (0x08|0x003A) [Vol 2, Part E, 7.8.57].
type LEReadMaximumAdvertisingDataLength struct{}

func (c *LEReadMaximumAdvertisingDataLength) OpCode() int { return 0x08<<10 | 0x003A }
func (c *LEReadMaximumAdvertisingDataLength) Len() int    { return 0 }
func (c *LEReadMaximumAdvertisingDataLength) Marshal(b []byte) error {
	return marshal(c, b)
}

type LEReadMaximumAdvertisingDataLengthRP struct {
	Status                 uint8
	MaxAdvertisingDataLength uint16
}

func (c *LEReadMaximumAdvertisingDataLengthRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LERemoveAdvertisingSet implements LE Remove Advertising Set
// (0x08|0x003C) [Vol 2, Part E, 7.8.59].
type LERemoveAdvertisingSet struct {
	AdvertisingHandle uint8
}

func (c *LERemoveAdvertisingSet) OpCode() int { return 0x08<<10 | 0x003C }
func (c *LERemoveAdvertisingSet) Len() int    { return 1 }
func (c *LERemoveAdvertisingSet) Marshal(b []byte) error {
	return marshal(c, b)
}

type LERemoveAdvertisingSetRP struct{ Status uint8 }

func (c *LERemoveAdvertisingSetRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEClearAdvertisingSets implements LE Clear Advertising Sets
// (0x08|0x003D) [Vol 2, Part E, 7.8.60].
type LEClearAdvertisingSets struct{}

func (c *LEClearAdvertisingSets) OpCode() int { return 0x08<<10 | 0x003D }
func (c *LEClearAdvertisingSets) Len() int    { return 0 }
func (c *LEClearAdvertisingSets) Marshal(b []byte) error {
	return marshal(c, b)
}

type LEClearAdvertisingSetsRP struct{ Status uint8 }

func (c *LEClearAdvertisingSetsRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetAdvertisingSetRandomAddress implements LE Set Advertising Set
// Random Address (0x08|0x0035) [Vol 2, Part E, 7.8.52].
type LESetAdvertisingSetRandomAddress struct {
	AdvertisingHandle uint8
	RandomAddress     [6]byte
}

func (c *LESetAdvertisingSetRandomAddress) OpCode() int { return 0x08<<10 | 0x0035 }
func (c *LESetAdvertisingSetRandomAddress) Len() int    { return 7 }
func (c *LESetAdvertisingSetRandomAddress) Marshal(b []byte) error {
	return marshal(c, b)
}

type LESetAdvertisingSetRandomAddressRP struct{ Status uint8 }

func (c *LESetAdvertisingSetRandomAddressRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// -- LE Extended Scanning & Connecting ------------------------------------

// LESetExtendedScanParameters implements LE Set Extended Scan Parameters
// (0x08|0x0041) [Vol 2, Part E, 7.8.64]. The payload is variable-length:
// it carries a ScanType/Interval/Window sub-block only for each PHY set
// in ScanningPHYs, grouped by field (all ScanTypes, then all Intervals,
// then all Windows) in ascending PHY ordinal order — never both PHYs
// unconditionally. This client only ever scans on the 1M and/or Coded
// PHYs, so the struct carries both sub-blocks but Marshal emits only
// the ones ScanningPHYs selects.
type LESetExtendedScanParameters struct {
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
	ScanningPHYs         uint8
	ScanType1M           uint8
	ScanTypeCoded        uint8
	ScanInterval1M       uint16
	ScanIntervalCoded    uint16
	ScanWindow1M         uint16
	ScanWindowCoded      uint16
}

func (c *LESetExtendedScanParameters) OpCode() int { return 0x08<<10 | 0x0041 }

// Bit ordinals within ScanningPHYs, matching the PHY bitmask used across
// the LE extended-advertising commands [Vol 2, Part E, 7.8.64].
const (
	scanningPhyBit1M    = 0
	scanningPhyBitCoded = 2
)

// selectedScanningPHYs returns the PHY-bit ordinals set in ScanningPHYs,
// ascending, restricted to the two PHYs this client understands.
func (c *LESetExtendedScanParameters) selectedScanningPHYs() []uint8 {
	var phys []uint8
	if c.ScanningPHYs&(1<<scanningPhyBit1M) != 0 {
		phys = append(phys, scanningPhyBit1M)
	}
	if c.ScanningPHYs&(1<<scanningPhyBitCoded) != 0 {
		phys = append(phys, scanningPhyBitCoded)
	}
	return phys
}

func (c *LESetExtendedScanParameters) scanType(phy uint8) uint8 {
	if phy == scanningPhyBit1M {
		return c.ScanType1M
	}
	return c.ScanTypeCoded
}

func (c *LESetExtendedScanParameters) scanInterval(phy uint8) uint16 {
	if phy == scanningPhyBit1M {
		return c.ScanInterval1M
	}
	return c.ScanIntervalCoded
}

func (c *LESetExtendedScanParameters) scanWindow(phy uint8) uint16 {
	if phy == scanningPhyBit1M {
		return c.ScanWindow1M
	}
	return c.ScanWindowCoded
}

func (c *LESetExtendedScanParameters) Len() int { return 3 + 5*len(c.selectedScanningPHYs()) }

func (c *LESetExtendedScanParameters) Marshal(b []byte) error {
	if len(b) < c.Len() {
		return io.ErrShortBuffer
	}
	b[0] = c.OwnAddressType
	b[1] = c.ScanningFilterPolicy
	b[2] = c.ScanningPHYs

	phys := c.selectedScanningPHYs()
	off := 3
	for _, phy := range phys {
		b[off] = c.scanType(phy)
		off++
	}
	for _, phy := range phys {
		binary.LittleEndian.PutUint16(b[off:], c.scanInterval(phy))
		off += 2
	}
	for _, phy := range phys {
		binary.LittleEndian.PutUint16(b[off:], c.scanWindow(phy))
		off += 2
	}
	return nil
}

type LESetExtendedScanParametersRP struct{ Status uint8 }

func (c *LESetExtendedScanParametersRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LESetExtendedScanEnable implements LE Set Extended Scan Enable
// (0x08|0x0042) [Vol 2, Part E, 7.8.65].
type LESetExtendedScanEnable struct {
	Enable           uint8
	FilterDuplicates uint8
	Duration         uint16
	Period           uint16
}

func (c *LESetExtendedScanEnable) OpCode() int { return 0x08<<10 | 0x0042 }
func (c *LESetExtendedScanEnable) Len() int    { return 6 }
func (c *LESetExtendedScanEnable) Marshal(b []byte) error {
	return marshal(c, b)
}

type LESetExtendedScanEnableRP struct{ Status uint8 }

func (c *LESetExtendedScanEnableRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// LEExtendedCreateConnection implements LE Extended Create Connection
// (0x08|0x0043) [Vol 2, Part E, 7.8.66], fixed to the single-PHY (1M)
// initiating-PHY shape this client uses. Completes with CommandStatus.
type LEExtendedCreateConnection struct {
	InitiatorFilterPolicy uint8
	OwnAddressType        uint8
	PeerAddressType       uint8
	PeerAddress           [6]byte
	InitiatingPHYs        uint8
	ScanInterval1M        uint16
	ScanWindow1M          uint16
	ConnIntervalMin1M     uint16
	ConnIntervalMax1M     uint16
	ConnLatency1M         uint16
	SupervisionTimeout1M  uint16
	MinimumCELength1M     uint16
	MaximumCELength1M     uint16
}

func (c *LEExtendedCreateConnection) OpCode() int { return 0x08<<10 | 0x0043 }
func (c *LEExtendedCreateConnection) Len() int    { return 10 + 16 }
func (c *LEExtendedCreateConnection) Marshal(b []byte) error {
	return marshal(c, b)
}
