package hci

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/Transmission-Dynamics/bluetooth-hci/cmd"
)

// params holds the default scan/advertising/connection parameters stored
// on a Host; the scan and connection options validate an override before
// it is adopted. No Host method issues a command from these defaults.
type params struct {
	sync.RWMutex

	scanParams cmd.LESetScanParameters
	advParams  cmd.LESetAdvertisingParameters
	connParams cmd.LECreateConnection
}

func newParams() *params {
	p := &params{}
	p.init()
	return p
}

func (p *params) init() {
	p.scanParams = cmd.LESetScanParameters{
		LEScanType:           LEScanTypeActive,
		LEScanInterval:       0x0004,
		LEScanWindow:         0x0004,
		OwnAddressType:       AddressTypePublic,
		ScanningFilterPolicy: FilterPolicyAcceptAll,
	}
	p.advParams = cmd.LESetAdvertisingParameters{
		AdvertisingIntervalMin:  0x0020,
		AdvertisingIntervalMax:  0x0020,
		AdvertisingType:         AdvTypeUndirected,
		OwnAddressType:          AddressTypePublic,
		DirectAddressType:       AddressTypePublic,
		AdvertisingChannelMap:   0x7,
		AdvertisingFilterPolicy: FilterPolicyAcceptAll,
	}
	p.connParams = cmd.LECreateConnection{
		LEScanInterval:        0x0040,
		LEScanWindow:          0x0040,
		InitiatorFilterPolicy: FilterPolicyAcceptAll,
		PeerAddressType:       AddressTypePublic,
		OwnAddressType:        AddressTypePublic,
		ConnIntervalMin:       0x0006,
		ConnIntervalMax:       0x0006,
		ConnLatency:           0x0000,
		SupervisionTimeout:    0x0400,
		MinimumCELength:       0x0000,
		MaximumCELength:       0x0000,
	}
}

// validOwnAddressType reports whether t is one of the four Own_Address_Type
// values, including the two privacy-resolving-list fallback variants.
func validOwnAddressType(t uint8) bool {
	switch t {
	case OwnAddressTypePublic, OwnAddressTypeRandom,
		OwnAddressTypePublicWithPrivacyFallback, OwnAddressTypeRandomWithPrivacyFallback:
		return true
	}
	return false
}

// ValidateScanParams checks a LESetScanParameters override against the
// ranges of §6/Data Model before it reaches the controller.
func ValidateScanParams(p cmd.LESetScanParameters) error {
	switch {
	case p.LEScanType != LEScanTypeActive && p.LEScanType != LEScanTypePassive:
		return errors.Errorf("invalid LEScanType %v", p.LEScanType)
	case p.LEScanInterval < LEScanIntervalMin || p.LEScanInterval > LEScanIntervalMax:
		return errors.Errorf("invalid LEScanInterval %v", p.LEScanInterval)
	case p.LEScanWindow < LEScanWindowMin || p.LEScanWindow > LEScanWindowMax:
		return errors.Errorf("invalid LEScanWindow %v", p.LEScanWindow)
	case p.LEScanWindow > p.LEScanInterval:
		return errors.Errorf("LEScanWindow %v > LEScanInterval %v", p.LEScanWindow, p.LEScanInterval)
	case !validOwnAddressType(p.OwnAddressType):
		return errors.Errorf("invalid OwnAddressType %v", p.OwnAddressType)
	case p.ScanningFilterPolicy != FilterPolicyAcceptAll && p.ScanningFilterPolicy != FilterPolicyAcceptWhitelist:
		return errors.Errorf("invalid ScanningFilterPolicy %v", p.ScanningFilterPolicy)
	}
	return nil
}

// ValidateConnParams checks a LECreateConnection override, including the
// supervision-timeout relationship to connection interval and latency
// [Vol 2, Part E, 7.8.12]: the supervision timeout in ms must exceed
// (1 + latency) * interval_max_ms * 2.
func ValidateConnParams(p cmd.LECreateConnection) error {
	minStoMs := (1 + float64(p.ConnLatency)) * (float64(p.ConnIntervalMax) * 1.25) * 2
	stoMs := float64(p.SupervisionTimeout) * 10

	switch {
	case p.LEScanInterval < LEScanIntervalMin || p.LEScanInterval > LEScanIntervalMax:
		return errors.Errorf("invalid LEScanInterval %v", p.LEScanInterval)
	case p.LEScanWindow < LEScanWindowMin || p.LEScanWindow > LEScanWindowMax:
		return errors.Errorf("invalid LEScanWindow %v", p.LEScanWindow)
	case p.LEScanWindow > p.LEScanInterval:
		return errors.Errorf("LEScanWindow %v > LEScanInterval %v", p.LEScanWindow, p.LEScanInterval)
	case p.InitiatorFilterPolicy != FilterPolicyAcceptAll && p.InitiatorFilterPolicy != FilterPolicyAcceptWhitelist:
		return errors.Errorf("invalid InitiatorFilterPolicy %v", p.InitiatorFilterPolicy)
	case !validOwnAddressType(p.OwnAddressType):
		return errors.Errorf("invalid OwnAddressType %v", p.OwnAddressType)
	case p.PeerAddressType != AddressTypePublic && p.PeerAddressType != AddressTypeRandom:
		return errors.Errorf("invalid PeerAddressType %v", p.PeerAddressType)
	case p.ConnIntervalMax < ConnIntervalMin || p.ConnIntervalMax > ConnIntervalMax:
		return errors.Errorf("invalid ConnIntervalMax %v", p.ConnIntervalMax)
	case p.ConnIntervalMin < ConnIntervalMin || p.ConnIntervalMin > ConnIntervalMax:
		return errors.Errorf("invalid ConnIntervalMin %v", p.ConnIntervalMin)
	case p.ConnIntervalMin > p.ConnIntervalMax:
		return errors.Errorf("ConnIntervalMin %v > ConnIntervalMax %v", p.ConnIntervalMin, p.ConnIntervalMax)
	case p.ConnLatency < ConnLatencyMin || p.ConnLatency > ConnLatencyMax:
		return errors.Errorf("invalid ConnLatency %v", p.ConnLatency)
	case p.SupervisionTimeout < SupervisionTimeoutMin || p.SupervisionTimeout > SupervisionTimeoutMax:
		return errors.Errorf("invalid SupervisionTimeout %v", p.SupervisionTimeout)
	case stoMs <= minStoMs:
		return errors.Errorf("invalid SupervisionTimeout %v (too small)", p.SupervisionTimeout)
	case p.MinimumCELength < CELengthMin || p.MinimumCELength > CELengthMax:
		return errors.Errorf("invalid MinimumCELength %v", p.MinimumCELength)
	case p.MaximumCELength < CELengthMin || p.MaximumCELength > CELengthMax:
		return errors.Errorf("invalid MaximumCELength %v", p.MaximumCELength)
	case p.MinimumCELength > p.MaximumCELength:
		return errors.Errorf("MinimumCELength %v > MaximumCELength %v", p.MinimumCELength, p.MaximumCELength)
	}
	return nil
}
