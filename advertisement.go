package hci

import (
	"fmt"
	"sync"

	"github.com/Transmission-Dynamics/bluetooth-hci/evt"
)

// Address is a 6-byte device address as carried on the wire, least
// significant byte first.
type Address [6]byte

// String renders the address in the conventional colon-separated,
// most-significant-byte-first form.
func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
}

// Advertisement is a decoded advertising report, legacy or extended. It
// carries only the fields the controller reports and the bytes of the
// advertising/scan-response data as received — the AD structure's TLV
// contents (local name, manufacturer data, service UUIDs) are GAP-layer
// territory and are not decoded here.
type Advertisement struct {
	// EventType carries the legacy 1-byte ADV_IND/SCAN_RSP/... enum
	// for a legacy report, or the full extended-report event-type bitmap
	// (connectable/scannable/directed/scan-response/legacy-PDU/data-status
	// bits [Vol 2, Part E, 7.7.65.13]) for an extended one; the two are
	// not comparable across Extended, so switch on it before reading this.
	EventType   uint16
	AddressType uint8
	Addr        Address
	RSSI        int8
	Data        []byte

	// ScanResponse, for a legacy AdvInd/AdvScanInd report, is the
	// scan-response report later matched to it by address, if any
	// arrived before the history slot was recycled.
	ScanResponse *Advertisement

	// Extended is set for reports decoded from LEExtendedAdvertisingReport.
	// The remaining fields are only meaningful when it is set.
	Extended                    bool
	PrimaryPHY                  uint8
	SecondaryPHY                uint8
	AdvertisingSID              uint8
	TxPower                     int8
	PeriodicAdvertisingInterval uint16
	DirectAddressType           uint8
	DirectAddr                  Address
}

// advHistory is a small fixed-size ring of recent legacy advertisements,
// searched back-to-front to find the AdvInd/AdvScanInd a later SCAN_RSP
// belongs to, matched by address. Grounded on the history ring kept by
// the advertising-report handler this package's event routing descends
// from; generalized here into its own type so it can be driven by a
// report count instead of a hard assumption of exactly one report per
// event.
type advHistory struct {
	mu   sync.Mutex
	buf  []*Advertisement
	last int
}

func newAdvHistory(n int) *advHistory {
	if n <= 0 {
		n = 8
	}
	return &advHistory{buf: make([]*Advertisement, n)}
}

// record stores a freshly decoded AdvInd/AdvScanInd, overwriting the
// oldest slot.
func (h *advHistory) record(a *Advertisement) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.last] = a
	h.last = (h.last + 1) % len(h.buf)
}

// match searches backwards from the most recently recorded slot for an
// advertisement from addr, stopping at the first empty slot it crosses.
func (h *advHistory) match(addr Address) *Advertisement {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.buf)
	for i, idx := 0, h.last-1; i < n; i, idx = i+1, idx-1 {
		if idx < 0 {
			idx = n - 1
		}
		a := h.buf[idx]
		if a == nil {
			break
		}
		if a.Addr == addr {
			return a
		}
	}
	return nil
}

// decodeLegacyReport builds an Advertisement from report i of a
// LEAdvertisingReport event.
func decodeLegacyReport(e evt.LEAdvertisingReport, i int) (*Advertisement, error) {
	et, err := e.EventTypeWErr(i)
	if err != nil {
		return nil, err
	}
	at, err := e.AddressTypeWErr(i)
	if err != nil {
		return nil, err
	}
	addr, err := e.AddressWErr(i)
	if err != nil {
		return nil, err
	}
	data, err := e.DataWErr(i)
	if err != nil {
		return nil, err
	}
	rssi, err := e.RSSIWErr(i)
	if err != nil {
		return nil, err
	}
	return &Advertisement{
		EventType:   uint16(et),
		AddressType: at,
		Addr:        Address(addr),
		RSSI:        rssi,
		Data:        data,
	}, nil
}

// decodeExtendedReport builds an Advertisement from report i of a
// LEExtendedAdvertisingReport event.
func decodeExtendedReport(e evt.LEExtendedAdvertisingReport, i int) (*Advertisement, error) {
	et, err := e.EventTypeWErr(i)
	if err != nil {
		return nil, err
	}
	at, err := e.AddressTypeWErr(i)
	if err != nil {
		return nil, err
	}
	addr, err := e.AddressWErr(i)
	if err != nil {
		return nil, err
	}
	pphy, err := e.PrimaryPHYWErr(i)
	if err != nil {
		return nil, err
	}
	sphy, err := e.SecondaryPHYWErr(i)
	if err != nil {
		return nil, err
	}
	sid, err := e.AdvertisingSIDWErr(i)
	if err != nil {
		return nil, err
	}
	tx, err := e.TxPowerWErr(i)
	if err != nil {
		return nil, err
	}
	rssi, err := e.RSSIWErr(i)
	if err != nil {
		return nil, err
	}
	per, err := e.PeriodicAdvertisingIntervalWErr(i)
	if err != nil {
		return nil, err
	}
	dat, err := e.DirectAddressTypeWErr(i)
	if err != nil {
		return nil, err
	}
	daddr, err := e.DirectAddressWErr(i)
	if err != nil {
		return nil, err
	}
	data, err := e.DataWErr(i)
	if err != nil {
		return nil, err
	}
	return &Advertisement{
		EventType:                   et,
		AddressType:                 at,
		Addr:                        Address(addr),
		RSSI:                        rssi,
		Data:                        data,
		Extended:                    true,
		PrimaryPHY:                  pphy,
		SecondaryPHY:                sphy,
		AdvertisingSID:              sid,
		TxPower:                     tx,
		PeriodicAdvertisingInterval: per,
		DirectAddressType:           dat,
		DirectAddr:                  Address(daddr),
	}, nil
}

// fanOutLegacy decodes every report carried by a single LEAdvertisingReport
// event and invokes notify once per report, in order — an event carrying
// N reports yields N notifications, regardless of how many of those
// reports are scan responses stitched onto an earlier advertisement.
// SCAN_RSP reports that match an entry in hist have that entry's
// ScanResponse field populated as a side effect, but are still reported
// individually through notify so a subscriber sees every report the
// controller sent.
func fanOutLegacy(e evt.LEAdvertisingReport, hist *advHistory, notify func(*Advertisement)) error {
	nr, err := e.NumReportsWErr()
	if err != nil {
		return fmt.Errorf("advertising report: %w", err)
	}
	for i := 0; i < int(nr); i++ {
		a, err := decodeLegacyReport(e, i)
		if err != nil {
			return fmt.Errorf("advertising report %d: %w", i, err)
		}
		switch a.EventType {
		case EvtTypAdvInd, EvtTypAdvScanInd:
			hist.record(a)
		case EvtTypScanRsp:
			if prior := hist.match(a.Addr); prior != nil {
				prior.ScanResponse = a
			}
		}
		notify(a)
	}
	return nil
}

// fanOutExtended decodes every report carried by a single
// LEExtendedAdvertisingReport event and invokes notify once per report,
// in order. No address-based stitching is done for extended reports, and
// fragments the controller flags as incomplete in the EventType data-status
// bits are notified one by one as they arrive, not reassembled here.
func fanOutExtended(e evt.LEExtendedAdvertisingReport, notify func(*Advertisement)) error {
	nr, err := e.NumReportsWErr()
	if err != nil {
		return fmt.Errorf("extended advertising report: %w", err)
	}
	for i := 0; i < int(nr); i++ {
		a, err := decodeExtendedReport(e, i)
		if err != nil {
			return fmt.Errorf("extended advertising report %d: %w", i, err)
		}
		notify(a)
	}
	return nil
}
