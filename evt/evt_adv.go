package evt

import "fmt"

// LEAdvertisingReport implements LE Advertising Report (0x3E:0x02)
// [Vol 2, Part E, 7.7.65.2]. The wire layout packs NumReports copies of
// each field contiguously rather than NumReports copies of the whole
// record — EventType(0), EventType(1), ..., AddressType(0), ... — so
// every accessor recomputes its own start index from NumReports and,
// for Data/RSSI, from the variable-length data that precedes it.
type LEAdvertisingReport []byte

func (r LEAdvertisingReport) SubeventCodeWErr() (uint8, error) { return getByte(r, 0, 0xff) }
func (r LEAdvertisingReport) NumReportsWErr() (uint8, error)   { return getByte(r, 1, 0) }

func (r LEAdvertisingReport) EventTypeWErr(i int) (uint8, error) {
	return getByte(r, 2+i, 0xff)
}

func (r LEAdvertisingReport) AddressTypeWErr(i int) (uint8, error) {
	nr, err := r.NumReportsWErr()
	if err != nil {
		return 0, err
	}
	return getByte(r, 2+int(nr)+i, 0xff)
}

func (r LEAdvertisingReport) AddressWErr(i int) ([6]byte, error) {
	nr, err := r.NumReportsWErr()
	var out [6]byte
	if err != nil {
		return out, err
	}
	bb, err := getBytes(r, 2+int(nr)*2+6*i, 6)
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}

func (r LEAdvertisingReport) LengthDataWErr(i int) (uint8, error) {
	nr, err := r.NumReportsWErr()
	if err != nil {
		return 0, err
	}
	return getByte(r, 2+int(nr)*8+i, 0)
}

func (r LEAdvertisingReport) DataWErr(i int) ([]byte, error) {
	nr, err := r.NumReportsWErr()
	if err != nil {
		return nil, err
	}
	l := 0
	for j := 0; j < i; j++ {
		ll, err := r.LengthDataWErr(j)
		if err != nil {
			return nil, err
		}
		l += int(ll)
	}
	ll, err := r.LengthDataWErr(i)
	if err != nil {
		return nil, err
	}
	return getBytes(r, 2+int(nr)*9+l, int(ll))
}

func (r LEAdvertisingReport) RSSIWErr(i int) (int8, error) {
	nr, err := r.NumReportsWErr()
	if err != nil {
		return 0, err
	}
	l := 0
	for j := 0; j < int(nr); j++ {
		ll, err := r.LengthDataWErr(j)
		if err != nil {
			return 0, err
		}
		l += int(ll)
	}
	v, err := getByte(r, 2+int(nr)*9+l+i, 0)
	return int8(v), err
}

func (r LEAdvertisingReport) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEAdvertisingReport) NumReports() uint8   { v, _ := r.NumReportsWErr(); return v }
func (r LEAdvertisingReport) EventType(i int) uint8 { v, _ := r.EventTypeWErr(i); return v }
func (r LEAdvertisingReport) AddressType(i int) uint8 {
	v, _ := r.AddressTypeWErr(i)
	return v
}
func (r LEAdvertisingReport) Address(i int) [6]byte { v, _ := r.AddressWErr(i); return v }
func (r LEAdvertisingReport) LengthData(i int) uint8 { v, _ := r.LengthDataWErr(i); return v }
func (r LEAdvertisingReport) Data(i int) []byte      { v, _ := r.DataWErr(i); return v }
func (r LEAdvertisingReport) RSSI(i int) int8        { v, _ := r.RSSIWErr(i); return v }

// LEExtendedAdvertisingReport implements LE Extended Advertising Report
// (0x3E:0x0D) [Vol 2, Part E, 7.7.65.13]. Unlike the legacy report, each
// report's fields are grouped together (not columnar); every record is a
// fixed 24-byte portion followed by DataLength bytes of data, so each
// record is walked sequentially to find report i's offset.
type LEExtendedAdvertisingReport []byte

const extAdvFixedRecordLen = 24 // up to and including DataLength, before Data

func (r LEExtendedAdvertisingReport) SubeventCodeWErr() (uint8, error) { return getByte(r, 0, 0xff) }
func (r LEExtendedAdvertisingReport) NumReportsWErr() (uint8, error)   { return getByte(r, 1, 0) }

// recordOffsetWErr returns the byte offset of report i's fixed header.
func (r LEExtendedAdvertisingReport) recordOffsetWErr(i int) (int, error) {
	off := 2
	for j := 0; j < i; j++ {
		dl, err := getByte(r, off+23, 0)
		if err != nil {
			return 0, err
		}
		off += extAdvFixedRecordLen + int(dl)
	}
	if off >= len(r) {
		return 0, fmt.Errorf("evt: index error at %d (len %d)", off, len(r))
	}
	return off, nil
}

func (r LEExtendedAdvertisingReport) EventTypeWErr(i int) (uint16, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getUint16LE(r, off+0, 0)
}
func (r LEExtendedAdvertisingReport) AddressTypeWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+2, 0xff)
}
func (r LEExtendedAdvertisingReport) AddressWErr(i int) ([6]byte, error) {
	var out [6]byte
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return out, err
	}
	bb, err := getBytes(r, off+3, 6)
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEExtendedAdvertisingReport) PrimaryPHYWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+9, 0)
}
func (r LEExtendedAdvertisingReport) SecondaryPHYWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+10, 0)
}
func (r LEExtendedAdvertisingReport) AdvertisingSIDWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+11, 0)
}
func (r LEExtendedAdvertisingReport) TxPowerWErr(i int) (int8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	v, err := getByte(r, off+12, 0)
	return int8(v), err
}
func (r LEExtendedAdvertisingReport) RSSIWErr(i int) (int8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	v, err := getByte(r, off+13, 0)
	return int8(v), err
}
func (r LEExtendedAdvertisingReport) PeriodicAdvertisingIntervalWErr(i int) (uint16, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getUint16LE(r, off+14, 0)
}
func (r LEExtendedAdvertisingReport) DirectAddressTypeWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+16, 0)
}
func (r LEExtendedAdvertisingReport) DirectAddressWErr(i int) ([6]byte, error) {
	var out [6]byte
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return out, err
	}
	bb, err := getBytes(r, off+17, 6)
	if err != nil {
		return out, err
	}
	copy(out[:], bb)
	return out, nil
}
func (r LEExtendedAdvertisingReport) DataLengthWErr(i int) (uint8, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return 0, err
	}
	return getByte(r, off+23, 0)
}
func (r LEExtendedAdvertisingReport) DataWErr(i int) ([]byte, error) {
	off, err := r.recordOffsetWErr(i)
	if err != nil {
		return nil, err
	}
	dl, err := getByte(r, off+23, 0)
	if err != nil {
		return nil, err
	}
	return getBytes(r, off+24, int(dl))
}

func (r LEExtendedAdvertisingReport) SubeventCode() uint8 { v, _ := r.SubeventCodeWErr(); return v }
func (r LEExtendedAdvertisingReport) NumReports() uint8   { v, _ := r.NumReportsWErr(); return v }
func (r LEExtendedAdvertisingReport) EventType(i int) uint16 { v, _ := r.EventTypeWErr(i); return v }
func (r LEExtendedAdvertisingReport) AddressType(i int) uint8 {
	v, _ := r.AddressTypeWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) Address(i int) [6]byte { v, _ := r.AddressWErr(i); return v }
func (r LEExtendedAdvertisingReport) PrimaryPHY(i int) uint8 { v, _ := r.PrimaryPHYWErr(i); return v }
func (r LEExtendedAdvertisingReport) SecondaryPHY(i int) uint8 {
	v, _ := r.SecondaryPHYWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) AdvertisingSID(i int) uint8 {
	v, _ := r.AdvertisingSIDWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) TxPower(i int) int8 { v, _ := r.TxPowerWErr(i); return v }
func (r LEExtendedAdvertisingReport) RSSI(i int) int8    { v, _ := r.RSSIWErr(i); return v }
func (r LEExtendedAdvertisingReport) PeriodicAdvertisingInterval(i int) uint16 {
	v, _ := r.PeriodicAdvertisingIntervalWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) DirectAddressType(i int) uint8 {
	v, _ := r.DirectAddressTypeWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) DirectAddress(i int) [6]byte {
	v, _ := r.DirectAddressWErr(i)
	return v
}
func (r LEExtendedAdvertisingReport) DataLength(i int) uint8 { v, _ := r.DataLengthWErr(i); return v }
func (r LEExtendedAdvertisingReport) Data(i int) []byte      { v, _ := r.DataWErr(i); return v }
