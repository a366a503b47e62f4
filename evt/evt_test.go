package evt

import (
	"testing"
)

func TestCommandCompleteAccessors(t *testing.T) {
	e := CommandComplete([]byte{1, 0x03, 0x0C, 0x00, 0xAA, 0xBB})
	if got := e.NumHCICommandPackets(); got != 1 {
		t.Fatalf("NumHCICommandPackets() = %d, want 1", got)
	}
	if got := e.CommandOpcode(); got != 0x0C03 {
		t.Fatalf("CommandOpcode() = 0x%04X, want 0x0C03", got)
	}
	want := []byte{0x00, 0xAA, 0xBB}
	if string(e.ReturnParameters()) != string(want) {
		t.Fatalf("ReturnParameters() = % X, want % X", e.ReturnParameters(), want)
	}
}

func TestCommandCompleteWErrBoundsChecking(t *testing.T) {
	// Too short to carry even NumHCICommandPackets.
	e := CommandComplete([]byte{})
	if _, err := e.NumHCICommandPacketsWErr(); err == nil {
		t.Fatal("expected a bounds error on an empty payload")
	}
	// Long enough for the header, too short for ReturnParameters; getBytes
	// with count -1 still requires at least one byte at the start index.
	e = CommandComplete([]byte{1, 0x03, 0x0C})
	if _, err := e.ReturnParametersWErr(); err == nil {
		t.Fatal("expected a bounds error when return parameters are absent")
	}
}

func TestCommandStatusAccessors(t *testing.T) {
	e := CommandStatus([]byte{0x0C, 1, 0x0D, 0x0C})
	if got := e.Status(); got != 0x0C {
		t.Fatalf("Status() = 0x%02X, want 0x0C", got)
	}
	if got := e.CommandOpcode(); got != 0x0C0D {
		t.Fatalf("CommandOpcode() = 0x%04X, want 0x0C0D", got)
	}
}

func TestDisconnectionCompleteAccessors(t *testing.T) {
	e := DisconnectionComplete([]byte{0x00, 0x42, 0x00, 0x13})
	if got := e.ConnectionHandle(); got != 0x0042 {
		t.Fatalf("ConnectionHandle() = 0x%04X, want 0x0042", got)
	}
	if got := e.Reason(); got != 0x13 {
		t.Fatalf("Reason() = 0x%02X, want 0x13", got)
	}
}

// TestLEAdvertisingReportMultiReport decodes a two-report event and checks
// that the columnar layout (all EventTypes, then all AddressTypes, ...)
// is walked correctly for both reports, including the variable-length
// Data/RSSI section that follows LengthData.
func TestLEAdvertisingReportMultiReport(t *testing.T) {
	e := LEAdvertisingReport([]byte{
		0x02,             // subevent code
		2,                // NumReports
		0x00, 0x04,       // EventType(0)=AdvInd, EventType(1)=ScanRsp
		0x00, 0x00,       // AddressType(0), AddressType(1)
		1, 2, 3, 4, 5, 6, // Address(0)
		1, 2, 3, 4, 5, 6, // Address(1) -- same address, so report 1 stitches onto report 0
		2, 1, // LengthData(0)=2, LengthData(1)=1
		0xAA, 0xBB, // Data(0)
		0xCC, // Data(1)
		100, 101, // RSSI(0), RSSI(1) -- stored as two's complement bytes
	})

	nr := e.NumReports()
	if nr != 2 {
		t.Fatalf("NumReports() = %d, want 2", nr)
	}
	if et := e.EventType(0); et != 0x00 {
		t.Fatalf("EventType(0) = 0x%02X, want 0x00", et)
	}
	if et := e.EventType(1); et != 0x04 {
		t.Fatalf("EventType(1) = 0x%02X, want 0x04", et)
	}
	if data := e.Data(0); string(data) != string([]byte{0xAA, 0xBB}) {
		t.Fatalf("Data(0) = % X, want AA BB", data)
	}
	if data := e.Data(1); string(data) != string([]byte{0xCC}) {
		t.Fatalf("Data(1) = % X, want CC", data)
	}
	if addr0, addr1 := e.Address(0), e.Address(1); addr0 != addr1 {
		t.Fatalf("Address(0)=%v Address(1)=%v, want equal", addr0, addr1)
	}
}

func TestLEAdvertisingReportTruncatedPayloadErrors(t *testing.T) {
	// NumReports claims 2 but the payload only has room for one.
	e := LEAdvertisingReport([]byte{0x02, 2, 0x00, 0x00, 0x00})
	if _, err := e.AddressWErr(1); err == nil {
		t.Fatal("expected a bounds error reading a report past the payload's end")
	}
}

// TestLEExtendedAdvertisingReportVariableLength checks recordOffsetWErr's
// walk over two reports whose fixed-record lengths differ only in the
// DataLength byte that sits at the end of each record.
func TestLEExtendedAdvertisingReportVariableLength(t *testing.T) {
	rec := func(dataLen uint8, data []byte) []byte {
		b := make([]byte, extAdvFixedRecordLen)
		b[extAdvFixedRecordLen-1] = dataLen
		return append(b, data...)
	}
	payload := []byte{0x0D, 2}
	payload = append(payload, rec(2, []byte{0x01, 0x02})...)
	payload = append(payload, rec(0, nil)...)

	e := LEExtendedAdvertisingReport(payload)
	if nr := e.NumReports(); nr != 2 {
		t.Fatalf("NumReports() = %d, want 2", nr)
	}
	if data := e.Data(0); string(data) != string([]byte{0x01, 0x02}) {
		t.Fatalf("Data(0) = % X, want 01 02", data)
	}
	if dl := e.DataLength(1); dl != 0 {
		t.Fatalf("DataLength(1) = %d, want 0", dl)
	}
}

func TestNumberOfCompletedPacketsAccessors(t *testing.T) {
	e := NumberOfCompletedPackets([]byte{
		2,          // NumberOfHandles
		0x10, 0x00, // ConnectionHandle(0)
		0x03, 0x00, // HCNumOfCompletedPackets(0)
		0x20, 0x00, // ConnectionHandle(1)
		0x01, 0x00, // HCNumOfCompletedPackets(1)
	})
	if n := e.NumberOfHandles(); n != 2 {
		t.Fatalf("NumberOfHandles() = %d, want 2", n)
	}
	if h := e.ConnectionHandle(1); h != 0x0020 {
		t.Fatalf("ConnectionHandle(1) = 0x%04X, want 0x0020", h)
	}
	if c := e.HCNumOfCompletedPackets(0); c != 3 {
		t.Fatalf("HCNumOfCompletedPackets(0) = %d, want 3", c)
	}
}
