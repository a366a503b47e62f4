package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpCodeConstruction(t *testing.T) {
	// opcode = ogf<<10 | ocf, per Vol 2, Part E, 5.4.1.
	c := &Reset{}
	require.Equal(t, 0x0C03, c.OpCode())
}

func TestResetRoundTrip(t *testing.T) {
	c := &Reset{}
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	require.Len(t, b, 0)

	rp := &ResetRP{}
	require.NoError(t, rp.Unmarshal([]byte{0x00}))
	require.Equal(t, uint8(0x00), rp.Status)
}

func TestLESetScanParametersMarshal(t *testing.T) {
	c := &LESetScanParameters{
		LEScanType:           0x01,
		LEScanInterval:       0x0010,
		LEScanWindow:         0x0008,
		OwnAddressType:       0x00,
		ScanningFilterPolicy: 0x00,
	}
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	want := []byte{0x01, 0x10, 0x00, 0x08, 0x00, 0x00, 0x00}
	require.Equal(t, want, b)
}

func TestLECreateConnectionMarshal(t *testing.T) {
	c := &LECreateConnection{
		LEScanInterval:        0x0040,
		LEScanWindow:          0x0040,
		InitiatorFilterPolicy: 0,
		PeerAddressType:       0,
		PeerAddress:           [6]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},
		OwnAddressType:        0,
		ConnIntervalMin:       0x0006,
		ConnIntervalMax:       0x0006,
		ConnLatency:           0,
		SupervisionTimeout:    0x0400,
		MinimumCELength:       0,
		MaximumCELength:       0,
	}
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	require.Len(t, b, 25)
	// PeerAddress sits at byte offset 6, carried byte-for-byte (wire order
	// is the caller's concern, not the codec's).
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, b[6:12])
}

func TestMarshalRejectsShortBuffer(t *testing.T) {
	c := &LESetScanParameters{}
	err := c.Marshal(make([]byte, 3))
	require.Error(t, err)
}

// TestHandleCarrierCommands verifies every command requiring per-connection
// completion matching exposes ConnHandle() returning its own
// ConnectionHandle field.
func TestHandleCarrierCommands(t *testing.T) {
	cases := []struct {
		name string
		cmd  HandleCarrier
		want uint16
	}{
		{"ReadTransmitPowerLevel", &ReadTransmitPowerLevel{ConnectionHandle: 0x0042}, 0x0042},
		{"LEReadChannelMap", &LEReadChannelMap{ConnectionHandle: 0x0007}, 0x0007},
		{"LESetDataLength", &LESetDataLength{ConnectionHandle: 0x00AB}, 0x00AB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.cmd.ConnHandle())
		})
	}
}

func TestReadTransmitPowerLevelRPUnmarshal(t *testing.T) {
	rp := &ReadTransmitPowerLevelRP{}
	// status, handle (LE), power level
	b := []byte{0x00, 0x42, 0x00, 0x04}
	require.NoError(t, rp.Unmarshal(b))
	require.Equal(t, uint16(0x0042), rp.ConnectionHandle)
	require.Equal(t, int8(4), rp.TransmitPowerLevel)
}

func TestLESetExtendedScanParametersSinglePHY(t *testing.T) {
	c := &LESetExtendedScanParameters{
		OwnAddressType:       0x00,
		ScanningFilterPolicy: 0x00,
		ScanningPHYs:         1 << scanningPhyBit1M,
		ScanType1M:           0x01,
		ScanInterval1M:       0x0010,
		ScanWindow1M:         0x0008,
	}
	require.Equal(t, 8, c.Len())
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	want := []byte{
		0x00, 0x00, 1 << scanningPhyBit1M,
		0x01,
		0x10, 0x00,
		0x08, 0x00,
	}
	require.Equal(t, want, b)
}

func TestLESetExtendedScanParametersBothPHYs(t *testing.T) {
	c := &LESetExtendedScanParameters{
		ScanningPHYs:      1<<scanningPhyBit1M | 1<<scanningPhyBitCoded,
		ScanType1M:        0x01,
		ScanTypeCoded:     0x00,
		ScanInterval1M:    0x0010,
		ScanIntervalCoded: 0x0020,
		ScanWindow1M:      0x0008,
		ScanWindowCoded:   0x0018,
	}
	require.Equal(t, 13, c.Len())
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	want := []byte{
		0x00, 0x00, 1<<scanningPhyBit1M | 1<<scanningPhyBitCoded,
		0x01, 0x00, // ScanTypes: 1M then Coded
		0x10, 0x00, 0x20, 0x00, // Intervals: 1M then Coded
		0x08, 0x00, 0x18, 0x00, // Windows: 1M then Coded
	}
	require.Equal(t, want, b)
}

func TestLESetExtendedAdvertisingDataFragmentBit(t *testing.T) {
	c := &LESetExtendedAdvertisingData{AdvertisingHandle: 0x01, Operation: 0x03, Fragment: false}
	b := make([]byte, c.Len())
	require.NoError(t, c.Marshal(b))
	require.Equal(t, uint8(0x01), b[2], "Fragment=false must invert to wire bit 1")

	c.Fragment = true
	require.NoError(t, c.Marshal(b))
	require.Equal(t, uint8(0x00), b[2], "Fragment=true must invert to wire bit 0")
}
