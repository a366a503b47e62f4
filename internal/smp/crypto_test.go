package smp

import (
	"bytes"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if kp.Public == nil || kp.Private == nil {
		t.Fatal("GenerateKeyPair produced a nil key half")
	}
}

func TestPublicKeyXYRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %s", err)
	}
	xy := MarshalPublicKeyXY(kp.Public)
	if len(xy) != 64 {
		t.Fatalf("MarshalPublicKeyXY produced %d bytes, want 64", len(xy))
	}
	pub, ok := UnmarshalPublicKeyXY(xy)
	if !ok {
		t.Fatal("UnmarshalPublicKeyXY rejected a key this package just marshalled")
	}
	if !bytes.Equal(MarshalPublicKeyXY(pub), xy) {
		t.Fatal("round-tripped key marshals differently than the original")
	}
}

func TestUnmarshalPublicKeyXYRejectsShortInput(t *testing.T) {
	if _, ok := UnmarshalPublicKeyXY(make([]byte, 63)); ok {
		t.Fatal("expected UnmarshalPublicKeyXY to reject a 63-byte input")
	}
}

// TestSharedSecretSymmetry is the ECDH correctness property the two sides
// of a pairing exchange rely on: each side computes the same DHKey from
// its own private key and the other's public key.
func TestSharedSecretSymmetry(t *testing.T) {
	a, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair(a): %s", err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair(b): %s", err)
	}

	secretA, err := SharedSecret(a.Private, b.Public)
	if err != nil {
		t.Fatalf("SharedSecret(a, b): %s", err)
	}
	secretB, err := SharedSecret(b.Private, a.Public)
	if err != nil {
		t.Fatalf("SharedSecret(b, a): %s", err)
	}
	if !bytes.Equal(secretA, secretB) {
		t.Fatalf("shared secrets disagree: %x vs %x", secretA, secretB)
	}
}

func TestAESCMACDeterministic(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 16)
	msg := []byte("pairing confirm value")

	m1, err := AESCMAC(key, msg)
	if err != nil {
		t.Fatalf("AESCMAC: %s", err)
	}
	m2, err := AESCMAC(key, msg)
	if err != nil {
		t.Fatalf("AESCMAC: %s", err)
	}
	if !bytes.Equal(m1, m2) {
		t.Fatal("AESCMAC is not deterministic for the same key and message")
	}
	if len(m1) != 16 {
		t.Fatalf("AESCMAC produced %d bytes, want 16", len(m1))
	}

	m3, err := AESCMAC(key, append([]byte(nil), msg...))
	if err != nil {
		t.Fatalf("AESCMAC: %s", err)
	}
	if !bytes.Equal(m1, m3) {
		t.Fatal("AESCMAC(key, msg) changed across calls with an equal-but-distinct msg slice")
	}

	other, err := AESCMAC(key, []byte("a different message entirely"))
	if err != nil {
		t.Fatalf("AESCMAC: %s", err)
	}
	if bytes.Equal(m1, other) {
		t.Fatal("AESCMAC produced the same MAC for two different messages")
	}
}

func TestSwapBufRoundTrip(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	swapped := swapBuf(b)
	if bytes.Equal(b, swapped) {
		t.Fatal("swapBuf did not change a non-palindromic input")
	}
	if !bytes.Equal(swapBuf(swapped), b) {
		t.Fatal("swapBuf is not its own inverse")
	}
}
