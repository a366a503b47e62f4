// Package smp provides the cryptographic primitives a pairing/key-agreement
// implementation built on top of this client would need — P-256 ECDH key
// exchange and AES-CMAC — without implementing the SMP state machine or
// interpreting SMP PDU contents itself. Pairing semantics and bond storage
// are explicitly out of this client's scope: inbound ACL payloads, SMP PDUs
// among them, are forwarded opaquely by the Host (see the root package's
// OptSMPForwarder), and
// whatever sits above it is expected to drive these primitives directly.
package smp

import (
	"crypto"
	"crypto/aes"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/aead/cmac"
	"github.com/wsddn/go-ecdh"
)

// KeyPair is one side of a P-256 ECDH exchange, as used by LE Secure
// Connections pairing [Vol 3, Part H, 2.3.5.6].
type KeyPair struct {
	Public  crypto.PublicKey
	Private crypto.PrivateKey
}

func curve() ecdh.ECDH { return ecdh.NewEllipticECDH(elliptic.P256()) }

// GenerateKeyPair produces a fresh P-256 key pair for one side of a
// pairing exchange.
func GenerateKeyPair() (*KeyPair, error) {
	e := curve()
	priv, pub, err := e.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: pub, Private: priv}, nil
}

// MarshalPublicKeyXY renders a public key as the 64-byte X||Y pair the
// SMP Pairing Public Key PDU carries, least-significant-octet-first per
// the Core spec's convention for this PDU (the opposite of this curve's
// native big-endian SEC1 encoding).
func MarshalPublicKeyXY(pub crypto.PublicKey) []byte {
	e := curve()
	raw := e.Marshal(pub)[1:] // drop the uncompressed-point prefix
	x := swapBuf(raw[:32])
	y := swapBuf(raw[32:])
	return append(x, y...)
}

// UnmarshalPublicKeyXY parses a peer's Pairing Public Key PDU payload
// (64 bytes, X||Y, least-significant-octet-first) into a usable key.
func UnmarshalPublicKeyXY(b []byte) (crypto.PublicKey, bool) {
	if len(b) < 64 {
		return nil, false
	}
	x := swapBuf(b[:32])
	y := swapBuf(b[32:64])
	raw := append([]byte{0x04}, append(x, y...)...)
	return curve().Unmarshal(raw)
}

// SharedSecret runs ECDH between priv and the peer's public key, returning
// the DHKey in the least-significant-octet-first order the Core spec's key
// derivation functions (f5, f6) expect.
func SharedSecret(priv crypto.PrivateKey, peer crypto.PublicKey) ([]byte, error) {
	secret, err := curve().GenerateSharedSecret(priv, peer)
	if err != nil {
		return nil, err
	}
	return swapBuf(secret), nil
}

// AESCMAC computes AES-CMAC(key, msg) per the byte order SMP's key
// derivation functions use: both key and message are byte-swapped before
// the MAC and the result is swapped back, since the Core spec defines
// these functions over most-significant-octet-first operands while this
// implementation's inputs arrive least-significant-octet-first.
func AESCMAC(key, msg []byte) ([]byte, error) {
	block, err := aes.NewCipher(swapBuf(key))
	if err != nil {
		return nil, err
	}
	mac, err := cmac.New(block)
	if err != nil {
		return nil, err
	}
	mac.Write(swapBuf(msg))
	return swapBuf(mac.Sum(nil)), nil
}

// swapBuf reverses b, returning a new slice.
func swapBuf(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
