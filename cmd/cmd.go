// Package cmd implements the wire codec for HCI commands: one type per
// command, each knowing its own opcode, encoded length, and the struct
// layout that binary.Write/Read serialize directly from field order.
//
//go:generate true
package cmd

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Command is a typed HCI command parameter set.
type Command interface {
	OpCode() int
	Len() int
	Marshal([]byte) error
}

// CommandRP is a typed HCI command return-parameter set.
type CommandRP interface {
	Unmarshal([]byte) error
}

// Sender issues a Command and blocks for its return parameters.
type Sender interface {
	Send(Command, CommandRP) error
}

// HandleCarrier is implemented by commands whose completion must be
// matched not just by opcode but by a connection handle embedded in
// their own return parameters (ReadTransmitPowerLevel, LEReadChannelMap,
// LESetDataLength), per the per-connection completion-matching rule.
type HandleCarrier interface {
	ConnHandle() uint16
}

// Send is a convenience wrapper around Sender.Send.
func Send(s Sender, c Command, r CommandRP) error {
	return s.Send(c, r)
}

// marshal writes c's fields, in declaration order, little-endian, into b.
// Every command struct must be composed only of fixed-size fields (uintN,
// intN, or fixed-size byte arrays) for this to apply.
func marshal(c Command, b []byte) error {
	buf := bytes.NewBuffer(b)
	buf.Reset()
	if buf.Cap() < c.Len() {
		return io.ErrShortBuffer
	}
	return binary.Write(buf, binary.LittleEndian, c)
}

// unmarshal reads b into c's fields, in declaration order, little-endian.
func unmarshal(c CommandRP, b []byte) error {
	buf := bytes.NewBuffer(b)
	return binary.Read(buf, binary.LittleEndian, c)
}
