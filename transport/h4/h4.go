//go:build linux

// Package h4 implements the H4 UART transport: HCI packets framed onto a
// plain byte stream with a single-byte packet-type tag and no further
// wrapping, carried over a serial port.
package h4

import (
	"io"
	"sync"
	"time"

	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

// Config is the subset of serial.OpenOptions this client exposes; the
// rest (parity, RS-485 timing) are defaulted the way a BLE controller's
// UART expects.
type Config struct {
	PortName string
	BaudRate uint
}

// Port is a Transport over a UART running the H4 framing. Reads and
// writes pass straight through to the serial port — HCI packet framing
// is handled above this layer, not here, since the underlying stream is
// already byte-oriented.
type Port struct {
	sp io.ReadWriteCloser

	rmu, wmu sync.Mutex
	closeMu  sync.Mutex
	closed   bool
}

// Open dials the serial port and performs the dummy-Reset flush the
// controller's boot ROM needs to settle into H4 mode before any real
// command is sent.
func Open(cfg Config) (*Port, error) {
	opts := serial.OpenOptions{
		PortName:              cfg.PortName,
		BaudRate:              cfg.BaudRate,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}
	sp, err := serial.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "h4: open")
	}

	p := &Port{sp: sp}
	p.flush()
	return p, nil
}

// flush sends a no-op Reset and discards whatever comes back, clearing
// any partial frame left over from a previous, uncleanly-terminated
// session before the real bring-up sequence begins.
func (p *Port) flush() {
	p.sp.Write([]byte{0x01, 0x03, 0x0C, 0x00})
	time.Sleep(250 * time.Millisecond)
	b := make([]byte, 2048)
	p.sp.Read(b)
}

func (p *Port) Read(b []byte) (int, error) {
	p.rmu.Lock()
	defer p.rmu.Unlock()
	n, err := p.sp.Read(b)
	return n, errors.Wrap(err, "h4: read")
}

func (p *Port) Write(b []byte) (int, error) {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	n, err := p.sp.Write(b)
	return n, errors.Wrap(err, "h4: write")
}

func (p *Port) Close() error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return errors.Wrap(p.sp.Close(), "h4: close")
}
