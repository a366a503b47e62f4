//go:build !linux

package h4

import "fmt"

// Config mirrors the linux build's Config so callers can compile
// platform-independent code that only fails at Open time.
type Config struct {
	PortName string
	BaudRate uint
}

// Port is a stand-in for the linux build's Port; every method fails,
// since no portable serial implementation backs it on this platform.
type Port struct{}

// Open always fails on non-linux platforms; the H4 UART transport needs
// the linux-specific serial backend.
func Open(cfg Config) (*Port, error) {
	return nil, fmt.Errorf("h4: serial transport only available on linux")
}

func (p *Port) Read(b []byte) (int, error)  { return 0, fmt.Errorf("h4: not available") }
func (p *Port) Write(b []byte) (int, error) { return 0, fmt.Errorf("h4: not available") }
func (p *Port) Close() error                { return fmt.Errorf("h4: not available") }
