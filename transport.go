package hci

import "io"

// Transport is the full-duplex byte stream abstraction of §6: any object
// with Write and Close (a UART port, a raw HCI socket, an in-memory pipe
// in tests) can be handed to a Host, and inbound bytes reach the Host
// only if it also implements transportReader. Two concrete
// implementations ship alongside this package: transport/h4 (UART) and
// transport/socket (Linux raw HCI user-channel).
type Transport interface {
	io.Writer
	io.Closer
}

// transportReader is implemented by a Transport that delivers inbound
// bytes by being read from; the Host's read loop drives it with repeated
// Read calls on its own goroutine. There is no callback path: a Transport
// without Read delivers no events to the Host.
type transportReader interface {
	io.Reader
}
