//go:build linux

// Package socket implements the Linux HCI user-channel transport: a raw
// AF_BLUETOOTH socket bound exclusively to one controller, bypassing the
// kernel's Bluetooth stack entirely so this client owns the HCI link.
package socket

import (
	"io"
	"sync"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	ioctlArgSize  = 4
	maxDevices    = 16
	hciIoctlType  = 72 // ASCII 'H', the HCI ioctl magic number
	pollTimeoutMs = 1000

	pollErrorMask = int16(unix.POLLHUP | unix.POLLNVAL | unix.POLLERR)
	pollReadable  = int16(unix.POLLIN)
)

func ioctlRead(typ, nr, size uintptr) uintptr  { return (2 << 30) | (typ << 8) | nr | (size << 16) }
func ioctlWrite(typ, nr, size uintptr) uintptr { return (1 << 30) | (typ << 8) | nr | (size << 16) }

var (
	ioctlDevDown    = ioctlWrite(hciIoctlType, 202, ioctlArgSize) // HCIDEVDOWN
	ioctlDevListGet = ioctlRead(hciIoctlType, 210, ioctlArgSize)  // HCIGETDEVLIST
)

func ioctl(fd int, op, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), op, arg); errno != 0 {
		return errno
	}
	return nil
}

type devListRequest struct {
	count    uint16
	requests [maxDevices]struct {
		devID uint16
		opts  uint32
	}
}

// Socket is a HCI user-channel Transport.
type Socket struct {
	fd int

	rmu, wmu sync.Mutex
	closeMu  sync.Mutex
	closed   chan struct{}
}

// Open binds exclusively to controller devID, or to the first controller
// that will accept the bind if devID is -1. The device must be down at
// bind time — HCI user channel mode requires it, so Open brings it down
// itself before binding.
func Open(devID int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return nil, errors.Wrap(err, "socket: create")
	}

	if devID >= 0 {
		deadline := time.Now().Add(60 * time.Second)
		for {
			s, err := bind(fd, devID)
			if err == nil {
				return s, nil
			}
			if time.Now().After(deadline) {
				unix.Close(fd)
				return nil, err
			}
			time.Sleep(time.Second)
		}
	}

	req := devListRequest{count: maxDevices}
	if err := ioctl(fd, ioctlDevListGet, uintptr(unsafe.Pointer(&req))); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "socket: list devices")
	}

	var lastErr error
	for i := 0; i < int(req.count); i++ {
		s, err := bind(fd, i)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	unix.Close(fd)
	if lastErr == nil {
		lastErr = errors.New("no controllers present")
	}
	return nil, errors.Wrap(lastErr, "socket: no usable device")
}

func bind(fd, devID int) (*Socket, error) {
	if err := ioctl(fd, ioctlDevDown, uintptr(devID)); err != nil {
		return nil, errors.Wrap(err, "socket: down device")
	}

	sa := unix.SockaddrHCI{Dev: uint16(devID), Channel: unix.HCI_CHANNEL_USER}
	if err := unix.Bind(fd, &sa); err != nil {
		return nil, errors.Wrap(err, "socket: bind user channel")
	}

	// The controller may emit a boot-time event before the bind
	// completes; drain it so it isn't mistaken for a reply to the first
	// real command.
	pfds := []unix.PollFd{{Fd: int32(fd), Events: pollReadable}}
	unix.Poll(pfds, 20)
	if pfds[0].Revents&pollReadable != 0 {
		discard := make([]byte, 2048)
		unix.Read(fd, discard)
	}

	return &Socket{fd: fd, closed: make(chan struct{})}, nil
}

func (s *Socket) Read(p []byte) (int, error) {
	if s.isClosed() {
		return 0, io.EOF
	}

	s.rmu.Lock()
	defer s.rmu.Unlock()

	pfds := []unix.PollFd{{Fd: int32(s.fd), Events: pollReadable}}
	unix.Poll(pfds, pollTimeoutMs)
	evts := pfds[0].Revents

	switch {
	case evts&pollErrorMask != 0:
		return 0, io.EOF
	case evts&pollReadable != 0:
		n, err := unix.Read(s.fd, p)
		if s.isClosed() {
			return 0, io.EOF
		}
		return n, errors.Wrap(err, "socket: read")
	default:
		return 0, nil
	}
}

func (s *Socket) Write(p []byte) (int, error) {
	if s.isClosed() {
		return 0, io.EOF
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := unix.Write(s.fd, p)
	return n, errors.Wrap(err, "socket: write")
}

func (s *Socket) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	select {
	case <-s.closed:
		return nil
	default:
	}
	close(s.closed)
	s.rmu.Lock()
	err := unix.Close(s.fd)
	s.rmu.Unlock()
	return errors.Wrap(err, "socket: close")
}

func (s *Socket) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}
