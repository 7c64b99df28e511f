//go:build unix

package core

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func listenConfig(reusePort bool) *net.ListenConfig {
	lc := new(net.ListenConfig)
	if !reusePort {
		return lc
	}
	lc.Control = func(network, address string, rawConn syscall.RawConn) error {
		var sockErr error
		if err := rawConn.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
		}); err != nil {
			return err
		}
		return sockErr
	}
	return lc
}
