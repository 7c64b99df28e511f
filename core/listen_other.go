//go:build !unix

package core

import "net"

// SO_REUSEPORT has no portable equivalent here; the flag is ignored.
func listenConfig(bool) *net.ListenConfig {
	return new(net.ListenConfig)
}
