/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package exporter

import (
	"context"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/ipfix"
	"golang.org/x/sys/unix"
)

// DialTimeout bounds connection establishment to a collector
const DialTimeout = 5 * time.Second

// DialFunc connects to a collector
type DialFunc func(ctx context.Context, c config.Collector) (net.Conn, error)

// Dial connects to c over its transport, marking outgoing packets with the collector's
// DSCP
func Dial(ctx context.Context, c config.Collector) (net.Conn, error) {
	network, err := network(c)
	if err != nil {
		return nil, err
	}
	d := net.Dialer{
		Timeout: DialTimeout,
		Control: dscpControl(c.DSCP),
	}
	return d.DialContext(ctx, network, c.Address())
}

func network(c config.Collector) (string, error) {
	switch c.Network() {
	case config.TransportUDP:
		return "udp", nil
	case config.TransportTCP:
		return "tcp", nil
	default:
		return "", fmt.Errorf("%w %s", ErrUnsupportedTransport, c.Network())
	}
}

// maxMessageSize returns the message size limit of the collector's transport
func maxMessageSize(c config.Collector) int {
	if c.Network() == config.TransportTCP {
		return ipfix.MaxMessageSize
	}
	return ipfix.DefaultMaxMessageSize
}

// dscpControl sets the traffic class of the socket to dscp. A DSCP of 0 leaves the socket
// untouched.
func dscpControl(dscp uint8) func(network, address string, c syscall.RawConn) error {
	return func(network, _ string, c syscall.RawConn) error {
		if dscp == 0 {
			return nil
		}
		tos := int(dscp) << 2
		var err error
		controlErr := c.Control(func(fd uintptr) {
			if strings.HasSuffix(network, "6") {
				err = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_TCLASS, tos)
				return
			}
			err = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TOS, tos)
		})
		if controlErr != nil {
			return controlErr
		}
		return err
	}
}
