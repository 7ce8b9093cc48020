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

package config

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// DefaultPort is the IANA-assigned IPFIX port
const DefaultPort = "4739"

type Transport int

const (
	TransportUndefined Transport = iota
	TransportUDP
	TransportTCP
	TransportSCTP
)

func (t Transport) String() string {
	switch t {
	case TransportUDP:
		return "udp"
	case TransportTCP:
		return "tcp"
	case TransportSCTP:
		return "sctp"
	default:
		return "undefined"
	}
}

// ParseTransport accepts udp, tcp, and sctp, case-insensitively
func ParseTransport(s string) (Transport, error) {
	switch strings.ToLower(s) {
	case "udp":
		return TransportUDP, nil
	case "tcp":
		return TransportTCP, nil
	case "sctp":
		return TransportSCTP, nil
	default:
		return TransportUndefined, fmt.Errorf("%w %q", ErrInvalidTransport, s)
	}
}

// Collector is a configured export target
type Collector struct {
	Name      string
	IPAddress netip.Addr
	Hostname  string
	Port      string
	Transport Transport
	DSCP      uint8
}

// Key identifies the collector as {<address>}:{<port>}, preferring the IP address over the
// hostname
func (c Collector) Key() string {
	host := c.Hostname
	if c.IPAddress.IsValid() {
		host = c.IPAddress.String()
	}
	return fmt.Sprintf("{%s}:{%s}", host, c.port())
}

// Address returns the host:port to connect to, preferring the hostname over the IP address
func (c Collector) Address() string {
	host := c.Hostname
	if host == "" && c.IPAddress.IsValid() {
		host = c.IPAddress.String()
	}
	return net.JoinHostPort(host, c.port())
}

// Network returns the transport, with undefined transports defaulting to UDP
func (c Collector) Network() Transport {
	if c.Transport == TransportUndefined {
		return TransportUDP
	}
	return c.Transport
}

func (c Collector) port() string {
	if c.Port == "" {
		return DefaultPort
	}
	return c.Port
}

func (c Collector) String() string {
	return fmt.Sprintf("%s(%s://%s)", c.Name, c.Network(), c.Address())
}

// SwitchInfo identifies the switch and its management API. Empty fields are unset.
type SwitchInfo struct {
	Name     string
	Host     string
	Login    string
	Password string
}
