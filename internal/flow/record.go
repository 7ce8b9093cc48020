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

// Package flow defines the normalized flow record produced by the importers and consumed by
// the exporter, and the ordered list holding a batch of them.
package flow

import (
	"fmt"
	"net/netip"

	"github.com/zoomoid/nvipfix/internal/datetime"
)

type Protocol uint8

const (
	ProtocolICMP Protocol = 1
	ProtocolTCP  Protocol = 6
	ProtocolUDP  Protocol = 17
)

type EthernetType uint16

const (
	EthernetTypeIPv4 EthernetType = 0x0800
	EthernetTypeARP  EthernetType = 0x0806
	EthernetTypeIPv6 EthernetType = 0x86DD
)

// TCPControlBits is the bitset exported as tcpControlBits
type TCPControlBits uint8

const (
	TCPFlagFIN TCPControlBits = 0x01
	TCPFlagSYN TCPControlBits = 0x02
	TCPFlagRST TCPControlBits = 0x04
	TCPFlagACK TCPControlBits = 0x10
)

// ConnectionState maps the switch's connection states fin, rst, syn and est to the control
// bit describing them
func ConnectionState(s string) (TCPControlBits, bool) {
	switch s {
	case "fin":
		return TCPFlagFIN, true
	case "rst":
		return TCPFlagRST, true
	case "syn":
		return TCPFlagSYN, true
	case "est":
		return TCPFlagACK, true
	}
	return 0, false
}

// OverlayType is stored in the most significant byte of a layer 2 segment id
type OverlayType uint8

const (
	OverlayVxLAN OverlayType = 0x01

	overlayShift = 56
)

// Layer2SegmentId combines an overlay type and a segment id (e.g. a VNI) as defined for
// the layer2SegmentId information element
func Layer2SegmentId(t OverlayType, id uint64) uint64 {
	return uint64(t)<<overlayShift | id&(1<<overlayShift-1)
}

type MacAddress struct {
	Octets   [6]byte
	HasValue bool
}

func (m MacAddress) String() string {
	if !m.HasValue {
		return "<none>"
	}
	o := m.Octets
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", o[0], o[1], o[2], o[3], o[4], o[5])
}

// IPv4Address holds the address with its first octet in the most significant byte
type IPv4Address struct {
	Value    uint32
	HasValue bool
}

func (a IPv4Address) Addr() netip.Addr {
	if !a.HasValue {
		return netip.Addr{}
	}
	v := a.Value
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (a IPv4Address) String() string {
	if !a.HasValue {
		return "<none>"
	}
	return a.Addr().String()
}

// Record is one observed connection. It is a flat value without references, copying it
// copies everything.
type Record struct {
	VlanId           uint16
	Protocol         Protocol
	EthernetType     EthernetType
	TCPControlBits   TCPControlBits
	IngressInterface uint32
	EgressInterface  uint32

	FlowStart    datetime.Datetime
	FlowEnd      datetime.Datetime
	FlowDuration datetime.Timespan
	Latency      datetime.Timespan

	DSCP uint8

	InitiatorOctets          uint64
	ResponderOctets          uint64
	Layer2SegmentId          uint64
	TransportOctetDeltaCount uint64

	SourceMac      MacAddress
	DestinationMac MacAddress

	SourceIP        IPv4Address
	DestinationIP   IPv4Address
	SourcePort      uint16
	DestinationPort uint16
}
