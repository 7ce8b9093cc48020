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

package nvapi

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/flow"
	"github.com/zoomoid/nvipfix/internal/log"
)

// ConnStat is one connection as reported by the switch's management RPC. Times are
// milliseconds since the UNIX epoch, durations are nanoseconds. Zero values are absent.
type ConnStat struct {
	VlanId  uint16
	VxlanId uint32

	ClientSwitchPort uint32
	ServerSwitchPort uint32

	// ToS is the IP type-of-service byte, carrying the DSCP in its upper six bits
	ToS       uint8
	Protocol  uint8
	EtherType uint16
	// State is one of fin, rst, syn and est
	State string

	ClientMac  net.HardwareAddr
	ServerMac  net.HardwareAddr
	ClientIP   netip.Addr
	ServerIP   netip.Addr
	ClientPort uint16
	ServerPort uint16

	BytesSent     uint64
	BytesReceived uint64
	TotalBytes    uint64

	Started    int64
	Ended      int64
	DurationNs int64
	LatencyNs  int64
}

// ConnStatStreamer is implemented by RPC clients of the switch. It calls fn for every
// connection within [start, end] and stops at the first error fn returns.
type ConnStatStreamer interface {
	ConnStats(ctx context.Context, start, end datetime.Datetime, fn func(ConnStat) error) error
}

// StreamSource collects the connections of a ConnStatStreamer into flow records
type StreamSource struct {
	streamer ConnStatStreamer
}

var _ Source = &StreamSource{}

func NewStreamSource(streamer ConnStatStreamer) *StreamSource {
	return &StreamSource{streamer: streamer}
}

func (s *StreamSource) Records(ctx context.Context, start, end datetime.Datetime) (*flow.List, error) {
	var list *flow.List
	err := s.streamer.ConnStats(ctx, start, end, func(c ConnStat) error {
		list = flow.Append(list, Record(c))
		return nil
	})
	if err != nil {
		list.Free()
		return nil, err
	}
	log.FromContext(ctx, "component", "nvapi").V(1).Info("streamed connection statistics", "records", list.Len())
	return list, nil
}

// Record converts a connection to a flow record. The client is the flow's source.
func Record(c ConnStat) flow.Record {
	r := flow.Record{
		VlanId:                   c.VlanId,
		Protocol:                 flow.Protocol(c.Protocol),
		EthernetType:             flow.EthernetType(c.EtherType),
		IngressInterface:         c.ClientSwitchPort,
		EgressInterface:          c.ServerSwitchPort,
		DSCP:                     c.ToS >> 2,
		InitiatorOctets:          c.BytesSent,
		ResponderOctets:          c.BytesReceived,
		TransportOctetDeltaCount: c.TotalBytes,
		SourceMac:                mac(c.ClientMac),
		DestinationMac:           mac(c.ServerMac),
		SourceIP:                 ipv4(c.ClientIP),
		DestinationIP:            ipv4(c.ServerIP),
		SourcePort:               c.ClientPort,
		DestinationPort:          c.ServerPort,
	}
	if c.VxlanId != 0 {
		r.Layer2SegmentId = flow.Layer2SegmentId(flow.OverlayVxLAN, uint64(c.VxlanId))
	}
	if bits, ok := flow.ConnectionState(c.State); ok {
		r.TCPControlBits = bits
	}
	if c.Started > 0 {
		r.FlowStart = datetime.FromTime(time.UnixMilli(c.Started))
	}
	if c.Ended > 0 {
		r.FlowEnd = datetime.FromTime(time.UnixMilli(c.Ended))
	}
	if c.DurationNs > 0 {
		r.FlowDuration = datetime.TimespanFromDuration(time.Duration(c.DurationNs))
	}
	if c.LatencyNs > 0 {
		r.Latency = datetime.TimespanFromDuration(time.Duration(c.LatencyNs))
	}
	return r
}

func mac(hw net.HardwareAddr) flow.MacAddress {
	if len(hw) != 6 {
		return flow.MacAddress{}
	}
	m := flow.MacAddress{HasValue: true}
	copy(m.Octets[:], hw)
	return m
}

func ipv4(a netip.Addr) flow.IPv4Address {
	a = a.Unmap()
	if !a.Is4() {
		return flow.IPv4Address{}
	}
	b := a.As4()
	return flow.IPv4Address{
		Value:    uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]),
		HasValue: true,
	}
}
