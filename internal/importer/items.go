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

package importer

import (
	"fmt"

	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/dispatch"
	"github.com/zoomoid/nvipfix/internal/flow"
)

var items = dispatch.NewTable(
	dispatch.Entry[flow.Record]{Name: "vlan",
		Parse: dispatch.Uint16(func(r *flow.Record) *uint16 { return &r.VlanId })},
	dispatch.Entry[flow.Record]{Name: "src-switch-port",
		Parse: dispatch.Uint32(func(r *flow.Record) *uint32 { return &r.IngressInterface })},
	dispatch.Entry[flow.Record]{Name: "dst-switch-port",
		Parse: dispatch.Uint32(func(r *flow.Record) *uint32 { return &r.EgressInterface })},
	dispatch.Entry[flow.Record]{Name: "dscp",
		Parse: dispatch.Uint8(func(r *flow.Record) *uint8 { return &r.DSCP })},
	dispatch.Entry[flow.Record]{Name: "src-port",
		Parse: dispatch.Uint16(func(r *flow.Record) *uint16 { return &r.SourcePort })},
	dispatch.Entry[flow.Record]{Name: "dst-port",
		Parse: dispatch.Uint16(func(r *flow.Record) *uint16 { return &r.DestinationPort })},
	// byte counters are seen from the switch: ibytes were received from the responder
	dispatch.Entry[flow.Record]{Name: "ibytes",
		Parse: dispatch.Uint64(func(r *flow.Record) *uint64 { return &r.ResponderOctets })},
	dispatch.Entry[flow.Record]{Name: "obytes",
		Parse: dispatch.Uint64(func(r *flow.Record) *uint64 { return &r.InitiatorOctets })},
	dispatch.Entry[flow.Record]{Name: "total-bytes",
		Parse: dispatch.Uint64(func(r *flow.Record) *uint64 { return &r.TransportOctetDeltaCount })},
	dispatch.Entry[flow.Record]{Name: "vxlan", Parse: parseVxLAN},
	dispatch.Entry[flow.Record]{Name: "cur-state", Parse: parseConnectionState},
	dispatch.Entry[flow.Record]{Name: "proto", Parse: parseProtocol},
	dispatch.Entry[flow.Record]{Name: "ether-type", Parse: parseEthernetType},
	dispatch.Entry[flow.Record]{Name: "src-mac",
		Parse: mac(func(r *flow.Record) *flow.MacAddress { return &r.SourceMac })},
	dispatch.Entry[flow.Record]{Name: "dst-mac",
		Parse: mac(func(r *flow.Record) *flow.MacAddress { return &r.DestinationMac })},
	dispatch.Entry[flow.Record]{Name: "src-ip",
		Parse: ipv4(func(r *flow.Record) *flow.IPv4Address { return &r.SourceIP })},
	dispatch.Entry[flow.Record]{Name: "dst-ip",
		Parse: ipv4(func(r *flow.Record) *flow.IPv4Address { return &r.DestinationIP })},
	dispatch.Entry[flow.Record]{Name: "dur",
		Parse: microseconds(func(r *flow.Record) *datetime.Timespan { return &r.FlowDuration })},
	dispatch.Entry[flow.Record]{Name: "latency",
		Parse: microseconds(func(r *flow.Record) *datetime.Timespan { return &r.Latency })},
	dispatch.Entry[flow.Record]{Name: "started-time",
		Parse: iso8601(func(r *flow.Record) *datetime.Datetime { return &r.FlowStart })},
	dispatch.Entry[flow.Record]{Name: "ended-time",
		Parse: iso8601(func(r *flow.Record) *datetime.Datetime { return &r.FlowEnd })},
)

func parseVxLAN(value string, r *flow.Record) error {
	v, err := dispatch.ParseUnsigned(value, 64)
	if err != nil {
		return err
	}
	r.Layer2SegmentId = flow.Layer2SegmentId(flow.OverlayVxLAN, v)
	return nil
}

func parseConnectionState(value string, r *flow.Record) error {
	bits, ok := flow.ConnectionState(value)
	if !ok {
		return fmt.Errorf("%w connection state %q", dispatch.ErrInvalidValue, value)
	}
	r.TCPControlBits = bits
	return nil
}

func parseProtocol(value string, r *flow.Record) error {
	v, err := dispatch.ParseUnsigned(value, 8)
	if err != nil {
		return err
	}
	r.Protocol = flow.Protocol(v)
	return nil
}

func parseEthernetType(value string, r *flow.Record) error {
	v, err := dispatch.ParseUnsigned(value, 16)
	if err != nil {
		return err
	}
	r.EthernetType = flow.EthernetType(v)
	return nil
}

func mac(field func(*flow.Record) *flow.MacAddress) dispatch.Parser[flow.Record] {
	return func(value string, r *flow.Record) error {
		octets, err := dispatch.ParseMAC(value)
		if err != nil {
			return err
		}
		*field(r) = flow.MacAddress{Octets: octets, HasValue: true}
		return nil
	}
}

func ipv4(field func(*flow.Record) *flow.IPv4Address) dispatch.Parser[flow.Record] {
	return func(value string, r *flow.Record) error {
		v, err := dispatch.ParseIPv4(value)
		if err != nil {
			return err
		}
		*field(r) = flow.IPv4Address{Value: v, HasValue: true}
		return nil
	}
}

func microseconds(field func(*flow.Record) *datetime.Timespan) dispatch.Parser[flow.Record] {
	return func(value string, r *flow.Record) error {
		v, err := dispatch.ParseSigned(value, 64)
		if err != nil {
			return err
		}
		*field(r) = datetime.TimespanFromMicroseconds(v)
		return nil
	}
}

func iso8601(field func(*flow.Record) *datetime.Datetime) dispatch.Parser[flow.Record] {
	return func(value string, r *flow.Record) error {
		d := datetime.ParseISO8601(value)
		if !d.HasValue {
			return fmt.Errorf("%w datetime %q", dispatch.ErrInvalidValue, value)
		}
		*field(r) = d
		return nil
	}
}
